package cart

import (
	"github.com/shopspring/decimal"

	"cedra_storefront/internal/models"
)

var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	ShippingFee           = decimal.RequireFromString("9.99")
)

// Subtotal est recalculé à chaque lecture
func (a *Aggregator) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range a.items {
		sum = sum.Add(lineTotal(it))
	}
	return sum
}

// ShippingCost est offert strictement au-dessus du seuil
func (a *Aggregator) ShippingCost() decimal.Decimal {
	if a.Subtotal().GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}

// Total = sous-total + livraison - coupon, jamais négatif
func (a *Aggregator) Total() decimal.Decimal {
	total := a.Subtotal().Add(a.ShippingCost())
	if a.coupon.Applied {
		total = total.Sub(a.coupon.DiscountAmount)
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Totals arrondit au centime pour l'affichage
func (a *Aggregator) Totals() models.CartTotals {
	discount := decimal.Zero
	if a.coupon.Applied {
		discount = a.coupon.DiscountAmount
	}
	return models.CartTotals{
		Subtotal:       a.Subtotal().Round(2),
		ShippingCost:   a.ShippingCost().Round(2),
		DiscountAmount: discount.Round(2),
		Total:          a.Total().Round(2),
		Count:          a.Count(),
	}
}
