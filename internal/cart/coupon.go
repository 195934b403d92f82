package cart

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/models"
)

// CouponValidator est satisfait par *api.Client
type CouponValidator interface {
	ValidateCoupon(ctx context.Context, req models.CouponValidationRequest) (*models.CouponValidation, error)
}

// ApplyCoupon remplace le coupon courant. Le montant est déjà validé par le serveur.
func (a *Aggregator) ApplyCoupon(ctx context.Context, code string, discountAmount decimal.Decimal) {
	a.coupon = models.CouponState{
		Code:           strings.ToUpper(strings.TrimSpace(code)),
		DiscountAmount: discountAmount,
		Applied:        true,
	}
	a.persist(ctx)
}

func (a *Aggregator) RemoveCoupon(ctx context.Context) {
	a.coupon = models.CouponState{}
	a.persist(ctx)
}

func (a *Aggregator) Coupon() models.CouponState {
	return a.coupon
}

// ValidateAndApplyCoupon fait valider le code par l'API puis l'applique.
// En cas d'échec, l'état reste inchangé et l'erreur porte le message à afficher.
// Le coupon reste figé au montant validé même si le panier change ensuite.
func (a *Aggregator) ValidateAndApplyCoupon(ctx context.Context, code string) (models.CouponState, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return a.coupon, &CouponError{Message: "Please enter a coupon code"}
	}
	if a.validator == nil {
		return a.coupon, &CouponError{Message: "Coupon validation unavailable"}
	}

	req := models.CouponValidationRequest{
		Code:      strings.ToUpper(code),
		CartTotal: a.Subtotal().Round(2).InexactFloat64(),
		CartItems: make([]models.CouponCartItem, 0, len(a.items)),
	}
	for _, it := range a.items {
		req.CartItems = append(req.CartItems, models.CouponCartItem{
			Product: it.ProductID,
			Price:   it.Price.InexactFloat64(),
			Qty:     it.Quantity,
		})
	}

	res, err := a.validator.ValidateCoupon(ctx, req)
	if err != nil {
		log.Printf("❌ Validation coupon %s échouée: %v", req.Code, err)
		return a.coupon, &CouponError{Message: api.MessageOf(err, "Failed to apply coupon"), Err: err}
	}
	if !res.Valid {
		msg := res.Message
		if msg == "" {
			msg = "Invalid coupon code"
		}
		return a.coupon, &CouponError{Message: msg}
	}

	a.ApplyCoupon(ctx, req.Code, res.DiscountAmount)
	log.Printf("🎟️ Coupon %s appliqué (-%s)", req.Code, res.DiscountAmount.StringFixed(2))
	return a.coupon, nil
}
