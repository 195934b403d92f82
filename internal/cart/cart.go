// Package cart tient le panier d'une session : lignes, coupon et totaux dérivés.
package cart

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"cedra_storefront/internal/models"
	"cedra_storefront/internal/session"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Result décrit l'effet d'un AddItem
type Result int

const (
	Added Result = iota
	Incremented
	Clamped
)

func (r Result) String() string {
	switch r {
	case Added:
		return "added"
	case Incremented:
		return "incremented"
	case Clamped:
		return "clamped"
	}
	return "unknown"
}

// Aggregator possède les lignes et le coupon pendant la session.
// Chaque mutation réécrit immédiatement l'état complet dans le store.
type Aggregator struct {
	store     session.Store
	validator CouponValidator
	items     []models.CartItem
	coupon    models.CouponState
}

func New(store session.Store, validator CouponValidator) *Aggregator {
	return &Aggregator{
		store:     store,
		validator: validator,
		items:     []models.CartItem{},
	}
}

// Load réhydrate le panier une seule fois depuis le store.
// Une valeur illisible est ignorée : le panier repart vide.
func Load(ctx context.Context, store session.Store, validator CouponValidator) *Aggregator {
	a := New(store, validator)
	if store == nil {
		return a
	}

	var items []models.CartItem
	if err := session.GetJSON(ctx, store, session.KeyCart, &items); err == nil {
		if items != nil {
			a.items = items
		}
	} else if !errors.Is(err, session.ErrNotFound) {
		log.Printf("⚠️ Panier illisible, on repart d'un panier vide: %v", err)
	}

	var coupon models.CouponState
	if err := session.GetJSON(ctx, store, session.KeyCoupon, &coupon); err == nil {
		a.coupon = coupon
	} else if !errors.Is(err, session.ErrNotFound) {
		log.Printf("⚠️ Coupon illisible, ignoré: %v", err)
	}

	return a
}

func (a *Aggregator) find(productID, size string) int {
	for i := range a.items {
		if a.items[i].ProductID == productID && a.items[i].SelectedSize == size {
			return i
		}
	}
	return -1
}

// AddItem fusionne avec la ligne (produit, taille) existante.
// La quantité résultante est bornée à MaxQuantity ; le stock n'est pas vérifié ici.
func (a *Aggregator) AddItem(ctx context.Context, product models.Product, size string, quantity int) (Result, error) {
	if product.ID == "" {
		return Added, ErrInvalidProduct
	}
	if quantity < MinQuantity {
		return Added, ErrInvalidQuantity
	}
	if product.Price.IsNegative() {
		return Added, ErrInvalidPrice
	}
	if product.DiscountPercent.IsNegative() || product.DiscountPercent.GreaterThan(hundred) {
		return Added, ErrInvalidDiscount
	}

	result := Added
	if i := a.find(product.ID, size); i >= 0 {
		result = Incremented
		q := a.items[i].Quantity + quantity
		if q > MaxQuantity {
			q = MaxQuantity
			result = Clamped
		}
		a.items[i].Quantity = q
	} else {
		if quantity > MaxQuantity {
			quantity = MaxQuantity
			result = Clamped
		}
		a.items = append(a.items, models.CartItem{
			ProductID:       product.ID,
			Name:            product.Name,
			Image:           product.Image,
			SelectedSize:    size,
			Quantity:        quantity,
			Price:           product.Price,
			DiscountPercent: product.DiscountPercent,
		})
	}

	a.persist(ctx)
	return result, nil
}

// RemoveItem ne change rien si la ligne n'existe pas (ErrLineNotFound)
func (a *Aggregator) RemoveItem(ctx context.Context, productID, size string) error {
	i := a.find(productID, size)
	if i < 0 {
		return ErrLineNotFound
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	a.persist(ctx)
	return nil
}

// UpdateQuantity refuse toute valeur hors de [1,10] sans toucher à l'état
func (a *Aggregator) UpdateQuantity(ctx context.Context, productID, size string, quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return ErrQuantityOutOfRange
	}
	i := a.find(productID, size)
	if i < 0 {
		return ErrLineNotFound
	}
	a.items[i].Quantity = quantity
	a.persist(ctx)
	return nil
}

// Clear vide les lignes et le coupon
func (a *Aggregator) Clear(ctx context.Context) {
	a.items = []models.CartItem{}
	a.coupon = models.CouponState{}
	a.persist(ctx)
}

func (a *Aggregator) Items() []models.CartItem {
	out := make([]models.CartItem, len(a.items))
	copy(out, a.items)
	return out
}

// Count est le nombre d'articles, quantités comprises
func (a *Aggregator) Count() int {
	n := 0
	for _, it := range a.items {
		n += it.Quantity
	}
	return n
}

func (a *Aggregator) persist(ctx context.Context) {
	if a.store == nil {
		return
	}
	if err := session.SetJSON(ctx, a.store, session.KeyCart, a.items); err != nil {
		log.Printf("⚠️ Sauvegarde panier échouée: %v", err)
	}

	var err error
	if a.coupon.Applied {
		err = session.SetJSON(ctx, a.store, session.KeyCoupon, a.coupon)
	} else {
		err = a.store.Remove(ctx, session.KeyCoupon)
	}
	if err != nil {
		log.Printf("⚠️ Sauvegarde coupon échouée: %v", err)
	}
}

var hundred = decimal.NewFromInt(100)

// lineTotal = prix * (1 - remise/100) * quantité
func lineTotal(it models.CartItem) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(it.DiscountPercent.Div(hundred))
	return it.Price.Mul(factor).Mul(decimal.NewFromInt(int64(it.Quantity)))
}
