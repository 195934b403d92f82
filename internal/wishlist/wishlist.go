// Package wishlist conserve les produits mis de côté par la session navigateur.
package wishlist

import (
	"context"
	"errors"
	"log"
	"time"

	"cedra_storefront/internal/models"
	"cedra_storefront/internal/session"
)

var ErrInvalidProduct = errors.New("product id is required")

type Wishlist struct {
	store session.Store
	items []models.WishlistItem
	now   func() time.Time
}

// Load relit la wishlist persistée, vide si absente ou illisible
func Load(ctx context.Context, store session.Store) *Wishlist {
	w := &Wishlist{store: store, items: []models.WishlistItem{}, now: time.Now}
	if store == nil {
		return w
	}

	var items []models.WishlistItem
	err := session.GetJSON(ctx, store, session.KeyWishlist, &items)
	switch {
	case err == nil && items != nil:
		w.items = items
	case err != nil && !errors.Is(err, session.ErrNotFound):
		log.Printf("⚠️ Wishlist illisible, ignorée: %v", err)
	}
	return w
}

// Add ajoute le produit s'il n'y est pas déjà. Renvoie false si déjà présent.
func (w *Wishlist) Add(ctx context.Context, product models.Product) (bool, error) {
	if product.ID == "" {
		return false, ErrInvalidProduct
	}
	if w.index(product.ID) >= 0 {
		return false, nil
	}
	w.items = append(w.items, models.WishlistItem{Product: product, AddedAt: w.now().UTC()})
	w.persist(ctx)
	return true, nil
}

// Remove renvoie false si le produit n'était pas dans la liste
func (w *Wishlist) Remove(ctx context.Context, productID string) bool {
	i := w.index(productID)
	if i < 0 {
		return false
	}
	w.items = append(w.items[:i], w.items[i+1:]...)
	w.persist(ctx)
	return true
}

// Toggle ajoute ou retire, et renvoie la présence finale
func (w *Wishlist) Toggle(ctx context.Context, product models.Product) (bool, error) {
	if product.ID == "" {
		return false, ErrInvalidProduct
	}
	if w.Remove(ctx, product.ID) {
		return false, nil
	}
	return w.Add(ctx, product)
}

func (w *Wishlist) Contains(productID string) bool {
	return w.index(productID) >= 0
}

func (w *Wishlist) Items() []models.WishlistItem {
	out := make([]models.WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Count() int { return len(w.items) }

func (w *Wishlist) Clear(ctx context.Context) {
	w.items = []models.WishlistItem{}
	w.persist(ctx)
}

func (w *Wishlist) index(productID string) int {
	for i, item := range w.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (w *Wishlist) persist(ctx context.Context) {
	if w.store == nil {
		return
	}
	if err := session.SetJSON(ctx, w.store, session.KeyWishlist, w.items); err != nil {
		log.Printf("⚠️ Wishlist non persistée: %v", err)
	}
}
