package models

import "github.com/shopspring/decimal"

// Product est la vue produit utilisée pour alimenter le panier et la wishlist
type Product struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	Image           string          `json:"image,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount"`
	CountInStock    int             `json:"countInStock,omitempty"`
}
