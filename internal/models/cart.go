package models

import "github.com/shopspring/decimal"

// CartItem est une ligne du panier, identifiée par (ProductID, SelectedSize)
type CartItem struct {
	ProductID       string          `json:"productId"`
	Name            string          `json:"name,omitempty"`
	Image           string          `json:"image,omitempty"`
	SelectedSize    string          `json:"selectedSize"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// CartTotals regroupe les montants dérivés, jamais stockés
type CartTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	Count          int             `json:"count"`
}
