package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponState est le coupon actif du panier (au plus un)
type CouponState struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Applied        bool            `json:"applied"`
}

// CouponCartItem est la forme d'une ligne envoyée à /api/coupons/validate
type CouponCartItem struct {
	Product string  `json:"product"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty"`
}

type CouponValidationRequest struct {
	Code      string           `json:"code"`
	CartTotal float64          `json:"cartTotal"`
	CartItems []CouponCartItem `json:"cartItems"`
}

type CouponValidation struct {
	Valid          bool            `json:"valid"`
	Discount       decimal.Decimal `json:"discount"` // pourcentage
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Message        string          `json:"message,omitempty"`
}

// Coupon est une règle de réduction côté API amont
type Coupon struct {
	Code      string    `json:"code"`
	Type      string    `json:"type"` // "percentage", "fixed", "free_shipping"
	Value     float64   `json:"value"`
	MinAmount float64   `json:"min_amount"`
	MaxAmount *float64  `json:"max_amount,omitempty"` // Montant max de réduction
	MaxUses   int       `json:"max_uses"`
	UsedCount int       `json:"used_count"`
	ExpiresAt time.Time `json:"expires_at"`
	StartsAt  time.Time `json:"starts_at"`
	IsActive  bool      `json:"is_active"`
}
