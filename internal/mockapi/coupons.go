package mockapi

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cedra_storefront/internal/models"
)

// AddCoupon enregistre une règle ; le code est stocké en majuscules
func (s *Server) AddCoupon(coupon models.Coupon) {
	coupon.Code = strings.ToUpper(coupon.Code)
	s.mu.Lock()
	s.coupons[coupon.Code] = coupon
	s.mu.Unlock()
}

func (s *Server) validateCoupon(c *gin.Context) {
	var req models.CouponValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code is required"})
		return
	}

	s.mu.RLock()
	coupon, ok := s.coupons[strings.ToUpper(strings.TrimSpace(req.Code))]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "message": "Invalid coupon code"})
		return
	}

	c.JSON(http.StatusOK, s.evaluate(coupon, req.CartTotal))
}

// evaluate applique les règles : actif, fenêtre de validité, quota, montant minimum
func (s *Server) evaluate(coupon models.Coupon, cartTotal float64) gin.H {
	now := s.now()

	invalid := func(msg string) gin.H {
		return gin.H{"valid": false, "message": msg}
	}

	if !coupon.IsActive {
		return invalid("This coupon is no longer active")
	}
	if !coupon.StartsAt.IsZero() && now.Before(coupon.StartsAt) {
		return invalid("This coupon is not valid yet")
	}
	if !coupon.ExpiresAt.IsZero() && now.After(coupon.ExpiresAt) {
		return invalid("This coupon has expired")
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return invalid("This coupon has reached its usage limit")
	}
	if cartTotal < coupon.MinAmount {
		return invalid(fmt.Sprintf("Minimum order amount is %.2f", coupon.MinAmount))
	}

	var amount, percent float64
	switch coupon.Type {
	case "percentage":
		percent = coupon.Value
		amount = cartTotal * (coupon.Value / 100)
		if coupon.MaxAmount != nil && amount > *coupon.MaxAmount {
			amount = *coupon.MaxAmount
		}
	case "fixed":
		amount = coupon.Value
		if amount > cartTotal {
			amount = cartTotal
		}
		if cartTotal > 0 {
			percent = amount / cartTotal * 100
		}
	case "free_shipping":
		amount = 0 // géré au checkout
	}

	return gin.H{
		"valid":          true,
		"discount":       round2(percent),
		"discountAmount": round2(amount),
		"message":        "Coupon applied",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
