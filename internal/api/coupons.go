package api

import (
	"context"

	"cedra_storefront/internal/models"
)

// ValidateCoupon : POST /api/coupons/validate
func (c *Client) ValidateCoupon(ctx context.Context, req models.CouponValidationRequest) (*models.CouponValidation, error) {
	var res models.CouponValidation
	if err := c.Post(ctx, "/api/coupons/validate", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
