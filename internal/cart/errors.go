package cart

import "errors"

var (
	ErrInvalidProduct     = errors.New("product id is required")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidDiscount    = errors.New("discount must be between 0 and 100")
	ErrQuantityOutOfRange = errors.New("quantity must be between 1 and 10")
	ErrLineNotFound       = errors.New("cart line not found")
)

// CouponError porte le message affiché à l'utilisateur ; l'état du panier n'a pas changé.
type CouponError struct {
	Message string
	Err     error
}

func (e *CouponError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CouponError) Unwrap() error { return e.Err }
