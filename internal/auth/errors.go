package auth

import "errors"

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingFields    = errors.New("missing required fields")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// AuthError porte le message affiché à l'utilisateur
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }
