package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Clés persistées pour une session navigateur
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyCart     = "cart"
	KeyCoupon   = "coupon"
	KeyWishlist = "wishlist"
)

// ErrNotFound correspond à une clé absente
var ErrNotFound = errors.New("session key not found")

// Store est un stockage clé/valeur sans transaction, dernier écrit gagnant.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Factory ouvre le Store d'une session navigateur
type Factory func(namespace string) Store

// GetJSON décode la valeur de key dans out. ErrNotFound est propagée telle quelle.
func GetJSON(ctx context.Context, s Store, key string, out interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("decode %s failed: %w", key, err)
	}
	return nil
}

// SetJSON sérialise entièrement value sous key
func SetJSON(ctx context.Context, s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s failed: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
