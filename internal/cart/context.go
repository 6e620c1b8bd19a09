package cart

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when the cart is reached outside a provider scope.
var ErrNoProvider = errors.New("useCart must be used within a CartProvider")

type storeKey struct{}

// NewContext returns a copy of ctx that provides s to everything below it.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}
	return s, nil
}

func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
