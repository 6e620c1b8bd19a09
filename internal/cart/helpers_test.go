package cart_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/gomarketplace-cart/internal/cart"
	"github.com/nikolayk812/gomarketplace-cart/internal/domain"
	"github.com/nikolayk812/gomarketplace-cart/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, kv port.KVStore, opts ...cart.Option) *cart.Store {
	t.Helper()

	opts = append([]cart.Option{cart.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	s := cart.NewStore(kv, opts...)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, s.Close(ctx))
	})

	return s
}

// seed writes items to kv in the persisted wire format and hydrates s from it.
func seed(t *testing.T, kv port.KVStore, s *cart.Store, items ...domain.CartItem) {
	t.Helper()
	ctx := t.Context()

	type wireItem struct {
		ID       string      `json:"id"`
		Title    string      `json:"title"`
		ImageURL string      `json:"image_url"`
		Price    json.Number `json:"price"`
		Quantity int         `json:"quantity"`
	}

	wire := make([]wireItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, wireItem{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Price:    json.Number(item.Price.String()),
			Quantity: item.Quantity,
		})
	}

	data, err := json.Marshal(wire)
	require.NoError(t, err)

	require.NoError(t, kv.SetItem(ctx, cart.DefaultKey, string(data)))
	require.NoError(t, s.Load(ctx))
}

// reload builds a fresh store over kv and returns what it hydrates.
func reload(t *testing.T, kv port.KVStore) []domain.CartItem {
	t.Helper()

	s := newStore(t, kv)
	require.NoError(t, s.Load(t.Context()))

	return s.Products()
}

func flush(t *testing.T, s *cart.Store) {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:       gofakeit.UUID(),
		Title:    gofakeit.ProductName(),
		ImageURL: gofakeit.URL(),
		Price:    decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
	}
}

func itemOf(p domain.Product, quantity int) domain.CartItem {
	return domain.NewCartItem(p, quantity)
}

func assertItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, decimalComparer, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}
