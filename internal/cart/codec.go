package cart

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/gomarketplace-cart/internal/domain"
	"github.com/shopspring/decimal"
)

// storedItem is the persisted shape of a cart item. Keys match the blobs the
// mobile storefront has been writing, so existing carts hydrate unchanged.
type storedItem struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	ImageURL string      `json:"image_url"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

func encodeItems(items []domain.CartItem) (string, error) {
	stored := make([]storedItem, 0, len(items))

	for _, item := range items {
		stored = append(stored, storedItem{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Price:    json.Number(item.Price.String()),
			Quantity: item.Quantity,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(data), nil
}

func decodeItems(blob string) ([]domain.CartItem, error) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(blob), &stored); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items := make([]domain.CartItem, 0, len(stored))

	for _, s := range stored {
		price := decimal.Zero
		if s.Price != "" {
			parsed, err := decimal.NewFromString(s.Price.String())
			if err != nil {
				return nil, fmt.Errorf("price[%s] of item[%s] is not valid: %w", s.Price, s.ID, err)
			}
			price = parsed
		}

		items = append(items, domain.CartItem{
			ID:       s.ID,
			Title:    s.Title,
			ImageURL: s.ImageURL,
			Price:    price,
			Quantity: s.Quantity,
		})
	}

	return items, nil
}
