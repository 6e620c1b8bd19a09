package domain

import (
	"github.com/shopspring/decimal"
)

// Product is what the catalog hands to the cart: a cart item without a quantity.
type Product struct {
	ID       string
	Title    string
	ImageURL string
	Price    decimal.Decimal
}

type CartItem struct {
	ID       string
	Title    string
	ImageURL string
	Price    decimal.Decimal

	Quantity int
}

func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: quantity,
	}
}

func (i CartItem) Product() Product {
	return Product{
		ID:       i.ID,
		Title:    i.Title,
		ImageURL: i.ImageURL,
		Price:    i.Price,
	}
}

// Subtotal is price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// FindItem returns the index of the first item with the given id, or -1.
func FindItem(items []CartItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
