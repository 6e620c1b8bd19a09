package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func (m Money) String() string {
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}

type Summary struct {
	Count int
	Total Money
}

func Summarize(items []CartItem, unit currency.Unit) Summary {
	s := Summary{Total: Money{Amount: decimal.Zero, Currency: unit}}

	for _, item := range items {
		s.Count += item.Quantity
		s.Total.Amount = s.Total.Amount.Add(item.Subtotal())
	}

	return s
}
