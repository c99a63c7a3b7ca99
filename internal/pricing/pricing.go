// Package pricing provides the line and aggregate arithmetic for quotations.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/nurpe/quote-studio/internal/model"
)

// VATRate is the flat value-added tax applied to every quotation subtotal.
var VATRate = decimal.NewFromFloat(0.10)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativePrice   = fmt.Errorf("%w: unit price must not be negative", ErrInvalidAmount)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be at least 1", ErrInvalidAmount)
	ErrInvalidManDays  = fmt.Errorf("%w: man-days must be a non-negative number", ErrInvalidAmount)
)

type Totals struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal returns unitPrice * quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	if quantity < 1 {
		return decimal.Zero, ErrInvalidQuantity
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

func ValidateManDays(manDays float64) error {
	if math.IsNaN(manDays) || math.IsInf(manDays, 0) || manDays < 0 {
		return ErrInvalidManDays
	}
	return nil
}

// ValidateItem checks the caller-supplied numeric fields of an item.
func ValidateItem(item model.QuoteItem) error {
	if _, err := LineTotal(item.UnitPrice, item.Quantity); err != nil {
		return err
	}
	return ValidateManDays(item.ManDays)
}

// Aggregate sums the stored line totals and derives VAT and the grand total.
// No rounding is applied; display code rounds.
func Aggregate(items []model.QuoteItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	vat := subtotal.Mul(VATRate)
	return Totals{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal.Add(vat),
	}
}
