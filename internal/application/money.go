package application

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
)

var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// ParseQuantity accepts a positive whole number written as a JSON number or numeric string.
func ParseQuantity(raw string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperror.NewValidation("quantity must be a number")
	}
	if !d.IsInteger() || d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(maxQuantity) {
		return 0, apperror.NewValidation("quantity must be a positive integer")
	}
	return int(d.IntPart()), nil
}

// ParsePrice accepts a non-negative amount and rounds it half-up to cents.
func ParsePrice(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperror.NewValidation("%s must be a number", field)
	}
	if d.IsNegative() {
		return decimal.Zero, apperror.NewValidation("%s must not be negative", field)
	}
	return d.Round(2), nil
}
