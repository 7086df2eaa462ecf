package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one row of the cart ledger, keyed by (UserID, ProductID).
// DiscountedPrice is the unit price captured when the line was last added to.
type CartLine struct {
	UserID          string          `json:"userId"`
	ProductID       string          `json:"productId"`
	Quantity        int             `json:"quantity"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Merge applies a second add for the same pair: quantity is additive, price is last-write-wins.
func (l CartLine) Merge(quantity int, price decimal.Decimal, at time.Time) CartLine {
	l.Quantity += quantity
	l.DiscountedPrice = price
	l.UpdatedAt = at
	return l
}

// Subtotal is quantity x discounted unit price.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.DiscountedPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums the subtotals of lines.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
