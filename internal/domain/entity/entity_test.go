package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartLine_MergeAddsQuantityAndOverwritesPrice(t *testing.T) {
	now := time.Now()
	line := CartLine{UserID: "u1", ProductID: "p1", Quantity: 2, DiscountedPrice: decimal.RequireFromString("10.00")}

	merged := line.Merge(3, decimal.RequireFromString("8.50"), now)

	assert.Equal(t, 5, merged.Quantity)
	assert.True(t, merged.DiscountedPrice.Equal(decimal.RequireFromString("8.50")))
	assert.Equal(t, now, merged.UpdatedAt)
	assert.Equal(t, 2, line.Quantity, "merge must not mutate the receiver")
}

func TestCartTotal(t *testing.T) {
	lines := []CartLine{
		{ProductID: "a", Quantity: 2, DiscountedPrice: decimal.RequireFromString("10.00")},
		{ProductID: "b", Quantity: 1, DiscountedPrice: decimal.RequireFromString("5.00")},
	}
	assert.Equal(t, "25", CartTotal(lines).String())
	assert.True(t, CartTotal(nil).IsZero())
}

func TestUser_OTPMatches(t *testing.T) {
	code := "123456"
	exp := time.Now().Add(10 * time.Minute)
	u := &User{OTP: &code, OTPExpiresAt: &exp}

	assert.True(t, u.OTPMatches("123456", time.Now()))
	assert.False(t, u.OTPMatches("654321", time.Now()))
	assert.False(t, u.OTPMatches("123456", exp.Add(time.Second)))

	u.MarkVerified()
	assert.True(t, u.IsVerified)
	assert.Nil(t, u.OTP)
	assert.Nil(t, u.OTPExpiresAt)
	assert.False(t, u.OTPMatches("123456", time.Now()))
}

func TestProduct_SnapshotIsDetached(t *testing.T) {
	p := Product{
		ID:     "665f1c2e9b1d4a3f8c0e1a22",
		Name:   "Mug",
		Price:  decimal.RequireFromString("12.00"),
		Images: []ProductImage{{URL: "https://cdn/mug.png", AltText: "Image 1"}},
	}
	snap := p.Snapshot()
	p.Images[0].URL = "https://cdn/changed.png"
	p.Name = "Renamed"

	assert.Equal(t, "Mug", snap.Name)
	assert.Equal(t, "https://cdn/mug.png", snap.Images[0].URL)
}

func TestValidProductID(t *testing.T) {
	assert.True(t, ValidProductID("665f1c2e9b1d4a3f8c0e1a22"))
	assert.False(t, ValidProductID("not-an-id"))
	assert.False(t, ValidProductID(""))
}
