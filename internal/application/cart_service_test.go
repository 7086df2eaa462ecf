package application

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/memory"
)

const productA = "665f1c2e9b1d4a3f8c0e1a22"

func TestCartService_AddLineTwiceMergesQuantityAndTakesLastPrice(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "alice")
	svc := NewCartService(store.Cart(), nil)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, u.ID, AddLineInput{ProductID: productA, Quantity: "2", DiscountedPrice: "10.00"})
	require.NoError(t, err)
	line, err := svc.AddLine(ctx, u.ID, AddLineInput{ProductID: productA, Quantity: "3", DiscountedPrice: "7.5"})
	require.NoError(t, err)

	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, "7.50", line.DiscountedPrice.StringFixed(2))

	lines, err := svc.ListLines(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartService_AddLineRejectsMalformedInput(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "bob")
	svc := NewCartService(store.Cart(), nil)

	cases := []struct {
		name string
		in   AddLineInput
	}{
		{"bad product id", AddLineInput{ProductID: "nope", Quantity: "1", DiscountedPrice: "1"}},
		{"non numeric quantity", AddLineInput{ProductID: productA, Quantity: "two", DiscountedPrice: "1"}},
		{"zero quantity", AddLineInput{ProductID: productA, Quantity: "0", DiscountedPrice: "1"}},
		{"fractional quantity", AddLineInput{ProductID: productA, Quantity: "1.5", DiscountedPrice: "1"}},
		{"non numeric price", AddLineInput{ProductID: productA, Quantity: "1", DiscountedPrice: "cheap"}},
		{"negative price", AddLineInput{ProductID: productA, Quantity: "1", DiscountedPrice: "-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddLine(context.Background(), u.ID, tc.in)
			assert.True(t, apperror.IsValidation(err), "got %v", err)
		})
	}

	lines, err := svc.ListLines(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartService_RemoveMissingLineIsNotFoundAndLeavesLedger(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "carol")
	svc := NewCartService(store.Cart(), nil)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, u.ID, AddLineInput{ProductID: productA, Quantity: "1", DiscountedPrice: "4"})
	require.NoError(t, err)

	_, err = svc.RemoveLine(ctx, u.ID, "665f1c2e9b1d4a3f8c0e1a99")
	assert.True(t, apperror.IsNotFound(err))

	lines, err := svc.ListLines(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	removed, err := svc.RemoveLine(ctx, u.ID, productA)
	require.NoError(t, err)
	assert.Equal(t, productA, removed)
}

func TestCartService_ClearIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "dave")
	svc := NewCartService(store.Cart(), nil)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, u.ID, AddLineInput{ProductID: productA, Quantity: "1", DiscountedPrice: "4"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, u.ID))
	require.NoError(t, svc.Clear(ctx, u.ID))

	lines, err := svc.ListLines(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParsePrice_RoundsHalfUpToCents(t *testing.T) {
	d, err := ParsePrice("discountedPrice", " 2.345 ")
	require.NoError(t, err)
	assert.Equal(t, "2.35", d.StringFixed(2))
}

func TestCartService_AddLineRejectsMergedQuantityOverflow(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "otto")
	svc := NewCartService(store.Cart(), nil)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, u.ID, AddLineInput{ProductID: productA, Quantity: strconv.Itoa(math.MaxInt32), DiscountedPrice: "1.00"})
	require.NoError(t, err)

	_, err = svc.AddLine(ctx, u.ID, AddLineInput{ProductID: productA, Quantity: "1", DiscountedPrice: "1.00"})
	assert.True(t, apperror.IsValidation(err), "unexpected error %v", err)

	lines, err := svc.ListLines(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, math.MaxInt32, lines[0].Quantity)
}
