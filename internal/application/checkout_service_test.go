package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/memory"
)

type checkoutFixture struct {
	store    *memory.Store
	cart     *CartService
	checkout *CheckoutService
	orders   *OrderService
}

func newCheckoutFixture() checkoutFixture {
	store := memory.NewStore()
	return checkoutFixture{
		store:    store,
		cart:     NewCartService(store.Cart(), nil),
		checkout: NewCheckoutService(store.Checkout(), store.Products(), nil),
		orders:   NewOrderService(store.Orders(), 100, nil),
	}
}

func (f checkoutFixture) add(t *testing.T, userID, productID, qty, price string) {
	t.Helper()
	_, err := f.cart.AddLine(context.Background(), userID, AddLineInput{ProductID: productID, Quantity: qty, DiscountedPrice: price})
	require.NoError(t, err)
}

func TestCheckout_EmptyCartCreatesNoOrder(t *testing.T) {
	f := newCheckoutFixture()
	u := seedUser(t, f.store, "erin")

	_, err := f.checkout.PlaceOrder(context.Background(), u.ID)
	assert.True(t, apperror.IsEmptyCart(err))

	orders, err := f.orders.ListOrders(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_UnresolvedProductAbortsAndKeepsCart(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	u := seedUser(t, f.store, "frank")
	a := seedProduct(t, f.store, "lamp", "30.00")
	gone := "665f1c2e9b1d4a3f8c0e1aff"

	f.add(t, u.ID, a.ID, "1", "25.00")
	f.add(t, u.ID, gone, "2", "3.00")

	_, err := f.checkout.PlaceOrder(ctx, u.ID)
	require.Error(t, err)
	var resErr *apperror.ProductResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, []string{gone}, resErr.Missing)

	orders, err := f.orders.ListOrders(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	lines, err := f.cart.ListLines(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCheckout_EndToEnd(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	u := seedUser(t, f.store, "gina")
	a := seedProduct(t, f.store, "kettle", "12.00")
	b := seedProduct(t, f.store, "cup", "6.00")

	f.add(t, u.ID, a.ID, "2", "10.00")
	f.add(t, u.ID, b.ID, "1", "5.00")

	order, err := f.checkout.PlaceOrder(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, "25.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, order.ProductIDs)
	require.Len(t, order.ProductDetails, 2)
	names := []string{order.ProductDetails[0].Name, order.ProductDetails[1].Name}
	assert.ElementsMatch(t, []string{"kettle", "cup"}, names)

	lines, err := f.cart.ListLines(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	orders, err := f.orders.ListOrders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestCheckout_SnapshotSurvivesCatalogEdits(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	u := seedUser(t, f.store, "hank")
	p := seedProduct(t, f.store, "chair", "40.00")
	f.add(t, u.ID, p.ID, "1", "35.00")

	_, err := f.checkout.PlaceOrder(ctx, u.ID)
	require.NoError(t, err)

	p.Name = "chair v2"
	require.NoError(t, f.store.Products().Update(ctx, p))
	require.NoError(t, f.store.Products().Delete(ctx, p.ID))

	orders, err := f.orders.ListOrders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "chair", orders[0].ProductDetails[0].Name)
	assert.Equal(t, "40.00", orders[0].ProductDetails[0].Price.StringFixed(2))
}

func TestCheckout_ConcurrentCallsProduceOneOrder(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	u := seedUser(t, f.store, "ivy")
	a := seedProduct(t, f.store, "desk", "100.00")
	b := seedProduct(t, f.store, "pen", "2.00")
	f.add(t, u.ID, a.ID, "2", "10.00")
	f.add(t, u.ID, b.ID, "1", "5.00")

	const callers = 8
	var wg sync.WaitGroup
	results := make([]error, callers)
	placed := make([]*entity.Order, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			placed[i], results[i] = f.checkout.PlaceOrder(ctx, u.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range results {
		if err == nil {
			succeeded++
			assert.Equal(t, "25.00", placed[i].TotalAmount.StringFixed(2))
			continue
		}
		assert.True(t, apperror.IsEmptyCart(err), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)

	orders, err := f.orders.ListOrders(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCheckout_UnknownUserIsNotFound(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.checkout.PlaceOrder(context.Background(), "missing-user")
	assert.True(t, apperror.IsNotFound(err))
}

func TestCheckout_StoredOrderKeepsReturnedTimestamp(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	u := seedUser(t, f.store, "june")
	p := seedProduct(t, f.store, "lamp", "30.00")
	f.add(t, u.ID, p.ID, "1", "30.00")

	placed, err := f.checkout.PlaceOrder(ctx, u.ID)
	require.NoError(t, err)

	orders, err := f.orders.ListOrders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, placed.CreatedAt.Equal(orders[0].CreatedAt), "returned %s stored %s", placed.CreatedAt, orders[0].CreatedAt)
}

func TestCheckout_ConcurrentAddIsNeitherOrderedNorCleared(t *testing.T) {
	ctx := context.Background()
	for round := 0; round < 50; round++ {
		f := newCheckoutFixture()
		u := seedUser(t, f.store, "kai")
		a := seedProduct(t, f.store, "desk", "100.00")
		b := seedProduct(t, f.store, "pen", "2.00")
		f.add(t, u.ID, a.ID, "1", "10.00")

		var wg sync.WaitGroup
		var placed *entity.Order
		var checkoutErr, addErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			placed, checkoutErr = f.checkout.PlaceOrder(ctx, u.ID)
		}()
		go func() {
			defer wg.Done()
			_, addErr = f.cart.AddLine(ctx, u.ID, AddLineInput{ProductID: b.ID, Quantity: "1", DiscountedPrice: "2.00"})
		}()
		wg.Wait()
		require.NoError(t, checkoutErr)
		require.NoError(t, addErr)

		lines, err := f.cart.ListLines(ctx, u.ID)
		require.NoError(t, err)
		inOrder := false
		for _, id := range placed.ProductIDs {
			if id == b.ID {
				inOrder = true
			}
		}
		inCart := len(lines) == 1 && lines[0].ProductID == b.ID
		assert.True(t, inOrder != inCart, "round %d: added line ordered=%v in cart=%v", round, inOrder, inCart)
	}
}
