package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

func placeOrders(t *testing.T, f checkoutFixture, userID, productID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		f.add(t, userID, productID, "1", "1.00")
		_, err := f.checkout.PlaceOrder(context.Background(), userID)
		require.NoError(t, err)
	}
}

func TestOrderService_AdminSecondPage(t *testing.T) {
	f := newCheckoutFixture()
	u := seedUser(t, f.store, "jane")
	p := seedProduct(t, f.store, "sock", "1.00")
	placeOrders(t, f, u.ID, p.ID, 25)

	page, err := f.orders.ListForAdmin(context.Background(), AdminOrderQuery{Page: "2", Limit: "10"})
	require.NoError(t, err)

	assert.Len(t, page.Orders, 10)
	assert.EqualValues(t, 25, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, "jane", page.Orders[0].UserName)
}

func TestOrderService_AdminCoercesBadPaging(t *testing.T) {
	f := newCheckoutFixture()
	u := seedUser(t, f.store, "kim")
	p := seedProduct(t, f.store, "hat", "1.00")
	placeOrders(t, f, u.ID, p.ID, 12)

	page, err := f.orders.ListForAdmin(context.Background(), AdminOrderQuery{Page: "abc", Limit: "-4"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Orders, 10)
	assert.Equal(t, 2, page.TotalPages)
}

func TestOrderService_AdminHugePageIsEmptyNotAnError(t *testing.T) {
	f := newCheckoutFixture()
	u := seedUser(t, f.store, "lou")
	p := seedProduct(t, f.store, "cup", "1.00")
	placeOrders(t, f, u.ID, p.ID, 3)

	page, err := f.orders.ListForAdmin(context.Background(), AdminOrderQuery{Page: "922337203685477582", Limit: "10"})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Equal(t, helpers.MaxPage, page.CurrentPage)
}

func TestOrderService_AdminFiltersByUserNameCaseInsensitive(t *testing.T) {
	f := newCheckoutFixture()
	alice := seedUser(t, f.store, "Alice Liddell")
	bob := seedUser(t, f.store, "Bob Stone")
	p := seedProduct(t, f.store, "book", "1.00")
	placeOrders(t, f, alice.ID, p.ID, 3)
	placeOrders(t, f, bob.ID, p.ID, 2)

	page, err := f.orders.ListForAdmin(context.Background(), AdminOrderQuery{Name: "liddELL"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	for _, o := range page.Orders {
		assert.Equal(t, alice.ID, o.UserID)
	}
}

func TestOrderService_ListOrdersNewestFirst(t *testing.T) {
	f := newCheckoutFixture()
	u := seedUser(t, f.store, "lena")
	p := seedProduct(t, f.store, "pin", "1.00")

	f.add(t, u.ID, p.ID, "1", "1.00")
	first, err := f.checkout.PlaceOrder(context.Background(), u.ID)
	require.NoError(t, err)
	f.add(t, u.ID, p.ID, "3", "1.00")
	second, err := f.checkout.PlaceOrder(context.Background(), u.ID)
	require.NoError(t, err)

	orders, err := f.orders.ListOrders(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}
