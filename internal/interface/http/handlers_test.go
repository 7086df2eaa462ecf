package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type testServer struct {
	engine *gin.Engine
	store  *memory.Store
}

// fakeAuth stands in for middleware.Auth: the caller is taken from test headers.
func fakeAuth(c *gin.Context) {
	c.Set(middleware.CtxUserID, c.GetHeader("X-Test-User"))
	c.Set(middleware.CtxUserRole, c.GetHeader("X-Test-Role"))
	c.Next()
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	store := memory.NewStore()
	cart := NewCartHandler(application.NewCartService(store.Cart(), nil), nil)
	orders := NewOrderHandler(
		application.NewCheckoutService(store.Checkout(), store.Products(), nil),
		application.NewOrderService(store.Orders(), 100, nil),
		nil,
	)
	products := NewProductHandler(application.NewProductService(store.Products(), nil, nil, nil, nil, application.ProductOptions{}), nil)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/products/:id", products.Get)
	auth := api.Group("/", fakeAuth)
	auth.GET("/users/cart", cart.List)
	auth.PATCH("/users/cart/add", cart.Add)
	auth.DELETE("/users/cart/remove", cart.Remove)
	auth.DELETE("/users/cart", cart.Clear)
	auth.POST("/orders", orders.Place)
	auth.GET("/orders", orders.List)
	auth.GET("/orders/admin", middleware.RequireRole(entity.RoleAdmin), orders.ListAdmin)
	return testServer{engine: r, store: store}
}

func (s testServer) do(method, path, userID, role, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-Test-User", userID)
	req.Header.Set("X-Test-Role", role)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s testServer) seed(t *testing.T) (*entity.User, *entity.Product, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	u := &entity.User{Name: "Tess", Email: "tess@example.com", Role: entity.RoleUser, IsVerified: true}
	require.NoError(t, s.store.Users().Create(ctx, u))
	a := &entity.Product{Name: "Lamp", Price: decimal.RequireFromString("12.00")}
	b := &entity.Product{Name: "Bulb", Price: decimal.RequireFromString("6.00")}
	require.NoError(t, s.store.Products().Create(ctx, a))
	require.NoError(t, s.store.Products().Create(ctx, b))
	return u, a, b
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCartAndCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	u, a, b := s.seed(t)

	w := s.do(http.MethodPatch, "/api/users/cart/add", u.ID, "user", `{"productId":"`+a.ID+`","quantity":"2","discountedPrice":"10.00"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPatch, "/api/users/cart/add", u.ID, "user", `{"productId":"`+b.ID+`","quantity":1,"discountedPrice":5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/users/cart", u.ID, "user", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "25.00", data["total"])
	assert.Len(t, data["items"], 2)

	w = s.do(http.MethodPost, "/api/orders", u.ID, "user", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "25", order["totalAmount"])
	assert.Equal(t, "pending", order["status"])
	assert.Len(t, order["productDetails"], 2)

	w = s.do(http.MethodPost, "/api/orders", u.ID, "user", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cart is empty", decode(t, w)["message"])

	w = s.do(http.MethodGet, "/api/orders", u.ID, "user", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["results"])
	assert.Len(t, body["data"].(map[string]any)["doc"], 1)
}

func TestCartAdd_RejectsMalformedNumbers(t *testing.T) {
	s := newTestServer(t)
	u, a, _ := s.seed(t)

	for _, body := range []string{
		`{"productId":"` + a.ID + `","quantity":"lots","discountedPrice":"1"}`,
		`{"productId":"` + a.ID + `","quantity":1,"discountedPrice":"free"}`,
		`{"productId":"` + a.ID + `","quantity":null,"discountedPrice":1}`,
		`{"productId":"not-an-id","quantity":1,"discountedPrice":1}`,
		`{"productId":"` + a.ID + `"}`,
	} {
		w := s.do(http.MethodPatch, "/api/users/cart/add", u.ID, "user", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCartRemove_MissingLineIs404(t *testing.T) {
	s := newTestServer(t)
	u, a, _ := s.seed(t)

	w := s.do(http.MethodDelete, "/api/users/cart/remove", u.ID, "user", `{"productId":"`+a.ID+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	s.do(http.MethodPatch, "/api/users/cart/add", u.ID, "user", `{"productId":"`+a.ID+`","quantity":1,"discountedPrice":1}`)
	w = s.do(http.MethodDelete, "/api/users/cart/remove", u.ID, "user", `{"productId":"`+a.ID+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckout_DeletedProductIs409AndCartKept(t *testing.T) {
	s := newTestServer(t)
	u, a, b := s.seed(t)
	s.do(http.MethodPatch, "/api/users/cart/add", u.ID, "user", `{"productId":"`+a.ID+`","quantity":1,"discountedPrice":1}`)
	s.do(http.MethodPatch, "/api/users/cart/add", u.ID, "user", `{"productId":"`+b.ID+`","quantity":1,"discountedPrice":1}`)
	require.NoError(t, s.store.Products().Delete(context.Background(), b.ID))

	w := s.do(http.MethodPost, "/api/orders", u.ID, "user", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PRODUCT_RESOLUTION", decode(t, w)["error"].(map[string]any)["category"])

	w = s.do(http.MethodGet, "/api/users/cart", u.ID, "user", "")
	assert.Len(t, decode(t, w)["data"].(map[string]any)["items"], 2)
}

func TestAdminOrders_PageEnvelope(t *testing.T) {
	s := newTestServer(t)
	u, a, _ := s.seed(t)
	for i := 0; i < 25; i++ {
		s.do(http.MethodPatch, "/api/users/cart/add", u.ID, "user", `{"productId":"`+a.ID+`","quantity":1,"discountedPrice":1}`)
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/orders", u.ID, "user", "").Code)
	}

	w := s.do(http.MethodGet, "/api/orders/admin?page=2&limit=10", u.ID, "user", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/orders/admin?page=2&limit=10&name=tEsS", "admin-id", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.EqualValues(t, 25, body["totalCount"])
	assert.EqualValues(t, 2, body["currentPage"])
	assert.EqualValues(t, 3, body["totalPages"])
	assert.Len(t, body["data"].(map[string]any)["doc"], 10)
}

func TestProductGet_InvalidIDIs400(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/products/xyz", "", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/products/665f1c2e9b1d4a3f8c0e1a22", "", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
