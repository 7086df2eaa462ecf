package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
)

func TestWrap_PassesAppErrorsThrough(t *testing.T) {
	nf := apperror.NewNotFound("product %s not found", "abc")
	wrapped := apperror.Wrap("load product", nf)

	assert.Same(t, nf, wrapped)
	assert.True(t, apperror.IsNotFound(wrapped))
}

func TestWrap_StoreErrorBecomesInternal(t *testing.T) {
	storeErr := errors.New("connection reset by peer")
	err := apperror.Wrap("list cart lines", storeErr)

	assert.True(t, apperror.IsInternal(err))
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, apperror.Wrap("noop", nil))
}

func TestHTTPStatus_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidation("bad quantity"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperror.NewNotFound("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"empty cart", apperror.NewEmptyCart(), http.StatusBadRequest, "EMPTY_CART"},
		{"resolution", apperror.NewProductResolution([]string{"a"}), http.StatusConflict, "PRODUCT_RESOLUTION"},
		{"unauthorized", apperror.NewUnauthorized(""), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperror.NewForbidden(""), http.StatusForbidden, "FORBIDDEN"},
		{"conflict", apperror.NewConflict("email already in use"), http.StatusConflict, "CONFLICT"},
		{"wrapped in fmt", fmt.Errorf("checkout: %w", apperror.NewEmptyCart()), http.StatusBadRequest, "EMPTY_CART"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, category, _ := apperror.HTTPStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestHTTPStatus_InternalHidesCause(t *testing.T) {
	err := apperror.Wrap("failed to place order", errors.New("pq: deadlock detected"))
	status, _, msg := apperror.HTTPStatus(err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "failed to place order", msg)
}

func TestProductResolutionError_ListsMissingIDs(t *testing.T) {
	err := apperror.NewProductResolution([]string{"p1", "p2"})
	assert.Equal(t, "some products not found: p1, p2", err.Error())
	assert.True(t, apperror.IsProductResolution(err))
}
