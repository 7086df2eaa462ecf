package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

func newTestIndex(t *testing.T, h http.HandlerFunc) *ProductIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewProductIndex(es, "products", logger)
}

func TestProductIndex_IndexPutsDocumentByID(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	err := idx.Index(context.Background(), &entity.Product{ID: "665f1c2e9b1d4a3f8c0e1a22", Name: "Mug", Price: decimal.RequireFromString("12")})
	require.NoError(t, err)
	assert.Equal(t, "/products/_doc/665f1c2e9b1d4a3f8c0e1a22", gotPath)
	assert.Equal(t, "Mug", gotBody["name"])
}

func TestProductIndex_SearchDecodesHits(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/_search"))
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"abc","_source":{"name":"Blue mug","price":"9.50"}}]}}`)
	})

	out, err := idx.Search(context.Background(), "mug", 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "abc", out[0].ID)
	assert.Equal(t, "Blue mug", out[0].Name)
	assert.True(t, out[0].Price.Equal(decimal.RequireFromString("9.5")))
}

func TestProductIndex_RemoveIgnoresMissingDocument(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	})
	assert.NoError(t, idx.Remove(context.Background(), "gone"))
}

func TestProductIndex_EnsureIndexCreatesWhenMissing(t *testing.T) {
	var created bool
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"scaled_float"`)
			_, _ = io.WriteString(w, `{"acknowledged":true}`)
		}
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.True(t, created)
}

func TestProductIndex_EnsureIndexNoopWhenPresent(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, idx.EnsureIndex(context.Background()))
}
