package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// ProductIndex keeps a full-text copy of the catalog in Elasticsearch.
// The catalog store stays authoritative; a failed index call is logged and returned.
type ProductIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewProductIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ProductIndex {
	return &ProductIndex{es: es, index: index, logger: logger}
}

const productMapping = `{
  "mappings": {
    "properties": {
      "id":              {"type": "keyword"},
      "name":            {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":     {"type": "text"},
      "category":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "price":           {"type": "scaled_float", "scaling_factor": 100},
      "discountedPrice": {"type": "scaled_float", "scaling_factor": 100},
      "stock":           {"type": "integer"},
      "createdAt":       {"type": "date"},
      "updatedAt":       {"type": "date"}
    }
  }
}`

// EnsureIndex creates the products index with its mapping if it does not exist yet.
func (p *ProductIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	exists, err := esapi.IndicesExistsRequest{Index: []string{p.index}}.Do(c, p.es)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}
	if exists.StatusCode != 404 {
		return fmt.Errorf("es index exists: %s", exists.Status())
	}

	res, err := esapi.IndicesCreateRequest{Index: p.index, Body: strings.NewReader(productMapping)}.Do(c, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// 400 resource_already_exists when another instance won the race
	if res.IsError() && res.StatusCode != 400 {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	p.logger.WithField("index", p.index).Info("elasticsearch index ready")
	return nil
}

func (p *ProductIndex) Index(ctx context.Context, prod *entity.Product) error {
	b, err := json.Marshal(prod)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: p.index, DocumentID: prod.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, p.es)
	if err != nil {
		p.logger.WithError(err).WithField("product_id", prod.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		p.logger.WithField("status", res.Status()).WithField("product_id", prod.ID).Warn("es index response error")
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (p *ProductIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: p.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, p.es)
	if err != nil {
		p.logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over name, category and description.
func (p *ProductIndex) Search(ctx context.Context, q string, size int) ([]entity.Product, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^3", "category^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := p.es.Search(
		p.es.Search.WithContext(c),
		p.es.Search.WithIndex(p.index),
		p.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source entity.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		prod := h.Source
		if prod.ID == "" {
			prod.ID = h.ID
		}
		out = append(out, prod)
	}
	return out, nil
}

var _ repository.ProductSearchIndex = (*ProductIndex)(nil)
