package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

// ImageStore persists an uploaded product image and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// GCSImages stores images in a Google Cloud Storage bucket.
type GCSImages struct {
	Client *storage.Client
	Bucket string
}

func (g GCSImages) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if g.Client == nil || g.Bucket == "" {
		return "", fmt.Errorf("gcs not configured")
	}
	return helpers.UploadImageToGCS(ctx, g.Client, g.Bucket, objectPath, contentType, r)
}

type ProductService struct {
	Repo     repo.ProductRepository
	Index    repo.ProductSearchIndex
	Images   ImageStore
	Redis    *redis.Client
	CacheTTL time.Duration
	MaxLimit int
	Logger   *logrus.Logger

	group singleflight.Group
}

type ProductOptions struct {
	CacheTTL time.Duration
	MaxLimit int
}

func NewProductService(products repo.ProductRepository, index repo.ProductSearchIndex, images ImageStore, rdb *redis.Client, logger *logrus.Logger, opts ProductOptions) *ProductService {
	return &ProductService{
		Repo:     products,
		Index:    index,
		Images:   images,
		Redis:    rdb,
		CacheTTL: opts.CacheTTL,
		MaxLimit: opts.MaxLimit,
		Logger:   orDiscard(logger),
	}
}

// ProductInput is the parsed form of a create or update request. Nil fields are left unchanged on update.
type ProductInput struct {
	Name            *string
	Description     *string
	Category        *string
	Price           *decimal.Decimal
	DiscountedPrice *decimal.Decimal
	Stock           *int
}

type ImageUpload struct {
	Filename    string
	ContentType string
	AltText     string
	Body        io.Reader
}

type ProductQuery struct {
	Name     string
	Category string
	Page     string
	Limit    string
}

type ProductPage struct {
	Products    []entity.Product
	TotalCount  int64
	CurrentPage int
	TotalPages  int
}

func (s *ProductService) List(ctx context.Context, q ProductQuery) (ProductPage, error) {
	page, limit := helpers.ParsePage(q.Page, q.Limit, s.MaxLimit)
	products, total, err := s.Repo.List(ctx, repo.ProductFilter{
		Name:     strings.TrimSpace(q.Name),
		Category: strings.TrimSpace(q.Category),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return ProductPage{}, apperror.Wrap("failed to list products", err)
	}
	return ProductPage{
		Products:    products,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  helpers.TotalPages(total, limit),
	}, nil
}

// Get reads through the Redis cache. Concurrent misses for one id share a single store read.
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	if !entity.ValidProductID(id) {
		return nil, apperror.NewValidation("invalid product id")
	}
	key := helpers.KeyProduct(id)
	if s.Redis != nil {
		var cached entity.Product
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached)
		if err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("product cache read failed")
		}
		if ok {
			return &cached, nil
		}
	}

	v, err, _ := s.group.Do(id, func() (any, error) {
		p, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s.Redis != nil && s.CacheTTL > 0 {
			if cErr := helpers.RedisSetJSON(ctx, s.Redis, key, p, s.CacheTTL); cErr != nil {
				s.Logger.WithError(cErr).WithField("key", key).Warn("product cache write failed")
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, apperror.Wrap("failed to load product", err)
	}
	p := *v.(*entity.Product)
	return &p, nil
}

func (s *ProductService) Search(ctx context.Context, q string, size int) ([]entity.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.NewValidation("q is required")
	}
	if s.Index == nil {
		if size <= 0 || size > 50 {
			size = 10
		}
		out, _, err := s.Repo.List(ctx, repo.ProductFilter{Name: q, Page: 1, Limit: size})
		if err != nil {
			return nil, apperror.Wrap("product search failed", err)
		}
		return out, nil
	}
	out, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Wrap("product search failed", err)
	}
	return out, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput, images []ImageUpload) (*entity.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if in.Price == nil {
		return nil, apperror.NewValidation("price is required")
	}
	p := &entity.Product{DiscountedPrice: in.Price.Round(2)}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	uploaded, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}
	p.Images = uploaded

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, apperror.Wrap("failed to create product", err)
	}
	s.reindex(ctx, p)
	s.Logger.WithField("product_id", p.ID).Info("product created")
	return p, nil
}

// Update applies the provided fields. New images replace the existing set.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput, images []ImageUpload) (*entity.Product, error) {
	if !entity.ValidProductID(id) {
		return nil, apperror.NewValidation("invalid product id")
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("failed to load product", err)
	}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		uploaded, err := s.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		p.Images = uploaded
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, apperror.Wrap("failed to update product", err)
	}
	s.invalidate(ctx, id)
	s.reindex(ctx, p)
	return p, nil
}

// Delete removes the product from the catalog. Cart lines referencing it are
// left alone; checkout rejects them during product resolution.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if !entity.ValidProductID(id) {
		return apperror.NewValidation("invalid product id")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return apperror.Wrap("failed to delete product", err)
	}
	s.invalidate(ctx, id)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("product unindex failed")
		}
	}
	return nil
}

func applyProductInput(p *entity.Product, in ProductInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return apperror.NewValidation("name must not be empty")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return apperror.NewValidation("price must not be negative")
		}
		p.Price = in.Price.Round(2)
	}
	if in.DiscountedPrice != nil {
		if in.DiscountedPrice.IsNegative() {
			return apperror.NewValidation("discountedPrice must not be negative")
		}
		p.DiscountedPrice = in.DiscountedPrice.Round(2)
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return apperror.NewValidation("stock must not be negative")
		}
		p.Stock = *in.Stock
	}
	return nil
}

func (s *ProductService) uploadImages(ctx context.Context, images []ImageUpload) ([]entity.ProductImage, error) {
	out := make([]entity.ProductImage, 0, len(images))
	if len(images) == 0 {
		return out, nil
	}
	if s.Images == nil {
		return nil, apperror.NewValidation("image uploads are not configured")
	}
	for i, img := range images {
		ext := strings.ToLower(filepath.Ext(img.Filename))
		objectPath := "products/" + uuid.NewString() + ext
		url, err := s.Images.Upload(ctx, objectPath, img.ContentType, img.Body)
		if err != nil {
			return nil, apperror.Wrap("failed to upload image", err)
		}
		alt := img.AltText
		if alt == "" {
			alt = fmt.Sprintf("Image %d", i+1)
		}
		out = append(out, entity.ProductImage{URL: url, AltText: alt})
	}
	return out, nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, helpers.KeyProduct(id)); err != nil {
		s.Logger.WithError(err).WithField("product_id", id).Warn("product cache invalidation failed")
	}
}

func (s *ProductService) reindex(ctx context.Context, p *entity.Product) {
	if s.Index == nil {
		return
	}
	// Index logs its own failures; the catalog stays authoritative.
	_ = s.Index.Index(ctx, p)
}
