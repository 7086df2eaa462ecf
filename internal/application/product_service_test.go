package application

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Index(ctx context.Context, p *entity.Product) error {
	return m.Called(p.ID).Error(0)
}

func (m *mockIndex) Remove(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockIndex) Search(ctx context.Context, q string, size int) ([]entity.Product, error) {
	args := m.Called(q, size)
	return args.Get(0).([]entity.Product), args.Error(1)
}

type fakeImages struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeImages) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, objectPath)
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newProductFixture(t *testing.T) (*ProductService, *mockIndex, *fakeImages, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	idx := &mockIndex{}
	imgs := &fakeImages{}
	svc := NewProductService(memory.NewStore().Products(), idx, imgs, rdb, nil, ProductOptions{CacheTTL: time.Minute, MaxLimit: 50})
	return svc, idx, imgs, mr
}

func TestProductService_CreateUploadsImagesAndIndexes(t *testing.T) {
	svc, idx, imgs, _ := newProductFixture(t)
	idx.On("Index", mock.Anything).Return(nil).Once()

	p, err := svc.Create(context.Background(), ProductInput{
		Name:     strPtr("Teapot"),
		Category: strPtr("kitchen"),
		Price:    decPtr("19.999"),
	}, []ImageUpload{
		{Filename: "Front.PNG", ContentType: "image/png", AltText: "front", Body: strings.NewReader("png")},
		{Filename: "side.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")},
	})
	require.NoError(t, err)

	assert.True(t, entity.ValidProductID(p.ID))
	assert.Equal(t, "20.00", p.Price.StringFixed(2))
	assert.Equal(t, "20.00", p.DiscountedPrice.StringFixed(2))
	require.Len(t, p.Images, 2)
	assert.Equal(t, "front", p.Images[0].AltText)
	assert.Equal(t, "Image 2", p.Images[1].AltText)
	assert.True(t, strings.HasPrefix(imgs.paths[0], "products/"))
	assert.True(t, strings.HasSuffix(imgs.paths[0], ".png"))
	idx.AssertExpectations(t)
}

func TestProductService_CreateRequiresNameAndPrice(t *testing.T) {
	svc, _, _, _ := newProductFixture(t)
	_, err := svc.Create(context.Background(), ProductInput{Price: decPtr("1")}, nil)
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Create(context.Background(), ProductInput{Name: strPtr("x")}, nil)
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Create(context.Background(), ProductInput{Name: strPtr("x"), Price: decPtr("-1")}, nil)
	assert.True(t, apperror.IsValidation(err))
}

func TestProductService_GetCachesAndUpdateInvalidates(t *testing.T) {
	svc, idx, _, mr := newProductFixture(t)
	idx.On("Index", mock.Anything).Return(nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductInput{Name: strPtr("Vase"), Price: decPtr("8")}, nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vase", got.Name)
	assert.True(t, mr.Exists(helpers.KeyProduct(p.ID)))

	_, err = svc.Update(ctx, p.ID, ProductInput{Name: strPtr("Tall vase")}, nil)
	require.NoError(t, err)
	assert.False(t, mr.Exists(helpers.KeyProduct(p.ID)))

	got, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tall vase", got.Name)
}

func TestProductService_GetValidatesID(t *testing.T) {
	svc, _, _, _ := newProductFixture(t)
	_, err := svc.Get(context.Background(), "bogus")
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Get(context.Background(), "665f1c2e9b1d4a3f8c0e1a22")
	assert.True(t, apperror.IsNotFound(err))
}

func TestProductService_DeleteRemovesFromIndexAndCache(t *testing.T) {
	svc, idx, _, mr := newProductFixture(t)
	idx.On("Index", mock.Anything).Return(nil)
	ctx := context.Background()
	p, err := svc.Create(ctx, ProductInput{Name: strPtr("Rug"), Price: decPtr("50")}, nil)
	require.NoError(t, err)
	_, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)

	idx.On("Remove", p.ID).Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.False(t, mr.Exists(helpers.KeyProduct(p.ID)))
	idx.AssertCalled(t, "Remove", p.ID)

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, p.ID)))
}

func TestProductService_ListPaginates(t *testing.T) {
	svc, idx, _, _ := newProductFixture(t)
	idx.On("Index", mock.Anything).Return(nil)
	ctx := context.Background()
	for _, name := range []string{"red mug", "blue mug", "green plate"} {
		_, err := svc.Create(ctx, ProductInput{Name: strPtr(name), Price: decPtr("1")}, nil)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ProductQuery{Name: "MUG", Page: "1", Limit: "1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Products, 1)
}

func TestProductService_SearchDelegatesToIndex(t *testing.T) {
	svc, idx, _, _ := newProductFixture(t)
	idx.On("Search", "mug", 10).Return([]entity.Product{{ID: "a", Name: "mug"}}, nil)

	out, err := svc.Search(context.Background(), " mug ", 10)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = svc.Search(context.Background(), "  ", 10)
	assert.True(t, apperror.IsValidation(err))
}

func TestProductService_SearchFallsBackToCatalogWithoutIndex(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "Blue Mug", "9.50")
	seedProduct(t, store, "Lamp", "20.00")
	svc := NewProductService(store.Products(), nil, nil, nil, nil, ProductOptions{})

	out, err := svc.Search(context.Background(), "mug", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Blue Mug", out[0].Name)
}
