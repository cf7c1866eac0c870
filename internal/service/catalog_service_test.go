package service

import (
	"context"
	"fmt"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogStore counts store reads so cache behavior is observable
type fakeCatalogStore struct {
	products map[int64]*models.Product
	reads    int
}

func (f *fakeCatalogStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	f.reads++
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("product %d: %w", id, store.ErrNotFound)
}

func (f *fakeCatalogStore) GetProducts(_ context.Context) ([]models.Product, error) {
	f.reads++
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeCatalogStore) GetProductsByCategory(_ context.Context, category models.Category) ([]models.Product, error) {
	f.reads++
	var out []models.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

// memCache is an in-memory CatalogCache
type memCache struct {
	products map[int64]*models.Product
	lists    map[models.Category][]models.Product
}

func newMemCache() *memCache {
	return &memCache{
		products: make(map[int64]*models.Product),
		lists:    make(map[models.Category][]models.Product),
	}
}

func (c *memCache) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := c.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("cache miss")
}

func (c *memCache) SetProduct(_ context.Context, product *models.Product) error {
	cp := *product
	c.products[product.ID] = &cp
	return nil
}

func (c *memCache) GetProductList(_ context.Context, category models.Category) ([]models.Product, error) {
	if l, ok := c.lists[category]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("cache miss")
}

func (c *memCache) SetProductList(_ context.Context, category models.Category, products []models.Product) error {
	c.lists[category] = products
	return nil
}

func TestGetProductCacheAside(t *testing.T) {
	fs := &fakeCatalogStore{products: map[int64]*models.Product{
		1: testProduct(1, "Masala Peanuts", 120, true),
	}}
	svc := NewCatalogService(fs, newMemCache())

	ctx := context.Background()

	first, err := svc.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Masala Peanuts", first.Name)
	assert.Equal(t, 1, fs.reads)

	// Second read is served from the cache.
	second, err := svc.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, fs.reads)
}

func TestGetProductNotFound(t *testing.T) {
	fs := &fakeCatalogStore{products: map[int64]*models.Product{}}
	svc := NewCatalogService(fs, newMemCache())

	_, err := svc.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProductsByCategory(t *testing.T) {
	fs := &fakeCatalogStore{products: map[int64]*models.Product{
		1: testProduct(1, "Masala Peanuts", 120, true),
		2: {ID: 2, Name: "Kaju Katli", Category: models.CategorySweets, InStock: true},
	}}
	svc := NewCatalogService(fs, newMemCache())

	ctx := context.Background()

	sweets, err := svc.ListProducts(ctx, models.CategorySweets)
	require.NoError(t, err)
	require.Len(t, sweets, 1)
	assert.Equal(t, "Kaju Katli", sweets[0].Name)

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListProducts(ctx, "Gadgets")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListProductsCachesListing(t *testing.T) {
	fs := &fakeCatalogStore{products: map[int64]*models.Product{
		1: testProduct(1, "Masala Peanuts", 120, true),
	}}
	svc := NewCatalogService(fs, newMemCache())

	ctx := context.Background()

	_, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	_, err = svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, fs.reads)
}
