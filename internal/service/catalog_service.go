package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CatalogStore is the slice of the store the catalog service needs
type CatalogStore interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
}

// CatalogCache caches product reads; cache errors are tolerated and the
// store remains the source of truth
type CatalogCache interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	GetProductList(ctx context.Context, category models.Category) ([]models.Product, error)
	SetProductList(ctx context.Context, category models.Category, products []models.Product) error
}

// CatalogService serves product listings and details with a cache-aside
// Redis layer in front of Postgres
type CatalogService struct {
	store  CatalogStore
	cache  CatalogCache
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore, cache CatalogCache) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// ListProducts returns the catalog, optionally filtered by category
func (s *CatalogService) ListProducts(ctx context.Context, category models.Category) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, ErrValidation)
	}

	if cached, err := s.cache.GetProductList(ctx, category); err == nil {
		util.CatalogCacheHitsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	util.CatalogCacheHitsTotal.WithLabelValues("miss").Inc()

	var products []models.Product
	var err error
	if category == "" {
		products, err = s.store.GetProducts(ctx)
	} else {
		products, err = s.store.GetProductsByCategory(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if err := s.cache.SetProductList(ctx, category, products); err != nil {
		s.logger.Warn("Failed to cache product list", zap.Error(err))
	}

	return products, nil
}

// GetProduct returns one product by id
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	if cached, err := s.cache.GetProduct(ctx, id); err == nil {
		util.CatalogCacheHitsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	util.CatalogCacheHitsTotal.WithLabelValues("miss").Inc()

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warn("Failed to cache product", zap.Int64("product_id", id), zap.Error(err))
	}

	return product, nil
}
