package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	productKeyPrefix = "product:"
	productListKey   = "products:all"
	defaultTTL       = 5 * time.Minute
)

// ErrCacheMiss is returned when a key is absent from the cache
var ErrCacheMiss = redis.Nil

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client for the catalog cache
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: defaultTTL}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetProduct retrieves a cached product. Returns ErrCacheMiss when absent.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, fmt.Sprintf("%s%d", productKeyPrefix, id)).Bytes()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return &product, nil
}

// SetProduct caches a product with the configured TTL
func (c *Client) SetProduct(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}
	return c.rdb.Set(ctx, fmt.Sprintf("%s%d", productKeyPrefix, product.ID), data, c.ttl).Err()
}

// GetProductList retrieves the cached product listing for a category key.
// Use an empty category for the full catalog.
func (c *Client) GetProductList(ctx context.Context, category models.Category) ([]models.Product, error) {
	data, err := c.rdb.Get(ctx, listKey(category)).Bytes()
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode cached product list: %w", err)
	}
	return products, nil
}

// SetProductList caches a product listing for a category key
func (c *Client) SetProductList(ctx context.Context, category models.Category, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode product list: %w", err)
	}
	return c.rdb.Set(ctx, listKey(category), data, c.ttl).Err()
}

// InvalidateProducts drops all cached catalog entries, both single
// products and listings
func (c *Client) InvalidateProducts(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "product*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func listKey(category models.Category) string {
	if category == "" {
		return productListKey
	}
	return fmt.Sprintf("products:category:%s", category)
}
