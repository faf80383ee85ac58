package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Swap writes entries and removes drop in one transaction.
	Swap(ctx context.Context, entries []Entry, ttl time.Duration, drop ...string) error
	Close() error
}

// Entry is one key written by Swap.
type Entry struct {
	Key   string
	Value any
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const CatalogKeyPrefix = "catalog"

// Normalized collections are cached whole, one key per collection.
var (
	ProductsKey   = Key(CatalogKeyPrefix, "products")
	CategoriesKey = Key(CatalogKeyPrefix, "categories")
	HeroKey       = Key(CatalogKeyPrefix, "hero")
)
