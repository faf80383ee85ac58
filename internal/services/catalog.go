package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/cache"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/catalog"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/metrics"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash"
)

// heroFallbackSize is how many catalog products stand in for an empty hero list.
const heroFallbackSize = 4

type CatalogService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductListResponse, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	Hero(ctx context.Context) ([]*models.Product, error)
	Refresh(ctx context.Context) error
}

type catalogService struct {
	client     halchash.Client
	cache      cache.Cache
	normalizer *catalog.Normalizer
	ttl        time.Duration
}

func NewCatalogService(client halchash.Client, c cache.Cache, normalizer *catalog.Normalizer, ttl time.Duration) CatalogService {
	return &catalogService{
		client:     client,
		cache:      c,
		normalizer: normalizer,
		ttl:        ttl,
	}
}

func (s *catalogService) products(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if s.cached(ctx, "products", cache.ProductsKey, &products) {
		return products, nil
	}

	raws, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	products = s.normalizer.Products(raws)
	s.store(ctx, cache.ProductsKey, products)

	return products, nil
}

func (s *catalogService) categories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if s.cached(ctx, "categories", cache.CategoriesKey, &categories) {
		return categories, nil
	}

	raws, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	categories = s.normalizer.Categories(raws)
	s.store(ctx, cache.CategoriesKey, categories)

	return categories, nil
}

// cached reads key into dest. A cache failure is logged and treated as a miss.
func (s *catalogService) cached(ctx context.Context, collection, key string, dest any) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		found = false
	}

	metrics.RecordCatalogCache(collection, found)

	return found
}

func (s *catalogService) store(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductListResponse, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}

	filtered := catalog.Filter(products, filter)

	return &models.ProductListResponse{
		Products: filtered,
		Total:    len(products),
		Shown:    len(filtered),
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}

	product := catalog.FindByID(products, id)
	if product == nil {
		return nil, errors.NotFoundError("Product not found").WithDetail(id)
	}

	return product, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories(ctx)
}

// Hero returns the backend's hero products, falling back to the first catalog
// products when the backend has none or fails.
func (s *catalogService) Hero(ctx context.Context) ([]*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	var hero []*models.Product
	if s.cached(ctx, "hero", cache.HeroKey, &hero) {
		return hero, nil
	}

	raws, err := s.client.GetHero(ctx)
	if err != nil {
		logger.Warn("Hero products unavailable, using catalog", slog.String("error", err.Error()))
	}

	hero = s.normalizer.Products(raws)

	if len(hero) == 0 {
		products, err := s.products(ctx)
		if err != nil {
			return nil, err
		}

		hero = products[:min(heroFallbackSize, len(products))]
	}

	s.store(ctx, cache.HeroKey, hero)

	return hero, nil
}

// Refresh reloads products and categories together and swaps both cached
// collections in one cache transaction, dropping the cached hero list. Nothing
// is replaced if either load fails.
func (s *catalogService) Refresh(ctx context.Context) error {
	logger := middleware.LoggerFromContext(ctx)

	var (
		wg                   sync.WaitGroup
		rawProducts, rawCats []map[string]any
		productErr, catErr   error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		rawProducts, productErr = s.client.ListProducts(ctx)
	}()

	go func() {
		defer wg.Done()
		rawCats, catErr = s.client.ListCategories(ctx)
	}()

	wg.Wait()

	if productErr != nil {
		logger.Error("Catalog refresh failed loading products", slog.String("error", productErr.Error()))
		return productErr
	}

	if catErr != nil {
		logger.Error("Catalog refresh failed loading categories", slog.String("error", catErr.Error()))
		return catErr
	}

	products := s.normalizer.Products(rawProducts)
	categories := s.normalizer.Categories(rawCats)

	entries := []cache.Entry{
		{Key: cache.ProductsKey, Value: products},
		{Key: cache.CategoriesKey, Value: categories},
	}

	if err := s.cache.Swap(ctx, entries, s.ttl, cache.HeroKey); err != nil {
		logger.Error("Catalog refresh failed writing cache", slog.String("error", err.Error()))
		return errors.InternalError("Failed to refresh catalog").WithError(err)
	}

	logger.Info("Catalog refreshed", slog.Int("products", len(products)), slog.Int("categories", len(categories)))

	return nil
}
