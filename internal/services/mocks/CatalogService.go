package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductListResponse, error) {
	args := m.Called(ctx, filter)

	var out *models.ProductListResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.ProductListResponse)
	}
	return out, args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	var out *models.Product
	if v := args.Get(0); v != nil {
		out = v.(*models.Product)
	}
	return out, args.Error(1)
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)

	var out []*models.Category
	if v := args.Get(0); v != nil {
		out = v.([]*models.Category)
	}
	return out, args.Error(1)
}

func (m *CatalogService) Hero(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)

	var out []*models.Product
	if v := args.Get(0); v != nil {
		out = v.([]*models.Product)
	}
	return out, args.Error(1)
}

func (m *CatalogService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
