package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

type WishlistService struct {
	mock.Mock
}

func (m *WishlistService) List(ctx context.Context, token string) (*models.WishlistResponse, error) {
	args := m.Called(ctx, token)

	var out *models.WishlistResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.WishlistResponse)
	}
	return out, args.Error(1)
}

func (m *WishlistService) Add(ctx context.Context, token, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *WishlistService) Remove(ctx context.Context, token, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *WishlistService) Toggle(ctx context.Context, token, productID string) (*models.WishlistToggleResponse, error) {
	args := m.Called(ctx, token, productID)

	var out *models.WishlistToggleResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.WishlistToggleResponse)
	}
	return out, args.Error(1)
}

func (m *WishlistService) Contains(ctx context.Context, token, productID string) (bool, error) {
	args := m.Called(ctx, token, productID)
	return args.Bool(0), args.Error(1)
}
