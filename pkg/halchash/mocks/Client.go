package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

// Client is a testify mock of halchash.Client.
type Client struct {
	mock.Mock
}

func (m *Client) records(args mock.Arguments) ([]map[string]any, error) {
	var out []map[string]any
	if v := args.Get(0); v != nil {
		out = v.([]map[string]any)
	}
	return out, args.Error(1)
}

func (m *Client) ListProducts(ctx context.Context) ([]map[string]any, error) {
	return m.records(m.Called(ctx))
}

func (m *Client) ListCategories(ctx context.Context) ([]map[string]any, error) {
	return m.records(m.Called(ctx))
}

func (m *Client) GetHero(ctx context.Context) ([]map[string]any, error) {
	return m.records(m.Called(ctx))
}

func (m *Client) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)

	var out *models.AuthResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.AuthResponse)
	}
	return out, args.Error(1)
}

func (m *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)

	var out *models.AuthResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.AuthResponse)
	}
	return out, args.Error(1)
}

func (m *Client) CreateOrder(ctx context.Context, token string, payload *models.CheckoutOrderPayload) (*models.CreateOrderResponse, error) {
	args := m.Called(ctx, token, payload)

	var out *models.CreateOrderResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.CreateOrderResponse)
	}
	return out, args.Error(1)
}

func (m *Client) GetWishlist(ctx context.Context, token string) ([]models.WishlistEntry, error) {
	args := m.Called(ctx, token)

	var out []models.WishlistEntry
	if v := args.Get(0); v != nil {
		out = v.([]models.WishlistEntry)
	}
	return out, args.Error(1)
}

func (m *Client) AddToWishlist(ctx context.Context, token, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *Client) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *Client) ListMyOrders(ctx context.Context, token string, status models.OrderStatus) ([]models.UpstreamOrder, error) {
	args := m.Called(ctx, token, status)

	var out []models.UpstreamOrder
	if v := args.Get(0); v != nil {
		out = v.([]models.UpstreamOrder)
	}
	return out, args.Error(1)
}

func (m *Client) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
