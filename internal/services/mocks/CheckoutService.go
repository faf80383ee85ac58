package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/cart"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) Quote(ctx context.Context, req *models.QuoteRequest, items []models.CartItem) (*models.CheckoutQuote, error) {
	args := m.Called(ctx, req, items)

	var out *models.CheckoutQuote
	if v := args.Get(0); v != nil {
		out = v.(*models.CheckoutQuote)
	}
	return out, args.Error(1)
}

func (m *CheckoutService) PlaceOrder(ctx context.Context, req *models.CheckoutRequest, session *models.Session, store *cart.Store) (*models.CheckoutResult, error) {
	args := m.Called(ctx, req, session, store)

	var out *models.CheckoutResult
	if v := args.Get(0); v != nil {
		out = v.(*models.CheckoutResult)
	}
	return out, args.Error(1)
}
