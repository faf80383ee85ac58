package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) ListMine(ctx context.Context, token, status string) (*models.OrderHistoryResponse, error) {
	args := m.Called(ctx, token, status)

	var out *models.OrderHistoryResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.OrderHistoryResponse)
	}
	return out, args.Error(1)
}
