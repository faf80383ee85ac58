package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendOrderConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) error {
	return m.Called(ctx, confirmation).Error(0)
}
