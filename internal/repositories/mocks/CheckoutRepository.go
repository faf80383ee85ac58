package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

type CheckoutRepository struct {
	mock.Mock
}

func (m *CheckoutRepository) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *CheckoutRepository) Record(ctx context.Context, submission *models.CheckoutSubmission) error {
	return m.Called(ctx, submission).Error(0)
}
