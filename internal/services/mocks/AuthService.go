package mocks

import (
	"context"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/mock"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	var out *models.LoginResponse
	if v := args.Get(0); v != nil {
		out = v.(*models.LoginResponse)
	}
	return out, args.Error(1)
}

func (m *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.Session, error) {
	args := m.Called(ctx, req)

	var out *models.Session
	if v := args.Get(0); v != nil {
		out = v.(*models.Session)
	}
	return out, args.Error(1)
}
