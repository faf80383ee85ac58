package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	repoMocks "github.com/sajibul-islam-robin/halchash-frontend/internal/repositories/mocks"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	t.Run("Success - Login", func(t *testing.T) {
		// Arrange
		client := new(mocks.Client)
		limiter := new(repoMocks.RateLimitRepository)
		authService := service.NewAuthService(client, limiter)
		ctx := context.Background()

		user := &models.User{ID: "u1", Name: "Karim", Email: "karim@example.com"}
		limiter.On("CheckLoginRateLimit", ctx, "karim@example.com").Return(true, 4, 0, nil).Once()
		client.On("Login", ctx, &models.LoginRequest{Email: "karim@example.com", Password: "secret1"}).
			Return(&models.AuthResponse{Success: true, User: user, Token: "tok"}, nil).Once()

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Email: " karim@example.com ", Password: "secret1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, user, resp.User)
		assert.Equal(t, 4, resp.RemainingTries)
		require.NotNil(t, resp.Session)
		assert.Equal(t, "tok", resp.Session.Token)

		limiter.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		// Arrange
		client := new(mocks.Client)
		limiter := new(repoMocks.RateLimitRepository)
		authService := service.NewAuthService(client, limiter)
		ctx := context.Background()

		limiter.On("CheckLoginRateLimit", ctx, "karim@example.com").Return(false, 0, 120, nil).Once()

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Email: "karim@example.com", Password: "secret1"})

		// Assert
		assert.Nil(t, resp)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		assert.Equal(t, "retry after 120 seconds", appErr.Detail)

		client.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Limiter unavailable", func(t *testing.T) {
		// Arrange
		client := new(mocks.Client)
		limiter := new(repoMocks.RateLimitRepository)
		authService := service.NewAuthService(client, limiter)
		ctx := context.Background()

		limiter.On("CheckLoginRateLimit", ctx, "karim@example.com").Return(false, 0, 0, errors.New("connection refused")).Once()

		// Act
		_, err := authService.Login(ctx, &models.LoginRequest{Email: "karim@example.com", Password: "secret1"})

		// Assert
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
		client.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Wrong credentials", func(t *testing.T) {
		// Arrange
		client := new(mocks.Client)
		limiter := new(repoMocks.RateLimitRepository)
		authService := service.NewAuthService(client, limiter)
		ctx := context.Background()

		limiter.On("CheckLoginRateLimit", ctx, "karim@example.com").Return(true, 2, 0, nil).Once()
		client.On("Login", ctx, mock.Anything).Return(nil, appErrors.UnauthorizedError("Invalid email or password")).Once()

		// Act
		resp, err := authService.Login(ctx, &models.LoginRequest{Email: "karim@example.com", Password: "nope"})

		// Assert
		assert.Nil(t, resp)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Invalid email or password", appErr.Message)
	})
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("Success - Signup", func(t *testing.T) {
		// Arrange
		client := new(mocks.Client)
		authService := service.NewAuthService(client, new(repoMocks.RateLimitRepository))
		ctx := context.Background()

		req := &models.SignupRequest{Name: "Karim", Email: "karim@example.com", Password: "secret1"}
		user := &models.User{ID: float64(3), Name: "Karim"}
		client.On("Signup", ctx, req).Return(&models.AuthResponse{Success: true, User: user, Token: "tok"}, nil).Once()

		// Act
		session, err := authService.Signup(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, user, session.User)
		assert.Equal(t, "tok", session.Token)
	})

	t.Run("Failure - Upstream returned no user", func(t *testing.T) {
		// Arrange
		client := new(mocks.Client)
		authService := service.NewAuthService(client, new(repoMocks.RateLimitRepository))
		ctx := context.Background()

		req := &models.SignupRequest{Name: "Karim", Email: "karim@example.com", Password: "secret1"}
		client.On("Signup", ctx, req).Return(&models.AuthResponse{Success: true}, nil).Once()

		// Act
		session, err := authService.Signup(ctx, req)

		// Assert
		assert.Nil(t, session)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)
	})
}
