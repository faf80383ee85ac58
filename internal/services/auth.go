package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	repository "github.com/sajibul-islam-robin/halchash-frontend/internal/repositories"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash"
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Signup(ctx context.Context, req *models.SignupRequest) (*models.Session, error)
}

type authService struct {
	client    halchash.Client
	rateLimit repository.RateLimitRepository
}

func NewAuthService(client halchash.Client, rateLimit repository.RateLimitRepository) AuthService {
	return &authService{client: client, rateLimit: rateLimit}
}

// Login checks the per-email attempt window before asking the backend.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)
	email := strings.TrimSpace(req.Email)

	allowed, remaining, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, email)
	if err != nil {
		logger.Error("Rate limit check failed", slog.String("error", err.Error()))
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		logger.Warn("Login rate limit exceeded", slog.String("email", email), slog.Int("retry_after", retryAfter))
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	resp, err := s.client.Login(ctx, &models.LoginRequest{Email: email, Password: req.Password})
	if err != nil {
		logger.Warn("Login failed", slog.String("email", email), slog.Int("remaining_tries", remaining))
		return nil, err
	}

	logger.Info("User logged in", slog.String("email", email))

	return &models.LoginResponse{
		User:           resp.User,
		RemainingTries: remaining,
		Message:        "Login successful!",
		Session:        &models.Session{User: resp.User, Token: resp.Token},
	}, nil
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.Session, error) {
	logger := middleware.LoggerFromContext(ctx)

	resp, err := s.client.Signup(ctx, req)
	if err != nil {
		logger.Warn("Signup failed", slog.String("email", req.Email), slog.String("error", err.Error()))
		return nil, err
	}

	if resp.User == nil {
		return nil, errors.UpstreamError("Registration failed. Please try again.", 0)
	}

	logger.Info("User registered", slog.String("email", req.Email))

	return &models.Session{User: resp.User, Token: resp.Token}, nil
}
