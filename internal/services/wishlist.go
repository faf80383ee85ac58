package service

import (
	"context"
	"log/slog"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/catalog"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash"
)

const msgWishlistLogin = "Please login to manage wishlist"

type WishlistService interface {
	List(ctx context.Context, token string) (*models.WishlistResponse, error)
	Add(ctx context.Context, token, productID string) error
	Remove(ctx context.Context, token, productID string) error
	Toggle(ctx context.Context, token, productID string) (*models.WishlistToggleResponse, error)
	Contains(ctx context.Context, token, productID string) (bool, error)
}

type wishlistService struct {
	client halchash.Client
}

func NewWishlistService(client halchash.Client) WishlistService {
	return &wishlistService{client: client}
}

func (s *wishlistService) List(ctx context.Context, token string) (*models.WishlistResponse, error) {
	if token == "" {
		return nil, errors.UnauthorizedError(msgWishlistLogin)
	}

	entries, err := s.client.GetWishlist(ctx, token)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []models.WishlistEntry{}
	}

	return &models.WishlistResponse{Items: entries, Count: len(entries)}, nil
}

func (s *wishlistService) Add(ctx context.Context, token, productID string) error {
	if token == "" {
		return errors.UnauthorizedError("Please login to add items to wishlist")
	}

	return s.client.AddToWishlist(ctx, token, productID)
}

func (s *wishlistService) Remove(ctx context.Context, token, productID string) error {
	if token == "" {
		return errors.UnauthorizedError(msgWishlistLogin)
	}

	return s.client.RemoveFromWishlist(ctx, token, productID)
}

func (s *wishlistService) Contains(ctx context.Context, token, productID string) (bool, error) {
	resp, err := s.List(ctx, token)
	if err != nil {
		return false, err
	}

	return containsProduct(resp.Items, productID), nil
}

// Toggle removes the product when it is already saved and adds it otherwise.
// Ids are compared in their string form since the backend mixes numbers and strings.
func (s *wishlistService) Toggle(ctx context.Context, token, productID string) (*models.WishlistToggleResponse, error) {
	saved, err := s.Contains(ctx, token, productID)
	if err != nil {
		return nil, err
	}

	if saved {
		if err := s.Remove(ctx, token, productID); err != nil {
			return nil, err
		}

		middleware.LoggerFromContext(ctx).Info("Wishlist item removed", slog.String("product_id", productID))

		return &models.WishlistToggleResponse{ProductID: productID, InWishlist: false, Message: "Removed from wishlist"}, nil
	}

	if err := s.Add(ctx, token, productID); err != nil {
		return nil, err
	}

	middleware.LoggerFromContext(ctx).Info("Wishlist item added", slog.String("product_id", productID))

	return &models.WishlistToggleResponse{ProductID: productID, InWishlist: true, Message: "Added to wishlist!"}, nil
}

func containsProduct(entries []models.WishlistEntry, productID string) bool {
	want := catalog.Identifier(productID)
	for _, entry := range entries {
		if catalog.Identifier(entry.ProductID) == want {
			return true
		}
	}
	return false
}
