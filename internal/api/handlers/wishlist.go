package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

type WishlistHandler struct {
	wishlistService service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, validator: validator.New()}
}

// GetWishlist godoc
//	@Summary		Get the wishlist
//	@Tags			Wishlist
//	@Produce		json
//	@Success		200	{object}	models.WishlistResponse
//	@Failure		401	{object}	response.ErrorResponse	"Please login to manage wishlist"
//	@Security		BearerAuth
//	@Router			/wishlist [get]
func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.wishlistService.List(r.Context(), sessionToken(r))
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to load wishlist", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// AddItem godoc
//	@Summary		Add to wishlist
//	@Tags			Wishlist
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.WishlistRequest	true	"Product"
//	@Success		201		{object}	map[string]string
//	@Failure		401		{object}	response.ErrorResponse	"Please login to add items to wishlist"
//	@Security		BearerAuth
//	@Router			/wishlist [post]
func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.WishlistRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.wishlistService.Add(r.Context(), sessionToken(r), req.ProductID); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, map[string]string{"product_id": req.ProductID, "message": "Added to wishlist!"})
	}
}

// RemoveItem godoc
//	@Summary		Remove from wishlist
//	@Tags			Wishlist
//	@Produce		json
//	@Param			productId	path		string	true	"Product ID"
//	@Success		200			{object}	map[string]string
//	@Failure		401			{object}	response.ErrorResponse	"Please login to manage wishlist"
//	@Security		BearerAuth
//	@Router			/wishlist/{productId} [delete]
func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		if err := h.wishlistService.Remove(r.Context(), sessionToken(r), productID); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"product_id": productID, "message": "Removed from wishlist"})
	}
}

// Toggle godoc
//	@Summary		Toggle a wishlist product
//	@Description	Removes the product when it is saved, adds it otherwise.
//	@Tags			Wishlist
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.WishlistRequest	true	"Product"
//	@Success		200		{object}	models.WishlistToggleResponse
//	@Failure		401		{object}	response.ErrorResponse	"Please login to manage wishlist"
//	@Security		BearerAuth
//	@Router			/wishlist/toggle [post]
func (h *WishlistHandler) Toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.WishlistRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.wishlistService.Toggle(r.Context(), sessionToken(r), req.ProductID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Wishlist toggle failed", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
