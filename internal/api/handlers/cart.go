package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/cart"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

type CartHandler struct {
	catalogService service.CatalogService
	cookies        cart.CookieOptions
	validator      *validator.Validate
}

func NewCartHandler(catalogService service.CatalogService, cookies cart.CookieOptions) *CartHandler {
	return &CartHandler{catalogService: catalogService, cookies: cookies, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the cart stored in the `cart` cookie. A missing or corrupt cookie is an empty cart.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse	"Current cart"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := cart.FromRequest(r, w, h.cookies)

		response.Success(w, http.StatusOK, store.Response())
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Looks the product up in the catalog and adds it. Adding a product already in the cart increases its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity (default 1)"
//	@Success		200		{object}	models.CartResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid input"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		502		{object}	response.ErrorResponse	"Catalog unavailable"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			logger.Warn("Cannot add product to cart", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		store := cart.FromRequest(r, w, h.cookies)
		if err := store.Add(product.CartItem(req.Quantity), req.Quantity); err != nil {
			logger.Error("Failed to persist cart", slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to update cart").WithError(err))
			return
		}

		logger.Info("Added to cart", slog.String("productId", product.ID), slog.Int("count", store.Count()))
		response.Success(w, http.StatusOK, store.Response())
	}
}

// UpdateItem godoc
//	@Summary		Change a cart line quantity
//	@Description	A quantity of zero or less removes the line. Unknown ids leave the cart unchanged.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID"
//	@Param			body	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200		{object}	models.CartResponse				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid input"
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity input")
			return
		}

		store := cart.FromRequest(r, w, h.cookies)
		if err := store.UpdateQuantity(id, req.Quantity); err != nil {
			logger.Error("Failed to persist cart", slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to update cart").WithError(err))
			return
		}

		response.Success(w, http.StatusOK, store.Response())
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		string				true	"Product ID"
//	@Success		200	{object}	models.CartResponse	"Updated cart"
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		store := cart.FromRequest(r, w, h.cookies)
		if err := store.Remove(r.PathValue("id")); err != nil {
			logger.Error("Failed to persist cart", slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to update cart").WithError(err))
			return
		}

		response.Success(w, http.StatusOK, store.Response())
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Description	Deletes the `cart` cookie.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse	"Empty cart"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := cart.FromRequest(r, w, h.cookies)
		if err := store.Clear(); err != nil {
			response.Error(w, errors.InternalError("Failed to update cart").WithError(err))
			return
		}

		response.Success(w, http.StatusOK, store.Response())
	}
}
