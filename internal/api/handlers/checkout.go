package handlers

import (
	stdErrors "errors"
	"log/slog"
	"net/http"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/cart"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	sessions        *middleware.SessionMiddleware
	cookies         cart.CookieOptions
}

func NewCheckoutHandler(checkoutService service.CheckoutService, sessions *middleware.SessionMiddleware, cookies cart.CookieOptions) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, sessions: sessions, cookies: cookies}
}

// Quote godoc
//	@Summary		Price a checkout
//	@Description	Computes lines, subtotal, zone shipping and total for the cart, or for one product when product_id is set. Nothing is submitted.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			quote	body		models.QuoteRequest		true	"Delivery area and optional single product"
//	@Success		200		{object}	models.CheckoutQuote
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Router			/checkout/quote [post]
func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.QuoteRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		store := cart.FromRequest(r, w, h.cookies)

		quote, err := h.checkoutService.Quote(r.Context(), &req, store.Items())
		if err != nil {
			logger.Warn("Checkout quote failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

// PlaceOrder godoc
//	@Summary		Place an order
//	@Description	Submits a cash-on-delivery order for the cart, or for one product when product_id is set. Guests get an account created first and receive session cookies.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CheckoutRequest	true	"Customer, delivery area and optional single product"
//	@Success		201		{object}	models.CheckoutResult	"Order placed"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		502		{object}	response.ErrorResponse	"Backend unavailable"
//	@Router			/checkout [post]
func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		session, _ := middleware.SessionFromContext(r.Context())
		store := cart.FromRequest(r, w, h.cookies)

		result, err := h.checkoutService.PlaceOrder(r.Context(), &req, session, store)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))

			// The account exists upstream even though the order failed.
			var guestErr *service.GuestOrderError
			if stdErrors.As(err, &guestErr) {
				h.writeSession(w, logger, guestErr.Session)
			}

			response.Error(w, err)
			return
		}

		h.writeSession(w, logger, result.Session)

		response.Success(w, http.StatusCreated, result)
	}
}

func (h *CheckoutHandler) writeSession(w http.ResponseWriter, logger *slog.Logger, session *models.Session) {
	if session == nil {
		return
	}

	if err := h.sessions.Write(w, session); err != nil {
		logger.Error("Failed to write session cookies for new account", slog.String("error", err.Error()))
	}
}
