package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders godoc
//	@Summary		List my orders
//	@Description	Order history of the logged-in shopper, optionally filtered by status.
//	@Tags			Orders
//	@Produce		json
//	@Param			status	query		string	false	"all | pending | processing | delivered | cancelled"
//	@Success		200		{object}	models.OrderHistoryResponse
//	@Failure		400		{object}	response.ErrorResponse	"Unknown status"
//	@Failure		401		{object}	response.ErrorResponse	"Please login to view your orders"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		orders, err := h.orderService.ListMine(r.Context(), sessionToken(r), status)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to list orders", slog.String("status", status), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
