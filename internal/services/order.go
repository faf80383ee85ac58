package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash"
)

// StatusAll lists orders in every status.
const StatusAll = "all"

var orderStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

type OrderService interface {
	ListMine(ctx context.Context, token, status string) (*models.OrderHistoryResponse, error)
}

type orderService struct {
	client halchash.Client
}

func NewOrderService(client halchash.Client) OrderService {
	return &orderService{client: client}
}

func (s *orderService) ListMine(ctx context.Context, token, status string) (*models.OrderHistoryResponse, error) {
	if token == "" {
		return nil, errors.UnauthorizedError("Please login to view your orders")
	}

	filter, err := ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	orders, err := s.client.ListMyOrders(ctx, token, filter)
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = []models.UpstreamOrder{}
	}

	label := string(filter)
	if label == "" {
		label = StatusAll
	}

	return &models.OrderHistoryResponse{Orders: orders, Status: label}, nil
}

// ParseOrderStatus maps a status tab to a filter. Empty and "all" mean no filter.
func ParseOrderStatus(status string) (models.OrderStatus, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" || status == StatusAll {
		return "", nil
	}

	for _, s := range orderStatuses {
		if string(s) == status {
			return s, nil
		}
	}

	return "", errors.ValidationError(fmt.Sprintf("Invalid order status '%s'", status)).
		WithDetail("status must be one of all, pending, processing, delivered, cancelled")
}
