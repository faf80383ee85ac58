package models

import "time"

type DeliveryArea string

const (
	DeliveryInsideDhaka  DeliveryArea = "inside_dhaka"
	DeliveryOutsideDhaka DeliveryArea = "outside_dhaka"
)

type CheckoutMode string

const (
	CheckoutModeCart          CheckoutMode = "cart"
	CheckoutModeSingleProduct CheckoutMode = "single_product"
)

const MaxSingleProductQuantity = 10

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Customer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CheckoutRequest is what the checkout view posts. ProductID switches the
// checkout into single-product mode.
type CheckoutRequest struct {
	Customer     Customer     `json:"customer" validate:"required"`
	DeliveryArea DeliveryArea `json:"delivery_area" validate:"required,oneof=inside_dhaka outside_dhaka"`
	ProductID    string       `json:"product_id,omitempty"`
	Quantity     int          `json:"quantity,omitempty"`
}

// QuoteRequest prices a checkout without customer details.
type QuoteRequest struct {
	DeliveryArea DeliveryArea `json:"delivery_area" validate:"required,oneof=inside_dhaka outside_dhaka"`
	ProductID    string       `json:"product_id,omitempty"`
	Quantity     int          `json:"quantity,omitempty"`
}

type OrderLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// CheckoutOrderPayload is the body of POST /api/orders/create.
type CheckoutOrderPayload struct {
	UserID       *string      `json:"user_id"`
	Customer     Customer     `json:"customer"`
	Items        []OrderLine  `json:"items"`
	Totals       OrderTotals  `json:"totals"`
	DeliveryArea DeliveryArea `json:"delivery_area"`
}

type CheckoutQuote struct {
	Mode         CheckoutMode `json:"mode"`
	Items        []OrderLine  `json:"items"`
	Totals       OrderTotals  `json:"totals"`
	DeliveryArea DeliveryArea `json:"delivery_area"`
}

type UpstreamOrder struct {
	ID          any     `json:"id,omitempty"`
	OrderNumber string  `json:"order_number,omitempty"`
	Status      string  `json:"status,omitempty"`
	TotalAmount any     `json:"total_amount,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	ItemsCount  any     `json:"items_count,omitempty"`
	Items       []any   `json:"items,omitempty"`
	Tracking    *string `json:"tracking_number,omitempty"`
}

// CreateOrderResponse is the upstream answer to an order submission.
type CreateOrderResponse struct {
	Success           bool           `json:"success"`
	Order             *UpstreamOrder `json:"order,omitempty"`
	AccountCreated    bool           `json:"account_created,omitempty"`
	TemporaryPassword string         `json:"temporary_password,omitempty"`
	Error             string         `json:"error,omitempty"`
}

type CheckoutResult struct {
	Mode              CheckoutMode   `json:"mode"`
	Order             *UpstreamOrder `json:"order,omitempty"`
	Totals            OrderTotals    `json:"totals"`
	AccountCreated    bool           `json:"account_created"`
	TemporaryPassword string         `json:"temporary_password,omitempty"`
	Message           string         `json:"message"`
	Session           *Session       `json:"-"`
}

// CheckoutSubmission is one row of the checkout ledger.
type CheckoutSubmission struct {
	ID           string       `json:"id"`
	Mode         CheckoutMode `json:"mode"`
	Email        string       `json:"email"`
	DeliveryArea DeliveryArea `json:"delivery_area"`
	ItemCount    int          `json:"item_count"`
	Subtotal     float64      `json:"subtotal"`
	Shipping     float64      `json:"shipping"`
	Total        float64      `json:"total"`
	OrderNumber  string       `json:"order_number,omitempty"`
	Succeeded    bool         `json:"succeeded"`
	Error        string       `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type OrderHistoryResponse struct {
	Orders []UpstreamOrder `json:"orders"`
	Status string          `json:"status"`
}
