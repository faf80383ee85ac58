package models

type EmailNotificationRequest struct {
	To          string   `json:"to" validate:"required,email"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"html_content,omitempty"`
	CC          []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	BCC         []string `json:"bcc,omitempty" validate:"omitempty,dive,email"`
}

// OrderConfirmation is what the customer is told once an order is placed.
type OrderConfirmation struct {
	Customer     Customer
	OrderNumber  string
	Items        []OrderLine
	Totals       OrderTotals
	DeliveryArea DeliveryArea
}
