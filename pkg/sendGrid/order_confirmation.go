package sendGrid

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
)

var orderConfirmationHTML = template.Must(template.New("order").Parse(`<h2>Thank you for your order, {{.Customer.Name}}!</h2>
{{if .OrderNumber}}<p>Order number: <strong>{{.OrderNumber}}</strong></p>{{end}}
<table>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}} x ৳{{printf "%.2f" .Price}}</td></tr>
{{end}}</table>
<p>Subtotal: ৳{{printf "%.2f" .Totals.Subtotal}}<br>Shipping ({{.Area}}): ৳{{printf "%.2f" .Totals.Shipping}}<br><strong>Total: ৳{{printf "%.2f" .Totals.Total}}</strong></p>
<p>Delivery to: {{.Customer.Address}}</p>
<p>Payment: cash on delivery.</p>`))

type orderConfirmation struct {
	Customer    models.Customer
	OrderNumber string
	Items       []models.OrderLine
	Totals      models.OrderTotals
	Area        string
}

// RenderOrderConfirmation builds the mail sent to the customer after an order is placed.
func RenderOrderConfirmation(c *models.OrderConfirmation) (*models.EmailNotificationRequest, error) {
	data := orderConfirmation{
		Customer:    c.Customer,
		OrderNumber: c.OrderNumber,
		Items:       c.Items,
		Totals:      c.Totals,
		Area:        deliveryAreaLabel(c.DeliveryArea),
	}

	var html bytes.Buffer
	if err := orderConfirmationHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render order confirmation: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Thank you for your order, %s!\n", c.Customer.Name)

	if c.OrderNumber != "" {
		fmt.Fprintf(&text, "Order number: %s\n", c.OrderNumber)
	}

	for _, item := range c.Items {
		fmt.Fprintf(&text, "- %s: %d x %.2f\n", item.Name, item.Quantity, item.Price)
	}

	fmt.Fprintf(&text, "Subtotal: %.2f\nShipping (%s): %.2f\nTotal: %.2f\n", c.Totals.Subtotal, data.Area, c.Totals.Shipping, c.Totals.Total)
	fmt.Fprintf(&text, "Delivery to: %s\nPayment: cash on delivery.\n", c.Customer.Address)

	subject := "Your Halchash order is confirmed"
	if c.OrderNumber != "" {
		subject = fmt.Sprintf("Your Halchash order %s is confirmed", c.OrderNumber)
	}

	return &models.EmailNotificationRequest{
		To:          c.Customer.Email,
		Subject:     subject,
		Content:     text.String(),
		HTMLContent: html.String(),
	}, nil
}

func deliveryAreaLabel(area models.DeliveryArea) string {
	switch area {
	case models.DeliveryInsideDhaka:
		return "inside Dhaka"
	case models.DeliveryOutsideDhaka:
		return "outside Dhaka"
	default:
		return "standard"
	}
}
