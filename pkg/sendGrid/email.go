package sendGrid

import (
	"context"
	"fmt"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// CategoryOrderConfirmation tags confirmation mails in SendGrid's activity feed.
const CategoryOrderConfirmation = "order-confirmation"

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) error
}

type emailService struct {
	client   *sendgrid.Client
	from     *mail.Email
	shopCopy string
}

func NewEmailService(cfg config.SendGrid) EmailService {
	request := sendgrid.GetRequest(cfg.APIKey, "/v3/mail/send", cfg.Host)
	request.Method = "POST"

	return &emailService{
		client:   &sendgrid.Client{Request: request},
		from:     mail.NewEmail(cfg.FromName, cfg.FromEmail),
		shopCopy: cfg.ShopCopy,
	}
}

// SendOrderConfirmation renders the confirmation for a placed order and mails
// it to the customer, tagged with the order number. The shop copy, when
// configured, is sent as a blind copy.
func (e *emailService) SendOrderConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) error {
	req, err := RenderOrderConfirmation(confirmation)
	if err != nil {
		return err
	}

	if e.shopCopy != "" && e.shopCopy != req.To {
		req.BCC = append(req.BCC, e.shopCopy)
	}

	message, personalization := e.message(req)
	message.AddCategories(CategoryOrderConfirmation)

	if confirmation.OrderNumber != "" {
		personalization.SetCustomArg("order_number", confirmation.OrderNumber)
	}

	if err := e.deliver(ctx, message); err != nil {
		return fmt.Errorf("order confirmation to %s: %w", req.To, err)
	}

	return nil
}

func (e *emailService) message(req *models.EmailNotificationRequest) (*mail.SGMailV3, *mail.Personalization) {
	message := mail.NewV3Mail()
	message.SetFrom(e.from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))

	for _, cc := range req.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range req.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = req.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", req.Content))

	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	return message, personalization
}

func (e *emailService) deliver(ctx context.Context, message *mail.SGMailV3) error {
	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
