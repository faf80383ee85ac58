package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"html"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/cart"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/catalog"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/metrics"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	repository "github.com/sajibul-islam-robin/halchash-frontend/internal/repositories"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/sendGrid"
)

const (
	msgFillAllFields      = "Please fill in all fields"
	msgInvalidEmail       = "Please enter a valid email address"
	msgNoItems            = "No items to order"
	msgSelectDeliveryArea = "Please select delivery area"
	msgInvalidQuantity    = "Quantity must be between 1 and 10"
)

// GuestOrderError is returned when a guest account was registered but the
// order that followed failed. Session is the new account.
type GuestOrderError struct {
	Session *models.Session
	Err     error
}

func (e *GuestOrderError) Error() string {
	return e.Err.Error()
}

func (e *GuestOrderError) Unwrap() error {
	return e.Err
}

type CheckoutService interface {
	Quote(ctx context.Context, req *models.QuoteRequest, items []models.CartItem) (*models.CheckoutQuote, error)
	PlaceOrder(ctx context.Context, req *models.CheckoutRequest, session *models.Session, store *cart.Store) (*models.CheckoutResult, error)
}

type checkoutService struct {
	client    halchash.Client
	catalog   CatalogService
	ledger    repository.CheckoutRepository
	email     sendGrid.EmailService
	shipping  config.Shipping
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewCheckoutService wires the checkout. ledger and email may be nil.
func NewCheckoutService(client halchash.Client, catalogService CatalogService, ledger repository.CheckoutRepository, email sendGrid.EmailService, shipping config.Shipping) CheckoutService {
	return &checkoutService{
		client:    client,
		catalog:   catalogService,
		ledger:    ledger,
		email:     email,
		shipping:  shipping,
		validator: validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// ShippingFee is the zone fee for a delivery area.
func ShippingFee(shipping config.Shipping, area models.DeliveryArea) (float64, error) {
	switch area {
	case models.DeliveryInsideDhaka:
		return shipping.InsideDhaka, nil
	case models.DeliveryOutsideDhaka:
		return shipping.OutsideDhaka, nil
	default:
		return 0, errors.ValidationError(msgSelectDeliveryArea)
	}
}

func (s *checkoutService) Quote(ctx context.Context, req *models.QuoteRequest, items []models.CartItem) (*models.CheckoutQuote, error) {
	quantity, err := checkItems(req.ProductID, req.Quantity, items)
	if err != nil {
		return nil, err
	}

	shipping, err := ShippingFee(s.shipping, req.DeliveryArea)
	if err != nil {
		return nil, err
	}

	mode, lines, err := s.resolveLines(ctx, req.ProductID, quantity, items)
	if err != nil {
		return nil, err
	}

	return &models.CheckoutQuote{
		Mode:         mode,
		Items:        lines,
		Totals:       totals(lines, shipping),
		DeliveryArea: req.DeliveryArea,
	}, nil
}

// PlaceOrder validates the checkout, registers a guest when there is no
// session and submits the order. In cart mode a placed order empties store.
// Checks run in order: customer fields, items, delivery area.
//
// When a guest account was registered and the order then fails, the error is
// a *GuestOrderError carrying the new session.
func (s *checkoutService) PlaceOrder(ctx context.Context, req *models.CheckoutRequest, session *models.Session, store *cart.Store) (*models.CheckoutResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	if err := s.validate(req); err != nil {
		logger.Warn("Checkout validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	var cartItems []models.CartItem
	if store != nil {
		cartItems = store.Items()
	}

	quantity, err := checkItems(req.ProductID, req.Quantity, cartItems)
	if err != nil {
		return nil, err
	}

	shipping, err := ShippingFee(s.shipping, req.DeliveryArea)
	if err != nil {
		return nil, err
	}

	mode, lines, err := s.resolveLines(ctx, req.ProductID, quantity, cartItems)
	if err != nil {
		return nil, err
	}

	customer := s.sanitizeCustomer(req.Customer)
	orderTotals := totals(lines, shipping)

	submission := &models.CheckoutSubmission{
		Mode:         mode,
		Email:        customer.Email,
		DeliveryArea: req.DeliveryArea,
		ItemCount:    itemCount(lines),
		Subtotal:     orderTotals.Subtotal,
		Shipping:     orderTotals.Shipping,
		Total:        orderTotals.Total,
	}

	var created *models.Session

	if session == nil {
		created, err = s.registerGuest(ctx, customer)
		if err != nil {
			s.finish(ctx, submission, err)
			return nil, err
		}

		session = created
	}

	payload := &models.CheckoutOrderPayload{
		UserID:       userID(session),
		Customer:     customer,
		Items:        lines,
		Totals:       orderTotals,
		DeliveryArea: req.DeliveryArea,
	}

	resp, err := s.client.CreateOrder(ctx, session.Token, payload)
	if err != nil {
		logger.Error("Order submission failed", slog.String("mode", string(mode)), slog.String("error", err.Error()))
		s.finish(ctx, submission, err)

		if created != nil {
			return nil, &GuestOrderError{Session: created, Err: err}
		}

		return nil, err
	}

	if mode == models.CheckoutModeCart && store != nil {
		if err := store.Clear(); err != nil {
			logger.Error("Failed to clear cart after order", slog.String("error", err.Error()))
		}
	}

	result := &models.CheckoutResult{
		Mode:              mode,
		Order:             resp.Order,
		Totals:            orderTotals,
		AccountCreated:    resp.AccountCreated,
		TemporaryPassword: resp.TemporaryPassword,
		Session:           created,
	}
	result.Message = confirmationMessage(result)

	if resp.Order != nil {
		submission.OrderNumber = resp.Order.OrderNumber
	}

	s.finish(ctx, submission, nil)
	s.sendConfirmation(ctx, &models.OrderConfirmation{
		Customer:     customer,
		OrderNumber:  submission.OrderNumber,
		Items:        lines,
		Totals:       orderTotals,
		DeliveryArea: req.DeliveryArea,
	})

	logger.Info("Order placed",
		slog.String("mode", string(mode)),
		slog.String("order_number", submission.OrderNumber),
		slog.Float64("total", orderTotals.Total),
		slog.Bool("guest", created != nil),
	)

	return result, nil
}

func (s *checkoutService) validate(req *models.CheckoutRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !stdErrors.As(err, &validationErrs) {
		return errors.ValidationError(msgFillAllFields).WithError(err)
	}

	// Delivery area is checked after the items, see PlaceOrder.
	var first validator.FieldError
	for _, fe := range validationErrs {
		if fe.Field() != "DeliveryArea" {
			first = fe
			break
		}
	}

	switch {
	case first == nil:
		return nil
	case first.Tag() == "email":
		return errors.ValidationError(msgInvalidEmail).WithError(err)
	default:
		return errors.ValidationError(msgFillAllFields).WithDetail(first.Namespace()).WithError(err)
	}
}

// checkItems makes sure there is something to order without calling out. It
// returns the single-product quantity with the default of 1 applied.
func checkItems(productID string, quantity int, items []models.CartItem) (int, error) {
	if productID == "" {
		if len(items) == 0 {
			return 0, errors.ValidationError(msgNoItems)
		}
		return quantity, nil
	}

	if quantity == 0 {
		quantity = 1
	}

	if quantity < 1 || quantity > models.MaxSingleProductQuantity {
		return 0, errors.ValidationError(msgInvalidQuantity)
	}

	return quantity, nil
}

// resolveLines picks the checkout mode: a product id means a single-product
// order independent of the cart. Items must have passed checkItems.
func (s *checkoutService) resolveLines(ctx context.Context, productID string, quantity int, items []models.CartItem) (models.CheckoutMode, []models.OrderLine, error) {
	if productID != "" {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return "", nil, err
		}

		return models.CheckoutModeSingleProduct, []models.OrderLine{orderLine(product.CartItem(quantity))}, nil
	}

	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, orderLine(item))
	}

	return models.CheckoutModeCart, lines, nil
}

func (s *checkoutService) registerGuest(ctx context.Context, customer models.Customer) (*models.Session, error) {
	logger := middleware.LoggerFromContext(ctx)

	resp, err := s.client.Signup(ctx, &models.SignupRequest{
		Name:     customer.Name,
		Email:    customer.Email,
		Password: GuestPassword(s.now()),
		Phone:    customer.Phone,
		Address:  customer.Address,
	})
	if err != nil {
		metrics.RecordGuestSignup(false)
		logger.Warn("Guest signup failed", slog.String("error", err.Error()))

		return nil, err
	}

	metrics.RecordGuestSignup(true)
	logger.Info("Account created automatically", slog.String("email", customer.Email))

	return &models.Session{User: resp.User, Token: resp.Token}, nil
}

// GuestPassword is the throwaway password used when a guest is registered at
// checkout: auto_<unix millis>_<random base36>.
func GuestPassword(now time.Time) string {
	return fmt.Sprintf("auto_%d_%s", now.UnixMilli(), strconv.FormatUint(rand.Uint64()>>16, 36))
}

func (s *checkoutService) sanitizeCustomer(c models.Customer) models.Customer {
	clean := func(v string) string {
		return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(v)))
	}

	return models.Customer{
		Name:    clean(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   clean(c.Phone),
		Address: clean(c.Address),
	}
}

// finish records the submission in the ledger and metrics. Ledger failures are
// logged only.
func (s *checkoutService) finish(ctx context.Context, submission *models.CheckoutSubmission, err error) {
	submission.Succeeded = err == nil
	submission.CreatedAt = s.now().UTC()

	if err != nil {
		submission.Error = err.Error()
	}

	metrics.RecordCheckout(string(submission.Mode), string(submission.DeliveryArea), submission.Succeeded, submission.Total)

	if s.ledger == nil {
		return
	}

	if ledgerErr := s.ledger.Record(ctx, submission); ledgerErr != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to record checkout submission", slog.String("error", ledgerErr.Error()))
	}
}

func (s *checkoutService) sendConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) {
	if s.email == nil {
		return
	}

	if err := s.email.SendOrderConfirmation(ctx, confirmation); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order confirmation e-mail not sent",
			slog.String("to", confirmation.Customer.Email), slog.String("error", err.Error()))
	}
}

func orderLine(item models.CartItem) models.OrderLine {
	return models.OrderLine{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.UnitPrice(),
		Quantity: item.Quantity,
	}
}

func totals(lines []models.OrderLine, shipping float64) models.OrderTotals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}

	return models.OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

func itemCount(lines []models.OrderLine) int {
	var n int
	for _, line := range lines {
		n += line.Quantity
	}
	return n
}

func userID(session *models.Session) *string {
	if session == nil || session.User == nil {
		return nil
	}

	id := catalog.Identifier(session.User.ID)
	if id == "" {
		return nil
	}

	return &id
}

func confirmationMessage(result *models.CheckoutResult) string {
	switch {
	case result.AccountCreated && result.TemporaryPassword != "":
		return fmt.Sprintf("Order placed successfully! Temporary password: %s", result.TemporaryPassword)
	case result.Order != nil && result.Order.OrderNumber != "":
		return fmt.Sprintf("Order %s placed successfully!", result.Order.OrderNumber)
	default:
		return "Order placed successfully!"
	}
}
