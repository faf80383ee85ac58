package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/cart"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
	appErrors "github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	repoMocks "github.com/sajibul-islam-robin/halchash-frontend/internal/repositories/mocks"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	svcMocks "github.com/sajibul-islam-robin/halchash-frontend/internal/services/mocks"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash/mocks"
	emailMocks "github.com/sajibul-islam-robin/halchash-frontend/pkg/sendGrid/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var zoneFees = config.Shipping{InsideDhaka: 60, OutsideDhaka: 120}

func price(f float64) *float64 { return &f }

type cartRecorder struct {
	calls [][]models.CartItem
}

func (r *cartRecorder) Persist(items []models.CartItem) error {
	r.calls = append(r.calls, items)
	return nil
}

type checkoutFixture struct {
	svc     service.CheckoutService
	client  *mocks.Client
	catalog *svcMocks.CatalogService
	ledger  *repoMocks.CheckoutRepository
	email   *emailMocks.EmailService
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		client:  new(mocks.Client),
		catalog: new(svcMocks.CatalogService),
		ledger:  new(repoMocks.CheckoutRepository),
		email:   new(emailMocks.EmailService),
	}
	f.svc = service.NewCheckoutService(f.client, f.catalog, f.ledger, f.email, zoneFees)
	return f
}

func validCustomer() models.Customer {
	return models.Customer{
		Name:    "Rahim Uddin",
		Email:   "rahim@example.com",
		Phone:   "01700000000",
		Address: "House 5, Road 2, Dhanmondi",
	}
}

func loggedIn() *models.Session {
	return &models.Session{
		User:  &models.User{ID: float64(42), Name: "Rahim Uddin", Email: "rahim@example.com"},
		Token: "tok-42",
	}
}

func cartWith(items ...models.CartItem) (*cart.Store, *cartRecorder) {
	recorder := &cartRecorder{}
	return cart.NewStore(items, recorder), recorder
}

func submissionOutcome(succeeded bool) any {
	return mock.MatchedBy(func(s *models.CheckoutSubmission) bool { return s.Succeeded == succeeded })
}

func requireValidationMessage(t *testing.T, err error, message string) {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestCheckoutService_PlaceOrder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *models.CheckoutRequest)
		message string
	}{
		{"Missing name", func(r *models.CheckoutRequest) { r.Customer.Name = "" }, "Please fill in all fields"},
		{"Missing address", func(r *models.CheckoutRequest) { r.Customer.Address = "" }, "Please fill in all fields"},
		{"Malformed email", func(r *models.CheckoutRequest) { r.Customer.Email = "rahim-at-example" }, "Please enter a valid email address"},
		{"Missing delivery area", func(r *models.CheckoutRequest) { r.DeliveryArea = "" }, "Please select delivery area"},
		{"Unknown delivery area", func(r *models.CheckoutRequest) { r.DeliveryArea = "chittagong" }, "Please select delivery area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newCheckoutFixture()
			store, recorder := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})

			req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka}
			tt.mutate(req)

			// Act
			result, err := f.svc.PlaceOrder(context.Background(), req, nil, store)

			// Assert
			assert.Nil(t, result)
			requireValidationMessage(t, err, tt.message)

			f.client.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
			f.client.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, recorder.calls)
		})
	}

	t.Run("Empty cart", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		store, _ := cartWith()
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka}

		// Act
		_, err := f.svc.PlaceOrder(context.Background(), req, loggedIn(), store)

		// Assert
		requireValidationMessage(t, err, "No items to order")
		f.client.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty cart is reported before delivery area", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		store, _ := cartWith()
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: "chittagong"}

		// Act
		_, err := f.svc.PlaceOrder(context.Background(), req, loggedIn(), store)

		// Assert
		requireValidationMessage(t, err, "No items to order")
	})

	t.Run("Missing fields are reported before empty cart", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		store, _ := cartWith()
		customer := validCustomer()
		customer.Phone = ""
		req := &models.CheckoutRequest{Customer: customer}

		// Act
		_, err := f.svc.PlaceOrder(context.Background(), req, nil, store)

		// Assert
		requireValidationMessage(t, err, "Please fill in all fields")
	})

	t.Run("Single product quantity out of range", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		store, _ := cartWith()
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka, ProductID: "p1", Quantity: 11}

		// Act
		_, err := f.svc.PlaceOrder(context.Background(), req, loggedIn(), store)

		// Assert
		requireValidationMessage(t, err, "Quantity must be between 1 and 10")
		f.catalog.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_PlaceOrder_CartMode(t *testing.T) {
	t.Run("Success - Logged in, inside Dhaka", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		store, recorder := cartWith(
			models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 2},
			models.CartItem{ID: "p2", Name: "Vase", Price: 400, DiscountPrice: price(300), Quantity: 1},
		)
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka}

		var sent *models.CheckoutOrderPayload
		f.client.On("CreateOrder", ctx, "tok-42", mock.AnythingOfType("*models.CheckoutOrderPayload")).
			Run(func(args mock.Arguments) { sent = args.Get(2).(*models.CheckoutOrderPayload) }).
			Return(&models.CreateOrderResponse{Success: true, Order: &models.UpstreamOrder{OrderNumber: "HC-1001"}}, nil).Once()
		f.ledger.On("Record", ctx, submissionOutcome(true)).Return(nil).Once()
		f.email.On("SendOrderConfirmation", ctx, mock.MatchedBy(func(c *models.OrderConfirmation) bool {
			return c.Customer.Email == "rahim@example.com" && c.OrderNumber == "HC-1001" &&
				c.Totals.Total == 1360 && c.DeliveryArea == models.DeliveryInsideDhaka
		})).Return(nil).Once()

		// Act
		result, err := f.svc.PlaceOrder(ctx, req, loggedIn(), store)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.CheckoutModeCart, result.Mode)
		assert.Equal(t, models.OrderTotals{Subtotal: 1300, Shipping: 60, Total: 1360}, result.Totals)
		assert.Equal(t, "Order HC-1001 placed successfully!", result.Message)
		assert.Nil(t, result.Session)

		require.NotNil(t, sent)
		require.NotNil(t, sent.UserID)
		assert.Equal(t, "42", *sent.UserID)
		assert.Equal(t, models.DeliveryInsideDhaka, sent.DeliveryArea)
		require.Len(t, sent.Items, 2)
		assert.Equal(t, 300.0, sent.Items[1].Price)

		assert.Equal(t, 0, store.Len())
		require.NotEmpty(t, recorder.calls)
		assert.Empty(t, recorder.calls[len(recorder.calls)-1])

		f.client.AssertExpectations(t)
		f.ledger.AssertExpectations(t)
		f.email.AssertExpectations(t)
	})

	t.Run("Failure - Upstream rejects order, cart kept", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		store, recorder := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryOutsideDhaka}

		f.client.On("CreateOrder", ctx, "tok-42", mock.Anything).
			Return(nil, appErrors.UpstreamError("Product out of stock", 422)).Once()
		f.ledger.On("Record", ctx, submissionOutcome(false)).Return(nil).Once()

		// Act
		result, err := f.svc.PlaceOrder(ctx, req, loggedIn(), store)

		// Assert
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Product out of stock", appErr.Message)

		assert.Equal(t, 1, store.Len())
		assert.Empty(t, recorder.calls)

		f.email.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
		f.ledger.AssertExpectations(t)
	})

	t.Run("Success - Ledger and mail failures do not fail the order", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		store, _ := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryOutsideDhaka}

		f.client.On("CreateOrder", ctx, "tok-42", mock.Anything).
			Return(&models.CreateOrderResponse{Success: true}, nil).Once()
		f.ledger.On("Record", ctx, mock.Anything).Return(assert.AnError).Once()
		f.email.On("SendOrderConfirmation", ctx, mock.Anything).Return(assert.AnError).Once()

		// Act
		result, err := f.svc.PlaceOrder(ctx, req, loggedIn(), store)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Order placed successfully!", result.Message)
		assert.Equal(t, 620.0, result.Totals.Total)
	})

	t.Run("Success - Customer free text is sanitized", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		store, _ := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})

		customer := validCustomer()
		customer.Name = "<b>Rahim</b> & Sons<script>alert(1)</script>"
		req := &models.CheckoutRequest{Customer: customer, DeliveryArea: models.DeliveryInsideDhaka}

		var sent *models.CheckoutOrderPayload
		f.client.On("CreateOrder", ctx, "tok-42", mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(2).(*models.CheckoutOrderPayload) }).
			Return(&models.CreateOrderResponse{Success: true}, nil).Once()
		f.ledger.On("Record", ctx, mock.Anything).Return(nil).Once()
		f.email.On("SendOrderConfirmation", ctx, mock.Anything).Return(nil).Once()

		// Act
		_, err := f.svc.PlaceOrder(ctx, req, loggedIn(), store)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, "Rahim & Sons", sent.Customer.Name)
	})
}

func TestCheckoutService_PlaceOrder_SingleProduct(t *testing.T) {
	t.Run("Success - Cart is never touched", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		store, recorder := cartWith(models.CartItem{ID: "c1", Name: "Cart item", Price: 50, Quantity: 3})
		req := &models.CheckoutRequest{
			Customer:     validCustomer(),
			DeliveryArea: models.DeliveryOutsideDhaka,
			ProductID:    "p9",
			Quantity:     2,
		}

		f.catalog.On("GetProduct", ctx, "p9").
			Return(&models.Product{ID: "p9", Name: "Nakshi Kantha", Price: 1500, DiscountPrice: price(1200)}, nil).Once()

		var sent *models.CheckoutOrderPayload
		f.client.On("CreateOrder", ctx, "tok-42", mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(2).(*models.CheckoutOrderPayload) }).
			Return(&models.CreateOrderResponse{Success: true, Order: &models.UpstreamOrder{OrderNumber: "HC-7"}}, nil).Once()
		f.ledger.On("Record", ctx, mock.MatchedBy(func(s *models.CheckoutSubmission) bool {
			return s.Mode == models.CheckoutModeSingleProduct && s.ItemCount == 2 && s.OrderNumber == "HC-7"
		})).Return(nil).Once()
		f.email.On("SendOrderConfirmation", ctx, mock.Anything).Return(nil).Once()

		// Act
		result, err := f.svc.PlaceOrder(ctx, req, loggedIn(), store)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.CheckoutModeSingleProduct, result.Mode)
		assert.Equal(t, models.OrderTotals{Subtotal: 2400, Shipping: 120, Total: 2520}, result.Totals)

		require.Len(t, sent.Items, 1)
		assert.Equal(t, models.OrderLine{ID: "p9", Name: "Nakshi Kantha", Price: 1200, Quantity: 2}, sent.Items[0])

		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 3, store.Count())
		assert.Empty(t, recorder.calls)

		f.ledger.AssertExpectations(t)
	})

	t.Run("Failure - Product not found", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka, ProductID: "gone"}

		f.catalog.On("GetProduct", ctx, "gone").Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		result, err := f.svc.PlaceOrder(ctx, req, loggedIn(), nil)

		// Assert
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		f.client.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_PlaceOrder_Guest(t *testing.T) {
	t.Run("Success - Account created before order", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		store, _ := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka}

		var signup *models.SignupRequest
		f.client.On("Signup", ctx, mock.AnythingOfType("*models.SignupRequest")).
			Run(func(args mock.Arguments) { signup = args.Get(1).(*models.SignupRequest) }).
			Return(&models.AuthResponse{Success: true, User: &models.User{ID: "u-77", Name: "Rahim Uddin"}, Token: "guest-token"}, nil).Once()

		var sent *models.CheckoutOrderPayload
		f.client.On("CreateOrder", ctx, "guest-token", mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(2).(*models.CheckoutOrderPayload) }).
			Return(&models.CreateOrderResponse{
				Success:           true,
				Order:             &models.UpstreamOrder{OrderNumber: "HC-9"},
				AccountCreated:    true,
				TemporaryPassword: "tmp-123",
			}, nil).Once()
		f.ledger.On("Record", ctx, submissionOutcome(true)).Return(nil).Once()
		f.email.On("SendOrderConfirmation", ctx, mock.Anything).Return(nil).Once()

		// Act
		result, err := f.svc.PlaceOrder(ctx, req, nil, store)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, result.Session)
		assert.Equal(t, "guest-token", result.Session.Token)
		assert.True(t, result.AccountCreated)
		assert.Equal(t, "Order placed successfully! Temporary password: tmp-123", result.Message)

		require.NotNil(t, signup)
		assert.Equal(t, "rahim@example.com", signup.Email)
		assert.Equal(t, "01700000000", signup.Phone)
		assert.Regexp(t, regexp.MustCompile(`^auto_\d+_[0-9a-z]+$`), signup.Password)

		require.NotNil(t, sent.UserID)
		assert.Equal(t, "u-77", *sent.UserID)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Failure - Signup rejected, order never submitted", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		store, recorder := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})
		req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka}

		f.client.On("Signup", ctx, mock.Anything).
			Return(nil, appErrors.UpstreamError("User already exists", 400)).Once()
		f.ledger.On("Record", ctx, submissionOutcome(false)).Return(nil).Once()

		// Act
		result, err := f.svc.PlaceOrder(ctx, req, nil, store)

		// Assert
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "User already exists", appErr.Message)

		f.client.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 1, store.Len())
		assert.Empty(t, recorder.calls)
		f.ledger.AssertExpectations(t)
	})
}

func TestCheckoutService_PlaceOrder_GuestOrderFails(t *testing.T) {
	// Arrange
	f := newCheckoutFixture()
	ctx := context.Background()
	store, recorder := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})
	req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka}

	f.client.On("Signup", ctx, mock.Anything).
		Return(&models.AuthResponse{Success: true, User: &models.User{ID: "u-77", Name: "Rahim Uddin"}, Token: "guest-token"}, nil).Once()
	f.client.On("CreateOrder", ctx, "guest-token", mock.Anything).
		Return(nil, appErrors.UpstreamError("Product out of stock", 409)).Once()
	f.ledger.On("Record", ctx, submissionOutcome(false)).Return(nil).Once()

	// Act
	result, err := f.svc.PlaceOrder(ctx, req, nil, store)

	// Assert
	assert.Nil(t, result)

	var guestErr *service.GuestOrderError
	require.True(t, errors.As(err, &guestErr))
	require.NotNil(t, guestErr.Session)
	assert.Equal(t, "guest-token", guestErr.Session.Token)
	assert.Equal(t, "u-77", guestErr.Session.User.ID)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Product out of stock", appErr.Message)
	assert.Equal(t, 409, appErr.StatusCode)

	assert.Equal(t, 1, store.Len())
	assert.Empty(t, recorder.calls)
	f.email.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
	f.ledger.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_LoggedInOrderFailsWithoutGuestError(t *testing.T) {
	// Arrange
	f := newCheckoutFixture()
	ctx := context.Background()
	store, _ := cartWith(models.CartItem{ID: "p1", Name: "Lamp", Price: 500, Quantity: 1})
	req := &models.CheckoutRequest{Customer: validCustomer(), DeliveryArea: models.DeliveryInsideDhaka}

	f.client.On("CreateOrder", ctx, "tok-42", mock.Anything).
		Return(nil, appErrors.UpstreamError("Product out of stock", 409)).Once()
	f.ledger.On("Record", ctx, submissionOutcome(false)).Return(nil).Once()

	// Act
	_, err := f.svc.PlaceOrder(ctx, req, loggedIn(), store)

	// Assert
	var guestErr *service.GuestOrderError
	assert.False(t, errors.As(err, &guestErr))
	f.client.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestCheckoutService_Quote(t *testing.T) {
	t.Run("Cart mode", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		items := []models.CartItem{
			{ID: "p1", Name: "Lamp", Price: 500, Quantity: 2},
			{ID: "p2", Name: "Vase", Price: 400, DiscountPrice: price(300), Quantity: 1},
		}

		// Act
		quote, err := f.svc.Quote(context.Background(), &models.QuoteRequest{DeliveryArea: models.DeliveryOutsideDhaka}, items)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.CheckoutModeCart, quote.Mode)
		assert.Equal(t, models.OrderTotals{Subtotal: 1300, Shipping: 120, Total: 1420}, quote.Totals)
		f.client.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Single product defaults to quantity one", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		ctx := context.Background()
		f.catalog.On("GetProduct", ctx, "p3").Return(&models.Product{ID: "p3", Name: "Mat", Price: 250}, nil).Once()

		// Act
		quote, err := f.svc.Quote(ctx, &models.QuoteRequest{DeliveryArea: models.DeliveryInsideDhaka, ProductID: "p3"}, nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.CheckoutModeSingleProduct, quote.Mode)
		assert.Equal(t, 1, quote.Items[0].Quantity)
		assert.Equal(t, 310.0, quote.Totals.Total)
	})

	t.Run("Unknown delivery area", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()

		// Act
		_, err := f.svc.Quote(context.Background(), &models.QuoteRequest{DeliveryArea: "sylhet"}, []models.CartItem{{ID: "p1", Price: 1, Quantity: 1}})

		// Assert
		requireValidationMessage(t, err, "Please select delivery area")
	})
}

func TestShippingFee(t *testing.T) {
	inside, err := service.ShippingFee(zoneFees, models.DeliveryInsideDhaka)
	require.NoError(t, err)
	assert.Equal(t, 60.0, inside)

	outside, err := service.ShippingFee(zoneFees, models.DeliveryOutsideDhaka)
	require.NoError(t, err)
	assert.Equal(t, 120.0, outside)
}

func TestGuestPassword(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	password := service.GuestPassword(now)

	assert.Regexp(t, `^auto_1718000000123_[0-9a-z]+$`, password)
	assert.NotEqual(t, password, service.GuestPassword(now))
}
