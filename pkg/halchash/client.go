// Package halchash is a typed client for the Halchash REST backend.
package halchash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client covers the backend endpoints the storefront uses.
type Client interface {
	ListProducts(ctx context.Context) ([]map[string]any, error)
	ListCategories(ctx context.Context) ([]map[string]any, error)
	GetHero(ctx context.Context) ([]map[string]any, error)
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	CreateOrder(ctx context.Context, token string, payload *models.CheckoutOrderPayload) (*models.CreateOrderResponse, error)
	GetWishlist(ctx context.Context, token string) ([]models.WishlistEntry, error)
	AddToWishlist(ctx context.Context, token, productID string) error
	RemoveFromWishlist(ctx context.Context, token, productID string) error
	ListMyOrders(ctx context.Context, token string, status models.OrderStatus) ([]models.UpstreamOrder, error)
	Ping(ctx context.Context) error
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// call describes one backend request. failure is reported when the backend
// rejects the call without an error message of its own.
type call struct {
	method       string
	path         string
	token        string
	body         any
	failure      string
	unauthorized string
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *client) do(ctx context.Context, req call, out any) error {
	var body io.Reader

	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return appErrors.InternalError("Failed to encode request").WithError(err)
		}

		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return appErrors.InternalError("Failed to build request").WithError(err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return appErrors.ThirdPartyError(appErrors.MsgUpstreamUnavailable).WithError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.ThirdPartyError(appErrors.MsgUpstreamUnavailable).WithError(err)
	}

	var env envelope

	decodeErr := json.Unmarshal(data, &env)

	if resp.StatusCode == http.StatusUnauthorized && req.unauthorized != "" {
		message := req.unauthorized
		if decodeErr == nil && env.Error != "" {
			message = env.Error
		}

		return appErrors.UnauthorizedError(message)
	}

	if decodeErr != nil {
		return appErrors.ThirdPartyError(appErrors.MsgUpstreamUnavailable).
			WithError(fmt.Errorf("%s %s: decoding response with status %d: %w", req.method, req.path, resp.StatusCode, decodeErr))
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		message := env.Error
		if message == "" {
			message = req.failure
		}

		return appErrors.UpstreamError(message, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return appErrors.ThirdPartyError(appErrors.MsgUpstreamUnavailable).WithError(err)
	}

	return nil
}

func (c *client) ListProducts(ctx context.Context) ([]map[string]any, error) {
	var out struct {
		Products []map[string]any `json:"products"`
	}

	err := c.do(ctx, call{method: http.MethodGet, path: "/api/products", failure: "Failed to load products"}, &out)

	return out.Products, err
}

func (c *client) ListCategories(ctx context.Context) ([]map[string]any, error) {
	var out struct {
		Categories []map[string]any `json:"categories"`
	}

	err := c.do(ctx, call{method: http.MethodGet, path: "/api/categories", failure: "Failed to load categories"}, &out)

	return out.Categories, err
}

func (c *client) GetHero(ctx context.Context) ([]map[string]any, error) {
	var out struct {
		Products []map[string]any `json:"products"`
	}

	err := c.do(ctx, call{method: http.MethodGet, path: "/api/hero", failure: "Failed to load hero products"}, &out)

	return out.Products, err
}

func (c *client) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse

	err := c.do(ctx, call{
		method:  http.MethodPost,
		path:    "/api/auth/signup",
		body:    req,
		failure: "Registration failed. Please try again.",
	}, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse

	err := c.do(ctx, call{
		method:       http.MethodPost,
		path:         "/api/auth/login",
		body:         req,
		failure:      "Login failed. Please try again.",
		unauthorized: "Invalid email or password",
	}, &out)
	if err != nil {
		return nil, err
	}

	if out.User == nil {
		return nil, appErrors.UpstreamError("Login failed. Please try again.", http.StatusBadGateway)
	}

	return &out, nil
}

func (c *client) CreateOrder(ctx context.Context, token string, payload *models.CheckoutOrderPayload) (*models.CreateOrderResponse, error) {
	var out models.CreateOrderResponse

	err := c.do(ctx, call{
		method:  http.MethodPost,
		path:    "/api/orders/create",
		token:   token,
		body:    payload,
		failure: "Failed to place order. Please try again.",
	}, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *client) GetWishlist(ctx context.Context, token string) ([]models.WishlistEntry, error) {
	var out struct {
		Wishlist []models.WishlistEntry `json:"wishlist"`
	}

	err := c.do(ctx, call{
		method:       http.MethodGet,
		path:         "/api/wishlist",
		token:        token,
		failure:      "Failed to load wishlist",
		unauthorized: "Please login to manage wishlist",
	}, &out)

	return out.Wishlist, err
}

func (c *client) AddToWishlist(ctx context.Context, token, productID string) error {
	return c.do(ctx, call{
		method:       http.MethodPost,
		path:         "/api/wishlist",
		token:        token,
		body:         models.WishlistRequest{ProductID: productID},
		failure:      "Failed to add to wishlist",
		unauthorized: "Please login to add items to wishlist",
	}, nil)
}

func (c *client) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	return c.do(ctx, call{
		method:       http.MethodDelete,
		path:         "/api/wishlist",
		token:        token,
		body:         models.WishlistRequest{ProductID: productID},
		failure:      "Failed to remove from wishlist",
		unauthorized: "Please login to manage wishlist",
	}, nil)
}

func (c *client) ListMyOrders(ctx context.Context, token string, status models.OrderStatus) ([]models.UpstreamOrder, error) {
	path := "/api/orders/my"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var out struct {
		Orders []models.UpstreamOrder `json:"orders"`
	}

	err := c.do(ctx, call{
		method:       http.MethodGet,
		path:         path,
		token:        token,
		failure:      "Failed to load orders",
		unauthorized: "Please login to view your orders",
	}, &out)

	return out.Orders, err
}

// Ping reports whether the backend answers at all; any HTTP response counts.
func (c *client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}

	return nil
}
