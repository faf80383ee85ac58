package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/sajibul-islam-robin/halchash-frontend/docs"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/handlers"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/cache"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/cart"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/catalog"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/health"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/metrics"
	repository "github.com/sajibul-islam-robin/halchash-frontend/internal/repositories"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/telemetry"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/sendGrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Halchash Storefront API
//	@version					1.0
//	@description				Storefront gateway for the Halchash shop: cookie cart, cash-on-delivery checkout, catalog, session, wishlist and order history.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
//	@securityDefinitions.apikey	AdminToken
//	@in							header
//	@name						X-Admin-Token
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Checkout ledger, orders are still placed without it
	var ledger repository.CheckoutRepository

	db, err := repository.NewDB(&cfg.Database)
	if err != nil {
		slog.Warn("⚠️ Checkout ledger disabled, database unavailable", slog.String("error", err.Error()))
	} else {
		ledger = repository.NewCheckoutRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := ledger.EnsureSchema(ctx); err != nil {
			slog.Error("❌ Error preparing the checkout ledger", slog.String("error", err.Error()))
			cancel()
			os.Exit(1)
		}
		cancel()
	}

	// Order confirmation mails
	var mailer sendGrid.EmailService
	if cfg.SendGrid.Enabled() {
		mailer = sendGrid.NewEmailService(cfg.SendGrid)
	} else {
		slog.Warn("⚠️ SendGrid API key not set, order confirmation e-mails disabled")
	}

	upstream := halchash.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig, time.Now)

	cartCookies := cart.CookieOptions{TTL: cfg.Cookies.TTL, Secure: cfg.Cookies.Secure, Domain: cfg.Cookies.Domain}
	sessions := middleware.NewSessionMiddleware(middleware.CookieOptions{TTL: cfg.Cookies.TTL, Secure: cfg.Cookies.Secure, Domain: cfg.Cookies.Domain})

	catalogService := service.NewCatalogService(upstream, catalogCache, catalog.NewNormalizer(cfg.Upstream.BaseURL), cfg.Cache.CatalogTTL)
	checkoutService := service.NewCheckoutService(upstream, catalogService, ledger, mailer, cfg.Shipping)
	authService := service.NewAuthService(upstream, rateLimiter)
	wishlistService := service.NewWishlistService(upstream)
	orderService := service.NewOrderService(upstream)

	cartHandler := handlers.NewCartHandler(catalogService, cartCookies)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, sessions, cartCookies)
	authHandler := handlers.NewAuthHandler(authService, sessions)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	orderHandler := handlers.NewOrderHandler(orderService)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{Upstream: upstream})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Warm the catalog cache
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Upstream.Timeout)
		defer cancel()

		if err := catalogService.Refresh(ctx); err != nil {
			slog.Warn("⚠️ Catalog warm-up failed, loading on first request", slog.String("error", err.Error()))
		}
	}()

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("upstream", cfg.Upstream.BaseURL), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/hero", catalogHandler.Hero())
	routerMux.HandleFunc("POST /api/v1/catalog/refresh", middleware.RequireAdminToken(cfg.Admin.Token, catalogHandler.Refresh()))
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateItem())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/checkout/quote", checkoutHandler.Quote())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.PlaceOrder())
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup())
	routerMux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/auth/me", middleware.RequireSession(authHandler.Me()))
	routerMux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.GetWishlist())
	routerMux.HandleFunc("POST /api/v1/wishlist", wishlistHandler.AddItem())
	routerMux.HandleFunc("POST /api/v1/wishlist/toggle", wishlistHandler.Toggle())
	routerMux.HandleFunc("DELETE /api/v1/wishlist/{productId}", wishlistHandler.RemoveItem())
	routerMux.HandleFunc("GET /api/v1/orders", orderHandler.ListOrders())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = sessions.Extract(handler)
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(routerMux)(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := catalogCache.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
