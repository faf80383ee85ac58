package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	checkoutOrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_orders_total",
			Help: "Checkout submissions by mode, delivery area and outcome.",
		},
		[]string{"mode", "delivery_area", "outcome"},
	)

	checkoutOrderValue = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "checkout_order_value_taka",
			Help:    "Total of placed orders in taka, shipping included.",
			Buckets: []float64{250, 500, 1000, 2000, 5000, 10000, 25000},
		},
		[]string{"mode"},
	)

	guestSignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_guest_signups_total",
			Help: "Accounts created automatically during guest checkout.",
		},
		[]string{"outcome"},
	)

	catalogCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Catalog cache lookups by collection and result.",
		},
		[]string{"collection", "result"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// RecordCheckout counts one order submission; value is only observed for placed orders.
func RecordCheckout(mode, deliveryArea string, placed bool, value float64) {
	checkoutOrdersTotal.WithLabelValues(mode, deliveryArea, outcome(placed)).Inc()

	if placed {
		checkoutOrderValue.WithLabelValues(mode).Observe(value)
	}
}

func RecordGuestSignup(ok bool) {
	guestSignupsTotal.WithLabelValues(outcome(ok)).Inc()
}

func RecordCatalogCache(collection string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	catalogCacheTotal.WithLabelValues(collection, result).Inc()
}

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request metrics labelled by the route pattern routes
// matched, so ids in the path do not become label values. With nil routes the
// raw path is used.
func Middleware(routes *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			start := time.Now()
			httpRequestsInFlight.Inc()

			rw := newResponseWriter(w)
			pathPattern := routePattern(routes, r)

			defer func() {

				duration := time.Since(start)
				statusCodeStr := strconv.Itoa(rw.statusCode)

				httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
				httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
				httpRequestsInFlight.Dec()

			}()

			next.ServeHTTP(rw, r)

		})
	}
}

func routePattern(routes *http.ServeMux, r *http.Request) string {
	if routes == nil {
		return r.URL.Path
	}

	_, pattern := routes.Handler(r)
	if pattern == "" {
		return "unmatched"
	}

	// "GET /api/v1/products/{id}" -> "/api/v1/products/{id}"
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		pattern = pattern[i+1:]
	}

	return pattern
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
