package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"co2dash.ds4003.org/internal/logging"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "co2dash_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "co2dash_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	chartRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "co2dash_chart_renders_total",
		Help: "Charts rendered by output format.",
	}, []string{"format"})

	chartPoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "co2dash_chart_points",
		Help:    "Number of points in rendered charts.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 6),
	})
)

// instrument records the request count and latency of next under route.
func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logging.SetRoute(r.Context(), route)
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		httpRequests.WithLabelValues(route, strconv.Itoa(wrapped.statusCode)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
