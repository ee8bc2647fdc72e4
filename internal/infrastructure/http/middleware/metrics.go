package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillsnap_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsnap_auth_attempts_total",
			Help: "Total auth attempts by event and outcome",
		},
		[]string{"event", "success"},
	)
	profileSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillsnap_profile_saves_total",
			Help: "Profile save workflow runs by outcome",
		},
		[]string{"outcome"},
	)
	avatarUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skillsnap_avatar_upload_bytes",
			Help:    "Size of avatar images received",
			Buckets: prometheus.ExponentialBuckets(16<<10, 2, 10),
		},
	)
)

// PrometheusMiddleware records request duration. The path label is the chi
// route pattern so usernames do not explode cardinality.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordAuthAttempt records an auth event for Prometheus.
func RecordAuthAttempt(event string, success bool) {
	authAttempts.WithLabelValues(event, strconv.FormatBool(success)).Inc()
}

// RecordProfileSave counts a save by outcome ("ok", "invalid", "conflict", "gateway_error", ...).
func RecordProfileSave(outcome string) {
	profileSaves.WithLabelValues(outcome).Inc()
}

// ObserveAvatarUpload records the size of a received avatar.
func ObserveAvatarUpload(size int) {
	avatarUploadBytes.Observe(float64(size))
}
