package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"Screams/internal/monitoring"
)

// Metrics records request counts, latency and in-flight requests
// Routes are labelled by their chi pattern so path parameters don't explode cardinality
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			// Skip collecting metrics from metrics endpoint itself
			next.ServeHTTP(w, r)
			return
		}

		monitoring.ActiveRequests.Inc()
		defer monitoring.ActiveRequests.Dec()

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		monitoring.HttpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		monitoring.HttpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
