package middleware

import (
	"net/http"
	"strconv"
	"time"

	"commerce-admin-core/internal/infrastructure/metrics"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Instrument records request latency per method, chi route pattern and
// status code.
func Instrument() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
				Observe(time.Since(start).Seconds())
		})
	}
}
