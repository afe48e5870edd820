package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func TimeoutMiddleware(timeout time.Duration) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, "server timed out")
	}
}

// RateLimitingMiddleware lets at most maxConcurrentRequests requests through at
// a time, the rest wait until a slot frees up or the client goes away.
func RateLimitingMiddleware(maxConcurrentRequests int) mux.MiddlewareFunc {
	bucket := make(chan struct{}, maxConcurrentRequests)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case bucket <- struct{}{}:
				defer func() { <-bucket }()
				h.ServeHTTP(w, r)
			case <-r.Context().Done():
				return
			}
		})
	}
}

// Tracer logs every request that took longer than slow.
func Tracer(logger *zap.Logger, slow time.Duration) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			h.ServeHTTP(w, r)
			if took := time.Since(start); took > slow {
				logger.Info("slow request",
					zap.String("path", r.URL.Path),
					zap.Duration("took", took),
				)
			}
		})
	}
}
