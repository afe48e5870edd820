package main

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var totalRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of incoming HTTP requests.",
	},
	[]string{"path"},
)

var responseStatus = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "response_status",
		Help: "Status of HTTP response",
	},
	[]string{"path", "status"},
)

var httpDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "http_response_time_seconds",
	Help: "Duration of HTTP requests.",
	Objectives: map[float64]float64{
		0.50: 0.05,
		0.90: 0.05,
		0.99: 0.01,
	},
}, []string{"path"})

// response writer to capture status code from header.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		totalRequests.WithLabelValues(path).Inc()
		timer := prometheus.NewTimer(httpDuration.WithLabelValues(path))
		rw := &responseWriter{w, http.StatusOK}
		next.ServeHTTP(rw, r)
		timer.ObserveDuration()
		responseStatus.WithLabelValues(path, strconv.Itoa(rw.statusCode)).Inc()
	})
}
