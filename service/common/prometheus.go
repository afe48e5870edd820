package common

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type PrometheusArgs struct {
	MetricsPort uint `arg:"--metrics-port,env:METRICS_PORT" default:"2112"`
}

func MetricsRouter() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	return router
}

func StartPromMetricsServer(port uint) {
	router := MetricsRouter()
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), router)
		if err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("metric server stopped unexpectedly", zap.Error(err))
		}
	}()
}
