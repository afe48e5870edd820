package common

import (
	"fmt"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"
)

type HealthCheckArgs struct {
	HealthPort uint `arg:"--health-port,env:HEALTH_PORT" default:"8082"`
}

// HealthHandler serves /live and /ready. ready is polled asynchronously, a nil
// ready makes the server ready as soon as it is live.
func HealthHandler(ready func() error) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(10000))
	if ready != nil {
		health.AddReadinessCheck("evaluator", healthcheck.Async(ready, 10*time.Second))
	}
	return health
}

func StartHealthCheckServer(port uint, ready func() error) {
	health := HealthHandler(ready)
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), health)
		if err != nil {
			zap.L().Fatal("health check server stopped unexpectedly", zap.Error(err))
		}
	}()
}
