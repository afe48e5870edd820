package timer

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fnDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "fn_duration_seconds",
	Help: "Duration of individual go functions",
	Objectives: map[float64]float64{
		0.25: 0.05,
		0.50: 0.05,
		0.75: 0.05,
		0.90: 0.05,
		0.95: 0.02,
		0.99: 0.01,
	},
}, []string{"function_name"})

type Timer struct {
	ctx   context.Context
	name  string
	timer *prometheus.Timer
}

// Stop observes the time since Start and, if ctx carries a trace, records
// the function name in it.
func (t Timer) Stop() {
	t.timer.ObserveDuration()
	Record(t.ctx, t.name)
}

func Start(ctx context.Context, funcName string) Timer {
	return Timer{
		ctx:   ctx,
		name:  funcName,
		timer: prometheus.NewTimer(fnDuration.WithLabelValues(funcName)),
	}
}
