package pcache

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheStatsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "pcache_ratio",
	Help: "Lifetime hits/misses of process-level cache",
}, []string{"metric"})

func RecordStats(name string, p PCache) {
	m := p.Cache.Metrics
	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:hits", name)).Set(float64(m.Hits()))
	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:misses", name)).Set(float64(m.Misses()))
	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:ratio", name)).Set(m.Ratio())

	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:sets_dropped", name)).Set(float64(m.SetsDropped()))
	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:sets_rejected", name)).Set(float64(m.SetsRejected()))
	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:cost_added", name)).Set(float64(m.CostAdded()))
	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:cost_evicted", name)).Set(float64(m.CostEvicted()))
	cacheStatsGauge.WithLabelValues(fmt.Sprintf("%s:size", name)).Set(float64(m.CostAdded() - m.CostEvicted()))
}

// ReportPeriodically records stats of p every period until stop is closed.
func ReportPeriodically(name string, p PCache, period time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			RecordStats(name, p)
			select {
			case <-ticker.C:
			case <-stop:
				return
			}
		}
	}()
}
