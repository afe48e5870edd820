package memory

import (
	"fmt"
	"time"

	"github.com/raulk/go-watchdog"
	"go.uber.org/zap"
)

func init() {
	// Set 90% memory utilization as the threshold for capturing heap profiles.
	watchdog.HeapProfileThreshold = 0.90
}

type WatchdogArgs struct {
	// MemoryLimit in bytes, 0 leaves the watchdog off.
	MemoryLimit  uint64  `arg:"--memory-limit,env:MEMORY_LIMIT" default:"0"`
	MemoryFactor float64 `arg:"--memory-factor,env:MEMORY_FACTOR" default:"0.5"`
}

func (args WatchdogArgs) Enabled() bool {
	return args.MemoryLimit > 0
}

func (args WatchdogArgs) Validate() error {
	if !args.Enabled() {
		return nil
	}
	if args.MemoryFactor <= 0 || args.MemoryFactor >= 1.0 {
		return fmt.Errorf("'factor' should be in (0.0, 1.0)")
	}
	return nil
}

// RunMemoryWatchdog forces GC as the process approaches the configured limit.
// The returned func stops the watchdog.
func RunMemoryWatchdog(args WatchdogArgs, freq time.Duration, logger *zap.Logger) (func(), error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	if !args.Enabled() {
		return func() {}, nil
	}
	err, stopFn := watchdog.SystemDriven(args.MemoryLimit, freq, watchdog.NewAdaptivePolicy(args.MemoryFactor))
	if err != nil {
		return nil, fmt.Errorf("failed to start memory watchdog: %v", err)
	}
	logger.Info("Started memory watchdog",
		zap.Uint64("limit", args.MemoryLimit),
		zap.Float64("factor", args.MemoryFactor),
	)
	return stopFn, nil
}
