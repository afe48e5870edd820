package host

import (
	"fmt"
	"time"

	"letlang/engine"
	"letlang/pcache"

	"github.com/samber/mo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type HostArgs struct {
	Dev bool `arg:"--dev,env:LETLANG_DEV" help:"human readable debug logging" json:"dev,omitempty"`
	// MaxDepth bounds evaluation nesting, 0 means unbounded.
	MaxDepth int `arg:"--max-depth,env:LETLANG_MAX_DEPTH" default:"0" json:"max_depth,omitempty"`
	// ParseCacheMaxCost is the total size in bytes of program source whose trees
	// are cached, 0 disables the cache.
	ParseCacheMaxCost int64 `arg:"--parse-cache-max-cost,env:LETLANG_PARSE_CACHE_MAX_COST" default:"0" json:"parse_cache_max_cost,omitempty"`
}

func (args HostArgs) Valid() error {
	if args.MaxDepth < 0 {
		return fmt.Errorf("max depth can not be negative: %d", args.MaxDepth)
	}
	if args.ParseCacheMaxCost < 0 {
		return fmt.Errorf("parse cache max cost can not be negative: %d", args.ParseCacheMaxCost)
	}
	return nil
}

// Host bundles what every entry point needs to run programs.
type Host struct {
	Logger     *zap.Logger
	Executor   engine.Executor
	ParseCache mo.Option[pcache.PCache]
	stop       chan struct{}
}

const averageProgramSize = 256

func CreateFromArgs(args *HostArgs) (host Host, err error) {
	if err = args.Valid(); err != nil {
		return Host{}, err
	}
	var logger *zap.Logger
	if args.Dev {
		logger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		logger, err = config.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	}
	if err != nil {
		return Host{}, fmt.Errorf("failed to construct logger: %v", err)
	}
	_ = zap.ReplaceGlobals(logger)
	return create(logger, args)
}

// create wires everything except the logger, which tests supply themselves
func create(logger *zap.Logger, args *HostArgs) (Host, error) {
	stop := make(chan struct{})
	cache := mo.None[pcache.PCache]()
	if args.ParseCacheMaxCost > 0 {
		logger.Info("Creating parse cache", zap.Int64("max_cost", args.ParseCacheMaxCost))
		c, err := pcache.NewPCache(args.ParseCacheMaxCost, averageProgramSize)
		if err != nil {
			return Host{}, fmt.Errorf("failed to create parse cache: %v", err)
		}
		pcache.ReportPeriodically("parse", c, time.Minute, stop)
		cache = mo.Some(c)
	}
	return Host{
		Logger:     logger,
		Executor:   engine.NewExecutor(logger, cache, args.MaxDepth),
		ParseCache: cache,
		stop:       stop,
	}, nil
}

// CreateWithLogger is CreateFromArgs with a caller supplied logger.
func CreateWithLogger(logger *zap.Logger, args *HostArgs) (Host, error) {
	if err := args.Valid(); err != nil {
		return Host{}, err
	}
	return create(logger, args)
}

// Close releases the parse cache and flushes the logger.
func (h Host) Close() {
	if h.stop != nil {
		close(h.stop)
	}
	if c, ok := h.ParseCache.Get(); ok {
		c.Close()
	}
	_ = h.Logger.Sync()
}
