package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"letlang/engine/ast"
	"letlang/engine/interpreter"
	"letlang/host"
	httplib "letlang/lib/http"
	"letlang/lib/utils/memory"
	"letlang/service/common"

	"github.com/alexflint/go-arg"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ServerArgs struct {
	Port          uint          `arg:"--port,env:PORT" default:"2425"`
	MaxBodyBytes  int64         `arg:"--max-body-bytes,env:MAX_BODY_BYTES" default:"65536"`
	Timeout       time.Duration `arg:"--timeout,env:REQUEST_TIMEOUT" default:"2s"`
	MaxConcurrent int           `arg:"--max-concurrent,env:MAX_CONCURRENT" default:"1000"`
	// EvalMaxDepth applies when --max-depth is left at 0, the service never
	// evaluates unbounded.
	EvalMaxDepth int `arg:"--eval-max-depth,env:EVAL_MAX_DEPTH" default:"10000"`
}

func (args ServerArgs) Valid() error {
	if args.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive: %d", args.MaxBodyBytes)
	}
	if args.MaxConcurrent <= 0 {
		return fmt.Errorf("max concurrent requests must be positive: %d", args.MaxConcurrent)
	}
	if args.EvalMaxDepth <= 0 {
		return fmt.Errorf("eval max depth must be positive: %d", args.EvalMaxDepth)
	}
	return nil
}

func newRouter(h host.Host, args ServerArgs) *mux.Router {
	router := mux.NewRouter()
	router.Use(prometheusMiddleware)
	router.Use(httplib.RateLimitingMiddleware(args.MaxConcurrent))
	if args.Timeout > 0 {
		router.Use(httplib.TimeoutMiddleware(args.Timeout))
	}
	router.Use(httplib.Tracer(h.Logger, 500*time.Millisecond))
	executor := h.Executor
	if executor.MaxDepth() == 0 {
		executor = executor.WithMaxDepth(args.EvalMaxDepth)
	}
	controller := server{host: h, executor: executor, maxBody: args.MaxBodyBytes}
	controller.setHandlers(router)
	return router
}

// readiness evaluates a trivial program end to end.
func readiness(h host.Host) func() error {
	return func() error {
		ret, err := h.Executor.Run(context.Background(), "(add (val 1) (val 1))", interpreter.NewEnv())
		if err != nil {
			return err
		}
		if !ret.Equals(&ast.Val{Value: 2}) {
			return fmt.Errorf("unexpected result: %s", ast.String(ret))
		}
		return nil
	}
}

func main() {
	var flags struct {
		host.HostArgs
		common.PrometheusArgs
		common.HealthCheckArgs
		common.PprofArgs
		memory.WatchdogArgs
		ServerArgs
	}
	p := arg.MustParse(&flags)
	if err := flags.ServerArgs.Valid(); err != nil {
		p.Fail(err.Error())
	}
	h, err := host.CreateFromArgs(&flags.HostArgs)
	if err != nil {
		panic(fmt.Sprintf("Failed to setup host: %v", err))
	}
	defer h.Close()

	common.StartPromMetricsServer(flags.MetricsPort)
	common.StartHealthCheckServer(flags.HealthPort, readiness(h))
	common.StartPprofServer(flags.PprofPort)
	stopWatchdog, err := memory.RunMemoryWatchdog(flags.WatchdogArgs, time.Minute, h.Logger)
	if err != nil {
		p.Fail(err.Error())
	}
	defer stopWatchdog()

	router := newRouter(h, flags.ServerArgs)
	addr := fmt.Sprintf(":%d", flags.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		h.Logger.Fatal("failed to listen", zap.String("addr", addr), zap.Error(err))
	}
	h.Logger.Info("server is ready...", zap.String("addr", addr))
	if err = http.Serve(l, router); err != http.ErrServerClosed {
		h.Logger.Fatal("server stopped", zap.Error(err))
	}
}
