package common

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"go.uber.org/zap"
)

type PprofArgs struct {
	PprofPort uint `arg:"--pprof-port,env:PPROF_PORT" default:"6060"`
}

// StartPprofServer serves the pprof endpoints registered on the default mux.
// Ref: https://pkg.go.dev/net/http/pprof
func StartPprofServer(port uint) {
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		zap.L().Info("pprof server stopped", zap.Error(err))
	}()
}
