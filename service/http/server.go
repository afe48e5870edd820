package main

import (
	"fmt"
	"io"
	"net/http"

	"letlang/engine"
	"letlang/engine/ast"
	"letlang/engine/interpreter"
	"letlang/host"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type server struct {
	host     host.Host
	executor engine.Executor
	maxBody  int64
}

func (s server) setHandlers(router *mux.Router) {
	router.HandleFunc("/eval", s.Eval).Methods(http.MethodPost)
}

func statusOf(err error) int {
	switch engine.Outcome(err) {
	case engine.OutcomeOK:
		return http.StatusOK
	case engine.OutcomeParseError:
		return http.StatusBadRequest
	case engine.OutcomeOther:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s server) Eval(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, s.maxBody+1))
	if err != nil {
		writeResponse(w, http.StatusBadRequest, evalResponse{Error: err.Error()})
		return
	}
	if int64(len(data)) > s.maxBody {
		writeResponse(w, http.StatusRequestEntityTooLarge, evalResponse{Error: fmt.Sprintf("request body larger than %d bytes", s.maxBody)})
		return
	}
	program, err := getProgram(data)
	if err != nil {
		writeResponse(w, http.StatusBadRequest, evalResponse{Error: err.Error()})
		return
	}
	// requests never see each other's bindings
	ret, err := s.executor.Run(req.Context(), program, interpreter.NewEnv())
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			s.host.Logger.Error("failed to evaluate program", zap.Error(err))
		}
		writeResponse(w, status, evalResponse{Error: err.Error()})
		return
	}
	writeResponse(w, http.StatusOK, evalResponse{Result: ast.String(ret)})
}
