package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/buger/jsonparser"
)

var errMissingProgram = errors.New("request has no program")

type evalResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// getProgram pulls the program source out of a {"program": "..."} request.
func getProgram(data []byte) (string, error) {
	program, err := jsonparser.GetString(data, "program")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return "", errMissingProgram
	}
	if err != nil {
		return "", fmt.Errorf("invalid request: %v", err)
	}
	return program, nil
}

func writeResponse(w http.ResponseWriter, status int, resp evalResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
