// Package respond writes JSON API responses.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type success struct {
	Result any `json:"result"`
}

type failure struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// OK writes a 200 response wrapping v in {"result": ...}.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, success{Result: v})
}

// Created writes a 201 response wrapping v in {"result": ...}.
func Created(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, success{Result: v})
}

// Fail writes {"error": err} with the given status code.
func Fail(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	JSON(w, status, failure{Error: msg})
}
