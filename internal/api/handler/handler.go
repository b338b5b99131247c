// Package handler implements the HTTP endpoints of the quiz API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/kiranshivaraju/echoquiz/internal/api/response"
	"github.com/kiranshivaraju/echoquiz/internal/fields"
)

const maxBodyBytes = 1 << 20

var errBadJSON = errors.New("invalid JSON body")

// decodeBody reads a JSON object from the request body.
func decodeBody(w http.ResponseWriter, r *http.Request) (fields.Body, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	var body fields.Body
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", errBadJSON)
	}
	if body == nil {
		body = fields.Body{}
	}
	return body, nil
}

// internalError logs err and reports its text as a 500.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	response.Error(w, http.StatusInternalServerError, err.Error())
}
