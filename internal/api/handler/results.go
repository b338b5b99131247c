package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/kiranshivaraju/echoquiz/internal/api/response"
	"github.com/kiranshivaraju/echoquiz/internal/fields"
	"github.com/kiranshivaraju/echoquiz/internal/results"
	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// ResultRecorder validates and persists a submitted quiz result.
type ResultRecorder interface {
	Submit(ctx context.Context, body fields.Body) (*models.ResultRecord, error)
}

// ResultLister returns stored quiz results.
type ResultLister interface {
	List(ctx context.Context) ([]*models.ResultRecord, error)
}

// NewSubmitResultsHandler returns an http.HandlerFunc for POST /api/submit_results.
func NewSubmitResultsHandler(rec ResultRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody(w, r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := rec.Submit(r.Context(), body); err != nil {
			switch {
			case errors.Is(err, results.ErrMissingField):
				response.Error(w, http.StatusBadRequest, "Missing required fields")
			case errors.Is(err, results.ErrInvalidInput):
				response.Error(w, http.StatusBadRequest, err.Error())
			default:
				internalError(w, r, err)
			}
			return
		}

		response.JSON(w, map[string]string{"status": "saved"})
	}
}

// NewListResultsHandler returns an http.HandlerFunc for GET /api/results.
func NewListResultsHandler(l ResultLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := l.List(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}
		if recs == nil {
			recs = []*models.ResultRecord{}
		}
		response.JSON(w, recs)
	}
}
