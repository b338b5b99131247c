package handler

import (
	"errors"
	"net/http"

	"github.com/kiranshivaraju/echoquiz/internal/api/response"
	"github.com/kiranshivaraju/echoquiz/internal/predict"
)

type predictResponse struct {
	Prediction string `json:"prediction"`
}

// NewPredictHandler returns an http.HandlerFunc for POST /api/predict.
func NewPredictHandler(p predict.Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody(w, r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		m, err := predict.ParseMeasurements(body)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		label, err := p.Predict(r.Context(), m)
		if err != nil {
			if errors.Is(err, predict.ErrInvalidInput) {
				response.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			internalError(w, r, err)
			return
		}

		response.JSON(w, predictResponse{Prediction: label})
	}
}
