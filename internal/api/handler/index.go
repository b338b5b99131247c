package handler

import (
	"net/http"

	"github.com/kiranshivaraju/echoquiz/internal/api/response"
)

const banner = "Health Echo Quiz API Server"

// NewIndexHandler returns the plain-text banner served at GET /.
func NewIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.Text(w, http.StatusOK, banner)
	}
}
