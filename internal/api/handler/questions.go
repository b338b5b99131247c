package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kiranshivaraju/echoquiz/internal/api/response"
)

// QuestionSource produces the encoded questions for one quiz round.
type QuestionSource interface {
	Questions(ctx context.Context) ([]json.RawMessage, error)
}

// NewQuestionsHandler returns an http.HandlerFunc for GET /api/questions.
func NewQuestionsHandler(src QuestionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := src.Questions(r.Context())
		if err != nil {
			// quiz.ErrDataUnavailable lands here too once the fallback is exhausted.
			internalError(w, r, err)
			return
		}
		if questions == nil {
			questions = []json.RawMessage{}
		}
		response.JSON(w, questions)
	}
}
