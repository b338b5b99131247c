package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	mw "github.com/kiranshivaraju/echoquiz/internal/api/middleware"
	"github.com/kiranshivaraju/echoquiz/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
// Nil middleware is skipped; nil handlers answer 501.
type Dependencies struct {
	CORSOrigins []string
	RateLimit   *mw.RateLimit
	AdminAuth   *mw.AdminAuth

	IndexHandler       http.HandlerFunc
	HealthHandler      http.HandlerFunc
	QuestionsHandler   http.HandlerFunc
	VideoHandler       http.HandlerFunc
	PredictHandler     http.HandlerFunc
	SubmitResults      http.HandlerFunc
	ListResultsHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(deps.CORSOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Range", mw.RequestIDHeader},
		ExposedHeaders: []string{"Content-Length", "Content-Range", mw.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/", orNotImplemented(deps.IndexHandler))
	r.Get("/healthz", orNotImplemented(deps.HealthHandler))

	r.Get("/api/questions", orNotImplemented(deps.QuestionsHandler))

	video := orNotImplemented(deps.VideoHandler)
	r.Get("/videos/*", video)
	r.Head("/videos/*", video)

	// Write routes
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/predict", orNotImplemented(deps.PredictHandler))
		r.Post("/api/submit_results", orNotImplemented(deps.SubmitResults))
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		if deps.AdminAuth == nil {
			r.Get("/api/results", orNotImplemented(nil))
			return
		}
		r.Use(deps.AdminAuth.Authenticate)

		r.Get("/api/results", orNotImplemented(deps.ListResultsHandler))
	})

	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "Endpoint not yet implemented")
	}
}
