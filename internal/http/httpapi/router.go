package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"versegen/internal/http/handlers"
	"versegen/internal/infra"
	"versegen/internal/middleware"
)

// NewRouter assembles the single route table for the service. All generation
// and session endpoints require a Supabase bearer token; health, docs and the
// public stats counters do not.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N("en", lookup),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", app.AuthSignUp)
		r.Post("/auth/login", app.AuthLogin)
		r.Get("/stats/summary", app.StatsSummary)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSupabase(cfg.SupabaseJWTSecret, cfg.SupabaseURL))
			r.Post("/auth/logout", app.AuthLogout)
			r.Get("/session", app.AuthSession)
			r.Post("/generate-text", app.GenerateText)
			r.Post("/generate-image", app.GenerateImage)
			r.Post("/analyze-image", app.AnalyzeImage)
			r.Post("/vod-reviews", app.VodReviewCreate)
		})
	})

	return r
}
