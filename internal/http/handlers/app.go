package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"versegen/internal/adapter/repo"
	"versegen/internal/domain"
	"versegen/internal/middleware"
	"versegen/internal/session"
)

// Generator is the slice of the Gemini client the handlers call.
type Generator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
	AnalyzeImage(ctx context.Context, system, prompt, imageB64, mimeType string) (string, error)
	GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, error)
}

// SessionManager handles the auth lifecycle.
type SessionManager interface {
	SignUp(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*session.State, error)
	Restore(ctx context.Context, accessToken string) (*session.State, error)
	Logout(ctx context.Context, accessToken string)
}

// VodStore persists elite review submissions.
type VodStore interface {
	Insert(ctx context.Context, review domain.VodReview) (*domain.VodReview, error)
}

// UsageSink records usage events and serves the aggregate counters.
type UsageSink interface {
	Record(ctx context.Context, ev repo.UsageEvent)
	Summary(ctx context.Context) (*repo.StatsSummary, error)
}

type App struct {
	Logger    zerolog.Logger
	Catalog   *domain.Catalog
	Generator Generator
	Sessions  SessionManager
	Profiles  session.ProfileSource
	Vods      VodStore
	Usage     UsageSink
}

var titleCaser = cases.Title(language.English)

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

// failure maps a domain error onto an HTTP response. Upstream failures carry
// a details field so the client can show something actionable.
func (a *App) failure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrContentBlocked):
		a.error(w, http.StatusBadRequest, "content_blocked", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		a.error(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		a.error(w, http.StatusInternalServerError, "not_configured", "api key not configured")
	case errors.Is(err, domain.ErrRetryExhausted), errors.Is(err, domain.ErrUpstream):
		a.json(w, http.StatusInternalServerError, map[string]string{
			"error":   "upstream",
			"message": "generation failed",
			"details": err.Error(),
		})
	default:
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// requireFeature loads the caller's profile and checks the feature gate.
// When the bool is false a response has already been written.
func (a *App) requireFeature(w http.ResponseWriter, r *http.Request, feature domain.FeatureID) (domain.Tier, bool) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return "", false
	}
	profile, err := a.Profiles.ByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "profile unavailable")
			return "", false
		}
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return "", false
	}
	if !a.Catalog.Allowed(profile.Tier, feature) {
		required := a.Catalog.RequiredTier(feature)
		locale := middleware.LocaleFromContext(r.Context())
		a.error(w, http.StatusForbidden, "tier_required", denialMessage(locale, required, feature))
		return profile.Tier, false
	}
	return profile.Tier, true
}

// denialMessage names the minimum tier in the request locale. The denial is
// informational, not fatal: the client keeps the rest of the UI usable.
func denialMessage(locale string, required domain.Tier, feature domain.FeatureID) string {
	tier := titleCaser.String(string(required))
	if locale == "es" {
		return fmt.Sprintf("Se requiere el nivel %s para %s", tier, feature)
	}
	return fmt.Sprintf("%s tier required for %s", tier, feature)
}

// recordUsage writes an accounting event for a provider call.
func (a *App) recordUsage(r *http.Request, eventType string, success bool, latency time.Duration) {
	if a.Usage == nil {
		return
	}
	a.Usage.Record(r.Context(), repo.UsageEvent{
		UserID:    a.currentUserID(r),
		RequestID: middleware.RequestIDFromContext(r.Context()),
		EventType: eventType,
		Success:   success,
		Latency:   latency,
	})
}
