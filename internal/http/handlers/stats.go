package handlers

import (
	"net/http"
)

// StatsSummary serves the public usage counters for the landing page.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Usage.Summary(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("stats summary failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, summary)
}
