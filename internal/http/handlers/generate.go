package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"versegen/internal/adapter/repo"
	"versegen/internal/providers/prompt"
)

type generateTextRequest struct {
	Prompt   string `json:"prompt"`
	ToolType string `json:"toolType"`
}

// GenerateText runs a prompt through Gemini with the system instruction that
// matches the requested tool. Unknown tools fall back to a generic assistant
// rather than failing.
func (a *App) GenerateText(w http.ResponseWriter, r *http.Request) {
	var req generateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt required")
		return
	}

	profile := prompt.ProfileFor(req.ToolType)
	if _, ok := a.requireFeature(w, r, profile.Feature); !ok {
		return
	}

	start := time.Now()
	text, err := a.Generator.GenerateText(r.Context(), profile.System, req.Prompt)
	a.recordUsage(r, repo.EventTextGenerate, err == nil, time.Since(start))
	if err != nil {
		a.Logger.Error().Err(err).Str("tool_type", req.ToolType).Msg("text generation failed")
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"text": text})
}
