package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"versegen/internal/adapter/repo"
	"versegen/internal/providers/prompt"
)

type analyzeImageRequest struct {
	Prompt      string `json:"prompt"`
	Base64Image string `json:"base64Image"`
	MimeType    string `json:"mimeType"`
}

// AnalyzeImage sends a gameplay screenshot to Gemini together with the
// coaching instruction. All three fields are mandatory.
func (a *App) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	var req analyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" || req.Base64Image == "" || req.MimeType == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt, base64Image and mimeType required")
		return
	}

	profile := prompt.AnalysisProfile()
	if _, ok := a.requireFeature(w, r, profile.Feature); !ok {
		return
	}

	start := time.Now()
	text, err := a.Generator.AnalyzeImage(r.Context(), profile.System, req.Prompt, req.Base64Image, req.MimeType)
	a.recordUsage(r, repo.EventImageAnalyze, err == nil, time.Since(start))
	if err != nil {
		a.Logger.Error().Err(err).Msg("image analysis failed")
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"text": text})
}
