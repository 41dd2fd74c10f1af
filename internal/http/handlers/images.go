package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"versegen/internal/adapter/repo"
	"versegen/internal/imagegen"
	"versegen/internal/providers/prompt"
)

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateImage renders branding artwork through Imagen. The raw user prompt
// is wrapped in the house branding template and the aspect ratio is picked
// from the prompt wording.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt required")
		return
	}

	if _, ok := a.requireFeature(w, r, prompt.BrandingProfile().Feature); !ok {
		return
	}

	enhanced := imagegen.EnhancePrompt(req.Prompt)
	aspect := imagegen.AspectRatioFor(req.Prompt)

	start := time.Now()
	image, err := a.Generator.GenerateImage(r.Context(), enhanced, aspect)
	a.recordUsage(r, repo.EventImageGenerate, err == nil, time.Since(start))
	if err != nil {
		a.Logger.Error().Err(err).Str("aspect_ratio", aspect).Msg("image generation failed")
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"base64Data": base64.StdEncoding.EncodeToString(image),
	})
}
