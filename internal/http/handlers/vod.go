package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"versegen/internal/domain"
)

type vodReviewRequest struct {
	VideoURL string `json:"videoUrl"`
	Notes    string `json:"notes"`
}

type vodReviewResponse struct {
	ID        string `json:"id"`
	VideoURL  string `json:"videoUrl"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// VodReviewCreate queues a VOD for human review. Elite only.
func (a *App) VodReviewCreate(w http.ResponseWriter, r *http.Request) {
	var req vodReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.VideoURL = strings.TrimSpace(req.VideoURL)
	if req.VideoURL == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "videoUrl required")
		return
	}
	if u, err := url.Parse(req.VideoURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		a.error(w, http.StatusBadRequest, "bad_request", "videoUrl must be an http(s) link")
		return
	}

	if _, ok := a.requireFeature(w, r, domain.FeatureVodQueue); !ok {
		return
	}

	review, err := a.Vods.Insert(r.Context(), domain.VodReview{
		UserID:   a.currentUserID(r),
		VideoURL: req.VideoURL,
		Notes:    strings.TrimSpace(req.Notes),
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("vod review insert failed")
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusCreated, vodReviewResponse{
		ID:        review.ID,
		VideoURL:  review.VideoURL,
		Status:    string(review.Status),
		CreatedAt: review.CreatedAt.UTC().Format(time.RFC3339),
	})
}
