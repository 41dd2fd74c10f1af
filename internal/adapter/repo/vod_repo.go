package repo

import (
	"context"
	"fmt"

	"versegen/internal/domain"
	"versegen/internal/infra"
	"versegen/internal/sqlinline"
)

// VodRepo persists elite VOD review submissions.
type VodRepo struct {
	sql infra.SQLExecutor
}

func NewVodRepo(sql infra.SQLExecutor) *VodRepo {
	return &VodRepo{sql: sql}
}

// Insert stores a pending review request and fills in the generated id and
// timestamp on the returned copy.
func (r *VodRepo) Insert(ctx context.Context, review domain.VodReview) (*domain.VodReview, error) {
	if review.Status == "" {
		review.Status = domain.VodReviewPending
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertVodReview,
		review.UserID, review.VideoURL, review.Notes, string(review.Status))
	if err := row.Scan(&review.ID, &review.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: insert vod review: %v", domain.ErrPersistence, err)
	}
	return &review, nil
}
