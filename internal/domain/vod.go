package domain

import "time"

// VodReviewStatus tracks a submission through the review queue.
type VodReviewStatus string

const (
	VodReviewPending VodReviewStatus = "pending"
)

// VodReview is an elite-tier request for a human VOD review. The service
// only constructs and inserts these; fulfilment happens elsewhere.
type VodReview struct {
	ID        string
	UserID    string
	VideoURL  string
	Notes     string
	Status    VodReviewStatus
	CreatedAt time.Time
}
