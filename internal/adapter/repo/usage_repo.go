package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"versegen/internal/domain"
	"versegen/internal/infra"
	"versegen/internal/sqlinline"
)

// Usage event types, one per billable operation.
const (
	EventTextGenerate  = "TEXT_GENERATE"
	EventImageGenerate = "IMAGE_GENERATE"
	EventImageAnalyze  = "IMAGE_ANALYZE"
)

// UsageEvent is a single recorded provider invocation.
type UsageEvent struct {
	UserID     string
	RequestID  string
	EventType  string
	Success    bool
	Latency    time.Duration
	Properties []byte
}

// StatsSummary aggregates usage_events for the public stats endpoint.
type StatsSummary struct {
	TotalUsers     int64 `json:"totalUsers"`
	TextGenerated  int64 `json:"textGenerated"`
	ImageGenerated int64 `json:"imageGenerated"`
	ImageAnalyzed  int64 `json:"imageAnalyzed"`
	RequestSuccess int64 `json:"requestSuccess"`
	RequestFail    int64 `json:"requestFail"`
	RequestsLast24 int64 `json:"requestsLast24"`
}

// UsageRepo writes usage events and serves aggregate counters.
type UsageRepo struct {
	sql infra.SQLExecutor
	log zerolog.Logger
}

func NewUsageRepo(sql infra.SQLExecutor, log zerolog.Logger) *UsageRepo {
	return &UsageRepo{sql: sql, log: log}
}

// Record inserts a usage event. Failures are logged and swallowed so that
// accounting problems never fail a request the provider already served.
func (r *UsageRepo) Record(ctx context.Context, ev UsageEvent) {
	props := ev.Properties
	if len(props) == 0 {
		props = nil
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUsageEvent,
		ev.UserID, ev.RequestID, ev.EventType, ev.Success, ev.Latency.Milliseconds(), props)
	if err != nil {
		r.log.Warn().Err(err).Str("event_type", ev.EventType).Msg("usage event not recorded")
	}
}

// Summary returns the aggregate counters.
func (r *UsageRepo) Summary(ctx context.Context) (*StatsSummary, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QStatsSummary)
	var s StatsSummary
	if err := row.Scan(
		&s.TotalUsers,
		&s.TextGenerated,
		&s.ImageGenerated,
		&s.ImageAnalyzed,
		&s.RequestSuccess,
		&s.RequestFail,
		&s.RequestsLast24,
	); err != nil {
		return nil, fmt.Errorf("%w: stats summary: %v", domain.ErrPersistence, err)
	}
	return &s, nil
}
