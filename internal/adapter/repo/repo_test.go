package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"versegen/internal/domain"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type stubSQL struct {
	queryRow func(query string, args ...any) pgx.Row
	exec     func(query string, args ...any) (pgconn.CommandTag, error)
	execs    int
}

func (s *stubSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execs++
	if s.exec == nil {
		return pgconn.CommandTag{}, nil
	}
	return s.exec(query, args...)
}

func (s *stubSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	if s.queryRow == nil {
		return stubRow{}
	}
	return s.queryRow(query, args...)
}

func (s *stubSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported in stub")
}

func TestProfileByUserID(t *testing.T) {
	now := time.Now()
	sql := &stubSQL{queryRow: func(_ string, args ...any) pgx.Row {
		if got := args[0].(string); got != "user-1" {
			t.Fatalf("unexpected user id %q", got)
		}
		return stubRow{scan: func(dest ...any) error {
			*dest[0].(*string) = "user-1"
			*dest[1].(*string) = "Paid"
			*dest[2].(*time.Time) = now
			*dest[3].(*time.Time) = now
			return nil
		}}
	}}

	p, err := NewProfileRepo(sql).ByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	if p.Tier != domain.TierPaid {
		t.Fatalf("tier = %q, want paid", p.Tier)
	}
}

func TestProfileByUserIDNotFound(t *testing.T) {
	_, err := NewProfileRepo(&stubSQL{}).ByUserID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProfileUnknownTierRanksBelowFree(t *testing.T) {
	sql := &stubSQL{queryRow: func(string, ...any) pgx.Row {
		return stubRow{scan: func(dest ...any) error {
			*dest[0].(*string) = "user-1"
			*dest[1].(*string) = "platinum"
			*dest[2].(*time.Time) = time.Now()
			*dest[3].(*time.Time) = time.Now()
			return nil
		}}
	}}

	p, err := NewProfileRepo(sql).ByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	if p.Tier.Allows(domain.TierFree) {
		t.Fatalf("unknown tier %q must not unlock free features", p.Tier)
	}
}

func TestVodInsertDefaultsPending(t *testing.T) {
	var gotStatus string
	created := time.Now()
	sql := &stubSQL{queryRow: func(_ string, args ...any) pgx.Row {
		gotStatus = args[3].(string)
		return stubRow{scan: func(dest ...any) error {
			*dest[0].(*string) = "review-1"
			*dest[1].(*time.Time) = created
			return nil
		}}
	}}

	out, err := NewVodRepo(sql).Insert(context.Background(), domain.VodReview{
		UserID:   "user-1",
		VideoURL: "https://example.com/vod",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if gotStatus != string(domain.VodReviewPending) {
		t.Fatalf("status = %q, want pending", gotStatus)
	}
	if out.ID != "review-1" || !out.CreatedAt.Equal(created) {
		t.Fatalf("returned copy not filled in: %+v", out)
	}
}

func TestUsageRecordSwallowsErrors(t *testing.T) {
	sql := &stubSQL{exec: func(string, ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("insert failed")
	}}
	repo := NewUsageRepo(sql, zerolog.Nop())

	repo.Record(context.Background(), UsageEvent{
		UserID:    "user-1",
		EventType: EventTextGenerate,
		Success:   true,
	})
	if sql.execs != 1 {
		t.Fatalf("execs = %d, want 1", sql.execs)
	}
}

func TestUsageSummary(t *testing.T) {
	sql := &stubSQL{queryRow: func(string, ...any) pgx.Row {
		return stubRow{scan: func(dest ...any) error {
			vals := []int64{10, 4, 3, 2, 9, 1, 5}
			for i, v := range vals {
				*dest[i].(*int64) = v
			}
			return nil
		}}
	}}

	s, err := NewUsageRepo(sql, zerolog.Nop()).Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.TotalUsers != 10 || s.TextGenerated != 4 || s.RequestsLast24 != 5 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
