package repo

import (
	"context"
	"fmt"

	"versegen/internal/domain"
	"versegen/internal/infra"
	"versegen/internal/sqlinline"
)

// ProfileRepo reads subscription profiles from the Supabase profiles table.
type ProfileRepo struct {
	sql infra.SQLExecutor
}

func NewProfileRepo(sql infra.SQLExecutor) *ProfileRepo {
	return &ProfileRepo{sql: sql}
}

// ByUserID fetches the profile for an identity. A missing row maps to
// domain.ErrNotFound: the session layer treats that as "no valid session".
func (r *ProfileRepo) ByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileByUserID, userID)
	var p domain.Profile
	var tier string
	if err := row.Scan(&p.ID, &tier, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: profile for user %s", domain.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: load profile: %v", domain.ErrPersistence, err)
	}
	// Unknown tier strings are kept as-is; the gate ranks them below free.
	p.Tier, _ = domain.ParseTier(tier)
	return &p, nil
}

// SetTier overwrites the tier for a profile. Operator tooling only.
func (r *ProfileRepo) SetTier(ctx context.Context, userID string, tier domain.Tier) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateProfileTier, userID, string(tier))
	var p domain.Profile
	var stored string
	if err := row.Scan(&p.ID, &stored); err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: profile for user %s", domain.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: update tier: %v", domain.ErrPersistence, err)
	}
	p.Tier, _ = domain.ParseTier(stored)
	return &p, nil
}

// IDByEmail resolves a profile id from the auth email. Operator tooling only.
func (r *ProfileRepo) IDByEmail(ctx context.Context, email string) (string, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileIDByEmail, email)
	var id string
	if err := row.Scan(&id); err != nil {
		if infra.IsNoRows(err) {
			return "", fmt.Errorf("%w: profile for email %s", domain.ErrNotFound, email)
		}
		return "", fmt.Errorf("%w: lookup profile: %v", domain.ErrPersistence, err)
	}
	return id, nil
}
