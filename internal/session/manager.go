// Package session ties Supabase identities to subscription profiles. A
// session is only ever authenticated when both halves exist: a valid access
// token and a profile row with a tier.
package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"versegen/internal/auth"
	"versegen/internal/domain"
)

// AuthProvider is the slice of the GoTrue client the manager needs.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) error
	SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	UserFromToken(ctx context.Context, accessToken string) (*auth.User, error)
}

// ProfileSource loads the subscription profile for an identity.
type ProfileSource interface {
	ByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// State is a fully resolved authenticated session. Code holding a *State may
// assume the tier is present; there is no half-authenticated form.
type State struct {
	User        domain.User
	Tier        domain.Tier
	Features    []domain.FeatureID
	AccessToken string
	ExpiresIn   int
}

type Manager struct {
	provider AuthProvider
	profiles ProfileSource
	catalog  *domain.Catalog
	log      zerolog.Logger
}

func NewManager(provider AuthProvider, profiles ProfileSource, catalog *domain.Catalog, log zerolog.Logger) *Manager {
	return &Manager{provider: provider, profiles: profiles, catalog: catalog, log: log}
}

// SignUp registers an identity. No session is created; the caller signs in
// after email verification.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	return m.provider.SignUp(ctx, email, password)
}

// Login exchanges credentials for an authenticated state. When the profile
// cannot be loaded the provider session is revoked and the login fails:
// a token without a tier must never reach handlers.
func (m *Manager) Login(ctx context.Context, email, password string) (*State, error) {
	sess, err := m.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	profile, err := m.profiles.ByUserID(ctx, sess.User.ID)
	if err != nil {
		m.log.Warn().Err(err).Str("user_id", sess.User.ID).Msg("profile unavailable after sign-in, revoking session")
		if signOutErr := m.provider.SignOut(ctx, sess.AccessToken); signOutErr != nil {
			m.log.Warn().Err(signOutErr).Msg("remote sign-out failed")
		}
		return nil, fmt.Errorf("%w: profile unavailable", domain.ErrUnauthorized)
	}
	return m.state(sess.User, profile, sess.AccessToken, sess.ExpiresIn), nil
}

// Restore rebuilds the authenticated state from an access token, typically on
// page load. A token whose profile cannot be loaded is revoked, same as on
// login: any failure along the way reads as "not signed in".
func (m *Manager) Restore(ctx context.Context, accessToken string) (*State, error) {
	user, err := m.provider.UserFromToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	profile, err := m.profiles.ByUserID(ctx, user.ID)
	if err != nil {
		m.log.Warn().Err(err).Str("user_id", user.ID).Msg("profile unavailable on restore, revoking session")
		if signOutErr := m.provider.SignOut(ctx, accessToken); signOutErr != nil {
			m.log.Warn().Err(signOutErr).Msg("remote sign-out failed")
		}
		return nil, fmt.Errorf("%w: profile unavailable", domain.ErrUnauthorized)
	}
	return m.state(*user, profile, accessToken, 0), nil
}

// Logout revokes the token remotely. The local session is considered cleared
// regardless of the remote outcome, so a provider failure is logged and
// swallowed.
func (m *Manager) Logout(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	if err := m.provider.SignOut(ctx, accessToken); err != nil {
		m.log.Warn().Err(err).Msg("remote sign-out failed, session cleared locally")
	}
}

func (m *Manager) state(user auth.User, profile *domain.Profile, token string, expiresIn int) *State {
	return &State{
		User:        domain.User{ID: user.ID, Email: user.Email},
		Tier:        profile.Tier,
		Features:    m.catalog.VisibleFeatures(profile.Tier),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}
}
