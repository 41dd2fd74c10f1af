package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"versegen/internal/auth"
	"versegen/internal/domain"
)

type stubProvider struct {
	session    *auth.Session
	signInErr  error
	user       *auth.User
	userErr    error
	signOutErr error

	signOuts []string
	signUps  int
}

func (s *stubProvider) SignUp(context.Context, string, string) error {
	s.signUps++
	return nil
}

func (s *stubProvider) SignInWithPassword(context.Context, string, string) (*auth.Session, error) {
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return s.session, nil
}

func (s *stubProvider) SignOut(_ context.Context, token string) error {
	s.signOuts = append(s.signOuts, token)
	return s.signOutErr
}

func (s *stubProvider) UserFromToken(context.Context, string) (*auth.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

type stubProfiles struct {
	profile *domain.Profile
	err     error
}

func (s *stubProfiles) ByUserID(context.Context, string) (*domain.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func newManager(p *stubProvider, profiles *stubProfiles) *Manager {
	return NewManager(p, profiles, domain.DefaultCatalog(), zerolog.Nop())
}

func eliteSession() *auth.Session {
	return &auth.Session{
		AccessToken: "token-1",
		ExpiresIn:   3600,
		User:        auth.User{ID: "user-1", Email: "streamer@example.com"},
	}
}

func TestLoginResolvesTierAndFeatures(t *testing.T) {
	provider := &stubProvider{session: eliteSession()}
	profiles := &stubProfiles{profile: &domain.Profile{ID: "user-1", Tier: domain.TierElite}}

	state, err := newManager(provider, profiles).Login(context.Background(), "streamer@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if state.Tier != domain.TierElite {
		t.Fatalf("tier = %q, want elite", state.Tier)
	}
	if state.AccessToken != "token-1" || state.User.ID != "user-1" {
		t.Fatalf("state not filled from provider session: %+v", state)
	}
	found := false
	for _, f := range state.Features {
		if f == domain.FeatureVodQueue {
			found = true
		}
	}
	if !found {
		t.Fatalf("elite state missing vod-queue, features = %v", state.Features)
	}
}

func TestLoginWithoutProfileRevokesSession(t *testing.T) {
	provider := &stubProvider{session: eliteSession()}
	profiles := &stubProfiles{err: fmt.Errorf("%w: profile for user user-1", domain.ErrNotFound)}

	_, err := newManager(provider, profiles).Login(context.Background(), "streamer@example.com", "pw")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if len(provider.signOuts) != 1 || provider.signOuts[0] != "token-1" {
		t.Fatalf("expected remote sign-out of token-1, got %v", provider.signOuts)
	}
}

func TestLoginWithoutProfileStillFailsWhenSignOutFails(t *testing.T) {
	provider := &stubProvider{session: eliteSession(), signOutErr: errors.New("gotrue down")}
	profiles := &stubProfiles{err: domain.ErrNotFound}

	_, err := newManager(provider, profiles).Login(context.Background(), "streamer@example.com", "pw")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	provider := &stubProvider{signInErr: fmt.Errorf("%w: invalid login", domain.ErrUnauthorized)}
	profiles := &stubProfiles{profile: &domain.Profile{ID: "user-1", Tier: domain.TierFree}}

	_, err := newManager(provider, profiles).Login(context.Background(), "streamer@example.com", "nope")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if len(provider.signOuts) != 0 {
		t.Fatalf("no session to revoke, got sign-outs %v", provider.signOuts)
	}
}

func TestRestore(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "user-1", Email: "streamer@example.com"}}
	profiles := &stubProfiles{profile: &domain.Profile{ID: "user-1", Tier: domain.TierFree}}

	state, err := newManager(provider, profiles).Restore(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if state.Tier != domain.TierFree {
		t.Fatalf("tier = %q, want free", state.Tier)
	}
	for _, f := range state.Features {
		if f == domain.FeatureVodQueue {
			t.Fatalf("free state must not list vod-queue: %v", state.Features)
		}
	}
}

func TestRestoreWithoutProfileRevokesSession(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "user-1"}}
	profiles := &stubProfiles{err: domain.ErrNotFound}

	_, err := newManager(provider, profiles).Restore(context.Background(), "token-1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if len(provider.signOuts) != 1 || provider.signOuts[0] != "token-1" {
		t.Fatalf("expected remote sign-out of token-1, got %v", provider.signOuts)
	}
}

func TestLogoutSwallowsRemoteFailure(t *testing.T) {
	provider := &stubProvider{signOutErr: errors.New("gotrue down")}
	m := newManager(provider, &stubProfiles{})

	m.Logout(context.Background(), "token-1")
	if len(provider.signOuts) != 1 {
		t.Fatalf("expected one remote sign-out, got %d", len(provider.signOuts))
	}

	m.Logout(context.Background(), "")
	if len(provider.signOuts) != 1 {
		t.Fatalf("empty token must not hit the provider")
	}
}
