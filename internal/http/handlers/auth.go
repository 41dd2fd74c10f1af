package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"versegen/internal/domain"
	"versegen/internal/middleware"
	"versegen/internal/session"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string             `json:"access_token,omitempty"`
	ExpiresIn   int                `json:"expires_in,omitempty"`
	User        sessionUserDTO     `json:"user"`
	Tier        string             `json:"tier"`
	Features    []domain.FeatureID `json:"features"`
}

type sessionUserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func sessionDTO(state *session.State) sessionResponse {
	return sessionResponse{
		AccessToken: state.AccessToken,
		ExpiresIn:   state.ExpiresIn,
		User:        sessionUserDTO{ID: state.User.ID, Email: state.User.Email},
		Tier:        string(state.Tier),
		Features:    state.Features,
	}
}

func decodeCredentials(r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, false
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return req, false
	}
	return req, true
}

// AuthSignUp registers an identity. Sign-in happens separately, after the
// verification email is confirmed.
func (a *App) AuthSignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}
	if err := a.Sessions.SignUp(r.Context(), req.Email, req.Password); err != nil {
		a.Logger.Warn().Err(err).Msg("sign-up rejected")
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "confirmation_sent"})
}

// AuthLogin exchanges credentials for a session with the resolved tier and
// feature list attached.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}
	state, err := a.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, sessionDTO(state))
}

// AuthSession restores the session behind the bearer token, typically on
// page load.
func (a *App) AuthSession(w http.ResponseWriter, r *http.Request) {
	token := middleware.AccessTokenFromContext(r.Context())
	if token == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	state, err := a.Sessions.Restore(r.Context(), token)
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, sessionDTO(state))
}

// AuthLogout revokes the token. Always succeeds from the client's point of
// view; the remote revocation is best effort.
func (a *App) AuthLogout(w http.ResponseWriter, r *http.Request) {
	a.Sessions.Logout(r.Context(), middleware.AccessTokenFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
