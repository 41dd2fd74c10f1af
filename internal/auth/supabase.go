package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"versegen/internal/domain"
)

// Options controls how the Supabase auth client is configured.
type Options struct {
	BaseURL    string
	AnonKey    string
	HTTPClient *http.Client
}

// Client wraps the Supabase GoTrue REST endpoints the service needs:
// sign-up, password sign-in, sign-out and session retrieval. Profiles live
// in Postgres and are fetched separately.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

const authDefaultTimeout = 10 * time.Second

// Session is the provider-issued session for an identity.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// User is the identity as reported by the provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueError struct {
	Msg         string `json:"msg"`
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func (e gotrueError) message() string {
	for _, m := range []string{e.Msg, e.Description, e.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("supabase base url is required")
	}
	if strings.TrimSpace(opts.AnonKey) == "" {
		return nil, errors.New("supabase anon key is required")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: authDefaultTimeout}
	}
	return &Client{
		baseURL:    base,
		anonKey:    strings.TrimSpace(opts.AnonKey),
		httpClient: client,
	}, nil
}

// SignUp registers a new identity. It never yields a session: the provider
// requires email verification before the first sign-in succeeds.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return c.asError(resp, domain.ErrInvalidInput)
	}
	return nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, c.asError(resp, domain.ErrUnauthorized)
	}
	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%w: decode session: %v", domain.ErrUpstream, err)
	}
	if session.AccessToken == "" || session.User.ID == "" {
		return nil, fmt.Errorf("%w: incomplete session payload", domain.ErrUpstream)
	}
	return &session, nil
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return c.asError(resp, domain.ErrUpstream)
	}
	return nil
}

// UserFromToken resolves the identity behind an access token.
func (c *Client) UserFromToken(ctx context.Context, accessToken string) (*User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, c.asError(resp, domain.ErrUnauthorized)
	}
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", domain.ErrUpstream, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: user payload missing id", domain.ErrUpstream)
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return resp, nil
}

func (c *Client) asError(resp *http.Response, category error) error {
	var gerr gotrueError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&gerr)
	if msg := gerr.message(); msg != "" {
		return fmt.Errorf("%w: %s", category, msg)
	}
	return fmt.Errorf("%w: auth provider status %d", category, resp.StatusCode)
}
