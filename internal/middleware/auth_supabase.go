package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// SupabaseClaims is the subset of the GoTrue access token we rely on.
type SupabaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type authKey string

const (
	userIDKey      authKey = "user_id"
	userEmailKey   authKey = "user_email"
	accessTokenKey authKey = "access_token"
)

// VerifySupabaseToken checks the HS256 signature and issuer of a GoTrue
// access token. projectURL is the Supabase project base URL.
func VerifySupabaseToken(secret, projectURL, token string) (*SupabaseClaims, error) {
	claims := &SupabaseClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(strings.TrimRight(projectURL, "/")+"/auth/v1"))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthSupabase rejects requests without a valid Supabase access token and
// stores the identity and the raw token on the request context.
func AuthSupabase(secret, projectURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			claims, err := VerifySupabaseToken(secret, projectURL, token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			ctx = context.WithValue(ctx, userEmailKey, claims.Email)
			ctx = context.WithValue(ctx, accessTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

func UserEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userEmailKey).(string); ok {
		return v
	}
	return ""
}

// AccessTokenFromContext returns the raw bearer token so handlers can relay
// it to GoTrue for sign-out.
func AccessTokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(accessTokenKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUser injects an identity directly. Test use only.
func ContextWithUser(ctx context.Context, userID, email string) context.Context {
	if strings.TrimSpace(userID) == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, userIDKey, userID)
	if email != "" {
		ctx = context.WithValue(ctx, userEmailKey, email)
	}
	return ctx
}
