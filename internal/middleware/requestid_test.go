package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDKeepsValidHeader(t *testing.T) {
	want := uuid.NewString()
	var got string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", want)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got != want {
		t.Fatalf("request id = %q, want %q", got, want)
	}
	if rec.Header().Get("X-Request-ID") != want {
		t.Fatalf("response header = %q, want %q", rec.Header().Get("X-Request-ID"), want)
	}
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	for _, bad := range []string{"", "not-a-uuid", "12345"} {
		var got string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = RequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if bad != "" {
			req.Header.Set("X-Request-ID", bad)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if uuid.Validate(got) != nil {
			t.Fatalf("header %q: context id %q is not a uuid", bad, got)
		}
		if got == bad {
			t.Fatalf("malformed id %q must not be propagated", bad)
		}
	}
}
