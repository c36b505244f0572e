package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/security"
)

func TestAuth(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", "slotta", time.Hour)
	token, _, err := tokens.Generate(42, "anna@example.com", "anna")
	require.NoError(t, err)

	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetMasterID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     int64
	}{
		{name: "Valid token", header: "Bearer " + token, wantStatus: http.StatusNoContent, wantID: 42},
		{name: "Missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "Wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "Garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotOK = 0, false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/masters/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(tokens)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantID, gotID)
			assert.Equal(t, tt.wantID != 0, gotOK)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", "slotta", time.Hour)

	var called bool
	var hasSession bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, hasSession = GetMasterID(r.Context())
	})

	t.Run("Anonymous request passes without session", func(t *testing.T) {
		called, hasSession = false, false
		rec := httptest.NewRecorder()
		OptionalAuth(tokens)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/cancel", nil))

		assert.True(t, called)
		assert.False(t, hasSession)
	})

	t.Run("Invalid token is rejected", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPatch, "/cancel", nil)
		req.Header.Set("Authorization", "Bearer broken")
		rec := httptest.NewRecorder()
		OptionalAuth(tokens)(next).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("Keeps valid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "3f1f6c1e-8a4b-4c1e-9a55-2f1b2d0c7e11")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "3f1f6c1e-8a4b-4c1e-9a55-2f1b2d0c7e11", seen)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("Replaces invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "<script>")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})
}
