package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"billiardsone/backend/libs/auth"
)

const secret = "gateway-test-secret"

func token(t *testing.T, subject, role, cafeID string) string {
	t.Helper()
	tok, err := auth.NewTokenService(secret, time.Hour).GenerateToken(subject, role, cafeID)
	require.NoError(t, err)
	return tok
}

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Seen-Staff", r.Header.Get(auth.HeaderStaffID))
		w.Header().Set("Seen-Cafe", r.Header.Get(auth.HeaderCafeID))
		w.Header().Set("Seen-Role", r.Header.Get(auth.HeaderRole))
		w.WriteHeader(http.StatusOK)
	})
}

func staffOnly(allowQuery bool) http.Handler {
	validator := auth.NewTokenService(secret, time.Hour)
	return Chain(echoIdentity(), AuthMiddleware(validator, allowQuery), RequireRole(auth.RoleStaff))
}

func TestAuthMiddleware_SetsIdentityHeaders(t *testing.T) {
	staffID, cafeID := uuid.NewString(), uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, staffID, auth.RoleStaff, cafeID))
	req.Header.Set(auth.HeaderCafeID, uuid.NewString())
	rec := httptest.NewRecorder()
	staffOnly(false).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, staffID, rec.Header().Get("Seen-Staff"))
	assert.Equal(t, cafeID, rec.Header().Get("Seen-Cafe"))
	assert.Equal(t, auth.RoleStaff, rec.Header().Get("Seen-Role"))
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"owner token", "Bearer " + token(t, uuid.NewString(), auth.RoleOwner, ""), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			staffOnly(false).ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	tok := token(t, uuid.NewString(), auth.RoleStaff, uuid.NewString())

	rec := httptest.NewRecorder()
	staffOnly(false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ws/tables?token="+tok, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	staffOnly(true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ws/tables?token="+tok, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusTeapot), entries[0].ContextMap()["status"])
}
