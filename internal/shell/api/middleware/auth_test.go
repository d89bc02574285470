package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challenge-asso/challenge-admin/internal/core/auth"
)

func TestTokenIssuer_IssueVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("adm_1a2b3c4d", "admin@challenge.fr")
	require.NoError(t, err)

	ac, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.True(t, ac.Authenticated)
	assert.Equal(t, "adm_1a2b3c4d", ac.AdminID)
	assert.Equal(t, "admin@challenge.fr", ac.Email)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue("adm_1", "a@b.fr")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Verify(token)

	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Hour)

	token, err := issuer.Issue("adm_1", "a@b.fr")
	require.NoError(t, err)

	_, err = issuer.Verify(token)

	assert.Error(t, err)
}

func TestAuthMiddleware_SetsContext(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue("adm_1", "a@b.fr")
	require.NoError(t, err)

	var got auth.Context
	handler := NewAuthMiddleware(issuer, nil).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.Authenticated)
	assert.Equal(t, "adm_1", got.AdminID)
}

func TestAuthMiddleware_RejectsBadToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	handler := NewAuthMiddleware(issuer, nil).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	handler := RequireAuth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	handler := RequireAuth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithContext(req.Context(), auth.Context{AdminID: "adm_1", Authenticated: true}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
