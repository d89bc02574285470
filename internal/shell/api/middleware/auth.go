// Package middleware provides HTTP middleware for the dashboard API.
package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/challenge-asso/challenge-admin/internal/core/auth"
)

// =============================================================================
// Token Issuing
// =============================================================================

// TokenIssuer signs and verifies admin session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer. TTL defaults to 24 hours.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed session token for an admin.
func (i *TokenIssuer) Issue(adminID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      "challenge-admin",
		"admin_id": adminID,
		"email":    email,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses a token string and returns the auth context it encodes.
func (i *TokenIssuer) Verify(tokenString string) (auth.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return auth.Context{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return auth.Context{}, errors.New("invalid token claims")
	}

	adminID, _ := claims["admin_id"].(string)
	email, _ := claims["email"].(string)
	if adminID == "" {
		return auth.Context{}, errors.New("token missing admin_id claim")
	}

	return auth.Context{
		AdminID:       adminID,
		Email:         email,
		Authenticated: true,
	}, nil
}

// =============================================================================
// Auth Middleware
// =============================================================================

// AuthMiddleware verifies the Authorization bearer token and stores the
// resulting auth context in the request context.
type AuthMiddleware struct {
	issuer *TokenIssuer
	logger *slog.Logger
}

// NewAuthMiddleware creates the auth middleware.
func NewAuthMiddleware(issuer *TokenIssuer, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{issuer: issuer, logger: logger}
}

// Handler extracts and verifies the bearer token. Requests without a
// token pass through unauthenticated; RequireAuth rejects them later on
// protected routes.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}

		ac, err := m.issuer.Verify(tokenString)
		if err != nil {
			m.logger.Warn("token verification failed",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
				"error", err,
			)
			writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), ac)))
	})
}

// =============================================================================
// Require Auth Middleware
// =============================================================================

// RequireAuth rejects requests that carry no authenticated admin.
// Must be used after AuthMiddleware.
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := auth.FromContext(r.Context())
			if !ac.Authenticated {
				logger.Warn("unauthenticated request to protected endpoint",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
