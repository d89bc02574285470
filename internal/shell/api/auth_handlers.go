package api

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/challenge-asso/challenge-admin/internal/core/auth"
	"github.com/challenge-asso/challenge-admin/internal/core/validation"
)

// =============================================================================
// Auth Handlers
// =============================================================================

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateLoginFields(req.Email, req.Password); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	admin, err := h.store.GetAdminByEmail(r.Context(), req.Email)
	if err != nil {
		if isNotFound(err) {
			// Same response as a wrong password, to avoid leaking
			// which emails have accounts.
			h.writeError(w, http.StatusUnauthorized, "invalid credentials", "invalid_credentials")
			return
		}
		h.logger.Error("failed to look up admin", "error", err)
		h.writeError(w, http.StatusInternalServerError, "login failed", "internal_error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		h.writeError(w, http.StatusUnauthorized, "invalid credentials", "invalid_credentials")
		return
	}

	token, err := h.issuer.Issue(admin.ID, admin.Email)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		h.writeError(w, http.StatusInternalServerError, "login failed", "internal_error")
		return
	}

	h.logger.Info("admin logged in", "admin_id", admin.ID)

	h.writeJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		Admin: AdminResponse{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
		},
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())

	admin, err := h.store.GetAdminByEmail(r.Context(), ac.Email)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusUnauthorized, "account no longer exists", "invalid_credentials")
			return
		}
		h.logger.Error("failed to look up admin", "error", err)
		h.writeError(w, http.StatusInternalServerError, "lookup failed", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, AdminResponse{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
	})
}
