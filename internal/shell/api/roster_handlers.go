package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/core/quota"
	"github.com/challenge-asso/challenge-admin/internal/core/roster"
	"github.com/challenge-asso/challenge-admin/internal/shell/store"
)

// =============================================================================
// Roster Handlers
// =============================================================================

// handleGetRoster returns the validation table of one school. An
// optional q parameter fuzzy-filters rows by participant name.
func (h *Handler) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "id")

	if _, err := h.store.GetSchool(r.Context(), schoolID); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "school not found", "school_not_found")
			return
		}
		h.logger.Error("failed to get school", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get school", "internal_error")
		return
	}

	input, err := h.loadRosterInput(r, schoolID)
	if err != nil {
		h.logger.Error("failed to load roster data", "school_id", schoolID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load roster", "internal_error")
		return
	}

	rows := roster.Project(*input)

	if q := r.URL.Query().Get("q"); q != "" {
		filtered := make([]roster.Row, 0, len(rows))
		for _, row := range rows {
			if fuzzy.MatchNormalizedFold(q, row.FullName) || fuzzy.MatchNormalizedFold(q, row.Email) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	h.writeJSON(w, http.StatusOK, RosterResponse{
		SchoolID: schoolID,
		Rows:     rows,
		Total:    len(rows),
	})
}

// loadRosterInput gathers everything a projection needs for one school.
func (h *Handler) loadRosterInput(r *http.Request, schoolID string) (*roster.Input, error) {
	ctx := r.Context()

	users, err := h.store.ListUsersBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	participants, err := h.store.ListParticipantsBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	purchases, err := h.store.ListPurchasesBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	products, err := h.store.ListProducts(ctx, store.ListOptions{Limit: 1000})
	if err != nil {
		return nil, err
	}
	sports, err := h.store.ListSports(ctx, store.ListOptions{Limit: 1000})
	if err != nil {
		return nil, err
	}
	teams, err := h.store.ListTeamsBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]domain.Purchase)
	for _, p := range purchases {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	return &roster.Input{
		Users:        users,
		Participants: participants,
		Purchases:    byUser,
		Products:     products,
		Sports:       sports,
		Teams:        teams,
	}, nil
}

// =============================================================================
// User Validation Handlers
// =============================================================================

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetCompetitionUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "user not found", "user_not_found")
			return
		}
		h.logger.Error("failed to get user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get user", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleValidateUser(w http.ResponseWriter, r *http.Request) {
	h.setValidation(w, r, true)
}

func (h *Handler) handleInvalidateUser(w http.ResponseWriter, r *http.Request) {
	h.setValidation(w, r, false)
}

// setValidation writes the flag upstream first, then locally. If the
// upstream call fails the local copy is left untouched, so the two
// systems never disagree in favor of this one.
func (h *Handler) setValidation(w http.ResponseWriter, r *http.Request, validated bool) {
	userID := chi.URLParam(r, "id")

	user, err := h.store.GetCompetitionUser(r.Context(), userID)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "user not found", "user_not_found")
			return
		}
		h.logger.Error("failed to get user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get user", "internal_error")
		return
	}

	if err := h.gateway.SetUserValidation(r.Context(), userID, validated); err != nil {
		h.logger.Error("upstream validation update failed", "user_id", userID, "error", err)
		h.writeError(w, http.StatusBadGateway, "upstream validation update failed", "gateway_error")
		return
	}

	if err := h.store.SetUserValidated(r.Context(), userID, validated); err != nil {
		h.logger.Error("failed to persist validation", "user_id", userID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to persist validation", "internal_error")
		return
	}

	user.Validated = validated
	h.writeJSON(w, http.StatusOK, user)
}

// =============================================================================
// Quota Handlers
// =============================================================================

// handleGetQuotaOverview evaluates a school's usage against its declared
// quotas: general role categories, per-sport and per-product.
func (h *Handler) handleGetQuotaOverview(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "id")
	ctx := r.Context()

	if _, err := h.store.GetSchool(ctx, schoolID); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "school not found", "school_not_found")
			return
		}
		h.logger.Error("failed to get school", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get school", "internal_error")
		return
	}

	input, err := h.loadRosterInput(r, schoolID)
	if err != nil {
		h.logger.Error("failed to load roster data", "school_id", schoolID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to evaluate quotas", "internal_error")
		return
	}
	rows := roster.Project(*input)

	general, err := h.store.GetGeneralQuota(ctx, schoolID)
	if err != nil {
		h.logger.Error("failed to get general quota", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to evaluate quotas", "internal_error")
		return
	}
	sportQuotas, err := h.store.ListSportQuotas(ctx, schoolID)
	if err != nil {
		h.logger.Error("failed to list sport quotas", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to evaluate quotas", "internal_error")
		return
	}
	productQuotas, err := h.store.ListProductQuotas(ctx, schoolID)
	if err != nil {
		h.logger.Error("failed to list product quotas", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to evaluate quotas", "internal_error")
		return
	}

	purchases, err := h.store.ListPurchasesBySchool(ctx, schoolID)
	if err != nil {
		h.logger.Error("failed to list purchases", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to evaluate quotas", "internal_error")
		return
	}

	usage := quota.CountByCategory(rows)

	h.writeJSON(w, http.StatusOK, QuotaOverviewResponse{
		SchoolID: schoolID,
		General:  quota.GeneralStatus(usage, *general),
		Sports:   quota.EvaluateSports(rows, input.Teams, sportQuotas),
		Products: quota.EvaluateProducts(purchases, input.Products, productQuotas),
	})
}
