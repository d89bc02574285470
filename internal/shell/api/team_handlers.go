package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/core/validation"
)

// =============================================================================
// Team Handlers
// =============================================================================

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateTeamFields(req.Name, req.SchoolID, req.SportID); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	now := time.Now().UTC()
	team := &domain.Team{
		ID:        domain.NewID("team"),
		Name:      req.Name,
		SchoolID:  req.SchoolID,
		SportID:   req.SportID,
		CaptainID: req.CaptainID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.CreateTeam(r.Context(), team); err != nil {
		h.logger.Error("failed to create team", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create team", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, team)
}

func (h *Handler) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "team not found", "team_not_found")
			return
		}
		h.logger.Error("failed to get team", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get team", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, team)
}

func (h *Handler) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "team not found", "team_not_found")
			return
		}
		h.logger.Error("failed to get team", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get team", "internal_error")
		return
	}

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if field, msg := validation.ValidateCreateTeamFields(req.Name, req.SchoolID, req.SportID); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	team.Name = req.Name
	team.SchoolID = req.SchoolID
	team.SportID = req.SportID
	team.CaptainID = req.CaptainID
	team.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateTeam(r.Context(), team); err != nil {
		h.logger.Error("failed to update team", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update team", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, team)
}

func (h *Handler) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "team not found", "team_not_found")
			return
		}
		h.logger.Error("failed to delete team", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete team", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListSchoolTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeamsBySchool(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("failed to list school teams", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list teams", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.Team]{Items: teams, Total: len(teams)})
}

func (h *Handler) handleListSportTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeamsBySport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("failed to list sport teams", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list teams", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.Team]{Items: teams, Total: len(teams)})
}

// =============================================================================
// Match Handlers
// =============================================================================

func (h *Handler) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateMatchFields(req.SportID, req.Team1ID, req.Team2ID); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	now := time.Now().UTC()
	match := &domain.Match{
		ID:         domain.NewID("mtch"),
		SportID:    req.SportID,
		Team1ID:    req.Team1ID,
		Team2ID:    req.Team2ID,
		LocationID: req.LocationID,
		Date:       req.Date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.store.CreateMatch(r.Context(), match); err != nil {
		h.logger.Error("failed to create match", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create match", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, match)
}

func (h *Handler) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.store.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "match not found", "match_not_found")
			return
		}
		h.logger.Error("failed to get match", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get match", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, match)
}

// handleSetMatchScore records the final score and derives the winner.
// A draw leaves WinnerID empty.
func (h *Handler) handleSetMatchScore(w http.ResponseWriter, r *http.Request) {
	match, err := h.store.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "match not found", "match_not_found")
			return
		}
		h.logger.Error("failed to get match", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get match", "internal_error")
		return
	}

	var req SetMatchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if req.Score1 < 0 || req.Score2 < 0 {
		h.writeError(w, http.StatusBadRequest, "scores must be non-negative", "validation_error")
		return
	}

	match.Score1 = req.Score1
	match.Score2 = req.Score2
	match.WinnerID = ""
	if req.Score1 > req.Score2 {
		match.WinnerID = match.Team1ID
	} else if req.Score2 > req.Score1 {
		match.WinnerID = match.Team2ID
	}
	match.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateMatch(r.Context(), match); err != nil {
		h.logger.Error("failed to update match", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update match", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, match)
}

func (h *Handler) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "match not found", "match_not_found")
			return
		}
		h.logger.Error("failed to delete match", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete match", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListSportMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.ListMatchesBySport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("failed to list matches", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list matches", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.Match]{Items: matches, Total: len(matches)})
}
