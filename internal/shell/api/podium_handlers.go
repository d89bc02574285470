package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/core/podium"
)

// =============================================================================
// Podium Handlers
// =============================================================================

// handleGetSportPodium returns the top three and overflow for a sport.
// The synthetic pompoms sport resolves from per-school totals instead
// of stored team rankings.
func (h *Handler) handleGetSportPodium(w http.ResponseWriter, r *http.Request) {
	sportID := chi.URLParam(r, "id")
	ctx := r.Context()

	var results []domain.TeamSportResult
	if sportID == domain.PompomsSportID {
		totals, err := h.store.ListPompomsResults(ctx)
		if err != nil {
			h.logger.Error("failed to list pompoms results", "error", err)
			h.writeError(w, http.StatusInternalServerError, "failed to load results", "internal_error")
			return
		}
		results = podium.SynthesizePompoms(totals)
	} else {
		if _, err := h.store.GetSport(ctx, sportID); err != nil {
			if isNotFound(err) {
				h.writeError(w, http.StatusNotFound, "sport not found", "sport_not_found")
				return
			}
			h.logger.Error("failed to get sport", "error", err)
			h.writeError(w, http.StatusInternalServerError, "failed to get sport", "internal_error")
			return
		}

		var err error
		results, err = h.store.ListResultsBySport(ctx, sportID)
		if err != nil {
			h.logger.Error("failed to list results", "sport_id", sportID, "error", err)
			h.writeError(w, http.StatusInternalServerError, "failed to load results", "internal_error")
			return
		}
	}

	split := podium.Split(results)

	h.writeJSON(w, http.StatusOK, PodiumResponse{
		SportID:  sportID,
		TopThree: split.TopThree,
		Overflow: split.Overflow,
	})
}

// handleGetPompomsPodium is a direct route to the synthetic pompoms podium,
// equivalent to requesting the pompoms sport by ID.
func (h *Handler) handleGetPompomsPodium(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.ListPompomsResults(r.Context())
	if err != nil {
		h.logger.Error("failed to list pompoms results", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load results", "internal_error")
		return
	}

	split := podium.Split(podium.SynthesizePompoms(totals))

	h.writeJSON(w, http.StatusOK, PodiumResponse{
		SportID:  domain.PompomsSportID,
		TopThree: split.TopThree,
		Overflow: split.Overflow,
	})
}

// handleGetGlobalPodium returns the cross-sport school standings.
func (h *Handler) handleGetGlobalPodium(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListGlobalPodium(r.Context())
	if err != nil {
		h.logger.Error("failed to list global podium", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load global podium", "internal_error")
		return
	}

	ordered := podium.OrderGlobal(entries)

	h.writeJSON(w, http.StatusOK, GlobalPodiumResponse{
		TopThree: ordered.TopThree,
		Overflow: ordered.Overflow,
	})
}
