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
// Edition Handlers
// =============================================================================

func (h *Handler) handleCreateEdition(w http.ResponseWriter, r *http.Request) {
	var req CreateEditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateEditionFields(req.Name, req.Year); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	now := time.Now().UTC()
	edition := &domain.Edition{
		ID:        domain.NewID("ed"),
		Name:      req.Name,
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    req.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.CreateEdition(r.Context(), edition); err != nil {
		h.logger.Error("failed to create edition", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create edition", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, edition)
}

func (h *Handler) handleListEditions(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	editions, err := h.store.ListEditions(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list editions", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list editions", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.Edition]{
		Items:  editions,
		Total:  len(editions),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

func (h *Handler) handleGetActiveEdition(w http.ResponseWriter, r *http.Request) {
	edition, err := h.store.GetActiveEdition(r.Context())
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "no active edition", "edition_not_found")
			return
		}
		h.logger.Error("failed to get active edition", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get active edition", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, edition)
}

func (h *Handler) handleGetEdition(w http.ResponseWriter, r *http.Request) {
	edition, err := h.store.GetEdition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "edition not found", "edition_not_found")
			return
		}
		h.logger.Error("failed to get edition", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get edition", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, edition)
}

func (h *Handler) handleUpdateEdition(w http.ResponseWriter, r *http.Request) {
	edition, err := h.store.GetEdition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "edition not found", "edition_not_found")
			return
		}
		h.logger.Error("failed to get edition", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get edition", "internal_error")
		return
	}

	var req CreateEditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if field, msg := validation.ValidateCreateEditionFields(req.Name, req.Year); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	edition.Name = req.Name
	edition.Year = req.Year
	edition.StartDate = req.StartDate
	edition.EndDate = req.EndDate
	edition.Active = req.Active
	edition.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateEdition(r.Context(), edition); err != nil {
		h.logger.Error("failed to update edition", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update edition", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, edition)
}

func (h *Handler) handleDeleteEdition(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEdition(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "edition not found", "edition_not_found")
			return
		}
		h.logger.Error("failed to delete edition", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete edition", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// School Handlers
// =============================================================================

func (h *Handler) handleCreateSchool(w http.ResponseWriter, r *http.Request) {
	var req CreateSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateSchoolFields(req.Name, req.Type); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	now := time.Now().UTC()
	school := &domain.School{
		ID:          domain.NewID("sch"),
		Name:        req.Name,
		EmailDomain: req.EmailDomain,
		Type:        domain.SchoolType(req.Type),
		Address:     req.Address,
		EditionID:   req.EditionID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateSchool(r.Context(), school); err != nil {
		h.logger.Error("failed to create school", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create school", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, school)
}

func (h *Handler) handleListSchools(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	schools, err := h.store.ListSchools(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list schools", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list schools", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.School]{
		Items:  schools,
		Total:  len(schools),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

func (h *Handler) handleGetSchool(w http.ResponseWriter, r *http.Request) {
	school, err := h.store.GetSchool(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "school not found", "school_not_found")
			return
		}
		h.logger.Error("failed to get school", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get school", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, school)
}

func (h *Handler) handleUpdateSchool(w http.ResponseWriter, r *http.Request) {
	school, err := h.store.GetSchool(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "school not found", "school_not_found")
			return
		}
		h.logger.Error("failed to get school", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get school", "internal_error")
		return
	}

	var req CreateSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if field, msg := validation.ValidateCreateSchoolFields(req.Name, req.Type); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	school.Name = req.Name
	school.EmailDomain = req.EmailDomain
	school.Type = domain.SchoolType(req.Type)
	school.Address = req.Address
	school.EditionID = req.EditionID
	school.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateSchool(r.Context(), school); err != nil {
		h.logger.Error("failed to update school", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update school", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, school)
}

func (h *Handler) handleDeleteSchool(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSchool(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "school not found", "school_not_found")
			return
		}
		h.logger.Error("failed to delete school", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete school", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Sport Handlers
// =============================================================================

func (h *Handler) handleCreateSport(w http.ResponseWriter, r *http.Request) {
	var req CreateSportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateSportFields(req.Name, req.TeamCapacity); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	now := time.Now().UTC()
	sport := &domain.Sport{
		ID:            domain.NewID("sprt"),
		Name:          req.Name,
		TeamCapacity:  req.TeamCapacity,
		SubstituteMax: req.SubstituteMax,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.store.CreateSport(r.Context(), sport); err != nil {
		h.logger.Error("failed to create sport", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create sport", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, sport)
}

func (h *Handler) handleListSports(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	sports, err := h.store.ListSports(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list sports", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list sports", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.Sport]{
		Items:  sports,
		Total:  len(sports),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

func (h *Handler) handleGetSport(w http.ResponseWriter, r *http.Request) {
	sport, err := h.store.GetSport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "sport not found", "sport_not_found")
			return
		}
		h.logger.Error("failed to get sport", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get sport", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, sport)
}

func (h *Handler) handleUpdateSport(w http.ResponseWriter, r *http.Request) {
	sport, err := h.store.GetSport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "sport not found", "sport_not_found")
			return
		}
		h.logger.Error("failed to get sport", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get sport", "internal_error")
		return
	}

	var req CreateSportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if field, msg := validation.ValidateCreateSportFields(req.Name, req.TeamCapacity); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	sport.Name = req.Name
	sport.TeamCapacity = req.TeamCapacity
	sport.SubstituteMax = req.SubstituteMax
	sport.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateSport(r.Context(), sport); err != nil {
		h.logger.Error("failed to update sport", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update sport", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, sport)
}

func (h *Handler) handleDeleteSport(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSport(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "sport not found", "sport_not_found")
			return
		}
		h.logger.Error("failed to delete sport", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete sport", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Location Handlers
// =============================================================================

func (h *Handler) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateLocationFields(req.Name, req.Latitude, req.Longitude); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	now := time.Now().UTC()
	location := &domain.Location{
		ID:        domain.NewID("loc"),
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.CreateLocation(r.Context(), location); err != nil {
		h.logger.Error("failed to create location", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create location", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, location)
}

func (h *Handler) handleListLocations(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	locations, err := h.store.ListLocations(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list locations", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list locations", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.Location]{
		Items:  locations,
		Total:  len(locations),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

func (h *Handler) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	location, err := h.store.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "location not found", "location_not_found")
			return
		}
		h.logger.Error("failed to get location", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get location", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, location)
}

func (h *Handler) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	location, err := h.store.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "location not found", "location_not_found")
			return
		}
		h.logger.Error("failed to get location", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get location", "internal_error")
		return
	}

	var req CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if field, msg := validation.ValidateCreateLocationFields(req.Name, req.Latitude, req.Longitude); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	location.Name = req.Name
	location.Address = req.Address
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateLocation(r.Context(), location); err != nil {
		h.logger.Error("failed to update location", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update location", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, location)
}

func (h *Handler) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "location not found", "location_not_found")
			return
		}
		h.logger.Error("failed to delete location", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete location", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
