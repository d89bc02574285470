// Package api provides HTTP handlers for the Challenge admin dashboard API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authmw "github.com/challenge-asso/challenge-admin/internal/shell/api/middleware"
	"github.com/challenge-asso/challenge-admin/internal/shell/hyperion"
	"github.com/challenge-asso/challenge-admin/internal/shell/store"
)

// =============================================================================
// Handler
// =============================================================================

// SyncTrigger runs one upstream sync pass on demand. The sync worker
// implements it.
type SyncTrigger interface {
	RunCycle(ctx context.Context)
}

// Handler provides HTTP handlers for the API.
type Handler struct {
	store   store.Store
	gateway hyperion.Client
	issuer  *authmw.TokenIssuer
	syncer  SyncTrigger
	logger  *slog.Logger
}

// NewHandler creates a new API handler. syncer may be nil, in which
// case the manual refresh endpoint returns 503.
func NewHandler(s store.Store, gateway hyperion.Client, issuer *authmw.TokenIssuer, syncer SyncTrigger, l *slog.Logger) *Handler {
	if l == nil {
		l = slog.Default()
	}
	if gateway == nil {
		gateway = hyperion.NewNoOpClient()
	}
	return &Handler{
		store:   s,
		gateway: gateway,
		issuer:  issuer,
		syncer:  syncer,
		logger:  l,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	authMW := authmw.NewAuthMiddleware(h.issuer, h.logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMW.Handler)

		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(h.logger))

			r.Get("/auth/me", h.handleMe)

			r.Route("/editions", func(r chi.Router) {
				r.Post("/", h.handleCreateEdition)
				r.Get("/", h.handleListEditions)
				r.Get("/active", h.handleGetActiveEdition)
				r.Get("/{id}", h.handleGetEdition)
				r.Put("/{id}", h.handleUpdateEdition)
				r.Delete("/{id}", h.handleDeleteEdition)
			})

			r.Route("/schools", func(r chi.Router) {
				r.Post("/", h.handleCreateSchool)
				r.Get("/", h.handleListSchools)
				r.Get("/{id}", h.handleGetSchool)
				r.Put("/{id}", h.handleUpdateSchool)
				r.Delete("/{id}", h.handleDeleteSchool)

				r.Get("/{id}/teams", h.handleListSchoolTeams)
				r.Get("/{id}/roster", h.handleGetRoster)
				r.Get("/{id}/quotas", h.handleGetQuotaOverview)
			})

			r.Route("/sports", func(r chi.Router) {
				r.Post("/", h.handleCreateSport)
				r.Get("/", h.handleListSports)
				r.Get("/{id}", h.handleGetSport)
				r.Put("/{id}", h.handleUpdateSport)
				r.Delete("/{id}", h.handleDeleteSport)

				r.Get("/{id}/teams", h.handleListSportTeams)
				r.Get("/{id}/matches", h.handleListSportMatches)
				r.Get("/{id}/podium", h.handleGetSportPodium)
			})

			r.Route("/locations", func(r chi.Router) {
				r.Post("/", h.handleCreateLocation)
				r.Get("/", h.handleListLocations)
				r.Get("/{id}", h.handleGetLocation)
				r.Put("/{id}", h.handleUpdateLocation)
				r.Delete("/{id}", h.handleDeleteLocation)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Post("/", h.handleCreateTeam)
				r.Get("/{id}", h.handleGetTeam)
				r.Put("/{id}", h.handleUpdateTeam)
				r.Delete("/{id}", h.handleDeleteTeam)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Post("/", h.handleCreateMatch)
				r.Get("/{id}", h.handleGetMatch)
				r.Put("/{id}/score", h.handleSetMatchScore)
				r.Delete("/{id}", h.handleDeleteMatch)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", h.handleCreateProduct)
				r.Get("/", h.handleListProducts)
				r.Get("/{id}", h.handleGetProduct)
				r.Put("/{id}", h.handleUpdateProduct)
				r.Delete("/{id}", h.handleDeleteProduct)
				r.Post("/{id}/variants", h.handleCreateVariant)
			})
			r.Delete("/variants/{id}", h.handleDeleteVariant)

			r.Route("/purchases", func(r chi.Router) {
				r.Post("/", h.handleCreatePurchase)
				r.Delete("/{id}", h.handleDeletePurchase)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/{id}", h.handleGetUser)
				r.Post("/{id}/validate", h.handleValidateUser)
				r.Post("/{id}/invalidate", h.handleInvalidateUser)
			})

			r.Get("/podium/global", h.handleGetGlobalPodium)
			r.Get("/podium/pompoms", h.handleGetPompomsPodium)
			r.Post("/sync", h.handleTriggerSync)
		})
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if _, err := h.store.ListEditions(r.Context(), store.ListOptions{Limit: 1}); err != nil {
		checks["database"] = "failed"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}
	checks["database"] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// Sync Handler
// =============================================================================

func (h *Handler) handleTriggerSync(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		h.writeError(w, http.StatusServiceUnavailable, "sync worker not configured", "sync_unavailable")
		return
	}

	// The cycle runs on the request context, so the response only goes
	// out once the refresh has finished.
	h.syncer.RunCycle(r.Context())
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "sync_complete"})
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func (h *Handler) listOptions(r *http.Request) store.ListOptions {
	opts := store.DefaultListOptions()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			opts.Limit = l
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if o, err := strconv.Atoi(offset); err == nil {
			opts.Offset = o
		}
	}
	return opts.Normalize()
}

// isNotFound checks if an error is a not found error.
func isNotFound(err error) bool {
	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		return errors.Is(storeErr.Unwrap(), store.ErrNotFound)
	}
	return errors.Is(err, store.ErrNotFound)
}
