package api

import (
	"time"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/core/quota"
	"github.com/challenge-asso/challenge-admin/internal/core/roster"
)

// =============================================================================
// Common Responses
// =============================================================================

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the readiness check payload.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// =============================================================================
// Auth
// =============================================================================

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token after a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

// AdminResponse describes an admin account, without credentials.
type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// =============================================================================
// Catalog Requests
// =============================================================================

// CreateEditionRequest creates a yearly edition.
type CreateEditionRequest struct {
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Active    bool      `json:"active"`
}

// CreateSchoolRequest registers a participating school.
type CreateSchoolRequest struct {
	Name        string `json:"name"`
	EmailDomain string `json:"email_domain"`
	Type        string `json:"school_type"`
	Address     string `json:"address"`
	EditionID   string `json:"edition_id"`
}

// CreateSportRequest adds a competition discipline.
type CreateSportRequest struct {
	Name          string `json:"name"`
	TeamCapacity  int    `json:"team_capacity"`
	SubstituteMax int    `json:"substitute_max"`
}

// CreateLocationRequest adds a venue.
type CreateLocationRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateTeamRequest adds a school's team for a sport.
type CreateTeamRequest struct {
	Name      string `json:"name"`
	SchoolID  string `json:"school_id"`
	SportID   string `json:"sport_id"`
	CaptainID string `json:"captain_id"`
}

// CreateMatchRequest schedules a game.
type CreateMatchRequest struct {
	SportID    string    `json:"sport_id"`
	Team1ID    string    `json:"team1_id"`
	Team2ID    string    `json:"team2_id"`
	LocationID string    `json:"location_id"`
	Date       time.Time `json:"date"`
}

// SetMatchScoreRequest records a finished match.
type SetMatchScoreRequest struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// =============================================================================
// Product Requests
// =============================================================================

// CreateProductRequest adds a catalog product with its variants.
type CreateProductRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Required    bool                   `json:"required"`
	SchoolType  string                 `json:"school_type"`
	PublicType  string                 `json:"public_type"`
	Variants    []CreateVariantRequest `json:"variants"`
}

// CreateVariantRequest adds a sellable option to a product.
type CreateVariantRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Enabled    bool   `json:"enabled"`
}

// CreatePurchaseRequest records a manual purchase.
type CreatePurchaseRequest struct {
	UserID    string `json:"user_id"`
	VariantID string `json:"product_variant_id"`
	Quantity  int    `json:"quantity"`
	Validated bool   `json:"validated"`
}

// =============================================================================
// List Responses
// =============================================================================

// ListResponse is the generic paginated list envelope.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// =============================================================================
// Roster and Quota Responses
// =============================================================================

// RosterResponse is the participant table of one school.
type RosterResponse struct {
	SchoolID string       `json:"school_id"`
	Rows     []roster.Row `json:"rows"`
	Total    int          `json:"total"`
}

// QuotaOverviewResponse bundles a school's three quota views.
type QuotaOverviewResponse struct {
	SchoolID string                 `json:"school_id"`
	General  []quota.CategoryStatus `json:"general"`
	Sports   []quota.SportStatus    `json:"sports"`
	Products []quota.ProductStatus  `json:"products"`
}

// =============================================================================
// Podium Responses
// =============================================================================

// PodiumResponse is a sport's ranking split into podium and the rest.
type PodiumResponse struct {
	SportID  string                   `json:"sport_id"`
	TopThree []domain.TeamSportResult `json:"top_three"`
	Overflow []domain.TeamSportResult `json:"overflow"`
}

// GlobalPodiumResponse is the cross-sport school standings.
type GlobalPodiumResponse struct {
	TopThree []domain.GlobalPodiumEntry `json:"top_three"`
	Overflow []domain.GlobalPodiumEntry `json:"overflow"`
}
