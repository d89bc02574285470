package store

import (
	"context"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for Challenge entities.
type Store interface {
	// Admin accounts
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error)

	// Editions
	CreateEdition(ctx context.Context, edition *domain.Edition) error
	GetEdition(ctx context.Context, id string) (*domain.Edition, error)
	GetActiveEdition(ctx context.Context) (*domain.Edition, error)
	UpdateEdition(ctx context.Context, edition *domain.Edition) error
	DeleteEdition(ctx context.Context, id string) error
	ListEditions(ctx context.Context, opts ListOptions) ([]domain.Edition, error)

	// Schools
	CreateSchool(ctx context.Context, school *domain.School) error
	GetSchool(ctx context.Context, id string) (*domain.School, error)
	UpdateSchool(ctx context.Context, school *domain.School) error
	DeleteSchool(ctx context.Context, id string) error
	ListSchools(ctx context.Context, opts ListOptions) ([]domain.School, error)

	// Sports
	CreateSport(ctx context.Context, sport *domain.Sport) error
	GetSport(ctx context.Context, id string) (*domain.Sport, error)
	UpdateSport(ctx context.Context, sport *domain.Sport) error
	DeleteSport(ctx context.Context, id string) error
	ListSports(ctx context.Context, opts ListOptions) ([]domain.Sport, error)

	// Locations
	CreateLocation(ctx context.Context, location *domain.Location) error
	GetLocation(ctx context.Context, id string) (*domain.Location, error)
	UpdateLocation(ctx context.Context, location *domain.Location) error
	DeleteLocation(ctx context.Context, id string) error
	ListLocations(ctx context.Context, opts ListOptions) ([]domain.Location, error)

	// Teams
	CreateTeam(ctx context.Context, team *domain.Team) error
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
	UpdateTeam(ctx context.Context, team *domain.Team) error
	DeleteTeam(ctx context.Context, id string) error
	ListTeamsBySchool(ctx context.Context, schoolID string) ([]domain.Team, error)
	ListTeamsBySport(ctx context.Context, sportID string) ([]domain.Team, error)

	// Matches
	CreateMatch(ctx context.Context, match *domain.Match) error
	GetMatch(ctx context.Context, id string) (*domain.Match, error)
	UpdateMatch(ctx context.Context, match *domain.Match) error
	DeleteMatch(ctx context.Context, id string) error
	ListMatchesBySport(ctx context.Context, sportID string) ([]domain.Match, error)

	// Competition users (synced from the registration upstream)
	UpsertCompetitionUser(ctx context.Context, user *domain.CompetitionUser) error
	GetCompetitionUser(ctx context.Context, id string) (*domain.CompetitionUser, error)
	ListUsersBySchool(ctx context.Context, schoolID string) ([]domain.CompetitionUser, error)
	SetUserValidated(ctx context.Context, id string, validated bool) error

	// School participants
	UpsertSchoolParticipant(ctx context.Context, participant *domain.SchoolParticipant) error
	ListParticipantsBySchool(ctx context.Context, schoolID string) ([]domain.SchoolParticipant, error)

	// Products and variants
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, opts ListOptions) ([]domain.Product, error)
	CreateVariant(ctx context.Context, variant *domain.ProductVariant) error
	DeleteVariant(ctx context.Context, id string) error

	// Purchases
	UpsertPurchase(ctx context.Context, purchase *domain.Purchase) error
	DeletePurchase(ctx context.Context, id string) error
	ListPurchasesByUser(ctx context.Context, userID string) ([]domain.Purchase, error)
	ListPurchasesBySchool(ctx context.Context, schoolID string) ([]domain.Purchase, error)

	// Quotas
	UpsertGeneralQuota(ctx context.Context, quota *domain.SchoolGeneralQuota) error
	GetGeneralQuota(ctx context.Context, schoolID string) (*domain.SchoolGeneralQuota, error)
	UpsertSportQuota(ctx context.Context, quota *domain.SchoolSportQuota) error
	ListSportQuotas(ctx context.Context, schoolID string) ([]domain.SchoolSportQuota, error)
	UpsertProductQuota(ctx context.Context, quota *domain.SchoolProductQuota) error
	ListProductQuotas(ctx context.Context, schoolID string) ([]domain.SchoolProductQuota, error)

	// Rankings
	ReplaceSportResults(ctx context.Context, sportID string, results []domain.TeamSportResult) error
	ListResultsBySport(ctx context.Context, sportID string) ([]domain.TeamSportResult, error)
	ReplacePompomsResults(ctx context.Context, totals []domain.PompomsResult) error
	ListPompomsResults(ctx context.Context) ([]domain.PompomsResult, error)
	ReplaceGlobalPodium(ctx context.Context, entries []domain.GlobalPodiumEntry) error
	ListGlobalPodium(ctx context.Context) ([]domain.GlobalPodiumEntry, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Close() error
}

// =============================================================================
// Options
// =============================================================================

// ListOptions defines pagination options.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns default list options.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Limit:  100,
		Offset: 0,
	}
}

// Normalize ensures list options have valid values.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 100
	}
	if o.Limit > 1000 {
		o.Limit = 1000
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
