package workers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/shell/hyperion"
	"github.com/challenge-asso/challenge-admin/internal/shell/store"
)

// =============================================================================
// Stub Gateway
// =============================================================================

// stubGateway returns canned Hyperion data and records validation calls.
type stubGateway struct {
	users        []domain.CompetitionUser
	participants []domain.SchoolParticipant
	purchases    map[string][]domain.Purchase
	quotas       *hyperion.SchoolQuotas
	results      map[string][]domain.TeamSportResult
	pompoms      []domain.PompomsResult
	podium       []domain.GlobalPodiumEntry

	failUsers bool
}

func (g *stubGateway) FetchCompetitionUsers(ctx context.Context, schoolID string) ([]domain.CompetitionUser, error) {
	if g.failUsers {
		return nil, errors.New("upstream down")
	}
	return g.users, nil
}

func (g *stubGateway) FetchSchoolParticipants(ctx context.Context, schoolID string) ([]domain.SchoolParticipant, error) {
	return g.participants, nil
}

func (g *stubGateway) FetchPurchases(ctx context.Context, schoolID string) (map[string][]domain.Purchase, error) {
	if g.purchases == nil {
		return map[string][]domain.Purchase{}, nil
	}
	return g.purchases, nil
}

func (g *stubGateway) FetchQuotas(ctx context.Context, schoolID string) (*hyperion.SchoolQuotas, error) {
	if g.quotas == nil {
		return &hyperion.SchoolQuotas{General: &domain.SchoolGeneralQuota{SchoolID: schoolID}}, nil
	}
	return g.quotas, nil
}

func (g *stubGateway) SetUserValidation(ctx context.Context, userID string, validated bool) error {
	return nil
}

func (g *stubGateway) FetchSportResults(ctx context.Context, sportID string) ([]domain.TeamSportResult, error) {
	return g.results[sportID], nil
}

func (g *stubGateway) FetchPompomsResults(ctx context.Context) ([]domain.PompomsResult, error) {
	return g.pompoms, nil
}

func (g *stubGateway) FetchGlobalPodium(ctx context.Context) ([]domain.GlobalPodiumEntry, error) {
	return g.podium, nil
}

func setupSyncerStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	now := time.Now().UTC()
	require.NoError(t, s.CreateSchool(context.Background(), &domain.School{
		ID: "sch_lyon", Name: "Centrale Lyon", Type: domain.SchoolTypeCentrale, CreatedAt: now, UpdatedAt: now,
	}))
	return s
}

// =============================================================================
// Test Configuration
// =============================================================================

func TestDefaultSyncerConfig(t *testing.T) {
	config := DefaultSyncerConfig()

	assert.Equal(t, 5*time.Minute, config.Interval)
	assert.Equal(t, 30*time.Second, config.SchoolTimeout)
}

func TestNewSyncer_DefaultConfig(t *testing.T) {
	syncer := NewSyncer(nil, &stubGateway{}, SyncerConfig{}, nil)

	assert.NotNil(t, syncer)
	assert.Equal(t, 5*time.Minute, syncer.config.Interval)
	assert.Equal(t, 30*time.Second, syncer.config.SchoolTimeout)
}

// =============================================================================
// Test Sync Cycle
// =============================================================================

func TestRunCycle_WritesSchoolData(t *testing.T) {
	s := setupSyncerStore(t)
	now := time.Now().UTC()

	gateway := &stubGateway{
		users: []domain.CompetitionUser{
			{ID: "usr_1", FirstName: "Alice", LastName: "Martin", SchoolID: "sch_lyon", IsAthlete: true, Validated: true, CreatedAt: now, UpdatedAt: now},
		},
		participants: []domain.SchoolParticipant{
			{UserID: "usr_1", SchoolID: "sch_lyon", SportID: "sprt_rugby", TeamID: "team_1", License: true},
		},
		purchases: map[string][]domain.Purchase{
			"usr_1": {{ID: "pur_1", UserID: "usr_1", VariantID: "var_1", Quantity: 1, Validated: true, CreatedAt: now}},
		},
		quotas: &hyperion.SchoolQuotas{
			General: &domain.SchoolGeneralQuota{
				SchoolID: "sch_lyon",
				Limits:   map[domain.QuotaCategory]int{domain.CategoryAthlete: 40},
			},
		},
	}

	syncer := NewSyncer(s, gateway, SyncerConfig{}, slog.Default())
	syncer.RunCycle(context.Background())

	ctx := context.Background()
	user, err := s.GetCompetitionUser(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)

	participants, err := s.ListParticipantsBySchool(ctx, "sch_lyon")
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "sprt_rugby", participants[0].SportID)

	purchases, err := s.ListPurchasesByUser(ctx, "usr_1")
	require.NoError(t, err)
	assert.Len(t, purchases, 1)

	quota, err := s.GetGeneralQuota(ctx, "sch_lyon")
	require.NoError(t, err)
	assert.Equal(t, 40, quota.Limit(domain.CategoryAthlete))
}

func TestRunCycle_SecondRunRefreshes(t *testing.T) {
	s := setupSyncerStore(t)
	now := time.Now().UTC()

	gateway := &stubGateway{
		users: []domain.CompetitionUser{
			{ID: "usr_1", FirstName: "Alice", LastName: "Martin", SchoolID: "sch_lyon", CreatedAt: now, UpdatedAt: now},
		},
	}
	syncer := NewSyncer(s, gateway, SyncerConfig{}, slog.Default())
	syncer.RunCycle(context.Background())

	gateway.users[0].LastName = "Durand"
	gateway.users[0].Validated = true
	syncer.RunCycle(context.Background())

	user, err := s.GetCompetitionUser(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "Durand", user.LastName)
	assert.True(t, user.Validated)
}

func TestRunCycle_GatewayFailureLeavesStoreUntouched(t *testing.T) {
	s := setupSyncerStore(t)
	gateway := &stubGateway{failUsers: true}

	syncer := NewSyncer(s, gateway, SyncerConfig{}, slog.Default())
	syncer.RunCycle(context.Background())

	users, err := s.ListUsersBySchool(context.Background(), "sch_lyon")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestRunCycle_SyncsResultsAndPodium(t *testing.T) {
	s := setupSyncerStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, s.CreateSport(ctx, &domain.Sport{ID: "sprt_rugby", Name: "Rugby", CreatedAt: now, UpdatedAt: now}))

	gateway := &stubGateway{
		results: map[string][]domain.TeamSportResult{
			"sprt_rugby": {
				{SportID: "sprt_rugby", TeamID: "team_a", TeamName: "Lyon A", SchoolID: "sch_lyon", Rank: 1, Points: 30},
			},
		},
		pompoms: []domain.PompomsResult{{SchoolID: "sch_lyon", TotalPoints: 50}},
		podium:  []domain.GlobalPodiumEntry{{SchoolID: "sch_lyon", SchoolName: "Centrale Lyon", Rank: 1, Points: 120}},
	}

	syncer := NewSyncer(s, gateway, SyncerConfig{}, slog.Default())
	syncer.RunCycle(ctx)

	results, err := s.ListResultsBySport(ctx, "sprt_rugby")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "team_a", results[0].TeamID)

	pompoms, err := s.ListPompomsResults(ctx)
	require.NoError(t, err)
	require.Len(t, pompoms, 1)

	podium, err := s.ListGlobalPodium(ctx)
	require.NoError(t, err)
	require.Len(t, podium, 1)
	assert.Equal(t, 1, podium[0].Rank)
}

func TestRunCycle_ResultRefreshDropsRemovedTeams(t *testing.T) {
	s := setupSyncerStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, s.CreateSport(ctx, &domain.Sport{ID: "sprt_rugby", Name: "Rugby", CreatedAt: now, UpdatedAt: now}))

	gateway := &stubGateway{
		results: map[string][]domain.TeamSportResult{
			"sprt_rugby": {
				{SportID: "sprt_rugby", TeamID: "team_a", SchoolID: "sch_a", Rank: 1, Points: 30},
				{SportID: "sprt_rugby", TeamID: "team_b", SchoolID: "sch_b", Rank: 2, Points: 20},
			},
		},
	}
	syncer := NewSyncer(s, gateway, SyncerConfig{}, slog.Default())
	syncer.RunCycle(ctx)

	// Upstream disqualifies team_a and promotes team_b.
	gateway.results["sprt_rugby"] = []domain.TeamSportResult{
		{SportID: "sprt_rugby", TeamID: "team_b", SchoolID: "sch_b", Rank: 1, Points: 20},
	}
	syncer.RunCycle(ctx)

	results, err := s.ListResultsBySport(ctx, "sprt_rugby")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "team_b", results[0].TeamID)
	assert.Equal(t, 1, results[0].Rank)
}

// =============================================================================
// Test Lifecycle
// =============================================================================

func TestSyncer_StartStop(t *testing.T) {
	s := setupSyncerStore(t)
	syncer := NewSyncer(s, &stubGateway{}, SyncerConfig{
		Interval: 50 * time.Millisecond,
	}, slog.Default())

	syncer.Start()
	time.Sleep(20 * time.Millisecond)
	syncer.Stop()

	// Should be able to start again
	syncer.Start()
	syncer.Stop()
}

func TestSyncer_StopWithoutStart(t *testing.T) {
	syncer := NewSyncer(nil, &stubGateway{}, SyncerConfig{}, slog.Default())

	assert.NotPanics(t, func() {
		syncer.Stop()
	})
}
