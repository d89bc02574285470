package store

import (
	"context"
	"testing"
	"time"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func createTestSchool(t *testing.T, s Store) *domain.School {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	school := &domain.School{
		ID:        domain.NewID("sch"),
		Name:      "Centrale Lyon",
		Type:      domain.SchoolTypeCentrale,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateSchool(context.Background(), school))
	return school
}

func createTestUser(t *testing.T, s Store, schoolID string, athlete, validated bool) *domain.CompetitionUser {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	user := &domain.CompetitionUser{
		ID:        domain.NewID("usr"),
		FirstName: "Alice",
		LastName:  "Martin",
		Email:     "alice@example.fr",
		SchoolID:  schoolID,
		IsAthlete: athlete,
		Validated: validated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.UpsertCompetitionUser(context.Background(), user))
	return user
}

// =============================================================================
// School Tests
// =============================================================================

func TestSchoolCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	school := createTestSchool(t, s)

	got, err := s.GetSchool(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, school.Name, got.Name)
	assert.Equal(t, domain.SchoolTypeCentrale, got.Type)

	got.Name = "Centrale Lyon 2"
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, s.UpdateSchool(ctx, got))

	updated, err := s.GetSchool(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, "Centrale Lyon 2", updated.Name)

	require.NoError(t, s.DeleteSchool(ctx, school.ID))
	_, err = s.GetSchool(ctx, school.ID)
	assert.True(t, IsNotFound(err))
}

func TestGetSchool_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetSchool(context.Background(), "sch_missing")

	assert.True(t, IsNotFound(err))
}

func TestCreateSchool_DuplicateID(t *testing.T) {
	s := setupTestStore(t)
	school := createTestSchool(t, s)

	err := s.CreateSchool(context.Background(), school)

	assert.ErrorIs(t, err, ErrDuplicateID)
}

// =============================================================================
// Edition Tests
// =============================================================================

func TestGetActiveEdition(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.CreateEdition(ctx, &domain.Edition{
		ID: "ed_old", Name: "Challenge 2025", Year: 2025, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.CreateEdition(ctx, &domain.Edition{
		ID: "ed_new", Name: "Challenge 2026", Year: 2026, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	active, err := s.GetActiveEdition(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ed_new", active.ID)
}

func TestGetActiveEdition_NoneActive(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetActiveEdition(context.Background())

	assert.True(t, IsNotFound(err))
}

// =============================================================================
// Competition User Tests
// =============================================================================

func TestUpsertCompetitionUser_RefreshesFields(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	school := createTestSchool(t, s)
	user := createTestUser(t, s, school.ID, true, false)

	user.LastName = "Durand"
	user.Validated = true
	require.NoError(t, s.UpsertCompetitionUser(ctx, user))

	got, err := s.GetCompetitionUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Durand", got.LastName)
	assert.True(t, got.Validated)
}

func TestSetUserValidated(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	school := createTestSchool(t, s)
	user := createTestUser(t, s, school.ID, true, false)

	require.NoError(t, s.SetUserValidated(ctx, user.ID, true))

	got, err := s.GetCompetitionUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Validated)

	err = s.SetUserValidated(ctx, "usr_missing", true)
	assert.True(t, IsNotFound(err))
}

func TestListUsersBySchool_FiltersBySchool(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	lyon := createTestSchool(t, s)
	createTestUser(t, s, lyon.ID, true, true)
	createTestUser(t, s, lyon.ID, false, false)
	createTestUser(t, s, "sch_other", true, true)

	users, err := s.ListUsersBySchool(ctx, lyon.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

// =============================================================================
// Participant and Purchase Tests
// =============================================================================

func TestUpsertSchoolParticipant(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p := &domain.SchoolParticipant{
		UserID:   "usr_1",
		SchoolID: "sch_lyon",
		SportID:  "sprt_rugby",
		TeamID:   "team_1",
		License:  true,
	}
	require.NoError(t, s.UpsertSchoolParticipant(ctx, p))

	p.TeamID = "team_2"
	require.NoError(t, s.UpsertSchoolParticipant(ctx, p))

	list, err := s.ListParticipantsBySchool(ctx, "sch_lyon")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "team_2", list[0].TeamID)
	assert.True(t, list[0].License)
}

func TestListPurchasesBySchool_JoinsUsers(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	school := createTestSchool(t, s)
	user := createTestUser(t, s, school.ID, true, true)
	other := createTestUser(t, s, "sch_other", true, true)

	now := time.Now().UTC()
	require.NoError(t, s.UpsertPurchase(ctx, &domain.Purchase{
		ID: "pur_1", UserID: user.ID, VariantID: "var_1", Quantity: 1, Validated: true, CreatedAt: now,
	}))
	require.NoError(t, s.UpsertPurchase(ctx, &domain.Purchase{
		ID: "pur_2", UserID: other.ID, VariantID: "var_1", Quantity: 1, CreatedAt: now,
	}))

	purchases, err := s.ListPurchasesBySchool(ctx, school.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "pur_1", purchases[0].ID)
}

// =============================================================================
// Product Tests
// =============================================================================

func TestProductWithVariantsRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	product := &domain.Product{
		ID:       "prod_pack",
		Name:     "Pack Participant",
		Required: true,
		Variants: []domain.ProductVariant{
			{ID: "var_std", ProductID: "prod_pack", Name: "Standard", PriceCents: 4500, Enabled: true},
			{ID: "var_vip", ProductID: "prod_pack", Name: "VIP", PriceCents: 9000, Enabled: true},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateProduct(ctx, product))

	got, err := s.GetProduct(ctx, "prod_pack")
	require.NoError(t, err)
	assert.True(t, got.Required)
	assert.Len(t, got.Variants, 2)

	// Deleting the product cascades to its variants.
	require.NoError(t, s.DeleteProduct(ctx, "prod_pack"))
	err = s.DeleteVariant(ctx, "var_std")
	assert.True(t, IsNotFound(err))
}

// =============================================================================
// Quota Tests
// =============================================================================

func TestGeneralQuotaRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	quota := &domain.SchoolGeneralQuota{
		SchoolID: "sch_lyon",
		Limits: map[domain.QuotaCategory]int{
			domain.CategoryAthlete:          40,
			domain.CategoryAthleteCameraman: 2,
		},
	}
	require.NoError(t, s.UpsertGeneralQuota(ctx, quota))

	got, err := s.GetGeneralQuota(ctx, "sch_lyon")
	require.NoError(t, err)
	assert.Equal(t, 40, got.Limit(domain.CategoryAthlete))
	assert.Equal(t, 2, got.Limit(domain.CategoryAthleteCameraman))
	assert.Zero(t, got.Limit(domain.CategoryFanfare))
}

func TestGetGeneralQuota_AbsentRowIsEmptyRecord(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetGeneralQuota(context.Background(), "sch_nothing")

	require.NoError(t, err)
	assert.Equal(t, "sch_nothing", got.SchoolID)
	for _, category := range domain.QuotaCategories {
		assert.Zero(t, got.Limit(category))
	}
}

func TestSportQuotaUpsert(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	q := &domain.SchoolSportQuota{SchoolID: "sch_lyon", SportID: "sprt_rugby", ParticipantQuota: 20, TeamQuota: 2}
	require.NoError(t, s.UpsertSportQuota(ctx, q))

	q.TeamQuota = 3
	require.NoError(t, s.UpsertSportQuota(ctx, q))

	quotas, err := s.ListSportQuotas(ctx, "sch_lyon")
	require.NoError(t, err)
	require.Len(t, quotas, 1)
	assert.Equal(t, 3, quotas[0].TeamQuota)
}

// =============================================================================
// Result Tests
// =============================================================================

func TestSportResultsOrderedByRank(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceSportResults(ctx, "sprt_rugby", []domain.TeamSportResult{
		{TeamID: "team_b", SchoolID: "sch_b", Rank: 2, Points: 20},
		{TeamID: "team_a", SchoolID: "sch_a", Rank: 1, Points: 30},
	}))

	results, err := s.ListResultsBySport(ctx, "sprt_rugby")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 2, results[1].Rank)
}

func TestReplaceSportResults_DropsTeamsMissingFromRefresh(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceSportResults(ctx, "sprt_rugby", []domain.TeamSportResult{
		{TeamID: "team_a", SchoolID: "sch_a", Rank: 1, Points: 30},
		{TeamID: "team_b", SchoolID: "sch_b", Rank: 2, Points: 20},
	}))
	require.NoError(t, s.ReplaceSportResults(ctx, "sprt_rugby", []domain.TeamSportResult{
		{TeamID: "team_b", SchoolID: "sch_b", Rank: 1, Points: 20},
	}))

	results, err := s.ListResultsBySport(ctx, "sprt_rugby")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "team_b", results[0].TeamID)
	assert.Equal(t, 1, results[0].Rank)
}

func TestReplaceSportResults_LeavesOtherSportsAlone(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceSportResults(ctx, "sprt_rugby", []domain.TeamSportResult{
		{TeamID: "team_a", SchoolID: "sch_a", Rank: 1, Points: 30},
	}))
	require.NoError(t, s.ReplaceSportResults(ctx, "sprt_volley", []domain.TeamSportResult{
		{TeamID: "team_v", SchoolID: "sch_v", Rank: 1, Points: 25},
	}))

	rugby, err := s.ListResultsBySport(ctx, "sprt_rugby")
	require.NoError(t, err)
	assert.Len(t, rugby, 1)
}

func TestReplacePompomsResults_SwapsSnapshot(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplacePompomsResults(ctx, []domain.PompomsResult{
		{SchoolID: "sch_a", TotalPoints: 30},
		{SchoolID: "sch_b", TotalPoints: 50},
	}))
	require.NoError(t, s.ReplacePompomsResults(ctx, []domain.PompomsResult{
		{SchoolID: "sch_c", TotalPoints: 10},
	}))

	totals, err := s.ListPompomsResults(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "sch_c", totals[0].SchoolID)
}

// =============================================================================
// Transaction Tests
// =============================================================================

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx Store) error {
		if err := tx.CreateSport(ctx, &domain.Sport{ID: "sprt_rugby", Name: "Rugby"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	_, err = s.GetSport(ctx, "sprt_rugby")
	assert.True(t, IsNotFound(err))
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx Store) error {
		return tx.CreateSport(ctx, &domain.Sport{ID: "sprt_volley", Name: "Volley"})
	})
	require.NoError(t, err)

	got, err := s.GetSport(ctx, "sprt_volley")
	require.NoError(t, err)
	assert.Equal(t, "Volley", got.Name)
}

// =============================================================================
// Admin Tests
// =============================================================================

func TestAdminRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	admin := &domain.Admin{
		ID:           domain.NewID("adm"),
		Email:        "admin@challenge.fr",
		Name:         "Orga",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateAdmin(ctx, admin))

	got, err := s.GetAdminByEmail(ctx, "admin@challenge.fr")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, admin.PasswordHash, got.PasswordHash)

	_, err = s.GetAdminByEmail(ctx, "nobody@challenge.fr")
	assert.True(t, IsNotFound(err))
}
