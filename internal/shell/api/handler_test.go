package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	authmw "github.com/challenge-asso/challenge-admin/internal/shell/api/middleware"
	"github.com/challenge-asso/challenge-admin/internal/shell/hyperion"
	"github.com/challenge-asso/challenge-admin/internal/shell/store"
)

// =============================================================================
// Test Setup
// =============================================================================

// recordingGateway wraps the no-op client and records validation calls.
type recordingGateway struct {
	*hyperion.NoOpClient
	validations map[string]bool
	fail        bool
}

func (g *recordingGateway) SetUserValidation(ctx context.Context, userID string, validated bool) error {
	if g.fail {
		return &hyperion.GatewayError{Op: "set_validation", StatusCode: http.StatusBadGateway, Message: "upstream down"}
	}
	if g.validations == nil {
		g.validations = make(map[string]bool)
	}
	g.validations[userID] = validated
	return nil
}

type testEnv struct {
	handler *Handler
	store   store.Store
	gateway *recordingGateway
	server  *httptest.Server
	token   string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.CreateAdmin(context.Background(), &domain.Admin{
		ID:           "adm_test",
		Email:        "admin@challenge.fr",
		Name:         "Orga",
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}))

	issuer := authmw.NewTokenIssuer("test-secret", time.Hour)
	gateway := &recordingGateway{NoOpClient: hyperion.NewNoOpClient()}
	handler := NewHandler(s, gateway, issuer, nil, nil)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	token, err := issuer.Issue("adm_test", "admin@challenge.fr")
	require.NoError(t, err)

	return &testEnv{
		handler: handler,
		store:   s,
		gateway: gateway,
		server:  server,
		token:   token,
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// =============================================================================
// Health and Auth Tests
// =============================================================================

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_Success(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Post(env.server.URL+"/api/v1/auth/login", "application/json",
		bytes.NewReader([]byte(`{"email":"admin@challenge.fr","password":"s3cret-pass"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody[LoginResponse](t, resp)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "adm_test", login.Admin.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Post(env.server.URL+"/api/v1/auth/login", "application/json",
		bytes.NewReader([]byte(`{"email":"admin@challenge.fr","password":"wrong"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UnknownEmailSameResponse(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Post(env.server.URL+"/api/v1/auth/login", "application/json",
		bytes.NewReader([]byte(`{"email":"nobody@challenge.fr","password":"whatever"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "invalid_credentials", body.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/v1/schools/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// =============================================================================
// Catalog Tests
// =============================================================================

func TestSchoolLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/schools/", CreateSchoolRequest{
		Name: "Centrale Lyon",
		Type: "centrale",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[domain.School](t, resp)
	assert.NotEmpty(t, created.ID)

	resp = env.request(t, http.MethodGet, "/api/v1/schools/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/schools/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[ListResponse[domain.School]](t, resp)
	assert.Equal(t, 1, list.Total)

	resp = env.request(t, http.MethodDelete, "/api/v1/schools/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateSchool_InvalidType(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/schools/", CreateSchoolRequest{
		Name: "Somewhere",
		Type: "not-a-type",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateMatch_SameTeamRejected(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/matches/", CreateMatchRequest{
		SportID: "sprt_rugby",
		Team1ID: "team_a",
		Team2ID: "team_a",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetMatchScore_DerivesWinner(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/matches/", CreateMatchRequest{
		SportID: "sprt_rugby",
		Team1ID: "team_a",
		Team2ID: "team_b",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	match := decodeBody[domain.Match](t, resp)

	resp = env.request(t, http.MethodPut, "/api/v1/matches/"+match.ID+"/score", SetMatchScoreRequest{
		Score1: 10, Score2: 24,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[domain.Match](t, resp)
	assert.Equal(t, "team_b", updated.WinnerID)
}

// =============================================================================
// Roster and Validation Tests
// =============================================================================

func seedRosterSchool(t *testing.T, env *testEnv) string {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, env.store.CreateSchool(ctx, &domain.School{
		ID: "sch_lyon", Name: "Centrale Lyon", Type: domain.SchoolTypeCentrale, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, env.store.UpsertCompetitionUser(ctx, &domain.CompetitionUser{
		ID: "usr_alice", FirstName: "Alice", LastName: "Martin", SchoolID: "sch_lyon",
		IsAthlete: true, Validated: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, env.store.UpsertCompetitionUser(ctx, &domain.CompetitionUser{
		ID: "usr_bruno", FirstName: "Bruno", LastName: "Petit", SchoolID: "sch_lyon",
		IsFanfare: true, CreatedAt: now, UpdatedAt: now,
	}))
	return "sch_lyon"
}

func TestGetRoster_ReturnsAllRows(t *testing.T) {
	env := setupTestEnv(t)
	schoolID := seedRosterSchool(t, env)

	resp := env.request(t, http.MethodGet, "/api/v1/schools/"+schoolID+"/roster", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	roster := decodeBody[RosterResponse](t, resp)
	assert.Equal(t, 2, roster.Total)
}

func TestGetRoster_FuzzyFilter(t *testing.T) {
	env := setupTestEnv(t)
	schoolID := seedRosterSchool(t, env)

	resp := env.request(t, http.MethodGet, "/api/v1/schools/"+schoolID+"/roster?q=alice", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	roster := decodeBody[RosterResponse](t, resp)
	require.Equal(t, 1, roster.Total)
	assert.Equal(t, "usr_alice", roster.Rows[0].UserID)
}

func TestGetRoster_UnknownSchool(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/schools/sch_missing/roster", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidateUser_PropagatesUpstreamFirst(t *testing.T) {
	env := setupTestEnv(t)
	seedRosterSchool(t, env)

	resp := env.request(t, http.MethodPost, "/api/v1/users/usr_bruno/validate", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.gateway.validations["usr_bruno"])

	user, err := env.store.GetCompetitionUser(context.Background(), "usr_bruno")
	require.NoError(t, err)
	assert.True(t, user.Validated)
}

func TestValidateUser_UpstreamFailureLeavesLocalUntouched(t *testing.T) {
	env := setupTestEnv(t)
	seedRosterSchool(t, env)
	env.gateway.fail = true

	resp := env.request(t, http.MethodPost, "/api/v1/users/usr_bruno/validate", nil)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	user, err := env.store.GetCompetitionUser(context.Background(), "usr_bruno")
	require.NoError(t, err)
	assert.False(t, user.Validated)
}

func TestInvalidateUser(t *testing.T) {
	env := setupTestEnv(t)
	seedRosterSchool(t, env)

	resp := env.request(t, http.MethodPost, "/api/v1/users/usr_alice/invalidate", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, err := env.store.GetCompetitionUser(context.Background(), "usr_alice")
	require.NoError(t, err)
	assert.False(t, user.Validated)
}

// =============================================================================
// Quota Tests
// =============================================================================

func TestQuotaOverview(t *testing.T) {
	env := setupTestEnv(t)
	schoolID := seedRosterSchool(t, env)
	ctx := context.Background()

	require.NoError(t, env.store.UpsertGeneralQuota(ctx, &domain.SchoolGeneralQuota{
		SchoolID: schoolID,
		Limits:   map[domain.QuotaCategory]int{domain.CategoryAthlete: 1},
	}))

	resp := env.request(t, http.MethodGet, "/api/v1/schools/"+schoolID+"/quotas", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := decodeBody[QuotaOverviewResponse](t, resp)
	assert.Equal(t, schoolID, overview.SchoolID)
	require.Len(t, overview.General, len(domain.QuotaCategories))

	for _, status := range overview.General {
		if status.Category == domain.CategoryAthlete {
			// One validated athlete against a limit of one.
			assert.Equal(t, 1, status.Used)
			assert.False(t, status.Exceeded)
		}
	}
}

// =============================================================================
// Podium Tests
// =============================================================================

func TestSportPodium(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, env.store.CreateSport(ctx, &domain.Sport{ID: "sprt_rugby", Name: "Rugby", CreatedAt: now, UpdatedAt: now}))
	results := make([]domain.TeamSportResult, 0, 4)
	for i, team := range []string{"team_a", "team_b", "team_c", "team_d"} {
		results = append(results, domain.TeamSportResult{
			TeamID: team, SchoolID: "sch_" + team, Rank: i + 1, Points: 40 - i*10,
		})
	}
	require.NoError(t, env.store.ReplaceSportResults(ctx, "sprt_rugby", results))

	resp := env.request(t, http.MethodGet, "/api/v1/sports/sprt_rugby/podium", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[PodiumResponse](t, resp)
	assert.Len(t, body.TopThree, 3)
	assert.Len(t, body.Overflow, 1)
	assert.Equal(t, "team_a", body.TopThree[0].TeamID)
}

func TestPompomsPodium_SynthesizedFromTotals(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.ReplacePompomsResults(ctx, []domain.PompomsResult{
		{SchoolID: "sch_a", TotalPoints: 30},
		{SchoolID: "sch_b", TotalPoints: 50},
	}))

	resp := env.request(t, http.MethodGet, "/api/v1/sports/"+domain.PompomsSportID+"/podium", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[PodiumResponse](t, resp)
	require.Len(t, body.TopThree, 2)
	assert.Equal(t, "sch_b", body.TopThree[0].SchoolID)
	assert.Equal(t, 1, body.TopThree[0].Rank)
	// Pompoms has no teams; the school stands in for one.
	assert.Equal(t, "sch_b", body.TopThree[0].TeamID)

	// The direct route returns the same podium.
	direct := env.request(t, http.MethodGet, "/api/v1/podium/pompoms", nil)
	require.Equal(t, http.StatusOK, direct.StatusCode)
	directBody := decodeBody[PodiumResponse](t, direct)
	assert.Equal(t, body.TopThree, directBody.TopThree)
}

func TestGlobalPodium(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.ReplaceGlobalPodium(ctx, []domain.GlobalPodiumEntry{
		{SchoolID: "sch_b", SchoolName: "B", Rank: 2, Points: 80},
		{SchoolID: "sch_a", SchoolName: "A", Rank: 1, Points: 120},
	}))

	resp := env.request(t, http.MethodGet, "/api/v1/podium/global", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[GlobalPodiumResponse](t, resp)
	require.Len(t, body.TopThree, 2)
	assert.Equal(t, "sch_a", body.TopThree[0].SchoolID)
}

// =============================================================================
// Sync Tests
// =============================================================================

func TestTriggerSync_NoWorkerConfigured(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/sync", nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// stubSyncTrigger counts manual sync requests.
type stubSyncTrigger struct {
	cycles int
}

func (s *stubSyncTrigger) RunCycle(ctx context.Context) { s.cycles++ }

func TestTriggerSync_RunsCycleBeforeResponding(t *testing.T) {
	env := setupTestEnv(t)
	trigger := &stubSyncTrigger{}
	env.handler.syncer = trigger

	resp := env.request(t, http.MethodPost, "/api/v1/sync", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, trigger.cycles)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "sync_complete", body["status"])
}
