package hyperion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(Config{BaseURL: srv.URL, Token: "test-token"})
}

func TestFetchCompetitionUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		assert.Equal(t, "sch_lyon", r.URL.Query().Get("school_id"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]domain.CompetitionUser{
			{ID: "usr_1", FirstName: "Alice", SchoolID: "sch_lyon", IsAthlete: true},
		})
	})

	users, err := client.FetchCompetitionUsers(context.Background(), "sch_lyon")

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "usr_1", users[0].ID)
	assert.True(t, users[0].IsAthlete)
}

func TestFetchCompetitionUsers_AllSchools(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("school_id"))
		json.NewEncoder(w).Encode([]domain.CompetitionUser{})
	})

	users, err := client.FetchCompetitionUsers(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFetchPurchases_GroupsByUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/schools/sch_lyon/purchases", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Purchase{
			{ID: "pur_1", UserID: "usr_1", VariantID: "var_a", Quantity: 1},
			{ID: "pur_2", UserID: "usr_1", VariantID: "var_b", Quantity: 2},
			{ID: "pur_3", UserID: "usr_2", VariantID: "var_a", Quantity: 1},
		})
	})

	byUser, err := client.FetchPurchases(context.Background(), "sch_lyon")

	require.NoError(t, err)
	assert.Len(t, byUser["usr_1"], 2)
	assert.Len(t, byUser["usr_2"], 1)
}

func TestFetchQuotas_MissingGeneralGetsEmptyRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SchoolQuotas{
			Sports: []domain.SchoolSportQuota{{SchoolID: "sch_lyon", SportID: "sprt_rugby", TeamQuota: 2}},
		})
	})

	quotas, err := client.FetchQuotas(context.Background(), "sch_lyon")

	require.NoError(t, err)
	require.NotNil(t, quotas.General)
	assert.Equal(t, "sch_lyon", quotas.General.SchoolID)
	assert.Len(t, quotas.Sports, 1)
}

func TestSetUserValidation(t *testing.T) {
	var gotBody map[string]bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/users/usr_1/validation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SetUserValidation(context.Background(), "usr_1", true)

	require.NoError(t, err)
	assert.True(t, gotBody["validated"])
}

func TestUpstreamErrorProducesGatewayError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"school not found"}`, http.StatusNotFound)
	})

	_, err := client.FetchSchoolParticipants(context.Background(), "sch_missing")

	require.Error(t, err)
	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusNotFound, gwErr.StatusCode)
	assert.Equal(t, "fetch_participants", gwErr.Op)
}

func TestContextCancellationAborts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.PompomsResult{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchPompomsResults(ctx)

	require.Error(t, err)
}
