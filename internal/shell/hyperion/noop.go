package hyperion

import (
	"context"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// No-Op Client (for development without an upstream)
// =============================================================================

// NoOpClient is a Hyperion client that returns empty data. It lets the
// dashboard run against a local catalog when no upstream is configured.
type NoOpClient struct{}

// NewNoOpClient creates a no-op Hyperion client.
func NewNoOpClient() *NoOpClient {
	return &NoOpClient{}
}

func (c *NoOpClient) FetchCompetitionUsers(ctx context.Context, schoolID string) ([]domain.CompetitionUser, error) {
	return nil, nil
}

func (c *NoOpClient) FetchSchoolParticipants(ctx context.Context, schoolID string) ([]domain.SchoolParticipant, error) {
	return nil, nil
}

func (c *NoOpClient) FetchPurchases(ctx context.Context, schoolID string) (map[string][]domain.Purchase, error) {
	return map[string][]domain.Purchase{}, nil
}

func (c *NoOpClient) FetchQuotas(ctx context.Context, schoolID string) (*SchoolQuotas, error) {
	return &SchoolQuotas{General: &domain.SchoolGeneralQuota{SchoolID: schoolID}}, nil
}

func (c *NoOpClient) SetUserValidation(ctx context.Context, userID string, validated bool) error {
	return nil
}

func (c *NoOpClient) FetchSportResults(ctx context.Context, sportID string) ([]domain.TeamSportResult, error) {
	return nil, nil
}

func (c *NoOpClient) FetchPompomsResults(ctx context.Context) ([]domain.PompomsResult, error) {
	return nil, nil
}

func (c *NoOpClient) FetchGlobalPodium(ctx context.Context) ([]domain.GlobalPodiumEntry, error) {
	return nil, nil
}
