// Package hyperion provides the client for the Hyperion registration API,
// the upstream system of record for users, purchases, quotas and results.
package hyperion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Client Interface
// =============================================================================

// Client defines the read and validation surface this service needs from
// Hyperion. Calls are not retried automatically; the sync worker retries
// on its next tick instead.
type Client interface {
	// FetchCompetitionUsers returns the users registered for the Challenge.
	// An empty schoolID fetches all schools.
	FetchCompetitionUsers(ctx context.Context, schoolID string) ([]domain.CompetitionUser, error)

	// FetchSchoolParticipants returns sport registrations for one school.
	FetchSchoolParticipants(ctx context.Context, schoolID string) ([]domain.SchoolParticipant, error)

	// FetchPurchases returns purchases for one school, keyed by user ID.
	FetchPurchases(ctx context.Context, schoolID string) (map[string][]domain.Purchase, error)

	// FetchQuotas returns the declared quotas for one school.
	FetchQuotas(ctx context.Context, schoolID string) (*SchoolQuotas, error)

	// SetUserValidation marks a participant validated or not in Hyperion.
	SetUserValidation(ctx context.Context, userID string, validated bool) error

	// FetchSportResults returns the ranking entries for one sport.
	FetchSportResults(ctx context.Context, sportID string) ([]domain.TeamSportResult, error)

	// FetchPompomsResults returns per-school cheerleading totals.
	FetchPompomsResults(ctx context.Context) ([]domain.PompomsResult, error)

	// FetchGlobalPodium returns the cross-sport school standings.
	FetchGlobalPodium(ctx context.Context) ([]domain.GlobalPodiumEntry, error)
}

// SchoolQuotas bundles the three quota kinds Hyperion declares per school.
type SchoolQuotas struct {
	General  *domain.SchoolGeneralQuota  `json:"general"`
	Sports   []domain.SchoolSportQuota   `json:"sports"`
	Products []domain.SchoolProductQuota `json:"products"`
}

// =============================================================================
// Gateway Errors
// =============================================================================

// GatewayError describes a failed Hyperion call. StatusCode is zero when
// the failure happened before a response was received.
type GatewayError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hyperion %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("hyperion %s: %s", e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// =============================================================================
// HTTP Client Implementation
// =============================================================================

// HTTPClient implements Client against the Hyperion REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config holds configuration for the Hyperion client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls so bulk syncs do not
	// hammer the upstream. Zero disables throttling.
	RequestsPerSecond float64
}

// DefaultConfig returns default Hyperion client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://localhost:8000",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 10,
	}
}

// NewHTTPClient creates a Hyperion API client.
func NewHTTPClient(cfg Config) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		limiter: limiter,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchCompetitionUsers returns the users registered for the Challenge.
func (c *HTTPClient) FetchCompetitionUsers(ctx context.Context, schoolID string) ([]domain.CompetitionUser, error) {
	path := "/api/users"
	if schoolID != "" {
		path += "?school_id=" + url.QueryEscape(schoolID)
	}

	var users []domain.CompetitionUser
	if err := c.get(ctx, "fetch_users", path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchSchoolParticipants returns sport registrations for one school.
func (c *HTTPClient) FetchSchoolParticipants(ctx context.Context, schoolID string) ([]domain.SchoolParticipant, error) {
	path := "/api/schools/" + url.PathEscape(schoolID) + "/participants"

	var participants []domain.SchoolParticipant
	if err := c.get(ctx, "fetch_participants", path, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// FetchPurchases returns purchases for one school, keyed by user ID.
func (c *HTTPClient) FetchPurchases(ctx context.Context, schoolID string) (map[string][]domain.Purchase, error) {
	path := "/api/schools/" + url.PathEscape(schoolID) + "/purchases"

	var purchases []domain.Purchase
	if err := c.get(ctx, "fetch_purchases", path, &purchases); err != nil {
		return nil, err
	}

	byUser := make(map[string][]domain.Purchase)
	for _, p := range purchases {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}
	return byUser, nil
}

// FetchQuotas returns the declared quotas for one school. A school with
// no declared quotas gets an empty record, never an error.
func (c *HTTPClient) FetchQuotas(ctx context.Context, schoolID string) (*SchoolQuotas, error) {
	path := "/api/schools/" + url.PathEscape(schoolID) + "/quotas"

	var quotas SchoolQuotas
	if err := c.get(ctx, "fetch_quotas", path, &quotas); err != nil {
		return nil, err
	}
	if quotas.General == nil {
		quotas.General = &domain.SchoolGeneralQuota{SchoolID: schoolID}
	}
	return &quotas, nil
}

// SetUserValidation marks a participant validated or not in Hyperion.
func (c *HTTPClient) SetUserValidation(ctx context.Context, userID string, validated bool) error {
	path := "/api/users/" + url.PathEscape(userID) + "/validation"
	payload := map[string]bool{"validated": validated}

	return c.send(ctx, "set_validation", http.MethodPatch, path, payload)
}

// FetchSportResults returns the ranking entries for one sport.
func (c *HTTPClient) FetchSportResults(ctx context.Context, sportID string) ([]domain.TeamSportResult, error) {
	path := "/api/sports/" + url.PathEscape(sportID) + "/results"

	var results []domain.TeamSportResult
	if err := c.get(ctx, "fetch_results", path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// FetchPompomsResults returns per-school cheerleading totals.
func (c *HTTPClient) FetchPompomsResults(ctx context.Context) ([]domain.PompomsResult, error) {
	var results []domain.PompomsResult
	if err := c.get(ctx, "fetch_pompoms", "/api/pompoms/results", &results); err != nil {
		return nil, err
	}
	return results, nil
}

// FetchGlobalPodium returns the cross-sport school standings.
func (c *HTTPClient) FetchGlobalPodium(ctx context.Context) ([]domain.GlobalPodiumEntry, error) {
	var entries []domain.GlobalPodiumEntry
	if err := c.get(ctx, "fetch_podium", "/api/podium/global", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// =============================================================================
// Request Helpers
// =============================================================================

func (c *HTTPClient) get(ctx context.Context, op, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &GatewayError{Op: op, Message: "rate limiter wait aborted", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &GatewayError{Op: op, Message: "failed to create request", Err: err}
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Op: op, Message: "failed to decode response", Err: err}
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, op, method, path string, payload any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &GatewayError{Op: op, Message: "rate limiter wait aborted", Err: err}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &GatewayError{Op: op, Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &GatewayError{Op: op, Message: "failed to create request", Err: err}
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(op, resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func errorFromResponse(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &GatewayError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    string(body),
	}
}
