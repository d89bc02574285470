package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/challenge-asso/challenge-admin/internal/shell/store"
)

// =============================================================================
// Config Tests
// =============================================================================

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "./data/challenge.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Hyperion.Enabled)
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CHALLENGE_SERVER_PORT", "9999")
	t.Setenv("CHALLENGE_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("CHALLENGE_HYPERION_BASE_URL", "https://hyperion.example.org")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "https://hyperion.example.org", cfg.Hyperion.BaseURL)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 3000
log:
  level: debug
  format: text
sync:
  enabled: true
  interval: 1m
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8080}

	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
}

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := SetupLogger(&Config{Log: LogConfig{Level: tt.level}})

			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
		})
	}
}

// =============================================================================
// Seed Tests
// =============================================================================

func TestRunSeed(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
admins:
  - email: admin@challenge.fr
    name: Orga
    password: s3cret-pass
editions:
  - name: Challenge 2026
    year: 2026
    active: true
schools:
  - name: Centrale Lyon
    type: centrale
sports:
  - name: Rugby
    team_capacity: 15
products:
  - name: Pack Participant
    required: true
    variants:
      - name: Standard
        price_cents: 4500
        enabled: true
`), 0o644))

	cfg := &Config{Database: DatabaseConfig{DSN: filepath.Join(t.TempDir(), "seed.db")}}
	require.NoError(t, RunSeed(cfg, seedPath, slog.Default()))

	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	admin, err := s.GetAdminByEmail(ctx, "admin@challenge.fr")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret-pass")))

	edition, err := s.GetActiveEdition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2026, edition.Year)

	schools, err := s.ListSchools(ctx, store.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, schools, 1)

	products, err := s.ListProducts(ctx, store.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Required)
	assert.Len(t, products[0].Variants, 1)
}

func TestRunSeed_MissingFile(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{DSN: ":memory:"}}

	err := RunSeed(cfg, "/nonexistent/seed.yaml", slog.Default())

	assert.Error(t, err)
}
