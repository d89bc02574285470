// Package workers contains background workers for the Challenge dashboard.
package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/shell/hyperion"
	"github.com/challenge-asso/challenge-admin/internal/shell/store"
)

// SyncerConfig configures the Hyperion sync worker.
type SyncerConfig struct {
	// Interval is the time between sync cycles.
	// Default: 5 minutes.
	Interval time.Duration

	// SchoolTimeout is the timeout for syncing a single school.
	// Default: 30 seconds.
	SchoolTimeout time.Duration
}

// DefaultSyncerConfig returns the default configuration.
func DefaultSyncerConfig() SyncerConfig {
	return SyncerConfig{
		Interval:      5 * time.Minute,
		SchoolTimeout: 30 * time.Second,
	}
}

// Syncer periodically pulls registration data from Hyperion into the
// local store: users, sport registrations, purchases, declared quotas
// and result snapshots. The dashboard reads only the local copy, so a
// Hyperion outage degrades freshness, not availability.
type Syncer struct {
	store   store.Store
	gateway hyperion.Client
	config  SyncerConfig
	logger  *slog.Logger

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncer creates a new Hyperion sync worker.
func NewSyncer(s store.Store, gateway hyperion.Client, config SyncerConfig, logger *slog.Logger) *Syncer {
	if config.Interval == 0 {
		config.Interval = 5 * time.Minute
	}
	if config.SchoolTimeout == 0 {
		config.SchoolTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Syncer{
		store:   s,
		gateway: gateway,
		config:  config,
		logger:  logger.With("component", "hyperion_syncer"),
	}
}

// Start begins the sync background goroutine.
func (s *Syncer) Start() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go s.run()

	s.logger.Info("hyperion syncer started", "interval", s.config.Interval)
}

// Stop gracefully stops the syncer. It waits for an in-progress cycle
// to complete.
func (s *Syncer) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("hyperion syncer stopped")
}

func (s *Syncer) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.RunCycle(s.ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.RunCycle(s.ctx)
		}
	}
}

// RunCycle executes one full sync pass. It is exported so the API can
// trigger an on-demand refresh. A failure on one school or one sport is
// logged and skipped; the rest of the cycle proceeds.
func (s *Syncer) RunCycle(ctx context.Context) {
	start := time.Now()

	schools, err := s.store.ListSchools(ctx, store.ListOptions{Limit: 1000})
	if err != nil {
		s.logger.Error("failed to list schools", "error", err)
		return
	}

	for _, school := range schools {
		if ctx.Err() != nil {
			return
		}
		if err := s.syncSchool(ctx, school.ID); err != nil {
			s.logger.Error("school sync failed", "school_id", school.ID, "error", err)
		}
	}

	s.syncResults(ctx)

	s.logger.Info("sync cycle complete",
		"schools", len(schools),
		"duration", time.Since(start),
	)
}

// syncSchool pulls one school's users, registrations, purchases and
// quotas, and writes them in a single transaction so readers never see
// a half-synced school.
func (s *Syncer) syncSchool(ctx context.Context, schoolID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.SchoolTimeout)
	defer cancel()

	users, err := s.gateway.FetchCompetitionUsers(ctx, schoolID)
	if err != nil {
		return err
	}
	participants, err := s.gateway.FetchSchoolParticipants(ctx, schoolID)
	if err != nil {
		return err
	}
	purchases, err := s.gateway.FetchPurchases(ctx, schoolID)
	if err != nil {
		return err
	}
	quotas, err := s.gateway.FetchQuotas(ctx, schoolID)
	if err != nil {
		return err
	}

	return s.store.WithTx(ctx, func(tx store.Store) error {
		for i := range users {
			if err := tx.UpsertCompetitionUser(ctx, &users[i]); err != nil {
				return err
			}
		}
		for i := range participants {
			if err := tx.UpsertSchoolParticipant(ctx, &participants[i]); err != nil {
				return err
			}
		}
		for _, userPurchases := range purchases {
			for i := range userPurchases {
				if err := tx.UpsertPurchase(ctx, &userPurchases[i]); err != nil {
					return err
				}
			}
		}

		if quotas.General != nil {
			if err := tx.UpsertGeneralQuota(ctx, quotas.General); err != nil {
				return err
			}
		}
		for i := range quotas.Sports {
			if err := tx.UpsertSportQuota(ctx, &quotas.Sports[i]); err != nil {
				return err
			}
		}
		for i := range quotas.Products {
			if err := tx.UpsertProductQuota(ctx, &quotas.Products[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// syncResults refreshes sport rankings, pompoms totals and the global
// podium snapshot.
func (s *Syncer) syncResults(ctx context.Context) {
	sports, err := s.store.ListSports(ctx, store.ListOptions{Limit: 1000})
	if err != nil {
		s.logger.Error("failed to list sports", "error", err)
		return
	}

	for _, sport := range sports {
		if sport.ID == domain.PompomsSportID {
			continue
		}
		results, err := s.gateway.FetchSportResults(ctx, sport.ID)
		if err != nil {
			s.logger.Error("result sync failed", "sport_id", sport.ID, "error", err)
			continue
		}
		if err := s.store.ReplaceSportResults(ctx, sport.ID, results); err != nil {
			s.logger.Error("failed to store results", "sport_id", sport.ID, "error", err)
		}
	}

	pompoms, err := s.gateway.FetchPompomsResults(ctx)
	if err != nil {
		s.logger.Error("pompoms sync failed", "error", err)
	} else if err := s.store.ReplacePompomsResults(ctx, pompoms); err != nil {
		s.logger.Error("failed to store pompoms results", "error", err)
	}

	podium, err := s.gateway.FetchGlobalPodium(ctx)
	if err != nil {
		s.logger.Error("global podium sync failed", "error", err)
	} else if err := s.store.ReplaceGlobalPodium(ctx, podium); err != nil {
		s.logger.Error("failed to store global podium", "error", err)
	}
}
