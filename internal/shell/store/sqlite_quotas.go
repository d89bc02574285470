package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// General Quota Operations
// =============================================================================

type generalQuotaRow struct {
	SchoolID                 string `db:"school_id"`
	AthleteQuota             int    `db:"athlete_quota"`
	CameramanQuota           int    `db:"cameraman_quota"`
	PompomQuota              int    `db:"pompom_quota"`
	FanfareQuota             int    `db:"fanfare_quota"`
	AthleteCameramanQuota    int    `db:"athlete_cameraman_quota"`
	AthletePompomQuota       int    `db:"athlete_pompom_quota"`
	AthleteFanfareQuota      int    `db:"athlete_fanfare_quota"`
	NonAthleteCameramanQuota int    `db:"non_athlete_cameraman_quota"`
	NonAthletePompomQuota    int    `db:"non_athlete_pompom_quota"`
	NonAthleteFanfareQuota   int    `db:"non_athlete_fanfare_quota"`
}

func rowToGeneralQuota(row *generalQuotaRow) *domain.SchoolGeneralQuota {
	return &domain.SchoolGeneralQuota{
		SchoolID: row.SchoolID,
		Limits: map[domain.QuotaCategory]int{
			domain.CategoryAthlete:             row.AthleteQuota,
			domain.CategoryCameraman:           row.CameramanQuota,
			domain.CategoryPompom:              row.PompomQuota,
			domain.CategoryFanfare:             row.FanfareQuota,
			domain.CategoryAthleteCameraman:    row.AthleteCameramanQuota,
			domain.CategoryAthletePompom:       row.AthletePompomQuota,
			domain.CategoryAthleteFanfare:      row.AthleteFanfareQuota,
			domain.CategoryNonAthleteCameraman: row.NonAthleteCameramanQuota,
			domain.CategoryNonAthletePompom:    row.NonAthletePompomQuota,
			domain.CategoryNonAthleteFanfare:   row.NonAthleteFanfareQuota,
		},
	}
}

func (c sqliteConn) UpsertGeneralQuota(ctx context.Context, quota *domain.SchoolGeneralQuota) error {
	query := `
		INSERT INTO school_general_quotas (school_id,
			athlete_quota, cameraman_quota, pompom_quota, fanfare_quota,
			athlete_cameraman_quota, athlete_pompom_quota, athlete_fanfare_quota,
			non_athlete_cameraman_quota, non_athlete_pompom_quota, non_athlete_fanfare_quota)
		VALUES (:school_id,
			:athlete_quota, :cameraman_quota, :pompom_quota, :fanfare_quota,
			:athlete_cameraman_quota, :athlete_pompom_quota, :athlete_fanfare_quota,
			:non_athlete_cameraman_quota, :non_athlete_pompom_quota, :non_athlete_fanfare_quota)
		ON CONFLICT(school_id) DO UPDATE SET
			athlete_quota = excluded.athlete_quota,
			cameraman_quota = excluded.cameraman_quota,
			pompom_quota = excluded.pompom_quota,
			fanfare_quota = excluded.fanfare_quota,
			athlete_cameraman_quota = excluded.athlete_cameraman_quota,
			athlete_pompom_quota = excluded.athlete_pompom_quota,
			athlete_fanfare_quota = excluded.athlete_fanfare_quota,
			non_athlete_cameraman_quota = excluded.non_athlete_cameraman_quota,
			non_athlete_pompom_quota = excluded.non_athlete_pompom_quota,
			non_athlete_fanfare_quota = excluded.non_athlete_fanfare_quota`

	row := map[string]any{"school_id": quota.SchoolID}
	for _, category := range domain.QuotaCategories {
		row[string(category)] = quota.Limit(category)
	}

	_, err := c.exec.NamedExecContext(ctx, query, row)
	if err != nil {
		return NewStoreError("UpsertGeneralQuota", "general_quota", quota.SchoolID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

// GetGeneralQuota returns the school's declared general quota. A school
// with no quota row gets an empty record back, not an error: absent
// limits mean unlimited.
func (c sqliteConn) GetGeneralQuota(ctx context.Context, schoolID string) (*domain.SchoolGeneralQuota, error) {
	var row generalQuotaRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM school_general_quotas WHERE school_id = ?`, schoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.SchoolGeneralQuota{SchoolID: schoolID}, nil
		}
		return nil, NewStoreError("GetGeneralQuota", "general_quota", schoolID, err.Error(), err)
	}
	return rowToGeneralQuota(&row), nil
}

// =============================================================================
// Sport Quota Operations
// =============================================================================

type sportQuotaRow struct {
	SchoolID         string `db:"school_id"`
	SportID          string `db:"sport_id"`
	ParticipantQuota int    `db:"participant_quota"`
	TeamQuota        int    `db:"team_quota"`
}

func (c sqliteConn) UpsertSportQuota(ctx context.Context, quota *domain.SchoolSportQuota) error {
	query := `
		INSERT INTO school_sport_quotas (school_id, sport_id, participant_quota, team_quota)
		VALUES (:school_id, :sport_id, :participant_quota, :team_quota)
		ON CONFLICT(school_id, sport_id) DO UPDATE SET
			participant_quota = excluded.participant_quota,
			team_quota = excluded.team_quota`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"school_id":         quota.SchoolID,
		"sport_id":          quota.SportID,
		"participant_quota": quota.ParticipantQuota,
		"team_quota":        quota.TeamQuota,
	})
	if err != nil {
		return NewStoreError("UpsertSportQuota", "sport_quota", quota.SchoolID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) ListSportQuotas(ctx context.Context, schoolID string) ([]domain.SchoolSportQuota, error) {
	var rows []sportQuotaRow
	err := c.exec.SelectContext(ctx, &rows,
		`SELECT * FROM school_sport_quotas WHERE school_id = ? ORDER BY sport_id ASC`, schoolID)
	if err != nil {
		return nil, NewStoreError("ListSportQuotas", "sport_quota", schoolID, err.Error(), err)
	}

	quotas := make([]domain.SchoolSportQuota, 0, len(rows))
	for _, row := range rows {
		quotas = append(quotas, domain.SchoolSportQuota{
			SchoolID:         row.SchoolID,
			SportID:          row.SportID,
			ParticipantQuota: row.ParticipantQuota,
			TeamQuota:        row.TeamQuota,
		})
	}
	return quotas, nil
}

// =============================================================================
// Product Quota Operations
// =============================================================================

type productQuotaRow struct {
	SchoolID  string `db:"school_id"`
	ProductID string `db:"product_id"`
	Quota     int    `db:"quota"`
}

func (c sqliteConn) UpsertProductQuota(ctx context.Context, quota *domain.SchoolProductQuota) error {
	query := `
		INSERT INTO school_product_quotas (school_id, product_id, quota)
		VALUES (:school_id, :product_id, :quota)
		ON CONFLICT(school_id, product_id) DO UPDATE SET
			quota = excluded.quota`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"school_id":  quota.SchoolID,
		"product_id": quota.ProductID,
		"quota":      quota.Quota,
	})
	if err != nil {
		return NewStoreError("UpsertProductQuota", "product_quota", quota.SchoolID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) ListProductQuotas(ctx context.Context, schoolID string) ([]domain.SchoolProductQuota, error) {
	var rows []productQuotaRow
	err := c.exec.SelectContext(ctx, &rows,
		`SELECT * FROM school_product_quotas WHERE school_id = ? ORDER BY product_id ASC`, schoolID)
	if err != nil {
		return nil, NewStoreError("ListProductQuotas", "product_quota", schoolID, err.Error(), err)
	}

	quotas := make([]domain.SchoolProductQuota, 0, len(rows))
	for _, row := range rows {
		quotas = append(quotas, domain.SchoolProductQuota{
			SchoolID:  row.SchoolID,
			ProductID: row.ProductID,
			Quota:     row.Quota,
		})
	}
	return quotas, nil
}
