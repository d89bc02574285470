package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Competition User Operations
// =============================================================================

type competitionUserRow struct {
	ID          string `db:"id"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Email       string `db:"email"`
	SchoolID    string `db:"school_id"`
	IsAthlete   bool   `db:"is_athlete"`
	IsPompom    bool   `db:"is_pompom"`
	IsFanfare   bool   `db:"is_fanfare"`
	IsCameraman bool   `db:"is_cameraman"`
	IsVolunteer bool   `db:"is_volunteer"`
	Validated   bool   `db:"validated"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

func rowToCompetitionUser(row *competitionUserRow) *domain.CompetitionUser {
	return &domain.CompetitionUser{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Email:       row.Email,
		SchoolID:    row.SchoolID,
		IsAthlete:   row.IsAthlete,
		IsPompom:    row.IsPompom,
		IsFanfare:   row.IsFanfare,
		IsCameraman: row.IsCameraman,
		IsVolunteer: row.IsVolunteer,
		Validated:   row.Validated,
		CreatedAt:   parseTime(row.CreatedAt),
		UpdatedAt:   parseTime(row.UpdatedAt),
	}
}

// UpsertCompetitionUser inserts or refreshes a synced registration record.
// The local validated flag survives refreshes only through the incoming
// record: sync passes the upstream value, admin actions go through
// SetUserValidated.
func (c sqliteConn) UpsertCompetitionUser(ctx context.Context, user *domain.CompetitionUser) error {
	query := `
		INSERT INTO competition_users (id, first_name, last_name, email, school_id,
			is_athlete, is_pompom, is_fanfare, is_cameraman, is_volunteer, validated,
			created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :email, :school_id,
			:is_athlete, :is_pompom, :is_fanfare, :is_cameraman, :is_volunteer, :validated,
			:created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			school_id = excluded.school_id,
			is_athlete = excluded.is_athlete,
			is_pompom = excluded.is_pompom,
			is_fanfare = excluded.is_fanfare,
			is_cameraman = excluded.is_cameraman,
			is_volunteer = excluded.is_volunteer,
			validated = excluded.validated,
			updated_at = excluded.updated_at`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":           user.ID,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"email":        user.Email,
		"school_id":    user.SchoolID,
		"is_athlete":   user.IsAthlete,
		"is_pompom":    user.IsPompom,
		"is_fanfare":   user.IsFanfare,
		"is_cameraman": user.IsCameraman,
		"is_volunteer": user.IsVolunteer,
		"validated":    user.Validated,
		"created_at":   formatTime(user.CreatedAt),
		"updated_at":   formatTime(user.UpdatedAt),
	})
	if err != nil {
		return NewStoreError("UpsertCompetitionUser", "user", user.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetCompetitionUser(ctx context.Context, id string) (*domain.CompetitionUser, error) {
	var row competitionUserRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM competition_users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetCompetitionUser", "user", id, "user not found", ErrNotFound)
		}
		return nil, NewStoreError("GetCompetitionUser", "user", id, err.Error(), err)
	}
	return rowToCompetitionUser(&row), nil
}

func (c sqliteConn) ListUsersBySchool(ctx context.Context, schoolID string) ([]domain.CompetitionUser, error) {
	var rows []competitionUserRow
	err := c.exec.SelectContext(ctx, &rows,
		`SELECT * FROM competition_users WHERE school_id = ? ORDER BY last_name ASC, first_name ASC`, schoolID)
	if err != nil {
		return nil, NewStoreError("ListUsersBySchool", "user", schoolID, err.Error(), err)
	}

	users := make([]domain.CompetitionUser, 0, len(rows))
	for i := range rows {
		users = append(users, *rowToCompetitionUser(&rows[i]))
	}
	return users, nil
}

func (c sqliteConn) SetUserValidated(ctx context.Context, id string, validated bool) error {
	result, err := c.exec.ExecContext(ctx,
		`UPDATE competition_users SET validated = ?, updated_at = ? WHERE id = ?`,
		validated, formatTime(nowUTC()), id)
	if err != nil {
		return NewStoreError("SetUserValidated", "user", id, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("SetUserValidated", "user", id, "user not found", ErrNotFound)
	}
	return nil
}

// =============================================================================
// School Participant Operations
// =============================================================================

type schoolParticipantRow struct {
	UserID       string `db:"user_id"`
	SchoolID     string `db:"school_id"`
	SportID      string `db:"sport_id"`
	TeamID       string `db:"team_id"`
	License      bool   `db:"license"`
	IsSubstitute bool   `db:"is_substitute"`
}

func (c sqliteConn) UpsertSchoolParticipant(ctx context.Context, participant *domain.SchoolParticipant) error {
	query := `
		INSERT INTO school_participants (user_id, school_id, sport_id, team_id, license, is_substitute)
		VALUES (:user_id, :school_id, :sport_id, :team_id, :license, :is_substitute)
		ON CONFLICT(user_id) DO UPDATE SET
			school_id = excluded.school_id,
			sport_id = excluded.sport_id,
			team_id = excluded.team_id,
			license = excluded.license,
			is_substitute = excluded.is_substitute`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"user_id":       participant.UserID,
		"school_id":     participant.SchoolID,
		"sport_id":      participant.SportID,
		"team_id":       participant.TeamID,
		"license":       participant.License,
		"is_substitute": participant.IsSubstitute,
	})
	if err != nil {
		return NewStoreError("UpsertSchoolParticipant", "participant", participant.UserID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) ListParticipantsBySchool(ctx context.Context, schoolID string) ([]domain.SchoolParticipant, error) {
	var rows []schoolParticipantRow
	err := c.exec.SelectContext(ctx, &rows,
		`SELECT * FROM school_participants WHERE school_id = ? ORDER BY user_id ASC`, schoolID)
	if err != nil {
		return nil, NewStoreError("ListParticipantsBySchool", "participant", schoolID, err.Error(), err)
	}

	participants := make([]domain.SchoolParticipant, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, domain.SchoolParticipant{
			UserID:       row.UserID,
			SchoolID:     row.SchoolID,
			SportID:      row.SportID,
			TeamID:       row.TeamID,
			License:      row.License,
			IsSubstitute: row.IsSubstitute,
		})
	}
	return participants, nil
}
