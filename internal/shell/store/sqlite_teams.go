package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Team Operations
// =============================================================================

type teamRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	SchoolID  string `db:"school_id"`
	SportID   string `db:"sport_id"`
	CaptainID string `db:"captain_id"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func rowToTeam(row *teamRow) *domain.Team {
	return &domain.Team{
		ID:        row.ID,
		Name:      row.Name,
		SchoolID:  row.SchoolID,
		SportID:   row.SportID,
		CaptainID: row.CaptainID,
		CreatedAt: parseTime(row.CreatedAt),
		UpdatedAt: parseTime(row.UpdatedAt),
	}
}

func teamToRow(t *domain.Team) map[string]any {
	return map[string]any{
		"id":         t.ID,
		"name":       t.Name,
		"school_id":  t.SchoolID,
		"sport_id":   t.SportID,
		"captain_id": t.CaptainID,
		"created_at": formatTime(t.CreatedAt),
		"updated_at": formatTime(t.UpdatedAt),
	}
}

func (c sqliteConn) CreateTeam(ctx context.Context, team *domain.Team) error {
	query := `
		INSERT INTO teams (id, name, school_id, sport_id, captain_id, created_at, updated_at)
		VALUES (:id, :name, :school_id, :sport_id, :captain_id, :created_at, :updated_at)`

	_, err := c.exec.NamedExecContext(ctx, query, teamToRow(team))
	if err != nil {
		return NewStoreError("CreateTeam", "team", team.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	var row teamRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM teams WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetTeam", "team", id, "team not found", ErrNotFound)
		}
		return nil, NewStoreError("GetTeam", "team", id, err.Error(), err)
	}
	return rowToTeam(&row), nil
}

func (c sqliteConn) UpdateTeam(ctx context.Context, team *domain.Team) error {
	query := `
		UPDATE teams SET
			name = :name,
			school_id = :school_id,
			sport_id = :sport_id,
			captain_id = :captain_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := c.exec.NamedExecContext(ctx, query, teamToRow(team))
	if err != nil {
		return NewStoreError("UpdateTeam", "team", team.ID, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("UpdateTeam", "team", team.ID, "team not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) DeleteTeam(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteTeam", "team", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteTeam", "team", id, "team not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListTeamsBySchool(ctx context.Context, schoolID string) ([]domain.Team, error) {
	var rows []teamRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM teams WHERE school_id = ? ORDER BY name ASC`, schoolID)
	if err != nil {
		return nil, NewStoreError("ListTeamsBySchool", "team", schoolID, err.Error(), err)
	}

	teams := make([]domain.Team, 0, len(rows))
	for i := range rows {
		teams = append(teams, *rowToTeam(&rows[i]))
	}
	return teams, nil
}

func (c sqliteConn) ListTeamsBySport(ctx context.Context, sportID string) ([]domain.Team, error) {
	var rows []teamRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM teams WHERE sport_id = ? ORDER BY name ASC`, sportID)
	if err != nil {
		return nil, NewStoreError("ListTeamsBySport", "team", sportID, err.Error(), err)
	}

	teams := make([]domain.Team, 0, len(rows))
	for i := range rows {
		teams = append(teams, *rowToTeam(&rows[i]))
	}
	return teams, nil
}

// =============================================================================
// Match Operations
// =============================================================================

type matchRow struct {
	ID         string `db:"id"`
	SportID    string `db:"sport_id"`
	Team1ID    string `db:"team1_id"`
	Team2ID    string `db:"team2_id"`
	LocationID string `db:"location_id"`
	Date       string `db:"date"`
	Score1     int    `db:"score1"`
	Score2     int    `db:"score2"`
	WinnerID   string `db:"winner_id"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

func rowToMatch(row *matchRow) *domain.Match {
	return &domain.Match{
		ID:         row.ID,
		SportID:    row.SportID,
		Team1ID:    row.Team1ID,
		Team2ID:    row.Team2ID,
		LocationID: row.LocationID,
		Date:       parseTime(row.Date),
		Score1:     row.Score1,
		Score2:     row.Score2,
		WinnerID:   row.WinnerID,
		CreatedAt:  parseTime(row.CreatedAt),
		UpdatedAt:  parseTime(row.UpdatedAt),
	}
}

func matchToRow(m *domain.Match) map[string]any {
	return map[string]any{
		"id":          m.ID,
		"sport_id":    m.SportID,
		"team1_id":    m.Team1ID,
		"team2_id":    m.Team2ID,
		"location_id": m.LocationID,
		"date":        formatTime(m.Date),
		"score1":      m.Score1,
		"score2":      m.Score2,
		"winner_id":   m.WinnerID,
		"created_at":  formatTime(m.CreatedAt),
		"updated_at":  formatTime(m.UpdatedAt),
	}
}

func (c sqliteConn) CreateMatch(ctx context.Context, match *domain.Match) error {
	query := `
		INSERT INTO matches (id, sport_id, team1_id, team2_id, location_id, date, score1, score2, winner_id, created_at, updated_at)
		VALUES (:id, :sport_id, :team1_id, :team2_id, :location_id, :date, :score1, :score2, :winner_id, :created_at, :updated_at)`

	_, err := c.exec.NamedExecContext(ctx, query, matchToRow(match))
	if err != nil {
		return NewStoreError("CreateMatch", "match", match.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetMatch(ctx context.Context, id string) (*domain.Match, error) {
	var row matchRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM matches WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetMatch", "match", id, "match not found", ErrNotFound)
		}
		return nil, NewStoreError("GetMatch", "match", id, err.Error(), err)
	}
	return rowToMatch(&row), nil
}

func (c sqliteConn) UpdateMatch(ctx context.Context, match *domain.Match) error {
	query := `
		UPDATE matches SET
			sport_id = :sport_id,
			team1_id = :team1_id,
			team2_id = :team2_id,
			location_id = :location_id,
			date = :date,
			score1 = :score1,
			score2 = :score2,
			winner_id = :winner_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := c.exec.NamedExecContext(ctx, query, matchToRow(match))
	if err != nil {
		return NewStoreError("UpdateMatch", "match", match.ID, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("UpdateMatch", "match", match.ID, "match not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) DeleteMatch(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteMatch", "match", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteMatch", "match", id, "match not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListMatchesBySport(ctx context.Context, sportID string) ([]domain.Match, error) {
	var rows []matchRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM matches WHERE sport_id = ? ORDER BY date ASC`, sportID)
	if err != nil {
		return nil, NewStoreError("ListMatchesBySport", "match", sportID, err.Error(), err)
	}

	matches := make([]domain.Match, 0, len(rows))
	for i := range rows {
		matches = append(matches, *rowToMatch(&rows[i]))
	}
	return matches, nil
}
