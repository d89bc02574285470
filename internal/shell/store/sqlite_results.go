package store

import (
	"context"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Sport Result Operations
// =============================================================================

type sportResultRow struct {
	SportID  string `db:"sport_id"`
	TeamID   string `db:"team_id"`
	TeamName string `db:"team_name"`
	SchoolID string `db:"school_id"`
	Rank     int    `db:"rank"`
	Points   int    `db:"points"`
}

// ReplaceSportResults swaps the full ranking snapshot for one sport.
// The upstream sends a sport's whole ranking each time, so a partial
// update would keep teams the upstream has since dropped.
func (c sqliteConn) ReplaceSportResults(ctx context.Context, sportID string, results []domain.TeamSportResult) error {
	if _, err := c.exec.ExecContext(ctx, `DELETE FROM team_sport_results WHERE sport_id = ?`, sportID); err != nil {
		return NewStoreError("ReplaceSportResults", "result", sportID, err.Error(), err)
	}

	for _, result := range results {
		_, err := c.exec.NamedExecContext(ctx,
			`INSERT INTO team_sport_results (sport_id, team_id, team_name, school_id, rank, points)
			 VALUES (:sport_id, :team_id, :team_name, :school_id, :rank, :points)`,
			map[string]any{
				"sport_id":  sportID,
				"team_id":   result.TeamID,
				"team_name": result.TeamName,
				"school_id": result.SchoolID,
				"rank":      result.Rank,
				"points":    result.Points,
			})
		if err != nil {
			return NewStoreError("ReplaceSportResults", "result", result.TeamID, err.Error(), mapConstraintErr(err))
		}
	}
	return nil
}

func (c sqliteConn) ListResultsBySport(ctx context.Context, sportID string) ([]domain.TeamSportResult, error) {
	var rows []sportResultRow
	err := c.exec.SelectContext(ctx, &rows,
		`SELECT * FROM team_sport_results WHERE sport_id = ? ORDER BY rank ASC`, sportID)
	if err != nil {
		return nil, NewStoreError("ListResultsBySport", "result", sportID, err.Error(), err)
	}

	results := make([]domain.TeamSportResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domain.TeamSportResult{
			SportID:  row.SportID,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			SchoolID: row.SchoolID,
			Rank:     row.Rank,
			Points:   row.Points,
		})
	}
	return results, nil
}

// =============================================================================
// Pompoms Result Operations
// =============================================================================

type pompomsResultRow struct {
	SchoolID    string `db:"school_id"`
	TotalPoints int    `db:"total_points"`
}

// ReplacePompomsResults swaps the full pompoms totals snapshot. The
// upstream sends the whole collection each time, so partial updates
// would only leave stale schools behind.
func (c sqliteConn) ReplacePompomsResults(ctx context.Context, totals []domain.PompomsResult) error {
	if _, err := c.exec.ExecContext(ctx, `DELETE FROM pompoms_results`); err != nil {
		return NewStoreError("ReplacePompomsResults", "pompoms_result", "", err.Error(), err)
	}

	for _, total := range totals {
		_, err := c.exec.NamedExecContext(ctx,
			`INSERT INTO pompoms_results (school_id, total_points) VALUES (:school_id, :total_points)`,
			map[string]any{
				"school_id":    total.SchoolID,
				"total_points": total.TotalPoints,
			})
		if err != nil {
			return NewStoreError("ReplacePompomsResults", "pompoms_result", total.SchoolID, err.Error(), mapConstraintErr(err))
		}
	}
	return nil
}

func (c sqliteConn) ListPompomsResults(ctx context.Context) ([]domain.PompomsResult, error) {
	var rows []pompomsResultRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM pompoms_results ORDER BY total_points DESC, school_id ASC`)
	if err != nil {
		return nil, NewStoreError("ListPompomsResults", "pompoms_result", "", err.Error(), err)
	}

	totals := make([]domain.PompomsResult, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, domain.PompomsResult{
			SchoolID:    row.SchoolID,
			TotalPoints: row.TotalPoints,
		})
	}
	return totals, nil
}

// =============================================================================
// Global Podium Operations
// =============================================================================

type globalPodiumRow struct {
	SchoolID   string `db:"school_id"`
	SchoolName string `db:"school_name"`
	Rank       int    `db:"rank"`
	Points     int    `db:"points"`
}

// ReplaceGlobalPodium swaps the upstream-supplied global standings.
func (c sqliteConn) ReplaceGlobalPodium(ctx context.Context, entries []domain.GlobalPodiumEntry) error {
	if _, err := c.exec.ExecContext(ctx, `DELETE FROM global_podium`); err != nil {
		return NewStoreError("ReplaceGlobalPodium", "global_podium", "", err.Error(), err)
	}

	for _, entry := range entries {
		_, err := c.exec.NamedExecContext(ctx,
			`INSERT INTO global_podium (school_id, school_name, rank, points)
			 VALUES (:school_id, :school_name, :rank, :points)`,
			map[string]any{
				"school_id":   entry.SchoolID,
				"school_name": entry.SchoolName,
				"rank":        entry.Rank,
				"points":      entry.Points,
			})
		if err != nil {
			return NewStoreError("ReplaceGlobalPodium", "global_podium", entry.SchoolID, err.Error(), mapConstraintErr(err))
		}
	}
	return nil
}

func (c sqliteConn) ListGlobalPodium(ctx context.Context) ([]domain.GlobalPodiumEntry, error) {
	var rows []globalPodiumRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM global_podium ORDER BY rank ASC, school_id ASC`)
	if err != nil {
		return nil, NewStoreError("ListGlobalPodium", "global_podium", "", err.Error(), err)
	}

	entries := make([]domain.GlobalPodiumEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.GlobalPodiumEntry{
			SchoolID:   row.SchoolID,
			SchoolName: row.SchoolName,
			Rank:       row.Rank,
			Points:     row.Points,
		})
	}
	return entries, nil
}
