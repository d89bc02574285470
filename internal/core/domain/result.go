package domain

// =============================================================================
// Rankings
// =============================================================================

// TeamSportResult is one ranking entry of a team in a sport.
type TeamSportResult struct {
	SportID  string `json:"sport_id"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	SchoolID string `json:"school_id"`
	Rank     int    `json:"rank"`
	Points   int    `json:"points"`
}

// PompomsResult is a raw per-school cheerleading total. Pompoms has no
// team entity; results arrive as school aggregates and are synthesized
// into TeamSportResult rows for display consistency.
type PompomsResult struct {
	SchoolID    string `json:"school_id"`
	TotalPoints int    `json:"total_points"`
}

// GlobalPodiumEntry is one school's standing in the cross-sport podium.
// The aggregation rule lives upstream; this service only orders and
// truncates what it is given.
type GlobalPodiumEntry struct {
	SchoolID   string `json:"school_id"`
	SchoolName string `json:"school_name"`
	Rank       int    `json:"rank"`
	Points     int    `json:"points"`
}
