package domain

import "time"

// =============================================================================
// Edition
// =============================================================================

// Edition is one yearly occurrence of the Challenge.
type Edition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// =============================================================================
// School
// =============================================================================

// SchoolType distinguishes pricing/eligibility groups of schools.
type SchoolType string

const (
	SchoolTypeCentrale  SchoolType = "centrale"
	SchoolTypeFromOther SchoolType = "from_other"
	SchoolTypeOther     SchoolType = "other"
)

// School is a participating school.
type School struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	EmailDomain string     `json:"email_domain"`
	Type        SchoolType `json:"school_type"`
	Address     string     `json:"address"`
	EditionID   string     `json:"edition_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// =============================================================================
// Sport
// =============================================================================

// PompomsSportID is the synthetic sport identifier used for cheerleading
// results, which are scored per school rather than per team.
const PompomsSportID = "pompoms"

// Sport is a competition discipline.
type Sport struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TeamCapacity  int       `json:"team_capacity"`
	SubstituteMax int       `json:"substitute_max"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// =============================================================================
// Location
// =============================================================================

// Location is a competition venue.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// =============================================================================
// Team
// =============================================================================

// Team is a school's roster for one sport.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SchoolID  string    `json:"school_id"`
	SportID   string    `json:"sport_id"`
	CaptainID string    `json:"captain_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// =============================================================================
// Match
// =============================================================================

// Match is a scheduled game between two teams of the same sport.
type Match struct {
	ID         string    `json:"id"`
	SportID    string    `json:"sport_id"`
	Team1ID    string    `json:"team1_id"`
	Team2ID    string    `json:"team2_id"`
	LocationID string    `json:"location_id"`
	Date       time.Time `json:"date"`
	Score1     int       `json:"score1"`
	Score2     int       `json:"score2"`
	WinnerID   string    `json:"winner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
