package domain

import "time"

// =============================================================================
// Competition User
// =============================================================================

// CompetitionUser is a person registered for the Challenge. Registration
// happens upstream; this service validates users and counts them against
// school quotas.
type CompetitionUser struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	SchoolID    string    `json:"school_id"`
	IsAthlete   bool      `json:"is_athlete"`
	IsPompom    bool      `json:"is_pompom"`
	IsFanfare   bool      `json:"is_fanfare"`
	IsCameraman bool      `json:"is_cameraman"`
	IsVolunteer bool      `json:"is_volunteer"`
	Validated   bool      `json:"validated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Roles returns the typed role flags for the user.
func (u CompetitionUser) Roles() RoleFlags {
	return RoleFlags{
		Athlete:   u.IsAthlete,
		Pompom:    u.IsPompom,
		Fanfare:   u.IsFanfare,
		Cameraman: u.IsCameraman,
		Volunteer: u.IsVolunteer,
	}
}

// FullName returns "First Last", trimming whatever part is missing.
func (u CompetitionUser) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// =============================================================================
// School Participant
// =============================================================================

// SchoolParticipant is an athlete's sport-specific registration.
// A user competes in at most one sport, so there is at most one
// SchoolParticipant record per user.
type SchoolParticipant struct {
	UserID       string `json:"user_id"`
	SchoolID     string `json:"school_id"`
	SportID      string `json:"sport_id"`
	TeamID       string `json:"team_id"`
	License      bool   `json:"license"`
	IsSubstitute bool   `json:"is_substitute"`
}
