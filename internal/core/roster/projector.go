// Package roster derives display-ready participant rows from raw
// registration records. All functions are pure: they take explicit
// snapshots and return fresh values, safe to call on every refresh.
package roster

import (
	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Participant Row
// =============================================================================

// Row is the flat, display-ready projection of one competition user.
// Exactly one row is emitted per user, even when joins are incomplete.
type Row struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	SchoolID  string `json:"school_id"`

	// ParticipantType is the comma-joined role label string, e.g.
	// "Athlète, Cameraman". Roles carries the same information as
	// typed flags; category counting uses Roles, never the label.
	ParticipantType string           `json:"participant_type"`
	Roles           domain.RoleFlags `json:"roles"`

	// Sport fields are populated for athletes only. A failed lookup
	// leaves the name empty; the id is kept so the row stays traceable.
	SportID      string `json:"sport_id,omitempty"`
	SportName    string `json:"sport_name,omitempty"`
	TeamID       string `json:"team_id,omitempty"`
	TeamName     string `json:"team_name,omitempty"`
	IsCaptain    bool   `json:"is_captain"`
	IsSubstitute bool   `json:"is_substitute"`
	HasLicense   bool   `json:"has_license"`

	// HasPaid is true once a validated purchase covers a required
	// product. PartialPaid is true while any purchase awaits validation.
	HasPaid     bool `json:"has_paid"`
	PartialPaid bool `json:"partial_paid"`

	IsValidated bool `json:"is_validated"`
}

// =============================================================================
// Projection Input
// =============================================================================

// Input bundles the raw records a projection needs. Users are expected to
// be pre-filtered to a single school; the other collections may be wider.
type Input struct {
	Users        []domain.CompetitionUser
	Participants []domain.SchoolParticipant
	Purchases    map[string][]domain.Purchase
	Products     []domain.Product
	Sports       []domain.Sport
	Teams        []domain.Team
}

// =============================================================================
// Projector
// =============================================================================

// Project maps every competition user to one Row. Missing joins (no
// participant record for an athlete, unknown sport or team id) degrade to
// zero values rather than dropping the row or failing: the dashboard must
// show what it has, incomplete or not.
func Project(in Input) []Row {
	participantByUser := make(map[string]domain.SchoolParticipant, len(in.Participants))
	for _, p := range in.Participants {
		participantByUser[p.UserID] = p
	}

	sportNames := make(map[string]string, len(in.Sports))
	for _, s := range in.Sports {
		sportNames[s.ID] = s.Name
	}

	teamByID := make(map[string]domain.Team, len(in.Teams))
	for _, t := range in.Teams {
		teamByID[t.ID] = t
	}

	required := domain.BuildRequiredVariantSet(in.Products)

	rows := make([]Row, 0, len(in.Users))
	for _, u := range in.Users {
		roles := u.Roles()
		row := Row{
			UserID:          u.ID,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			FullName:        u.FullName(),
			Email:           u.Email,
			SchoolID:        u.SchoolID,
			ParticipantType: roles.TypeLabel(),
			Roles:           roles,
			IsValidated:     u.Validated,
		}

		if roles.Athlete {
			if p, ok := participantByUser[u.ID]; ok {
				row.SportID = p.SportID
				row.SportName = sportNames[p.SportID]
				row.TeamID = p.TeamID
				row.IsSubstitute = p.IsSubstitute
				row.HasLicense = p.License
				if team, ok := teamByID[p.TeamID]; ok {
					row.TeamName = team.Name
					row.IsCaptain = team.CaptainID == u.ID
				}
			}
		}

		row.HasPaid, row.PartialPaid = paymentStatus(in.Purchases[u.ID], required)
		rows = append(rows, row)
	}
	return rows
}

// paymentStatus derives the two payment flags from a user's purchases.
func paymentStatus(purchases []domain.Purchase, required domain.RequiredVariantSet) (hasPaid, partialPaid bool) {
	for _, p := range purchases {
		if p.Validated && required[p.VariantID] {
			hasPaid = true
		}
		if !p.Validated {
			partialPaid = true
		}
	}
	return hasPaid, partialPaid
}
