package domain

import "strings"

// =============================================================================
// Participant Roles
// =============================================================================

// Display labels for participant roles. The order is fixed: a participant
// type string always lists roles in this order, whatever the input order.
const (
	LabelAthlete   = "Athlète"
	LabelPompom    = "Pompom"
	LabelFanfare   = "Fanfare"
	LabelCameraman = "Cameraman"
	LabelVolunteer = "Bénévole"
)

// RoleFlags is the typed capability record for a competition user.
// Category membership is derived from these booleans, never from
// substring checks against localized display strings.
type RoleFlags struct {
	Athlete   bool `json:"is_athlete"`
	Pompom    bool `json:"is_pompom"`
	Fanfare   bool `json:"is_fanfare"`
	Cameraman bool `json:"is_cameraman"`
	Volunteer bool `json:"is_volunteer"`
}

// None reports whether no role flag is set.
func (f RoleFlags) None() bool {
	return !f.Athlete && !f.Pompom && !f.Fanfare && !f.Cameraman && !f.Volunteer
}

// Labels returns the display labels of the set flags, in fixed order.
func (f RoleFlags) Labels() []string {
	labels := make([]string, 0, 5)
	if f.Athlete {
		labels = append(labels, LabelAthlete)
	}
	if f.Pompom {
		labels = append(labels, LabelPompom)
	}
	if f.Fanfare {
		labels = append(labels, LabelFanfare)
	}
	if f.Cameraman {
		labels = append(labels, LabelCameraman)
	}
	if f.Volunteer {
		labels = append(labels, LabelVolunteer)
	}
	return labels
}

// TypeLabel returns the comma-joined participant type string,
// e.g. "Athlète, Cameraman". Empty when no flag is set.
func (f RoleFlags) TypeLabel() string {
	return strings.Join(f.Labels(), ", ")
}
