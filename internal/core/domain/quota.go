package domain

// =============================================================================
// Quota Categories
// =============================================================================

// QuotaCategory names one of the ten general-quota counters a school
// declares. The four simple categories count a single role; the six
// combined categories count role pairs, split on athlete membership.
type QuotaCategory string

const (
	CategoryAthlete   QuotaCategory = "athlete_quota"
	CategoryCameraman QuotaCategory = "cameraman_quota"
	CategoryPompom    QuotaCategory = "pompom_quota"
	CategoryFanfare   QuotaCategory = "fanfare_quota"

	CategoryAthleteCameraman QuotaCategory = "athlete_cameraman_quota"
	CategoryAthletePompom    QuotaCategory = "athlete_pompom_quota"
	CategoryAthleteFanfare   QuotaCategory = "athlete_fanfare_quota"

	CategoryNonAthleteCameraman QuotaCategory = "non_athlete_cameraman_quota"
	CategoryNonAthletePompom    QuotaCategory = "non_athlete_pompom_quota"
	CategoryNonAthleteFanfare   QuotaCategory = "non_athlete_fanfare_quota"
)

// QuotaCategories lists all general-quota categories in declaration order.
var QuotaCategories = []QuotaCategory{
	CategoryAthlete,
	CategoryCameraman,
	CategoryPompom,
	CategoryFanfare,
	CategoryAthleteCameraman,
	CategoryAthletePompom,
	CategoryAthleteFanfare,
	CategoryNonAthleteCameraman,
	CategoryNonAthletePompom,
	CategoryNonAthleteFanfare,
}

// Matches reports whether a participant with the given role flags belongs
// to the category. Categories are evaluated independently: one participant
// can belong to several combined categories at once.
func (c QuotaCategory) Matches(f RoleFlags) bool {
	switch c {
	case CategoryAthlete:
		return f.Athlete
	case CategoryCameraman:
		return f.Cameraman
	case CategoryPompom:
		return f.Pompom
	case CategoryFanfare:
		return f.Fanfare
	case CategoryAthleteCameraman:
		return f.Athlete && f.Cameraman
	case CategoryAthletePompom:
		return f.Athlete && f.Pompom
	case CategoryAthleteFanfare:
		return f.Athlete && f.Fanfare
	case CategoryNonAthleteCameraman:
		return !f.Athlete && f.Cameraman
	case CategoryNonAthletePompom:
		return !f.Athlete && f.Pompom
	case CategoryNonAthleteFanfare:
		return !f.Athlete && f.Fanfare
	default:
		return false
	}
}

// =============================================================================
// Quota Records
// =============================================================================

// SchoolGeneralQuota holds the ten per-category ceilings a school declared.
// A limit of zero means the category has no declared ceiling: it is treated
// as unlimited, never as "zero allowed".
type SchoolGeneralQuota struct {
	SchoolID string                `json:"school_id"`
	Limits   map[QuotaCategory]int `json:"limits"`
}

// Limit returns the declared ceiling for a category, zero when absent.
func (q SchoolGeneralQuota) Limit(c QuotaCategory) int {
	if q.Limits == nil {
		return 0
	}
	return q.Limits[c]
}

// SchoolSportQuota caps a school's presence in one sport.
type SchoolSportQuota struct {
	SchoolID         string `json:"school_id"`
	SportID          string `json:"sport_id"`
	ParticipantQuota int    `json:"participant_quota"`
	TeamQuota        int    `json:"team_quota"`
}

// SchoolProductQuota caps how many units of a product a school may buy.
type SchoolProductQuota struct {
	SchoolID  string `json:"school_id"`
	ProductID string `json:"product_id"`
	Quota     int    `json:"quota"`
}
