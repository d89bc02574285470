// Package quota computes per-school quota usage from projected
// participant rows and compares it against declared ceilings. Everything
// here is a pure aggregation: recomputation is cheap, so there is no
// incremental update path and no cache.
package quota

import (
	"sort"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/core/roster"
)

// =============================================================================
// General Quota Usage
// =============================================================================

// Usage maps each general-quota category to its used count.
type Usage map[domain.QuotaCategory]int

// CountByCategory tallies validated rows into the ten general categories.
// Unvalidated rows never consume quota. Categories are independent: a
// single row can contribute to several combined categories.
func CountByCategory(rows []roster.Row) Usage {
	usage := make(Usage, len(domain.QuotaCategories))
	for _, c := range domain.QuotaCategories {
		usage[c] = 0
	}
	for _, row := range rows {
		if !row.IsValidated {
			continue
		}
		for _, c := range domain.QuotaCategories {
			if c.Matches(row.Roles) {
				usage[c]++
			}
		}
	}
	return usage
}

// =============================================================================
// Over-Quota Evaluation
// =============================================================================

// CategoryStatus is the evaluated state of one general-quota category.
type CategoryStatus struct {
	Category domain.QuotaCategory `json:"category"`
	Limit    int                  `json:"limit"`
	Used     int                  `json:"used"`
	Limited  bool                 `json:"limited"`
	Exceeded bool                 `json:"exceeded"`
}

// GeneralStatus compares usage against a school's declared general quota.
// A missing or zero limit means the category is unlimited: Limited is
// false and Exceeded is never set, regardless of usage.
func GeneralStatus(usage Usage, declared domain.SchoolGeneralQuota) []CategoryStatus {
	statuses := make([]CategoryStatus, 0, len(domain.QuotaCategories))
	for _, c := range domain.QuotaCategories {
		limit := declared.Limit(c)
		used := usage[c]
		statuses = append(statuses, CategoryStatus{
			Category: c,
			Limit:    limit,
			Used:     used,
			Limited:  limit > 0,
			Exceeded: limit > 0 && used > limit,
		})
	}
	return statuses
}

// =============================================================================
// Sport Quotas
// =============================================================================

// SportStatus is the evaluated state of one school's sport quota.
type SportStatus struct {
	SportID             string `json:"sport_id"`
	ParticipantQuota    int    `json:"participant_quota"`
	ParticipantsUsed    int    `json:"participants_used"`
	ParticipantExceeded bool   `json:"participant_exceeded"`
	TeamQuota           int    `json:"team_quota"`
	TeamsUsed           int    `json:"teams_used"`
	TeamExceeded        bool   `json:"team_exceeded"`
}

// EvaluateSports counts validated athletes and teams per sport and checks
// them against the declared sport quotas. Sports without a quota row are
// reported too, as unlimited, so the dashboard still shows their usage.
func EvaluateSports(rows []roster.Row, teams []domain.Team, declared []domain.SchoolSportQuota) []SportStatus {
	athletesBySport := make(map[string]int)
	for _, row := range rows {
		if row.IsValidated && row.Roles.Athlete && row.SportID != "" {
			athletesBySport[row.SportID]++
		}
	}

	teamsBySport := make(map[string]int)
	for _, t := range teams {
		teamsBySport[t.SportID]++
	}

	quotaBySport := make(map[string]domain.SchoolSportQuota, len(declared))
	for _, q := range declared {
		quotaBySport[q.SportID] = q
	}

	sportIDs := make(map[string]struct{})
	for id := range athletesBySport {
		sportIDs[id] = struct{}{}
	}
	for id := range teamsBySport {
		sportIDs[id] = struct{}{}
	}
	for id := range quotaBySport {
		sportIDs[id] = struct{}{}
	}

	statuses := make([]SportStatus, 0, len(sportIDs))
	for id := range sportIDs {
		q := quotaBySport[id]
		s := SportStatus{
			SportID:          id,
			ParticipantQuota: q.ParticipantQuota,
			ParticipantsUsed: athletesBySport[id],
			TeamQuota:        q.TeamQuota,
			TeamsUsed:        teamsBySport[id],
		}
		s.ParticipantExceeded = q.ParticipantQuota > 0 && s.ParticipantsUsed > q.ParticipantQuota
		s.TeamExceeded = q.TeamQuota > 0 && s.TeamsUsed > q.TeamQuota
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].SportID < statuses[j].SportID })
	return statuses
}

// =============================================================================
// Product Quotas
// =============================================================================

// ProductStatus is the evaluated state of one school's product quota.
type ProductStatus struct {
	ProductID string `json:"product_id"`
	Quota     int    `json:"quota"`
	Used      int    `json:"used"`
	Exceeded  bool   `json:"exceeded"`
}

// EvaluateProducts sums validated purchase quantities per product and
// checks them against the declared product quotas.
func EvaluateProducts(purchases []domain.Purchase, products []domain.Product, declared []domain.SchoolProductQuota) []ProductStatus {
	productByVariant := make(map[string]string)
	for _, p := range products {
		for _, v := range p.Variants {
			productByVariant[v.ID] = p.ID
		}
	}

	usedByProduct := make(map[string]int)
	for _, pur := range purchases {
		if !pur.Validated {
			continue
		}
		if productID, ok := productByVariant[pur.VariantID]; ok {
			usedByProduct[productID] += pur.Quantity
		}
	}

	quotaByProduct := make(map[string]int, len(declared))
	for _, q := range declared {
		quotaByProduct[q.ProductID] = q.Quota
	}

	productIDs := make(map[string]struct{})
	for id := range usedByProduct {
		productIDs[id] = struct{}{}
	}
	for id := range quotaByProduct {
		productIDs[id] = struct{}{}
	}

	statuses := make([]ProductStatus, 0, len(productIDs))
	for id := range productIDs {
		quota := quotaByProduct[id]
		used := usedByProduct[id]
		statuses = append(statuses, ProductStatus{
			ProductID: id,
			Quota:     quota,
			Used:      used,
			Exceeded:  quota > 0 && used > quota,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ProductID < statuses[j].ProductID })
	return statuses
}
