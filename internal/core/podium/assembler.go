// Package podium builds per-sport and global podium views out of ranking
// entries. The service never computes points itself: team ranks and the
// global standings come from the results upstream, pompoms totals are the
// only input that needs rank synthesis.
package podium

import (
	"sort"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// TopSize is how many entries a podium view shows before overflowing
// into the detail list.
const TopSize = 3

// =============================================================================
// Per-Sport Podium
// =============================================================================

// Podium is a per-sport ranking split into the top entries and the rest.
type Podium struct {
	TopThree []domain.TeamSportResult `json:"top_three"`
	Overflow []domain.TeamSportResult `json:"overflow"`
}

// Split orders results by rank ascending and cuts them into the podium
// view. Equal ranks are tie-broken by school id so the output is stable
// whatever order the rows were stored in.
func Split(results []domain.TeamSportResult) Podium {
	sorted := make([]domain.TeamSportResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank < sorted[j].Rank
		}
		return sorted[i].SchoolID < sorted[j].SchoolID
	})

	if len(sorted) <= TopSize {
		return Podium{TopThree: sorted, Overflow: []domain.TeamSportResult{}}
	}
	return Podium{TopThree: sorted[:TopSize], Overflow: sorted[TopSize:]}
}

// =============================================================================
// Pompoms Synthesis
// =============================================================================

// SynthesizePompoms turns raw per-school pompoms totals into ranking rows.
// Pompoms has no team entity, so each row carries a placeholder team whose
// id and name are the school id. Totals sort by points descending; equal
// points tie-break by school id ascending, then rank is the 1-based
// position in that order.
func SynthesizePompoms(totals []domain.PompomsResult) []domain.TeamSportResult {
	sorted := make([]domain.PompomsResult, len(totals))
	copy(sorted, totals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].SchoolID < sorted[j].SchoolID
	})

	results := make([]domain.TeamSportResult, len(sorted))
	for i, total := range sorted {
		results[i] = domain.TeamSportResult{
			SportID:  domain.PompomsSportID,
			TeamID:   total.SchoolID,
			TeamName: total.SchoolID,
			SchoolID: total.SchoolID,
			Rank:     i + 1,
			Points:   total.TotalPoints,
		}
	}
	return results
}

// =============================================================================
// Global Podium
// =============================================================================

// GlobalPodium is the cross-sport standings split like a sport podium.
type GlobalPodium struct {
	TopThree []domain.GlobalPodiumEntry `json:"top_three"`
	Overflow []domain.GlobalPodiumEntry `json:"overflow"`
}

// OrderGlobal sorts the upstream-supplied global standings by rank
// ascending (school id on ties) and truncates to the podium view.
func OrderGlobal(entries []domain.GlobalPodiumEntry) GlobalPodium {
	sorted := make([]domain.GlobalPodiumEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank < sorted[j].Rank
		}
		return sorted[i].SchoolID < sorted[j].SchoolID
	})

	if len(sorted) <= TopSize {
		return GlobalPodium{TopThree: sorted, Overflow: []domain.GlobalPodiumEntry{}}
	}
	return GlobalPodium{TopThree: sorted[:TopSize], Overflow: sorted[TopSize:]}
}
