package recon

import (
	"sort"
	"strings"

	"github.com/jens-platform/ifc-match/internal/debug"
)

// Scorer computes additive candidate scores from the fixed signal weights.
type Scorer struct {
	weights *SignalWeights
}

// NewScorer creates a scorer with the default signal weights.
func NewScorer() *Scorer {
	return &Scorer{weights: DefaultWeights()}
}

// NewScorerWithWeights creates a scorer with custom signal weights.
func NewScorerWithWeights(weights *SignalWeights) *Scorer {
	return &Scorer{weights: weights}
}

// ScoreCandidate scores one (element, row) pair and returns the candidate with
// its contributing signals and the provenance of the strongest exact key hit.
// The weak signals (category, name) contribute to the score but never change
// provenance; when no exact key fired, provenance is "mixed".
func (s *Scorer) ScoreCandidate(element ModelElement, row *ScheduleRow) (Candidate, string) {
	cand := Candidate{Row: row}
	provenance := ProvenanceMixed

	if element.GlobalID != "" && element.GlobalID == row.GlobalID {
		cand.Score += s.weights.GlobalID
		cand.Signals = append(cand.Signals, SignalGlobalID)
		provenance = ProvenanceGlobalID
	}

	if element.Tag != "" && element.Tag == row.ElementID {
		cand.Score += s.weights.ElementID
		cand.Signals = append(cand.Signals, SignalElementID)
		if provenance == ProvenanceMixed {
			provenance = ProvenanceElementID
		}
	}

	if element.TypeGlobalID != "" && element.TypeGlobalID == row.TypeGlobalID {
		cand.Score += s.weights.TypeGUID
		cand.Signals = append(cand.Signals, SignalTypeGUID)
		if provenance == ProvenanceMixed {
			provenance = ProvenanceTypeGUID
		}
	}

	if containsEitherWay(element.Type, row.Category) {
		cand.Score += s.weights.Category
		cand.Signals = append(cand.Signals, SignalCategory)
	}

	if containsEitherWay(element.Name, row.ElementName) {
		cand.Score += s.weights.Name
		cand.Signals = append(cand.Signals, SignalName)
	}

	return cand, provenance
}

// RankCandidates scores every gathered row for the element and returns the
// candidates sorted by score descending. Equal scores keep row input order so
// repeated runs over identical inputs produce identical rankings.
func (s *Scorer) RankCandidates(localDebug bool, element ModelElement, rows []*ScheduleRow, idx *RowIndex) ([]Candidate, map[*ScheduleRow]string) {
	candidates := make([]Candidate, 0, len(rows))
	provenances := make(map[*ScheduleRow]string, len(rows))

	for _, row := range rows {
		cand, provenance := s.ScoreCandidate(element, row)
		cand.ordinal = idx.Ordinal(row)
		candidates = append(candidates, cand)
		provenances[row] = provenance
		debug.DebugOutput(localDebug, "Element #%d vs row (guid=%s id=%s): %.4f %v",
			element.ExpressID, row.GlobalID, row.ElementID, cand.Score, cand.Signals)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ordinal < candidates[j].ordinal
	})

	return candidates, provenances
}

// containsEitherWay reports case-insensitive substring containment in either
// direction. Both sides must be non-empty.
func containsEitherWay(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
