package recon

import (
	"math"

	"github.com/jens-platform/ifc-match/internal/debug"
)

// Policy classifies a ranked candidate list into matched / ambiguous / unmatched
// using the configured tiers, and performs consumption bookkeeping so a schedule
// row cannot win twice.
type Policy struct {
	tiers *MatchTiers
}

// NewPolicy creates a policy with the default tiers.
func NewPolicy() *Policy {
	return &Policy{tiers: DefaultTiers()}
}

// NewPolicyWithTiers creates a policy with custom tiers.
func NewPolicyWithTiers(tiers *MatchTiers) *Policy {
	return &Policy{tiers: tiers}
}

// Decide produces the decision for one element from its ranked candidates.
// The consumed set is shared across the whole run and is updated on a match.
// Consumption is first-come-first-served in canonical element order; a global
// optimal assignment would be marginally more accurate but non-deterministic
// under ties and far more expensive.
func (p *Policy) Decide(localDebug bool, element ModelElement, ranked []Candidate, provenances map[*ScheduleRow]string, consumed map[*ScheduleRow]struct{}) Decision {
	if len(ranked) == 0 || ranked[0].Score < p.tiers.MinScore {
		reason := p.unmatchedReason(element)
		debug.DebugOutput(localDebug, "Element #%d unmatched: %s", element.ExpressID, reason)
		return Decision{Element: element, Status: StatusUnmatched, Reason: reason}
	}

	top := ranked[0]
	tied := len(ranked) > 1 && ranked[1].Score == top.Score

	if tied || top.Score < p.tiers.ConfidentScore {
		reason := ReasonAmbiguousScoreBand
		if tied {
			reason = ReasonDuplicateElementID
		}
		keep := ranked
		if len(keep) > p.tiers.MaxAmbiguous {
			keep = keep[:p.tiers.MaxAmbiguous]
		}
		debug.DebugOutput(localDebug, "Element #%d ambiguous (%s): top=%.4f candidates=%d",
			element.ExpressID, reason, top.Score, len(keep))
		return Decision{Element: element, Status: StatusAmbiguous, Candidates: keep, Reason: reason}
	}

	// Confident winner: claim the best unconsumed row that itself clears the
	// confident floor. Falling back to a weaker candidate would record a
	// matched decision below the floor, so the scan stops there.
	for _, cand := range ranked {
		if cand.Score < p.tiers.ConfidentScore {
			break
		}
		if _, taken := consumed[cand.Row]; taken {
			continue
		}
		consumed[cand.Row] = struct{}{}
		debug.DebugOutput(localDebug, "Element #%d matched row (guid=%s id=%s) score=%.4f",
			element.ExpressID, cand.Row.GlobalID, cand.Row.ElementID, cand.Score)
		return Decision{
			Element:    element,
			Status:     StatusMatched,
			Row:        cand.Row,
			Score:      round4(cand.Score),
			Provenance: provenances[cand.Row],
		}
	}

	// Every confident row was already claimed by an earlier element.
	debug.DebugOutput(localDebug, "Element #%d unmatched: all confident candidates consumed", element.ExpressID)
	return Decision{Element: element, Status: StatusUnmatched, Reason: ReasonDuplicateElementID}
}

// unmatchedReason picks the most specific diagnostic for an element that
// cleared no candidate past the floor.
func (p *Policy) unmatchedReason(element ModelElement) Reason {
	switch {
	case element.GlobalID == "" && element.Tag == "":
		return ReasonMissingGlobalIDAndTag
	case element.GlobalID == "":
		return ReasonMissingGlobalID
	case element.Tag == "":
		return ReasonMissingTag
	default:
		return ReasonNoCandidate
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
