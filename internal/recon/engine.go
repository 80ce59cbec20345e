package recon

import (
	"github.com/jens-platform/ifc-match/internal/debug"
)

// Engine orchestrates a reconciliation run: normalize rows once, then for each
// model element in input order gather candidates, score them, and decide,
// threading the shared consumed-rows set through the loop. The engine is
// synchronous and keeps no state between runs beyond the last result, retained
// for cheap lookup by callers.
type Engine struct {
	scorer *Scorer
	policy *Policy

	last *MatchResult
}

// EngineConfig holds optional overrides for the engine.
type EngineConfig struct {
	Weights *SignalWeights
	Tiers   *MatchTiers
}

// NewEngine creates an engine with the default weights and tiers.
func NewEngine() *Engine {
	return NewEngineWithConfig(EngineConfig{})
}

// NewEngineWithConfig creates an engine with custom weights and tiers.
func NewEngineWithConfig(config EngineConfig) *Engine {
	weights := config.Weights
	if weights == nil {
		weights = DefaultWeights()
	}
	tiers := config.Tiers
	if tiers == nil {
		tiers = DefaultTiers()
	}
	return &Engine{
		scorer: NewScorerWithWeights(weights),
		policy: NewPolicyWithTiers(tiers),
	}
}

// Reconcile links model elements to schedule rows and returns the full result.
// Elements are processed in slice order; callers that need order-independence
// must pre-sort by a stable criterion such as ExpressID. Data-quality problems
// (missing keys, duplicate rows, unmatchable elements) are outcomes, never
// errors. Nil slices are treated as empty.
func (e *Engine) Reconcile(localDebug bool, elements []ModelElement, rows []ScheduleRow) *MatchResult {
	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)
	defer debug.DebugTiming(localDebug, "reconcile")()

	debug.DebugOutput(localDebug, "Reconciling %d elements against %d schedule rows", len(elements), len(rows))

	idx := NormalizeRows(rows)
	debug.DebugOutput(localDebug, "Normalized rows: %d kept, %d dropped as duplicates",
		len(idx.Rows), len(rows)-len(idx.Rows))

	consumed := make(map[*ScheduleRow]struct{})
	decisions := make([]Decision, 0, len(elements))

	for _, element := range elements {
		gathered := GatherCandidates(element, idx)
		ranked, provenances := e.scorer.RankCandidates(localDebug, element, gathered, idx)
		decisions = append(decisions, e.policy.Decide(localDebug, element, ranked, provenances, consumed))
	}

	result := aggregate(decisions, idx, len(rows))
	e.last = result

	debug.DebugOutput(localDebug, "Run complete: %d matched, %d ambiguous, %d unmatched, rate %.2f%%",
		result.Totals.Matched, result.Totals.Ambiguous, result.Totals.Unmatched, result.Totals.MatchRate*100)

	return result
}

// LastResult returns the most recent result, or nil before the first run.
func (e *Engine) LastResult() *MatchResult {
	return e.last
}

// DecisionFor looks up the decision for an element handle in the last result.
// It never re-runs the algorithm; before the first run it reports not-found.
func (e *Engine) DecisionFor(expressID int64) (*Decision, bool) {
	if e.last == nil {
		return nil, false
	}
	return e.last.DecisionFor(expressID)
}

// HasDecision reports whether the last result holds a decision for the handle.
func (e *Engine) HasDecision(expressID int64) bool {
	_, ok := e.DecisionFor(expressID)
	return ok
}
