package recon

// ModelElement is one building element from the loaded IFC model. Supplied by the
// geometry loader; immutable for the duration of a reconciliation run.
type ModelElement struct {
	ExpressID    int64  // numeric element handle, unique per loaded model
	GlobalID     string // IFC GlobalId, "" when absent
	Tag          string // Revit element id carried on the IFC Tag attribute, "" when absent
	TypeGlobalID string // type-level GlobalId from the element's type property set, "" when absent
	Type         string // IFC type label, e.g. "IfcWallStandardCase"
	Name         string // display name
}

// ScheduleRow is one record from the externally supplied schedule export.
// Extra carries pass-through columns the engine never reads.
type ScheduleRow struct {
	GlobalID     string
	ElementID    string // canonical decimal string, ingest normalizes "200.0" -> "200"
	UniqueID     string
	TypeGlobalID string
	Category     string
	ElementName  string
	Extra        map[string]string
}

// Signal names, ordered strongest to weakest.
const (
	SignalGlobalID  = "globalId"
	SignalElementID = "elementId"
	SignalTypeGUID  = "typeIfcGuid"
	SignalCategory  = "category"
	SignalName      = "name"
)

// Provenance classifies the strongest exact-key signal behind a match.
const (
	ProvenanceGlobalID  = "globalId"
	ProvenanceElementID = "elementId"
	ProvenanceTypeGUID  = "typeIfcGuid"
	ProvenanceMixed     = "mixed"
)

// Candidate pairs an element with one reachable schedule row plus its score and
// the signals that contributed.
type Candidate struct {
	Row     *ScheduleRow `json:"row"`
	Score   float64      `json:"score"`
	Signals []string     `json:"signals"`

	ordinal int // row position in the deduplicated input, used as a stable sort tie-break
}

// Status is the outcome bucket of a decision.
type Status string

const (
	StatusMatched   Status = "matched"
	StatusAmbiguous Status = "ambiguous"
	StatusUnmatched Status = "unmatched"
)

// Reason is a diagnostic code attached to ambiguous and unmatched decisions.
// These codes are part of the stable output contract.
type Reason string

const (
	ReasonMissingGlobalIDAndTag Reason = "missing_globalid_and_tag"
	ReasonMissingGlobalID       Reason = "missing_globalid"
	ReasonMissingTag            Reason = "missing_tag"
	ReasonNoCandidate           Reason = "no_candidate"
	ReasonDuplicateElementID    Reason = "duplicate_element_id"
	ReasonAmbiguousScoreBand    Reason = "ambiguous_score_band"
)

// Reasons enumerates every diagnostic code for reporting and testing.
func Reasons() []Reason {
	return []Reason{
		ReasonMissingGlobalIDAndTag,
		ReasonMissingGlobalID,
		ReasonMissingTag,
		ReasonNoCandidate,
		ReasonDuplicateElementID,
		ReasonAmbiguousScoreBand,
	}
}

// Decision is the durable outcome for one model element. Exactly one of the
// three statuses applies; Row/Score/Provenance are set on matched, Candidates
// on ambiguous (up to MaxAmbiguous), Reason on ambiguous and unmatched.
type Decision struct {
	Element    ModelElement `json:"element"`
	Status     Status       `json:"status"`
	Row        *ScheduleRow `json:"row,omitempty"`
	Score      float64      `json:"score,omitempty"`
	Provenance string       `json:"provenance,omitempty"`
	Candidates []Candidate  `json:"candidates,omitempty"`
	Reason     Reason       `json:"reason,omitempty"`
}

// CoverageEntry counts elements and rows sharing one category/type label.
// The two sources do not share a taxonomy; entries are merged by string
// equality only, which is an approximation kept for compatibility.
type CoverageEntry struct {
	IfcCount     int `json:"ifcCount"`
	RevitCount   int `json:"revitCount"`
	MatchedCount int `json:"matchedCount"`
}

// Totals summarizes one reconciliation run.
type Totals struct {
	Elements           int     `json:"elements"`
	Rows               int     `json:"rows"`
	Matched            int     `json:"matched"`
	MatchedByGlobalID  int     `json:"matchedByGlobalId"`
	MatchedByElementID int     `json:"matchedByElementId"`
	MatchedByTypeGUID  int     `json:"matchedByTypeIfcGuid"`
	MatchedMixed       int     `json:"matchedMixed"`
	Ambiguous          int     `json:"ambiguous"`
	Unmatched          int     `json:"unmatched"`
	MatchRate          float64 `json:"matchRate"`
}

// MatchResult is the engine's sole output: totals, per-element decisions,
// never-consumed schedule rows, and the coverage table.
type MatchResult struct {
	Totals       Totals                    `json:"totals"`
	Decisions    []Decision                `json:"decisions"`
	MissingInIfc []*ScheduleRow            `json:"missingInIfc"`
	Coverage     map[string]*CoverageEntry `json:"coverage"`

	byExpressID map[int64]*Decision
}

// DecisionFor returns the decision for an element handle, if one exists.
func (r *MatchResult) DecisionFor(expressID int64) (*Decision, bool) {
	d, ok := r.byExpressID[expressID]
	return d, ok
}

// SignalWeights holds the fixed additive weights for each match signal.
type SignalWeights struct {
	GlobalID  float64 // exact IFC GlobalId match
	ElementID float64 // exact Tag / element id match
	TypeGUID  float64 // exact type-level GlobalId match
	Category  float64 // type label / category containment
	Name      float64 // display name containment
}

// DefaultWeights returns the production signal weights.
func DefaultWeights() *SignalWeights {
	return &SignalWeights{
		GlobalID:  1.0,
		ElementID: 0.85,
		TypeGUID:  0.55,
		Category:  0.15,
		Name:      0.1,
	}
}

// MatchTiers defines the decision thresholds.
type MatchTiers struct {
	MinScore       float64 // below this the element is unmatched
	ConfidentScore float64 // below this (but above MinScore) the element is ambiguous
	MaxAmbiguous   int     // candidates retained for operator review
}

// DefaultTiers returns the production decision thresholds.
func DefaultTiers() *MatchTiers {
	return &MatchTiers{
		MinScore:       0.65,
		ConfidentScore: 0.85,
		MaxAmbiguous:   5,
	}
}
