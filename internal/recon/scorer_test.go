package recon

import (
	"math"
	"reflect"
	"testing"
)

func TestScoreCandidate(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name           string
		element        ModelElement
		row            ScheduleRow
		wantScore      float64
		wantSignals    []string
		wantProvenance string
	}{
		{
			name:           "global id only",
			element:        ModelElement{GlobalID: "G1"},
			row:            ScheduleRow{GlobalID: "G1"},
			wantScore:      1.0,
			wantSignals:    []string{SignalGlobalID},
			wantProvenance: ProvenanceGlobalID,
		},
		{
			name:           "element id only",
			element:        ModelElement{Tag: "200"},
			row:            ScheduleRow{ElementID: "200"},
			wantScore:      0.85,
			wantSignals:    []string{SignalElementID},
			wantProvenance: ProvenanceElementID,
		},
		{
			name:           "type guid only",
			element:        ModelElement{TypeGlobalID: "T1"},
			row:            ScheduleRow{TypeGlobalID: "T1"},
			wantScore:      0.55,
			wantSignals:    []string{SignalTypeGUID},
			wantProvenance: ProvenanceTypeGUID,
		},
		{
			name:           "global id outranks element id for provenance",
			element:        ModelElement{GlobalID: "G1", Tag: "200"},
			row:            ScheduleRow{GlobalID: "G1", ElementID: "200"},
			wantScore:      1.85,
			wantSignals:    []string{SignalGlobalID, SignalElementID},
			wantProvenance: ProvenanceGlobalID,
		},
		{
			name:           "all signals additive",
			element:        ModelElement{GlobalID: "G1", Tag: "200", TypeGlobalID: "T1", Type: "IfcWall", Name: "Basic Wall"},
			row:            ScheduleRow{GlobalID: "G1", ElementID: "200", TypeGlobalID: "T1", Category: "Wall", ElementName: "Basic Wall 200mm"},
			wantScore:      2.65,
			wantSignals:    []string{SignalGlobalID, SignalElementID, SignalTypeGUID, SignalCategory, SignalName},
			wantProvenance: ProvenanceGlobalID,
		},
		{
			name:           "weak signals alone are mixed",
			element:        ModelElement{Type: "IfcDoor", Name: "Single Door"},
			row:            ScheduleRow{Category: "Doors and IfcDoor", ElementName: "Door"},
			wantScore:      0.25,
			wantSignals:    []string{SignalCategory, SignalName},
			wantProvenance: ProvenanceMixed,
		},
		{
			name:           "empty element fields never fire",
			element:        ModelElement{},
			row:            ScheduleRow{GlobalID: "", ElementID: "", Category: "Walls"},
			wantScore:      0,
			wantSignals:    nil,
			wantProvenance: ProvenanceMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, provenance := scorer.ScoreCandidate(tt.element, &tt.row)

			if math.Abs(cand.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %v, want %v", cand.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(cand.Signals, tt.wantSignals) {
				t.Errorf("Signals = %v, want %v", cand.Signals, tt.wantSignals)
			}
			if provenance != tt.wantProvenance {
				t.Errorf("provenance = %v, want %v", provenance, tt.wantProvenance)
			}
		})
	}
}

func TestContainsEitherWay(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"IfcWall", "wall", true},
		{"Wall", "IFCWALL", true},
		{"IfcWall", "Door", false},
		{"", "Wall", false},
		{"Wall", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := containsEitherWay(tt.a, tt.b); got != tt.want {
			t.Errorf("containsEitherWay(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRankCandidatesOrdering(t *testing.T) {
	scorer := NewScorer()

	rows := []ScheduleRow{
		{ElementID: "100", UniqueID: "u1"},               // 0.85
		{GlobalID: "G1", ElementID: "100", UniqueID: "u2"}, // 1.85
		{ElementID: "100", UniqueID: "u3"},               // 0.85, ties with u1
	}
	idx := NormalizeRows(rows)
	element := ModelElement{ExpressID: 1, GlobalID: "G1", Tag: "100"}

	ranked, provenances := scorer.RankCandidates(false, element, GatherCandidates(element, idx), idx)

	if len(ranked) != 3 {
		t.Fatalf("ranked %d candidates, want 3", len(ranked))
	}
	if ranked[0].Row.UniqueID != "u2" {
		t.Errorf("top candidate = %v, want u2", ranked[0].Row.UniqueID)
	}
	// Equal scores keep row input order.
	if ranked[1].Row.UniqueID != "u1" || ranked[2].Row.UniqueID != "u3" {
		t.Errorf("tied candidates ordered %v, %v, want u1, u3",
			ranked[1].Row.UniqueID, ranked[2].Row.UniqueID)
	}
	if provenances[ranked[0].Row] != ProvenanceGlobalID {
		t.Errorf("top provenance = %v, want globalId", provenances[ranked[0].Row])
	}
}
