package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jens-platform/ifc-match/internal/recon"
)

// displayLimit caps the ambiguous/unmatched lists returned for UI display.
// The export endpoint returns everything.
const displayLimit = 100

// Config carries the feature toggles the handlers need.
type Config struct {
	Features struct {
		ExportEnabled    bool
		ReconcileEnabled bool
	}
}

// ReportHandler serves read-only projections over the last computed result.
type ReportHandler struct {
	Engine *recon.Engine
	Config *Config
}

// GetResult returns the run totals plus truncated decision lists.
func (h *ReportHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, ok := h.lastResult(w)
	if !ok {
		return
	}

	var ambiguous, unmatched []recon.Decision
	for _, d := range result.Decisions {
		switch d.Status {
		case recon.StatusAmbiguous:
			if len(ambiguous) < displayLimit {
				ambiguous = append(ambiguous, d)
			}
		case recon.StatusUnmatched:
			if len(unmatched) < displayLimit {
				unmatched = append(unmatched, d)
			}
		}
	}

	missing := result.MissingInIfc
	if len(missing) > displayLimit {
		missing = missing[:displayLimit]
	}

	writeJSON(w, map[string]interface{}{
		"totals":       result.Totals,
		"ambiguous":    ambiguous,
		"unmatched":    unmatched,
		"missingInIfc": missing,
	})
}

// GetCoverage returns the per-label coverage table sorted by label.
func (h *ReportHandler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	result, ok := h.lastResult(w)
	if !ok {
		return
	}

	type labelled struct {
		Label string `json:"label"`
		*recon.CoverageEntry
	}

	entries := make([]labelled, 0, len(result.Coverage))
	for label, entry := range result.Coverage {
		entries = append(entries, labelled{Label: label, CoverageEntry: entry})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Label < entries[j].Label })

	writeJSON(w, entries)
}

// GetUnmatched returns every unmatched decision with its reason code.
func (h *ReportHandler) GetUnmatched(w http.ResponseWriter, r *http.Request) {
	h.decisionsByStatus(w, recon.StatusUnmatched)
}

// GetAmbiguous returns every ambiguous decision with its retained candidates.
func (h *ReportHandler) GetAmbiguous(w http.ResponseWriter, r *http.Request) {
	h.decisionsByStatus(w, recon.StatusAmbiguous)
}

// GetDecision returns the decision for one element handle.
func (h *ReportHandler) GetDecision(w http.ResponseWriter, r *http.Request) {
	expressID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid element id", http.StatusBadRequest)
		return
	}

	decision, ok := h.Engine.DecisionFor(expressID)
	if !ok {
		http.Error(w, "No decision for element", http.StatusNotFound)
		return
	}

	writeJSON(w, decision)
}

// GetStats returns the run totals only.
func (h *ReportHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	result, ok := h.lastResult(w)
	if !ok {
		return
	}
	writeJSON(w, result.Totals)
}

func (h *ReportHandler) decisionsByStatus(w http.ResponseWriter, status recon.Status) {
	result, ok := h.lastResult(w)
	if !ok {
		return
	}

	decisions := []recon.Decision{}
	for _, d := range result.Decisions {
		if d.Status == status {
			decisions = append(decisions, d)
		}
	}
	writeJSON(w, decisions)
}

func (h *ReportHandler) lastResult(w http.ResponseWriter) (*recon.MatchResult, bool) {
	result := h.Engine.LastResult()
	if result == nil {
		http.Error(w, "No reconciliation run completed yet", http.StatusNotFound)
		return nil, false
	}
	return result, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
	}
}
