package handlers

import (
	"net/http"

	"github.com/jens-platform/ifc-match/internal/recon"
)

// Runner re-runs reconciliation from the server's configured inputs.
type Runner interface {
	Run() (*recon.MatchResult, error)
}

// ReconcileHandler triggers a fresh reconciliation run.
type ReconcileHandler struct {
	Runner Runner
	Config *Config
}

// Reconcile re-reads the configured inputs and recomputes the result.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if !h.Config.Features.ReconcileEnabled {
		http.Error(w, "Reconcile feature disabled", http.StatusForbidden)
		return
	}

	result, err := h.Runner.Run()
	if err != nil {
		http.Error(w, "Reconciliation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"totals":  result.Totals,
	})
}
