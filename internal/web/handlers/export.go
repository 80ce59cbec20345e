package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jens-platform/ifc-match/internal/export"
	"github.com/jens-platform/ifc-match/internal/recon"
)

// ExportHandler handles result export requests
type ExportHandler struct {
	Engine *recon.Engine
	Config *Config
}

// ExportRequest represents an export request
type ExportRequest struct {
	OutputDir string `json:"output_dir"`
}

// ExportResponse represents an export response
type ExportResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OutputDir   string `json:"output_dir"`
	RecordCount int    `json:"record_count"`
}

// ExportData writes the full last result out as CSV files.
func (h *ExportHandler) ExportData(w http.ResponseWriter, r *http.Request) {
	if !h.Config.Features.ExportEnabled {
		http.Error(w, "Export feature disabled", http.StatusForbidden)
		return
	}

	result := h.Engine.LastResult()
	if result == nil {
		http.Error(w, "No reconciliation run completed yet", http.StatusNotFound)
		return
	}

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}
	if req.OutputDir == "" {
		req.OutputDir = "export"
	}

	if err := export.NewExporter(result).ExportAll(req.OutputDir); err != nil {
		http.Error(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, ExportResponse{
		Success:     true,
		Message:     "Export complete",
		OutputDir:   req.OutputDir,
		RecordCount: len(result.Decisions),
	})
}
