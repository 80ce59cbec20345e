package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jens-platform/ifc-match/internal/recon"
)

// Run identifies one persisted reconciliation run.
type Run struct {
	RunID     uuid.UUID
	Label     string
	StartedAt time.Time
}

// RunStore persists reconciliation runs and their per-element decisions.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a run store over an open connection.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// CreateRun inserts a recon_run row and returns its identity.
func (s *RunStore) CreateRun(label, notes string) (*Run, error) {
	run := &Run{
		RunID:     uuid.New(),
		Label:     label,
		StartedAt: time.Now(),
	}

	_, err := s.db.Exec(`
		INSERT INTO recon_run (run_id, run_label, notes, started_at)
		VALUES ($1, $2, $3, $4)
	`, run.RunID, run.Label, notes, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create recon run: %w", err)
	}

	return run, nil
}

// SaveResult writes every decision of a result under the run in one
// transaction. Matched rows store the winning schedule row keys; ambiguous
// and unmatched rows store the reason code.
func (s *RunStore) SaveResult(run *Run, result *recon.MatchResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO recon_decision (
			run_id, express_id, status, score, provenance, reason,
			row_global_id, row_element_id, row_unique_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare decision insert: %w", err)
	}
	defer stmt.Close()

	for i := range result.Decisions {
		d := &result.Decisions[i]

		var score sql.NullFloat64
		var provenance, reason, rowGlobalID, rowElementID, rowUniqueID sql.NullString

		switch d.Status {
		case recon.StatusMatched:
			score = sql.NullFloat64{Float64: d.Score, Valid: true}
			provenance = sql.NullString{String: d.Provenance, Valid: true}
			rowGlobalID = sql.NullString{String: d.Row.GlobalID, Valid: true}
			rowElementID = sql.NullString{String: d.Row.ElementID, Valid: true}
			rowUniqueID = sql.NullString{String: d.Row.UniqueID, Valid: true}
		default:
			reason = sql.NullString{String: string(d.Reason), Valid: true}
		}

		if _, err := stmt.Exec(run.RunID, d.Element.ExpressID, string(d.Status),
			score, provenance, reason, rowGlobalID, rowElementID, rowUniqueID); err != nil {
			return fmt.Errorf("failed to save decision for element %d: %w", d.Element.ExpressID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit decisions: %w", err)
	}
	return nil
}

// CompleteRun stamps the run with its final totals.
func (s *RunStore) CompleteRun(run *Run, totals recon.Totals) error {
	_, err := s.db.Exec(`
		UPDATE recon_run
		SET completed_at = $2, elements = $3, rows_total = $4,
		    matched = $5, ambiguous = $6, unmatched = $7, match_rate = $8
		WHERE run_id = $1
	`, run.RunID, time.Now(), totals.Elements, totals.Rows,
		totals.Matched, totals.Ambiguous, totals.Unmatched, totals.MatchRate)
	if err != nil {
		return fmt.Errorf("failed to complete recon run: %w", err)
	}
	return nil
}
