package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jens-platform/ifc-match/internal/recon"
)

// Exporter writes a full MatchResult out as delimited files for downstream
// review tools.
type Exporter struct {
	result *recon.MatchResult
}

// NewExporter creates an exporter over a computed result.
func NewExporter(result *recon.MatchResult) *Exporter {
	return &Exporter{result: result}
}

// ExportAll writes the decisions, orphaned-rows, and coverage CSVs into the
// output directory.
func (e *Exporter) ExportAll(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := e.ExportDecisions(filepath.Join(outputDir, "decisions.csv")); err != nil {
		return err
	}
	if err := e.ExportMissingRows(filepath.Join(outputDir, "missing_in_ifc.csv")); err != nil {
		return err
	}
	if err := e.ExportCoverage(filepath.Join(outputDir, "coverage.csv")); err != nil {
		return err
	}

	fmt.Printf("Exported %d decisions, %d orphaned rows, %d coverage entries to %s\n",
		len(e.result.Decisions), len(e.result.MissingInIfc), len(e.result.Coverage), outputDir)
	return nil
}

// ExportDecisions writes one line per model element with its outcome.
func (e *Exporter) ExportDecisions(filename string) error {
	return e.writeCSV(filename, func(w *csv.Writer) error {
		header := []string{
			"Express_ID", "Global_ID", "Tag", "Type", "Name",
			"Status", "Score", "Provenance", "Reason",
			"Row_Global_ID", "Row_Element_ID", "Row_Unique_ID", "Row_Category",
		}
		if err := w.Write(header); err != nil {
			return err
		}

		for i := range e.result.Decisions {
			d := &e.result.Decisions[i]
			record := []string{
				strconv.FormatInt(d.Element.ExpressID, 10),
				d.Element.GlobalID,
				d.Element.Tag,
				d.Element.Type,
				d.Element.Name,
				string(d.Status),
				"", "", string(d.Reason),
				"", "", "", "",
			}
			if d.Status == recon.StatusMatched {
				record[6] = strconv.FormatFloat(d.Score, 'f', 4, 64)
				record[7] = d.Provenance
				record[9] = d.Row.GlobalID
				record[10] = d.Row.ElementID
				record[11] = d.Row.UniqueID
				record[12] = d.Row.Category
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportMissingRows writes the schedule rows no element claimed.
func (e *Exporter) ExportMissingRows(filename string) error {
	return e.writeCSV(filename, func(w *csv.Writer) error {
		header := []string{"Global_ID", "Element_ID", "Unique_ID", "Type_Global_ID", "Category", "Name"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, row := range e.result.MissingInIfc {
			record := []string{row.GlobalID, row.ElementID, row.UniqueID, row.TypeGlobalID, row.Category, row.ElementName}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportCoverage writes the per-label coverage table, sorted by label for
// stable output.
func (e *Exporter) ExportCoverage(filename string) error {
	return e.writeCSV(filename, func(w *csv.Writer) error {
		header := []string{"Label", "IFC_Count", "Revit_Count", "Matched_Count"}
		if err := w.Write(header); err != nil {
			return err
		}

		labels := make([]string, 0, len(e.result.Coverage))
		for label := range e.result.Coverage {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for _, label := range labels {
			entry := e.result.Coverage[label]
			record := []string{
				label,
				strconv.Itoa(entry.IfcCount),
				strconv.Itoa(entry.RevitCount),
				strconv.Itoa(entry.MatchedCount),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintSummary prints run totals the way the CLI reports them.
func (e *Exporter) PrintSummary() {
	t := e.result.Totals
	fmt.Printf("\n=== Reconciliation Results ===\n")
	fmt.Printf("Elements: %d\n", t.Elements)
	fmt.Printf("Schedule Rows: %d\n", t.Rows)
	fmt.Printf("Matched: %d (globalId: %d, elementId: %d, typeIfcGuid: %d, mixed: %d)\n",
		t.Matched, t.MatchedByGlobalID, t.MatchedByElementID, t.MatchedByTypeGUID, t.MatchedMixed)
	fmt.Printf("Ambiguous: %d\n", t.Ambiguous)
	fmt.Printf("Unmatched: %d\n", t.Unmatched)
	fmt.Printf("Missing in IFC: %d\n", len(e.result.MissingInIfc))
	fmt.Printf("Match Rate: %.2f%%\n", t.MatchRate*100)
}

func (e *Exporter) writeCSV(filename string, write func(*csv.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	w.Flush()
	return w.Error()
}
