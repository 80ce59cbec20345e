package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jens-platform/ifc-match/internal/recon"
)

// Schedule export columns (Revit schedule export). Header names vary between
// export templates, hence the alternates.
var scheduleColumns = struct {
	globalID, elementID, uniqueID, typeGlobalID, category, name []string
}{
	globalID:     []string{"ifcguid", "globalid", "ifc_guid"},
	elementID:    []string{"elementid", "element_id", "id"},
	uniqueID:     []string{"uniqueid", "unique_id"},
	typeGlobalID: []string{"typeifcguid", "typeglobalid", "type_ifc_guid"},
	category:     []string{"category"},
	name:         []string{"name", "elementname", "family and type"},
}

// ReadSchedule reads a schedule export into rows, dispatching on the file
// extension: .xlsx goes through the spreadsheet reader, anything else is
// treated as CSV.
func ReadSchedule(filename string) ([]recon.ScheduleRow, int, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return ReadScheduleXLSX(filename)
	}
	return ReadScheduleCSV(filename)
}

// ReadScheduleCSV reads a schedule CSV export, preserving file order. Unknown
// columns are carried through on Extra; malformed lines are skipped and
// counted. Duplicate rows are kept here — deduplication is the engine's job.
func ReadScheduleCSV(filename string) ([]recon.ScheduleRow, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open schedule %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read schedule header: %w", err)
	}

	var rows []recon.ScheduleRow
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, mapScheduleRecord(header, record))
	}

	return rows, skipped, nil
}

// mapScheduleRecord maps one raw record onto a ScheduleRow using the header.
func mapScheduleRecord(header, record []string) recon.ScheduleRow {
	cols := indexHeader(header)

	row := recon.ScheduleRow{
		GlobalID:     cols.field(record, scheduleColumns.globalID...),
		ElementID:    normalizeNumericID(cols.field(record, scheduleColumns.elementID...)),
		UniqueID:     cols.field(record, scheduleColumns.uniqueID...),
		TypeGlobalID: cols.field(record, scheduleColumns.typeGlobalID...),
		Category:     cols.field(record, scheduleColumns.category...),
		ElementName:  cols.field(record, scheduleColumns.name...),
	}

	for i, cell := range record {
		if i >= len(header) {
			break
		}
		if cols.known(i, scheduleColumns.globalID...) ||
			cols.known(i, scheduleColumns.elementID...) ||
			cols.known(i, scheduleColumns.uniqueID...) ||
			cols.known(i, scheduleColumns.typeGlobalID...) ||
			cols.known(i, scheduleColumns.category...) ||
			cols.known(i, scheduleColumns.name...) {
			continue
		}
		value := strings.TrimSpace(cell)
		if value == "" {
			continue
		}
		if row.Extra == nil {
			row.Extra = make(map[string]string)
		}
		row.Extra[strings.TrimSpace(header[i])] = value
	}

	return row
}
