package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jens-platform/ifc-match/internal/recon"
)

// ReadScheduleXLSX reads a schedule export from the first sheet of an XLSX
// workbook. Semantics match ReadScheduleCSV: header-driven column mapping,
// unknown columns on Extra, empty lines skipped and counted.
func ReadScheduleXLSX(filename string) ([]recon.ScheduleRow, int, error) {
	workbook, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("workbook %s has no sheets", filename)
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	header := records[0]

	var rows []recon.ScheduleRow
	skipped := 0

	for _, record := range records[1:] {
		if isBlankRecord(record) {
			skipped++
			continue
		}
		rows = append(rows, mapScheduleRecord(header, record))
	}

	return rows, skipped, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
