package recon

// SyntheticGlobalIDPrefix marks global ids that were auto-generated during export
// because the source element had no real identifier. Two unrelated elements can
// share such an id, so it must never be used as a join key.
const SyntheticGlobalIDPrefix = "synthetic-"

// RowIndex holds the deduplicated schedule rows and the three lookup indices
// the candidate gatherer reads. Built once per run by NormalizeRows.
type RowIndex struct {
	Rows []*ScheduleRow // deduplicated, input order preserved

	byGlobalID  map[string][]*ScheduleRow
	byElementID map[string][]*ScheduleRow
	byTypeGUID  map[string][]*ScheduleRow

	ordinals map[*ScheduleRow]int
}

// NormalizeRows deduplicates the raw schedule rows and builds the key indices.
// Duplicate rows (same globalId + elementId + uniqueId) are an expected artefact
// of repeated exports; the first occurrence wins and later ones are dropped
// silently. Keys are indexed only when non-empty, and synthetic global ids are
// excluded from the globalId index.
func NormalizeRows(rows []ScheduleRow) *RowIndex {
	idx := &RowIndex{
		byGlobalID:  make(map[string][]*ScheduleRow),
		byElementID: make(map[string][]*ScheduleRow),
		byTypeGUID:  make(map[string][]*ScheduleRow),
		ordinals:    make(map[*ScheduleRow]int),
	}

	seen := make(map[[3]string]bool, len(rows))
	for i := range rows {
		row := &rows[i]
		key := [3]string{row.GlobalID, row.ElementID, row.UniqueID}
		if seen[key] {
			continue
		}
		seen[key] = true

		idx.ordinals[row] = len(idx.Rows)
		idx.Rows = append(idx.Rows, row)

		if row.GlobalID != "" && !isSyntheticGlobalID(row.GlobalID) {
			idx.byGlobalID[row.GlobalID] = append(idx.byGlobalID[row.GlobalID], row)
		}
		if row.ElementID != "" {
			idx.byElementID[row.ElementID] = append(idx.byElementID[row.ElementID], row)
		}
		if row.TypeGlobalID != "" {
			idx.byTypeGUID[row.TypeGlobalID] = append(idx.byTypeGUID[row.TypeGlobalID], row)
		}
	}

	return idx
}

// Ordinal returns the position of a deduplicated row in input order.
func (idx *RowIndex) Ordinal(row *ScheduleRow) int {
	return idx.ordinals[row]
}

func isSyntheticGlobalID(id string) bool {
	return len(id) >= len(SyntheticGlobalIDPrefix) &&
		id[:len(SyntheticGlobalIDPrefix)] == SyntheticGlobalIDPrefix
}
