package recon

// GatherCandidates collects every schedule row reachable from the element
// through any of its populated keys. Rows reachable via more than one key
// appear once, in first-seen order (globalId hits first, then elementId,
// then type-level GlobalId). An element with no keys yields no candidates.
func GatherCandidates(element ModelElement, idx *RowIndex) []*ScheduleRow {
	var out []*ScheduleRow
	seen := make(map[*ScheduleRow]bool)

	add := func(rows []*ScheduleRow) {
		for _, row := range rows {
			if seen[row] {
				continue
			}
			seen[row] = true
			out = append(out, row)
		}
	}

	if element.GlobalID != "" {
		add(idx.byGlobalID[element.GlobalID])
	}
	if element.Tag != "" {
		add(idx.byElementID[element.Tag])
	}
	if element.TypeGlobalID != "" {
		add(idx.byTypeGUID[element.TypeGlobalID])
	}

	return out
}
