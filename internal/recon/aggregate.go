package recon

// aggregate builds the MatchResult from the accumulated per-element decisions
// plus the untouched input collections.
// rawRows is the row count before deduplication, so totals reflect the input
// file rather than the index.
func aggregate(decisions []Decision, idx *RowIndex, rawRows int) *MatchResult {
	result := &MatchResult{
		Decisions:   decisions,
		Coverage:    make(map[string]*CoverageEntry),
		byExpressID: make(map[int64]*Decision, len(decisions)),
	}

	result.Totals.Elements = len(decisions)
	result.Totals.Rows = rawRows

	winners := make(map[*ScheduleRow]bool)

	for i := range decisions {
		d := &decisions[i]
		result.byExpressID[d.Element.ExpressID] = d

		switch d.Status {
		case StatusMatched:
			result.Totals.Matched++
			winners[d.Row] = true
			switch d.Provenance {
			case ProvenanceGlobalID:
				result.Totals.MatchedByGlobalID++
			case ProvenanceElementID:
				result.Totals.MatchedByElementID++
			case ProvenanceTypeGUID:
				result.Totals.MatchedByTypeGUID++
			default:
				result.Totals.MatchedMixed++
			}
		case StatusAmbiguous:
			result.Totals.Ambiguous++
		case StatusUnmatched:
			result.Totals.Unmatched++
		}
	}

	if result.Totals.Elements > 0 {
		result.Totals.MatchRate = float64(result.Totals.Matched) / float64(result.Totals.Elements)
	}

	// Schedule rows no element claimed, in input order.
	for _, row := range idx.Rows {
		if !winners[row] {
			result.MissingInIfc = append(result.MissingInIfc, row)
		}
	}

	// Coverage: element types first, then row categories. Labels from the two
	// sources are merged by string equality only.
	for i := range decisions {
		d := &decisions[i]
		entry := coverageEntry(result.Coverage, d.Element.Type)
		entry.IfcCount++
		if d.Status == StatusMatched {
			entry.MatchedCount++
		}
	}
	for _, row := range idx.Rows {
		coverageEntry(result.Coverage, row.Category).RevitCount++
	}

	return result
}

func coverageEntry(coverage map[string]*CoverageEntry, label string) *CoverageEntry {
	entry, ok := coverage[label]
	if !ok {
		entry = &CoverageEntry{}
		coverage[label] = entry
	}
	return entry
}
