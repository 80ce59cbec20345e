package ingest

import (
	"strconv"
	"strings"
)

// headerIndex maps lower-cased column headers to their position.
type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// field returns the trimmed cell under the first matching header name.
func (h headerIndex) field(record []string, names ...string) string {
	for _, name := range names {
		if i, ok := h[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

// known reports whether a header position belongs to one of the mapped columns.
func (h headerIndex) known(pos int, names ...string) bool {
	for _, name := range names {
		if i, ok := h[name]; ok && i == pos {
			return true
		}
	}
	return false
}

// normalizeNumericID canonicalizes numeric identifiers that spreadsheets tend
// to mangle: "200.0" and " 200 " both become "200". Non-numeric values are
// returned trimmed but otherwise untouched.
func normalizeNumericID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return trimmed
}
