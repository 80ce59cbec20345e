package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadElementManifest(t *testing.T) {
	path := writeTempCSV(t, `ExpressID,GlobalId,Tag,TypeGlobalId,Type,Name
1,2O2Fr$t4X7Zf8NOew3FLKH,354001,1kTvXnbbzCWw8lcMd1dR4o,IfcWallStandardCase,Basic Wall
2,,200.0,,IfcDoor,Single Door
not-a-number,G3,300,,IfcSlab,Floor
3,G4,,,IfcSlab,Floor Slab
`)

	elements, skipped, err := ReadElementManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(elements) != 3 {
		t.Fatalf("read %d elements, want 3", len(elements))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}

	first := elements[0]
	if first.ExpressID != 1 || first.GlobalID != "2O2Fr$t4X7Zf8NOew3FLKH" || first.Tag != "354001" {
		t.Errorf("first element = %+v", first)
	}
	// Spreadsheet float mangling is normalized away.
	if elements[1].Tag != "200" {
		t.Errorf("second element Tag = %v, want 200", elements[1].Tag)
	}
	if elements[2].Tag != "" {
		t.Errorf("third element Tag = %v, want empty", elements[2].Tag)
	}
}

func TestReadScheduleCSV(t *testing.T) {
	path := writeTempCSV(t, `IfcGUID,ElementId,UniqueId,TypeIfcGUID,Category,Name,Fire Rating,Mark
G1,100,u1,T1,Walls,Basic Wall,120,W-01
G2,200.0,u2,,Doors,Single Door,,
`)

	rows, skipped, err := ReadScheduleCSV(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 || skipped != 0 {
		t.Fatalf("read %d rows (%d skipped), want 2 (0)", len(rows), skipped)
	}

	first := rows[0]
	if first.GlobalID != "G1" || first.ElementID != "100" || first.UniqueID != "u1" ||
		first.TypeGlobalID != "T1" || first.Category != "Walls" || first.ElementName != "Basic Wall" {
		t.Errorf("first row = %+v", first)
	}
	if first.Extra["Fire Rating"] != "120" || first.Extra["Mark"] != "W-01" {
		t.Errorf("first row Extra = %v", first.Extra)
	}

	if rows[1].ElementID != "200" {
		t.Errorf("second row ElementID = %v, want 200", rows[1].ElementID)
	}
	if rows[1].Extra != nil {
		t.Errorf("second row Extra = %v, want nil", rows[1].Extra)
	}
}

func TestReadScheduleDispatchesOnExtension(t *testing.T) {
	path := writeTempCSV(t, `IfcGUID,ElementId,UniqueId,TypeIfcGUID,Category,Name
G1,100,u1,,Walls,Wall
`)

	rows, _, err := ReadSchedule(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("read %d rows, want 1", len(rows))
	}
}

func TestNormalizeNumericID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"200", "200"},
		{"200.0", "200"},
		{" 200 ", "200"},
		{"200.5", "200.5"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeNumericID(tt.input); got != tt.want {
			t.Errorf("normalizeNumericID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
