package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jens-platform/ifc-match/internal/recon"
)

// Element manifest CSV columns (exported by the geometry loader):
// ExpressID,GlobalId,Tag,TypeGlobalId,Type,Name
var elementColumns = struct {
	expressID, globalID, tag, typeGlobalID, typ, name []string
}{
	expressID:    []string{"expressid", "express_id"},
	globalID:     []string{"globalid", "ifcguid", "global_id"},
	tag:          []string{"tag", "elementid", "element_id"},
	typeGlobalID: []string{"typeglobalid", "typeifcguid", "type_global_id"},
	typ:          []string{"type", "ifctype"},
	name:         []string{"name"},
}

// ReadElementManifest reads a geometry-loader element manifest CSV into model
// elements, preserving file order. Lines without a parseable ExpressID are
// skipped and counted; the caller decides whether the skip count is acceptable.
func ReadElementManifest(filename string) ([]recon.ModelElement, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open element manifest %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read element manifest header: %w", err)
	}
	cols := indexHeader(header)

	var elements []recon.ModelElement
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

		expressID, err := strconv.ParseInt(cols.field(record, elementColumns.expressID...), 10, 64)
		if err != nil {
			skipped++
			continue
		}

		elements = append(elements, recon.ModelElement{
			ExpressID:    expressID,
			GlobalID:     cols.field(record, elementColumns.globalID...),
			Tag:          normalizeNumericID(cols.field(record, elementColumns.tag...)),
			TypeGlobalID: cols.field(record, elementColumns.typeGlobalID...),
			Type:         cols.field(record, elementColumns.typ...),
			Name:         cols.field(record, elementColumns.name...),
		})
	}

	return elements, skipped, nil
}
