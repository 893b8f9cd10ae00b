package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/estaudit/estaudit/internal/types"
)

// LoadCSV reads catalog entries from a CSV stream with columns
// code,description,category,unit. A header row is detected by a first cell
// of "code" (case-insensitive) and skipped. Rows missing a code or
// description are skipped rather than failing the whole load; the reference
// catalog is large (~13k rows) and a few dirty rows should not take the
// process down.
func LoadCSV(r io.Reader) ([]types.CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // category/unit columns are optional

	var entries []types.CatalogEntry
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog csv line %d: %w", line+1, err)
		}
		line++

		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "code") {
			continue
		}
		entry := types.CatalogEntry{Code: field(record, 0), Description: field(record, 1)}
		entry.Category = field(record, 2)
		entry.Unit = field(record, 3)
		if entry.Validate() != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadFile builds an index from a catalog CSV file on disk.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	entries, err := LoadCSV(f)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog %s contains no usable entries", path)
	}
	return BuildIndex(entries), nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
