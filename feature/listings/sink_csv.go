package listings

import (
	"time"

	"listing-merge/core/merge"
	"listing-merge/core/tabular"
	"listing-merge/core/utils"
)

const (
	// ColumnHashKey and ColumnLoadTimestamp follow the reconciled fields in the output.
	ColumnHashKey       = "hash_key"
	ColumnLoadTimestamp = "load_timestamp"
)

// OutputHeader returns the merged dataset columns for the given fields.
func OutputHeader(fields []merge.Field) []string {
	header := make([]string, 0, len(fields)+2)
	for _, f := range fields {
		header = append(header, string(f))
	}
	return append(header, ColumnHashKey, ColumnLoadTimestamp)
}

// FormatRow renders one record in OutputHeader order. Null fields are empty cells.
func FormatRow(fields []merge.Field, rec merge.UnifiedRecord) []string {
	row := make([]string, 0, len(fields)+2)
	for _, f := range fields {
		row = append(row, utils.Deref(rec.Get(f)))
	}
	return append(row, rec.HashKey, rec.LoadTimestamp.UTC().Format(time.RFC3339Nano))
}

// WriteCSV writes the merged dataset to a local path, replacing it atomically.
func WriteCSV(path string, fields []merge.Field, records []merge.UnifiedRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, FormatRow(fields, rec))
	}
	return tabular.WriteFile(path, OutputHeader(fields), rows)
}
