package merge

import (
	"context"
	"fmt"
	"strings"

	"listing-merge/core/utils"
)

// Loader supplies the raw table of one source.
type Loader interface {
	// Load reads the whole source. Reads are not incremental: the join needs
	// every stream fully materialized.
	Load(ctx context.Context) (*Table, error)
}

// Input binds a source adapter to the loader reading its data.
type Input struct {
	Adapter SourceAdapter
	Loader  Loader
}

// SourceAdapter declares how one source's raw schema maps onto CanonicalRecord.
type SourceAdapter struct {
	// Source is the provenance tag applied to every record.
	Source Source

	// Rename maps raw column names to canonical names.
	// Columns absent from the map keep their raw name.
	Rename map[string]string

	// Columns lists the canonical columns retained, in order. Others are dropped.
	Columns []Field
}

// Project resolves each retained canonical column to its index in header.
// A retained column that is not present after renaming yields a SchemaError.
func (a SourceAdapter) Project(header []string) (map[Field]int, error) {
	renamed := make(map[string]int, len(header))
	explicit := make(map[string]bool, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if target, ok := a.Rename[name]; ok {
			// an explicit rename wins over a raw column of the same name
			if !explicit[target] {
				renamed[target] = i
				explicit[target] = true
			}
			continue
		}
		if _, seen := renamed[name]; !seen {
			renamed[name] = i
		}
	}

	index := make(map[Field]int, len(a.Columns))
	var missing []string
	for _, col := range a.Columns {
		i, ok := renamed[string(col)]
		if !ok {
			missing = append(missing, string(col))
			continue
		}
		index[col] = i
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: a.Source, Missing: missing}
	}
	return index, nil
}

// Adapt projects every row of t onto the canonical schema and computes the
// MatchKey and HashKey of each record as the final step.
func (a SourceAdapter) Adapt(t *Table, hasher Hasher) ([]CanonicalRecord, error) {
	if t == nil {
		return nil, fmt.Errorf("%s: no table loaded", a.Source)
	}
	index, err := a.Project(t.Header)
	if err != nil {
		return nil, err
	}

	records := make([]CanonicalRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		fields := make(map[Field]*string, len(a.Columns))
		for _, col := range a.Columns {
			i := index[col]
			// short rows leave trailing columns null
			if i < len(row) {
				fields[col] = utils.NilIfBlank(row[i])
			} else {
				fields[col] = nil
			}
		}

		rec := CanonicalRecord{Source: a.Source, Fields: fields}
		rec.MatchKey = MatchKey(rec.Get(FieldCompanyName), rec.Get(FieldCountryName), rec.Get(FieldCity))
		rec.HashKey = hasher.Sum(rec.MatchKey)
		records = append(records, rec)
	}
	return records, nil
}
