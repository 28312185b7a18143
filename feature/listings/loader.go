package listings

import (
	"context"

	"listing-merge/core/merge"
	"listing-merge/core/tabular"
)

// FileLoader reads one source from a local delimited file.
type FileLoader struct {
	Path    string
	Dialect tabular.Dialect
}

// Load implements merge.Loader.
func (l FileLoader) Load(ctx context.Context) (*merge.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := tabular.ReadFile(l.Path, l.Dialect)
	if err != nil {
		return nil, err
	}
	return &merge.Table{Header: t.Header, Rows: t.Rows}, nil
}
