package listings

import (
	"context"
	"errors"
	"fmt"

	"listing-merge/core/merge"
	"listing-merge/core/storage"
	"listing-merge/core/tabular"
)

// CheckResult is the preflight outcome for one source.
type CheckResult struct {
	Source  merge.Source `json:"source"`
	Path    string       `json:"path"`
	Header  []string     `json:"header,omitempty"`
	Missing []string     `json:"missing,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// OK reports whether the source can be merged.
func (r CheckResult) OK() bool {
	return r.Error == "" && len(r.Missing) == 0
}

// CheckReport is the preflight outcome for a whole run.
type CheckReport struct {
	Sources []CheckResult `json:"sources"`
	Output  string        `json:"output"`
	// OutputError is set when the output location cannot be written.
	OutputError string `json:"output_error,omitempty"`
}

// OK reports whether every check passed.
func (r CheckReport) OK() bool {
	if r.OutputError != "" {
		return false
	}
	for _, src := range r.Sources {
		if !src.OK() {
			return false
		}
	}
	return true
}

// Check stages the sources and verifies each header carries every column its
// adapter requires after renaming. It reads headers only. The returned error
// is reserved for failures that prevent checking at all.
func (s *Service) Check(ctx context.Context) (*CheckReport, error) {
	paths, err := s.stage(ctx)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{Output: s.cfg.Output.Path}
	for _, src := range s.sources() {
		report.Sources = append(report.Sources, checkSource(src, paths[src.adapter.Source]))
	}

	if loc, remote, err := storage.ParseLocation(s.cfg.Output.Path); err != nil {
		report.OutputError = err.Error()
	} else if remote {
		if s.client == nil {
			report.OutputError = fmt.Sprintf("storage client is required for %s", s.cfg.Output.Path)
		} else if err := storage.CheckBucket(ctx, s.client, loc); err != nil {
			report.OutputError = err.Error()
		}
	}

	return report, nil
}

func checkSource(src source, path string) CheckResult {
	result := CheckResult{Source: src.adapter.Source, Path: path}

	dialect, err := src.cfg.Dialect()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	header, err := tabular.ReadHeader(path, dialect)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Header = header

	if _, err := src.adapter.Project(header); err != nil {
		var schemaErr *merge.SchemaError
		if errors.As(err, &schemaErr) {
			result.Missing = schemaErr.Missing
		} else {
			result.Error = err.Error()
		}
	}
	return result
}
