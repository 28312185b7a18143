package merge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine runs the adapt, join and reconcile pipeline.
type Engine struct {
	opts       Options
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewEngine creates an engine for one run.
func NewEngine(opts Options, rules []FieldRule, logger *zap.Logger) (*Engine, error) {
	if opts.Hasher == nil {
		return nil, errors.New("merge options: hasher is required")
	}
	if len(rules) == 0 {
		return nil, errors.New("merge options: at least one field rule is required")
	}
	if opts.Partitions <= 0 {
		opts.Partitions = 1
	}
	if opts.DuplicatePolicy == "" {
		opts.DuplicatePolicy = DuplicatesCrossProduct
	}
	if opts.LoadTimestamp.IsZero() {
		opts.LoadTimestamp = time.Now().UTC()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		opts:       opts,
		reconciler: NewReconciler(rules),
		logger:     logger,
	}, nil
}

// Options returns the run options in effect.
func (e *Engine) Options() Options {
	return e.opts
}

// Fields returns the output fields in rule order.
func (e *Engine) Fields() []Field {
	return e.reconciler.Fields()
}

// Run loads and adapts every input concurrently, joins the streams and
// reconciles each joined row. Exactly one input per source is required.
// Any load or schema failure aborts the whole run.
func (e *Engine) Run(ctx context.Context, inputs ...Input) (*Result, error) {
	if err := validateInputs(inputs); err != nil {
		return nil, err
	}

	streams, err := e.buildStreams(ctx, inputs)
	if err != nil {
		return nil, err
	}

	result := &Result{Sources: make(map[Source]SourceStats, len(streams))}
	for src, recs := range streams {
		st := streamStats(recs)
		result.Sources[src] = st
		e.logger.Debug("Adapted source",
			zap.String("source", string(src)),
			zap.Int("rows", st.Rows),
			zap.Int("keys", st.Keys),
		)
		if st.EmptyKeys > 0 {
			// these rows still join with each other on the empty key
			e.logger.Warn("Rows with an empty match key",
				zap.String("source", string(src)),
				zap.Int("count", st.EmptyKeys),
			)
		}
	}

	groups, stats, err := Join(ctx, streams, e.opts.Partitions, e.opts.DuplicatePolicy)
	if err != nil {
		return nil, fmt.Errorf("join failed: %w", err)
	}
	result.Join = stats

	if stats.Collisions > 0 {
		e.logger.Warn("Hash key collisions detected; unrelated entities may have merged",
			zap.String("hash_algorithm", e.opts.Hasher.Name()),
			zap.Int("collisions", stats.Collisions),
		)
	}
	if stats.FanOut > 0 {
		e.logger.Warn("Duplicate keys expanded the join",
			zap.Int("groups", stats.Groups),
			zap.Int("rows", stats.Rows),
			zap.Int("fan_out", stats.FanOut),
		)
	}

	records := make([]UnifiedRecord, 0, stats.Rows)
	for _, grp := range groups {
		for _, row := range grp.Rows() {
			rec := e.reconciler.Reconcile(grp.HashKey, row)
			rec.LoadTimestamp = e.opts.LoadTimestamp
			rec.RunID = e.opts.RunID
			records = append(records, rec)
		}
	}
	result.Records = records

	return result, nil
}

// buildStreams loads and adapts the inputs concurrently, one goroutine each.
func (e *Engine) buildStreams(ctx context.Context, inputs []Input) (map[Source][]CanonicalRecord, error) {
	adapted := make([][]CanonicalRecord, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			table, err := in.Loader.Load(gCtx)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", in.Adapter.Source, err)
			}
			recs, err := in.Adapter.Adapt(table, e.opts.Hasher)
			if err != nil {
				return fmt.Errorf("failed to adapt %s: %w", in.Adapter.Source, err)
			}
			adapted[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	streams := make(map[Source][]CanonicalRecord, len(inputs))
	for i, in := range inputs {
		streams[in.Adapter.Source] = adapted[i]
	}
	return streams, nil
}

func validateInputs(inputs []Input) error {
	seen := make(map[Source]bool, len(inputs))
	for _, in := range inputs {
		if in.Loader == nil {
			return fmt.Errorf("input %s has no loader", in.Adapter.Source)
		}
		if seen[in.Adapter.Source] {
			return fmt.Errorf("duplicate input for %s", in.Adapter.Source)
		}
		seen[in.Adapter.Source] = true
	}
	for _, src := range Sources {
		if !seen[src] {
			return fmt.Errorf("missing input for %s", src)
		}
	}
	if len(inputs) != len(Sources) {
		return fmt.Errorf("expected %d inputs, got %d", len(Sources), len(inputs))
	}
	return nil
}

func streamStats(recs []CanonicalRecord) SourceStats {
	keys := make(map[string]struct{}, len(recs))
	stats := SourceStats{Rows: len(recs)}
	for _, rec := range recs {
		keys[rec.HashKey] = struct{}{}
		if rec.MatchKey == "" {
			stats.EmptyKeys++
		}
	}
	stats.Keys = len(keys)
	return stats
}
