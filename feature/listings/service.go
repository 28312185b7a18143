package listings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"listing-merge/core/archive"
	"listing-merge/core/config"
	"listing-merge/core/logger"
	"listing-merge/core/merge"
	"listing-merge/core/storage"
	"listing-merge/core/tabular"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const csvContentType = "text/csv"

// Service runs merges and preflight checks for the configured sources.
type Service struct {
	cfg    *config.Config
	client storage.Client
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new listings service.
// client is only used for s3:// locations and db only when the database sink is enabled; either may be nil.
func NewService(cfg *config.Config, client storage.Client, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		client: client,
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Report summarizes one merge run.
type Report struct {
	RunID         string                             `json:"run_id"`
	Output        string                             `json:"output"`
	Records       int                                `json:"records"`
	DatabaseRows  int                                `json:"database_rows"`
	LoadTimestamp time.Time                          `json:"load_timestamp"`
	Sources       map[merge.Source]merge.SourceStats `json:"sources"`
	Join          merge.JoinStats                    `json:"join"`
	Duration      time.Duration                      `json:"duration"`
}

// source pairs an adapter with its file settings.
type source struct {
	adapter merge.SourceAdapter
	cfg     tabular.Config
}

func (s *Service) sources() []source {
	return []source{
		{adapter: SocialAdapter(), cfg: s.cfg.Input.Social},
		{adapter: SearchAdapter(), cfg: s.cfg.Input.Search},
		{adapter: WebsiteAdapter(), cfg: s.cfg.Input.Website},
	}
}

// Merge reads the three sources, joins and reconciles them, and writes the
// unified dataset to the database sink (when enabled) and the output location.
// Nothing is written unless every source loads and joins cleanly.
func (s *Service) Merge(ctx context.Context) (*Report, error) {
	start := s.now()
	runID := uuid.NewString()
	log := logger.WithRun(s.logger, runID)

	opts, err := s.cfg.Merge.Options(runID, start.UTC())
	if err != nil {
		return nil, fmt.Errorf("invalid merge configuration: %w", err)
	}

	inputs, err := s.inputs(ctx)
	if err != nil {
		return nil, err
	}

	engine, err := merge.NewEngine(opts, Rules(), log)
	if err != nil {
		return nil, err
	}

	log.Info("Merging sources",
		zap.String("hash", opts.Hasher.Name()),
		zap.Int("partitions", opts.Partitions),
		zap.String("duplicates", string(opts.DuplicatePolicy)),
	)

	result, err := engine.Run(ctx, inputs...)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:         runID,
		Output:        s.cfg.Output.Path,
		Records:       len(result.Records),
		LoadTimestamp: opts.LoadTimestamp,
		Sources:       result.Sources,
		Join:          result.Join,
	}

	writeOutput := func() error {
		return s.writeOutput(ctx, engine.Fields(), result.Records)
	}

	if s.cfg.Database.Enabled {
		sink := NewDBSink(s.db, s.cfg.Database.BatchSize)
		if err := sink.Prepare(ctx); err != nil {
			return nil, err
		}
		// The output is written before the rows commit so a failed write leaves neither.
		rows, err := sink.Write(ctx, result.Records, writeOutput)
		if err != nil {
			return nil, err
		}
		report.DatabaseRows = rows
	} else if err := writeOutput(); err != nil {
		return nil, err
	}

	report.Duration = s.now().Sub(start)
	log.Info("Merge complete",
		zap.Int("records", report.Records),
		zap.Int("database_rows", report.DatabaseRows),
		zap.String("output", report.Output),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// inputs stages every source locally and binds it to its adapter.
func (s *Service) inputs(ctx context.Context) ([]merge.Input, error) {
	paths, err := s.stage(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]merge.Input, 0, len(paths))
	for _, src := range s.sources() {
		dialect, err := src.cfg.Dialect()
		if err != nil {
			return nil, fmt.Errorf("invalid %s settings: %w", src.adapter.Source, err)
		}
		inputs = append(inputs, merge.Input{
			Adapter: src.adapter,
			Loader:  FileLoader{Path: paths[src.adapter.Source], Dialect: dialect},
		})
	}
	return inputs, nil
}

// stage extracts the archive when configured and resolves every source to a
// local file, downloading s3:// locations into the extract directory.
// Relative paths resolve against the extract directory.
func (s *Service) stage(ctx context.Context) (map[merge.Source]string, error) {
	dir := s.cfg.Input.ExtractDir

	if s.cfg.Input.Archive != "" {
		tmpDir, err := os.MkdirTemp("", "listing-merge-archive-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create staging directory: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		archivePath, err := s.fetch(ctx, s.cfg.Input.Archive, tmpDir)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch archive: %w", err)
		}
		files, err := archive.Extract(archivePath, dir)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Extracted archive", zap.String("archive", archivePath), zap.Int("files", len(files)))
	}

	paths := make(map[merge.Source]string, 3)
	for _, src := range s.sources() {
		if src.cfg.Path == "" {
			return nil, fmt.Errorf("no path configured for %s", src.adapter.Source)
		}
		local, err := s.fetch(ctx, src.cfg.Path, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", src.adapter.Source, err)
		}
		if !storage.IsRemote(src.cfg.Path) && !filepath.IsAbs(local) {
			local = filepath.Join(dir, local)
		}
		paths[src.adapter.Source] = local
	}
	return paths, nil
}

// fetch downloads a remote location into dir, or returns a local path unchanged.
func (s *Service) fetch(ctx context.Context, raw, dir string) (string, error) {
	loc, remote, err := storage.ParseLocation(raw)
	if err != nil {
		return "", err
	}
	if !remote {
		return raw, nil
	}
	if s.client == nil {
		return "", fmt.Errorf("storage client is required for %s", raw)
	}
	return storage.Download(ctx, s.client, loc, dir)
}

// writeOutput writes the CSV locally, or to a temporary file that is uploaded
// when the output is an s3:// location.
func (s *Service) writeOutput(ctx context.Context, fields []merge.Field, records []merge.UnifiedRecord) error {
	loc, remote, err := storage.ParseLocation(s.cfg.Output.Path)
	if err != nil {
		return err
	}
	if !remote {
		return WriteCSV(s.cfg.Output.Path, fields, records)
	}
	if s.client == nil {
		return fmt.Errorf("storage client is required for %s", s.cfg.Output.Path)
	}

	tmpDir, err := os.MkdirTemp("", "listing-merge-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	local := filepath.Join(tmpDir, filepath.Base(loc.Key))
	if err := WriteCSV(local, fields, records); err != nil {
		return err
	}
	return storage.Upload(ctx, s.client, local, loc, csvContentType)
}
