package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"listing-merge/core/config"
	"listing-merge/core/database"
	"listing-merge/core/logger"
	"listing-merge/core/merge"
	"listing-merge/core/storage"
	"listing-merge/feature/listings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// mergeCmd runs one merge of the three sources.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the social, search and website exports",
	Long: `Reads the three source exports, joins them on the normalized
company_name + country_name + city key and writes the reconciled dataset.

Flags override the configuration for this run only.

Examples:
  # Defaults from .env / environment
  listing-merge merge

  # Fast hashing, 16 join partitions, upload the result
  listing-merge merge --hash xxhash --partitions 16 --output s3://results/merged.csv

  # Keep one row per source and key, and load the database sink
  listing-merge merge --duplicates first --db`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("output", "", "Output location (path or s3://bucket/key)")
	mergeCmd.Flags().String("hash", "", "Hash algorithm (sha256, xxhash)")
	mergeCmd.Flags().Int("partitions", -1, "Join partitions (0 = one per CPU)")
	mergeCmd.Flags().String("duplicates", "", "Duplicate key policy (cross_product, first)")
	mergeCmd.Flags().Bool("db", false, "Also load records into the database sink")
	mergeCmd.Flags().Bool("json", false, "Print the run report as JSON")

	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyMergeFlags(cmd, cfg)

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	svc, err := newListingsService(cfg, l)
	if err != nil {
		return err
	}

	report, err := svc.Merge(cmd.Context())
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printMergeReport(l, report)
	return nil
}

// applyMergeFlags copies explicitly set flags over the loaded configuration.
func applyMergeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path, _ = flags.GetString("output")
	}
	if flags.Changed("hash") {
		cfg.Merge.HashAlgorithm, _ = flags.GetString("hash")
	}
	if flags.Changed("partitions") {
		cfg.Merge.Partitions, _ = flags.GetInt("partitions")
	}
	if flags.Changed("duplicates") {
		cfg.Merge.DuplicatePolicy, _ = flags.GetString("duplicates")
	}
	if flags.Changed("db") {
		cfg.Database.Enabled, _ = flags.GetBool("db")
	}
}

// newListingsService wires the storage client and, when the sink is enabled, the database.
func newListingsService(cfg *config.Config, l *zap.Logger) (*listings.Service, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	return listings.NewService(cfg, client, db, l), nil
}

// printMergeReport prints a formatted run report using logger.
func printMergeReport(l *zap.Logger, r *listings.Report) {
	for _, src := range merge.Sources {
		st := r.Sources[src]
		l.Info("Source",
			zap.String("source", string(src)),
			zap.Int("rows", st.Rows),
			zap.Int("distinct_keys", st.Keys),
			zap.Int("empty_keys", st.EmptyKeys),
		)
	}

	l.Info("Merge report",
		zap.String("run_id", r.RunID),
		zap.Int("matched_keys", r.Join.Groups),
		zap.Int("records", r.Records),
		zap.Int("fan_out", r.Join.FanOut),
		zap.Int("dropped_duplicates", r.Join.DroppedDuplicates),
		zap.Int("collisions", r.Join.Collisions),
		zap.Int("database_rows", r.DatabaseRows),
		zap.String("output", r.Output),
		zap.Duration("duration", r.Duration),
	)
}
