package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"listing-merge/core/config"
	"listing-merge/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd verifies the inputs before a merge.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every source exists and carries the required columns",
	Long: `Stages the configured sources (extracting the archive and downloading
s3:// locations) and reads each header to verify that every column the merge
needs is present after renaming. No rows are read and nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		svc, err := newListingsService(cfg, logg)
		if err != nil {
			return err
		}

		report, err := svc.Check(cmd.Context())
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			for _, src := range report.Sources {
				fields := []zap.Field{
					zap.String("source", string(src.Source)),
					zap.String("path", src.Path),
				}
				switch {
				case src.Error != "":
					logg.Error("Source unreadable", append(fields, zap.String("error", src.Error))...)
				case len(src.Missing) > 0:
					logg.Error("Source is missing columns", append(fields, zap.Strings("missing", src.Missing))...)
				default:
					logg.Info("Source OK", append(fields, zap.Int("columns", len(src.Header)))...)
				}
			}
			if report.OutputError != "" {
				logg.Error("Output not writable", zap.String("output", report.Output), zap.String("error", report.OutputError))
			}
		}

		if !report.OK() {
			return fmt.Errorf("preflight check failed")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("json", false, "Output detailed results as JSON")
	RootCmd.AddCommand(checkCmd)
}
