// Package logger provides a structured logging facility based on Zap.
//
// # Run Correlation
//
// Every merge run carries a run identifier. WithRun attaches it to a logger so
// that all entries of one run, including the counts reported by the merge
// engine, can be correlated with the rows written to the database sink.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRun(log, runID)
//	log.Info("Merge started")
package logger
