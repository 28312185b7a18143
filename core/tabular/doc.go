// Package tabular reads and writes delimited text files.
//
// Each source file carries its own Dialect: field delimiter, quote and escape
// characters, character encoding, whether a header row is present, and whether
// quoted fields may span lines. Readers decode non-UTF-8 input through
// golang.org/x/text and rewrite backslash-style escapes into the doubled-quote
// form encoding/csv understands.
//
// Malformed UTF-8 in a file declared as UTF-8 yields an *EncodingError.
//
// # Usage
//
//	dialect, err := cfg.Dialect()
//	table, err := tabular.ReadFile("datasets/website_dataset.csv", dialect)
//
//	err = tabular.WriteFile("destination/merged.csv", header, rows)
package tabular
