// Package listings merges the social, search and website business-listing exports.
//
// It binds the generic merge engine to the three concrete sources: their
// column renames and retained columns, the field precedence used when the
// sources disagree, and the sinks receiving the unified dataset.
//
// # Sources
//
//   - source_a: social-network export (facebook_dataset.csv)
//   - source_b: search-index export (google_dataset.csv)
//   - source_c: website-crawl export (website_dataset.csv, semicolon delimited, multi-line fields)
//
// # Sinks
//
// The merged dataset is always written as CSV, to a local path or an
// s3://bucket/key location. When the database sink is enabled the same
// records are inserted into unified_businesses in one transaction, which
// commits only after the CSV has been written.
//
// # Usage
//
//	svc := listings.NewService(cfg, client, db, log)
//	report, err := svc.Merge(ctx)
package listings
