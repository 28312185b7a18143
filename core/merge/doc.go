// Package merge provides the entity-resolution engine that folds three
// business-listing sources into one record per business.
//
// The engine is designed around exact matching on a normalized key:
//   - Each source is projected into a canonical record shape by a SourceAdapter
//   - A MatchKey is built from company name, country and city and hashed
//   - The three streams are partitioned by hash key and joined per partition
//   - Each joined row is collapsed into a UnifiedRecord by field rules
//
// # Architecture
//
// The merge system consists of four main components:
//
//  1. Normalizer and Hasher: pure functions turning raw key parts into a
//     canonical MatchKey and a fixed-width HashKey.
//
//  2. SourceAdapter: declares how one source's columns are renamed and which
//     canonical columns are kept. Projection is by column name, never position.
//
//  3. Join: a three-way inner equi-join on HashKey. Streams are bucketed with the
//     same partition function, so partitions are joined concurrently without
//     any cross-partition coordination.
//
//  4. Reconciler: first-non-null and concatenation policies applied per output
//     field over a fixed source precedence.
//
// # Usage Example
//
//	engine, err := merge.NewEngine(opts, listings.Rules(), logger)
//	result, err := engine.Run(ctx,
//	    merge.Input{Adapter: listings.SocialAdapter(), Loader: socialLoader},
//	    merge.Input{Adapter: listings.SearchAdapter(), Loader: searchLoader},
//	    merge.Input{Adapter: listings.WebsiteAdapter(), Loader: websiteLoader},
//	)
//
// The run is all-or-nothing: a failure in any source aborts it.
package merge
