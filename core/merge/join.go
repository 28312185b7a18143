package merge

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DuplicatePolicy controls rows sharing a HashKey within one source.
type DuplicatePolicy string

const (
	// DuplicatesCrossProduct keeps every row; the join emits the cross-product.
	DuplicatesCrossProduct DuplicatePolicy = "cross_product"
	// DuplicatesFirst keeps the first row per source and key before joining.
	DuplicatesFirst DuplicatePolicy = "first"
)

// ParseDuplicatePolicy validates a configured policy name.
func ParseDuplicatePolicy(name string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(name) {
	case DuplicatesCrossProduct, "":
		return DuplicatesCrossProduct, nil
	case DuplicatesFirst:
		return DuplicatesFirst, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want %s or %s)", name, DuplicatesCrossProduct, DuplicatesFirst)
	}
}

// partition holds the slice of each stream routed to one bucket.
type partition map[Source][]CanonicalRecord

// partitionResult is what joining a single bucket produces.
type partitionResult struct {
	groups     []JoinedRecordGroup
	dropped    int
	collisions int
}

// Join performs the three-way inner equi-join on HashKey.
//
// Streams are bucketed with one partition function and buckets are joined
// concurrently. Keys missing from any source produce no output. Groups are
// returned sorted by HashKey.
func Join(ctx context.Context, streams map[Source][]CanonicalRecord, partitions int, policy DuplicatePolicy) ([]JoinedRecordGroup, JoinStats, error) {
	if partitions <= 0 {
		partitions = 1
	}
	stats := JoinStats{Partitions: partitions}

	buckets := make([]partition, partitions)
	for i := range buckets {
		buckets[i] = make(partition, len(Sources))
	}
	for _, src := range Sources {
		for _, rec := range streams[src] {
			p := partitionOf(rec.HashKey, partitions)
			buckets[p][src] = append(buckets[p][src], rec)
		}
	}

	results := make([]partitionResult, partitions)
	g, gCtx := errgroup.WithContext(ctx)
	for i := range buckets {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = joinPartition(buckets[i], policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	var groups []JoinedRecordGroup
	for _, res := range results {
		groups = append(groups, res.groups...)
		stats.DroppedDuplicates += res.dropped
		stats.Collisions += res.collisions
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].HashKey < groups[j].HashKey
	})

	stats.Groups = len(groups)
	for _, grp := range groups {
		stats.Rows += grp.Size()
	}
	stats.FanOut = stats.Rows - stats.Groups

	return groups, stats, nil
}

// joinPartition groups one bucket by exact HashKey and keeps keys present in
// every source.
func joinPartition(p partition, policy DuplicatePolicy) partitionResult {
	var res partitionResult

	index := make(map[Source]map[string][]CanonicalRecord, len(Sources))
	// first MatchKey seen per HashKey, for collision detection
	seen := make(map[string]string)
	collided := make(map[string]bool)

	for _, src := range Sources {
		bySource := make(map[string][]CanonicalRecord)
		for _, rec := range p[src] {
			if mk, ok := seen[rec.HashKey]; !ok {
				seen[rec.HashKey] = rec.MatchKey
			} else if mk != rec.MatchKey && !collided[rec.HashKey] {
				collided[rec.HashKey] = true
				res.collisions++
			}

			if policy == DuplicatesFirst && len(bySource[rec.HashKey]) > 0 {
				res.dropped++
				continue
			}
			bySource[rec.HashKey] = append(bySource[rec.HashKey], rec)
		}
		index[src] = bySource
	}

	for key, social := range index[SourceSocial] {
		search, ok := index[SourceSearch][key]
		if !ok {
			continue
		}
		website, ok := index[SourceWebsite][key]
		if !ok {
			continue
		}
		res.groups = append(res.groups, JoinedRecordGroup{
			HashKey: key,
			Members: map[Source][]CanonicalRecord{
				SourceSocial:  social,
				SourceSearch:  search,
				SourceWebsite: website,
			},
		})
	}

	return res
}
