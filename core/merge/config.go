package merge

import (
	"fmt"
	"runtime"
	"time"
)

// Config holds the merge settings read from configuration.
type Config struct {
	// HashAlgorithm selects the HashKey digest (sha256, xxhash).
	HashAlgorithm string `mapstructure:"hash_algorithm" default:"sha256"`
	// Partitions is the number of join buckets. Zero means one per CPU.
	Partitions int `mapstructure:"partitions" default:"0"`
	// DuplicatePolicy selects cross_product or first for duplicate keys.
	DuplicatePolicy string `mapstructure:"duplicate_policy" default:"cross_product"`
}

// Options is the immutable run configuration handed to the engine.
type Options struct {
	Hasher          Hasher
	Partitions      int
	DuplicatePolicy DuplicatePolicy

	// RunID and LoadTimestamp are stamped on every output record.
	RunID         string
	LoadTimestamp time.Time
}

// Options validates the configuration and builds run options.
func (c Config) Options(runID string, loadTimestamp time.Time) (Options, error) {
	hasher, err := NewHasher(c.HashAlgorithm)
	if err != nil {
		return Options{}, err
	}
	policy, err := ParseDuplicatePolicy(c.DuplicatePolicy)
	if err != nil {
		return Options{}, err
	}
	if c.Partitions < 0 {
		return Options{}, fmt.Errorf("partitions must not be negative, got %d", c.Partitions)
	}
	partitions := c.Partitions
	if partitions == 0 {
		partitions = runtime.NumCPU()
	}

	return Options{
		Hasher:          hasher,
		Partitions:      partitions,
		DuplicatePolicy: policy,
		RunID:           runID,
		LoadTimestamp:   loadTimestamp,
	}, nil
}
