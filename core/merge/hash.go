package merge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	// HashSHA256 selects a 256-bit cryptographic digest.
	HashSHA256 = "sha256"
	// HashXXHash selects a 64-bit non-cryptographic digest.
	HashXXHash = "xxhash"
)

// Hasher produces the HashKey for a MatchKey.
// Implementations must be deterministic within and across runs.
type Hasher interface {
	// Name returns the algorithm name as configured.
	Name() string

	// Sum returns the fixed-width hex digest of a MatchKey.
	Sum(matchKey string) string

	// Cryptographic reports whether collisions are negligible.
	Cryptographic() bool
}

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HashSHA256, "":
		return sha256Hasher{}, nil
	case HashXXHash:
		return xxHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q (want %s or %s)", name, HashSHA256, HashXXHash)
	}
}

type sha256Hasher struct{}

func (sha256Hasher) Name() string { return HashSHA256 }

func (sha256Hasher) Sum(matchKey string) string {
	sum := sha256.Sum256([]byte(matchKey))
	return hex.EncodeToString(sum[:])
}

func (sha256Hasher) Cryptographic() bool { return true }

type xxHasher struct{}

func (xxHasher) Name() string { return HashXXHash }

func (xxHasher) Sum(matchKey string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(matchKey))
}

func (xxHasher) Cryptographic() bool { return false }

// partitionOf selects the bucket for a hash key. Every stream uses it, which
// co-locates equal keys.
func partitionOf(hashKey string, partitions int) int {
	return int(xxhash.Sum64String(hashKey) % uint64(partitions))
}
