package merge

import (
	"testing"

	"listing-merge/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasher(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantName  string
		wantLen   int
		crypto    bool
		expectErr bool
	}{
		{"DefaultIsSHA256", "", HashSHA256, 64, true, false},
		{"SHA256", HashSHA256, HashSHA256, 64, true, false},
		{"XXHash", HashXXHash, HashXXHash, 16, false, false},
		{"Unknown", "md5", "", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHasher(tt.algorithm)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown hash algorithm")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, h.Name())
			assert.Equal(t, tt.crypto, h.Cryptographic())
			assert.Len(t, h.Sum("acmeincusnyc"), tt.wantLen)
			assert.Len(t, h.Sum(""), tt.wantLen)
		})
	}
}

func TestHasher_KnownDigest(t *testing.T) {
	h, err := NewHasher(HashSHA256)
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", h.Sum(""))

	h, err = NewHasher(HashXXHash)
	require.NoError(t, err)
	assert.Equal(t, "ef46db3751d8e999", h.Sum(""))
}

func TestHasher_Deterministic(t *testing.T) {
	pairs := [][2]string{
		{"Acme Inc", "ACME INC"},
		{" nyc ", "NYC"},
		{"Acme, Inc", "acme inc"},
	}

	for _, algorithm := range []string{HashSHA256, HashXXHash} {
		h, err := NewHasher(algorithm)
		require.NoError(t, err)
		for _, p := range pairs {
			n1 := Normalize(utils.Ptr(p[0]))
			n2 := Normalize(utils.Ptr(p[1]))
			require.Equal(t, n1, n2)
			assert.Equal(t, h.Sum(n1), h.Sum(n2), "%s: %q vs %q", algorithm, p[0], p[1])
		}
		assert.NotEqual(t, h.Sum("acme"), h.Sum("globex"))
	}
}

func TestPartitionOf(t *testing.T) {
	for _, key := range []string{"", "a", "b", "e3b0c442"} {
		p := partitionOf(key, 7)
		assert.GreaterOrEqual(t, p, 0)
		assert.Less(t, p, 7)
		assert.Equal(t, p, partitionOf(key, 7))
	}
	assert.Equal(t, 0, partitionOf("anything", 1))
}
