package test

import (
	"crypto/rand"
	"testing"

	"github.com/Davincible/gf256/pkg/crc"
	"github.com/Davincible/gf256/pkg/raid"
	"github.com/Davincible/gf256/pkg/rs"
	"github.com/Davincible/gf256/pkg/secure"
	"github.com/Davincible/gf256/pkg/shamir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullWorkflow exercises a secret moving through Shamir splitting,
// a CRC-32 checksum and RAID-striped storage, mirroring
// how the pieces of this module compose in practice.
func TestFullWorkflow(t *testing.T) {
	secret := []byte("correct horse battery staple, in quadruplicate")
	defer secure.Zero(secret)

	shares, err := shamir.Split(secret, 5, 3, rand.Reader)
	require.NoError(t, err)
	assert.Len(t, shares, 5)

	reconstructed, err := shamir.Combine(shares[1:4])
	require.NoError(t, err)
	assert.Equal(t, secret, reconstructed)

	sum := crc.CRC32.Checksum(reconstructed)
	assert.NotZero(t, sum)

	array, err := raid.New(2)
	require.NoError(t, err)

	blockSize := len(reconstructed)
	blocks := make([][]byte, 5)
	for i := range blocks[:3] {
		blocks[i] = make([]byte, blockSize)
	}
	copy(blocks[0], reconstructed[:blockSize/3])
	copy(blocks[1], reconstructed[blockSize/3:2*blockSize/3])
	copy(blocks[2], reconstructed[2*blockSize/3:])
	blocks[3] = make([]byte, blockSize)
	blocks[4] = make([]byte, blockSize)

	require.NoError(t, array.Format(blocks))

	original := make([][]byte, len(blocks))
	for i, b := range blocks {
		cp := make([]byte, len(b))
		copy(cp, b)
		original[i] = cp
	}

	blocks[0] = make([]byte, blockSize)
	blocks[4] = make([]byte, blockSize)
	require.NoError(t, array.Repair(blocks, []int{0, 4}))

	for i := range blocks {
		assert.Equal(t, original[i], blocks[i], "block %d should be fully recovered", i)
	}
}

// TestReedSolomonSurvivesShamirShareCorruption checks that a Shamir
// share protected by a Reed-Solomon codeword can absorb a couple of
// flipped bytes in transit and still recover.
func TestReedSolomonSurvivesShamirShareCorruption(t *testing.T) {
	secret := []byte("protect me")
	shares, err := shamir.Split(secret, 3, 2, rand.Reader)
	require.NoError(t, err)

	codec, err := rs.New(32, 24)
	require.NoError(t, err)

	padded := make([]byte, 24)
	copy(padded, shares[0].Data)
	codeword, err := codec.Encode(padded)
	require.NoError(t, err)

	corrupted := make([]byte, len(codeword))
	copy(corrupted, codeword)
	corrupted[1] ^= 0xff
	corrupted[10] ^= 0x01

	ok, err := codec.IsCorrect(corrupted)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := codec.CorrectErrors(corrupted)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, codeword, corrupted)
}

func TestShamirCombineMatchesAnyThresholdSubset(t *testing.T) {
	secret := []byte("subset invariance")
	shares, err := shamir.Split(secret, 6, 4, rand.Reader)
	require.NoError(t, err)

	subsets := [][]int{
		{0, 1, 2, 3},
		{2, 3, 4, 5},
		{0, 2, 4, 5},
		{1, 3, 4, 5},
	}
	for _, idx := range subsets {
		picked := make([]shamir.Share, len(idx))
		for i, j := range idx {
			picked[i] = shares[j]
		}
		got, err := shamir.Combine(picked)
		require.NoError(t, err)
		assert.Equal(t, secret, got)
	}
}
