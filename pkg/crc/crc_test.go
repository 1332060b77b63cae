package crc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32CheckValue(t *testing.T) {
	// "123456789" is the standard CRC catalog check string.
	sum := CRC32.Checksum([]byte("123456789"))
	assert.Equal(t, uint64(0xcbf43926), sum)
}

func TestCRC32CCheckValue(t *testing.T) {
	sum := CRC32C.Checksum([]byte("123456789"))
	assert.Equal(t, uint64(0xe3069283), sum)
}

func TestCRC16CheckValue(t *testing.T) {
	// Matches the CRC-16/MCRF4XX catalog entry: same poly/init/refin/
	// refout/xorout combination.
	sum := CRC16.Checksum([]byte("123456789"))
	assert.Equal(t, uint64(0x6f91), sum)
}

func TestCRC32CHelloWorld(t *testing.T) {
	sum := CRC32C.Checksum([]byte("Hello World!"))
	assert.Equal(t, uint64(0xfe6cf1dc), sum)
}

func TestCRC64CheckValue(t *testing.T) {
	sum := CRC64.Checksum([]byte("123456789"))
	assert.Equal(t, uint64(0x995dc9bbdf1939fa), sum)
}

func TestNewRejectsBadWidth(t *testing.T) {
	_, err := New(Params{Width: 12})
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestChecksumEmptyInput(t *testing.T) {
	sum := CRC32.Checksum(nil)
	assert.Equal(t, uint64(0), sum)
}

func TestHasherMatchesChecksum(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	want := CRC32C.Checksum(data)

	h := CRC32C.Hasher()
	n, err := h.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	sum := h.Sum(nil)
	require.Len(t, sum, 4)
	got := uint64(sum[0])<<24 | uint64(sum[1])<<16 | uint64(sum[2])<<8 | uint64(sum[3])
	assert.Equal(t, want, got)
}

func TestHasherReset(t *testing.T) {
	h := CRC8.Hasher()
	_, _ = h.Write([]byte("data"))
	h.Reset()
	assert.Equal(t, CRC8.Checksum(nil), uint64(h.Sum(nil)[0]))
}
