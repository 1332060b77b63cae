package cli

import (
	"testing"

	"github.com/Davincible/gf256/pkg/shamir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexSharesRoundTrips(t *testing.T) {
	shares, err := parseHexShares([]string{"01:a1b2c3", "02:d4e5f6"})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, shamir.Share{Index: 0x01, Data: []byte{0xa1, 0xb2, 0xc3}}, shares[0])
	assert.Equal(t, shamir.Share{Index: 0x02, Data: []byte{0xd4, 0xe5, 0xf6}}, shares[1])
}

func TestParseHexSharesRejectsMissingColon(t *testing.T) {
	_, err := parseHexShares([]string{"01a1b2c3"})
	assert.Error(t, err)
}

func TestParseHexSharesRejectsBadIndex(t *testing.T) {
	_, err := parseHexShares([]string{"zz:a1b2c3"})
	assert.Error(t, err)
}

func TestParseHexSharesRejectsBadData(t *testing.T) {
	_, err := parseHexShares([]string{"01:zzzz"})
	assert.Error(t, err)
}

func TestParseHexSharesRejectsMultiByteIndex(t *testing.T) {
	_, err := parseHexShares([]string{"0102:a1b2c3"})
	assert.Error(t, err)
}
