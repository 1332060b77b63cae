package cli

import (
	"testing"

	"github.com/Davincible/gf256/pkg/gf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldFlagsAcceptsDefaults(t *testing.T) {
	width, poly, gen, err := parseFieldFlags("8", "0x1d", "0x02")
	require.NoError(t, err)
	assert.Equal(t, 8, width)
	assert.Equal(t, uint64(0x1d), poly)
	assert.Equal(t, uint64(0x02), gen)
}

func TestParseFieldFlagsRejectsBadWidth(t *testing.T) {
	_, _, _, err := parseFieldFlags("7", "0x1d", "0x02")
	assert.Error(t, err)
}

func TestParseFieldFlagsRejectsPolynomialOverflow(t *testing.T) {
	_, _, _, err := parseFieldFlags("4", "0x1d", "0x02")
	assert.Error(t, err)
}

func TestWithFieldOfWidthResolvesNarrowField(t *testing.T) {
	err := withFieldOfWidth(4, 0b0011, 0b0010, func(width int, strategy gf.Strategy, nonzero uint64) {
		assert.Equal(t, 4, width)
		assert.Equal(t, uint64(15), nonzero)
		assert.Equal(t, gf.Table, strategy)
	})
	require.NoError(t, err)
}

func TestWithFieldOfWidthResolvesByteField(t *testing.T) {
	err := withFieldOfWidth(8, 0x1d, 0x02, func(width int, strategy gf.Strategy, nonzero uint64) {
		assert.Equal(t, 8, width)
		assert.Equal(t, uint64(255), nonzero)
	})
	require.NoError(t, err)
}

func TestWithFieldOfWidthRejectsUnsupportedWidth(t *testing.T) {
	err := withFieldOfWidth(24, 0x1d, 0x02, func(int, gf.Strategy, uint64) {})
	assert.Error(t, err)
}
