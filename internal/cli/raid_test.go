package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndexListSplitsAndTrims(t *testing.T) {
	got, err := parseIndexList("0, 1,2")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestParseIndexListRejectsEmpty(t *testing.T) {
	_, err := parseIndexList("")
	assert.Error(t, err)
}

func TestParseIndexListRejectsNonNumeric(t *testing.T) {
	_, err := parseIndexList("0,x,2")
	assert.Error(t, err)
}

func TestContainsInt(t *testing.T) {
	xs := []int{2, 4, 6}
	assert.True(t, containsInt(xs, 4))
	assert.False(t, containsInt(xs, 5))
}
