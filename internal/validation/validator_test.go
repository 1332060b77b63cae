package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHex(t *testing.T) {
	assert.NoError(t, ValidateHex("deadbeef"))
	assert.Error(t, ValidateHex(""))
	assert.Error(t, ValidateHex("abc"))
	assert.Error(t, ValidateHex("zzzz"))
}

func TestValidateShare(t *testing.T) {
	assert.NoError(t, ValidateShare("01deadbeef"))
	assert.Error(t, ValidateShare("01"))
	assert.Error(t, ValidateShare("nothex"))
}

func TestValidateWidth(t *testing.T) {
	for _, w := range []int{4, 8, 16, 32, 64, 128} {
		assert.NoError(t, ValidateWidth(w))
	}
	assert.Error(t, ValidateWidth(12))
	assert.Error(t, ValidateWidth(0))
}

func TestValidatePolynomial(t *testing.T) {
	assert.NoError(t, ValidatePolynomial(0x1d, 8))
	assert.Error(t, ValidatePolynomial(0x1ff, 8), "polynomial must not exceed width")
	assert.Error(t, ValidatePolynomial(0, 8), "polynomial must not be zero")
}

func TestValidateSplitParams(t *testing.T) {
	assert.NoError(t, ValidateSplitParams(5, 3))
	assert.Error(t, ValidateSplitParams(1, 1))
	assert.Error(t, ValidateSplitParams(5, 6))
	assert.Error(t, ValidateSplitParams(300, 3))
}

func TestValidateRAIDParity(t *testing.T) {
	assert.NoError(t, ValidateRAIDParity(0))
	assert.NoError(t, ValidateRAIDParity(3))
	assert.Error(t, ValidateRAIDParity(-1))
	assert.Error(t, ValidateRAIDParity(4))
}

func TestValidateRSParams(t *testing.T) {
	assert.NoError(t, ValidateRSParams(255, 223))
	assert.Error(t, ValidateRSParams(0, 0))
	assert.Error(t, ValidateRSParams(10, 10))
	assert.Error(t, ValidateRSParams(256, 10))
}

func TestValidatePassphrase(t *testing.T) {
	assert.NoError(t, ValidatePassphrase("a reasonable passphrase"))
	assert.Error(t, ValidatePassphrase(string(make([]byte, 300))))
}

func TestSanitizeInput(t *testing.T) {
	got := SanitizeInput("  hello \r\n  world  \r\n")
	assert.Equal(t, "hello\nworld", got)
}
