package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXmulNaiveMatchesSchoolbook(t *testing.T) {
	// x^3 (0b1000) times x^2+1 (0b0101) = x^5+x^3 (0b101000), no carry.
	hi, lo := xmulNaive(uint8(0b1000), uint8(0b0101))
	assert.Equal(t, uint8(0), hi)
	assert.Equal(t, uint8(0b101000), lo)
}

func TestXmulNaiveOverflowsIntoHi(t *testing.T) {
	hi, lo := xmulNaive(uint8(0xff), uint8(0xff))
	assert.NotEqual(t, uint8(0), hi, "two full-width operands must overflow into hi")
	_ = lo
}

func TestDivModRecoversQuotientAndRemainder(t *testing.T) {
	// x^3+x+1 (0b1011) divided by x+1 (0b11): quotient x^2+x (0b110), remainder 1.
	q, r := divMod(uint8(0b1011), uint8(0b11))
	assert.Equal(t, uint8(0b110), q)
	assert.Equal(t, uint8(0b1), r)
}

func TestPairDivModReducesFullProduct(t *testing.T) {
	hi, lo := xmulNaive(uint8(0x53), uint8(0xca))
	_, _, rhi, rlo := pairDivMod(hi, lo, 1, 0x1d)
	assert.Equal(t, uint8(0), rhi, "remainder modulo a degree-8 polynomial must fit in the low word")
	assert.Less(t, degree(rlo), 8)
}

func TestDegreeOfZeroIsNegativeOne(t *testing.T) {
	assert.Equal(t, -1, degree(uint8(0)))
	assert.Equal(t, 0, degree(uint8(1)))
	assert.Equal(t, 7, degree(uint8(0xff)))
}

func TestPDegreeMatchesStandaloneDegree(t *testing.T) {
	p := NewP(uint16(0x8001))
	assert.Equal(t, degree(uint16(0x8001)), p.Degree())
}

func TestWideningMulLiteralVector(t *testing.T) {
	a := NewP(uint32(0x1234))
	b := NewP(uint32(0x5678))
	hi, lo := a.WideningMul(b)
	assert.Equal(t, uint32(0), hi.Uint())
	assert.Equal(t, uint32(0x05c58160), lo.Uint())
}

func TestPWideningMulMatchesNaive(t *testing.T) {
	a := NewP(uint32(0x12345678))
	b := NewP(uint32(0x9abcdef0))
	hHi, hLo := a.WideningMul(b)
	nHi, nLo := a.NaiveWideningMul(b)
	assert.Equal(t, nHi.Uint(), hHi.Uint())
	assert.Equal(t, nLo.Uint(), hLo.Uint())
}
