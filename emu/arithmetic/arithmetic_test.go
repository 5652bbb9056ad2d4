package arithmetic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/emu/arithmetic"
	"github.com/retro-g15/g15sim/emu/word"
)

func TestComplementSingleRoundTrip(t *testing.T) {
	for _, w := range []uint32{0, 2, 4, 6, 0x1ffffffe, 3, 5, 0x1fffffff & ^uint32(1)} {
		c1, _, _, _ := arithmetic.ComplementSingle(w)
		c2, _, _, _ := arithmetic.ComplementSingle(c1)
		if word.IsMinusZero(w) {
			continue // -0 is explicitly excluded from the round-trip law.
		}
		assert.Equal(t, w, c2, "round trip for %#x", w)
	}
}

func TestComplementSingleMinusZero(t *testing.T) {
	_, carry, _, suppress := arithmetic.ComplementSingle(word.SignMask)
	assert.True(t, carry)
	assert.True(t, suppress)
}

func TestAddSingleIdentity(t *testing.T) {
	a := word.Make(10, false)
	result, overflow := arithmetic.AddSingle(a, 0, false)
	assert.Equal(t, a, result)
	assert.False(t, overflow)
}

// AddSingle operates on complement-form operands; a value added to its
// complement-form negation must cancel to zero with no overflow.
func TestAddSingleSignCancellation(t *testing.T) {
	for _, mag := range []uint32{2, 10, 0x1ffffffe} {
		pos := word.Make(mag, false)
		neg := word.Make(mag, true)

		cPos, _, _, _ := arithmetic.ComplementSingle(pos)
		cNeg, _, _, _ := arithmetic.ComplementSingle(neg)

		result, overflow := arithmetic.AddSingle(cPos, cNeg, false)
		assert.Equal(t, uint32(0), result, "magnitude %#x", mag)
		assert.False(t, overflow)
	}
}

func TestAddSingleOverflow(t *testing.T) {
	big := word.Make(0x1ffffffe, false) // largest positive magnitude.
	_, overflow := arithmetic.AddSingle(big, big, false)
	assert.True(t, overflow)
}

func TestAddDoubleRoundPair(t *testing.T) {
	pnEven := word.Make(4, false)
	srcEven := word.Make(6, false)
	sumEven, carry, augendSign, addendSign := arithmetic.AddDoubleEven(pnEven, srcEven)
	assert.Equal(t, uint32(10), sumEven)
	assert.False(t, carry)

	pnOdd := uint32(100)
	srcOdd := uint32(200)
	result, sign, overflow := arithmetic.AddDoubleOdd(pnOdd, srcOdd, carry, augendSign, addendSign, false)
	assert.Equal(t, uint32(300), result)
	assert.Equal(t, uint8(0), sign)
	assert.False(t, overflow)
}
