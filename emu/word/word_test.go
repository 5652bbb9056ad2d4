package word_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/emu/word"
)

func TestSignMagnitude(t *testing.T) {
	assert.False(t, word.Sign(0x00000002))
	assert.True(t, word.Sign(0x00000003))
	assert.Equal(t, uint32(0x00000002), word.Magnitude(0x00000003))
}

func TestMakeRoundTrip(t *testing.T) {
	w := word.Make(0x0000000a, true)
	assert.True(t, word.Sign(w))
	assert.Equal(t, uint32(0x0000000a), word.Magnitude(w))
}

func TestMinusZero(t *testing.T) {
	assert.True(t, word.IsMinusZero(word.SignMask))
	assert.False(t, word.IsMinusZero(0))
	assert.True(t, word.IsZero(0))
}

func TestFieldRoundTrip(t *testing.T) {
	var w uint32
	w = word.InsertField(w, 3, 4, 0xd)
	assert.Equal(t, uint32(0xd), word.Field(w, 3, 4))
}

func TestCommandRoundTrip(t *testing.T) {
	c := word.Command{C1: 1, D: 28, S: 0, C: 1, BP: 0, N: 1, T: 91, DI: 1}
	got := word.DecodeCommand(c.Encode())
	assert.Equal(t, c, got)
}

func TestViaAR(t *testing.T) {
	c := word.Command{C: 2, S: 1, D: 2}
	assert.True(t, c.ViaAR())

	c2 := word.Command{C: 2, S: 29, D: 2}
	assert.False(t, c2.ViaAR())

	c3 := word.Command{C: 0, S: 1, D: 2}
	assert.False(t, c3.ViaAR())
}
