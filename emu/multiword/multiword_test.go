package multiword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/flipflop"
	"github.com/retro-g15/g15sim/emu/multiword"
	"github.com/retro-g15/g15sim/emu/word"
)

func TestMultiplyRunsTwoTWordTimes(t *testing.T) {
	d := drum.New()
	bank := flipflop.NewBank(d, false)
	d.SetIDHalf(0, word.Make(4, false))
	start := d.WordTime()
	multiword.Multiply(d, bank, 3)
	assert.Equal(t, start+6, d.WordTime())
}

func TestDivideByZeroLatchesOverflow(t *testing.T) {
	d := drum.New()
	bank := flipflop.NewBank(d, false)
	d.SetPNHalf(0, word.Make(10, false))
	multiword.Divide(d, bank, 57)
	assert.True(t, bank.FO.IsSet())
}

func TestDividePrincetonRoundingSetsMQBit1(t *testing.T) {
	d := drum.New()
	bank := flipflop.NewBank(d, false)
	d.SetIDHalf(0, word.Make(4, false))
	multiword.Divide(d, bank, 10)
	assert.Equal(t, uint32(1), word.Field(d.MQHalf(0), 1, 1))
}

func TestShiftMQLeftIDRightIncrementsARWhenCZero(t *testing.T) {
	d := drum.New()
	d.SetAR(0)
	multiword.ShiftMQLeftIDRight(d, 4, 0)
	assert.True(t, d.AR() > 0)
}

func TestShiftMQLeftIDRightSkipsARWhenCOne(t *testing.T) {
	d := drum.New()
	d.SetAR(0)
	multiword.ShiftMQLeftIDRight(d, 4, 1)
	assert.Equal(t, uint32(0), d.AR())
}

func TestNormalizeMQStopsOnHighBit(t *testing.T) {
	d := drum.New()
	d.SetMQHalf(1, bit27())
	multiword.NormalizeMQ(d, 50, 1)
	assert.NotEqual(t, uint32(0), d.MQHalf(1)&(uint32(1)<<28))
}

func bit27() uint32 {
	return uint32(1) << 27
}
