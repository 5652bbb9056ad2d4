package flipflop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/emu/flipflop"
)

type fakeClock struct{ t int }

func (f *fakeClock) WordTime() int { return f.t }

func TestRegisterSetMasksToWidth(t *testing.T) {
	r := flipflop.NewRegister("T", 3, nil, false)
	r.Set(0xff)
	assert.Equal(t, uint32(0x7), r.Get())
}

func TestFlipTogglesBitZero(t *testing.T) {
	r := flipflop.NewRegister("FO", 1, nil, false)
	assert.False(t, r.IsSet())
	r.Flip()
	assert.True(t, r.IsSet())
	r.Flip()
	assert.False(t, r.IsSet())
}

func TestLampAveragingTrace(t *testing.T) {
	clk := &fakeClock{t: 10}
	r := flipflop.NewRegister("AS", 1, clk, true)
	r.Set(1)
	clk.t = 20
	r.Set(0)
	trace := r.Trace()
	if assert.Len(t, trace, 2) {
		assert.Equal(t, 10, trace[0].WordTime)
		assert.Equal(t, uint32(1), trace[0].Value)
		assert.Equal(t, 20, trace[1].WordTime)
		assert.Equal(t, uint32(0), trace[1].Value)
	}
}

func TestUntracedRegisterRecordsNothing(t *testing.T) {
	clk := &fakeClock{t: 1}
	r := flipflop.NewRegister("CS", 1, clk, false)
	r.Set(1)
	assert.Nil(t, r.Trace())
}

func TestNewBankNamesEachRegister(t *testing.T) {
	b := flipflop.NewBank(nil, false)
	assert.Equal(t, "FO", b.FO.Name())
	assert.Equal(t, "AS", b.AS.Name())
	assert.Equal(t, "CS", b.CS.Name())
	assert.Equal(t, "PG", b.PG.Name())
	assert.Equal(t, "IP", b.IP.Name())
}
