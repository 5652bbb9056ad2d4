/*
 * g15sim - Fetch/execute state machine tests.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/flipflop"
	"github.com/retro-g15/g15sim/emu/io15"
	"github.com/retro-g15/g15sim/emu/word"
)

type stubDevice struct {
	initCount int
}

func (s *stubDevice) Read(_ uint8) uint8         { return 0 }
func (s *stubDevice) Write(_ uint8) uint8        { return 0 }
func (s *stubDevice) ReverseBlock() uint8        { return 0 }
func (s *stubDevice) Cancel()                    {}
func (s *stubDevice) InitDev() uint8             { s.initCount++; return 0 }
func (s *stubDevice) Shutdown()                  {}
func (s *stubDevice) Debug(_ string) error       { return nil }

var _ device.Device = (*stubDevice)(nil)

func newProcessor() *Processor {
	d := drum.New()
	bank := flipflop.NewBank(d, false)
	io := io15.NewSession(d, bank, nil)
	return NewProcessor(d, bank, io)
}

func TestStepDecodesCommandAndAdvances(t *testing.T) {
	p := newProcessor()
	cmd := word.Command{D: 0, S: 1, C: 0, N: 5, T: 3, DI: 0}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	ok := p.Step(false)

	assert.True(t, ok)
	assert.Equal(t, uint8(0), p.Command().D)
	assert.Equal(t, uint8(1), p.Command().S)
	assert.Equal(t, 5, p.nextN)
}

func TestHaltBlocksStep(t *testing.T) {
	p := newProcessor()
	p.CH = true

	ok := p.Step(false)

	assert.False(t, ok)
}

func TestForcedSingleStepIgnoresHaltUnlessCZSet(t *testing.T) {
	p := newProcessor()
	p.CH = true
	p.CZ = false

	ok := p.Step(true)
	assert.True(t, ok)

	p.CH = true
	p.CZ = true
	ok = p.Step(true)
	assert.False(t, ok)
}

func TestBreakpointHaltsAfterCommandAtBP(t *testing.T) {
	p := newProcessor()
	p.Switch = SwitchBP
	cmd := word.Command{D: 0, S: 1, BP: 1}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.True(t, p.CH)
}

func TestReturnExitDefersBreakpointHaltToNextCommand(t *testing.T) {
	p := newProcessor()
	p.Switch = SwitchBP
	cmd := word.Command{D: drum.DestSpecial, S: sReturnExit, BP: 1, N: 10, T: 10}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)
	assert.False(t, p.CH, "halt must be deferred past the return-exit command itself")

	next := word.Command{D: 0, S: 1}
	p.Drum.Write(p.Drum.CommandLine(), next.Encode())
	p.Step(false)
	assert.True(t, p.CH, "deferred halt fires on the following RC")
}

func TestSpecialHaltSetsCH(t *testing.T) {
	p := newProcessor()
	cmd := word.Command{D: drum.DestSpecial, S: sHalt}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.True(t, p.CH)
}

func TestInitiateIOUnknownDeviceIsNoopWarning(t *testing.T) {
	p := newProcessor()
	var warned string
	p.Warnf = func(format string, args ...any) { warned = format }
	cmd := word.Command{D: drum.DestSpecial, S: device.CodePunch19}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.NotEmpty(t, warned)
	assert.False(t, p.IO.Active())
}

func TestInitiateIOKnownDeviceStartsSession(t *testing.T) {
	p := newProcessor()
	dev := &stubDevice{}
	p.Devices[device.CodePunch19] = dev
	cmd := word.Command{D: drum.DestSpecial, S: device.CodePunch19}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.Equal(t, 1, dev.initCount)
	assert.True(t, p.IO.Active())
}

func TestRunIOPumpsActiveDeviceAndRetires(t *testing.T) {
	p := newProcessor()
	dev := &stubDevice{}
	p.Devices[device.CodePunch19] = dev
	p.IO.Initiate(dev, device.CodePunch19)

	p.RunIO()

	assert.False(t, p.IO.Active())
}

func TestRunIOIsNoopWhenIdle(t *testing.T) {
	p := newProcessor()

	assert.NotPanics(t, func() { p.RunIO() })
	assert.False(t, p.IO.Active())
}

func TestTestARSignSetsCQ(t *testing.T) {
	p := newProcessor()
	p.Drum.SetAR(0x1) // negative.
	cmd := word.Command{D: drum.DestSpecial, S: sTestARSign}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.True(t, p.CQ)
}

func TestClearRegsClearsMQIDPNAndIP(t *testing.T) {
	p := newProcessor()
	p.Drum.SetMQHalf(0, 5)
	p.Drum.SetIDHalf(0, 5)
	p.Drum.SetPNHalf(0, 5)
	p.Bank.IP.Set(1)
	cmd := word.Command{D: drum.DestSpecial, S: sClearRegs, C: 0}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.Equal(t, uint32(0), p.Drum.MQHalf(0))
	assert.Equal(t, uint32(0), p.Drum.IDHalf(0))
	assert.Equal(t, uint32(0), p.Drum.PNHalf(0))
	assert.False(t, p.Bank.IP.IsSet())
}

func TestMiscNextFromAR(t *testing.T) {
	p := newProcessor()
	cmd := word.Command{D: drum.DestSpecial, S: sMisc, C: 0}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.True(t, p.CG)
}

func TestRingBellCallsBellWithNBeats(t *testing.T) {
	p := newProcessor()
	var beats int
	p.Bell = func(n int) { beats = n }
	cmd := word.Command{D: drum.DestSpecial, S: sRingBell, N: 3}
	p.Drum.Write(p.Drum.CommandLine(), cmd.Encode())

	p.Step(false)

	assert.Equal(t, 3, beats)
}

func TestMarkPlaceThenReturnToMarkSetsNextN(t *testing.T) {
	p := newProcessor()
	for p.Drum.L() != 42 {
		p.Drum.WaitFor(1)
	}

	p.MarkPlace()
	p.nextN = -1
	p.ReturnToMark()

	assert.Equal(t, 42%drum.LongWords, p.nextN)
}

func TestClearMarkResetsMarkToZero(t *testing.T) {
	p := newProcessor()
	p.mark = 55

	p.ClearMark()
	p.nextN = -1
	p.ReturnToMark()

	assert.Equal(t, 0, p.nextN)
}

func TestSelectCommandLineUpdatesDrum(t *testing.T) {
	p := newProcessor()

	p.SelectCommandLine(4)

	assert.Equal(t, 4, p.Drum.CommandLine())
}

func TestDumpStateIncludesARAndRegisterLabels(t *testing.T) {
	p := newProcessor()
	p.Drum.SetAR(0x1fffffff)

	dump := p.DumpState()

	assert.Contains(t, dump, "AR MQ0 MQ1 ID0 ID1 PN0 PN1")
	assert.Contains(t, dump, "1FFFFFFF")
}

func TestCopyLocationToARPreservesLowBits(t *testing.T) {
	p := newProcessor()
	p.Drum.SetAR(0x1) // low bit set.
	p.SelectCommandLine(5)

	p.CopyLocationToAR()

	assert.Equal(t, uint32(5), word.Field(p.Drum.AR(), 25, 3))
	assert.Equal(t, uint32(1), word.Field(p.Drum.AR(), 0, 1))
}
