/*
 * g15sim - I/O format-code pipeline tests.
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

package io15

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/flipflop"
)

type fakeDevice struct {
	writes    []uint8
	reads     []uint8
	readQueue []uint8
	canceled  bool
}

func (f *fakeDevice) Read(_ uint8) uint8 {
	if len(f.readQueue) == 0 {
		return device.IOStop
	}
	v := f.readQueue[0]
	f.readQueue = f.readQueue[1:]
	f.reads = append(f.reads, v)
	return v
}

func (f *fakeDevice) Write(sCode uint8) uint8 {
	f.writes = append(f.writes, sCode)
	return sCode
}

func (f *fakeDevice) ReverseBlock() uint8 { return 0 }
func (f *fakeDevice) Cancel()             { f.canceled = true }
func (f *fakeDevice) InitDev() uint8      { return 0 }
func (f *fakeDevice) Shutdown()           {}
func (f *fakeDevice) Debug(_ string) error {
	return nil
}

var _ device.Device = (*fakeDevice)(nil)

func newSession() (*Session, *drum.Drum, *flipflop.Bank) {
	d := drum.New()
	bank := flipflop.NewBank(d, false)
	return NewSession(d, bank, nil), d, bank
}

func TestInitiateSetsOCAndIOActive(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}

	ok := s.Initiate(dev, device.CodePunch19)

	assert.True(t, ok)
	assert.Equal(t, device.CodePunch19, s.OC())
	assert.True(t, d.IOActive())
	assert.True(t, s.Active())
}

func TestDuplicateInitiateSetsDuplicateLatch(t *testing.T) {
	s, _, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodePunch19)

	ok := s.Initiate(dev, device.CodePunch19)

	assert.False(t, ok)
	assert.True(t, s.Duplicate())
	// Consuming it clears the latch.
	assert.False(t, s.Duplicate())
}

func TestCancelLatchesCanceledAndCallsDevice(t *testing.T) {
	s, _, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeCardRead)

	s.Cancel()

	assert.True(t, dev.canceled)
	assert.True(t, s.Canceled())
}

func TestFinishIOResetsState(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeCardPunch)
	s.Cancel()

	s.FinishIO()

	assert.Equal(t, device.CodeReady, s.OC())
	assert.False(t, d.IOActive())
	assert.False(t, s.Canceled())
	assert.False(t, s.Active())
}

func TestOutputStepDigitFormatEmitsDataFrame(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodePunch19)
	d.SetMZ(uint32(device.FmtDigit)) // low 3 bits select digit format.
	d.Write(Line19, 0x5)             // low 4 bits are the digit to emit.

	code := s.OutputStep(Line19Data(d), true)

	assert.Equal(t, uint8(0x5)|device.IODataFlag, code)
	// The code is returned to the calling device, not written to it.
	assert.Empty(t, dev.writes)
}

func TestOutputStepSignFormatReportsMinusForNegative(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeTypeAR)
	d.SetMZ(uint32(device.FmtSign))
	d.SetAR(0x1) // sign bit set.

	code := s.OutputStep(ARData(d), false)

	assert.Equal(t, device.IOMinus, code)
}

func TestOutputStepAutoStopForcesStopWhenLineGoesZero(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodePunch19)
	s.Bank.AS.Set(1)
	d.SetMZ(uint32(device.FmtCR))
	d.Write(Line19, 0) // already zero; CR discards 1 bit, stays zero.

	code := s.OutputStep(Line19Data(d), true)

	assert.Equal(t, device.IOStop, code)
}

func TestOutputStepReloadRefillsMZFromLine19(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeCardPunch)
	d.Write(Line19, 0x1234)
	d.SetMZ(uint32(device.FmtReload))

	code := s.OutputStep(Line19Data(d), false)

	assert.Equal(t, device.IOReload, code)
	assert.Equal(t, uint32(0x1234), d.MZ())
}

func TestInputStepMinusIsConsumedByNextCRFrame(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeSlowIn)

	closed := s.InputStep(device.IOMinus)
	assert.False(t, closed)

	closed = s.InputStep(device.IOCR)
	assert.False(t, closed)
	assert.Equal(t, uint32(1), d.Read(Line23)>>28)
}

func TestInputStepStopClosesBlockAndCopiesToLine19(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeCardRead)
	d.Write(Line23, 0xabcd)

	closed := s.InputStep(device.IOStop)

	assert.True(t, closed)
	assert.Equal(t, uint32(0xabcd), d.MZ())
	assert.Equal(t, uint32(0xabcd), d.Read(Line19))
}

func TestInputStepReloadCopiesButDoesNotCloseBlock(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeCardRead)
	d.Write(Line23, 0xabcd)

	closed := s.InputStep(device.IOReload)

	assert.False(t, closed)
	assert.Equal(t, uint32(0xabcd), d.MZ())
	assert.Equal(t, uint32(0xabcd), d.Read(Line19))
}

func TestInputStepPeriodIsIgnored(t *testing.T) {
	s, d, _ := newSession()
	dev := &fakeDevice{}
	s.Initiate(dev, device.CodeCardRead)
	before := d.Read(Line23)

	closed := s.InputStep(device.IOPeriod)

	assert.False(t, closed)
	assert.Equal(t, before, d.Read(Line23))
}
