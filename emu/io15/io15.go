/*
 * g15sim - I/O format-code pipeline.
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

// Package io15 drives the G-15's shared I/O format-code pipeline: the
// output side precesses format codes 3 bits at a time from MZ to decide
// what to emit (a data digit, STOP, CR, PERIOD, the OS sign, a MZ
// reload, TAB, or WAIT); the input side classifies incoming frames and
// precesses data into line 23; STOP closes a block, and a RELOAD frame
// copies line 23 out without closing it.
// Session also owns the cooperative cancel/duplicate-initiate
// bookkeeping that the processor's "S" keyboard command and a second
// initiate of a busy sCode rely on.
package io15

import (
	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/flipflop"
	"github.com/retro-g15/g15sim/emu/word"
)

// Line19 and Line23 are the drum lines the format pipeline precesses
// against: line 19 is the main I/O line, line 23 is input staging.
const (
	Line19 = 19
	Line23 = 23
)

// DataLine is the read/write pair the output pipeline precesses a data
// digit, CR/TAB bit, or sign against: line 19 for PUNCH19/TYPE19, AR for
// TYPE AR.
type DataLine struct {
	Read  func() uint32
	Write func(uint32)
}

// Line19Data returns a DataLine bound to the drum's main I/O line.
func Line19Data(d *drum.Drum) DataLine {
	return DataLine{
		Read:  func() uint32 { return d.Read(Line19) },
		Write: func(w uint32) { d.Write(Line19, w) },
	}
}

// ARData returns a DataLine bound to the accumulator, used by TYPE AR.
func ARData(d *drum.Drum) DataLine {
	return DataLine{
		Read:  func() uint32 { return d.AR() },
		Write: func(w uint32) { d.SetAR(w) },
	}
}

// Session is one active (or idle) I/O operation plus the pipeline state
// shared by every device-selector code: the active device, the OC busy
// indicator, and the cooperative cancel/duplicate/hung latches.
type Session struct {
	Drum  *drum.Drum
	Bank  *flipflop.Bank
	Warnf func(format string, args ...interface{})

	dev       device.Device
	oc        uint8
	canceled  bool
	duplicate bool
	hung      bool
	osSet     bool // OS: pending sign for the digit block under construction.
}

// NewSession returns an idle session (OC = CodeReady).
func NewSession(d *drum.Drum, bank *flipflop.Bank, warnf func(string, ...interface{})) *Session {
	return &Session{Drum: d, Bank: bank, Warnf: warnf, oc: device.CodeReady}
}

// Active reports whether a device operation currently holds the sCode
// slot.
func (s *Session) Active() bool {
	return s.oc != device.CodeReady
}

// OC returns the active device-selector code, or CodeReady when idle.
func (s *Session) OC() uint8 {
	return s.oc
}

// Initiate starts dev on sCode. A second initiate of the same sCode
// while one is already in progress sets duplicate_io instead of
// starting a new operation (interpreted by the output loop as "re-issue
// a format RELOAD"); initiating a different sCode while one is active
// is a usage error and is only warned about, per the non-standard-usage
// warning class.
func (s *Session) Initiate(dev device.Device, sCode uint8) bool {
	if s.Active() {
		if s.oc == sCode {
			s.duplicate = true
			return false
		}
		if s.Warnf != nil {
			s.Warnf("io15: initiate sCode=%d while sCode=%d still active", sCode, s.oc)
		}
		return false
	}
	s.dev = dev
	s.oc = sCode
	s.canceled = false
	s.duplicate = false
	s.hung = false
	s.osSet = false
	s.Drum.SetIOActive(true)
	dev.InitDev()
	return true
}

// Cancel requests the active device abandon its operation at its next
// decision point.
func (s *Session) Cancel() {
	if !s.Active() {
		return
	}
	s.dev.Cancel()
	s.canceled = true
}

// Canceled reports whether cancel_io has been requested for the active
// operation.
func (s *Session) Canceled() bool {
	return s.canceled
}

// Duplicate reports whether a second initiate arrived while this
// operation was in progress, and clears the latch (the output loop
// consumes it once, by re-issuing a RELOAD).
func (s *Session) Duplicate() bool {
	d := s.duplicate
	s.duplicate = false
	return d
}

// SetHung marks a hung I/O (no tape loaded, empty input buffer). The
// latch does not hold the operation busy: the device loop returns, and
// fetch's RunIO retires the operation with FinishIO as for any other.
func (s *Session) SetHung(hung bool) {
	s.hung = hung
}

// Hung reports whether the active operation is hung.
func (s *Session) Hung() bool {
	return s.hung
}

// FinishIO retires the active operation: clears OC, io_active, and every
// latch.
func (s *Session) FinishIO() {
	s.oc = device.CodeReady
	s.dev = nil
	s.canceled = false
	s.duplicate = false
	s.hung = false
	s.Drum.SetIOActive(false)
}

// OutputStep precesses one format code out of MZ and performs the
// action it names against line, returning the resulting I/O code for the
// calling device to emit. AN auto-stop (forcing STOP once the data line precesses to
// all zeroes while AS is set) only applies to PUNCH19/TYPE19, selected
// by autoStop.
func (s *Session) OutputStep(line DataLine, autoStop bool) uint8 {
	mz := s.Drum.MZ()
	fmtCode, rest := word.PrecessBits(mz, 3)
	s.Drum.SetMZ(rest)

	var ioCode uint8
	switch uint8(fmtCode) {
	case device.FmtDigit:
		data := line.Read()
		digit, restData := word.PrecessBits(data, 4)
		line.Write(restData)
		ioCode = uint8(digit) | device.IODataFlag
	case device.FmtEndStop:
		ioCode = device.IOStop
	case device.FmtCR:
		data := line.Read()
		_, restData := word.PrecessBits(data, 1)
		line.Write(restData)
		ioCode = device.IOCR
	case device.FmtPeriod:
		ioCode = device.IOPeriod
	case device.FmtSign:
		if word.Sign(line.Read()) {
			ioCode = device.IOMinus
		} else {
			ioCode = device.IOSpace
		}
	case device.FmtReload:
		s.Drum.SetMZ(s.Drum.Read(Line19))
		ioCode = device.IOReload
	case device.FmtTab:
		data := line.Read()
		_, restData := word.PrecessBits(data, 1)
		line.Write(restData)
		ioCode = device.IOTab
	case device.FmtWait:
		data := line.Read()
		_, restData := word.PrecessBits(data, 4)
		line.Write(restData)
		ioCode = device.IOWait
	}

	if autoStop && s.Bank.AS.IsSet() && ioCode != device.IOStop && word.IsZero(line.Read()) {
		ioCode = device.IOStop
	}

	if s.Duplicate() {
		ioCode = device.IOReload
	}

	return ioCode
}

// InputStep classifies one incoming I/O code and precesses it into line
// 23. It reports whether the current block just closed: STOP always
// closes it, and an automatic reload triggered by AS=1 on CodeSlowIn
// closes it early. A bare RELOAD frame performs the same copy/precess
// as reload() but does not end the block — more digits can still
// follow.
func (s *Session) InputStep(code uint8) bool {
	line23 := s.Drum.Read(Line23)
	dataFrame := code&device.IODataFlag != 0
	closed := false

	switch {
	case dataFrame:
		digit := uint32(code) & 0x0f
		s.Drum.Write(Line23, precessIn(line23, digit, 4))
		if s.Bank.AS.IsSet() && s.oc == device.CodeSlowIn && markerBit(line23) {
			s.reload()
			closed = true
		}
	case code == device.IOMinus:
		s.osSet = true
	case code == device.IOCR, code == device.IOTab:
		bit := uint32(0)
		if s.osSet {
			bit = 1
		}
		s.Drum.Write(Line23, precessIn(line23, bit, 1))
		s.osSet = false
	case code == device.IOStop:
		if !(s.Bank.AS.IsSet() && s.oc == device.CodeSlowIn) {
			s.reload()
		}
		closed = true
	case code == device.IOReload:
		s.reload()
	case code == device.IOPeriod:
		// Ignored.
	case code == device.IOWait:
		s.Drum.Write(Line23, precessIn(line23, 0, 4))
	}

	return closed
}

// reload copies line 23 into MZ, then MZ into line 19. Whether the input
// block closes is decided by the caller (see InputStep).
func (s *Session) reload() {
	s.Drum.SetMZ(s.Drum.Read(Line23))
	s.Drum.Write(Line19, s.Drum.MZ())
}

// precessIn shifts w right by width, bits and inserts val into the
// vacated high bits; the mirror of word.PrecessBits for input framing.
func precessIn(w, val uint32, width int) uint32 {
	rest := w >> uint(width)
	return word.InsertField(rest, word.Bits-width, width, val)
}

// markerBit reports the low bit of the staging line, used as the
// end-of-block marker line 23's auto-reload path watches for.
func markerBit(w uint32) bool {
	return w&1 != 0
}
