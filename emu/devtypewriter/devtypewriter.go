/*
 * g15sim - Console typewriter device.
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

// Package devtypewriter implements the console typewriter: TYPE AR and
// TYPE 19 drive the format pipeline against AR or line 19 and render
// each emitted I/O code as a printable character; TYPE-IN reads
// keystrokes and turns them back into I/O codes for emu/io15's input
// pipeline. It shares the same I/O-code alphabet as the punch and the
// photoreader, so a typed session can be logged and replayed through
// the photoreader for regression testing.
package devtypewriter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/io15"
)

const debugMaskIO = 1 << 0

var debugOption = map[string]int{
	"IO": debugMaskIO,
}

// glyph maps an I/O control code to the character the typewriter
// prints for it; data frames print their digit directly.
var glyph = map[uint8]byte{
	device.IOSpace:  ' ',
	device.IOMinus:  '-',
	device.IOCR:     '\n',
	device.IOTab:    '\t',
	device.IOStop:   '#',
	device.IOReload: '*',
	device.IOPeriod: '.',
	device.IOWait:   '_',
}

// Typewriter is the console typewriter, shared across TYPE AR, TYPE 19,
// and TYPE-IN.
type Typewriter struct {
	io       *io15.Session
	drum     *drum.Drum
	out      io.Writer
	in       *bufio.Reader
	enabled  bool // Enable switch: typewriter commands/type-in accepted.
	canceled bool
	debugMsk int
}

var _ device.Device = (*Typewriter)(nil)

// New returns a typewriter writing to out and reading from in.
func New(d *drum.Drum, session *io15.Session, out io.Writer, in io.Reader) *Typewriter {
	return &Typewriter{io: session, drum: d, out: out, in: bufio.NewReader(in)}
}

// SetEnabled mirrors the front-panel enable switch.
func (t *Typewriter) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// Read runs TYPE-IN: read keystrokes from the console, translate them
// to I/O codes, and precess them into line 23 until a block closes or
// Cancel.
func (t *Typewriter) Read(sCode uint8) uint8 {
	t.canceled = false
	if !t.enabled {
		return sCode
	}
	for {
		if t.canceled {
			return sCode
		}
		b, err := t.in.ReadByte()
		if err != nil {
			t.io.SetHung(true)
			return sCode
		}
		code := encodeKey(b)
		if t.io.InputStep(code) {
			return sCode
		}
	}
}

// Write drives the format pipeline against AR (TYPE AR) or line 19
// (TYPE 19), printing each emitted code, until STOP or Cancel. TYPE 19
// additionally pauses while the enable switch is off.
func (t *Typewriter) Write(sCode uint8) uint8 {
	t.canceled = false
	line := io15.ARData(t.drum)
	autoStop := false
	if sCode == device.CodeType19 {
		line = io15.Line19Data(t.drum)
		autoStop = true
	}

	for {
		if t.canceled {
			return sCode
		}
		// Busy-polls the enable switch: nothing wakes this loop when
		// the switch changes.
		if sCode == device.CodeType19 && !t.enabled {
			continue
		}
		code := t.io.OutputStep(line, autoStop)
		t.print(code)
		if code == device.IOStop {
			return sCode
		}
	}
}

// print renders one I/O code as a typewriter character.
func (t *Typewriter) print(code uint8) {
	if code&device.IODataFlag != 0 {
		fmt.Fprintf(t.out, "%d", code&0x0f)
		return
	}
	if ch, ok := glyph[code]; ok {
		_, _ = t.out.Write([]byte{ch})
	}
}

// encodeKey maps a typed byte back to an I/O code: digits '0'..'9' (only
// the low nibble matters to the drum) become data frames, and the
// punctuation the typewriter prints for control codes round-trips back
// to its control code.
func encodeKey(b byte) uint8 {
	if b >= '0' && b <= '9' {
		return (b - '0') | device.IODataFlag
	}
	switch b {
	case ' ':
		return device.IOSpace
	case '-':
		return device.IOMinus
	case '\n', '\r':
		return device.IOCR
	case '\t':
		return device.IOTab
	case '#':
		return device.IOStop
	case '*':
		return device.IOReload
	case '.':
		return device.IOPeriod
	default:
		return device.IOWait
	}
}

// ReverseBlock is not meaningful for a console device.
func (t *Typewriter) ReverseBlock() uint8 {
	return 0
}

// Cancel requests the active loop exit at its next format/input step.
func (t *Typewriter) Cancel() {
	t.canceled = true
}

// InitDev resets console state.
func (t *Typewriter) InitDev() uint8 {
	t.canceled = false
	return 0
}

// Shutdown is a no-op: stdin/stdout outlive the device.
func (t *Typewriter) Shutdown() {}

// Debug enables a named debug option ("IO").
func (t *Typewriter) Debug(opt string) error {
	mask, ok := debugOption[opt]
	if !ok {
		return errors.New("invalid debug option: " + opt)
	}
	t.debugMsk |= mask
	return nil
}

// StdConsole returns a typewriter bound to the process's stdin/stdout.
func StdConsole(d *drum.Drum, session *io15.Session) *Typewriter {
	return New(d, session, os.Stdout, os.Stdin)
}
