/*
 * g15sim - Simulated rotating drum store.
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

// Package drum models the G-15's rotating magnetic drum store: 20 long
// lines of 108 words, 4 short lines of 4 words, the MQ/ID/PN two-word
// registers, the one-word AR/CM, the MZ IO buffer, and the CN number
// track. It owns the word-time clock and the bit-level precession
// primitives used by I/O format processing.
package drum

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	LongLines    = 20
	LongWords    = 108
	ShortLines   = 4
	ShortWords   = 4
	FirstShort   = 20
	CNWords      = 108
	DestMQ       = 24
	DestID       = 25
	DestPN       = 26
	DestTest     = 27
	DestAR       = 28
	DestARAdd    = 29
	DestPNAdd    = 30
	DestSpecial  = 31
	SrcCombined  = 27 // (20∧21)∨(¬20∧AR)
	SrcARAndIR   = 29 // 20∧IR
	SrcNotAndAnd = 30 // ¬20∧21
	SrcAnd2021   = 31 // 20∧21
)

// Drum is the processor's entire store plus its word-time clock.
type Drum struct {
	long  [LongLines][LongWords]uint32
	short [ShortLines][ShortWords]uint32

	mq [2]uint32
	id [2]uint32
	pn [2]uint32
	ar uint32
	cm uint32
	mz uint32
	cn [CNWords]uint32

	wordTime int // Monotonically increasing; L = wordTime mod 108.
	ioActive bool

	commandLine int // Which long line (0..7) fetch reads commands from.
}

// New returns a drum with every line and register zeroed.
func New() *Drum {
	return &Drum{}
}

// L returns the current drum position, 0..107.
func (d *Drum) L() int {
	return d.wordTime % LongWords
}

// L2 reports even (0) or odd (1) word-time.
func (d *Drum) L2() int {
	return d.L() % 2
}

// WordTime returns the monotonic word-time counter.
func (d *Drum) WordTime() int {
	return d.wordTime
}

// WaitFor advances word-time by exactly n word-times.
func (d *Drum) WaitFor(n int) {
	d.wordTime += n
}

// WaitUntil advances word-time by (target-L) mod 108 and returns the
// number of word-times actually waited. A target equal to the current L
// waits zero word-times (the "at most 107 steps" command-timing
// semantics); callers that need the "exactly one revolution" hardware
// behavior for a same-position target should call WaitFor(LongWords)
// explicitly instead.
func (d *Drum) WaitUntil(target int) int {
	delta := ((target - d.L()) % LongWords) + LongWords
	delta %= LongWords
	d.WaitFor(delta)
	return delta
}

// IOActive reports whether a device operation currently holds the
// word-time slot; while true, the processor may not fetch a new command.
func (d *Drum) IOActive() bool {
	return d.ioActive
}

// SetIOActive asserts or clears the io_active flag.
func (d *Drum) SetIOActive(active bool) {
	d.ioActive = active
}

// CommandLine returns the long line (0..7) the fetch stage reads commands
// from, selected via the front-panel 0..7 keyboard commands.
func (d *Drum) CommandLine() int {
	return d.commandLine
}

// SetCommandLine selects the command line, clamped to 0..7.
func (d *Drum) SetCommandLine(line int) {
	if line < 0 {
		line = 0
	}
	if line > 7 {
		line = 7
	}
	d.commandLine = line
}

// Read returns the word at the current L on a long (0..19) or short
// (20..23) line.
func (d *Drum) Read(line int) uint32 {
	if line < LongLines {
		return d.long[line][d.L()]
	}
	return d.short[line-FirstShort][d.L()%ShortWords]
}

// Write replaces the word at the current L on a long or short line.
func (d *Drum) Write(line int, w uint32) {
	if line < LongLines {
		d.long[line][d.L()] = w
		return
	}
	d.short[line-FirstShort][d.L()%ShortWords] = w
}

// ReadAt returns the word at an explicit position on a long or short line,
// without disturbing the drum's own word-time.
func (d *Drum) ReadAt(line, pos int) uint32 {
	if line < LongLines {
		return d.long[line][pos%LongWords]
	}
	return d.short[line-FirstShort][pos%ShortWords]
}

// MQ returns the half of the MQ register selected by the current L2.
func (d *Drum) MQ() uint32 { return d.mq[d.L2()] }

// SetMQ writes the half of MQ selected by the current L2.
func (d *Drum) SetMQ(w uint32) { d.mq[d.L2()] = w }

// MQHalf returns a specific half of MQ (0=even, 1=odd) regardless of L2.
func (d *Drum) MQHalf(half int) uint32 { return d.mq[half&1] }

// SetMQHalf writes a specific half of MQ regardless of L2.
func (d *Drum) SetMQHalf(half int, w uint32) { d.mq[half&1] = w }

// ID returns the half of the ID register selected by the current L2.
func (d *Drum) ID() uint32 { return d.id[d.L2()] }

// SetID writes the half of ID selected by the current L2.
func (d *Drum) SetID(w uint32) { d.id[d.L2()] = w }

// IDHalf returns a specific half of ID regardless of L2.
func (d *Drum) IDHalf(half int) uint32 { return d.id[half&1] }

// SetIDHalf writes a specific half of ID regardless of L2.
func (d *Drum) SetIDHalf(half int, w uint32) { d.id[half&1] = w }

// PN returns the half of the PN register selected by the current L2.
func (d *Drum) PN() uint32 { return d.pn[d.L2()] }

// SetPN writes the half of PN selected by the current L2.
func (d *Drum) SetPN(w uint32) { d.pn[d.L2()] = w }

// PNHalf returns a specific half of PN regardless of L2.
func (d *Drum) PNHalf(half int) uint32 { return d.pn[half&1] }

// SetPNHalf writes a specific half of PN regardless of L2.
func (d *Drum) SetPNHalf(half int, w uint32) { d.pn[half&1] = w }

// AR returns the one-word accumulator register.
func (d *Drum) AR() uint32 { return d.ar }

// SetAR writes the accumulator register.
func (d *Drum) SetAR(w uint32) { d.ar = w }

// CM returns the (display-only) command register.
func (d *Drum) CM() uint32 { return d.cm }

// SetCM writes the command register.
func (d *Drum) SetCM(w uint32) { d.cm = w }

// MZ returns the one-word I/O format buffer.
func (d *Drum) MZ() uint32 { return d.mz }

// SetMZ writes the I/O format buffer.
func (d *Drum) SetMZ(w uint32) { d.mz = w }

// CNAt returns a word of the persistent number track.
func (d *Drum) CNAt(i int) uint32 { return d.cn[i%CNWords] }

// SetCNAt writes a word of the number track.
func (d *Drum) SetCNAt(i int, w uint32) { d.cn[i%CNWords] = w }

// LoadCN reads the persistent number track from fileName, one
// little-endian uint32 per word. A missing file leaves CN zeroed, since
// a fresh number track is a valid starting state.
func (d *Drum) LoadCN(fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var words [CNWords]uint32
	if err := binary.Read(file, binary.LittleEndian, &words); err != nil {
		return fmt.Errorf("loading CN track from %s: %w", fileName, err)
	}
	d.cn = words
	return nil
}

// SaveCN writes the persistent number track to fileName, one
// little-endian uint32 per word, so it can be reloaded in a later
// session via LoadCN.
func (d *Drum) SaveCN(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := binary.Write(file, binary.LittleEndian, &d.cn); err != nil {
		return fmt.Errorf("saving CN track to %s: %w", fileName, err)
	}
	return nil
}

// Clear zeros every line and register but preserves CN, which is
// persistent across resets per spec and is only reseeded by a reload.
func (d *Drum) Clear() {
	d.long = [LongLines][LongWords]uint32{}
	d.short = [ShortLines][ShortWords]uint32{}
	d.mq = [2]uint32{}
	d.id = [2]uint32{}
	d.pn = [2]uint32{}
	d.ar = 0
	d.cm = 0
	d.mz = 0
	d.wordTime = 0
	d.ioActive = false
}
