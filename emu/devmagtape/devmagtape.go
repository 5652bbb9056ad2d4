/*
 * g15sim - Magnetic tape device.
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

// Package devmagtape implements the G-15's magnetic tape unit on top of
// util/tape's generic TAP/AWS frame reader and writer: each tape frame
// carries one I/O code, read or written through emu/io15's same
// input/output pipeline the photoreader, punch, and typewriter use.
package devmagtape

import (
	config "github.com/retro-g15/g15sim/config/configparser"
	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/io15"
	"github.com/retro-g15/g15sim/util/tape"
)

// MagTape is the magnetic tape unit, shared across MAGTAPE-READ and
// MAGTAPE-WRITE.
type MagTape struct {
	io       *io15.Session
	drum     *drum.Drum
	tape     *tape.Context
	canceled bool
}

var _ device.Device = (*MagTape)(nil)

// New returns a magnetic tape unit driven by session for I/O precession
// and backed by a fresh util/tape context.
func New(d *drum.Drum, session *io15.Session) *MagTape {
	return &MagTape{io: session, drum: d, tape: tape.NewTapeContext()}
}

// Attach mounts a tape image file.
func (m *MagTape) Attach(fileName string) error {
	return m.tape.Attach(fileName)
}

// Detach unmounts the tape image.
func (m *MagTape) Detach() error {
	return m.tape.Detach()
}

// Read runs MAGTAPE-READ: pull frames off the current tape record and
// precess them into line 23 via the input pipeline until the record or
// a block closes, or Cancel.
func (m *MagTape) Read(sCode uint8) uint8 {
	m.canceled = false
	if err := m.tape.ReadForwStart(); err != nil {
		m.io.SetHung(true)
		return sCode
	}
	for {
		if m.canceled {
			return sCode
		}
		frame, err := m.tape.ReadFrame()
		if err != nil {
			m.io.SetHung(true)
			return sCode
		}
		if m.io.InputStep(frame) {
			return sCode
		}
	}
}

// Write runs MAGTAPE-WRITE: drive the output pipeline against line 19
// and write each emitted code as one tape frame until STOP or Cancel.
func (m *MagTape) Write(sCode uint8) uint8 {
	m.canceled = false
	if err := m.tape.WriteStart(); err != nil {
		m.io.SetHung(true)
		return sCode
	}
	for {
		if m.canceled {
			return sCode
		}
		code := m.io.OutputStep(io15.Line19Data(m.drum), false)
		if err := m.tape.WriteFrame(code); err != nil {
			return sCode
		}
		if code == device.IOStop {
			_ = m.tape.FinishRecord()
			return sCode
		}
	}
}

// ReverseBlock backs the tape up one physical block.
func (m *MagTape) ReverseBlock() uint8 {
	if err := m.tape.ReadBackStart(); err != nil {
		return 0
	}
	return 0
}

// Cancel requests the active read/write loop exit at its next frame.
func (m *MagTape) Cancel() {
	m.canceled = true
}

// InitDev rewinds the tape to load point.
func (m *MagTape) InitDev() uint8 {
	m.canceled = false
	_ = m.tape.Rewind()
	return 0
}

// Shutdown unmounts the tape image.
func (m *MagTape) Shutdown() {
	_ = m.Detach()
}

// Debug enables a named util/tape debug option ("CMD"/"DATA"/"DETAIL").
func (m *MagTape) Debug(opt string) error {
	return tape.Debug(opt)
}

// Register builds a magnetic tape unit bound to d/session and attaches
// its config-file directive.
func Register(d *drum.Drum, session *io15.Session) *MagTape {
	unit := New(d, session)
	config.RegisterModel("MAGTAPE", config.TypeOption, func(_ uint16, fileName string, _ []config.Option) error {
		return unit.Attach(fileName)
	})
	return unit
}
