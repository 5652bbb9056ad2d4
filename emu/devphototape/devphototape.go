/*
 * g15sim - Photoreader (paper tape reader) device.
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

// Package devphototape implements the photoreader, the G-15's punched
// paper-tape reader, on both the PHOTOREAD and the slower SLOWIN
// device-selector codes. A tape image is a flat file of 5-bit frames,
// one byte per frame (the low 5 bits hold the I/O code exactly as the
// format pipeline in emu/io15 understands it: bit 4 set for a data
// frame, bits 0..3 the digit; otherwise one of the IOXxx control
// codes).
package devphototape

import (
	"errors"
	"io"
	"os"

	config "github.com/retro-g15/g15sim/config/configparser"
	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/io15"
	"github.com/retro-g15/g15sim/util/debug"
)

const debugMaskIO = 1 << 0

var debugOption = map[string]int{
	"IO": debugMaskIO,
}

// PhotoReader is the photoreader device, sharing one tape image across
// both its fast (PHOTOREAD) and slow (SLOWIN) selector codes.
type PhotoReader struct {
	io       *io15.Session
	file     *os.File
	fileName string
	canceled bool
	debugMsk int
}

var _ device.Device = (*PhotoReader)(nil)

// New returns a photoreader driven by session for I/O format precession.
func New(session *io15.Session) *PhotoReader {
	return &PhotoReader{io: session}
}

// Attach opens a tape image for reading.
func (r *PhotoReader) Attach(fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return err
	}
	if r.file != nil {
		_ = r.file.Close()
	}
	r.file = f
	r.fileName = fileName
	return nil
}

// Detach closes the tape image.
func (r *PhotoReader) Detach() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Read runs the photoreader until end of block (STOP, or an automatic
// reload), Cancel, or end of tape, precessing each frame through the
// session's input pipeline. A RELOAD frame copies/precesses but does
// not end the block, so the loop keeps reading through it.
func (r *PhotoReader) Read(sCode uint8) uint8 {
	r.canceled = false
	if r.file == nil {
		r.io.SetHung(true)
		debug.Debugf("PHOTO", r.debugMsk, debugMaskIO, "read with no tape attached")
		return sCode
	}

	buf := make([]byte, 1)
	for {
		if r.canceled {
			return sCode
		}
		if _, err := r.file.Read(buf); err != nil {
			if errors.Is(err, io.EOF) {
				r.io.SetHung(true)
			}
			return sCode
		}
		if r.io.InputStep(buf[0]) {
			return sCode
		}
	}
}

// Write is not supported by the photoreader; it always returns
// immediately (S<16 device selection only routes read-class codes
// here, so this should never be called in practice).
func (r *PhotoReader) Write(sCode uint8) uint8 {
	return sCode
}

// ReverseBlock is not meaningful for a one-way paper-tape reader.
func (r *PhotoReader) ReverseBlock() uint8 {
	return 0
}

// Cancel requests the read loop exit at its next frame boundary.
func (r *PhotoReader) Cancel() {
	r.canceled = true
}

// InitDev resets reader state; the tape stays attached and positioned.
func (r *PhotoReader) InitDev() uint8 {
	r.canceled = false
	return 0
}

// Shutdown closes the tape image.
func (r *PhotoReader) Shutdown() {
	_ = r.Detach()
}

// Debug enables a named debug option ("IO").
func (r *PhotoReader) Debug(opt string) error {
	mask, ok := debugOption[opt]
	if !ok {
		return errors.New("invalid debug option: " + opt)
	}
	r.debugMsk |= mask
	return nil
}

// Register builds a photoreader bound to session and attaches its
// config-file directive, so a PHOTOREADER line in the configuration
// file can name the tape image. Unlike the teacher's channel devices,
// construction needs the shared I/O session handed in explicitly
// rather than discovered through an init()-time global registry, so
// callers invoke this from main's wiring instead of a package init.
func Register(session *io15.Session) *PhotoReader {
	reader := New(session)
	config.RegisterModel("PHOTOREADER", config.TypeOption, func(_ uint16, fileName string, _ []config.Option) error {
		return reader.Attach(fileName)
	})
	return reader
}
