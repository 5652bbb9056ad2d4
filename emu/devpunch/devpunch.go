/*
 * g15sim - Paper tape punch device.
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

// Package devpunch implements PUNCH 19, the format-directed paper-tape
// punch: each word-time it asks emu/io15 to precess one format code out
// of MZ against line 19, and appends the resulting frame byte to the
// punch image.
package devpunch

import (
	"errors"
	"os"

	config "github.com/retro-g15/g15sim/config/configparser"
	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/io15"
	"github.com/retro-g15/g15sim/util/debug"
)

const debugMaskIO = 1 << 0

var debugOption = map[string]int{
	"IO": debugMaskIO,
}

// Punch is the paper tape punch device.
type Punch struct {
	io       *io15.Session
	drum     *drum.Drum
	file     *os.File
	canceled bool
	debugMsk int
}

var _ device.Device = (*Punch)(nil)

// New returns a punch driven by session for format precession.
func New(d *drum.Drum, session *io15.Session) *Punch {
	return &Punch{io: session, drum: d}
}

// Attach opens (creating/truncating) a file to receive punched frames.
func (p *Punch) Attach(fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if p.file != nil {
		_ = p.file.Close()
	}
	p.file = f
	return nil
}

// Detach closes the punch image.
func (p *Punch) Detach() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// Read is not supported by an output-only device.
func (p *Punch) Read(sCode uint8) uint8 {
	return sCode
}

// Write drives the format pipeline against line 19 until it emits a
// STOP frame (forced by AN auto-stop or by a genuine format-code STOP),
// or until Cancel.
func (p *Punch) Write(sCode uint8) uint8 {
	p.canceled = false
	if p.file == nil {
		p.io.SetHung(true)
		debug.Debugf("PUNCH", p.debugMsk, debugMaskIO, "write with no output file attached")
		return sCode
	}

	for {
		if p.canceled {
			return sCode
		}
		code := p.io.OutputStep(io15.Line19Data(p.drum), true)
		if _, err := p.file.Write([]byte{code}); err != nil {
			return sCode
		}
		if code == device.IOStop {
			return sCode
		}
	}
}

// ReverseBlock is not meaningful for a one-way punch.
func (p *Punch) ReverseBlock() uint8 {
	return 0
}

// Cancel requests the write loop exit at its next format step.
func (p *Punch) Cancel() {
	p.canceled = true
}

// InitDev resets punch state.
func (p *Punch) InitDev() uint8 {
	p.canceled = false
	return 0
}

// Shutdown closes the punch image.
func (p *Punch) Shutdown() {
	_ = p.Detach()
}

// Debug enables a named debug option ("IO").
func (p *Punch) Debug(opt string) error {
	mask, ok := debugOption[opt]
	if !ok {
		return errors.New("invalid debug option: " + opt)
	}
	p.debugMsk |= mask
	return nil
}

// Register builds a punch bound to d/session and attaches its
// config-file directive.
func Register(d *drum.Drum, session *io15.Session) *Punch {
	punch := New(d, session)
	config.RegisterModel("PUNCH", config.TypeOption, func(_ uint16, fileName string, _ []config.Option) error {
		return punch.Attach(fileName)
	})
	return punch
}
