/*
 * g15sim - Card reader/punch device.
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

// Package devcard implements the card reader and card punch on top of
// util/card's generic column-image deck. The G-15 card codes don't
// carry the I/O format pipeline's bit-serial framing the way tape and
// paper-tape codes do, so each column's low 4 bits are treated as one
// data-frame digit, 80 per card, with a STOP closing out the card.
package devcard

import (
	config "github.com/retro-g15/g15sim/config/configparser"
	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/io15"
	"github.com/retro-g15/g15sim/util/card"
)

// Reader is the card reader.
type Reader struct {
	io       *io15.Session
	deck     *card.CardContext
	canceled bool
}

var _ device.Device = (*Reader)(nil)

// NewReader returns a card reader driven by session.
func NewReader(session *io15.Session) *Reader {
	return &Reader{io: session, deck: card.NewCardContext(card.ModeAuto)}
}

// Attach mounts a card deck file.
func (r *Reader) Attach(fileName string) error {
	return r.deck.Attach(fileName, false, true)
}

// Read reads one card, precessing its 80 columns into line 23 as data
// frames and closing the block with STOP, then returns. It also returns
// on Cancel, or when the deck is empty (marking the I/O hung).
func (r *Reader) Read(sCode uint8) uint8 {
	r.canceled = false
	for {
		if r.canceled {
			return sCode
		}
		c, status := r.deck.ReadCard()
		switch status {
		case card.CardEmpty, card.CardEOF, card.CardError:
			r.io.SetHung(true)
			return sCode
		}
		for col := 0; col < len(c.Image); col++ {
			if r.canceled {
				return sCode
			}
			digit := uint8(c.Image[col] & 0x0f) | device.IODataFlag
			r.io.InputStep(digit)
		}
		if r.io.InputStep(device.IOStop) {
			return sCode
		}
	}
}

// Write is not supported by the reader.
func (r *Reader) Write(sCode uint8) uint8 { return sCode }

// ReverseBlock is not supported by the reader.
func (r *Reader) ReverseBlock() uint8 { return 0 }

// Cancel requests the read loop exit at its next column.
func (r *Reader) Cancel() { r.canceled = true }

// InitDev resets reader state.
func (r *Reader) InitDev() uint8 {
	r.canceled = false
	return 0
}

// Shutdown unmounts the deck.
func (r *Reader) Shutdown() { _ = r.deck.Detach() }

// Debug is a no-op: util/card has no debug-option surface.
func (r *Reader) Debug(_ string) error { return nil }

// Register builds a card reader bound to session and attaches its
// config-file directive.
func Register(session *io15.Session) *Reader {
	reader := NewReader(session)
	config.RegisterModel("CARDREAD", config.TypeOption, func(_ uint16, fileName string, _ []config.Option) error {
		return reader.Attach(fileName)
	})
	return reader
}

// Punch is the card punch.
type Punch struct {
	io       *io15.Session
	drum     *drum.Drum
	deck     *card.CardContext
	canceled bool
}

var _ device.Device = (*Punch)(nil)

// NewPunch returns a card punch driven by session/d.
func NewPunch(d *drum.Drum, session *io15.Session) *Punch {
	return &Punch{io: session, drum: d, deck: card.NewCardContext(card.ModeAuto)}
}

// Attach opens the punch output file.
func (p *Punch) Attach(fileName string) error {
	return p.deck.Attach(fileName, true, false)
}

// Write drives the output pipeline against line 19, packs each emitted
// digit into the next column of a card image, and punches the card
// once STOP closes the block.
func (p *Punch) Write(sCode uint8) uint8 {
	p.canceled = false
	var img card.Card
	col := 0
	for {
		if p.canceled {
			return sCode
		}
		code := p.io.OutputStep(io15.Line19Data(p.drum), false)
		if code&device.IODataFlag != 0 && col < len(img.Image) {
			img.Image[col] = uint16(code & 0x0f)
			col++
		}
		if code == device.IOStop {
			p.deck.PunchCard(img)
			return sCode
		}
	}
}

// Read is not supported by the punch.
func (p *Punch) Read(sCode uint8) uint8 { return sCode }

// ReverseBlock is not supported by the punch.
func (p *Punch) ReverseBlock() uint8 { return 0 }

// Cancel requests the write loop exit at its next format step.
func (p *Punch) Cancel() { p.canceled = true }

// InitDev resets punch state.
func (p *Punch) InitDev() uint8 {
	p.canceled = false
	return 0
}

// Shutdown closes the punch output file.
func (p *Punch) Shutdown() { _ = p.deck.Detach() }

// Debug is a no-op: util/card has no debug-option surface.
func (p *Punch) Debug(_ string) error { return nil }

// RegisterPunch builds a card punch bound to d/session and attaches its
// config-file directive.
func RegisterPunch(d *drum.Drum, session *io15.Session) *Punch {
	punch := NewPunch(d, session)
	config.RegisterModel("CARDPUNCH", config.TypeOption, func(_ uint16, fileName string, _ []config.Option) error {
		return punch.Attach(fileName)
	})
	return punch
}
