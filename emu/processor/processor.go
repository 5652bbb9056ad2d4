/*
 * g15sim - Processor control loop.
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

// Package processor runs the G-15's fetch/execute cycle on its own
// goroutine, dispatching master-channel control messages (compute
// switch changes, reset, single-step, cancel I/O) the way
// emu/core drives the CPU in the wider family this simulator descends
// from. The cooperative loop shape is unchanged: cycle the machine
// while it's running, advance the event scheduler when it isn't, and
// drain the master channel between cycles.
package processor

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/event"
	"github.com/retro-g15/g15sim/emu/fetch"
	"github.com/retro-g15/g15sim/emu/flipflop"
	"github.com/retro-g15/g15sim/emu/io15"
	"github.com/retro-g15/g15sim/emu/master"
	"github.com/retro-g15/g15sim/emu/timer"
)

// wordTimePeriod approximates how long one word-time takes on real
// drum hardware. spec.md's throttle only requires that simulated time
// not race ahead of wall time by an unbounded amount; it doesn't name
// the drum's real rotation speed, so this is a deliberate approximation
// rather than a historical constant.
const wordTimePeriod = 50 * time.Microsecond

// Processor owns the fetch/execute state machine and the goroutine
// that drives it.
type Processor struct {
	wg     sync.WaitGroup
	done   chan struct{}
	master chan master.Packet
	timer  *timer.Timer

	// budget is how many word-times the run loop may still step before
	// it must wait for the next clock tick; it's the throttle's sole
	// state, incremented by TimeClock packets and spent one per Step.
	budget int

	Fetch *fetch.Processor
}

// New returns a processor built around a fresh drum, flip-flop bank,
// and I/O session, listening for control messages on masterChannel.
func New(masterChannel chan master.Packet) *Processor {
	d := drum.New()
	bank := flipflop.NewBank(d, false)
	session := io15.NewSession(d, bank, func(format string, args ...any) {
		slog.Warn(fmt.Sprintf(format, args...))
	})

	return &Processor{
		master: masterChannel,
		done:   make(chan struct{}),
		timer:  timer.NewTimer(masterChannel, wordTimePeriod),
		Fetch:  fetch.NewProcessor(d, bank, session),
	}
}

// Start runs the fetch/execute cycle until Stop is called. The drum
// throttle in spec.md §4.1/§5 is realized as a word-time budget: the
// timer's TimeClock pulses (paced at wordTimePeriod) each grant one
// more Step, so the loop blocks on the master channel instead of
// hot-spinning once it has run as far ahead of wall time as its
// budget allows.
func (p *Processor) Start() {
	p.wg.Add(1)
	defer p.wg.Done()

	for {
		running := p.Fetch.Switch != fetch.SwitchOff && !p.Fetch.Halted()

		if running && p.budget <= 0 {
			select {
			case <-p.done:
				p.shutdownDevices()
				slog.Info("Shutdown G-15 processor")
				return
			case packet := <-p.master:
				p.processPacket(packet)
			}
			continue
		}

		if running {
			wasIdle := !p.Fetch.IO.Active()
			p.Fetch.Step(false)
			if wasIdle && p.Fetch.IO.Active() {
				go p.Fetch.RunIO()
			}
			p.budget--
			event.Advance(1)
		} else if event.AnyEvent() {
			event.Advance(1)
		}

		select {
		case <-p.done:
			p.shutdownDevices()
			slog.Info("Shutdown G-15 processor")
			return
		case packet := <-p.master:
			p.processPacket(packet)
		default:
		}
	}
}

// Stop halts the run loop and waits (with a timeout) for it to exit.
func (p *Processor) Stop() {
	close(p.done)
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for processor to finish.")
	}
}

func (p *Processor) shutdownDevices() {
	for _, dev := range p.Fetch.Devices {
		dev.Shutdown()
	}
	p.timer.Shutdown()
}

// processPacket applies one master-channel control message.
func (p *Processor) processPacket(packet master.Packet) {
	switch packet.Msg {
	case master.TimeClock:
		// Drum throttle: one tick grants one more word-time of Step
		// budget, pacing the run loop to wordTimePeriod instead of
		// letting it race ahead of wall time.
		p.budget++
	case master.Start:
		p.Fetch.Switch = fetch.SwitchGo
		p.Fetch.CH = false
		p.timer.Start()
	case master.Stop:
		p.Fetch.Switch = fetch.SwitchOff
		p.timer.Stop()
	case master.Reset:
		p.Fetch.CH = true
		p.Fetch.CQ = false
		p.Fetch.CG = false
	case master.Step:
		p.Fetch.Step(true)
	case master.CancelIO:
		if p.Fetch.IO.Active() {
			p.Fetch.IO.Cancel()
		}
	}
}
