/*
 * g15sim - Fetch/execute state machine.
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

// Package fetch implements the processor's two-state command cycle: RC
// (read command) decodes the next command word and positions the drum
// for it; TR (transfer) dispatches to one of the transfer engine's
// eight destination families or to a D=31 special operation. Breakpoint
// and halt handling, and the D=31 S=16..31 special-command table, live
// here rather than in the transfer engine because they need the
// compute-switch and single-step context the transfer engine doesn't
// carry.
package fetch

import (
	"strconv"
	"strings"

	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/flipflop"
	"github.com/retro-g15/g15sim/emu/io15"
	"github.com/retro-g15/g15sim/emu/multiword"
	"github.com/retro-g15/g15sim/emu/transfer"
	"github.com/retro-g15/g15sim/emu/word"
	"github.com/retro-g15/g15sim/util/hex"
)

// ComputeSwitch mirrors the front-panel compute switch.
type ComputeSwitch int

const (
	SwitchOff ComputeSwitch = iota
	SwitchGo
	SwitchBP
)

// D=31 special-op source codes (S field), kept local since they are only
// meaningful once D=31 has already been decoded.
const (
	sHalt          = 16
	sRingBell      = 17
	sOutputM20AndID = 18
	sReturnExit    = 20
	sMarkExit      = 21
	sTestARSign    = 22
	sClearRegs     = 23
	sMultiply      = 24
	sDivide        = 25
	sShift         = 26
	sNormalize     = 27
	sTestIOReady   = 28
	sTestResetFO   = 29
	sMisc          = 31
)

// Processor drives the RC/TR cycle against a drum, flip-flop bank, and
// I/O session.
type Processor struct {
	Drum *drum.Drum
	Bank *flipflop.Bank
	IO   *io15.Session

	// Devices maps a device-selector code (D=31, S=0..15) to the
	// peripheral that handles it; a code with no entry is an
	// unimplemented-I/O condition per the error-handling design.
	Devices map[uint8]device.Device

	// Switch is the front-panel compute switch; it gates both halt
	// blocking and breakpoint/return-exit arbitration.
	Switch ComputeSwitch

	// PunchSwitch mirrors the front-panel punch switch (0 off, 1
	// copy-to-punch, 2 rewind); S=17 ring-bell only sounds when C=1
	// and this is non-zero.
	PunchSwitch int

	// Bell is called with a beat count when S=17 (ring bell) fires; nil
	// is a valid no-op (no physical bell to drive in simulation).
	Bell func(beats int)

	// Warnf receives non-standard-usage warnings; nil is a valid no-op.
	Warnf func(format string, args ...any)

	CQ bool // Test-skip: set by the TEST destination or S=22, consumed by the next RC.
	CG bool // Next-command-from-AR.
	CH bool // Halt: blocks the run loop.
	CZ bool // Step gate: additionally blocks single-step while set.

	cj bool // Internal initiate-read-command signal; read-only externally.

	cmd          word.Command
	nextN        int  // Word-time the next RC waits until before reading.
	deferredHalt bool // Return-exit's one-command-deferred breakpoint halt.
	mark         int  // Word-time stashed by the mark-exit special op.
	singleStep   bool // Set for the duration of a forced single-step Step call.
}

// NewProcessor returns a processor ready to run from word-time 0.
func NewProcessor(d *drum.Drum, bank *flipflop.Bank, io *io15.Session) *Processor {
	return &Processor{
		Drum:    d,
		Bank:    bank,
		IO:      io,
		Devices: make(map[uint8]device.Device),
		Switch:  SwitchOff,
	}
}

func (p *Processor) warnf(format string, args ...any) {
	if p.Warnf != nil {
		p.Warnf(format, args...)
	}
}

// CJ reports the internal read-command-initiate signal.
func (p *Processor) CJ() bool {
	return p.cj
}

// Command returns the most recently decoded command word, for
// introspection by the front-panel/console layer.
func (p *Processor) Command() word.Command {
	return p.cmd
}

// Halted reports whether the run loop is currently blocked.
func (p *Processor) Halted() bool {
	return p.CH
}

// Step runs one RC/TR cycle. It refuses to run while halted, unless
// force is set (the front-panel "I" single-step command), in which case
// CZ still blocks it.
func (p *Processor) Step(force bool) bool {
	if p.CH && !(force && !p.CZ) {
		return false
	}
	p.CH = false
	p.singleStep = force
	defer func() { p.singleStep = false }()
	p.readCommand()
	p.transfer()
	return true
}

// Run executes cycles until CH is set (a halt or breakpoint fires).
func (p *Processor) Run() {
	for !p.CH {
		p.readCommand()
		p.transfer()
	}
}

// readCommand is the RC state.
func (p *Processor) readCommand() {
	p.cj = true
	defer func() { p.cj = false }()

	if p.deferredHalt {
		p.CH = true
		p.deferredHalt = false
	}

	if p.CQ {
		p.Drum.WaitFor(1)
	}
	p.CQ = false

	var raw uint32
	if p.CG {
		raw = p.Drum.AR()
		p.CG = false
	} else {
		p.Drum.WaitUntil(p.nextN)
		raw = p.Drum.Read(p.Drum.CommandLine())
	}

	cmd := word.DecodeCommand(raw)
	if p.Drum.L() == 107 {
		p.warnf("command read at L=107; applying legacy N/T adjustment")
		cmd.N = uint8((int(cmd.N) - 20 + drum.LongWords) % drum.LongWords)
		if !(cmd.D == drum.DestSpecial && cmd.S >= sMultiply && cmd.S <= sNormalize) {
			cmd.T = uint8((int(cmd.T) - 20 + drum.LongWords) % drum.LongWords)
		}
	}

	advance := 1
	if cmd.DI == 1 {
		advance = 2
	}
	p.Drum.WaitFor(advance)

	p.nextN = int(cmd.N) % drum.LongWords
	p.cmd = cmd
}

// transfer is the TR state: dispatch to a transfer-engine family, or to
// the D=31 special-command table.
func (p *Processor) transfer() {
	ctx := transfer.NewContext(p.Drum, p.Bank, p.cmd)
	ctx.Warnf = p.Warnf

	if p.cmd.D == drum.DestSpecial {
		p.specialCommand(ctx)
	} else {
		transfer.TransferDriver(ctx, transfer.Transform(p.cmd.D))
	}

	if ctx.CQ {
		p.CQ = true
	}

	p.applyBreakpoint()
}

// applyBreakpoint implements the BP halt rule, deferring the Return
// Exit's halt to the following command so the return takes effect
// first.
func (p *Processor) applyBreakpoint() {
	if p.Switch != SwitchBP || p.cmd.BP == 0 {
		return
	}
	if p.cmd.D == drum.DestSpecial && p.cmd.S == sReturnExit {
		p.deferredHalt = true
		return
	}
	p.CH = true
}

// specialCommand dispatches D=31, S=0..31: device initiate for S<16,
// the fixed special-operation table for S=16..23 and 28..31, and the
// multi-word operations for S=24..27.
func (p *Processor) specialCommand(ctx *transfer.Context) {
	s := p.cmd.S
	switch {
	case s < 16:
		p.initiateIO(s)
	case s == sHalt:
		p.CH = true
	case s == sRingBell:
		p.ringBell()
	case s == sOutputM20AndID:
		p.Drum.SetAR(p.Drum.Read(20) & p.Drum.ID())
	case s == sReturnExit:
		p.returnExit()
	case s == sMarkExit:
		p.markExit()
	case s == sTestARSign:
		ctx.CQ = word.Sign(p.Drum.AR())
	case s == sClearRegs:
		p.clearOrDecompose()
	case s == sMultiply:
		p.runMultiply()
	case s == sDivide:
		p.runDivide()
	case s == sShift:
		p.runShift()
	case s == sNormalize:
		p.runNormalize()
	case s == sTestIOReady:
		if p.cmd.C == 0 {
			ctx.CQ = !p.IO.Active()
		}
		// C=1..3 are documented no-op variants.
	case s == sTestResetFO:
		if p.cmd.C == 0 {
			ctx.CQ = p.Bank.FO.IsSet()
		} else {
			p.Bank.FO.Set(0)
		}
	case s == sMisc:
		p.misc()
	default:
		p.warnf("unimplemented D=31 S=%d variant", s)
	}
}

// initiateIO implements D=31, S<16: marks dev busy on sCode. The
// device's Read/Write loop itself is pumped by Processor.RunIO, called
// by the processor's control loop once this Step returns — the real
// G-15 overlaps computation and I/O rather than blocking the command
// stream on it, so initiate only does the bookkeeping half here.
func (p *Processor) initiateIO(sCode uint8) {
	dev, ok := p.Devices[sCode]
	if !ok {
		p.warnf("unimplemented I/O sCode=%d at L=%s: %s", sCode, strconv.Itoa(p.Drum.L()), p.DumpState())
		return
	}
	p.IO.Initiate(dev, sCode)
}

// DumpState renders AR, MQ, ID, and PN as hex words, for diagnostic
// logging around non-standard-usage warnings.
func (p *Processor) DumpState() string {
	var b strings.Builder
	hex.FormatWord(&b, []uint32{
		p.Drum.AR(),
		p.Drum.MQHalf(0), p.Drum.MQHalf(1),
		p.Drum.IDHalf(0), p.Drum.IDHalf(1),
		p.Drum.PNHalf(0), p.Drum.PNHalf(1),
	})
	return "AR MQ0 MQ1 ID0 ID1 PN0 PN1 = " + b.String()
}

// RunIO pumps the active device's Read/Write loop to completion (end
// of block or cancel_io) and retires the operation. It's a no-op when
// no device is active. Called by the processor's control loop after a
// Step that started an I/O operation, on its own goroutine so cancel_io
// can still reach a device mid-operation through Session.Cancel while
// the fetch loop keeps stepping.
func (p *Processor) RunIO() {
	if !p.IO.Active() {
		return
	}
	dev, sCode := p.Devices[p.IO.OC()], p.IO.OC()
	if dev == nil {
		p.IO.FinishIO()
		return
	}
	if device.IsReadCode(sCode) {
		dev.Read(sCode)
	} else {
		dev.Write(sCode)
	}
	p.IO.FinishIO()
}

// ringBell implements S=17: sounds Bell for N beats, gated on the punch
// switch when C=1.
func (p *Processor) ringBell() {
	if p.cmd.C == 1 && p.PunchSwitch == 0 {
		return
	}
	if p.Bell != nil {
		p.Bell(int(p.cmd.N))
	}
}

// returnExit implements the S=20 return-exit arbitration (Tech Memo
// 4/41): return to N unconditionally if the transfer-end point equals
// N, or if transfer-end <= N <= mark; otherwise return to mark. Always
// return to mark under BP-at-breakpoint or single-step, since those
// paths need the halt (deferred by applyBreakpoint) to land exactly on
// the marked command.
func (p *Processor) returnExit() {
	transferEnd := int(p.cmd.T)
	n := int(p.cmd.N)

	toMark := (p.Switch == SwitchBP && p.cmd.BP == 1) || p.singleStep
	if !toMark {
		switch {
		case transferEnd == n:
			toMark = false
		case transferEnd <= n && n <= p.mark:
			toMark = false
		default:
			toMark = true
		}
	}

	if toMark {
		p.nextN = p.mark % drum.LongWords
	} else {
		p.nextN = n % drum.LongWords
	}
}

// markExit implements S=21: stash the current word-time as the mark
// return-exit arbitration compares against, in CM bits 1..12.
func (p *Processor) markExit() {
	p.mark = p.Drum.L()
	p.Drum.SetCM(word.InsertField(p.Drum.CM(), 1, 12, uint32(p.mark)))
}

// clearOrDecompose implements S=23: C=0 clears MQ/ID/PN/IP; otherwise
// performs the mask-decompose PN∧M2 -> ID, PN∧¬M2 -> PN, where M2 is
// drum line 2 read at the current word-time (the "M" memory-line
// naming convention used elsewhere in the command set).
func (p *Processor) clearOrDecompose() {
	if p.cmd.C == 0 {
		p.Drum.SetMQHalf(0, 0)
		p.Drum.SetMQHalf(1, 0)
		p.Drum.SetIDHalf(0, 0)
		p.Drum.SetIDHalf(1, 0)
		p.Drum.SetPNHalf(0, 0)
		p.Drum.SetPNHalf(1, 0)
		p.Bank.IP.Set(0)
		return
	}
	m2 := p.Drum.Read(2)
	for half := 0; half < 2; half++ {
		pn := p.Drum.PNHalf(half)
		p.Drum.SetIDHalf(half, pn&m2)
		p.Drum.SetPNHalf(half, pn&^m2)
	}
}

// misc implements S=31: C=0 next command comes from AR; C=1 ORs the
// number track into line 18; C=2 ORs line 20 into line 18.
func (p *Processor) misc() {
	switch p.cmd.C {
	case 0:
		p.CG = true
	case 1:
		p.Drum.Write(18, p.Drum.Read(18)|p.Drum.CNAt(p.Drum.L()))
	case 2:
		p.Drum.Write(18, p.Drum.Read(18)|p.Drum.Read(20))
	}
}

// MarkPlace implements the front-panel "M" keyboard command: stash the
// current word-time the same way S=21 mark-exit does, so a later "R"
// can resume from it.
func (p *Processor) MarkPlace() {
	p.markExit()
}

// ReturnToMark implements the front-panel "R" keyboard command: resume
// RC at the word-time last stashed by MarkPlace/S=21.
func (p *Processor) ReturnToMark() {
	p.nextN = p.mark % drum.LongWords
}

// ClearMark implements the front-panel "F" keyboard command's mark-
// clearing half (the halt half is the caller's responsibility, since
// that crosses into master-channel control).
func (p *Processor) ClearMark() {
	p.mark = 0
}

// SelectCommandLine implements the front-panel "C"/digit keyboard
// commands: point RC's command-word source at drum line.
func (p *Processor) SelectCommandLine(line int) {
	p.Drum.SetCommandLine(line)
}

// CopyLocationToAR implements the front-panel "T" keyboard command:
// copy the current command line number into AR's high bits, leaving
// the rest of AR untouched.
func (p *Processor) CopyLocationToAR() {
	p.Drum.SetAR(word.InsertField(p.Drum.AR(), 25, 3, uint32(p.Drum.CommandLine())))
}

func (p *Processor) runMultiply() {
	t := int(p.cmd.T)
	if p.cmd.DI == 1 {
		p.Drum.WaitUntil(t)
	}
	multiword.Multiply(p.Drum, p.Bank, t)
}

func (p *Processor) runDivide() {
	t := int(p.cmd.T)
	if p.cmd.DI == 1 {
		p.Drum.WaitUntil(t)
	}
	multiword.Divide(p.Drum, p.Bank, t)
}

func (p *Processor) runShift() {
	t := int(p.cmd.T)
	if p.cmd.DI == 1 {
		p.Drum.WaitUntil(t)
	}
	multiword.ShiftMQLeftIDRight(p.Drum, t, p.cmd.C)
}

func (p *Processor) runNormalize() {
	t := int(p.cmd.T)
	if p.cmd.DI == 1 {
		p.Drum.WaitUntil(t)
	}
	multiword.NormalizeMQ(p.Drum, t, p.cmd.C)
}
