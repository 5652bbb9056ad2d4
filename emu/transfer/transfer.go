/*
 * g15sim - Source-to-destination transfer engine.
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

// Package transfer implements the eight destination-family transforms
// (normal lines, MQ, ID, PN, TEST, AR, add-to-AR, add-to-PN) and the
// transfer_driver that paces one of them across a command's word-times.
package transfer

import (
	"github.com/retro-g15/g15sim/emu/arithmetic"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/flipflop"
	"github.com/retro-g15/g15sim/emu/word"
)

// Context carries the per-command scratch state shared by the transfer
// driver and its eight transform families: the decoded command, the
// drum/flip-flop handles, the via-AR flag, and the running
// double-precision add state (pn_add_carry / augend+addend signs).
type Context struct {
	Drum *drum.Drum
	Flip *flipflop.Bank
	Cmd  word.Command
	CS   bool

	// IR is the external input register sampled by source code 29
	// (20∧IR); the I/O subsystem plumbs its current value in here.
	IR uint32

	CQ bool // Set by the TEST destination when LB is nonzero.

	dpCarry      bool
	pnAugendSign uint8
	pnAddendSign uint8

	// Warnf receives non-standard-usage warnings (DP transfer starting
	// on an odd word); nil is a valid no-op logger.
	Warnf func(format string, args ...any)
}

// NewContext builds a transfer context for one decoded command, deriving
// the via-AR characteristic CS up front.
func NewContext(d *drum.Drum, f *flipflop.Bank, cmd word.Command) *Context {
	return &Context{Drum: d, Flip: f, Cmd: cmd, CS: cmd.ViaAR()}
}

func (c *Context) warnf(format string, args ...any) {
	if c.Warnf != nil {
		c.Warnf(format, args...)
	}
}

// ReadSource returns the "late bus" value named by the command's S field,
// covering the regular lines (0..23), MQ/ID/PN (24..26), and the four
// bitwise composite sources (27, 29, 30, 31) built from line 20, line 21,
// AR and the external input register.
func ReadSource(ctx *Context) uint32 {
	s := ctx.Cmd.S
	switch {
	case s < drum.LongLines+drum.ShortLines:
		return ctx.Drum.Read(int(s))
	case s == 24:
		return ctx.Drum.MQ()
	case s == 25:
		return ctx.Drum.ID()
	case s == 26:
		return ctx.Drum.PN()
	case s == 27:
		l20, l21 := ctx.Drum.Read(20), ctx.Drum.Read(21)
		return ((l20 & l21) | (^l20 & ctx.Drum.AR())) & word.WordMask
	case s == 28:
		return ctx.Drum.AR()
	case s == 29:
		return ctx.Drum.Read(20) & ctx.IR & word.WordMask
	case s == 30:
		return (^ctx.Drum.Read(20) & ctx.Drum.Read(21)) & word.WordMask
	default: // 31
		return ctx.Drum.Read(20) & ctx.Drum.Read(21) & word.WordMask
	}
}

// absValue returns |w| as a sign-magnitude word (sign forced to 0).
func absValue(w uint32) uint32 {
	return word.Make(word.Magnitude(w), false)
}

// signFlipComplement implements the "sign flip then complement" step
// shared by SU (normal-line C=3) and add-to-AR's C=3 addend derivation.
func signFlipComplement(w uint32) (result uint32, suppress bool) {
	flipped := word.Make(word.Magnitude(w), !word.Sign(w))
	result, _, _, suppress = arithmetic.ComplementSingle(flipped)
	return result, suppress
}

// TransferDriver paces transform across the command's word-times: for a
// deferred command (DI=1) it waits until T, then runs 2 word-times if the
// command is double precision and lands on an even word, else 1; for an
// immediate command (DI=0) it runs ((T-L) mod 108) word-times, where a
// zero delta means a full line (108). It returns the word-time count
// actually executed.
func TransferDriver(ctx *Context, transform func(*Context)) int {
	if ctx.Cmd.C1 == 1 && ctx.Drum.L2() == 1 {
		ctx.warnf("DP transfer starting on ODD word at L=%d", ctx.Drum.L())
	}

	var count int
	if ctx.Cmd.DI == 1 {
		ctx.Drum.WaitUntil(int(ctx.Cmd.T))
		if ctx.Cmd.C1 == 1 && ctx.Drum.L2() == 0 {
			count = 2
		} else {
			count = 1
		}
	} else {
		delta := (int(ctx.Cmd.T)-ctx.Drum.L())%drum.LongWords + drum.LongWords
		delta %= drum.LongWords
		if delta == 0 {
			delta = drum.LongWords
		}
		count = delta
	}

	for i := 0; i < count; i++ {
		transform(ctx)
		ctx.Drum.WaitFor(1)
	}
	return count
}

// TransformNormal implements D=0..23: TR (C=0), AD (C=1, apply
// complement), TVA/AV (C=2), AVA/SU (C=3). TVA/AVA stage through AR
// when CS is set; otherwise they degenerate to AV/SU.
func TransformNormal(ctx *Context) {
	lb := ReadSource(ctx)
	switch ctx.Cmd.C {
	case 0:
		ctx.Drum.Write(int(ctx.Cmd.D), lb)
	case 1:
		res, _, _, _ := arithmetic.ComplementSingle(lb)
		ctx.Drum.Write(int(ctx.Cmd.D), res)
	case 2:
		if ctx.CS {
			ctx.Drum.Write(int(ctx.Cmd.D), ctx.Drum.AR())
			ctx.Drum.SetAR(lb)
		} else {
			ctx.Drum.Write(int(ctx.Cmd.D), absValue(lb))
		}
	case 3:
		if ctx.CS {
			ctx.Drum.Write(int(ctx.Cmd.D), ctx.Drum.AR())
			comp, _ := signFlipComplement(lb)
			ctx.Drum.SetAR(comp)
		} else {
			comp, _ := signFlipComplement(lb)
			ctx.Drum.Write(int(ctx.Cmd.D), comp)
		}
	}
}

// TransformTest implements D=27: compute LB exactly as TransformNormal
// would (including any AR side effect from a via-AR characteristic), but
// instead of writing a destination line, set CQ when LB is nonzero. -0
// therefore tests as nonzero.
func TransformTest(ctx *Context) {
	lb := ReadSource(ctx)
	var value uint32
	switch ctx.Cmd.C {
	case 0:
		value = lb
	case 1:
		value, _, _, _ = arithmetic.ComplementSingle(lb)
	case 2:
		if ctx.CS {
			value = ctx.Drum.AR()
			ctx.Drum.SetAR(lb)
		} else {
			value = absValue(lb)
		}
	case 3:
		if ctx.CS {
			value = ctx.Drum.AR()
			comp, _ := signFlipComplement(lb)
			ctx.Drum.SetAR(comp)
		} else {
			value, _ = signFlipComplement(lb)
		}
	}
	if value != 0 {
		ctx.CQ = true
	}
}

// TransformID implements D=25. C=0 writes LB to ID and clears the
// corresponding PN half; sources 24..26 leave IP alone, other sources at
// an even word-time copy the source sign into IP and write |LB| to ID.
// C=2 stages through AR a half at a time. Other C values fall back to
// the normal-line rule, writing into the ID register instead of a line.
func TransformID(ctx *Context) {
	lb := ReadSource(ctx)
	switch ctx.Cmd.C {
	case 0:
		if ctx.Cmd.S >= 24 && ctx.Cmd.S <= 26 {
			ctx.Drum.SetID(lb)
		} else {
			if ctx.Drum.L2() == 0 {
				ctx.Flip.IP.Set(signBit(lb))
			}
			ctx.Drum.SetID(absValue(lb))
		}
		ctx.Drum.SetPN(0)
	case 2:
		if ctx.Drum.L2() == 0 {
			ctx.Drum.SetID(0)
			ctx.Drum.SetAR(absValue(lb))
		} else {
			ctx.Drum.SetID(ctx.Drum.AR())
			ctx.Drum.SetAR(lb)
		}
	case 1:
		res, _, _, _ := arithmetic.ComplementSingle(lb)
		ctx.Drum.SetID(res)
	case 3:
		comp, _ := signFlipComplement(lb)
		ctx.Drum.SetID(comp)
	}
}

// TransformMQ implements D=24. ID/MQ sources strip the sign on an even
// word; other sources flip IP when the source is negative on an even
// word. C=1/3 degenerate to the normal TR/AD/SU rule applied to MQ; C=2
// mirrors the ID abs-value rule.
func TransformMQ(ctx *Context) {
	lb := ReadSource(ctx)
	switch ctx.Cmd.C {
	case 0:
		if ctx.Cmd.S == 24 || ctx.Cmd.S == 25 {
			v := lb
			if ctx.Drum.L2() == 0 {
				v = absValue(v)
			}
			ctx.Drum.SetMQ(v)
		} else {
			if ctx.Drum.L2() == 0 && word.Sign(lb) {
				ctx.Flip.IP.Flip()
			}
			ctx.Drum.SetMQ(lb)
		}
	case 1:
		res, _, _, _ := arithmetic.ComplementSingle(lb)
		ctx.Drum.SetMQ(res)
	case 2:
		if ctx.Drum.L2() == 0 {
			ctx.Flip.IP.Set(signBit(lb))
		}
		ctx.Drum.SetMQ(absValue(lb))
	case 3:
		comp, _ := signFlipComplement(lb)
		ctx.Drum.SetMQ(comp)
	}
}

// TransformPN implements D=26. S=26 (PN->PN) applies the single-precision
// complement; C=1/3 delegate to the add-to-PN double-precision pipeline
// with minus-zero suppression; C=2 mirrors the ID abs-value rule; C=0
// otherwise follows the same ID/MQ-source and sign-flip-IP rule as MQ.
func TransformPN(ctx *Context) {
	lb := ReadSource(ctx)
	switch ctx.Cmd.C {
	case 0:
		if ctx.Cmd.S == 26 {
			res, _, _, _ := arithmetic.ComplementSingle(lb)
			ctx.Drum.SetPN(res)
			return
		}
		if ctx.Cmd.S == 24 || ctx.Cmd.S == 25 {
			v := lb
			if ctx.Drum.L2() == 0 {
				v = absValue(v)
			}
			ctx.Drum.SetPN(v)
		} else {
			if ctx.Drum.L2() == 0 && word.Sign(lb) {
				ctx.Flip.IP.Flip()
			}
			ctx.Drum.SetPN(lb)
		}
	case 1:
		AddToPN(ctx, lb, false)
	case 2:
		if ctx.Drum.L2() == 0 {
			ctx.Flip.IP.Set(signBit(lb))
		}
		ctx.Drum.SetPN(absValue(lb))
	case 3:
		AddToPN(ctx, lb, true)
	}
}

// TransformAR implements D=28: AR <- add_single(0, LB, suppress), so that
// a literal -0 source is quashed on the way into the accumulator.
func TransformAR(ctx *Context) {
	lb := ReadSource(ctx)
	result, _ := arithmetic.AddSingle(0, lb, word.IsMinusZero(lb))
	ctx.Drum.SetAR(result)
}

// TransformAddToAR implements D=29: derive an addend from the source per
// C (TR/AD/AV/SU, the same four shapes as the normal-line rule), add it
// into AR with add_single, and latch FO on overflow.
func TransformAddToAR(ctx *Context) {
	lb := ReadSource(ctx)
	var ib uint32
	var suppress bool
	switch ctx.Cmd.C {
	case 0:
		ib = lb
	case 1:
		ib, _, _, suppress = arithmetic.ComplementSingle(lb)
	case 2:
		ib = absValue(lb)
	case 3:
		ib, suppress = signFlipComplement(lb)
	}
	a := ctx.Drum.AR()
	result, overflow := arithmetic.AddSingle(a, ib, suppress)
	ctx.Drum.SetAR(result)
	if overflow {
		ctx.Flip.FO.Set(1)
	}
}

// TransformAddToPN implements D=30: a source value is fed straight into
// the double-precision add-to-PN pipeline, split across the even/odd
// word-time pair.
func TransformAddToPN(ctx *Context) {
	lb := ReadSource(ctx)
	AddToPN(ctx, lb, ctx.Cmd.C == 3)
}

// AddToPN drives one half (even or odd, by the drum's current L2) of the
// double-precision add-to-PN pipeline shared by D=26 (C=1/3) and D=30.
// On the odd half it latches FO on overflow and deposits the combined
// PN sign into PN-even bit 0.
func AddToPN(ctx *Context, src uint32, suppress bool) {
	if ctx.Drum.L2() == 0 {
		sum, carry, augendSign, addendSign := arithmetic.AddDoubleEven(ctx.Drum.PN(), src)
		ctx.Drum.SetPN(sum)
		ctx.dpCarry = carry
		ctx.pnAugendSign = augendSign
		ctx.pnAddendSign = addendSign
		return
	}
	sum, pnSign, overflow := arithmetic.AddDoubleOdd(ctx.Drum.PN(), src, ctx.dpCarry, ctx.pnAugendSign, ctx.pnAddendSign, suppress)
	ctx.Drum.SetPN(sum)
	if overflow {
		ctx.Flip.FO.Set(1)
	}
	even := word.InsertField(ctx.Drum.PNHalf(0), 0, 1, uint32(pnSign))
	ctx.Drum.SetPNHalf(0, even)
}

func signBit(w uint32) uint32 {
	if word.Sign(w) {
		return 1
	}
	return 0
}

// Transform dispatches a destination D (0..30; 31 is handled by the
// fetch package's special_command, not the transfer engine) to its
// transform function.
func Transform(d uint8) func(*Context) {
	switch {
	case d < 24:
		return TransformNormal
	case d == 24:
		return TransformMQ
	case d == 25:
		return TransformID
	case d == 26:
		return TransformPN
	case d == 27:
		return TransformTest
	case d == 28:
		return TransformAR
	case d == 29:
		return TransformAddToAR
	case d == 30:
		return TransformAddToPN
	default:
		return nil
	}
}
