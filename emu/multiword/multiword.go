/*
 * g15sim - Multiply, divide, and MQ/ID shift operations.
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

// Package multiword implements the G-15's fixed-count special operations
// (D=31, S=24..27): multiply, restoring-division, and the MQ/ID shift
// family, each a loop over drum word-times driven by the arithmetic core.
package multiword

import (
	"github.com/retro-g15/g15sim/emu/arithmetic"
	"github.com/retro-g15/g15sim/emu/drum"
	"github.com/retro-g15/g15sim/emu/flipflop"
	"github.com/retro-g15/g15sim/emu/word"
)

const bit28 = uint32(1) << 28

// Multiply runs 2*t word-times (t is 57 for single precision, 114 for
// double, chosen by the caller), shifting ID right and MQ left each
// word-time and conditionally adding ID into PN when the previously
// captured MQ-odd top bit (PM) is set. It does not handle sign; IP
// carries the product sign set by the surrounding program.
func Multiply(d *drum.Drum, bank *flipflop.Bank, t int) {
	carry := (d.MQHalf(0) >> 28) & 1

	var pm bool
	var dpCarry bool
	var augendSign, addendSign uint8

	for i := 0; i < 2*t; i++ {
		if d.L2() == 0 {
			pm = (d.MQHalf(1)>>28)&1 != 0

			idEven, idOdd := d.IDHalf(0), d.IDHalf(1)
			oddLow := idOdd & 1
			newEven := ((idEven >> 1) | (oddLow << 28)) &^ word.SignMask
			newOdd := idOdd >> 1
			d.SetIDHalf(0, newEven)
			d.SetIDHalf(1, newOdd)

			mqEven := d.MQHalf(0)
			top := (mqEven >> 28) & 1
			d.SetMQHalf(0, ((mqEven<<1)|carry)&word.WordMask)
			carry = top

			if pm {
				sum, c, augSign, addSign := arithmetic.AddDoubleEven(d.PN(), d.IDHalf(0))
				d.SetPN(sum)
				dpCarry, augendSign, addendSign = c, augSign, addSign
			}
		} else {
			idEven, idOdd := d.IDHalf(0), d.IDHalf(1)
			oddLow := idOdd & 1
			newEven := (idEven >> 1) | (oddLow << 28)
			newOdd := idOdd >> 1
			d.SetIDHalf(0, newEven)
			d.SetIDHalf(1, newOdd)

			mqOdd := d.MQHalf(1)
			top := (mqOdd >> 28) & 1
			d.SetMQHalf(1, ((mqOdd<<1)|carry)&word.WordMask)
			carry = top

			if pm {
				sum, pnSign, overflow := arithmetic.AddDoubleOdd(d.PN(), d.IDHalf(1), dpCarry, augendSign, addendSign, false)
				d.SetPN(sum)
				if overflow {
					bank.FO.Set(1)
				}
				even := word.InsertField(d.PNHalf(0), 0, 1, uint32(pnSign))
				d.SetPNHalf(0, even)
			}
		}
		d.WaitFor(1)
	}
}

// Divide runs 2*t restoring shift-add division word-times (preconditions:
// start on an even word, C=1) and finishes by forcing MQ-even bit 1 to 1
// (Princeton rounding) regardless of the quotient. If the MQ-shift carry
// is still set when the loop ends, the quotient overflowed and FO
// latches.
func Divide(d *drum.Drum, bank *flipflop.Bank, t int) {
	var rSign bool
	qBit := true
	mqShiftCarry := false

	var dCarry bool
	var dAug, dAdd uint8
	var pnShiftCarry uint32

	for i := 0; i < 2*t; i++ {
		if d.L2() == 0 {
			mqEven := d.MQHalf(0)
			bit := uint32(0)
			if qBit {
				bit = 1
			}
			mqEven = word.InsertField(mqEven, 1, 1, bit)
			top := (mqEven >> 28) & 1
			mqShiftCarry = top != 0
			d.SetMQHalf(0, (mqEven<<1)&word.WordMask)

			addendSign := !rSign
			idEven, _, _, _ := arithmetic.ComplementSingle(word.Make(word.Magnitude(d.IDHalf(0)), addendSign))
			sum, carry, augSign, addSign := arithmetic.AddDoubleEven(d.PN(), idEven)
			d.SetPN(sum)
			dCarry, dAug, dAdd = carry, augSign, addSign

			pnEven := d.PNHalf(0)
			pnShiftCarry = (pnEven >> 28) & 1
			d.SetPNHalf(0, (pnEven<<1)&word.WordMask)
		} else {
			mqOdd := d.MQHalf(1)
			d.SetMQHalf(1, (mqOdd<<1)&word.WordMask)

			idOdd := arithmetic.ComplementDoubleOdd(d.IDHalf(1), boolSign(!rSign), false)
			sum, pnSign, overflow := arithmetic.AddDoubleOdd(d.PN(), idOdd, dCarry, dAug, dAdd, false)
			d.SetPN(sum)
			if overflow {
				bank.FO.Set(1)
			}
			rSign = pnSign == 1

			pnOdd := d.PNHalf(1)
			newPNOdd := ((pnOdd << 1) | pnShiftCarry) & word.WordMask
			d.SetPNHalf(1, newPNOdd)
			even := word.InsertField(d.PNHalf(0), 0, 1, uint32(pnSign))
			d.SetPNHalf(0, even)

			qBit = !rSign
		}
		d.WaitFor(1)
	}

	if mqShiftCarry {
		bank.FO.Set(1)
	}
	mqEven := d.MQHalf(0)
	d.SetMQHalf(0, word.InsertField(mqEven, 1, 1, 1))
}

func boolSign(neg bool) uint8 {
	if neg {
		return 1
	}
	return 0
}

// ShiftMQLeftIDRight runs count word-times shifting MQ left and ID right
// one bit each; on every odd word, if c==0, AR is incremented by one and
// the loop stops early if AR overflows back to zero.
func ShiftMQLeftIDRight(d *drum.Drum, count int, c uint8) {
	for count > 0 {
		half := d.L2()
		mq := d.MQHalf(half)
		d.SetMQHalf(half, (mq<<1)&word.WordMask)

		id := d.IDHalf(half)
		d.SetIDHalf(half, id>>1)

		d.WaitFor(1)
		count--

		if d.L2() == 1 && c == 0 {
			next := (d.AR() + 1) & word.WordMask
			d.SetAR(next)
			if next == 0 {
				break
			}
		}
	}
}

// NormalizeMQ shifts MQ left until the odd-word's top magnitude bit
// becomes 1 or count reaches zero; if c==0, AR is incremented on every
// odd-word shift.
func NormalizeMQ(d *drum.Drum, count int, c uint8) {
	for count > 0 {
		half := d.L2()
		mq := d.MQHalf(half)
		d.SetMQHalf(half, (mq<<1)&word.WordMask)

		d.WaitFor(1)
		count--

		if d.L2() == 1 {
			if c == 0 {
				d.SetAR((d.AR() + 1) & word.WordMask)
			}
			if (d.MQHalf(1)>>28)&1 != 0 {
				break
			}
		}
	}
}
