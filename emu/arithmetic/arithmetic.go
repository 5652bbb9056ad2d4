/*
 * g15sim - Single and double precision arithmetic core.
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

// Package arithmetic implements the G-15 adder: complement conversion and
// single/double precision addition on 29-bit words. Operands to the add
// functions must already be in complement form (the output of
// ComplementSingle / ComplementDoubleOdd), never raw sign-magnitude words.
package arithmetic

import (
	"github.com/retro-g15/g15sim/emu/word"
)

const (
	mag28 = uint32(1) << 28 // 2^28, the single-precision magnitude modulus.
	bit29 = uint64(1) << 29 // carry-out bit watched by the double-precision adders.
)

// ComplementSingle converts a sign-magnitude word into the complement form
// consumed by the adder. dpCarry and dpEvenSign are only meaningful when w
// is the even half of a double-precision pair; single precision callers
// may ignore them.
func ComplementSingle(w uint32) (result uint32, dpCarry bool, dpEvenSign uint8, suppressMinusZero bool) {
	sign := word.Sign(w)
	m := word.Magnitude(w) >> 1

	suppressMinusZero = sign && m == 0
	dpCarry = suppressMinusZero

	dpEvenSign = 0
	if sign {
		dpEvenSign = 1
	}

	newM := m
	if sign && m != 0 {
		newM = mag28 - m
	}

	result = word.Make(newM<<1, sign)
	return result, dpCarry, dpEvenSign, suppressMinusZero
}

// ComplementDoubleOdd finishes converting a double-precision pair: the odd
// half is adjusted by the carry and sign produced by ComplementSingle on
// the even half. Overflow out of the odd half is discarded.
func ComplementDoubleOdd(wOdd uint32, dpEvenSign uint8, dpCarry bool) uint32 {
	carry := uint32(0)
	if dpCarry {
		carry = 1
	}
	if dpEvenSign == 1 {
		return (word.WordMask - wOdd + carry) & word.WordMask
	}
	return (wOdd + carry) & word.WordMask
}

// AddSingle adds two complement-form 29-bit words, returning the result
// (still sign + 28-bit field) and whether the add overflowed.
func AddSingle(a, b uint32, suppressMinusZero bool) (result uint32, overflow bool) {
	aSign := word.Sign(a)
	bSign := word.Sign(b)
	aMag := word.Magnitude(a) >> 1
	bMag := word.Magnitude(b) >> 1

	raw := aMag + bMag
	sum := raw & (mag28 - 1)
	endCarry := raw&mag28 != 0
	if suppressMinusZero {
		endCarry = true
	}

	resultSign := aSign != bSign
	resultSign = resultSign != endCarry

	overflow = overflowRule(aSign, bSign, endCarry, sum == 0)

	result = word.Make(sum<<1, resultSign)
	return result, overflow
}

// overflowRule is the shared endCarry-based overflow test used by the
// single and double precision adders: overflow iff the operand signs
// agree and endCarry disagrees with what a same-signed add should give.
func overflowRule(aSign, bSign, endCarry, sumIsZero bool) bool {
	if aSign != bSign {
		return false
	}
	if endCarry {
		return !bSign || sumIsZero
	}
	return bSign
}

// AddDoubleEven adds the even halves of a double-precision pair after
// zeroing their sign bits, returning the bottom 29 bits of the sum, the
// carry out of bit 28 into pn_add_carry, and the two operand signs for use
// by AddDoubleOdd.
func AddDoubleEven(pnEven, srcEven uint32) (result uint32, carry bool, pnAugendSign, pnAddendSign uint8) {
	a := uint64(pnEven &^ word.SignMask)
	b := uint64(srcEven &^ word.SignMask)
	raw := a + b

	result = uint32(raw) & word.WordMask
	carry = raw&bit29 != 0

	pnAugendSign, pnAddendSign = 0, 0
	if word.Sign(pnEven) {
		pnAugendSign = 1
	}
	if word.Sign(srcEven) {
		pnAddendSign = 1
	}
	return result, carry, pnAugendSign, pnAddendSign
}

// AddDoubleOdd finishes a double-precision add: sums the odd halves plus
// the even-half carry, derives the combined PN sign, and reports overflow
// using the augend/addend signs captured by AddDoubleEven.
func AddDoubleOdd(pnOdd, srcOdd uint32, carryIn bool, pnAugendSign, pnAddendSign uint8, suppressMinusZero bool) (result uint32, pnSign uint8, overflow bool) {
	carry := uint64(0)
	if carryIn {
		carry = 1
	}
	sum := uint64(pnOdd) + uint64(srcOdd) + carry

	endCarry := sum&bit29 != 0
	if suppressMinusZero {
		endCarry = true
	}

	aSign := pnAugendSign == 1
	bSign := pnAddendSign == 1
	signBit := (aSign != bSign) != endCarry
	pnSign = 0
	if signBit {
		pnSign = 1
	}

	result = uint32(sum) & word.WordMask
	overflow = overflowRule(aSign, bSign, endCarry, result == 0)
	return result, pnSign, overflow
}
