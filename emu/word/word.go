/*
 * g15sim - Drum word primitives.
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

// Package word defines the G-15 drum word: a 29-bit value where bit 0 is
// sign and bits 1..28 are magnitude, plus the bit-field helpers used to
// pick apart command words.
package word

const (
	SignMask uint32 = 0x1        // Bit 0: sign, 1 = negative.
	AbsMask  uint32 = 0x1ffffffe // Bits 1..28: magnitude.
	WordMask uint32 = 0x1fffffff // All 29 bits.

	Bits = 29 // Word width in bits.
)

// Sign reports whether w is negative (sign bit set).
func Sign(w uint32) bool {
	return w&SignMask != 0
}

// Magnitude returns the magnitude bits of w, still positioned in bits 1..28
// (not shifted down to bit 0); this is the native G-15 in-place encoding.
func Magnitude(w uint32) uint32 {
	return w & AbsMask
}

// IsZero reports whether w is +0 or -0 (magnitude bits all zero).
func IsZero(w uint32) bool {
	return Magnitude(w) == 0
}

// IsMinusZero reports whether w is literally -0.
func IsMinusZero(w uint32) bool {
	return Sign(w) && IsZero(w)
}

// Make combines a magnitude (already positioned in bits 1..28) with a sign
// into a 29-bit word.
func Make(magnitude uint32, negative bool) uint32 {
	w := magnitude & AbsMask
	if negative {
		w |= SignMask
	}
	return w
}

// Field extracts width bits of w starting at bit position pos (0 = LSB).
func Field(w uint32, pos, width int) uint32 {
	mask := uint32(1)<<uint(width) - 1
	return (w >> uint(pos)) & mask
}

// InsertField returns w with width bits at position pos replaced by val.
func InsertField(w uint32, pos, width int, val uint32) uint32 {
	mask := uint32(1)<<uint(width) - 1
	w &^= mask << uint(pos)
	w |= (val & mask) << uint(pos)
	return w
}

// Command word field positions and widths, LSB-first:
// C1(1) D(5) S(5) C(2) BP(1) N(7) T(7) DI(1).
const (
	posC1 = 0
	posD  = 1
	posS  = 6
	posC  = 11
	posBP = 13
	posN  = 14
	posT  = 21
	posDI = 28
)

// Command is a decoded drum command word.
type Command struct {
	C1 uint8 // Double-precision flag.
	D  uint8 // Destination (0..31).
	S  uint8 // Source (0..31).
	C  uint8 // Characteristic (0..3).
	BP uint8 // Breakpoint tag.
	N  uint8 // Next-command location.
	T  uint8 // Transfer-end word-time.
	DI uint8 // Deferred/immediate flag.
}

// DecodeCommand splits a raw word into its command fields.
func DecodeCommand(w uint32) Command {
	return Command{
		C1: uint8(Field(w, posC1, 1)),
		D:  uint8(Field(w, posD, 5)),
		S:  uint8(Field(w, posS, 5)),
		C:  uint8(Field(w, posC, 2)),
		BP: uint8(Field(w, posBP, 1)),
		N:  uint8(Field(w, posN, 7)),
		T:  uint8(Field(w, posT, 7)),
		DI: uint8(Field(w, posDI, 1)),
	}
}

// Encode packs a command back into a 29-bit word.
func (c Command) Encode() uint32 {
	var w uint32
	w = InsertField(w, posC1, 1, uint32(c.C1))
	w = InsertField(w, posD, 5, uint32(c.D))
	w = InsertField(w, posS, 5, uint32(c.S))
	w = InsertField(w, posC, 2, uint32(c.C))
	w = InsertField(w, posBP, 1, uint32(c.BP))
	w = InsertField(w, posN, 7, uint32(c.N))
	w = InsertField(w, posT, 7, uint32(c.T))
	w = InsertField(w, posDI, 1, uint32(c.DI))
	return w
}

// ViaAR reports the "via-AR" characteristic CS: set when C is 2 or 3
// (TVA/AVA) and both S and D address regular lines (below 28).
func (c Command) ViaAR() bool {
	return c.C&0x2 != 0 && c.S < 28 && c.D < 28
}

// PrecessBits extracts the low width bits of w (the next bits a shift
// register would emit) and returns them alongside w shifted right by
// width, with zeros shifted into the vacated high bits. Used by the I/O
// format pipeline, which moves data a few bits at a time between MZ, the
// data line, and the device.
func PrecessBits(w uint32, width int) (out, rest uint32) {
	mask := uint32(1)<<uint(width) - 1
	out = w & mask
	rest = (w >> uint(width)) & WordMask
	return out, rest
}
