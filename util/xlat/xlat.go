/*
 * g15sim - Card/tape column parity table.
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

// Package xlat holds the column-parity lookup table util/card uses to
// set and check the 0100 parity bit on CBN/BCD card rows and tape
// frames.
package xlat

// ParityTable maps a 6-bit column code to 0100 if it has an odd number
// of bits set, 0 otherwise — the bit that must be ORed in (or XORed
// out) to give the 7-bit column an even number of set bits overall.
// Indexed directly by some callers with an unmasked byte, so it is
// sized to the full byte range rather than just 0..0o77.
var ParityTable [256]uint8

func init() {
	for i := range ParityTable {
		if popcount6(i)%2 != 0 {
			ParityTable[i] = 0o100
		}
	}
}

func popcount6(v int) int {
	v &= 0o77
	n := 0
	for v != 0 {
		n += v & 1
		v >>= 1
	}
	return n
}
