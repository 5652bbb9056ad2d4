/*
 * g15sim - Parity table tests.
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

package xlat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/util/xlat"
)

func TestParityTableZeroIsEven(t *testing.T) {
	assert.Equal(t, uint8(0), xlat.ParityTable[0])
}

func TestParityTableSingleBitIsOdd(t *testing.T) {
	assert.Equal(t, uint8(0o100), xlat.ParityTable[1])
	assert.Equal(t, uint8(0o100), xlat.ParityTable[0o40])
}

func TestParityTableAllSixBitsIsEven(t *testing.T) {
	assert.Equal(t, uint8(0), xlat.ParityTable[0o77])
}

func TestParityTableIgnoresBitsAboveSix(t *testing.T) {
	assert.Equal(t, xlat.ParityTable[0o5], xlat.ParityTable[0o300|0o5])
}
