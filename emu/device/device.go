/*
 * g15sim - I/O device interface.
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

// Package device defines the narrow interface the processor core uses to
// talk to peripherals (photoreader/punch, typewriter, magnetic tape,
// card reader/punch) without depending on any of their concrete types.
package device

// Device is the contract every G-15 peripheral satisfies. Read and
// Write run an operation to completion on a goroutine of their own,
// which the processor starts after a Step initiates I/O (see fetch's
// RunIO); ReverseBlock is called from the command console. Cancel is
// safe to call from the command console at any time and only latches a
// request observed at the device's next decision point.
type Device interface {
	// Read starts an input operation for I/O code sCode (one of the
	// PHOTOREADER/TYPEIN/CARDREAD family); it runs until end of block
	// or Cancel.
	Read(sCode uint8) uint8

	// Write starts an output operation for I/O code sCode (PUNCH/TYPE/
	// CARDPUNCH/MAGTAPE write); it drains MZ through the format-code
	// pipeline until end of block or Cancel.
	Write(sCode uint8) uint8

	// ReverseBlock backs the device up one physical block (used by the
	// magnetic tape and the "B" backup-one-block keyboard command).
	ReverseBlock() uint8

	// Cancel requests the device abandon its current operation at its
	// next decision point.
	Cancel()

	// InitDev resets the device to its power-up state.
	InitDev() uint8

	// Shutdown closes any backing files.
	Shutdown()

	// Debug enables or disables a named debug option.
	Debug(debug string) error
}

// I/O codes: D=31, S=0..15 device-operation selectors that also double
// as the processor's OC (operation code) busy indicator.
const (
	CodePhotoRead  uint8 = 0  // Photoreader (paper tape) read.
	CodePunch19    uint8 = 1  // Punch line 19.
	CodeTypeAR     uint8 = 2  // Type AR.
	CodeType19     uint8 = 3  // Type line 19.
	CodeTypeIn     uint8 = 4  // Typewriter type-in (keyboard input).
	CodeCardRead   uint8 = 5  // Card reader.
	CodeCardPunch  uint8 = 6  // Card punch.
	CodeMagTapeRd  uint8 = 7  // Magnetic tape read.
	CodeMagTapeWr  uint8 = 8  // Magnetic tape write.
	CodeSlowIn     uint8 = 9  // Slow-speed paper tape input (auto-reload eligible).
	CodeReady      uint8 = 0xff
)

// NoDev is the device number passed to a config directive that names no
// device address.
const NoDev uint16 = 0xffff

// IsReadCode reports whether sCode names an input operation (Read) as
// opposed to an output operation (Write).
func IsReadCode(sCode uint8) bool {
	switch sCode {
	case CodePhotoRead, CodeTypeIn, CodeCardRead, CodeMagTapeRd, CodeSlowIn:
		return true
	default:
		return false
	}
}

// Format codes precessed 3 bits at a time from MZ on output, or used to
// classify input control frames.
const (
	FmtDigit    uint8 = 0 // Precess 4 data bits.
	FmtEndStop  uint8 = 1 // STOP.
	FmtCR       uint8 = 2 // Carriage return.
	FmtPeriod   uint8 = 3 // Period.
	FmtSign     uint8 = 4 // OS: SPACE for +, MINUS for -.
	FmtReload   uint8 = 5 // Refill MZ from line.
	FmtTab      uint8 = 6 // Tab.
	FmtWait     uint8 = 7 // Wait (4 zero bits).
)

// IO-code control-frame identities used on input.
const (
	IOSpace  uint8 = 0
	IOMinus  uint8 = 1
	IOCR     uint8 = 2
	IOTab    uint8 = 3
	IOStop   uint8 = 4
	IOReload uint8 = 5
	IOPeriod uint8 = 6
	IOWait   uint8 = 7

	IODataFlag uint8 = 0x10 // Bit 4: data frame vs control frame.
)
