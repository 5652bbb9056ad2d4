/*
 * g15sim - Master control channel messages.
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

// Package master defines the small set of control messages passed on the
// master channel shared by the timer, the command console, and the
// processor core's control loop.
package master

// Msg identifies what kind of Packet was sent.
type Msg int

const (
	TimeClock  Msg = iota // Regular timer tick.
	Start                 // Compute switch moved to GO or BP.
	Stop                  // Compute switch moved to OFF.
	Reset                 // Front-panel reset: halt and clear CQ/CG; CN and the drum are left as they are.
	Step                  // Single-step (compute switch at OFF, "I" command).
	CancelIO              // "S" keyboard command: cancel active I/O.
)

// Packet is one message on the master channel. DevCode is only
// meaningful for messages that target a specific device-selector code.
type Packet struct {
	Msg     Msg
	DevCode uint8
}
