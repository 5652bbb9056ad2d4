/*
 * g15sim - Named flip-flop and small-register storage cells.
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

// Package flipflop provides the named 1-bit and N-bit storage cells that
// carry the processor's micro-state (overflow, IO markers, the AR-sign
// latch used mid-add, and so on). A cell's only side effect beyond
// storing its value is an optional lamp-average sample taken against a
// clock it is handed at construction time, never owned.
package flipflop

// Clock is the minimal time source a Register samples for lamp
// averaging. *drum.Drum satisfies this.
type Clock interface {
	WordTime() int
}

// Sample is one (word-time, value) observation recorded for lamp
// averaging; the front-panel UI consumes these, the core never reads them.
type Sample struct {
	WordTime int
	Value    uint32
}

// Register is a named N-bit storage cell. Width 1 models a classic
// flip-flop (FO, AS, and similar); wider registers reuse the same type.
type Register struct {
	name   string
	mask   uint32
	value  uint32
	clock  Clock
	trace  []Sample
	traced bool
}

// NewRegister creates a width-bit register named name, sampling clock for
// lamp averaging when traced is true. A nil clock is valid for registers
// that never need lamp averaging (traced must be false in that case).
func NewRegister(name string, width int, clock Clock, traced bool) *Register {
	mask := uint32(1)<<uint(width) - 1
	return &Register{name: name, mask: mask, clock: clock, traced: traced}
}

// Name returns the register's diagnostic name.
func (r *Register) Name() string {
	return r.name
}

// Get returns the current value.
func (r *Register) Get() uint32 {
	return r.value
}

// Set stores a new value, masked to the register's width, and appends a
// lamp-averaging sample if tracing is enabled.
func (r *Register) Set(v uint32) {
	r.value = v & r.mask
	r.sample()
}

// Flip toggles a single-bit register and returns the new value. Calling
// Flip on a register wider than 1 bit flips only bit 0.
func (r *Register) Flip() uint32 {
	r.value = (r.value ^ 1) & r.mask
	r.sample()
	return r.value
}

// IsSet reports whether a single-bit register currently holds 1.
func (r *Register) IsSet() bool {
	return r.value&1 != 0
}

func (r *Register) sample() {
	if !r.traced || r.clock == nil {
		return
	}
	r.trace = append(r.trace, Sample{WordTime: r.clock.WordTime(), Value: r.value})
}

// Trace returns the recorded lamp-averaging samples, oldest first. The
// core never reads this; it exists for the front-panel UI.
func (r *Register) Trace() []Sample {
	return r.trace
}

// Bank groups the processor's named flip-flops and small registers so
// callers can pass a single handle around instead of a field list.
type Bank struct {
	FO *Register // Overflow; latched, cleared only by test-overflow.
	AS *Register // Auto-stop (typewriter/punch line-23 auto-reload path).
	CS *Register // Via-AR characteristic flag, latched per command.
	PG *Register // PN add-sign latch, deposited into PN[even].bit0.
	IP *Register // Product-sign latch for multiply/divide.
}

// NewBank builds the standard set of processor flip-flops, all sampling
// clock for lamp averaging.
func NewBank(clock Clock, traced bool) *Bank {
	return &Bank{
		FO: NewRegister("FO", 1, clock, traced),
		AS: NewRegister("AS", 1, clock, traced),
		CS: NewRegister("CS", 1, clock, traced),
		PG: NewRegister("PG", 1, clock, traced),
		IP: NewRegister("IP", 1, clock, traced),
	}
}
