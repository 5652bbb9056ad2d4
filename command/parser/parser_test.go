/*
 * g15sim - Keyboard command parser tests.
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

package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retro-g15/g15sim/emu/devtypewriter"
	"github.com/retro-g15/g15sim/emu/master"
	"github.com/retro-g15/g15sim/emu/processor"
)

func newConsole() (*Console, chan master.Packet) {
	masterChannel := make(chan master.Packet, 4)
	proc := processor.New(masterChannel)
	console := devtypewriter.New(proc.Fetch.Drum, proc.Fetch.IO, &bytes.Buffer{}, strings.NewReader(""))
	return &Console{Proc: proc, Console: console, Master: masterChannel}, masterChannel
}

func TestDigitSelectsCommandLine(t *testing.T) {
	console, _ := newConsole()

	err := ProcessCommand("3", console)

	assert.NoError(t, err)
	assert.Equal(t, 3, console.Proc.Fetch.Drum.CommandLine())
}

func TestUnknownCommandReturnsError(t *testing.T) {
	console, _ := newConsole()

	err := ProcessCommand("Z", console)

	assert.Error(t, err)
}

func TestEmptyLineIsNoop(t *testing.T) {
	console, _ := newConsole()

	err := ProcessCommand("   ", console)

	assert.NoError(t, err)
}

func TestStepCommandSendsStepPacket(t *testing.T) {
	console, masterChannel := newConsole()

	err := ProcessCommand("I", console)

	assert.NoError(t, err)
	assert.Equal(t, master.Step, (<-masterChannel).Msg)
}

func TestCancelIOCommandSendsCancelIOPacket(t *testing.T) {
	console, masterChannel := newConsole()

	err := ProcessCommand("S", console)

	assert.NoError(t, err)
	assert.Equal(t, master.CancelIO, (<-masterChannel).Msg)
}

func TestMarkThenReturnCommand(t *testing.T) {
	console, _ := newConsole()

	assert.NoError(t, ProcessCommand("M", console))
	assert.NoError(t, ProcessCommand("R", console))
}

func TestPermitTypeInCommandSucceeds(t *testing.T) {
	console, _ := newConsole()

	err := ProcessCommand("Q", console)

	assert.NoError(t, err)
}

func TestCompleteCmdListsKeysOnEmptyLine(t *testing.T) {
	matches := CompleteCmd("")

	assert.Contains(t, matches, "I")
	assert.Contains(t, matches, "0")
}
