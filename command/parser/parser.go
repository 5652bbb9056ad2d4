/*
 * g15sim - Keyboard command parser.
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

// Package parser interprets the front-panel keyboard commands (A, B,
// C, F, I, M, P, Q, R, T, 0..7, S) against a running processor. Unlike
// the wider family's multi-word console language, these commands are
// single keystrokes with no arguments, so dispatch keys directly off
// the first non-space byte of the line rather than matching command
// words.
package parser

import (
	"errors"
	"strings"

	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/devtypewriter"
	"github.com/retro-g15/g15sim/emu/master"
	"github.com/retro-g15/g15sim/emu/processor"
)

// Console bundles the state a keyboard command acts on.
type Console struct {
	Proc    *processor.Processor
	Console *devtypewriter.Typewriter
	Master  chan master.Packet
}

type cmd struct {
	key     byte
	name    string
	process func(*Console) error
}

var cmdList = []cmd{
	{key: 'A', name: "type AR", process: typeAR},
	{key: 'B', name: "back up one block", process: backUpBlock},
	{key: 'C', name: "select command line 0", process: selectLineZero},
	{key: 'F', name: "stop and clear mark", process: stopAndClearMark},
	{key: 'I', name: "step", process: step},
	{key: 'M', name: "mark place", process: markPlace},
	{key: 'P', name: "paper-tape read", process: paperTapeRead},
	{key: 'Q', name: "permit type-in", process: permitTypeIn},
	{key: 'R', name: "return to mark", process: returnToMark},
	{key: 'T', name: "copy command location into AR", process: copyLocation},
	{key: 'S', name: "cancel I/O", process: cancelIO},
}

// ProcessCommand interprets the first non-space byte of commandLine as
// a keyboard command, or as a drum-line digit 0..7.
func ProcessCommand(commandLine string, console *Console) error {
	trimmed := strings.TrimSpace(commandLine)
	if trimmed == "" {
		return nil
	}
	key := trimmed[0]

	if key >= '0' && key <= '7' {
		console.Proc.Fetch.SelectCommandLine(int(key - '0'))
		return nil
	}

	for _, c := range cmdList {
		if c.key == key {
			return c.process(console)
		}
	}
	return errors.New("unknown keyboard command: " + string(key))
}

// CompleteCmd lists the single-letter keyboard commands for line-editor
// tab completion.
func CompleteCmd(commandLine string) []string {
	if strings.TrimSpace(commandLine) != "" {
		return nil
	}
	names := make([]string, 0, len(cmdList)+8)
	for _, c := range cmdList {
		names = append(names, string(c.key))
	}
	for d := byte('0'); d <= '7'; d++ {
		names = append(names, string(d))
	}
	return names
}

func typeAR(c *Console) error {
	c.Console.Write(device.CodeTypeAR)
	return nil
}

func backUpBlock(c *Console) error {
	if !c.Proc.Fetch.IO.Active() {
		return nil
	}
	if dev, ok := c.Proc.Fetch.Devices[c.Proc.Fetch.IO.OC()]; ok {
		dev.ReverseBlock()
	}
	return nil
}

func selectLineZero(c *Console) error {
	c.Proc.Fetch.SelectCommandLine(0)
	return nil
}

func stopAndClearMark(c *Console) error {
	c.Master <- master.Packet{Msg: master.Stop}
	c.Proc.Fetch.ClearMark()
	return nil
}

func step(c *Console) error {
	c.Master <- master.Packet{Msg: master.Step}
	return nil
}

func markPlace(c *Console) error {
	c.Proc.Fetch.MarkPlace()
	return nil
}

func paperTapeRead(c *Console) error {
	dev, ok := c.Proc.Fetch.Devices[device.CodePhotoRead]
	if !ok {
		return errors.New("no photoreader attached")
	}
	if !c.Proc.Fetch.IO.Active() {
		c.Proc.Fetch.IO.Initiate(dev, device.CodePhotoRead)
		go c.Proc.Fetch.RunIO()
	}
	return nil
}

func permitTypeIn(c *Console) error {
	c.Console.SetEnabled(true)
	return nil
}

func returnToMark(c *Console) error {
	c.Proc.Fetch.ReturnToMark()
	return nil
}

func copyLocation(c *Console) error {
	c.Proc.Fetch.CopyLocationToAR()
	return nil
}

func cancelIO(c *Console) error {
	c.Master <- master.Packet{Msg: master.CancelIO}
	return nil
}
