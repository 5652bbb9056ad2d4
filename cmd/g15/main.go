/*
 * g15sim - Main process.
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

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/retro-g15/g15sim/command/parser"
	"github.com/retro-g15/g15sim/command/reader"
	config "github.com/retro-g15/g15sim/config/configparser"
	"github.com/retro-g15/g15sim/emu/device"
	"github.com/retro-g15/g15sim/emu/devcard"
	"github.com/retro-g15/g15sim/emu/devmagtape"
	"github.com/retro-g15/g15sim/emu/devphototape"
	"github.com/retro-g15/g15sim/emu/devpunch"
	"github.com/retro-g15/g15sim/emu/devtypewriter"
	"github.com/retro-g15/g15sim/emu/master"
	"github.com/retro-g15/g15sim/emu/processor"
	logger "github.com/retro-g15/g15sim/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "g15.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optCNFile := getopt.StringLong("cn", 'n', "", "Number track image, loaded and saved across sessions")
	optGo := getopt.BoolLong("go", 'g', "Start with the compute switch in Go")
	optDebug := getopt.BoolLong("debug", 'd', "Echo log output to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("G-15 simulator started")

	masterChannel := make(chan master.Packet, 4)
	proc := processor.New(masterChannel)

	typewriter := devtypewriter.New(proc.Fetch.Drum, proc.Fetch.IO, os.Stdout, os.Stdin)
	proc.Fetch.Devices[device.CodeTypeAR] = typewriter
	proc.Fetch.Devices[device.CodeType19] = typewriter
	proc.Fetch.Devices[device.CodeTypeIn] = typewriter

	photo := devphototape.Register(proc.Fetch.IO)
	proc.Fetch.Devices[device.CodePhotoRead] = photo
	proc.Fetch.Devices[device.CodeSlowIn] = photo
	proc.Fetch.Devices[device.CodePunch19] = devpunch.Register(proc.Fetch.Drum, proc.Fetch.IO)
	proc.Fetch.Devices[device.CodeCardRead] = devcard.Register(proc.Fetch.IO)
	proc.Fetch.Devices[device.CodeCardPunch] = devcard.RegisterPunch(proc.Fetch.Drum, proc.Fetch.IO)
	magtape := devmagtape.Register(proc.Fetch.Drum, proc.Fetch.IO)
	proc.Fetch.Devices[device.CodeMagTapeRd] = magtape
	proc.Fetch.Devices[device.CodeMagTapeWr] = magtape

	if *optConfig != "" {
		if _, err := os.Stat(*optConfig); err == nil {
			if err := config.LoadConfigFile(*optConfig); err != nil {
				Logger.Error(err.Error())
				os.Exit(1)
			}
		} else {
			Logger.Warn("configuration file " + *optConfig + " not found, starting unattached")
		}
	}

	if *optCNFile != "" {
		if err := proc.Fetch.Drum.LoadCN(*optCNFile); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	console := &parser.Console{Proc: proc, Console: typewriter, Master: masterChannel}

	go proc.Start()

	if *optGo {
		masterChannel <- master.Packet{Msg: master.Start}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		Logger.Info("Got quit signal")
		masterChannel <- master.Packet{Msg: master.Stop}
	}()

	reader.ConsoleReader(console)

	Logger.Info("Shutting down G-15 processor")
	proc.Stop()

	if *optCNFile != "" {
		if err := proc.Fetch.Drum.SaveCN(*optCNFile); err != nil {
			Logger.Error(err.Error())
		}
	}
	Logger.Info("Stopped.")
}
