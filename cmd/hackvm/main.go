// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lassandro/gohack/internal/cli"
	"github.com/lassandro/gohack/internal/config"
	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/debugger"
	"github.com/lassandro/gohack/pkg/machine"
)

var debugvar bool
var stepsvar uint64
var options cli.Options

var shouldexit bool

var logger = cli.NewLogger()

var rootCmd = &cobra.Command{
	Use:   "hackvm [-debug] [-steps N] filename.hack",
	Short: "Runs Hack machine code",
	Long: "Loads a .hack file into the instruction memory of an emulated " +
		"Hack computer and runs it until the program halts (jumps onto " +
		"itself), the step limit is reached or it is interrupted.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          hackvm,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flags.Uint64Var(
		&stepsvar, "steps", 0,
		"Stops after this many instructions, zero runs until halt",
	)
	cli.AddFlags(flags, &options)
}

func hackvm(cmd *cobra.Command, args []string) error {
	cfg, err := cli.Setup(cmd, &options, logger)

	if err != nil {
		return err
	}

	if cmd.Flags().Changed("steps") {
		cfg.Machine.MaxSteps = stepsvar
	}

	file, err := os.Open(args[0])

	if err != nil {
		return err
	}

	defer file.Close()

	log := logger.WithField("file", filepath.Base(args[0]))

	var mc machine.Machine
	var dbg debugger.Debugger

	if err := mc.LoadHack(file); err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if debugvar {
		dbg.HandleBreak = handleBreak
		dbg.HandleRead = handleRead
		dbg.HandleWrite = handleWrite
		mc.Debugger = &dbg

		loadSymbols(log, &dbg, args[0], cfg)

		if source, ok := dbg.Source.(*os.File); ok {
			defer source.Close()
		}
	} else {
		var dh machine.DeviceHandler
		dh.Keyboard = bufio.NewReader(os.Stdin)
		mc.Devices = &dh
	}

	var interrupted atomic.Bool

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	defer signal.Stop(c)

	go func() {
		for range c {
			if debugvar {
				fmt.Println()
				dbg.Break = true
			} else {
				interrupted.Store(true)
			}
		}
	}()

	if debugvar {
		debugREPL(&dbg, &mc)
	} else if interactive {
		if err := enterRawTerm(); err != nil {
			log.WithError(err).Warn("Unable to enter raw terminal mode")
		} else {
			defer exitRawTerm()
		}
	}

	var steps uint64

	for !shouldexit && !mc.State.Halted && !interrupted.Load() {
		if cfg.Machine.MaxSteps != 0 && steps >= cfg.Machine.MaxSteps {
			break
		}

		mc.Step()
		steps++
	}

	if interactive && !debugvar {
		exitRawTerm()
	}

	log.WithFields(logrus.Fields{
		"steps":  steps,
		"halted": mc.State.Halted,
	}).Info("Machine stopped")

	dbg.PrintRegisters(&mc.State)
	dbg.PrintMem(&mc.State, 0, cfg.Machine.DumpWords)

	return nil
}

// loadSymbols attaches the symbol table written by hackasm -debug and the
// source it refers to.
func loadSymbols(log *logrus.Entry, dbg *debugger.Debugger, binary string, cfg *config.Config) {
	filename := strings.TrimSuffix(binary, filepath.Ext(binary)) +
		cfg.Assembler.SymbolExtension

	file, err := os.Open(filename)

	if err != nil {
		log.WithError(err).Warn("Error loading symbol file")
		return
	}

	defer file.Close()

	symtable, err := assembler.ReadSymTable(file)

	if err != nil {
		log.WithError(err).Warn("Error loading symbol file")
		return
	}

	dbg.SymTable = symtable

	if symtable.Source == "" {
		return
	}

	if source, err := os.Open(symtable.Source); err == nil {
		dbg.Source = source
	} else {
		log.WithError(err).Warn("Error loading source file")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
