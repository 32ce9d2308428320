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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lassandro/gohack/internal/cli"
	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/encoding"
)

var debugvar bool
var outvar string
var options cli.Options

var logger = cli.NewLogger()

// Returned once every assembler error has been reported
var errAssembly = errors.New("assembly failed")

var rootCmd = &cobra.Command{
	Use:   "hackasm [-debug] [-o outfile] filename.asm",
	Short: "Assembles Hack assembly into Hack machine code",
	Long: "Assembles a Hack assembly file into a .hack file holding one " +
		"16-bit binary word per line. Source is read from standard input " +
		"when no filename is given and standard input is not a terminal.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          hackasm,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(
		&debugvar, "debug", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.hackdb'",
	)
	flags.StringVarP(
		&outvar, "out", "o", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	cli.AddFlags(flags, &options)
}

func hackasm(cmd *cobra.Command, args []string) error {
	cfg, err := cli.Setup(cmd, &options, logger)

	if err != nil {
		return err
	}

	debug := cfg.Assembler.Debug

	if cmd.Flags().Changed("debug") {
		debug = debugvar
	}

	var infile string
	var input io.ReadSeeker

	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(cmd.Use)
		}

		// Buffered so failing lines can be shown with their source
		data, err := io.ReadAll(os.Stdin)

		if err != nil {
			return err
		}

		input = bytes.NewReader(data)
		infile = "<stdin>"

		if outvar == "" {
			outvar = "out" + cfg.Assembler.OutputExtension
		}
	} else {
		file, err := os.Open(args[0])

		if err != nil {
			return err
		}

		defer file.Close()

		if stat, err := file.Stat(); err != nil {
			return err
		} else if stat.IsDir() || filepath.Ext(file.Name()) != ".asm" {
			return fmt.Errorf(
				"%s is not a valid Hack assembly file", filepath.Base(args[0]),
			)
		}

		input = file
		infile = file.Name()

		if outvar == "" {
			outvar = strings.TrimSuffix(infile, ".asm") +
				cfg.Assembler.OutputExtension
		}
	}

	log := logger.WithField("file", filepath.Base(infile))

	var symtable *assembler.SymTable = nil

	if debug {
		source := ""

		if infile != "<stdin>" {
			if source, err = filepath.Abs(infile); err != nil {
				log.Warn(err)
				source = ""
			}
		}

		symtable = assembler.NewSymTable(source)
	}

	lines, err := assembler.Preprocess(input)

	if err != nil {
		return err
	}

	asm := assembler.NewAssembler(symtable)
	asm.Log = log

	result, err := asm.Assemble(lines)

	if err != nil {
		reportErrors(log, input, err)
		return errAssembly
	}

	if err := writeOutput(outvar, result); err != nil {
		return fmt.Errorf("Error writing output file: %w", err)
	}

	if debug {
		filename := strings.TrimSuffix(outvar, filepath.Ext(outvar)) +
			cfg.Assembler.SymbolExtension

		if err := writeSymTable(filename, symtable); err != nil {
			return fmt.Errorf("Error writing symbol table: %w", err)
		}

		log.WithField("symbols", filename).Debug("Wrote symbol table")
	}

	log.WithFields(logrus.Fields{
		"out":          outvar,
		"instructions": len(result),
	}).Info("Assembled")

	return nil
}

func writeOutput(filename string, result []string) error {
	file, err := os.Create(filename)

	if err != nil {
		return err
	}

	if err := encoding.WriteWords(file, result); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func writeSymTable(filename string, symtable *assembler.SymTable) error {
	file, err := os.Create(filename)

	if err != nil {
		return err
	}

	if _, err := symtable.WriteTo(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// reportErrors logs every assembler error together with the source line it
// originated from.
func reportErrors(log *logrus.Entry, input io.ReadSeeker, err error) {
	var errs []error
	var merr *multierror.Error

	if errors.As(err, &merr) {
		errs = merr.Errors
	} else {
		errs = []error{err}
	}

	for _, err := range errs {
		instErr, ok := err.(assembler.InstructionError)

		if !ok {
			log.Error(err)
			continue
		}

		cursor := instErr.GetPosition()

		if _, seekErr := input.Seek(cursor.LineByte, io.SeekStart); seekErr != nil {
			log.Error(err)
			continue
		}

		line, _ := bufio.NewReader(input).ReadString('\n')

		log.Errorf(
			"%s\n%s\n\033[31m%s\033[0m",
			err,
			strings.TrimRight(line, "\r\n"),
			strings.Repeat("~", len(strings.TrimRight(line, "\r\n"))),
		)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errAssembly {
			logger.Error(err)
		}

		os.Exit(1)
	}
}
