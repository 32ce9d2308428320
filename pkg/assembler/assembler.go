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

package assembler

import (
	"errors"
	"io"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/lassandro/gohack/pkg/encoding"
)

// Assembler holds the state of a single assembly run. A new Assembler must
// be used for every program.
type Assembler struct {
	Symbols *SymbolTable

	// Optional debugging output, filled while encoding
	Debug *SymTable

	Log *logrus.Entry
}

func NewAssembler(symtable *SymTable) *Assembler {
	return &Assembler{
		Symbols: NewSymbolTable(),
		Debug:   symtable,
		Log:     logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Assemble runs both passes over lines and returns one binary word per
// non-label instruction. Every offending instruction is reported; when any
// error occurs no code is returned.
func (asm *Assembler) Assemble(lines []Line) ([]string, error) {
	if len(lines) > PROGRAM_MAX {
		return nil, &OversizedProgramError{}
	}

	// Pass one: labels
	if err := asm.Symbols.RegisterLabels(lines); err != nil {
		return nil, err
	}

	asm.Log.WithField("labels", len(asm.Symbols.labels)).Debug(
		"Registered labels",
	)

	// Pass two: encoding
	var errs *multierror.Error
	var program uint16 = 0

	result := make([]string, 0, len(lines))
	offsets := make(map[uint16]int64, len(lines))

	for _, line := range lines {
		inst, err := Classify(line)

		if err != nil {
			errs = multierror.Append(errs, err)

			if inst.Type != INSTRUCTION_LABEL {
				program++
			}
			continue
		}

		if inst.Type == INSTRUCTION_LABEL {
			continue
		}

		word, err := asm.Encode(&inst)

		if err != nil {
			errs = multierror.Append(errs, err)
		} else {
			result = append(result, word)
		}

		offsets[program] = line.Position.LineByte
		program++
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if asm.Debug != nil {
		for addr, offset := range offsets {
			asm.Debug.Symbols[addr] = offset
		}

		for name, addr := range asm.Symbols.labels {
			asm.Debug.Labels[addr] = name
		}

		for _, name := range asm.Symbols.variables {
			asm.Debug.Variables[name] = asm.Symbols.symbols[name]
		}
	}

	asm.Log.WithFields(logrus.Fields{
		"instructions": len(result),
		"variables":    len(asm.Symbols.variables),
	}).Debug("Encoded program")

	return result, nil
}

// Encode produces the binary word of a single address or compute
// instruction.
func (asm *Assembler) Encode(inst *Instruction) (string, error) {
	switch inst.Type {
	// A    |0|value                          | Load address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case INSTRUCTION_ADDRESS:
		addr := inst.Value

		if !inst.Literal {
			var err error

			if addr, err = asm.Symbols.Resolve(inst.Symbol); err != nil {
				var rangeErr *RangeError

				if errors.As(err, &rangeErr) {
					rangeErr.Position = inst.Source.Position
					rangeErr.Instruction = inst.Source.Text
				}

				return "", err
			}
		}

		if addr > ADDRESS_MAX {
			return "", &RangeError{
				inst.Source.Position,
				inst.Source.Text,
				ADDRESS_MAX,
				inst.Symbol,
			}
		}

		return encoding.FormatAddress(addr), nil

	// C    |1 1 1|a|c c c c c c|d d d|j j j  | Compute
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case INSTRUCTION_COMPUTE:
		word, err := EncodeCompute(inst.Dest, inst.Comp, inst.Jump)

		if err != nil {
			switch fieldErr := err.(type) {
			case *UnknownComputationError:
				fieldErr.Position = inst.Source.Position
				fieldErr.Instruction = inst.Source.Text
			case *UnknownDestinationError:
				fieldErr.Position = inst.Source.Position
				fieldErr.Instruction = inst.Source.Text
			case *UnknownJumpError:
				fieldErr.Position = inst.Source.Position
				fieldErr.Instruction = inst.Source.Text
			}

			return "", err
		}

		return encoding.FormatWord(word), nil
	}

	return "", &MalformedInstructionError{inst.Source.Position, inst.Source.Text}
}

// EncodeCompute assembles the fields of a compute instruction into a word
func EncodeCompute(dest Field, comp string, jump Field) (uint16, error) {
	compCode, ok := LookupComputation(comp)

	if !ok {
		return 0, &UnknownComputationError{Received: comp}
	}

	destCode, ok := LookupDestination(dest)

	if !ok {
		return 0, &UnknownDestinationError{Received: dest.Value}
	}

	jumpCode, ok := LookupJump(jump)

	if !ok {
		return 0, &UnknownJumpError{Received: jump.Value}
	}

	return COMPUTE_PREFIX |
		compCode<<COMPUTE_SHIFT |
		destCode<<DEST_SHIFT |
		jumpCode<<JUMP_SHIFT, nil
}

// Assemble translates cleaned source lines with a fresh Assembler
func Assemble(lines []Line, symtable *SymTable) ([]string, error) {
	return NewAssembler(symtable).Assemble(lines)
}

// AssembleHackSource preprocesses and assembles a complete source file
func AssembleHackSource(input io.Reader, symtable *SymTable) ([]string, error) {
	lines, err := Preprocess(input)

	if err != nil {
		return nil, err
	}

	return Assemble(lines, symtable)
}
