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
	"fmt"
)

type InstructionType uint

type Cursor struct {
	Line     int
	LineByte int64
}

// A cleaned source line: comments and whitespace removed
type Line struct {
	Position Cursor
	Text     string
}

// An optional instruction field. The zero value is an absent field.
type Field struct {
	Value   string
	Present bool
}

func Present(value string) Field {
	return Field{Value: value, Present: true}
}

type Instruction struct {
	Type   InstructionType
	Source Line

	// Label name, or the operand of an address instruction
	Symbol string

	// Address instructions with a decimal operand
	Literal bool
	Value   uint16

	Dest Field
	Comp string
	Jump Field
}

func (inst *Instruction) String() string {
	return inst.Source.Text
}

// Debugging information written alongside an assembled program
type SymTable struct {
	Source    string
	Symbols   map[uint16]int64
	Labels    map[uint16]string
	Variables map[string]uint16
}

func NewSymTable(source string) *SymTable {
	return &SymTable{
		Source:    source,
		Symbols:   make(map[uint16]int64),
		Labels:    make(map[uint16]string),
		Variables: make(map[string]uint16),
	}
}

type InstructionError interface {
	error
	GetPosition() Cursor
}

type MalformedInstructionError struct {
	Position Cursor
	Received string
}

func (err *MalformedInstructionError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedInstructionError) Error() string {
	return fmt.Sprintf(
		"%02d: Malformed instruction '%s'",
		err.Position.Line,
		err.Received,
	)
}

type UnknownComputationError struct {
	Position    Cursor
	Instruction string
	Received    string
}

func (err *UnknownComputationError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownComputationError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown computation '%s' in '%s'",
		err.Position.Line,
		err.Received,
		err.Instruction,
	)
}

type UnknownDestinationError struct {
	Position    Cursor
	Instruction string
	Received    string
}

func (err *UnknownDestinationError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownDestinationError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown destination '%s' in '%s'",
		err.Position.Line,
		err.Received,
		err.Instruction,
	)
}

type UnknownJumpError struct {
	Position    Cursor
	Instruction string
	Received    string
}

func (err *UnknownJumpError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownJumpError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown jump '%s' in '%s'",
		err.Position.Line,
		err.Received,
		err.Instruction,
	)
}

type RangeError struct {
	Position    Cursor
	Instruction string
	Required    uint16
	Received    string
}

func (err *RangeError) GetPosition() Cursor {
	return err.Position
}

func (err *RangeError) Error() string {
	return fmt.Sprintf(
		"%02d: Address exceeds allowed range in '%s'\n\twant:<=%d\n\thave:%s",
		err.Position.Line,
		err.Instruction,
		err.Required,
		err.Received,
	)
}

type RedeclaredLabelError struct {
	Position Cursor
	Received string
	Bound    uint16
}

func (err *RedeclaredLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d: Redeclaration of label '%s' (already bound to %d)",
		err.Position.Line,
		err.Received,
		err.Bound,
	)
}

type OversizedProgramError struct{}

func (err *OversizedProgramError) Error() string {
	return "Program exceeds instruction memory"
}

type InvalidWordError struct {
	Received uint16
}

func (err *InvalidWordError) Error() string {
	return fmt.Sprintf("Invalid machine word %016b", err.Received)
}
