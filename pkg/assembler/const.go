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

import "strconv"

const (
	INSTRUCTION_INVALID InstructionType = iota
	INSTRUCTION_ADDRESS
	INSTRUCTION_COMPUTE
	INSTRUCTION_LABEL
)

const (
	// Highest address an address instruction can load (15 bits)
	ADDRESS_MAX uint16 = 1<<15 - 1

	// First address handed out to variables
	ADDRESS_VARIABLES uint16 = 16

	// Instruction memory holds 32K words
	PROGRAM_MAX = 1 << 15
)

const (
	SYMBOL_SP     uint16 = 0
	SYMBOL_LCL    uint16 = 1
	SYMBOL_ARG    uint16 = 2
	SYMBOL_THIS   uint16 = 3
	SYMBOL_THAT   uint16 = 4
	SYMBOL_SCREEN uint16 = 0x4000
	SYMBOL_KBD    uint16 = 0x6000
)

// Compute instruction layout
// ---- [ 1 1 1 a c c c c c c d d d j j j ]
const (
	COMPUTE_PREFIX uint16 = 0b111 << 13
	COMPUTE_SHIFT         = 6
	DEST_SHIFT            = 3
	JUMP_SHIFT            = 0

	DEST_NONE uint16 = 0b000
	JUMP_NONE uint16 = 0b000
)

// reservedSymbols returns the architecture-defined names every symbol table
// starts with.
func reservedSymbols() map[string]uint16 {
	symbols := map[string]uint16{
		"SP":     SYMBOL_SP,
		"LCL":    SYMBOL_LCL,
		"ARG":    SYMBOL_ARG,
		"THIS":   SYMBOL_THIS,
		"THAT":   SYMBOL_THAT,
		"SCREEN": SYMBOL_SCREEN,
		"KBD":    SYMBOL_KBD,
	}

	for i := uint16(0); i < 16; i++ {
		symbols["R"+strconv.FormatUint(uint64(i), 10)] = i
	}

	return symbols
}
