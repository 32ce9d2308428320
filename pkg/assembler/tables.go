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

// The encoding tables are fixed for the architecture. They are only reachable
// through the lookup functions below so nothing can mutate them.

var computeTable = map[string]uint16{
	"0":   0b0101010,
	"1":   0b0111111,
	"-1":  0b0111010,
	"D":   0b0001100,
	"A":   0b0110000,
	"M":   0b1110000,
	"!D":  0b0001101,
	"!A":  0b0110001,
	"!M":  0b1110001,
	"-D":  0b0001111,
	"-A":  0b0110011,
	"-M":  0b1110011,
	"D+1": 0b0011111,
	"A+1": 0b0110111,
	"M+1": 0b1110111,
	"D-1": 0b0001110,
	"A-1": 0b0110010,
	"M-1": 0b1110010,
	"D+A": 0b0000010,
	"D+M": 0b1000010,
	"D-A": 0b0010011,
	"D-M": 0b1010011,
	"A-D": 0b0000111,
	"M-D": 0b1000111,
	"D&A": 0b0000000,
	"D&M": 0b1000000,
	"D|A": 0b0010101,
	"D|M": 0b1010101,
}

// Absence of a destination is DEST_NONE, never a table key
var destTable = map[string]uint16{
	"M":   0b001,
	"D":   0b010,
	"MD":  0b011,
	"A":   0b100,
	"AM":  0b101,
	"AD":  0b110,
	"AMD": 0b111,
}

// Absence of a jump is JUMP_NONE, never a table key
var jumpTable = map[string]uint16{
	"JGT": 0b001,
	"JEQ": 0b010,
	"JGE": 0b011,
	"JLT": 0b100,
	"JNE": 0b101,
	"JLE": 0b110,
	"JMP": 0b111,
}

var (
	computeNames = invertTable(computeTable)
	destNames    = invertTable(destTable)
	jumpNames    = invertTable(jumpTable)
)

func invertTable(table map[string]uint16) map[uint16]string {
	result := make(map[uint16]string, len(table))

	for name, code := range table {
		result[code] = name
	}

	return result
}

func LookupComputation(expr string) (uint16, bool) {
	code, exists := computeTable[expr]
	return code, exists
}

func LookupDestination(dest Field) (uint16, bool) {
	if !dest.Present {
		return DEST_NONE, true
	}

	code, exists := destTable[dest.Value]
	return code, exists
}

func LookupJump(jump Field) (uint16, bool) {
	if !jump.Present {
		return JUMP_NONE, true
	}

	code, exists := jumpTable[jump.Value]
	return code, exists
}
