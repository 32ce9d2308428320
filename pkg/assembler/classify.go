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
	"regexp"
	"strconv"
	"strings"
)

// dest=comp;jump with both dest and jump optional. The computation alphabet
// excludes '=' and ';' so the greedy comp group never swallows the other
// fields.
var computePattern = regexp.MustCompile(
	`^(?:([A-Za-z]+)=)?([-+!&|01ADM]+)(?:;([A-Za-z]+))?$`,
)

// Classify determines the instruction type of a cleaned source line and
// splits it into its fields.
func Classify(line Line) (Instruction, error) {
	inst := Instruction{Source: line}
	text := line.Text

	switch {
	case strings.HasPrefix(text, "@"):
		operand := text[1:]

		if operand == "" {
			return inst, &MalformedInstructionError{line.Position, text}
		}

		inst.Type = INSTRUCTION_ADDRESS
		inst.Symbol = operand

		// Symbols never begin with a digit or a sign
		if !isDecimal(operand) && strings.ContainsAny(operand[:1], "0123456789-+") {
			return inst, &MalformedInstructionError{line.Position, text}
		}

		if isDecimal(operand) {
			value, err := strconv.ParseUint(operand, 10, 64)

			if err != nil || value > uint64(ADDRESS_MAX) {
				return inst, &RangeError{
					line.Position, text, ADDRESS_MAX, operand,
				}
			}

			inst.Literal = true
			inst.Value = uint16(value)
		}

	case strings.HasPrefix(text, "("):
		name, ok := parseLabel(text)

		if !ok {
			return inst, &MalformedInstructionError{line.Position, text}
		}

		inst.Type = INSTRUCTION_LABEL
		inst.Symbol = name

	default:
		match := computePattern.FindStringSubmatchIndex(text)

		if match == nil {
			return inst, &MalformedInstructionError{line.Position, text}
		}

		inst.Type = INSTRUCTION_COMPUTE
		inst.Comp = text[match[4]:match[5]]

		if match[2] >= 0 {
			inst.Dest = Present(text[match[2]:match[3]])
		}

		if match[6] >= 0 {
			inst.Jump = Present(text[match[6]:match[7]])
		}
	}

	return inst, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
