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
	"strconv"
	"strings"
)

// Disassemble reverses the encoding of a single machine word into assembly
// text. Address words become @value, compute words dest=comp;jump.
func Disassemble(word uint16) (string, error) {
	if word>>15 == 0 {
		return "@" + strconv.FormatUint(uint64(word), 10), nil
	}

	if word&COMPUTE_PREFIX != COMPUTE_PREFIX {
		return "", &InvalidWordError{word}
	}

	comp, exists := computeNames[(word>>COMPUTE_SHIFT)&0x7F]

	if !exists {
		return "", &InvalidWordError{word}
	}

	var builder strings.Builder

	if dest := (word >> DEST_SHIFT) & 0x7; dest != DEST_NONE {
		builder.WriteString(destNames[dest])
		builder.WriteByte('=')
	}

	builder.WriteString(comp)

	if jump := (word >> JUMP_SHIFT) & 0x7; jump != JUMP_NONE {
		builder.WriteByte(';')
		builder.WriteString(jumpNames[jump])
	}

	return builder.String(), nil
}
