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

package assembler_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/encoding"
)

func TestAddressRoundTrip(t *testing.T) {
	asm := assembler.NewAssembler(nil)

	for value := 0; value <= 32767; value++ {
		text := "@" + strconv.Itoa(value)

		inst, err := assembler.Classify(assembler.Line{Text: text})
		require.NoError(t, err)

		word, err := asm.Encode(&inst)
		require.NoError(t, err)

		decoded, err := encoding.ParseWord(word)
		require.NoError(t, err)

		back, err := assembler.Disassemble(decoded)
		require.NoError(t, err)

		if back != text {
			t.Fatalf("Round trip mismatch\nwant:%s\nhave:%s", text, back)
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := map[string]string{
		"1110110000010000": "D=A",
		"1110101010000111": "0;JMP",
		"1111110111111110": "AMD=M+1;JLE",
		"1110001100000001": "D;JGT",
		"0110000000000000": "@24576",
	}

	for word, want := range tests {
		value, err := encoding.ParseWord(word)
		require.NoError(t, err)

		have, err := assembler.Disassemble(value)
		require.NoError(t, err)
		assert.Equal(t, want, have, word)
	}
}

func TestDisassembleInvalid(t *testing.T) {
	for _, word := range []string{
		// Missing compute prefix bits
		"1000110000010000",
		"1100110000010000",
		// No computation with this code
		"1110111100010000",
	} {
		value, err := encoding.ParseWord(word)
		require.NoError(t, err)

		_, err = assembler.Disassemble(value)

		var invalid *assembler.InvalidWordError
		assert.ErrorAs(t, err, &invalid, word)
	}
}

func TestEncodeComputeExhaustive(t *testing.T) {
	dests := []assembler.Field{
		{}, assembler.Present("M"), assembler.Present("D"),
		assembler.Present("MD"), assembler.Present("A"),
		assembler.Present("AM"), assembler.Present("AD"),
		assembler.Present("AMD"),
	}

	jumps := []assembler.Field{
		{}, assembler.Present("JGT"), assembler.Present("JEQ"),
		assembler.Present("JGE"), assembler.Present("JLT"),
		assembler.Present("JNE"), assembler.Present("JLE"),
		assembler.Present("JMP"),
	}

	comps := []string{
		"0", "1", "-1", "D", "A", "M", "!D", "!A", "!M", "-D", "-A", "-M",
		"D+1", "A+1", "M+1", "D-1", "A-1", "M-1", "D+A", "D+M", "D-A",
		"D-M", "A-D", "M-D", "D&A", "D&M", "D|A", "D|M",
	}

	for _, comp := range comps {
		for d, dest := range dests {
			for j, jump := range jumps {
				word, err := assembler.EncodeCompute(dest, comp, jump)
				require.NoError(t, err)

				assert.Equal(t, uint16(0b111), word>>13)
				assert.Equal(t, uint16(d), (word>>3)&0x7)
				assert.Equal(t, uint16(j), word&0x7)

				text, err := assembler.Disassemble(word)
				require.NoError(t, err)

				inst, err := assembler.Classify(assembler.Line{Text: text})
				require.NoError(t, err)
				assert.Equal(t, comp, inst.Comp)
				assert.Equal(t, dest, inst.Dest)
				assert.Equal(t, jump, inst.Jump)
			}
		}
	}
}
