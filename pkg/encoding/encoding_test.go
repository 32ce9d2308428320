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

package encoding_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/gohack/pkg/encoding"
)

func TestDecodeAddress(t *testing.T) {
	cases := map[string]uint16{
		"0x10":   16,
		"x4000":  16384,
		"#24576": 24576,
		"7":      7,
	}

	for input, want := range cases {
		have, err := encoding.DecodeAddress(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, have, input)
	}

	_, err := encoding.DecodeAddress("1x2")
	assert.Error(t, err)

	_, err = encoding.DecodeAddress("abc")
	assert.Error(t, err)
}

func TestFormatWord(t *testing.T) {
	assert.Equal(t, "0000000000000000", encoding.FormatWord(0))
	assert.Equal(t, "1110101010000111", encoding.FormatWord(0xEA87))
	assert.Equal(t, "0111111111111111", encoding.FormatAddress(32767))
	assert.Equal(t, "0000000000000010", encoding.FormatAddress(2))
}

func TestParseWord(t *testing.T) {
	word, err := encoding.ParseWord("1110110000010000")
	require.NoError(t, err)
	assert.Equal(t, uint16(0xEC10), word)

	for _, bad := range []string{"", "0101", "11101100000100002", "111011000001000x"} {
		_, err := encoding.ParseWord(bad)
		assert.True(t, errors.Is(err, encoding.ErrInvalidWord), bad)
	}
}

func TestReadWriteWords(t *testing.T) {
	var buffer bytes.Buffer

	words := []string{"0000000000000010", "1110110000010000"}
	require.NoError(t, encoding.WriteWords(&buffer, words))
	assert.Equal(t, "0000000000000010\n1110110000010000\n", buffer.String())

	result, err := encoding.ReadWords(
		strings.NewReader(buffer.String() + "\n  \n"),
	)
	require.NoError(t, err)
	assert.Equal(t, []uint16{2, 0xEC10}, result)

	_, err = encoding.ReadWords(strings.NewReader("0000000000000010\nbad\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
