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

package encoding

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

const WordSize = 16

var ErrInvalidWord = errors.New("Invalid machine word")

// Decodes a hexidecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: #123, 123
func DecodeInt(s string) (uint16, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseUint(s, 10, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes either of the DecodeHex or DecodeInt formats
func DecodeAddress(s string) (uint16, error) {
	if strings.ContainsAny(s, "xX") {
		return DecodeHex(s)
	}

	return DecodeInt(s)
}

// Formats a value as a 16 character binary word
func FormatWord(value uint16) string {
	return fmt.Sprintf("%016b", value)
}

// Formats an address instruction word: a zero bit followed by the 15-bit
// address. The caller is responsible for range checking the address.
func FormatAddress(addr uint16) string {
	return "0" + fmt.Sprintf("%015b", addr&0x7FFF)
}

// Parses a 16 character binary word
func ParseWord(s string) (uint16, error) {
	if len(s) != WordSize || strings.Trim(s, "01") != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWord, s)
	}

	result, err := strconv.ParseUint(s, 2, WordSize)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Reads a .hack text file, one binary word per line. Blank lines are
// ignored.
func ReadWords(reader io.Reader) ([]uint16, error) {
	var result []uint16

	scanner := bufio.NewScanner(reader)
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimFunc(scanner.Text(), unicode.IsSpace)

		if text == "" {
			continue
		}

		word, err := ParseWord(text)

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		result = append(result, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Writes binary words one per line
func WriteWords(writer io.Writer, words []string) error {
	buffer := bufio.NewWriter(writer)

	for _, word := range words {
		if _, err := buffer.WriteString(word); err != nil {
			return err
		}

		if err := buffer.WriteByte('\n'); err != nil {
			return err
		}
	}

	return buffer.Flush()
}
