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
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Preprocess strips comments and whitespace from assembly source and returns
// the remaining non-empty lines with their source positions.
func Preprocess(input io.Reader) ([]Line, error) {
	var lines []Line
	var reader = bufio.NewReader(input)
	var cursor = Cursor{Line: 1, LineByte: 0}

	for {
		raw, err := reader.ReadString('\n')

		if len(raw) > 0 {
			code, _, _ := strings.Cut(raw, "//")
			code = strings.Map(func(char rune) rune {
				if unicode.IsSpace(char) {
					return -1
				}
				return char
			}, code)

			if code != "" {
				lines = append(lines, Line{Position: cursor, Text: code})
			}

			cursor.Line++
			cursor.LineByte += int64(len(raw))
		}

		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
	}

	return lines, nil
}
