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
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteTo encodes the debugging symbols as JSON
func (symtable *SymTable) WriteTo(writer io.Writer) (int64, error) {
	data, err := json.MarshalIndent(symtable, "", "  ")

	if err != nil {
		return 0, err
	}

	n, err := writer.Write(append(data, '\n'))
	return int64(n), err
}

func ReadSymTable(reader io.Reader) (*SymTable, error) {
	symtable := NewSymTable("")

	if err := json.NewDecoder(reader).Decode(symtable); err != nil {
		return nil, err
	}

	return symtable, nil
}
