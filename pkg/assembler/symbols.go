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

	multierror "github.com/hashicorp/go-multierror"
)

// SymbolTable maps symbolic names to addresses for a single assembler run.
// It starts with the reserved names, receives labels during the first pass
// and variables during the second.
type SymbolTable struct {
	symbols   map[string]uint16
	labels    map[string]uint16
	variables []string
	next      uint16
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: reservedSymbols(),
		labels:  make(map[string]uint16),
		next:    ADDRESS_VARIABLES,
	}
}

// RegisterLabels binds every label definition in lines to the address of the
// instruction following it. It must complete before any call to Resolve.
func (table *SymbolTable) RegisterLabels(lines []Line) error {
	var errs *multierror.Error
	var program uint16 = 0

	for _, line := range lines {
		if !strings.HasPrefix(line.Text, "(") {
			program++
			continue
		}

		name, ok := parseLabel(line.Text)

		if !ok {
			errs = multierror.Append(
				errs, &MalformedInstructionError{line.Position, line.Text},
			)
			continue
		}

		if addr, exists := table.labels[name]; exists {
			if addr != program {
				errs = multierror.Append(
					errs, &RedeclaredLabelError{line.Position, name, addr},
				)
			}
			continue
		}

		// Reserved names and variables are never labels
		if addr, exists := table.symbols[name]; exists {
			errs = multierror.Append(
				errs, &RedeclaredLabelError{line.Position, name, addr},
			)
			continue
		}

		table.symbols[name] = program
		table.labels[name] = program
	}

	return errs.ErrorOrNil()
}

// Resolve returns the address bound to name, binding it to the next free
// variable address if it has not been seen before.
func (table *SymbolTable) Resolve(name string) (uint16, error) {
	if addr, exists := table.symbols[name]; exists {
		return addr, nil
	}

	if table.next > ADDRESS_MAX {
		return 0, &RangeError{
			Required: ADDRESS_MAX,
			Received: strconv.FormatUint(uint64(table.next), 10),
		}
	}

	addr := table.next
	table.symbols[name] = addr
	table.variables = append(table.variables, name)
	table.next++

	return addr, nil
}

// Lookup returns the address bound to name without binding anything
func (table *SymbolTable) Lookup(name string) (uint16, bool) {
	addr, exists := table.symbols[name]
	return addr, exists
}

func (table *SymbolTable) Labels() map[string]uint16 {
	result := make(map[string]uint16, len(table.labels))

	for name, addr := range table.labels {
		result[name] = addr
	}

	return result
}

// Variables in order of first use
func (table *SymbolTable) Variables() []string {
	return append([]string(nil), table.variables...)
}

func (table *SymbolTable) NextFree() uint16 {
	return table.next
}

func parseLabel(text string) (string, bool) {
	if len(text) < 3 || text[0] != '(' || text[len(text)-1] != ')' {
		return "", false
	}

	name := text[1 : len(text)-1]

	if strings.ContainsAny(name, "()") {
		return "", false
	}

	return name, true
}
