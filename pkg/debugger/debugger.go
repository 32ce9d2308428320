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

package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/machine"
)

func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.Break {
		dbg.HandleBreak(dbg, mc)
		return
	}

	for _, breakpoint := range dbg.Breakpoints {
		if mc.State.Program == breakpoint.Addr {
			dbg.HandleBreak(dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

// AddBreakpoint reports whether a new breakpoint was added
func (dbg *Debugger) AddBreakpoint(addr uint16) bool {
	for _, breakpoint := range dbg.Breakpoints {
		if breakpoint.Addr == addr {
			return false
		}
	}

	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{addr})
	return true
}

func (dbg *Debugger) RemoveBreakpoint(index int) error {
	if index < 0 || index >= len(dbg.Breakpoints) {
		return fmt.Errorf("Invalid breakpoint number %d", index)
	}

	dbg.Breakpoints[index] = dbg.Breakpoints[len(dbg.Breakpoints)-1]
	dbg.Breakpoints = dbg.Breakpoints[:len(dbg.Breakpoints)-1]

	return nil
}

// AddWatchpoint reports whether a new watchpoint was added
func (dbg *Debugger) AddWatchpoint(addr uint16, wtype WatchpointType) bool {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Addr == addr && watchpoint.Type == wtype {
			return false
		}
	}

	dbg.Watchpoints = append(dbg.Watchpoints, Watchpoint{addr, wtype})
	return true
}

func (dbg *Debugger) RemoveWatchpoint(index int) error {
	if index < 0 || index >= len(dbg.Watchpoints) {
		return fmt.Errorf("Invalid watchpoint number %d", index)
	}

	dbg.Watchpoints[index] = dbg.Watchpoints[len(dbg.Watchpoints)-1]
	dbg.Watchpoints = dbg.Watchpoints[:len(dbg.Watchpoints)-1]

	return nil
}

// LookupLabel resolves a label from the loaded symbol table to its address
func (dbg *Debugger) LookupLabel(name string) (uint16, bool) {
	if dbg.SymTable == nil {
		return 0, false
	}

	for addr, label := range dbg.SymTable.Labels {
		if label == name {
			return addr, true
		}
	}

	return 0, false
}

func (dbg *Debugger) output() io.Writer {
	if dbg.Output == nil {
		return os.Stdout
	}

	return dbg.Output
}

func (dbg *Debugger) PrintSource(addr uint16, count uint16) {
	out := dbg.output()

	if dbg.Source == nil {
		fmt.Fprintln(out, "No source file loaded")
		return
	}

	if dbg.SymTable == nil {
		fmt.Fprintln(out, "No symbol table loaded")
		return
	}

	offset, exists := dbg.SymTable.Symbols[addr]

	if !exists {
		fmt.Fprintf(out, "No instruction found at %#04x\n", addr)
		return
	}

	if _, err := dbg.Source.Seek(offset, io.SeekStart); err != nil {
		fmt.Fprintln(out, err)
		return
	}

	lineaddrs := make(map[int64]uint16, len(dbg.SymTable.Symbols))

	for lineaddr, linebyte := range dbg.SymTable.Symbols {
		lineaddrs[linebyte] = lineaddr
	}

	reader := bufio.NewReader(dbg.Source)

	for i := uint16(0); i < count; i++ {
		line, err := reader.ReadString('\n')

		if len(line) == 0 && err != nil {
			break
		}

		if lineaddr, found := lineaddrs[offset]; found {
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", lineaddr)
		} else {
			fmt.Fprint(out, "\033[1;30m~~~~~~~~\033[0m ")
		}

		offset += int64(len(line))

		if line[len(line)-1] == '\n' {
			line = line[:len(line)-1]
		}

		fmt.Fprintln(out, line)
	}
}

func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	out := dbg.output()

	for i := addr; i < addr+count && int(i) < machine.MEMORY_SIZE; i++ {
		if i == addr {
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", i)
		} else if (i-addr)%4 == 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", i)
		}

		result := mc.RAM[i]

		if result == 0 {
			fmt.Fprintf(out, "\033[1;30m%#04x\033[0m ", result)
		} else {
			fmt.Fprintf(out, "%#04x ", result)
		}
	}

	fmt.Fprintln(out)
}

// PrintDisassembly lists count instructions of ROM starting at addr, marking
// labels and the current program counter.
func (dbg *Debugger) PrintDisassembly(mc *machine.MachineState, addr, count uint16) {
	out := dbg.output()

	for i := addr; i < addr+count && int(i) < machine.MEMORY_SIZE; i++ {
		if dbg.SymTable != nil {
			if label, exists := dbg.SymTable.Labels[i]; exists {
				fmt.Fprintf(out, "(%s)\n", label)
			}
		}

		marker := "  "

		if i == mc.Program {
			marker = "=>"
		}

		text, err := assembler.Disassemble(mc.ROM[i])

		if err != nil {
			text = fmt.Sprintf("?? %016b", mc.ROM[i])
		}

		fmt.Fprintf(out, "%s \033[1m[%#04x]\033[0m %s\n", marker, i, text)
	}
}

func (dbg *Debugger) PrintRegisters(mc *machine.MachineState) {
	fmt.Fprintf(
		dbg.output(),
		"A:%#04x (%d) D:%#04x (%d) PC:%#04x\n",
		mc.A, int16(mc.A),
		mc.D, int16(mc.D),
		mc.Program,
	)
}

// PrintVariables lists the variables of the symbol table with their values
func (dbg *Debugger) PrintVariables(mc *machine.MachineState) {
	out := dbg.output()

	if dbg.SymTable == nil {
		fmt.Fprintln(out, "No symbol table loaded")
		return
	}

	names := make([]string, 0, len(dbg.SymTable.Variables))

	for name := range dbg.SymTable.Variables {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return dbg.SymTable.Variables[names[i]] < dbg.SymTable.Variables[names[j]]
	})

	for _, name := range names {
		addr := dbg.SymTable.Variables[name]
		fmt.Fprintf(out, "%s [%#04x] = %d\n", name, addr, int16(mc.RAM[addr]))
	}
}
