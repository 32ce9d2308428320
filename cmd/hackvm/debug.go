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

package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lassandro/gohack/pkg/debugger"
	"github.com/lassandro/gohack/pkg/encoding"
	"github.com/lassandro/gohack/pkg/machine"
)

var lastcmd []string

const debugHelp = `break  [add|list|remove|clear]  Manage breakpoints (address or label)
watch  [add|list|remove]        Manage memory watchpoints
reg    [A|D|PC] [value]         Show or set registers
source [addr|label] [#]         Show source around an instruction
dis    [addr|label] [#]         Disassemble instruction memory
labels                          List labels
vars                            List variables and their values
jump   [addr|label]             Set the program counter
mem    [addr] [#]               Show data memory
set    [addr] [value]           Write data memory
next | continue | quit`

// parseAddress accepts a label from the symbol table or a hex/decimal
// address
func parseAddress(dbg *debugger.Debugger, s string) (uint16, error) {
	if addr, ok := dbg.LookupLabel(s); ok {
		return addr, nil
	}

	addr, err := encoding.DecodeAddress(s)

	if err != nil {
		return 0, fmt.Errorf("Unable to find '%s'", s)
	}

	if int(addr) >= machine.MEMORY_SIZE {
		return 0, fmt.Errorf("Address %#04x out of range", addr)
	}

	return addr, nil
}

func parseCount(s string) (uint16, error) {
	value, err := strconv.ParseUint(s, 10, 16)
	return uint16(value), err
}

func debugBreak(dbg *debugger.Debugger, args []string) {
	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "break add [0x####|label]"

		if len(args) != 1 {
			fmt.Println(usage)
			return
		}

		addr, err := parseAddress(dbg, args[0])

		if err != nil {
			logger.Error(err)
			return
		}

		if dbg.AddBreakpoint(addr) {
			fmt.Printf("Breakpoint added [%#04x]\n", addr)
		}

	case "l", "ls", "list":
		for i, breakpoint := range dbg.Breakpoints {
			fmt.Printf("#%d: %#04x\n", i, breakpoint.Addr)
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			fmt.Println(usage)
			return
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			logger.Error(err)
			return
		}

		if err := dbg.RemoveBreakpoint(i); err != nil {
			logger.Error(err)
			return
		}

		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = nil
		fmt.Println("Breakpoints reset")

	default:
		logger.Errorf("break: '%s' is not a valid command", cmd)
	}
}

func debugWatch(dbg *debugger.Debugger, args []string) {
	const usage = "watch [add|list|remove]"

	if len(args) == 0 {
		fmt.Println(usage)
		return
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [0x####] [read|write|readwrite]"

		if len(args) != 2 {
			fmt.Println(usage)
			return
		}

		addr, err := encoding.DecodeAddress(args[0])

		if err != nil {
			logger.Error(err)
			return
		}

		var wtype debugger.WatchpointType

		switch args[1] {
		case "r", "read":
			wtype = debugger.ReadWatch
		case "w", "write":
			wtype = debugger.WriteWatch
		case "rw", "readwrite":
			wtype = debugger.ReadWriteWatch
		default:
			fmt.Println(usage)
			return
		}

		if dbg.AddWatchpoint(addr, wtype) {
			fmt.Printf("Watchpoint added [%#04x] (%s)\n", addr, wtype)
		}

	case "l", "ls", "list":
		for i, watchpoint := range dbg.Watchpoints {
			fmt.Printf(
				"#%d: %#04x (%s)\n", i, watchpoint.Addr, watchpoint.Type,
			)
		}

	case "r", "rm", "remove":
		const usage = "watch remove [#]"

		if len(args) != 1 {
			fmt.Println(usage)
			return
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			logger.Error(err)
			return
		}

		if err := dbg.RemoveWatchpoint(i); err != nil {
			logger.Error(err)
			return
		}

		fmt.Printf("Watchpoint removed [%d]\n", i)

	default:
		logger.Errorf("watch: '%s' is not a valid command", cmd)
	}
}

func debugReg(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "reg [A|D|PC] [value]"

	if len(args) == 0 {
		dbg.PrintRegisters(mc)
		return
	}

	if len(args) != 2 {
		fmt.Println(usage)
		return
	}

	value, err := encoding.DecodeAddress(args[1])

	if err != nil {
		logger.Error(err)
		return
	}

	switch strings.ToUpper(args[0]) {
	case "A":
		mc.A = value
	case "D":
		mc.D = value
	case "PC":
		mc.Program = value
	default:
		logger.Error("Invalid register")
		return
	}

	dbg.PrintRegisters(mc)
}

// addressAndCount parses the optional [addr|label] [#] arguments shared by
// the listing commands.
func addressAndCount(dbg *debugger.Debugger, args []string, addr, count uint16) (uint16, uint16, bool) {
	var err error

	if len(args) > 0 {
		if addr, err = parseAddress(dbg, args[0]); err != nil {
			logger.Error(err)
			return 0, 0, false
		}
	}

	if len(args) > 1 {
		if count, err = parseCount(args[1]); err != nil {
			logger.Error(err)
			return 0, 0, false
		}
	}

	return addr, count, true
}

func debugLabels(dbg *debugger.Debugger) {
	if dbg.SymTable == nil {
		fmt.Println("No symbol table loaded")
		return
	}

	keys := make([]uint16, 0, len(dbg.SymTable.Labels))

	for addr := range dbg.SymTable.Labels {
		keys = append(keys, addr)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, addr := range keys {
		fmt.Printf(
			"\033[1m[%#04x]\033[0m %s\n", addr, dbg.SymTable.Labels[addr],
		)
	}
}

func debugSet(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "set [0x####] [value]"

	if len(args) != 2 {
		fmt.Println(usage)
		return
	}

	addr, err := parseAddress(dbg, args[0])

	if err != nil {
		logger.Error(err)
		return
	}

	value, err := encoding.DecodeAddress(args[1])

	if err != nil {
		logger.Error(err)
		return
	}

	mc.RAM[addr] = value
	dbg.PrintMem(mc, addr, 1)
}

func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			shouldexit = true
			return
		}

		args := strings.Fields(scanner.Text())

		if len(args) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, args)
		case "w", "wp", "watch", "watchpoint":
			debugWatch(dbg, args)
		case "r", "reg", "register", "registers":
			debugReg(dbg, &mc.State, args)
		case "s", "src", "source":
			if addr, count, ok := addressAndCount(dbg, args, mc.State.Program, 3); ok {
				dbg.PrintSource(addr, count)
			}
		case "d", "dis", "disassemble":
			if addr, count, ok := addressAndCount(dbg, args, mc.State.Program, 5); ok {
				dbg.PrintDisassembly(&mc.State, addr, count)
			}
		case "l", "label", "labels":
			debugLabels(dbg)
		case "v", "var", "vars":
			dbg.PrintVariables(&mc.State)
		case "j", "jmp", "jump":
			if len(args) != 1 {
				fmt.Println("jump [0x####|label]")
				continue
			}

			if addr, err := parseAddress(dbg, args[0]); err == nil {
				mc.State.Program = addr
				mc.State.Halted = false
				dbg.PrintRegisters(&mc.State)
			} else {
				logger.Error(err)
			}
		case "m", "mem", "memory":
			if addr, count, ok := addressAndCount(dbg, args, 0, 1); ok {
				dbg.PrintMem(&mc.State, addr, count)
			}
		case "set":
			debugSet(dbg, &mc.State, args)
		case "c", "continue":
			dbg.Break = false
			return
		case "n", "next":
			dbg.Break = true
			return
		case "q", "quit", "exit":
			shouldexit = true
			return
		case "h", "help":
			fmt.Println(debugHelp)
		default:
			logger.Errorf("'%s' is not a valid command", cmd)
		}
	}
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	dbg.PrintDisassembly(&mc.State, mc.State.Program, 1)
	debugREPL(dbg, mc)
}

func handleRead(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Printf("Read watchpoint [%#04x] = %#04x\n", addr, mc.State.RAM[addr])
	dbg.Break = true
}

func handleWrite(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Printf("Write watchpoint [%#04x] = %#04x\n", addr, mc.State.RAM[addr])
	dbg.Break = true
}
