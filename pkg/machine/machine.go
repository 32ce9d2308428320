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

package machine

import (
	"fmt"
	"io"

	"github.com/lassandro/gohack/pkg/encoding"
)

func (mc *MachineState) Reset() {
	mc.A = 0x0000
	mc.D = 0x0000
	mc.Program = 0x0000
	mc.Halted = false

	for i := range mc.RAM {
		mc.RAM[i] = 0x0000
	}
}

func (mc *Machine) LoadHack(reader io.Reader) error {
	words, err := encoding.ReadWords(reader)

	if err != nil {
		return err
	}

	return mc.LoadWords(words)
}

func (mc *Machine) LoadWords(words []uint16) error {
	if len(words) > MEMORY_SIZE {
		return fmt.Errorf(
			"Program exceeds instruction memory (%d words)", len(words),
		)
	}

	mc.State.Reset()

	for i := range mc.State.ROM {
		mc.State.ROM[i] = 0x0000
	}

	copy(mc.State.ROM[:], words)

	return nil
}

func (mc *Machine) read(addr uint16) uint16 {
	addr &= MEMORY_SIZE - 1

	if addr == DEV_KBD {
		var key uint16

		if mc.Devices != nil && mc.Devices.Keyboard != nil {
			if char, err := mc.Devices.Keyboard.ReadByte(); err == nil {
				key = keyCode(char)
			} else if err != io.EOF {
				panic(err)
			}
		}

		mc.State.RAM[DEV_KBD] = key
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.RAM[addr]
}

func (mc *Machine) write(addr uint16, value uint16) {
	addr &= MEMORY_SIZE - 1

	// Keyboard register is read-only
	if addr != DEV_KBD {
		mc.State.RAM[addr] = value
	}

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

func keyCode(char byte) uint16 {
	switch char {
	case '\r', '\n':
		return KEY_NEWLINE
	case 0x7F, 0x08:
		return KEY_BACKSPACE
	case 0x1B:
		return KEY_ESCAPE
	}

	return uint16(char)
}

func (mc *Machine) compute(instruction uint16) uint16 {
	x := mc.State.D
	y := mc.State.A

	if instruction&CTRL_A != 0 {
		y = mc.read(mc.State.A)
	}

	if instruction&CTRL_ZX != 0 {
		x = 0
	}

	if instruction&CTRL_NX != 0 {
		x = ^x
	}

	if instruction&CTRL_ZY != 0 {
		y = 0
	}

	if instruction&CTRL_NY != 0 {
		y = ^y
	}

	var out uint16

	if instruction&CTRL_F != 0 {
		out = x + y
	} else {
		out = x & y
	}

	if instruction&CTRL_NO != 0 {
		out = ^out
	}

	return out
}

func (mc *Machine) Step() {
	if mc.State.Halted {
		return
	}

	pc := mc.State.Program
	instruction := mc.State.ROM[pc&(MEMORY_SIZE-1)]

	// A    |0|value                          | Load address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	if instruction>>15 == 0 {
		mc.State.A = instruction
		mc.State.Program++
	} else {
		// C    |1 1 1|a|c c c c c c|d d d|j j j  | Compute
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		addr := mc.State.A
		out := mc.compute(instruction)

		if instruction&DEST_M != 0 {
			mc.write(addr, out)
		}

		if instruction&DEST_D != 0 {
			mc.State.D = out
		}

		if instruction&DEST_A != 0 {
			mc.State.A = out
		}

		signed := int16(out)
		jump := (instruction&JUMP_LT != 0 && signed < 0) ||
			(instruction&JUMP_EQ != 0 && signed == 0) ||
			(instruction&JUMP_GT != 0 && signed > 0)

		if jump {
			mc.State.Program = addr

			if mc.isHaltLoop(pc, addr, instruction) {
				mc.State.Halted = true
			}
		} else {
			mc.State.Program++
		}
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}
}

// An unconditional jump that stores nothing and lands on itself, or on the
// address instruction loading its own target (@END; 0;JMP), never leaves.
func (mc *Machine) isHaltLoop(pc, addr, instruction uint16) bool {
	if instruction&(DEST_A|DEST_D|DEST_M) != 0 {
		return false
	}

	if instruction&(JUMP_LT|JUMP_EQ|JUMP_GT) != JUMP_LT|JUMP_EQ|JUMP_GT {
		return false
	}

	return addr == pc || (addr+1 == pc && mc.State.ROM[addr&(MEMORY_SIZE-1)] == addr)
}

// Run steps the machine until it halts or limit instructions have executed.
// A limit of zero runs until halt. The number of executed instructions is
// returned.
func (mc *Machine) Run(limit uint64) uint64 {
	var steps uint64

	for !mc.State.Halted && (limit == 0 || steps < limit) {
		mc.Step()
		steps++
	}

	return steps
}

// Screen returns the memory mapped display words
func (mc *MachineState) Screen() []uint16 {
	return mc.RAM[DEV_SCREEN : DEV_SCREEN+SCREEN_WORDS]
}
