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

const MEMORY_SIZE = 1 << 15

const (
	DEV_SCREEN uint16 = 0x4000
	DEV_KBD    uint16 = 0x6000

	// 512x256 pixels, 16 pixels per word
	SCREEN_WIDTH  = 512
	SCREEN_HEIGHT = 256
	SCREEN_WORDS  = SCREEN_WIDTH / 16 * SCREEN_HEIGHT
)

// Key codes the keyboard register reports for non-printable keys
const (
	KEY_NEWLINE   uint16 = 128
	KEY_BACKSPACE uint16 = 129
	KEY_ESCAPE    uint16 = 140
)

// Compute instruction control bits
// ---- [ 1 1 1 a c c c c c c d d d j j j ]
const (
	CTRL_A  uint16 = 1 << 12
	CTRL_ZX uint16 = 1 << 11
	CTRL_NX uint16 = 1 << 10
	CTRL_ZY uint16 = 1 << 9
	CTRL_NY uint16 = 1 << 8
	CTRL_F  uint16 = 1 << 7
	CTRL_NO uint16 = 1 << 6

	DEST_A uint16 = 1 << 5
	DEST_D uint16 = 1 << 4
	DEST_M uint16 = 1 << 3

	JUMP_LT uint16 = 1 << 2
	JUMP_EQ uint16 = 1 << 1
	JUMP_GT uint16 = 1 << 0
)
