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

package disasm

const (
	OP_ADD  uint16 = 0b0001
	OP_AND  uint16 = 0b0101
	OP_BR   uint16 = 0b0000
	OP_JMP  uint16 = 0b1100
	OP_JSR  uint16 = 0b0100
	OP_LD   uint16 = 0b0010
	OP_LDI  uint16 = 0b1010
	OP_LDR  uint16 = 0b0110
	OP_LEA  uint16 = 0b1110
	OP_NOT  uint16 = 0b1001
	OP_RTI  uint16 = 0b1000
	OP_ST   uint16 = 0b0011
	OP_STI  uint16 = 0b1011
	OP_STR  uint16 = 0b0111
	OP_TRAP uint16 = 0b1111

	// Reserved
	OP_RES uint16 = 0b1101
)
