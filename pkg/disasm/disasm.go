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

// Package disasm renders LC-3 machine words back into assembly.
//
// Words that do not decode to a well formed instruction are shown as .FILL
// so that a listing always reassembles to the same image.
package disasm

import (
	"fmt"
	"strings"

	"github.com/lassandro/lc3asm/pkg/assembler"
	"github.com/lassandro/lc3asm/pkg/encoding"
)

var (
	// Exact encodings of operand-less mnemonics (RET, RTI, HALT, ...)
	fixedNames = map[uint16]string{}

	// Branch mnemonics keyed by their opcode and condition bits
	branchNames = map[uint16]string{}
)

func init() {
	for _, mnemonic := range assembler.Mnemonics() {
		name := strings.Fields(mnemonic.Syntax())[0]

		switch mnemonic.Format() {
		case assembler.FORMAT_FIXED:
			fixedNames[mnemonic.Opcode()] = name
		case assembler.FORMAT_BRANCH:
			if _, exists := branchNames[mnemonic.Opcode()]; !exists {
				branchNames[mnemonic.Opcode()] = name
			}
		}
	}
}

func fill(word uint16) string {
	return fmt.Sprintf(".FILL x%04X", word)
}

func target(addr uint16, labels map[uint16]string) string {
	if label, exists := labels[addr]; exists {
		return label
	}

	return fmt.Sprintf("x%04X", addr)
}

func signed(value uint16) string {
	return fmt.Sprintf("#%d", int16(value))
}

// Renders word, stored at addr, as one line of assembly. PC-relative
// operands are resolved to their target and shown as a label when labels
// has one for that address.
func Disassemble(word uint16, addr uint16, labels map[uint16]string) string {
	if name, exists := fixedNames[word]; exists {
		return name
	}

	opcode := word >> 12
	pc := addr + 1

	switch opcode {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD, OP_AND:
		name := "ADD"

		if opcode == OP_AND {
			name = "AND"
		}

		dest := (word >> 9) & 0x7
		src1 := (word >> 6) & 0x7

		if (word>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(word&0x1F, 5)

			return fmt.Sprintf("%s R%d, R%d, %s", name, dest, src1, signed(imm5))
		}

		if (word>>3)&0x3 != 0 {
			return fill(word)
		}

		return fmt.Sprintf("%s R%d, R%d, R%d", name, dest, src1, word&0x7)

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		name, exists := branchNames[word&0xFE00]

		// No condition bits set, the word can never branch
		if !exists {
			return fill(word)
		}

		dest := pc + encoding.SignExtend(word&0x1FF, 9)

		return fmt.Sprintf("%s %s", name, target(dest, labels))

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		if word&0x0E3F != 0 {
			return fill(word)
		}

		return fmt.Sprintf("JMP R%d", (word>>6)&0x7)

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		if (word>>11)&0x1 == 1 {
			dest := pc + encoding.SignExtend(word&0x7FF, 11)

			return fmt.Sprintf("JSR %s", target(dest, labels))
		}

		if word&0x0E3F != 0 {
			return fill(word)
		}

		return fmt.Sprintf("JSRR R%d", (word>>6)&0x7)

	// LD   |0010    |DR   |PCoffset9         | Load
	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ST   |0011    |SR   |PCoffset9         | Store
	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD, OP_LDI, OP_LEA, OP_ST, OP_STI:
		reg := (word >> 9) & 0x7
		dest := pc + encoding.SignExtend(word&0x1FF, 9)

		return fmt.Sprintf(
			"%s R%d, %s", pcOffsetNames[opcode], reg, target(dest, labels),
		)

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR, OP_STR:
		name := "LDR"

		if opcode == OP_STR {
			name = "STR"
		}

		reg := (word >> 9) & 0x7
		base := (word >> 6) & 0x7
		offset := encoding.SignExtend(word&0x3F, 6)

		return fmt.Sprintf("%s R%d, R%d, %s", name, reg, base, signed(offset))

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		if word&0x3F != 0x3F {
			return fill(word)
		}

		return fmt.Sprintf("NOT R%d, R%d", (word>>9)&0x7, (word>>6)&0x7)

	// TRAP |1111    |0000   |trapvect8       | System call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		if word&0x0F00 != 0 {
			return fill(word)
		}

		return fmt.Sprintf("TRAP x%02X", word&0xFF)
	}

	// RTI with stray operand bits and the reserved opcode
	return fill(word)
}

var pcOffsetNames = map[uint16]string{
	OP_LD:  "LD",
	OP_LDI: "LDI",
	OP_LEA: "LEA",
	OP_ST:  "ST",
	OP_STI: "STI",
}

// Lays out an object image whose first word is the origin, one line per
// program word: address, raw word, label and the disassembled instruction.
func Listing(words []uint16, labels map[uint16]string) []string {
	if len(words) == 0 {
		return nil
	}

	origin := words[0]
	lines := make([]string, 0, len(words))
	lines = append(lines, fmt.Sprintf("%-22s.ORIG x%04X", "", origin))

	for i, word := range words[1:] {
		addr := origin + uint16(i)

		lines = append(lines, fmt.Sprintf(
			"x%04X  %04X  %-8s %s",
			addr,
			word,
			labels[addr],
			Disassemble(word, addr, labels),
		))
	}

	lines = append(lines, fmt.Sprintf("%-22s.END", ""))

	return lines
}
