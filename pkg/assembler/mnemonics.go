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
	"strings"
)

type mnemonicInfo struct {
	Name   string
	Opcode uint16
	Format Format
	Syntax string
	Layout string
}

// Opcodes are stored left aligned, with any fixed bits (branch conditions,
// JSR's mode bit, trap vectors of the trap aliases) already in place.
var mnemonicTable = [mnemonicCount]mnemonicInfo{
	INSTRUCTION_ADD: {
		"ADD", 0b0001 << 12, FORMAT_ARITH,
		"ADD DR, SR1, SR2|imm5",
		"|0001    |DR   |SR1  |A|00 |SR2   |",
	},
	INSTRUCTION_AND: {
		"AND", 0b0101 << 12, FORMAT_ARITH,
		"AND DR, SR1, SR2|imm5",
		"|0101    |DR   |SR1  |A|00 |SR2   |",
	},
	INSTRUCTION_BR: {
		"BR", 0b0000_111 << 9, FORMAT_BRANCH,
		"BR LABEL|PCoffset9",
		"|0000    |1|1|1|PCoffset9         |",
	},
	INSTRUCTION_BRn: {
		"BRN", 0b0000_100 << 9, FORMAT_BRANCH,
		"BRn LABEL|PCoffset9",
		"|0000    |1|0|0|PCoffset9         |",
	},
	INSTRUCTION_BRz: {
		"BRZ", 0b0000_010 << 9, FORMAT_BRANCH,
		"BRz LABEL|PCoffset9",
		"|0000    |0|1|0|PCoffset9         |",
	},
	INSTRUCTION_BRp: {
		"BRP", 0b0000_001 << 9, FORMAT_BRANCH,
		"BRp LABEL|PCoffset9",
		"|0000    |0|0|1|PCoffset9         |",
	},
	INSTRUCTION_BRnz: {
		"BRNZ", 0b0000_110 << 9, FORMAT_BRANCH,
		"BRnz LABEL|PCoffset9",
		"|0000    |1|1|0|PCoffset9         |",
	},
	INSTRUCTION_BRzp: {
		"BRZP", 0b0000_011 << 9, FORMAT_BRANCH,
		"BRzp LABEL|PCoffset9",
		"|0000    |0|1|1|PCoffset9         |",
	},
	INSTRUCTION_BRnp: {
		"BRNP", 0b0000_101 << 9, FORMAT_BRANCH,
		"BRnp LABEL|PCoffset9",
		"|0000    |1|0|1|PCoffset9         |",
	},
	INSTRUCTION_BRnzp: {
		"BRNZP", 0b0000_111 << 9, FORMAT_BRANCH,
		"BRnzp LABEL|PCoffset9",
		"|0000    |1|1|1|PCoffset9         |",
	},
	INSTRUCTION_JMP: {
		"JMP", 0b1100 << 12, FORMAT_BASE,
		"JMP BaseR",
		"|1100    |000  |BaseR|000000      |",
	},
	INSTRUCTION_JSR: {
		"JSR", 0b0100_1 << 11, FORMAT_PCOFFSET11,
		"JSR LABEL|PCoffset11",
		"|0100    |1|PCoffset11            |",
	},
	INSTRUCTION_JSRR: {
		"JSRR", 0b0100 << 12, FORMAT_BASE,
		"JSRR BaseR",
		"|0100    |0|00 |BaseR|000000      |",
	},
	INSTRUCTION_LD: {
		"LD", 0b0010 << 12, FORMAT_PCOFFSET9,
		"LD DR, LABEL|PCoffset9",
		"|0010    |DR   |PCoffset9         |",
	},
	INSTRUCTION_LDI: {
		"LDI", 0b1010 << 12, FORMAT_PCOFFSET9,
		"LDI DR, LABEL|PCoffset9",
		"|1010    |DR   |PCoffset9         |",
	},
	INSTRUCTION_LDR: {
		"LDR", 0b0110 << 12, FORMAT_BASEOFFSET6,
		"LDR DR, BaseR, offset6",
		"|0110    |DR   |BaseR|offset6     |",
	},
	INSTRUCTION_LEA: {
		"LEA", 0b1110 << 12, FORMAT_PCOFFSET9,
		"LEA DR, LABEL|PCoffset9",
		"|1110    |DR   |PCoffset9         |",
	},
	INSTRUCTION_NOT: {
		"NOT", 0b1001 << 12, FORMAT_NOT,
		"NOT DR, SR",
		"|1001    |DR   |SR   |1|11111     |",
	},
	INSTRUCTION_RET: {
		"RET", 0b1100_000_111_000000, FORMAT_FIXED,
		"RET",
		"|1100    |000  |111  |000000      |",
	},
	INSTRUCTION_RTI: {
		"RTI", 0b1000_000000000000, FORMAT_FIXED,
		"RTI",
		"|1000    |000000000000            |",
	},
	INSTRUCTION_ST: {
		"ST", 0b0011 << 12, FORMAT_PCOFFSET9,
		"ST SR, LABEL|PCoffset9",
		"|0011    |SR   |PCoffset9         |",
	},
	INSTRUCTION_STI: {
		"STI", 0b1011 << 12, FORMAT_PCOFFSET9,
		"STI SR, LABEL|PCoffset9",
		"|1011    |SR   |PCoffset9         |",
	},
	INSTRUCTION_STR: {
		"STR", 0b0111 << 12, FORMAT_BASEOFFSET6,
		"STR SR, BaseR, offset6",
		"|0111    |SR   |BaseR|offset6     |",
	},
	INSTRUCTION_TRAP: {
		"TRAP", 0b1111 << 12, FORMAT_TRAP,
		"TRAP trapvect8",
		"|1111    |0000   |trapvect8       |",
	},
	INSTRUCTION_GETC: {
		"GETC", 0b1111_0000_00100000, FORMAT_FIXED,
		"GETC",
		"|1111    |0000   |00100000        |",
	},
	INSTRUCTION_OUT: {
		"OUT", 0b1111_0000_00100001, FORMAT_FIXED,
		"OUT",
		"|1111    |0000   |00100001        |",
	},
	INSTRUCTION_PUTS: {
		"PUTS", 0b1111_0000_00100010, FORMAT_FIXED,
		"PUTS",
		"|1111    |0000   |00100010        |",
	},
	INSTRUCTION_IN: {
		"IN", 0b1111_0000_00100011, FORMAT_FIXED,
		"IN",
		"|1111    |0000   |00100011        |",
	},
	INSTRUCTION_PUTSP: {
		"PUTSP", 0b1111_0000_00100100, FORMAT_FIXED,
		"PUTSP",
		"|1111    |0000   |00100100        |",
	},
	INSTRUCTION_HALT: {
		"HALT", 0b1111_0000_00100101, FORMAT_FIXED,
		"HALT",
		"|1111    |0000   |00100101        |",
	},
	DIRECTIVE_ORIG: {
		".ORIG", 0, FORMAT_ORIG,
		".ORIG address",
		"",
	},
	DIRECTIVE_FILL: {
		".FILL", 0, FORMAT_FILL,
		".FILL LABEL|value",
		"",
	},
	DIRECTIVE_BLKW: {
		".BLKW", 0, FORMAT_BLKW,
		".BLKW count",
		"",
	},
	DIRECTIVE_STRINGZ: {
		".STRINGZ", 0, FORMAT_STRINGZ,
		".STRINGZ \"string\"",
		"",
	},
	DIRECTIVE_END: {
		".END", 0, FORMAT_END,
		".END",
		"",
	},
}

func ParseMnemonic(ident string) Mnemonic {
	for mnemonic := INSTRUCTION_ADD; mnemonic < mnemonicCount; mnemonic++ {
		if strings.EqualFold(ident, mnemonicTable[mnemonic].Name) {
			return mnemonic
		}
	}

	return MNEMONIC_INVALID
}

// Lists every valid mnemonic in table order
func Mnemonics() []Mnemonic {
	result := make([]Mnemonic, 0, mnemonicCount-1)

	for mnemonic := INSTRUCTION_ADD; mnemonic < mnemonicCount; mnemonic++ {
		result = append(result, mnemonic)
	}

	return result
}

func (m Mnemonic) valid() bool {
	return m > MNEMONIC_INVALID && m < mnemonicCount
}

func (m Mnemonic) String() string {
	if !m.valid() {
		return "<invalid>"
	}

	return mnemonicTable[m].Name
}

func (m Mnemonic) Opcode() uint16 {
	if !m.valid() {
		return 0
	}

	return mnemonicTable[m].Opcode
}

func (m Mnemonic) Format() Format {
	if !m.valid() {
		return FORMAT_NONE
	}

	return mnemonicTable[m].Format
}

func (m Mnemonic) Syntax() string {
	if !m.valid() {
		return ""
	}

	return mnemonicTable[m].Syntax
}

// Bit layout of the encoded instruction, empty for directives
func (m Mnemonic) Layout() string {
	if !m.valid() {
		return ""
	}

	return mnemonicTable[m].Layout
}

func (m Mnemonic) IsDirective() bool {
	return m >= DIRECTIVE_ORIG && m <= DIRECTIVE_END
}
