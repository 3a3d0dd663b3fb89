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

const (
	TOKEN_NONE TokenType = iota
	TOKEN_KEYWORD
	TOKEN_REGISTER
	TOKEN_LITERAL
	TOKEN_STRING
	TOKEN_IDENT
)

const (
	LITERAL_REGISTER   LiteralType = 3
	LITERAL_IMM5       LiteralType = 5
	LITERAL_OFFSET6    LiteralType = 6
	LITERAL_TRAPVEC8   LiteralType = 8
	LITERAL_PCOFFSET9  LiteralType = 9
	LITERAL_PCOFFSET11 LiteralType = 11
	LITERAL_WORD       LiteralType = 16
)

const (
	OPERAND_VALUE OperandType = iota
	OPERAND_REGISTER
	OPERAND_REGISTER_OR_IMM5
	OPERAND_OFFSET6
	OPERAND_LABEL_OR_PCOFFSET9
	OPERAND_LABEL_OR_PCOFFSET11
	OPERAND_TRAPVEC8
	OPERAND_STRING
)

const (
	MNEMONIC_INVALID Mnemonic = iota

	// Assembly Instructions
	INSTRUCTION_ADD
	INSTRUCTION_AND
	INSTRUCTION_BR
	INSTRUCTION_BRn
	INSTRUCTION_BRz
	INSTRUCTION_BRp
	INSTRUCTION_BRnz
	INSTRUCTION_BRzp
	INSTRUCTION_BRnp
	INSTRUCTION_BRnzp
	INSTRUCTION_JMP
	INSTRUCTION_JSR
	INSTRUCTION_JSRR
	INSTRUCTION_LD
	INSTRUCTION_LDI
	INSTRUCTION_LDR
	INSTRUCTION_LEA
	INSTRUCTION_NOT
	INSTRUCTION_RET
	INSTRUCTION_RTI
	INSTRUCTION_ST
	INSTRUCTION_STI
	INSTRUCTION_STR
	INSTRUCTION_TRAP

	// Trap Routines
	INSTRUCTION_GETC
	INSTRUCTION_OUT
	INSTRUCTION_PUTS
	INSTRUCTION_IN
	INSTRUCTION_PUTSP
	INSTRUCTION_HALT

	// Assembler Directives
	DIRECTIVE_ORIG
	DIRECTIVE_FILL
	DIRECTIVE_BLKW
	DIRECTIVE_STRINGZ
	DIRECTIVE_END

	mnemonicCount
)

const (
	FORMAT_NONE Format = iota
	FORMAT_FIXED
	FORMAT_ARITH
	FORMAT_NOT
	FORMAT_PCOFFSET9
	FORMAT_BASEOFFSET6
	FORMAT_BRANCH
	FORMAT_PCOFFSET11
	FORMAT_BASE
	FORMAT_TRAP
	FORMAT_ORIG
	FORMAT_FILL
	FORMAT_BLKW
	FORMAT_STRINGZ
	FORMAT_END
)

const (
	counterUndefined int32 = -1
	memoryLimit      int32 = 1 << 16
)
