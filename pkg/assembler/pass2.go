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
	"github.com/golang/glog"

	"github.com/lassandro/lc3asm/pkg/encoding"
)

// Resolves labels and encodes every pending instruction in order. An
// instruction that fails to resolve contributes no words, but encoding
// carries on with the instructions after it.
func pass2(pending []PendingInstruction, symbols *SymbolTable) ([]uint16, []error) {
	var diags Diagnostics
	var result = make([]uint16, 0, len(pending))

	for i := range pending {
		inst := &pending[i]
		words, err := encodeInstruction(inst, symbols)

		if err != nil {
			diags.Add(err)
			continue
		}

		if glog.V(2) {
			glog.Infof(
				"Line %d: %s at %#04x encoded as %d word(s)",
				inst.Line, inst.Mnemonic, inst.Address, len(words),
			)
		}

		result = append(result, words...)
	}

	return result, diags.Errors()
}

func operand(inst *PendingInstruction, index int) (*Token, LineError) {
	if index >= len(inst.Operands) {
		return nil, &MissingOperandError{inst.Line}
	}

	return &inst.Operands[index], nil
}

func registerOperand(inst *PendingInstruction, index int) (uint16, LineError) {
	token, err := operand(inst, index)

	if err != nil {
		return 0, err
	}

	reg, digits, ok := parseRegister(token)

	if !ok {
		if token.Type == TOKEN_REGISTER {
			return 0, &InvalidRegisterError{inst.Line, digits}
		}

		return 0, &InvalidOperandError{inst.Line, OPERAND_REGISTER, token.Value}
	}

	return reg, nil
}

func literalOperand(inst *PendingInstruction, index int, size LiteralType, signed bool) (uint16, LineError) {
	token, err := operand(inst, index)

	if err != nil {
		return 0, err
	}

	value, _, decodeErr := decodeLiteral(token)

	if decodeErr != nil {
		return 0, &EncodingError{inst.Line, decodeErr}
	}

	var bits uint16
	var encodeErr error

	if size == LITERAL_WORD {
		bits, encodeErr = encoding.EncodeWord(value)
	} else {
		bits, encodeErr = encoding.EncodeBits(value, uint(size), signed)
	}

	if encodeErr != nil {
		return 0, &EncodingError{inst.Line, encodeErr}
	}

	return bits, nil
}

// Encodes a PC-relative operand. Labels are measured from the word after the
// instruction.
func pcOffsetOperand(inst *PendingInstruction, index int, size LiteralType, symbols *SymbolTable) (uint16, LineError) {
	token, err := operand(inst, index)

	if err != nil {
		return 0, err
	}

	if token.Type == TOKEN_LITERAL {
		return literalOperand(inst, index, size, true)
	}

	symbol, exists := symbols.Lookup(token.Value)

	if !exists {
		return 0, &UnknownLabelError{inst.Line, token.Value}
	}

	offset := int64(symbol.Address) - (int64(inst.Address) + 1)
	bits, encodeErr := encoding.EncodeBits(offset, uint(size), true)

	if encodeErr != nil {
		return 0, &OversizedLabelError{inst.Line, token.Value, size}
	}

	return bits, nil
}

func encodeInstruction(inst *PendingInstruction, symbols *SymbolTable) ([]uint16, LineError) {
	var scratch uint16 = inst.Mnemonic.Opcode()

	switch inst.Mnemonic.Format() {
	case FORMAT_ORIG:
		origin, err := literalOperand(inst, 0, LITERAL_WORD, false)

		if err != nil {
			return nil, err
		}

		return []uint16{origin}, nil

	case FORMAT_FILL:
		token, err := operand(inst, 0)

		if err != nil {
			return nil, err
		}

		if isLabel(token) {
			symbol, exists := symbols.Lookup(token.Value)

			if !exists {
				return nil, &UnknownLabelError{inst.Line, token.Value}
			}

			return []uint16{symbol.Address}, nil
		}

		value, err := literalOperand(inst, 0, LITERAL_WORD, false)

		if err != nil {
			return nil, err
		}

		return []uint16{value}, nil

	case FORMAT_BLKW:
		token, err := operand(inst, 0)

		if err != nil {
			return nil, err
		}

		count, _, decodeErr := decodeLiteral(token)

		if decodeErr != nil {
			return nil, &EncodingError{inst.Line, decodeErr}
		}

		return make([]uint16, blockSize(count)), nil

	case FORMAT_STRINGZ:
		token, err := operand(inst, 0)

		if err != nil {
			return nil, err
		}

		decoded, ok := DecodeString(token.Value)

		if !ok {
			return nil, &InvalidOperandError{
				inst.Line, OPERAND_STRING, token.Value,
			}
		}

		words := make([]uint16, 0, len(decoded)+1)

		for _, char := range decoded {
			if char > 0xFFFF {
				return nil, &OversizedCharacterError{inst.Line, char}
			}

			words = append(words, uint16(char))
		}

		return append(words, 0), nil

	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_ARITH:
		dest, err := registerOperand(inst, 0)

		if err != nil {
			return nil, err
		}

		src1, err := registerOperand(inst, 1)

		if err != nil {
			return nil, err
		}

		scratch |= dest<<9 | src1<<6

		token, err := operand(inst, 2)

		if err != nil {
			return nil, err
		}

		if token.Type == TOKEN_LITERAL {
			imm5, err := literalOperand(inst, 2, LITERAL_IMM5, true)

			if err != nil {
				return nil, err
			}

			scratch |= 1<<5 | imm5
		} else {
			src2, err := registerOperand(inst, 2)

			if err != nil {
				return nil, err
			}

			scratch |= src2
		}

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_NOT:
		dest, err := registerOperand(inst, 0)

		if err != nil {
			return nil, err
		}

		src, err := registerOperand(inst, 1)

		if err != nil {
			return nil, err
		}

		scratch |= dest<<9 | src<<6 | 0x3F

	// LD   |0010    |DR   |PCoffset9         | Load
	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ST   |0011    |SR   |PCoffset9         | Store
	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_PCOFFSET9:
		reg, err := registerOperand(inst, 0)

		if err != nil {
			return nil, err
		}

		offset, err := pcOffsetOperand(inst, 1, LITERAL_PCOFFSET9, symbols)

		if err != nil {
			return nil, err
		}

		scratch |= reg<<9 | offset

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_BASEOFFSET6:
		reg, err := registerOperand(inst, 0)

		if err != nil {
			return nil, err
		}

		base, err := registerOperand(inst, 1)

		if err != nil {
			return nil, err
		}

		offset, err := literalOperand(inst, 2, LITERAL_OFFSET6, true)

		if err != nil {
			return nil, err
		}

		scratch |= reg<<9 | base<<6 | offset

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_BRANCH:
		offset, err := pcOffsetOperand(inst, 0, LITERAL_PCOFFSET9, symbols)

		if err != nil {
			return nil, err
		}

		scratch |= offset

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_PCOFFSET11:
		offset, err := pcOffsetOperand(inst, 0, LITERAL_PCOFFSET11, symbols)

		if err != nil {
			return nil, err
		}

		scratch |= offset

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_BASE:
		base, err := registerOperand(inst, 0)

		if err != nil {
			return nil, err
		}

		scratch |= base << 6

	// TRAP |1111    |0000   |trapvect8       | System call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case FORMAT_TRAP:
		vector, err := literalOperand(inst, 0, LITERAL_TRAPVEC8, false)

		if err != nil {
			return nil, err
		}

		scratch |= vector

	// RET, RTI and the trap aliases are fully described by their opcode
	case FORMAT_FIXED:

	default:
		return nil, &UnknownIdentifierError{inst.Line, inst.Mnemonic.String()}
	}

	return []uint16{scratch}, nil
}
