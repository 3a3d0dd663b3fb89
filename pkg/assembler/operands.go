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
	"unicode/utf8"

	"github.com/lassandro/lc3asm/pkg/encoding"
)

// Walks the operands of one instruction, reporting shortfalls and leftovers.
// A missing operand ends validation of the line, so a single line never
// reports both a missing and a redundant operand.
type operandReader struct {
	line     int
	operands []Token
	diags    *Diagnostics
}

func (reader *operandReader) next() (*Token, bool) {
	if len(reader.operands) == 0 {
		reader.diags.Add(&MissingOperandError{reader.line})
		return nil, false
	}

	token := &reader.operands[0]
	reader.operands = reader.operands[1:]

	return token, true
}

func (reader *operandReader) done() {
	if len(reader.operands) > 0 {
		reader.diags.Add(
			&RedundantOperandError{reader.line, reader.operands[0].Value},
		)
	}
}

// Decodes a literal token. The text is the decimal rendering used in
// diagnostics, or the literal itself when it overflows an int64.
func decodeLiteral(token *Token) (value int64, text string, err error) {
	value, err = encoding.DecodeNumber(token.Value)

	if err != nil {
		return value, token.Value, err
	}

	return value, strconv.FormatInt(value, 10), nil
}

func parseRegister(token *Token) (uint16, string, bool) {
	if token.Type != TOKEN_REGISTER {
		return 0, "", false
	}

	digits := strings.TrimLeft(token.Value[1:], "0")

	if digits == "" {
		digits = "0"
	}

	index, err := strconv.ParseUint(digits, 10, 16)

	if err != nil || index > 7 {
		return 0, digits, false
	}

	return uint16(index), digits, true
}

func (reader *operandReader) register(token *Token) bool {
	if token.Type != TOKEN_REGISTER {
		reader.diags.Add(
			&InvalidOperandError{reader.line, OPERAND_REGISTER, token.Value},
		)
		return false
	}

	if _, digits, ok := parseRegister(token); !ok {
		reader.diags.Add(&InvalidRegisterError{reader.line, digits})
		return false
	}

	return true
}

// Checks a 16 bit value, accepting both signed and unsigned interpretations
func (reader *operandReader) value(token *Token) (int64, bool) {
	if token.Type != TOKEN_LITERAL {
		reader.diags.Add(
			&InvalidOperandError{reader.line, OPERAND_VALUE, token.Value},
		)
		return 0, false
	}

	value, text, err := decodeLiteral(token)

	if err != nil || value < -(1<<15) || value > (1<<16)-1 {
		reader.diags.Add(
			&OversizedLiteralError{reader.line, text, LITERAL_WORD, false},
		)
		return 0, false
	}

	return value, true
}

func (reader *operandReader) address(token *Token) (int64, bool) {
	value, ok := reader.value(token)

	if ok && value < 0 {
		reader.diags.Add(&OversizedLiteralError{
			reader.line, strconv.FormatInt(value, 10), LITERAL_WORD, false,
		})
		return 0, false
	}

	return value, ok
}

func (reader *operandReader) signed(token *Token, size LiteralType) bool {
	value, text, err := decodeLiteral(token)

	if err == nil {
		_, err = encoding.EncodeBits(value, uint(size), true)
	}

	if err != nil {
		reader.diags.Add(&OversizedLiteralError{reader.line, text, size, true})
		return false
	}

	return true
}

func (reader *operandReader) label(token *Token) bool {
	if !validLabel(token.Value) {
		reader.diags.Add(&InvalidLabelError{reader.line, token.Value})
		return false
	}

	return true
}

func (reader *operandReader) registerOrImmediate(token *Token) bool {
	switch token.Type {
	case TOKEN_LITERAL:
		return reader.signed(token, LITERAL_IMM5)
	case TOKEN_REGISTER:
		return reader.register(token)
	}

	reader.diags.Add(&InvalidOperandError{
		reader.line, OPERAND_REGISTER_OR_IMM5, token.Value,
	})

	return false
}

func (reader *operandReader) offset6(token *Token) bool {
	if token.Type != TOKEN_LITERAL {
		reader.diags.Add(
			&InvalidOperandError{reader.line, OPERAND_OFFSET6, token.Value},
		)
		return false
	}

	return reader.signed(token, LITERAL_OFFSET6)
}

// Accepts either a PC offset literal that fits the field or a well formed
// label. Labels are resolved in pass 2.
func (reader *operandReader) labelOrOffset(token *Token, size LiteralType) bool {
	switch {
	case token.Type == TOKEN_LITERAL:
		return reader.signed(token, size)
	case isLabel(token):
		return reader.label(token)
	}

	required := OPERAND_LABEL_OR_PCOFFSET9

	if size == LITERAL_PCOFFSET11 {
		required = OPERAND_LABEL_OR_PCOFFSET11
	}

	reader.diags.Add(&InvalidOperandError{reader.line, required, token.Value})

	return false
}

func (reader *operandReader) trapVector(token *Token) bool {
	if token.Type != TOKEN_LITERAL {
		reader.diags.Add(
			&InvalidOperandError{reader.line, OPERAND_TRAPVEC8, token.Value},
		)
		return false
	}

	value, text, err := decodeLiteral(token)

	if err == nil {
		_, err = encoding.EncodeBits(value, uint(LITERAL_TRAPVEC8), false)
	}

	if err != nil {
		reader.diags.Add(&OversizedTrapVectorError{reader.line, text})
		return false
	}

	return true
}

func (reader *operandReader) stringz(token *Token) ([]rune, bool) {
	var decoded string
	var ok bool = false

	// Malformed UTF-8 would otherwise decode to U+FFFD
	if token.Type == TOKEN_STRING && utf8.ValidString(token.Value) {
		decoded, ok = DecodeString(token.Value)
	}

	if !ok {
		reader.diags.Add(
			&InvalidOperandError{reader.line, OPERAND_STRING, token.Value},
		)
		return nil, false
	}

	chars := []rune(decoded)

	for _, char := range chars {
		if char > 0xFFFF {
			reader.diags.Add(&OversizedCharacterError{reader.line, char})
			return nil, false
		}
	}

	return chars, true
}
