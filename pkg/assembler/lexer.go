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
	"regexp"
	"strings"
	"unicode"

	"github.com/lassandro/lc3asm/pkg/encoding"
)

var (
	labelPattern    = regexp.MustCompile(`^[a-zA-Z][0-9a-zA-Z]*$`)
	registerPattern = regexp.MustCompile(`^[Rr][0-9]+$`)
)

var escapes = map[rune]rune{
	'0': '\x00',
	'a': '\a',
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

func isDelimiter(char rune) bool {
	return char == ',' || unicode.IsSpace(char)
}

// Splits a line on whitespace and commas after dropping everything from the
// first ';' onwards. Quotes get no special treatment: a string holding a
// delimiter is split, and DecodeString rejects the pieces.
func splitLine(line string) []string {
	if index := strings.IndexByte(line, ';'); index >= 0 {
		line = line[:index]
	}

	tokens := strings.FieldsFunc(line, isDelimiter)

	if len(tokens) == 0 {
		return nil
	}

	return tokens
}

func classifyToken(value string) TokenType {
	switch {
	case value == "":
		return TOKEN_NONE
	case ParseMnemonic(value) != MNEMONIC_INVALID:
		return TOKEN_KEYWORD
	case registerPattern.MatchString(value):
		return TOKEN_REGISTER
	case encoding.IsNumber(value):
		return TOKEN_LITERAL
	case value[0] == '"':
		return TOKEN_STRING
	}

	return TOKEN_IDENT
}

// Anything that is not a keyword, register or number is treated as a label,
// well formed or not.
func isLabel(token *Token) bool {
	return token.Type == TOKEN_IDENT || token.Type == TOKEN_STRING
}

func validLabel(name string) bool {
	return labelPattern.MatchString(name)
}

// Parses a single line of source. The second result is false when the line
// holds nothing but whitespace and comments.
func ParseLine(text string, line int) (ParsedLine, bool) {
	values := splitLine(text)

	if len(values) == 0 {
		return ParsedLine{}, false
	}

	tokens := make([]Token, len(values))

	for i, value := range values {
		tokens[i] = Token{Type: classifyToken(value), Value: value}
	}

	parsed := ParsedLine{Line: line}

	if isLabel(&tokens[0]) {
		parsed.Label = &tokens[0]
		tokens = tokens[1:]
	}

	if len(tokens) > 0 {
		parsed.Mnemonic = &tokens[0]
		parsed.Operands = tokens[1:]
	}

	return parsed, true
}

// Decodes a double quoted string literal, resolving backslash escapes. The
// second result is false when the literal is not properly delimited or holds
// an unescaped '"'.
func DecodeString(value string) (string, bool) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", false
	}

	var builder strings.Builder
	var escape bool = false

	for _, char := range value[1 : len(value)-1] {
		switch {
		case escape:
			escape = false

			if mapped, exists := escapes[char]; exists {
				builder.WriteRune(mapped)
			} else {
				builder.WriteRune(char)
			}

		case char == '\\':
			escape = true

		case char == '"':
			return "", false

		default:
			builder.WriteRune(char)
		}
	}

	// The closing quote was escaped
	if escape {
		return "", false
	}

	return builder.String(), true
}
