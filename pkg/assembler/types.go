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
	"fmt"

	"github.com/lassandro/lc3asm/pkg/encoding"
)

type LiteralType uint
type TokenType uint
type OperandType uint
type Mnemonic uint
type Format uint

type Token struct {
	Type  TokenType
	Value string
}

// A single source line split into its label, mnemonic and operands. Mnemonic
// is nil when a label stands alone on the line.
type ParsedLine struct {
	Line     int
	Label    *Token
	Mnemonic *Token
	Operands []Token
}

type Symbol struct {
	Address uint16
	Line    int
}

// Label bindings in definition order. A name is bound once; later
// definitions are rejected and leave the first binding in place.
type SymbolTable struct {
	symbols map[string]Symbol
	names   []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// Binds name unless it is already bound, in which case the existing binding
// is returned along with false.
func (table *SymbolTable) Define(name string, symbol Symbol) (Symbol, bool) {
	if existing, exists := table.symbols[name]; exists {
		return existing, false
	}

	table.symbols[name] = symbol
	table.names = append(table.names, name)

	return symbol, true
}

func (table *SymbolTable) Lookup(name string) (Symbol, bool) {
	symbol, exists := table.symbols[name]
	return symbol, exists
}

func (table *SymbolTable) Names() []string {
	return append([]string(nil), table.names...)
}

func (table *SymbolTable) Len() int {
	return len(table.names)
}

// An instruction or directive placed by pass 1, waiting for pass 2 to
// resolve its operands.
type PendingInstruction struct {
	Line     int
	Address  int32
	Mnemonic Mnemonic
	Operands []Token
}

type LineError interface {
	error
	GetLine() int
}

// Append-only, ordered collection of line-tagged errors
type Diagnostics struct {
	errs []error
}

func (diags *Diagnostics) Add(err LineError) {
	diags.errs = append(diags.errs, err)
}

func (diags *Diagnostics) Len() int {
	return len(diags.errs)
}

func (diags *Diagnostics) Errors() []error {
	return diags.errs
}

type Result struct {
	Success bool
	Info    []string
	Errors  []error
	Words   []uint16
	Symbols *SymbolTable
}

// Renders each output word as a string of 16 '0'/'1' characters
func (result *Result) Binary() []string {
	lines := make([]string, 0, len(result.Words))

	for _, word := range result.Words {
		lines = append(lines, encoding.FormatWord(word))
	}

	return lines
}

func (kind OperandType) String() string {
	switch kind {
	case OPERAND_VALUE:
		return "16 bit value"
	case OPERAND_REGISTER:
		return "register operand"
	case OPERAND_REGISTER_OR_IMM5:
		return "register or immediate value"
	case OPERAND_OFFSET6:
		return "6 bit signed number"
	case OPERAND_LABEL_OR_PCOFFSET9:
		return "label or 9 bit signed PC offset"
	case OPERAND_LABEL_OR_PCOFFSET11:
		return "label or 11 bit signed PC offset"
	case OPERAND_TRAPVEC8:
		return "8 bit non-negative trap vector"
	case OPERAND_STRING:
		return "string constant"
	}

	return "<invalid>"
}

type InvalidLabelError struct {
	Line     int
	Received string
}

func (err *InvalidLabelError) GetLine() int {
	return err.Line
}

func (err *InvalidLabelError) Error() string {
	return fmt.Sprintf("Line %d:Invalid label '%s'", err.Line, err.Received)
}

type RedeclaredLabelError struct {
	Line     int
	Received string
	Original int
}

func (err *RedeclaredLabelError) GetLine() int {
	return err.Line
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"Line %d:Duplicate label '%s' with label on line %d",
		err.Line,
		err.Received,
		err.Original,
	)
}

type MissingOrigError struct {
	Line     int
	Received string
}

func (err *MissingOrigError) GetLine() int {
	return err.Line
}

func (err *MissingOrigError) Error() string {
	return fmt.Sprintf(
		"Line %d:Expected .ORIG, but found '%s' instead",
		err.Line,
		err.Received,
	)
}

type DuplicateOrigError struct {
	Line int
}

func (err *DuplicateOrigError) GetLine() int {
	return err.Line
}

func (err *DuplicateOrigError) Error() string {
	return fmt.Sprintf("Line %d:Duplicate pseudo_op '.ORIG'", err.Line)
}

type MissingEndError struct {
	Line int
}

func (err *MissingEndError) GetLine() int {
	return err.Line
}

func (err *MissingEndError) Error() string {
	return fmt.Sprintf("Line %d:Expected '.END' at end of file", err.Line)
}

type OversizedBinaryError struct {
	Line int
}

func (err *OversizedBinaryError) GetLine() int {
	return err.Line
}

func (err *OversizedBinaryError) Error() string {
	return fmt.Sprintf(
		"Line %d:Instruction uses memory beyond memory location xFFFF",
		err.Line,
	)
}

type MissingMnemonicError struct {
	Line  int
	Label string
}

func (err *MissingMnemonicError) GetLine() int {
	return err.Line
}

func (err *MissingMnemonicError) Error() string {
	return fmt.Sprintf(
		"Line %d:Expected opcode or pseudo_op after '%s', but found nothing",
		err.Line,
		err.Label,
	)
}

type UnknownIdentifierError struct {
	Line     int
	Received string
}

func (err *UnknownIdentifierError) GetLine() int {
	return err.Line
}

func (err *UnknownIdentifierError) Error() string {
	return fmt.Sprintf(
		"Line %d:Unrecognized opcode or pseudo_op at '%s'",
		err.Line,
		err.Received,
	)
}

type RedundantOperandError struct {
	Line     int
	Received string
}

func (err *RedundantOperandError) GetLine() int {
	return err.Line
}

func (err *RedundantOperandError) Error() string {
	return fmt.Sprintf("Line %d:'%s...' is redundant", err.Line, err.Received)
}

type MissingOperandError struct {
	Line int
}

func (err *MissingOperandError) GetLine() int {
	return err.Line
}

func (err *MissingOperandError) Error() string {
	return fmt.Sprintf("Line %d:Expected more operand(s)", err.Line)
}

type InvalidOperandError struct {
	Line     int
	Required OperandType
	Received string
}

func (err *InvalidOperandError) GetLine() int {
	return err.Line
}

func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf(
		"Line %d:Expected %s, but found '%s' instead",
		err.Line,
		err.Required,
		err.Received,
	)
}

type InvalidRegisterError struct {
	Line     int
	Received string
}

func (err *InvalidRegisterError) GetLine() int {
	return err.Line
}

func (err *InvalidRegisterError) Error() string {
	return fmt.Sprintf(
		"Line %d:Register %s does not exist", err.Line, err.Received,
	)
}

type OversizedLiteralError struct {
	Line     int
	Received string
	Size     LiteralType
	Signed   bool
}

func (err *OversizedLiteralError) GetLine() int {
	return err.Line
}

func (err *OversizedLiteralError) Error() string {
	kind := "an unsigned"

	if err.Signed {
		kind = "a signed"
	}

	return fmt.Sprintf(
		"Line %d:%s can not be represented as %s number in %d bits",
		err.Line,
		err.Received,
		kind,
		err.Size,
	)
}

type OversizedTrapVectorError struct {
	Line     int
	Received string
}

func (err *OversizedTrapVectorError) GetLine() int {
	return err.Line
}

func (err *OversizedTrapVectorError) Error() string {
	return fmt.Sprintf(
		"Line %d:%s can not be represented as an 8 bit trap vector",
		err.Line,
		err.Received,
	)
}

type OversizedCharacterError struct {
	Line     int
	Received rune
}

func (err *OversizedCharacterError) GetLine() int {
	return err.Line
}

func (err *OversizedCharacterError) Error() string {
	return fmt.Sprintf(
		"Line %d:Character '%c' can not be represented in 16 bits",
		err.Line,
		err.Received,
	)
}

type UnknownLabelError struct {
	Line     int
	Received string
}

func (err *UnknownLabelError) GetLine() int {
	return err.Line
}

func (err *UnknownLabelError) Error() string {
	return fmt.Sprintf(
		"Line %d:Instruction references undefined label '%s'",
		err.Line,
		err.Received,
	)
}

type OversizedLabelError struct {
	Line     int
	Received string
	Size     LiteralType
}

func (err *OversizedLabelError) GetLine() int {
	return err.Line
}

func (err *OversizedLabelError) Error() string {
	return fmt.Sprintf(
		"Line %d:Instruction references label '%s' that cannot be "+
			"represented in a %d bit signed PC offset",
		err.Line,
		err.Received,
		err.Size,
	)
}

// Wraps a failure to encode an operand that pass 1 had already accepted
type EncodingError struct {
	Line int
	Err  error
}

func (err *EncodingError) GetLine() int {
	return err.Line
}

func (err *EncodingError) Error() string {
	return fmt.Sprintf("Line %d:%v", err.Line, err.Err)
}

func (err *EncodingError) Unwrap() error {
	return err.Err
}
