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
)

// State threaded through the first pass. The location counter stays at
// counterUndefined until a valid .ORIG is seen and is clamped to memoryLimit
// once the program runs past the end of memory.
type pass1State struct {
	counter    int32
	symbols    *SymbolTable
	pending    []PendingInstruction
	diags      Diagnostics
	seenOrig   bool
	missedOrig bool
	overflowed bool
}

// Builds the symbol table and places every instruction, collecting all
// diagnostics that can be found without resolving labels.
func pass1(lines []string) (*SymbolTable, []PendingInstruction, []error) {
	state := pass1State{
		counter: counterUndefined,
		symbols: NewSymbolTable(),
	}

	for index, text := range lines {
		parsed, ok := ParseLine(text, index+1)

		if !ok {
			continue
		}

		if end := state.processLine(&parsed); end {
			glog.V(1).Infof("Pass 1 reached .END on line %d", parsed.Line)
			return state.symbols, state.pending, state.diags.Errors()
		}
	}

	state.diags.Add(&MissingEndError{len(lines)})

	return state.symbols, state.pending, state.diags.Errors()
}

func (state *pass1State) processLine(parsed *ParsedLine) bool {
	leader := parsed.Mnemonic

	if parsed.Label != nil {
		leader = parsed.Label
	}

	if state.counter == counterUndefined && !state.seenOrig && !state.missedOrig {
		if ParseMnemonic(leader.Value) != DIRECTIVE_ORIG {
			state.diags.Add(&MissingOrigError{parsed.Line, leader.Value})
			state.missedOrig = true
		}
	}

	if parsed.Label != nil {
		state.defineLabel(parsed.Label, parsed.Line)
	}

	if parsed.Mnemonic == nil {
		state.diags.Add(
			&MissingMnemonicError{parsed.Line, parsed.Label.Value},
		)
		return false
	}

	mnemonic := ParseMnemonic(parsed.Mnemonic.Value)

	switch mnemonic {
	case MNEMONIC_INVALID:
		state.diags.Add(
			&UnknownIdentifierError{parsed.Line, parsed.Mnemonic.Value},
		)
		return false

	case DIRECTIVE_END:
		return true
	}

	state.pending = append(state.pending, PendingInstruction{
		Line:     parsed.Line,
		Address:  state.counter,
		Mnemonic: mnemonic,
		Operands: parsed.Operands,
	})

	state.validate(&state.pending[len(state.pending)-1])

	return false
}

func (state *pass1State) defineLabel(label *Token, line int) {
	if !validLabel(label.Value) {
		state.diags.Add(&InvalidLabelError{line, label.Value})
		return
	}

	if existing, exists := state.symbols.Lookup(label.Value); exists {
		state.diags.Add(
			&RedeclaredLabelError{line, label.Value, existing.Line},
		)
		return
	}

	if state.counter >= memoryLimit {
		state.overflow(line)
		return
	}

	var address uint16 = 0

	if state.counter != counterUndefined {
		address = uint16(state.counter)
	}

	state.symbols.Define(label.Value, Symbol{address, line})

	glog.V(2).Infof("Label %s bound to %#04x on line %d", label.Value, address, line)
}

func (state *pass1State) overflow(line int) {
	if !state.overflowed {
		state.diags.Add(&OversizedBinaryError{line})
		state.overflowed = true
	}
}

// Moves the location counter past size words placed on line
func (state *pass1State) advance(size int64, line int) {
	next := int64(state.counter) + size

	if next > int64(memoryLimit) {
		state.overflow(line)
		next = int64(memoryLimit)
	}

	state.counter = int32(next)
}

func (state *pass1State) validate(inst *PendingInstruction) {
	reader := operandReader{
		line:     inst.Line,
		operands: inst.Operands,
		diags:    &state.diags,
	}

	switch inst.Mnemonic.Format() {
	// .ORIG address
	case FORMAT_ORIG:
		if state.seenOrig {
			state.diags.Add(&DuplicateOrigError{inst.Line})
		}

		state.seenOrig = true

		token, ok := reader.next()

		if !ok {
			return
		}

		if address, ok := reader.address(token); ok {
			state.counter = int32(address)
		}

		reader.done()

	// .FILL LABEL|value
	case FORMAT_FILL:
		state.advance(1, inst.Line)

		token, ok := reader.next()

		if !ok {
			return
		}

		if isLabel(token) {
			reader.label(token)
		} else {
			reader.value(token)
		}

		reader.done()

	// .BLKW count
	case FORMAT_BLKW:
		token, ok := reader.next()

		if !ok {
			return
		}

		if count, ok := reader.value(token); ok {
			state.advance(blockSize(count), inst.Line)
		}

		reader.done()

	// .STRINGZ "string"
	case FORMAT_STRINGZ:
		token, ok := reader.next()

		if !ok {
			return
		}

		if chars, ok := reader.stringz(token); ok {
			state.advance(int64(len(chars))+1, inst.Line)
		}

		reader.done()

	default:
		state.advance(1, inst.Line)
		validateInstruction(&reader, inst.Mnemonic)
	}
}

// Negative block sizes wrap around the 16 bit address space
func blockSize(count int64) int64 {
	if count < 0 {
		return count + (1 << 16)
	}

	return count
}

func validateInstruction(reader *operandReader, mnemonic Mnemonic) {
	switch mnemonic.Format() {
	// ADD DR, SR1, SR2|imm5
	// AND DR, SR1, SR2|imm5
	case FORMAT_ARITH:
		for i := 0; i < 2; i++ {
			token, ok := reader.next()

			if !ok {
				return
			}

			reader.register(token)
		}

		token, ok := reader.next()

		if !ok {
			return
		}

		reader.registerOrImmediate(token)

	// NOT DR, SR
	case FORMAT_NOT:
		for i := 0; i < 2; i++ {
			token, ok := reader.next()

			if !ok {
				return
			}

			reader.register(token)
		}

	// LD DR, LABEL|PCoffset9 (LDI, LEA, ST, STI)
	case FORMAT_PCOFFSET9:
		token, ok := reader.next()

		if !ok {
			return
		}

		reader.register(token)

		if token, ok = reader.next(); !ok {
			return
		}

		reader.labelOrOffset(token, LITERAL_PCOFFSET9)

	// LDR DR, BaseR, offset6 (STR)
	case FORMAT_BASEOFFSET6:
		for i := 0; i < 2; i++ {
			token, ok := reader.next()

			if !ok {
				return
			}

			reader.register(token)
		}

		token, ok := reader.next()

		if !ok {
			return
		}

		reader.offset6(token)

	// BR LABEL|PCoffset9
	case FORMAT_BRANCH:
		token, ok := reader.next()

		if !ok {
			return
		}

		reader.labelOrOffset(token, LITERAL_PCOFFSET9)

	// JSR LABEL|PCoffset11
	case FORMAT_PCOFFSET11:
		token, ok := reader.next()

		if !ok {
			return
		}

		reader.labelOrOffset(token, LITERAL_PCOFFSET11)

	// JMP BaseR (JSRR)
	case FORMAT_BASE:
		token, ok := reader.next()

		if !ok {
			return
		}

		reader.register(token)

	// TRAP trapvect8
	case FORMAT_TRAP:
		token, ok := reader.next()

		if !ok {
			return
		}

		reader.trapVector(token)
	}

	reader.done()
}
