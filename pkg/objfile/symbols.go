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

package objfile

import (
	"encoding/gob"
	"io"

	"github.com/lassandro/lc3asm/pkg/assembler"
)

// Debugging information written next to an object file
type SymbolFile struct {
	// Absolute path of the assembled source, empty for stdin
	Source string

	// First label bound at each address
	Labels map[uint16]string

	// Source line each label was declared on
	Lines map[string]int
}

func NewSymbolFile(source string, symbols *assembler.SymbolTable) *SymbolFile {
	file := &SymbolFile{
		Source: source,
		Labels: make(map[uint16]string),
		Lines:  make(map[string]int),
	}

	if symbols == nil {
		return file
	}

	for _, name := range symbols.Names() {
		symbol, _ := symbols.Lookup(name)

		if _, exists := file.Labels[symbol.Address]; !exists {
			file.Labels[symbol.Address] = name
		}

		file.Lines[name] = symbol.Line
	}

	return file
}

func WriteSymbols(writer io.Writer, file *SymbolFile) error {
	return gob.NewEncoder(writer).Encode(file)
}

func ReadSymbols(reader io.Reader) (*SymbolFile, error) {
	var file SymbolFile

	if err := gob.NewDecoder(reader).Decode(&file); err != nil {
		return nil, err
	}

	if file.Labels == nil {
		file.Labels = make(map[uint16]string)
	}

	if file.Lines == nil {
		file.Lines = make(map[string]int)
	}

	return &file, nil
}
