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

// Package assembler translates LC-3 assembly into 16 bit machine words.
//
// Assembly runs in two passes. Pass 1 walks the source, assigns an address
// to every instruction, binds labels and checks everything that does not
// depend on a label's value. Pass 2 only runs when pass 1 found no errors;
// it resolves label operands and encodes the instructions. Every problem is
// reported as a line-tagged error and the scan always carries on to the end.
package assembler

import (
	"bufio"
	"fmt"
	"io"

	"github.com/golang/glog"
)

// Assembles a program given as one string per source line. The first output
// word is the origin from .ORIG, followed by the program image.
func Assemble(lines []string) *Result {
	result := &Result{
		Info:   []string{"Assembling...", "Starting Pass 1..."},
		Words:  []uint16{},
		Errors: []error{},
	}

	glog.V(1).Infof("Pass 1 over %d line(s)", len(lines))

	symbols, pending, errs := pass1(lines)
	result.Symbols = symbols
	result.record(errs)
	result.Info = append(
		result.Info, fmt.Sprintf("Pass 1 - %d error(s)", len(errs)),
	)

	if len(errs) > 0 {
		return result
	}

	result.Info = append(result.Info, "Starting Pass 2...")

	glog.V(1).Infof(
		"Pass 2 over %d instruction(s), %d label(s)",
		len(pending),
		symbols.Len(),
	)

	words, errs := pass2(pending, symbols)
	result.Words = words
	result.record(errs)
	result.Info = append(
		result.Info, fmt.Sprintf("Pass 2 - %d error(s)", len(errs)),
	)

	result.Success = len(errs) == 0

	return result
}

// Reads every line from input and assembles them. The error is only set
// when input cannot be read; assembly problems are reported in the result.
func AssembleLC3Source(input io.Reader) (*Result, error) {
	var lines []string
	var scanner = bufio.NewScanner(input)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return Assemble(lines), nil
}

func (result *Result) record(errs []error) {
	for _, err := range errs {
		result.Errors = append(result.Errors, err)
		result.Info = append(result.Info, err.Error())
	}
}
