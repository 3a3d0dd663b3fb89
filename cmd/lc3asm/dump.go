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

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lassandro/lc3asm/pkg/disasm"
	"github.com/lassandro/lc3asm/pkg/objfile"
)

var dumpSymbols string
var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] object",
	Short: "Disassemble an object file",
	Long: `Dump prints a listing of an assembled object file: address, raw word,
label and decoded instruction for every word after the origin.

The object format is taken from the file extension (.obj is binary, anything
else text) unless --format is given. Labels are read from --symbols, or from a
.sym file next to the object when one exists.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(
		&dumpSymbols, "symbols", "s", "", "Symbol file written by --debug",
	)
	dumpCmd.Flags().StringVarP(
		&dumpFormat, "format", "f", "", "Object file format, 'text' or 'binary'",
	)
}

func runDump(cmd *cobra.Command, args []string) error {
	filename := args[0]
	format := objfile.FormatOf(filename)

	if dumpFormat != "" {
		var err error

		if format, err = objfile.ParseFormat(dumpFormat); err != nil {
			return err
		}
	}

	file, err := os.Open(filename)

	if err != nil {
		return err
	}

	defer file.Close()

	words, err := objfile.Read(file, format)

	if err != nil {
		return fmt.Errorf("Reading %s: %w", filename, err)
	}

	labels, err := loadLabels(filename)

	if err != nil {
		return err
	}

	for _, line := range disasm.Listing(words, labels) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	return nil
}

func loadLabels(object string) (map[uint16]string, error) {
	filename := dumpSymbols
	explicit := filename != ""

	if !explicit {
		filename = strings.TrimSuffix(object, filepath.Ext(object)) + ".sym"
	}

	file, err := os.Open(filename)

	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	defer file.Close()

	symbols, err := objfile.ReadSymbols(file)

	if err != nil {
		return nil, fmt.Errorf("Reading %s: %w", filename, err)
	}

	return symbols.Labels, nil
}
