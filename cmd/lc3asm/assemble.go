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
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/lassandro/lc3asm/pkg/assembler"
	"github.com/lassandro/lc3asm/pkg/objfile"
)

var outvar string
var formatvar string
var debugvar bool

func runAssemble(cmd *cobra.Command, args []string) error {
	format, err := objfile.ParseFormat(formatvar)

	if err != nil {
		return err
	}

	color := isTerminal(int(os.Stderr.Fd()))

	var input io.Reader
	var source string

	if len(args) == 0 {
		if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice != 0 {
			return fmt.Errorf("No input; usage: %s", cmd.UseLine())
		}

		input = os.Stdin
		setPrefix("<stdin>", color)

		if outvar == "" {
			outvar = "out" + format.Extension()
		}
	} else {
		file, err := os.Open(args[0])

		if err != nil {
			return err
		}

		defer file.Close()

		filename := filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			return err
		} else if stat.IsDir() {
			return fmt.Errorf("%s is not a valid LC3 assembly file", filename)
		}

		input = file
		setPrefix(filename, color)

		if source, err = filepath.Abs(file.Name()); err != nil {
			glog.Warningf("Resolving %s: %v", file.Name(), err)
			source = ""
		}

		if outvar == "" {
			outvar = strings.TrimSuffix(filename, filepath.Ext(filename)) +
				format.Extension()
		}
	}

	result, err := assembler.AssembleLC3Source(input)

	if err != nil {
		return err
	}

	for _, info := range result.Info {
		if color && strings.HasPrefix(info, "Line ") {
			log.Printf("\033[31m%s\033[0m", info)
		} else {
			log.Println(info)
		}
	}

	if !result.Success {
		return errAssemblyFailed
	}

	if err := writeObject(outvar, format, result.Words); err != nil {
		return fmt.Errorf("Error writing output file: %w", err)
	}

	glog.V(1).Infof("Wrote %d word(s) to %s", len(result.Words), outvar)

	if debugvar {
		filename := strings.TrimSuffix(outvar, filepath.Ext(outvar)) + ".sym"
		symbols := objfile.NewSymbolFile(source, result.Symbols)

		if err := writeSymbols(filename, symbols); err != nil {
			return fmt.Errorf("Error writing symbol file: %w", err)
		}
	}

	return nil
}

func setPrefix(name string, color bool) {
	if color {
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", name))
	} else {
		log.SetPrefix(name + ":")
	}
}

func writeObject(filename string, format objfile.Format, words []uint16) error {
	file, err := os.Create(filename)

	if err != nil {
		return err
	}

	if err := objfile.Write(file, format, words); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func writeSymbols(filename string, symbols *objfile.SymbolFile) error {
	file, err := os.Create(filename)

	if err != nil {
		return err
	}

	if err := objfile.WriteSymbols(file, symbols); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
