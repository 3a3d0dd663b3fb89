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

// Package session implements an interactive LC-3 assembly workspace.
//
// A session holds an editable source buffer and the result of the last
// assembly. It is driven by line commands read from any io.Reader, so the
// same code serves a terminal prompt and a scripted run.
package session

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/cmd"
	"github.com/golang/glog"

	"github.com/lassandro/lc3asm/pkg/assembler"
)

// Commands an empty interactive line may repeat. Commands that edit the
// buffer or touch files are never repeated.
var repeatable = map[string]bool{
	"help":        true,
	"list":        true,
	"output":      true,
	"disassemble": true,
	"symbols":     true,
	"inspect":     true,
	"isa":         true,
}

type Session struct {
	filename string
	source   []string
	modified bool
	result   *assembler.Result

	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	line        string
	lastCmd     *selection
}

func New() *Session {
	return &Session{}
}

// Replaces the source buffer with the contents of filename
func (s *Session) Load(filename string) error {
	file, err := os.Open(filename)

	if err != nil {
		return err
	}

	defer file.Close()

	var lines []string
	var scanner = bufio.NewScanner(file)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	s.filename = filename
	s.source = lines
	s.modified = false
	s.result = nil

	glog.V(1).Infof("Loaded %d line(s) from %s", len(lines), filename)

	return nil
}

func (s *Session) Source() []string {
	return s.source
}

// Result of the last assemble command, nil before the first one
func (s *Session) Result() *assembler.Result {
	return s.result
}

// Reads commands from r and writes their output to w until the input ends
// or a quit command is entered. When interactive is set a prompt is shown
// and an empty line repeats the previous command if it only displays state.
func (s *Session) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	s.input = bufio.NewScanner(r)
	s.output = bufio.NewWriter(w)
	s.interactive = interactive

	for {
		s.prompt()

		line, err := s.getLine()

		if err != nil {
			break
		}

		var c selection

		if strings.TrimSpace(line) != "" {
			c.Command, c.Args, err = cmds.LookupCommand(line)
			s.line = line

			switch {
			case err == cmd.ErrNotFound:
				s.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				s.println("Command is ambiguous.")
				continue
			case err != nil:
				s.printf("ERROR: %v.\n", err)
				continue
			}
		} else if s.interactive && s.lastCmd != nil {
			c = *s.lastCmd
		}

		if c.Command == nil {
			continue
		}

		if repeatable[c.Command.Name] {
			s.lastCmd = &c
		} else {
			s.lastCmd = nil
		}

		run := c.Command.Data.(handler)

		if err := run(s, c); err != nil {
			break
		}
	}

	s.flush()
}

func (s *Session) prompt() {
	if s.interactive {
		name := "untitled"

		if s.filename != "" {
			name = s.filename
		}

		if s.modified {
			name += "*"
		}

		s.printf("%s> ", name)
	}
}

func (s *Session) getLine() (string, error) {
	if s.input.Scan() {
		return s.input.Text(), nil
	}

	if s.input.Err() != nil {
		return "", s.input.Err()
	}

	return "", io.EOF
}

// Returns the command line with its first n fields removed, keeping the
// spacing of whatever follows
func (s *Session) rest(n int) string {
	text := s.line

	for i := 0; i < n; i++ {
		text = strings.TrimLeft(text, " \t")
		end := strings.IndexAny(text, " \t")

		if end < 0 {
			return ""
		}

		text = text[end:]
	}

	return strings.TrimLeft(text, " \t")
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.output, format, args...)
	s.flush()
}

func (s *Session) println(args ...interface{}) {
	fmt.Fprintln(s.output, args...)
	s.flush()
}

func (s *Session) flush() {
	s.output.Flush()
}
