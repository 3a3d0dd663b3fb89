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

package session

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/k0kubun/pp/v3"

	"github.com/lassandro/lc3asm/pkg/assembler"
	"github.com/lassandro/lc3asm/pkg/disasm"
	"github.com/lassandro/lc3asm/pkg/objfile"
)

var cmds *cmd.Tree

// A command matched on an input line, along with its arguments
type selection struct {
	Command *cmd.Command
	Args    []string
}

type handler = func(*Session, selection) error

func init() {
	// Each command stores the session method that handles it.
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "lc3asm"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Session).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "new",
		Brief: "Start an empty source buffer",
		Description: "Discard the source buffer and the last assembly" +
			" result. Unsaved edits are kept unless ! is given.",
		Usage: "new [!]",
		Data:  (*Session).cmdNew,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "open",
		Brief: "Load a source file",
		Description: "Replace the source buffer with the contents of a" +
			" file. Later save commands write back to this file." +
			" Unsaved edits are kept unless ! is given.",
		Usage: "open <filename> [!]",
		Data:  (*Session).cmdOpen,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "save",
		Brief: "Save the source buffer",
		Description: "Write the source buffer to a file. Without a" +
			" filename the buffer is written back to the file it was" +
			" opened from.",
		Usage: "save [<filename>]",
		Data:  (*Session).cmdSave,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "list",
		Brief: "List source lines",
		Description: "Display the source buffer with line numbers," +
			" optionally starting at a line and limited to a count.",
		Usage: "list [<line> [<count>]]",
		Data:  (*Session).cmdList,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "append",
		Brief:       "Append a source line",
		Description: "Add a line of assembly to the end of the source buffer.",
		Usage:       "append <text>",
		Data:        (*Session).cmdAppend,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "insert",
		Brief: "Insert a source line",
		Description: "Insert a line of assembly before the given line" +
			" number. Inserting after the last line appends.",
		Usage: "insert <line> <text>",
		Data:  (*Session).cmdInsert,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "delete",
		Brief:       "Delete source lines",
		Description: "Remove one or more lines starting at the given line number.",
		Usage:       "delete <line> [<count>]",
		Data:        (*Session).cmdDelete,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "assemble",
		Brief: "Assemble the source buffer",
		Description: "Run both assembler passes over the source buffer" +
			" and display the assembler's messages.",
		Usage: "assemble",
		Data:  (*Session).cmdAssemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "output",
		Brief: "Display the assembled words",
		Description: "Display the output of the last successful assembly," +
			" one 16 digit binary word per line, origin first.",
		Usage: "output",
		Data:  (*Session).cmdOutput,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble the assembled words",
		Description: "Display a listing of the last successful assembly" +
			" with addresses, raw words and decoded instructions.",
		Usage: "disassemble",
		Data:  (*Session).cmdDisassemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "write",
		Brief: "Write an object file",
		Description: "Write the output of the last successful assembly" +
			" to a file. The format is text or binary and defaults to the" +
			" one matching the file's extension.",
		Usage: "write <filename> [text|binary]",
		Data:  (*Session).cmdWrite,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "symbols",
		Brief:       "List the symbol table",
		Description: "Display every label bound by the last assembly.",
		Usage:       "symbols",
		Data:        (*Session).cmdSymbols,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "inspect",
		Brief: "Dump the last assembly result",
		Description: "Pretty print the complete result of the last" +
			" assembly, or only its debugging symbols.",
		Usage: "inspect [result|symbols]",
		Data:  (*Session).cmdInspect,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "isa",
		Brief: "Instruction set reference",
		Description: "Display the syntax and bit layout of an" +
			" instruction or directive. Any unique prefix of a mnemonic" +
			" may be given.",
		Usage: "isa [<mnemonic>]",
		Data:  (*Session).cmdIsa,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "quit",
		Brief: "Quit the program",
		Description: "Leave the session. Unsaved edits are kept unless" +
			" ! is given.",
		Usage: "quit [!]",
		Data:  (*Session).cmdQuit,
	})

	// Shortcuts
	root.AddShortcut("?", "help")
	root.AddShortcut("a", "append")
	root.AddShortcut("asm", "assemble")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("i", "insert")
	root.AddShortcut("l", "list")
	root.AddShortcut("q", "quit")

	cmds = root
}

func (s *Session) cmdHelp(c selection) error {
	switch {
	case len(c.Args) == 0:
		s.displayCommands(cmds)
	default:
		command, _, err := cmds.LookupCommand(strings.Join(c.Args, " "))

		if err != nil {
			s.printf("%v\n", err)
			return nil
		}

		if command.Usage != "" {
			s.printf("Syntax: %s\n\n", command.Usage)
		}

		switch {
		case command.Description != "":
			s.printf("Description:\n   %s\n\n", command.Description)
		case command.Brief != "":
			s.printf("Description:\n   %s.\n\n", command.Brief)
		}

		if shortcuts := command.Shortcuts(); len(shortcuts) > 0 {
			s.printf("Shortcuts: %s\n\n", strings.Join(shortcuts, ", "))
		}
	}

	return nil
}

func (s *Session) cmdNew(c selection) error {
	if _, force := forced(c.Args); !s.discardable(force) {
		return nil
	}

	s.filename = ""
	s.source = nil
	s.modified = false
	s.result = nil

	s.println("Started an empty source buffer.")

	return nil
}

func (s *Session) cmdOpen(c selection) error {
	args, force := forced(c.Args)

	if len(args) < 1 {
		s.displayHelpText(c.Command)
		return nil
	}

	if !s.discardable(force) {
		return nil
	}

	filename := strings.TrimSpace(s.rest(1))

	if force {
		filename = strings.TrimSpace(strings.TrimSuffix(filename, "!"))
	}

	if err := s.Load(filename); err != nil {
		s.printf("%v\n", err)
		return nil
	}

	s.printf("Loaded %d line(s) from %s.\n", len(s.source), filename)

	return nil
}

func (s *Session) cmdSave(c selection) error {
	filename := s.filename

	if len(c.Args) > 0 {
		filename = s.rest(1)
	}

	if filename == "" {
		s.displayHelpText(c.Command)
		return nil
	}

	var builder strings.Builder

	for _, line := range s.source {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if err := os.WriteFile(filename, []byte(builder.String()), 0666); err != nil {
		s.printf("%v\n", err)
		return nil
	}

	s.filename = filename
	s.modified = false

	s.printf("Saved %d line(s) to %s.\n", len(s.source), filename)

	return nil
}

func (s *Session) cmdList(c selection) error {
	if len(s.source) == 0 {
		s.println("Source buffer is empty.")
		return nil
	}

	start, count := 1, len(s.source)

	if len(c.Args) > 0 {
		var err error

		if start, err = s.parseLineNumber(c.Args[0], len(s.source)); err != nil {
			s.printf("%v\n", err)
			return nil
		}
	}

	if len(c.Args) > 1 {
		var err error

		if count, err = parseCount(c.Args[1]); err != nil {
			s.printf("%v\n", err)
			return nil
		}
	}

	end := min(start-1+count, len(s.source))

	for i := start - 1; i < end; i++ {
		s.printf("%4d  %s\n", i+1, s.source[i])
	}

	return nil
}

func (s *Session) cmdAppend(c selection) error {
	text := s.rest(1)

	s.source = append(s.source, text)
	s.modified = true

	s.printf("%4d  %s\n", len(s.source), text)

	return nil
}

func (s *Session) cmdInsert(c selection) error {
	if len(c.Args) < 1 {
		s.displayHelpText(c.Command)
		return nil
	}

	line, err := s.parseLineNumber(c.Args[0], len(s.source)+1)

	if err != nil {
		s.printf("%v\n", err)
		return nil
	}

	text := s.rest(2)

	s.source = append(s.source, "")
	copy(s.source[line:], s.source[line-1:])
	s.source[line-1] = text
	s.modified = true

	s.printf("%4d  %s\n", line, text)

	return nil
}

func (s *Session) cmdDelete(c selection) error {
	if len(c.Args) < 1 {
		s.displayHelpText(c.Command)
		return nil
	}

	line, err := s.parseLineNumber(c.Args[0], len(s.source))

	if err != nil {
		s.printf("%v\n", err)
		return nil
	}

	count := 1

	if len(c.Args) > 1 {
		if count, err = parseCount(c.Args[1]); err != nil {
			s.printf("%v\n", err)
			return nil
		}
	}

	end := min(line-1+count, len(s.source))

	s.source = append(s.source[:line-1], s.source[end:]...)
	s.modified = true

	s.printf("Deleted %d line(s).\n", end-(line-1))

	return nil
}

func (s *Session) cmdAssemble(c selection) error {
	s.result = assembler.Assemble(s.source)

	for _, info := range s.result.Info {
		s.println(info)
	}

	if s.result.Success {
		s.printf("Assembled %d word(s).\n", len(s.result.Words))
	}

	return nil
}

func (s *Session) cmdOutput(c selection) error {
	if !s.assembled() {
		return nil
	}

	for _, line := range s.result.Binary() {
		s.println(line)
	}

	return nil
}

func (s *Session) cmdDisassemble(c selection) error {
	if !s.assembled() {
		return nil
	}

	for _, line := range disasm.Listing(s.result.Words, s.labels()) {
		s.println(line)
	}

	return nil
}

func (s *Session) cmdWrite(c selection) error {
	if len(c.Args) < 1 {
		s.displayHelpText(c.Command)
		return nil
	}

	if !s.assembled() {
		return nil
	}

	filename := c.Args[0]
	format := objfile.FormatOf(filename)

	if len(c.Args) > 1 {
		var err error

		if format, err = objfile.ParseFormat(c.Args[1]); err != nil {
			s.printf("%v\n", err)
			return nil
		}
	}

	if err := writeObject(filename, format, s.result.Words); err != nil {
		s.printf("%v\n", err)
		return nil
	}

	s.printf(
		"Wrote %d word(s) to %s (%s).\n", len(s.result.Words), filename, format,
	)

	return nil
}

func (s *Session) cmdSymbols(c selection) error {
	if s.result == nil {
		s.println("Nothing has been assembled.")
		return nil
	}

	symbols := s.result.Symbols

	if symbols == nil || symbols.Len() == 0 {
		s.println("No labels defined.")
		return nil
	}

	for _, name := range symbols.Names() {
		symbol, _ := symbols.Lookup(name)
		s.printf("    %-16s x%04X  (line %d)\n", name, symbol.Address, symbol.Line)
	}

	return nil
}

func (s *Session) cmdInspect(c selection) error {
	if s.result == nil {
		s.println("Nothing has been assembled.")
		return nil
	}

	printer := pp.New()
	printer.SetOutput(s.output)
	printer.SetColoringEnabled(s.interactive)

	switch {
	case len(c.Args) == 0 || strings.EqualFold(c.Args[0], "result"):
		printer.Println(s.result)
	case strings.EqualFold(c.Args[0], "symbols"):
		printer.Println(objfile.NewSymbolFile(s.filename, s.result.Symbols))
	default:
		s.displayHelpText(c.Command)
	}

	s.flush()

	return nil
}

func (s *Session) cmdQuit(c selection) error {
	if _, force := forced(c.Args); !s.discardable(force) {
		return nil
	}

	return errors.New("Exiting program")
}

// Strips a trailing "!" argument, which overrides the unsaved edits check
func forced(args []string) ([]string, bool) {
	if n := len(args); n > 0 && args[n-1] == "!" {
		return args[:n-1], true
	}

	return args, false
}

// Reports whether the source buffer may be thrown away, warning when it
// holds unsaved edits and force is not set
func (s *Session) discardable(force bool) bool {
	if s.modified && !force {
		s.println("Source buffer modified; save it first or repeat the command with !")
		return false
	}

	return true
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

// Reports whether a successful assembly is available, printing a message
// when it is not
func (s *Session) assembled() bool {
	switch {
	case s.result == nil:
		s.println("Nothing has been assembled.")
		return false
	case !s.result.Success:
		s.println("The last assembly failed.")
		return false
	}

	return true
}

func (s *Session) labels() map[uint16]string {
	return objfile.NewSymbolFile(s.filename, s.result.Symbols).Labels
}

func (s *Session) parseLineNumber(arg string, limit int) (int, error) {
	line, err := strconv.Atoi(arg)

	if err != nil || line < 1 || line > limit {
		return 0, fmt.Errorf("Invalid line number '%s'", arg)
	}

	return line, nil
}

func parseCount(arg string) (int, error) {
	count, err := strconv.Atoi(arg)

	if err != nil || count < 0 {
		return 0, fmt.Errorf("Invalid count '%s'", arg)
	}

	return count, nil
}

func (s *Session) displayHelpText(c *cmd.Command) {
	if c.Usage != "" {
		s.printf("Syntax: %s\n", c.Usage)
	} else {
		s.println("<no help text>")
	}
}

func (s *Session) displayCommands(commands *cmd.Tree) {
	s.printf("%s commands:\n", commands.Name)

	for _, c := range commands.Commands() {
		if c.Brief != "" {
			s.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
}
