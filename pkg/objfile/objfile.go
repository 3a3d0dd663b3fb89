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

// Package objfile reads and writes assembled LC-3 programs.
//
// An object image is a sequence of 16 bit words whose first word is the
// origin. It is stored either as text, one 16 character binary string per
// line, or as a raw big-endian word stream. Debugging symbols live in a
// separate gob encoded file.
package objfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/lc3asm/pkg/encoding"
)

type Format uint

const (
	FORMAT_TEXT Format = iota
	FORMAT_BINARY
)

// Origin word plus a full 64K memory image
const maxWords = (1 << 16) + 1

var ErrOddLength = errors.New("Object file ends in the middle of a word")
var ErrTooLarge = errors.New("Object file is larger than LC-3 memory")

func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "bin":
		return FORMAT_TEXT, nil
	case "binary", "obj":
		return FORMAT_BINARY, nil
	}

	return 0, fmt.Errorf("Unknown object format '%s'", name)
}

func (format Format) String() string {
	switch format {
	case FORMAT_TEXT:
		return "text"
	case FORMAT_BINARY:
		return "binary"
	}

	return "<invalid>"
}

// File extension, including the dot, conventionally used for format
func (format Format) Extension() string {
	if format == FORMAT_BINARY {
		return ".obj"
	}

	return ".bin"
}

// Guesses the format of a file from its extension, defaulting to text
func FormatOf(filename string) Format {
	if strings.EqualFold(extension(filename), ".obj") {
		return FORMAT_BINARY
	}

	return FORMAT_TEXT
}

func extension(filename string) string {
	if index := strings.LastIndexByte(filename, '.'); index >= 0 {
		return filename[index:]
	}

	return ""
}

func Write(writer io.Writer, format Format, words []uint16) error {
	if format == FORMAT_BINARY {
		return WriteBinary(writer, words)
	}

	return WriteText(writer, words)
}

func Read(reader io.Reader, format Format) ([]uint16, error) {
	if format == FORMAT_BINARY {
		return ReadBinary(reader)
	}

	return ReadText(reader)
}

// Writes one line of 16 '0'/'1' characters per word
func WriteText(writer io.Writer, words []uint16) error {
	buffered := bufio.NewWriter(writer)

	for _, word := range words {
		if _, err := fmt.Fprintln(buffered, encoding.FormatWord(word)); err != nil {
			return err
		}
	}

	return buffered.Flush()
}

// Reads a text image written by WriteText. Blank lines are skipped.
func ReadText(reader io.Reader) ([]uint16, error) {
	var words []uint16
	var scanner = bufio.NewScanner(reader)
	var line int = 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())

		if text == "" {
			continue
		}

		word, err := encoding.ParseWord(text)

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if len(words) == maxWords {
			return nil, ErrTooLarge
		}

		words = append(words, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

// Writes words as a big-endian stream
func WriteBinary(writer io.Writer, words []uint16) error {
	buffered := bufio.NewWriter(writer)

	if err := binary.Write(buffered, binary.BigEndian, words); err != nil {
		return err
	}

	return buffered.Flush()
}

func ReadBinary(reader io.Reader) ([]uint16, error) {
	var words []uint16

	buffered := bufio.NewReader(reader)
	scratch := make([]byte, 2)

	for {
		n, err := io.ReadFull(buffered, scratch)

		if err == io.EOF {
			return words, nil
		} else if err == io.ErrUnexpectedEOF || (err == nil && n != 2) {
			return nil, ErrOddLength
		} else if err != nil {
			return nil, err
		}

		if len(words) == maxWords {
			return nil, ErrTooLarge
		}

		words = append(words, binary.BigEndian.Uint16(scratch))
	}
}
