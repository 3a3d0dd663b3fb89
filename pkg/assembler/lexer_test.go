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
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		Input  string
		Output []string
	}{
		{"", nil},
		{"   ; only a comment", nil},
		{"ADD R0,R1 ,  R2", []string{"ADD", "R0", "R1", "R2"}},
		{"\tLOOP\tBRp LOOP;back", []string{"LOOP", "BRp", "LOOP"}},
		{`.STRINGZ "a; b, c"`, []string{".STRINGZ", `"a`}},
		{`.STRINGZ "a;b"`, []string{".STRINGZ", `"a`}},
		{`.STRINGZ "Hello, World"`, []string{".STRINGZ", `"Hello`, `World"`}},
		{`.STRINGZ "say \"hi\"" ; done`, []string{".STRINGZ", `"say`, `\"hi\""`}},
		{`.STRINGZ "a"b" x`, []string{".STRINGZ", `"a"b"`, "x"}},
		{`.STRINGZ "open`, []string{".STRINGZ", `"open`}},
		{`A"B C`, []string{`A"B`, "C"}},
	}

	for _, test := range tests {
		if have := splitLine(test.Input); !reflect.DeepEqual(have, test.Output) {
			t.Fatalf(
				"Split mismatch for %q\nwant:%q\nhave:%q",
				test.Input,
				test.Output,
				have,
			)
		}
	}
}

func TestClassifyToken(t *testing.T) {
	tests := map[string]TokenType{
		"ADD":      TOKEN_KEYWORD,
		"brnzp":    TOKEN_KEYWORD,
		".orig":    TOKEN_KEYWORD,
		"Halt":     TOKEN_KEYWORD,
		"R0":       TOKEN_REGISTER,
		"r7":       TOKEN_REGISTER,
		"R12":      TOKEN_REGISTER,
		"x3000":    TOKEN_LITERAL,
		"#-5":      TOKEN_LITERAL,
		"b101":     TOKEN_LITERAL,
		"12":       TOKEN_LITERAL,
		`"text"`:   TOKEN_STRING,
		`"open`:    TOKEN_STRING,
		"LOOP":     TOKEN_IDENT,
		"xyz":      TOKEN_IDENT,
		"RX":       TOKEN_IDENT,
		"1abc":     TOKEN_IDENT,
		"Label_1":  TOKEN_IDENT,
		"BRzn":     TOKEN_IDENT,
		".STRINGY": TOKEN_IDENT,
	}

	for value, want := range tests {
		if have := classifyToken(value); have != want {
			t.Fatalf("classifyToken(%q)\nwant:%d\nhave:%d", value, want, have)
		}
	}
}

func TestParseLine(t *testing.T) {
	parsed, ok := ParseLine("LOOP ADD R1, R1, #-1 ; decrement", 4)

	if !ok {
		t.Fatal("Line reported empty")
	}

	if parsed.Line != 4 {
		t.Fatalf("want line 4, have %d", parsed.Line)
	}

	if parsed.Label == nil || parsed.Label.Value != "LOOP" {
		t.Fatalf("Label mismatch: %+v", parsed.Label)
	}

	if parsed.Mnemonic == nil || parsed.Mnemonic.Type != TOKEN_KEYWORD {
		t.Fatalf("Mnemonic mismatch: %+v", parsed.Mnemonic)
	}

	operands := []Token{
		{TOKEN_REGISTER, "R1"},
		{TOKEN_REGISTER, "R1"},
		{TOKEN_LITERAL, "#-1"},
	}

	if !reflect.DeepEqual(parsed.Operands, operands) {
		t.Fatalf("Operands mismatch\nwant:%v\nhave:%v", operands, parsed.Operands)
	}

	parsed, ok = ParseLine("ALONE", 1)

	if !ok || parsed.Label == nil || parsed.Mnemonic != nil {
		t.Fatalf("Label only line parsed as %+v", parsed)
	}

	parsed, ok = ParseLine("HALT", 1)

	if !ok || parsed.Label != nil || parsed.Mnemonic.Value != "HALT" {
		t.Fatalf("Mnemonic only line parsed as %+v", parsed)
	}

	if _, ok = ParseLine("  ; nothing here", 1); ok {
		t.Fatal("Comment line reported as content")
	}
}

func TestDecodeString(t *testing.T) {
	tests := map[string]string{
		`""`:             "",
		`"AB"`:           "AB",
		`"a\nb"`:         "a\nb",
		`"\0\a\b\f\r\v"`: "\x00\a\b\f\r\v",
		`"\q\\"`:         `q\`,
		`"say \"hi\""`:   `say "hi"`,
	}

	for input, want := range tests {
		have, ok := DecodeString(input)

		if !ok || have != want {
			t.Fatalf("DecodeString(%s)\nwant:%q\nhave:%q (%v)", input, want, have, ok)
		}
	}

	for _, input := range []string{`"`, `"open`, `"a"b"`, `"trail\"`, `plain`, `"Hello`, `World"`} {
		if _, ok := DecodeString(input); ok {
			t.Fatalf("DecodeString(%s) accepted", input)
		}
	}
}

func TestMnemonicTable(t *testing.T) {
	mnemonics := Mnemonics()

	if len(mnemonics) != int(mnemonicCount)-1 {
		t.Fatalf("want %d mnemonics, have %d", mnemonicCount-1, len(mnemonics))
	}

	seen := map[string]bool{}

	for _, mnemonic := range mnemonics {
		name := mnemonic.String()

		if name == "" || mnemonic.Format() == FORMAT_NONE {
			t.Fatalf("Mnemonic %d has no table entry", mnemonic)
		}

		if mnemonic.Syntax() == "" {
			t.Fatalf("%s is missing its syntax", name)
		}

		if !mnemonic.IsDirective() && mnemonic.Layout() == "" {
			t.Fatalf("%s is missing its bit layout", name)
		}

		if seen[name] {
			t.Fatalf("%s listed twice", name)
		}

		seen[name] = true

		if parsed := ParseMnemonic(name); parsed != mnemonic {
			t.Fatalf("ParseMnemonic(%s) = %d, want %d", name, parsed, mnemonic)
		}

		if mnemonic.IsDirective() != (name[0] == '.') {
			t.Fatalf("%s directive flag mismatch", name)
		}
	}

	if ParseMnemonic("MOV") != MNEMONIC_INVALID {
		t.Fatal("MOV parsed as a mnemonic")
	}
}
