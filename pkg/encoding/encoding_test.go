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

package encoding

import (
	"errors"
	"strconv"
	"testing"
)

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		Input  string
		Output int64
	}{
		{"x3000", 0x3000},
		{"X3000", 0x3000},
		{"xffff", 0xFFFF},
		{"x-1F", -0x1F},
		{"#10", 10},
		{"#-10", -10},
		{"10", 10},
		{"-10", -10},
		{"0", 0},
		{"b0101", 5},
		{"B-11", -3},
	}

	for _, test := range tests {
		value, err := DecodeNumber(test.Input)

		if err != nil {
			t.Fatalf("%s: %v", test.Input, err)
		}

		if value != test.Output {
			t.Fatalf(
				"Decoded value mismatch for %s\nwant:%d\nhave:%d",
				test.Input,
				test.Output,
				value,
			)
		}
	}
}

func TestDecodeNumberInvalid(t *testing.T) {
	for _, input := range []string{"", "x", "#", "b2", "0x10", "xG", "R1", "1a"} {
		if IsNumber(input) {
			t.Fatalf("%q classified as a number", input)
		}

		if _, err := DecodeNumber(input); !errors.Is(err, ErrInvalidLiteral) {
			t.Fatalf("%q decoded without ErrInvalidLiteral: %v", input, err)
		}
	}

	if _, err := DecodeNumber("#99999999999999999999"); !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("Overflowing literal decoded without ErrRange: %v", err)
	}
}

func TestEncodeBits(t *testing.T) {
	tests := []struct {
		Value  int64
		Width  uint
		Signed bool
		Output uint16
	}{
		{15, 5, true, 0b01111},
		{-16, 5, true, 0b10000},
		{-1, 5, true, 0b11111},
		{-256, 9, true, 0b1_0000_0000},
		{255, 9, true, 0b0_1111_1111},
		{-1024, 11, true, 0b100_0000_0000},
		{0xFF, 8, false, 0xFF},
		{0, 8, false, 0},
		{-1, 16, true, 0xFFFF},
		{0xFFFF, 16, false, 0xFFFF},
	}

	for _, test := range tests {
		result, err := EncodeBits(test.Value, test.Width, test.Signed)

		if err != nil {
			t.Fatal(err)
		}

		if result != test.Output {
			t.Fatalf(
				"Encoding mismatch for %d in %d bits\nwant:%#b\nhave:%#b",
				test.Value,
				test.Width,
				test.Output,
				result,
			)
		}
	}
}

func TestEncodeBitsRange(t *testing.T) {
	tests := []struct {
		Value  int64
		Width  uint
		Signed bool
	}{
		{16, 5, true},
		{-17, 5, true},
		{256, 9, true},
		{-257, 9, true},
		{1024, 11, true},
		{256, 8, false},
		{-1, 8, false},
		{0x10000, 16, false},
	}

	for _, test := range tests {
		_, err := EncodeBits(test.Value, test.Width, test.Signed)

		var rangeErr *RangeError

		if !errors.As(err, &rangeErr) {
			t.Fatalf(
				"%d in %d bits (signed=%v) accepted: %v",
				test.Value,
				test.Width,
				test.Signed,
				err,
			)
		}

		if rangeErr.Value != test.Value || rangeErr.Width != test.Width {
			t.Fatalf("RangeError fields mismatch: %+v", rangeErr)
		}
	}

	if _, err := EncodeBits(1, 0, false); err == nil {
		t.Fatal("Zero width field accepted")
	}
}

func TestEncodeWord(t *testing.T) {
	tests := map[int64]uint16{
		-32768: 0x8000,
		-1:     0xFFFF,
		0:      0,
		0x1234: 0x1234,
		65535:  0xFFFF,
	}

	for value, want := range tests {
		have, err := EncodeWord(value)

		if err != nil || have != want {
			t.Fatalf("EncodeWord(%d) = %#04x, %v; want %#04x", value, have, err, want)
		}
	}

	for _, value := range []int64{-32769, 65536} {
		if _, err := EncodeWord(value); err == nil {
			t.Fatalf("EncodeWord(%d) accepted", value)
		}
	}
}

func TestSignExtend(t *testing.T) {
	if have := SignExtend(0b11111, 5); have != 0xFFFF {
		t.Fatalf("want:0xffff have:%#04x", have)
	}

	if have := SignExtend(0b01111, 5); have != 0b01111 {
		t.Fatalf("want:0xf have:%#04x", have)
	}

	if have := SignExtend(0b1_0000_0000, 9); have != 0xFF00 {
		t.Fatalf("want:0xff00 have:%#04x", have)
	}
}

func TestFormatWord(t *testing.T) {
	tests := map[uint16]string{
		0x3000: "0011000000000000",
		0xF025: "1111000000100101",
		0:      "0000000000000000",
		0xFFFF: "1111111111111111",
	}

	for word, text := range tests {
		if have := FormatWord(word); have != text {
			t.Fatalf("FormatWord(%#04x)\nwant:%s\nhave:%s", word, text, have)
		}

		if have, err := ParseWord(text); err != nil || have != word {
			t.Fatalf("ParseWord(%s) = %#04x, %v", text, have, err)
		}
	}

	for _, text := range []string{"", "0101", "00110000000000002", "00110000000000000"} {
		if _, err := ParseWord(text); err == nil {
			t.Fatalf("ParseWord(%q) accepted", text)
		}
	}
}
