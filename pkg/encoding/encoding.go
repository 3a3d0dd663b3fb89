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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidLiteral = errors.New("Invalid numeric literal")

var (
	hexPattern     = regexp.MustCompile(`^[xX]-?[0-9a-fA-F]+$`)
	decimalPattern = regexp.MustCompile(`^#?-?[0-9]+$`)
	binaryPattern  = regexp.MustCompile(`^[bB]-?[01]+$`)
)

type RangeError struct {
	Value  int64
	Width  uint
	Signed bool
}

func (err *RangeError) Error() string {
	if err.Signed {
		return fmt.Sprintf(
			"%d can not be represented as a signed number in %d bits",
			err.Value,
			err.Width,
		)
	}

	return fmt.Sprintf(
		"%d can not be represented as an unsigned number in %d bits",
		err.Value,
		err.Width,
	)
}

// Reports whether s is a numeric literal in one of the formats accepted by
// DecodeNumber
func IsNumber(s string) bool {
	return hexPattern.MatchString(s) ||
		decimalPattern.MatchString(s) ||
		binaryPattern.MatchString(s)
}

// Decodes a numeric literal in the formats: x3000, X-1F, #10, -10, 10, b0101
//
// Literals too large for an int64 are returned saturated along with an error
// wrapping strconv.ErrRange.
func DecodeNumber(s string) (int64, error) {
	var base int

	switch {
	case hexPattern.MatchString(s):
		base = 16
		s = s[1:]
	case binaryPattern.MatchString(s):
		base = 2
		s = s[1:]
	case decimalPattern.MatchString(s):
		base = 10
		s = strings.TrimPrefix(s, "#")
	default:
		return 0, ErrInvalidLiteral
	}

	return strconv.ParseInt(s, base, 64)
}

// Encodes value into a bit pattern of the given width. Negative values are
// written in two's complement when signed is set, everything else is zero
// extended. Values outside the field are rejected rather than truncated.
func EncodeBits(value int64, width uint, signed bool) (uint16, error) {
	if width == 0 || width > 16 {
		return 0, fmt.Errorf("Invalid field width %d", width)
	}

	var min, max int64

	if signed {
		min = -(int64(1) << (width - 1))
		max = (int64(1) << (width - 1)) - 1
	} else {
		max = (int64(1) << width) - 1
	}

	if value < min || value > max {
		return 0, &RangeError{value, width, signed}
	}

	return uint16(value) & Mask(width), nil
}

// Encodes a full 16 bit word, accepting both the signed and the unsigned
// interpretation (-32768 through 65535)
func EncodeWord(value int64) (uint16, error) {
	if value < -(1<<15) || value > (1<<16)-1 {
		return 0, &RangeError{value, 16, false}
	}

	return uint16(value), nil
}

func Mask(width uint) uint16 {
	if width >= 16 {
		return 0xFFFF
	}

	return (uint16(1) << width) - 1
}

func SignExtend(value uint16, bitcount uint16) uint16 {
	if (value>>(bitcount-1))&0x1 == 1 {
		value |= (0xFFFF << bitcount)
	}

	return value
}

// Renders a word as 16 '0'/'1' characters, most significant bit first
func FormatWord(value uint16) string {
	return fmt.Sprintf("%016b", value)
}

// Decodes a word rendered by FormatWord
func ParseWord(s string) (uint16, error) {
	if len(s) != 16 || strings.Trim(s, "01") != "" {
		return 0, fmt.Errorf("Invalid binary word '%s'", s)
	}

	result, err := strconv.ParseUint(s, 2, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}
