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
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/lassandro/lc3asm/pkg/assembler"
)

var isaTree = prefixtree.New[assembler.Mnemonic]()

func init() {
	for _, mnemonic := range assembler.Mnemonics() {
		isaTree.Add(strings.ToLower(mnemonic.String()), mnemonic)
	}
}

// Finds the mnemonic named by key or by a unique prefix of its name. When
// nothing is found, matches lists every mnemonic sharing the prefix.
func lookupMnemonic(key string) (found assembler.Mnemonic, matches []assembler.Mnemonic) {
	if mnemonic := assembler.ParseMnemonic(key); mnemonic != assembler.MNEMONIC_INVALID {
		return mnemonic, nil
	}

	key = strings.ToLower(key)

	if mnemonic, err := isaTree.FindValue(key); err == nil {
		return mnemonic, nil
	}

	matches = isaTree.FindValues(key)

	if len(matches) == 1 {
		return matches[0], nil
	}

	return assembler.MNEMONIC_INVALID, matches
}

func (s *Session) cmdIsa(c selection) error {
	if len(c.Args) == 0 {
		for _, mnemonic := range assembler.Mnemonics() {
			s.printf("    %-8s %s\n", mnemonic, mnemonic.Syntax())
		}
		return nil
	}

	mnemonic, matches := lookupMnemonic(c.Args[0])

	switch {
	case mnemonic != assembler.MNEMONIC_INVALID:
		s.displayMnemonic(mnemonic)

	case len(matches) == 0:
		s.printf("Unknown mnemonic '%s'.\n", c.Args[0])

	default:
		names := make([]string, len(matches))

		for i, match := range matches {
			names[i] = match.String()
		}

		s.printf("'%s' is ambiguous: %s\n", c.Args[0], strings.Join(names, ", "))
	}

	return nil
}

func (s *Session) displayMnemonic(mnemonic assembler.Mnemonic) {
	s.printf("Syntax: %s\n", mnemonic.Syntax())

	if mnemonic.IsDirective() {
		return
	}

	s.printf("Layout: %s\n", mnemonic.Layout())
	s.println("        [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]")
	s.printf("Opcode: x%04X\n", mnemonic.Opcode())
}
