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
	"os"

	"github.com/beevik/term"
	"github.com/spf13/cobra"

	"github.com/lassandro/lc3asm/pkg/session"
)

var shellCmd = &cobra.Command{
	Use:   "shell [filename]",
	Short: "Edit and assemble interactively",
	Long: `Shell starts a command session with an editable source buffer,
optionally loaded from a file. Type 'help' at the prompt for the list of
commands. Commands may also be piped in as a script.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New()

		if len(args) == 1 {
			if err := s.Load(args[0]); err != nil {
				return err
			}
		}

		// Stdin decides prompting; isTerminal only gates stderr colour
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		s.RunCommands(os.Stdin, cmd.OutOrStdout(), interactive)

		return nil
	},
}
