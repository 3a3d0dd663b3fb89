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
	"flag"
	"log"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

// Returned once the assembler's own messages have been printed
var errAssemblyFailed = errors.New("assembly failed")

var rootCmd = &cobra.Command{
	Use:   "lc3asm [flags] [filename]",
	Short: "Two-pass assembler for the LC-3",
	Long: `lc3asm assembles an LC-3 source file into an object file.

Without a filename the source is read from standard input when it is piped,
and the output defaults to out.bin (or out.obj in binary format). Messages
from both assembler passes are written to standard error; the exit status is
1 when assembly fails.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// glog reads its flags from the standard flag set, which cobra has
		// already filled in
		flag.CommandLine.Parse([]string{})
	},
	RunE: runAssemble,
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.Flags().StringVarP(
		&outvar, "out", "o", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	rootCmd.Flags().StringVarP(
		&formatvar, "format", "f", "text",
		"Object file format, 'text' (one binary word per line) or 'binary' "+
			"(big-endian words)",
	)
	rootCmd.Flags().BoolVar(
		&debugvar, "debug", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.sym'",
	)

	rootCmd.AddCommand(dumpCmd, shellCmd)
}

func main() {
	err := rootCmd.Execute()

	if err != nil && err != errAssemblyFailed {
		log.Println(err)
	}

	glog.Flush()

	if err != nil {
		os.Exit(1)
	}
}
