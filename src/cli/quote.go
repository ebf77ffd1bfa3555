// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/spf13/cobra"
)

func newQuoteCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [--] PROGRAM [ARGS...]",
		Short: "Print the command line PROGRAM would be launched with",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrProgramRequired
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cl := spawn.BuildCommandLine(args)
			out := cmd.OutOrStdout()

			if f.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Line      string `json:"line"`
					Args      int    `json:"args"`
					Truncated bool   `json:"truncated"`
				}{cl.Line, cl.Args, cl.Truncated})
			}

			if cl.Truncated {
				cmd.PrintErrf("warning: only %d of %d arguments fit in %d characters\n",
					cl.Args, len(args), spawn.MaxCommandLine)
			}
			_, err := fmt.Fprintln(out, cl.Line)
			return err
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
