// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThreadsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "threads",
		Short: "Show the worker pool fio would use",
		Long: `Threads configures the worker pool from --threads / FIO_THREADS / the
config file and prints the resulting worker count. A value of 0 selects
one worker per CPU.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pool()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "workers: %d (requested %d, %s)\n",
				p.Workers(), a.cfg.Threads, p.Status())
			return err
		},
	}
}
