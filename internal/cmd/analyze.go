// SPDX-License-Identifier: MIT
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/fio/internal/config"
	"github.com/katalvlaran/fio/internal/report"
	"github.com/katalvlaran/fio/internal/table"
	"github.com/katalvlaran/fio/parallel"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var input, output string

	c := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full structural analysis of a table",
		Long: `Analyze loads a YAML input-output table and reports:

- technical/allocation coefficients and the Leontief/Ghosh inverses
- backward/forward linkages and dispersion indices (dispersion needs 2+ sectors)
- output, value-added and employment multipliers
- backward/forward/total hypothetical extraction (needs final_demand and value_added)
- the field of influence (skip with --skip-influence)`,
		Example: "  fio analyze -i table.yaml --format json --rank-one",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.analyze(cmd, input, output)
		},
	}

	f := c.Flags()
	f.StringVarP(&input, "input", "i", "", "input-output table (YAML)")
	f.StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	f.Float64("epsilon", config.Default().Epsilon, "perturbation for the field of influence")
	f.StringP("format", "f", config.FormatText, "report format: text, json, yaml")
	f.Bool("rank-one", false, "use Sherman–Morrison updates instead of re-inverting per perturbation")
	f.Bool("skip-influence", false, "omit the field of influence")
	_ = c.MarkFlagRequired("input")
	_ = a.v.BindPFlag(config.KeyEpsilon, f.Lookup("epsilon"))
	_ = a.v.BindPFlag(config.KeyFormat, f.Lookup("format"))
	_ = a.v.BindPFlag(config.KeyRankOne, f.Lookup("rank-one"))
	_ = a.v.BindPFlag(config.KeySkipInfluence, f.Lookup("skip-influence"))

	return c
}

func (a *app) analyze(cmd *cobra.Command, input, output string) error {
	pool, err := a.pool()
	if err != nil {
		return err
	}

	tab, err := table.Load(input)
	if err != nil {
		return err
	}
	a.log.Info("table loaded", "path", input, "sectors", tab.N())

	rep, err := report.Run(tab, report.Options{
		RunID:         a.runID,
		Epsilon:       a.cfg.Epsilon,
		RankOne:       a.cfg.RankOne,
		SkipInfluence: a.cfg.SkipInfluence,
		Executor:      pool,
		Logger:        a.log,
	})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", input, err)
	}

	if output == "" {
		return report.Render(cmd.OutOrStdout(), rep, a.cfg.Format)
	}

	return writeReport(output, rep, a.cfg.Format)
}

// writeReport renders rep into path. A failed Close is reported when the
// render itself succeeded.
func writeReport(path string, rep *report.Report, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("analyze: close %s: %w", path, cerr)
		}
	}()

	return report.Render(f, rep, format)
}

// pool configures the process-wide pool from the loaded configuration.
// A pool configured earlier in the process keeps its budget.
func (a *app) pool() (*parallel.Pool, error) {
	parallel.SetLogger(a.log)
	if _, err := parallel.Configure(a.cfg.Threads); err != nil && !errors.Is(err, parallel.ErrAlreadyConfigured) {
		return nil, err
	}

	return parallel.Default(), nil
}
