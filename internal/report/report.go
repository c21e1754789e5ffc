// SPDX-License-Identifier: MIT
// Package report runs the full structural analysis of one table and renders
// the result as JSON, YAML or styled text.
//
// Pipeline (Run):
//   - Stage 1: technical and allocation coefficients, Hawkins–Simon check.
//   - Stage 2: Leontief and Ghosh inverses, linkages of both.
//   - Stage 3: output multipliers; value-added and employment multipliers
//     when the table carries those accounts.
//   - Stage 4: backward/forward/total extraction when final demand and
//     value added are present.
//   - Stage 5: field of influence unless skipped.
//
// Every stage runs on the executor given in Options and logs through its
// logger; inversions are counted for the summary line.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/fio/internal/logging"
	"github.com/katalvlaran/fio/internal/table"
	"github.com/katalvlaran/fio/ioa"
	"github.com/katalvlaran/fio/matrix"
	"github.com/katalvlaran/fio/parallel"
)

// Options configures Run.
type Options struct {
	RunID         string
	Epsilon       float64
	RankOne       bool
	SkipInfluence bool
	Executor      parallel.Executor // nil: parallel.Default()
	Logger        *slog.Logger      // nil: discard
}

// Report is the complete analysis of one table.
type Report struct {
	RunID          string   `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Sectors        []string `json:"sectors" yaml:"sectors"`
	SpectralRadius float64  `json:"spectral_radius" yaml:"spectral_radius"`

	Technical  [][]float64 `json:"technical_coefficients" yaml:"technical_coefficients"`
	Leontief   [][]float64 `json:"leontief_inverse" yaml:"leontief_inverse"`
	Allocation [][]float64 `json:"allocation_coefficients" yaml:"allocation_coefficients"`
	Ghosh      [][]float64 `json:"ghosh_inverse" yaml:"ghosh_inverse"`

	LeontiefLinkages ioa.LinkageReport `json:"leontief_linkages" yaml:"leontief_linkages"`
	GhoshLinkages    ioa.LinkageReport `json:"ghosh_linkages" yaml:"ghosh_linkages"`

	Output     ioa.OutputMultipliers     `json:"output_multipliers" yaml:"output_multipliers"`
	ValueAdded *ioa.SatelliteMultipliers `json:"value_added_multipliers,omitempty" yaml:"value_added_multipliers,omitempty"`
	Employment *ioa.SatelliteMultipliers `json:"employment_multipliers,omitempty" yaml:"employment_multipliers,omitempty"`

	Extraction *Extraction `json:"extraction,omitempty" yaml:"extraction,omitempty"`
	Influence  [][]float64 `json:"field_of_influence,omitempty" yaml:"field_of_influence,omitempty"`

	Stats Stats `json:"stats" yaml:"stats"`
}

// Extraction holds the three n×2 tables; column 0 is the absolute output
// change, column 1 the change relative to total production.
type Extraction struct {
	Backward [][]float64 `json:"backward" yaml:"backward"`
	Forward  [][]float64 `json:"forward" yaml:"forward"`
	Total    [][]float64 `json:"total" yaml:"total"`
}

// Stats summarises the work done by Run.
type Stats struct {
	Sectors     int           `json:"sectors" yaml:"sectors"`
	Inversions  int64         `json:"inversions" yaml:"inversions"`
	Workers     int           `json:"workers" yaml:"workers"`
	RankOne     bool          `json:"rank_one" yaml:"rank_one"`
	Epsilon     float64       `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
	Elapsed     time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	Productive  bool          `json:"productive" yaml:"productive"`
	InfluenceOn bool          `json:"field_of_influence" yaml:"field_of_influence"`
}

// Run analyses tab. The first failing stage aborts the run; its error keeps
// the ioa kind (errors.Is(err, ioa.ErrSingularMatrix), …).
func Run(tab *table.Table, opts Options) (*Report, error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	exec := opts.Executor
	if exec == nil {
		exec = parallel.Default()
	}

	var inversions atomic.Int64
	counted := ioa.InverterFunc(func(m matrix.Matrix) (*matrix.Dense, error) {
		inversions.Add(1)
		return ioa.LUInverter{}.Invert(m)
	})
	common := []ioa.Option{ioa.WithExecutor(exec), ioa.WithLogger(log), ioa.WithInverter(counted)}
	perturb := common
	if opts.RankOne {
		perturb = append(append([]ioa.Option(nil), common...), ioa.WithRankOneUpdate())
	}

	T, err := tab.TransactionsMatrix()
	if err != nil {
		return nil, fmt.Errorf("report: transactions: %w", err)
	}
	p := tab.Production
	rep := &Report{RunID: opts.RunID, Sectors: tab.Sectors}

	// Stage 1–2: coefficients and inverses.
	A, L, err := ioa.LeontiefFromTransactions(T, p, common...)
	if err != nil {
		return nil, err
	}
	F, G, err := ioa.GhoshFromTransactions(T, p, common...)
	if err != nil {
		return nil, err
	}
	rho, err := ioa.CheckHawkinsSimon(A)
	switch {
	case errors.Is(err, ioa.ErrNotProductive):
		log.Warn("coefficient matrix is not productive", "spectral_radius", rho)
	case err != nil:
		return nil, err
	default:
		rep.Stats.Productive = true
	}
	rep.SpectralRadius = rho
	rep.Technical, rep.Leontief = rows(A), rows(L)
	rep.Allocation, rep.Ghosh = rows(F), rows(G)
	log.Info("inverses computed", "n", tab.N(), "spectral_radius", rho)

	if rep.LeontiefLinkages, err = linkages(L, tab.N(), log, common); err != nil {
		return nil, err
	}
	if rep.GhoshLinkages, err = linkages(G, tab.N(), log, common); err != nil {
		return nil, err
	}

	// Stage 3: multipliers.
	if rep.Output, err = ioa.OutputMultiplier(L, A); err != nil {
		return nil, err
	}
	va, err := tab.ValueAddedTotals()
	if err != nil {
		return nil, fmt.Errorf("report: value added: %w", err)
	}
	if va != nil {
		m, err := ioa.ValueAddedMultiplier(L, va, p)
		if err != nil {
			return nil, err
		}
		rep.ValueAdded = &m
	}
	if tab.Employment != nil {
		m, err := ioa.EmploymentMultiplier(L, tab.Employment, p)
		if err != nil {
			return nil, err
		}
		rep.Employment = &m
	}

	// Stage 4: extraction.
	if tab.FinalDemand != nil && tab.ValueAdded != nil {
		if rep.Extraction, err = extraction(tab, A, F, p, perturb); err != nil {
			return nil, err
		}
		log.Info("extraction computed", "rank_one", opts.RankOne)
	}

	// Stage 5: field of influence.
	if !opts.SkipInfluence {
		fi, err := ioa.FieldOfInfluence(A, L, opts.Epsilon, perturb...)
		if err != nil {
			return nil, err
		}
		rep.Influence = rows(fi)
		rep.Stats.InfluenceOn = true
		rep.Stats.Epsilon = opts.Epsilon
		log.Info("field of influence computed", "epsilon", opts.Epsilon)
	}

	rep.Stats.Sectors = tab.N()
	rep.Stats.Inversions = inversions.Load()
	rep.Stats.Workers = exec.Workers()
	rep.Stats.RankOne = opts.RankOne
	rep.Stats.Elapsed = time.Since(start)
	log.Info("analysis finished",
		"inversions", rep.Stats.Inversions, "elapsed", rep.Stats.Elapsed)

	return rep, nil
}

func extraction(tab *table.Table, A, F *matrix.Dense, p []float64, opts []ioa.Option) (*Extraction, error) {
	FD, err := tab.FinalDemandMatrix()
	if err != nil {
		return nil, fmt.Errorf("report: final demand: %w", err)
	}
	VA, err := tab.ValueAddedMatrix()
	if err != nil {
		return nil, fmt.Errorf("report: value added: %w", err)
	}
	bwd, err := ioa.BackwardExtraction(A, FD, p, opts...)
	if err != nil {
		return nil, err
	}
	fwd, err := ioa.ForwardExtraction(F, VA, p, opts...)
	if err != nil {
		return nil, err
	}
	total, err := ioa.TotalExtraction(bwd, fwd)
	if err != nil {
		return nil, err
	}

	return &Extraction{Backward: rows(bwd), Forward: rows(fwd), Total: rows(total)}, nil
}

// rows copies m into a slice of rows for serialisation.
func rows(m *matrix.Dense) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i], _ = m.Row(i)
	}

	return out
}

// linkages runs ioa.Linkages. A single-sector table has no dispersion
// statistics, so only the averages and Rasmussen indices are filled in.
func linkages(M matrix.Matrix, n int, log *slog.Logger, opts []ioa.Option) (ioa.LinkageReport, error) {
	if n >= 2 {
		return ioa.Linkages(M, opts...)
	}
	var (
		rep ioa.LinkageReport
		err error
	)
	if rep.Average, err = ioa.Average(M); err != nil {
		return rep, err
	}
	if rep.RowAverages, err = ioa.RowAverages(M); err != nil {
		return rep, err
	}
	if rep.ColAverages, err = ioa.ColAverages(M); err != nil {
		return rep, err
	}
	if rep.Forward, err = ioa.ForwardLinkages(M); err != nil {
		return rep, err
	}
	if rep.Backward, err = ioa.BackwardLinkages(M); err != nil {
		return rep, err
	}
	log.Info("dispersion skipped", "reason", "single sector")

	return rep, nil
}
