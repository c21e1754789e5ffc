// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Functional options shared by every analysis: the executor tasks fan out
//     to, a structured logger, the inversion backend and the rank-one switch.
//   - Defaults keep the core side-effect free: records go to a discard
//     handler and tasks run on parallel.Default().
//
// AI-Hints:
//   - Tests inject parallel.Sequential() for bitwise-reproducible reductions.
//   - WithInverter accepts any Inverter; InverterFunc adapts a closure (call
//     counters, alternate solvers).

package ioa

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/fio/matrix"
	"github.com/katalvlaran/fio/parallel"
)

// Inverter computes M⁻¹ for a square M.
// Implementations must be safe for concurrent use; extraction and
// field-of-influence call Invert from several workers at once.
type Inverter interface {
	Invert(m matrix.Matrix) (*matrix.Dense, error)
}

// InverterFunc adapts an ordinary function to the Inverter interface.
type InverterFunc func(m matrix.Matrix) (*matrix.Dense, error)

// Invert calls f(m).
func (f InverterFunc) Invert(m matrix.Matrix) (*matrix.Dense, error) { return f(m) }

// LUInverter inverts through matrix.Inverse (LU with partial pivoting).
// Options are forwarded to the factorization (e.g. matrix.WithPivotTolerance).
type LUInverter struct {
	Options []matrix.Option
}

// Invert returns m⁻¹ or an error wrapping matrix.ErrSingular.
func (l LUInverter) Invert(m matrix.Matrix) (*matrix.Dense, error) {
	return matrix.Inverse(m, l.Options...)
}

// Option configures a single analysis call.
type Option func(*options)

type options struct {
	exec     parallel.Executor
	logger   *slog.Logger
	inverter Inverter
	rankOne  bool
}

// WithExecutor fans tasks out to e instead of parallel.Default().
func WithExecutor(e parallel.Executor) Option {
	return func(o *options) { o.exec = e }
}

// WithLogger routes debug records of the analysis to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithInverter replaces the default LUInverter.
func WithInverter(inv Inverter) Option {
	return func(o *options) { o.inverter = inv }
}

// WithRankOneUpdate switches BackwardExtraction, ForwardExtraction and
// FieldOfInfluence from one full inversion per perturbation to a
// Sherman–Morrison update of the base inverse: O(n²) per perturbation
// instead of O(n³). Results agree with full re-inversion up to rounding.
func WithRankOneUpdate() Option {
	return func(o *options) { o.rankOne = true }
}

// gatherOptions applies setters on top of defaults (last-writer-wins, nil-safe).
func gatherOptions(user ...Option) options {
	var o options
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.inverter == nil {
		o.inverter = LUInverter{}
	}

	return o
}

// executor resolves the configured executor, defaulting to the process pool.
func (o options) executor() parallel.Executor {
	if o.exec != nil {
		return o.exec
	}

	return parallel.Default()
}
