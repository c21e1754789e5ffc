// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults and functional options.
// This file defines:
//   - documented defaults (constants),
//   - Option / Options (functional options with internal state),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by comparisons.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultPivotTolerance is the magnitude at or below which an LU pivot is
	// treated as degenerate. Zero keeps the classic exact-zero test; partial
	// pivoting already picks the largest candidate in the column.
	DefaultPivotTolerance = 0.0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicPivotInvalid   = "matrix: WithPivotTolerance: tol must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	pivotTol       float64 // >= 0; DefaultPivotTolerance
}

// Epsilon returns the effective comparison tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether the finite-only policy is active.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// PivotTolerance returns the degenerate-pivot threshold used by LU.
func (o Options) PivotTolerance() float64 { return o.pivotTol }

// ---------- Constructors (WithX) ----------

// WithEpsilon sets the numeric tolerance eps used by comparisons.
// Panics with a stable message when eps is negative, NaN or ±Inf.
//
// AI-Hints:
//   - Prefer small positive eps (e.g., 1e-9) for double-precision data.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-only validation.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-only validation.
// Use only in controlled ingestion where NaN/Inf are inspected afterwards.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithPivotTolerance sets the magnitude at or below which a pivot is degenerate.
// Panics when tol is negative, NaN or ±Inf.
//
// AI-Hints:
//   - A tiny positive tol (1e-14) flags numerically singular inputs that would
//     otherwise produce huge but finite entries.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicPivotInvalid)
	}

	return func(o *Options) { o.pivotTol = tol }
}

// NewMatrixOptions builds an Options snapshot from defaults plus setters.
// Complexity: O(k) for k setters.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided Option setters on top of defaults.
// This is the canonical internal entry in api/impl layers.
// Setters apply in order (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		pivotTol:       DefaultPivotTolerance,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
