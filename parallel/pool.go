// SPDX-License-Identifier: MIT
// Package: parallel
//
// Purpose:
//   - Own the process-wide worker budget used by every data-parallel analysis.
//   - Model configuration as a one-way state machine
//     Uninitialized → Configured(workers); later attempts are reported, not applied.
//
// Determinism & Policy:
//   - The worker count never changes after the first successful Configure.
//   - ForEach joins every started task before returning; it has no cancellation.
//
// AI-Hints:
//   - Pass a *Pool (or Sequential()) explicitly to analyses that accept an Executor.
//   - Treat ErrAlreadyConfigured as informational: the returned status tells the
//     caller which pool is serving.

package parallel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Status reports the outcome of a Configure call and the pool state.
type Status int

const (
	// StatusUninitialized: no worker budget has been fixed yet.
	StatusUninitialized Status = iota
	// StatusConfigured: this call fixed the worker budget.
	StatusConfigured
	// StatusAlreadyConfigured: a budget was fixed earlier; the request was ignored.
	StatusAlreadyConfigured
)

// String returns a stable lowercase label.
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusConfigured:
		return "configured"
	case StatusAlreadyConfigured:
		return "already_configured"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var (
	// ErrAlreadyConfigured accompanies StatusAlreadyConfigured. It is non-fatal:
	// the existing pool keeps serving.
	ErrAlreadyConfigured = errors.New("parallel: pool already configured")

	// ErrInvalidThreads is returned for a negative thread budget.
	ErrInvalidThreads = errors.New("parallel: max threads must be >= 0")

	// ErrNotConfigured is returned by ForEach on a pool that was never configured.
	ErrNotConfigured = errors.New("parallel: pool not configured")
)

// Pool is a bounded fan-out executor backed by errgroup.
// The zero value is not usable; build one with NewPool.
type Pool struct {
	mu      sync.Mutex
	workers int // 0 while uninitialized
	logger  *slog.Logger
}

var _ Executor = (*Pool)(nil)

// PoolOption customizes a Pool at construction.
type PoolOption func(*Pool)

// WithLogger routes pool lifecycle records to l. A nil logger is ignored.
func WithLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPool returns an unconfigured pool. Records are discarded unless WithLogger is given.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, set := range opts {
		if set != nil {
			set(p)
		}
	}

	return p
}

// Configure fixes the worker budget exactly once.
//
// Implementation:
//   - Stage 1: reject maxThreads < 0 with ErrInvalidThreads (state unchanged).
//   - Stage 2: if already configured, log WARN and return
//     (StatusAlreadyConfigured, ErrAlreadyConfigured).
//   - Stage 3: resolve 0 to runtime.NumCPU(), store, log INFO, return StatusConfigured.
//
// Complexity: O(1).
func (p *Pool) Configure(maxThreads int) (Status, error) {
	if maxThreads < 0 {
		return p.Status(), fmt.Errorf("Configure(%d): %w", maxThreads, ErrInvalidThreads)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.workers > 0 {
		p.logger.Warn("worker pool already configured; request ignored",
			"workers", p.workers, "requested", maxThreads)
		return StatusAlreadyConfigured, ErrAlreadyConfigured
	}
	n := maxThreads
	if n == 0 {
		n = runtime.NumCPU()
	}
	p.workers = n
	p.logger.Info("worker pool configured", "workers", n, "requested", maxThreads)

	return StatusConfigured, nil
}

// Status reports Uninitialized or Configured.
func (p *Pool) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.workers == 0 {
		return StatusUninitialized
	}

	return StatusConfigured
}

// Workers returns the configured budget, or 0 while uninitialized.
func (p *Pool) Workers() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.workers
}

// ForEach runs fn(i) for i in [0,n) with at most Workers() goroutines in flight.
//
// Behavior highlights:
//   - Returns the first error after every started task has finished.
//   - Tasks not yet started when an error is observed are skipped.
//   - n ≤ 0 is a no-op.
//
// Errors:
//   - ErrNotConfigured, or the first error returned by fn.
func (p *Pool) ForEach(n int, fn func(i int) error) error {
	workers := p.Workers()
	if workers == 0 {
		return ErrNotConfigured
	}
	if n <= 0 {
		return nil
	}
	if workers == 1 || n == 1 {
		return sequential{}.ForEach(n, fn)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	var failed atomic.Bool
	for i := 0; i < n; i++ {
		if failed.Load() {
			break
		}
		i := i
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			if err := fn(i); err != nil {
				failed.Store(true)
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// ---------- process-wide pool ----------

var defaultPool = NewPool()

// Configure fixes the process-wide worker budget. See (*Pool).Configure.
func Configure(maxThreads int) (Status, error) {
	return defaultPool.Configure(maxThreads)
}

// SetLogger attaches l to the process-wide pool. Call it before Configure
// so the configuration record is captured.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	defaultPool.mu.Lock()
	defaultPool.logger = l
	defaultPool.mu.Unlock()
}

// Default returns the process-wide pool, configuring it with runtime.NumCPU()
// workers on first use if nobody called Configure.
func Default() *Pool {
	if defaultPool.Status() == StatusUninitialized {
		// A concurrent Configure may win the race; either way the pool ends up configured.
		_, _ = defaultPool.Configure(0)
	}

	return defaultPool
}
