// SPDX-License-Identifier: MIT

// Package parallel holds the execution context shared by fio's analyses.
//
// A Pool is configured once with a thread budget (0 means all logical CPUs)
// and then serves every fan-out. Reconfiguration is rejected with a typed
// StatusAlreadyConfigured plus ErrAlreadyConfigured and logged at WARN; the
// original budget stays in force.
//
// Executor abstracts "run n independent tasks". *Pool implements it with
// errgroup and a concurrency limit; Sequential runs tasks in order on the
// caller's goroutine. Chunks supports reductions where each worker owns a
// private partial result that is folded in a fixed order afterwards.
package parallel
