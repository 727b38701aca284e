// File: api/group.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LoopGroup is the pool handle every transport schedules work through.

package api

import "time"

// Task is a unit of non-blocking work executed on an event-loop goroutine.
type Task func()

// Completion signals the outcome of an asynchronous operation.
// Err is meaningful only after the Done channel is closed.
type Completion interface {
	// Done is closed once the operation has finished, successfully or not.
	Done() <-chan struct{}

	// Err returns the terminal error of the operation, nil on success.
	Err() error
}

// LoopGroup is an opaque handle to a running group of single-purpose
// event-loop workers. Handles are shared, immutable references once
// published; the underlying group mutates only through its own shutdown.
type LoopGroup interface {
	// Schedule enqueues task onto one of the group's loops.
	// Returns ErrGroupShutdown once the group stopped accepting work.
	Schedule(task Task) error

	// Size returns the number of loops in the group.
	Size() int

	// Name returns the group's role-qualified name, e.g. "proxy-nio".
	Name() string

	// IsShutdown reports whether the group stopped accepting new work.
	IsShutdown() bool

	// ShutdownGracefully stops intake, lets queued work finish within
	// quietPeriod and force-stops all loops at timeout. Idempotent: every
	// call observes the same Completion. A borrowed (colocated) group
	// completes immediately without touching the underlying loops.
	ShutdownGracefully(quietPeriod, timeout time.Duration) Completion
}
