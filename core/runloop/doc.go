// File: core/runloop/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package runloop implements the loop groups handed out by LoopResources:
// fixed-size sets of single-purpose event-loop goroutines, each pinned to
// an OS thread, draining a lock-free task ring with an unbounded overflow
// queue, optionally polling a native reactor alongside scheduled work.
//
// Groups shut down gracefully: intake stops immediately, queued work is
// given a quiet period to finish, and loops are force-stopped at the hard
// timeout. Shutdown is idempotent; every caller observes one Completion.
package runloop
