// File: api/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LoopResources is the shared event-loop acquisition contract consumed by
// every client and server transport in a process.

package api

import (
	"context"
	"time"
)

// Disposal represents the act of disposing a LoopResources instance. It is
// constructed cheaply and performs no work until driven through Done or
// Await; the first drive triggers exactly one shutdown wave across all
// populated loop groups, later drives observe the same wave.
type Disposal interface {
	// Done drives the disposal if not yet driven and returns a channel
	// closed once every populated group finished shutting down.
	Done() <-chan struct{}

	// Await drives the disposal and blocks until it completes or ctx ends.
	Await(ctx context.Context) error

	// Err returns the aggregated shutdown error, nil unless at least one
	// group failed to stop cleanly. Meaningful only after Done is closed.
	Err() error
}

// LoopResources provisions, colocates and tears down shared loop groups.
// All operations are safe for concurrent use by arbitrarily many callers.
type LoopResources interface {
	// OnClient returns the client worker group. Client groups are colocated
	// with the corresponding server group: they schedule onto the same
	// loops and carry no independent shutdown capability. When useNative is
	// set and the platform has a native backend, the native variant is
	// returned, otherwise the portable one.
	OnClient(useNative bool) (LoopGroup, error)

	// OnServer returns the server worker group for the requested backend,
	// creating it on first call.
	OnServer(useNative bool) (LoopGroup, error)

	// OnServerSelect returns the acceptor group for the requested backend.
	// Without a distinct selector count it is the identical group returned
	// by OnServer.
	OnServerSelect(useNative bool) (LoopGroup, error)

	// IsDisposed reports whether disposal has begun, regardless of whether
	// in-flight shutdowns finished.
	IsDisposed() bool

	// DisposeLater begins or observes graceful shutdown of every populated
	// group. Requesting disposal never blocks the caller.
	DisposeLater(quietPeriod, timeout time.Duration) Disposal
}
