// File: resources/colocated.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// colocated is the borrowed pool handle: client subsystems schedule onto
// the very loops a server group owns, without the capability to tear them
// down. Only the owning server slot's shutdown releases the loops.

package resources

import (
	"time"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/core/runloop"
)

type colocated struct {
	owner *runloop.Group
}

var _ api.LoopGroup = (*colocated)(nil)

func newColocated(owner *runloop.Group) *colocated {
	return &colocated{owner: owner}
}

// Schedule delegates to the owning group's loops.
func (c *colocated) Schedule(task api.Task) error {
	return c.owner.Schedule(task)
}

// Size returns the owning group's loop count.
func (c *colocated) Size() int { return c.owner.Size() }

// Name returns the owning group's name; colocated handles add no loops.
func (c *colocated) Name() string { return c.owner.Name() }

// IsShutdown mirrors the owning group's state.
func (c *colocated) IsShutdown() bool { return c.owner.IsShutdown() }

// ShutdownGracefully completes immediately without touching the owner.
// Borrowed handles carry no shutdown capability.
func (c *colocated) ShutdownGracefully(quietPeriod, timeout time.Duration) api.Completion {
	return runloop.Completed(nil)
}
