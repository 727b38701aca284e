// File: core/runloop/factory.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Factory produces deterministic, debuggable loop identities. One counter
// is shared by every factory derived from the same LoopResources instance,
// so loop numbers are strictly increasing and never reused across groups.

package runloop

import (
	"fmt"
	"sync/atomic"
)

// Factory names the loops of one group: <prefix>-<role>-<n>.
type Factory struct {
	prefix  string
	daemon  bool
	counter *atomic.Int64
}

// NewFactory returns a factory for the given role. counter must outlive
// every group created with the factory; nil allocates a private counter.
func NewFactory(prefix, role string, daemon bool, counter *atomic.Int64) *Factory {
	if counter == nil {
		counter = new(atomic.Int64)
	}
	return &Factory{
		prefix:  prefix + "-" + role,
		daemon:  daemon,
		counter: counter,
	}
}

// NewName reserves the next loop name.
func (f *Factory) NewName() string {
	return fmt.Sprintf("%s-%d", f.prefix, f.counter.Add(1))
}

// Prefix returns the role-qualified prefix, e.g. "proxy-nio".
func (f *Factory) Prefix() string { return f.prefix }

// Daemon reports the background flag inherited from configuration. Loop
// goroutines cannot outlive the process either way; the flag is carried
// for parity with thread-based runtimes and surfaced in diagnostics.
func (f *Factory) Daemon() bool { return f.daemon }
