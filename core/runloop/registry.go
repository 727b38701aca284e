// File: core/runloop/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Loop goroutines belong to a non-blocking execution class. Downstream
// code (access logging, schedulers) queries the registry to decide
// whether blocking calls are permitted on the current goroutine.

package runloop

import (
	"sync"

	"github.com/momentics/hioload-loops/internal/gid"
)

// loopRegistry maps goroutine ID -> loop name for live loop goroutines.
var loopRegistry sync.Map

// OnLoop reports whether the calling goroutine is an event-loop goroutine.
func OnLoop() bool {
	_, ok := loopRegistry.Load(gid.ID())
	return ok
}

// CurrentLoop returns the name of the loop running the calling goroutine.
func CurrentLoop() (string, bool) {
	v, ok := loopRegistry.Load(gid.ID())
	if !ok {
		return "", false
	}
	return v.(string), true
}

func registerLoop(name string) uint64 {
	id := gid.ID()
	loopRegistry.Store(id, name)
	return id
}

func unregisterLoop(id uint64) {
	loopRegistry.Delete(id)
}
