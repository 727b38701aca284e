// File: core/runloop/completion.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package runloop

import (
	"sync"

	"github.com/momentics/hioload-loops/api"
)

// completion implements api.Completion. complete is idempotent.
type completion struct {
	done chan struct{}
	err  error
	once sync.Once
}

var _ api.Completion = (*completion)(nil)

func newCompletion() *completion {
	return &completion{done: make(chan struct{})}
}

func (c *completion) complete(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Done returns a channel closed once the operation finished.
func (c *completion) Done() <-chan struct{} { return c.done }

// Err returns the terminal error; meaningful only after Done is closed.
func (c *completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Completed returns an already-finished Completion carrying err. Borrowed
// handles and repeat disposals report through it.
func Completed(err error) api.Completion {
	c := newCompletion()
	c.complete(err)
	return c
}
