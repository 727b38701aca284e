// File: core/runloop/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// taskRing is a bounded MPMC ring for scheduled tasks with atomic
// head/tail, padded to prevent false sharing. The fast path of Schedule
// lands here; overflow spills into the loop's unbounded queue.

package runloop

import (
	"sync/atomic"

	"github.com/momentics/hioload-loops/api"
)

type ringCell struct {
	sequence atomic.Uint64
	task     api.Task
}

// taskRing is a lock-free bounded ring buffer of tasks.
type taskRing struct {
	head  uint64
	_     [64]byte // Padding for hot/cold separation
	tail  uint64
	_     [64]byte // Padding
	mask  uint64
	cells []ringCell
}

// newTaskRing allocates a ring of power-of-two size.
func newTaskRing(size uint64) *taskRing {
	if size < 2 {
		size = 2
	}
	if size&(size-1) != 0 {
		// Round up to next power of two
		n := size - 1
		n |= n >> 1
		n |= n >> 2
		n |= n >> 4
		n |= n >> 8
		n |= n >> 16
		n |= n >> 32
		size = n + 1
	}
	r := &taskRing{
		mask:  size - 1,
		cells: make([]ringCell, size),
	}
	for i := range r.cells {
		r.cells[i].sequence.Store(uint64(i))
	}
	return r
}

// enqueue adds a task; returns false if full.
func (r *taskRing) enqueue(task api.Task) bool {
	for {
		tail := atomic.LoadUint64(&r.tail)
		index := tail & r.mask
		c := &r.cells[index]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&r.tail, tail, tail+1) {
				c.task = task
				c.sequence.Store(tail + 1)
				return true
			}
		} else if dif < 0 {
			return false // full
		}
	}
}

// dequeue removes and returns a task; ok false if empty.
func (r *taskRing) dequeue() (api.Task, bool) {
	for {
		head := atomic.LoadUint64(&r.head)
		index := head & r.mask
		c := &r.cells[index]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&r.head, head, head+1) {
				task := c.task
				c.task = nil
				c.sequence.Store(head + r.mask + 1)
				return task, true
			}
		} else if dif < 0 {
			return nil, false // empty
		}
	}
}
