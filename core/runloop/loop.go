// File: core/runloop/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A loop is one event-loop worker: a goroutine locked to an OS thread,
// draining its task ring and overflow queue, optionally polling a native
// reactor between tasks. Loops are created and destroyed only by their
// Group.

package runloop

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/hioload-loops/affinity"
	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/reactor"
)

const (
	// reactorPollTimeout bounds one native poll and doubles as the idle
	// sleep of native loops.
	reactorPollTimeout = time.Millisecond

	// eventBatch is the per-poll reactor event buffer size.
	eventBatch = 64
)

type loop struct {
	name        string
	group       *Group
	inbox       *taskRing
	overflow    *queue.Queue
	overflowMu  sync.Mutex
	overflowLen atomic.Int64
	pending     atomic.Int64
	notify     chan struct{}
	quit       chan struct{}
	done       chan struct{}
	rx         reactor.EventReactor // nil for the portable backend
	cpu        int                  // -1: no pinning
}

func newLoop(name string, g *Group, rx reactor.EventReactor, cpu int, ringSize uint64) *loop {
	return &loop{
		name:     name,
		group:    g,
		inbox:    newTaskRing(ringSize),
		overflow: queue.New(),
		notify:   make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		rx:       rx,
		cpu:      cpu,
	}
}

// enqueue hands a task to this loop. Fast path is the lock-free ring.
// A full ring spills into the unbounded overflow queue, and while the
// overflow holds tasks every new enqueue joins it behind them so per-loop
// FIFO order survives the spill.
func (l *loop) enqueue(task api.Task) {
	l.pending.Add(1)
	if l.overflowLen.Load() > 0 || !l.inbox.enqueue(task) {
		l.overflowMu.Lock()
		l.overflow.Add(task)
		l.overflowLen.Add(1)
		l.overflowMu.Unlock()
	}
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// nextTask drains the ring ahead of the overflow: ring tasks arrived
// before anything spilled behind them.
func (l *loop) nextTask() (api.Task, bool) {
	if task, ok := l.inbox.dequeue(); ok {
		return task, true
	}
	l.overflowMu.Lock()
	defer l.overflowMu.Unlock()
	if l.overflow.Length() > 0 {
		task := l.overflow.Remove().(api.Task)
		l.overflowLen.Add(-1)
		return task, true
	}
	return nil, false
}

// run is the loop body. It exits on the quit signal, dropping whatever is
// still queued; graceful draining is the Group's responsibility.
func (l *loop) run() {
	defer close(l.done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	id := registerLoop(l.name)
	defer unregisterLoop(id)

	if l.cpu >= 0 {
		if err := affinity.PinCurrentThread(l.cpu); err != nil {
			l.group.log.Debug("cpu pin failed",
				zap.String("loop", l.name), zap.Error(err))
		}
	}
	if l.rx != nil {
		defer l.rx.Close()
	}

	var events []reactor.Event
	if l.rx != nil {
		events = make([]reactor.Event, eventBatch)
	}

	for {
		select {
		case <-l.quit:
			return
		default:
		}

		if task, ok := l.nextTask(); ok {
			l.exec(task)
			continue
		}

		if l.rx != nil {
			l.pollReactor(events)
			continue
		}

		select {
		case <-l.notify:
		case <-l.quit:
			return
		}
	}
}

func (l *loop) pollReactor(events []reactor.Event) {
	n, err := l.rx.Wait(events, reactorPollTimeout)
	if err != nil {
		l.group.log.Warn("reactor wait failed",
			zap.String("loop", l.name), zap.Error(err))
		l.group.clk.Sleep(reactorPollTimeout)
		return
	}
	if n == 0 {
		return
	}
	sink, _ := l.group.sink.Load().(func(reactor.Event))
	if sink == nil {
		return
	}
	for i := 0; i < n; i++ {
		sink(events[i])
	}
}

func (l *loop) exec(task api.Task) {
	l.safeRun(task)
	l.pending.Add(-1)
	l.group.touch()
}

func (l *loop) safeRun(task api.Task) {
	defer func() {
		if r := recover(); r != nil {
			l.group.log.Error("task panicked",
				zap.String("loop", l.name), zap.Any("panic", r))
		}
	}()
	task()
}
