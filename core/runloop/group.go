// File: core/runloop/group.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Group is the owning pool handle: a fixed set of loops sharing one
// role-qualified name. Work is spread round-robin. Shutdown stops intake
// immediately, waits for a quiet period of no task activity and force
// stops every loop at the hard timeout.

package runloop

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/momentics/hioload-loops/affinity"
	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/reactor"
)

const (
	stateRunning int32 = iota
	stateQuiescing
	stateStopped
)

// forcedExitGrace bounds how long shutdown waits for loop goroutines to
// exit after the force-stop signal. A loop stuck in a blocking task past
// this window surfaces as ErrUncleanShutdown.
const forcedExitGrace = time.Second

var errNilTask = errors.New("runloop: nil task")

// Group implements api.LoopGroup over a fixed set of loops.
type Group struct {
	name   string
	daemon bool
	clk    clock.Clock
	log    *zap.Logger
	loops  []*loop

	next       atomic.Uint64
	state      atomic.Int32
	lastActive atomic.Int64 // unix nanos of the most recent task completion
	sink       atomic.Value // func(reactor.Event)

	shutdownOnce sync.Once
	completion   *completion
}

var _ api.LoopGroup = (*Group)(nil)

// NewGroup starts a portable-backend group of count loops named by f.
func NewGroup(count int, f *Factory, opts ...Option) *Group {
	return newGroup(count, f, nil, opts...)
}

// NewNativeGroup starts a native-backend group; every loop owns one
// platform reactor. Fails when the native primitive cannot be created; no
// loops are started in that case.
func NewNativeGroup(count int, f *Factory, opts ...Option) (*Group, error) {
	if count <= 0 {
		count = 1
	}
	reactors := make([]reactor.EventReactor, count)
	for i := range reactors {
		rx, err := reactor.NewReactor()
		if err != nil {
			for j := 0; j < i; j++ {
				reactors[j].Close()
			}
			return nil, fmt.Errorf("runloop: native backend: %w", err)
		}
		reactors[i] = rx
	}
	return newGroup(count, f, reactors, opts...), nil
}

func newGroup(count int, f *Factory, reactors []reactor.EventReactor, opts ...Option) *Group {
	if count <= 0 {
		count = 1
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Group{
		name:       f.Prefix(),
		daemon:     f.Daemon(),
		clk:        o.clk,
		log:        o.log,
		completion: newCompletion(),
	}
	g.lastActive.Store(g.clk.Now().UnixNano())

	g.loops = make([]*loop, count)
	for i := 0; i < count; i++ {
		var rx reactor.EventReactor
		if reactors != nil {
			rx = reactors[i]
		}
		cpu := -1
		if o.pinCPUs && affinity.Supported() {
			cpu = i % runtime.NumCPU()
		}
		g.loops[i] = newLoop(f.NewName(), g, rx, cpu, o.ringSize)
	}
	for _, l := range g.loops {
		go l.run()
	}
	g.log.Debug("group started",
		zap.String("group", g.name), zap.Int("loops", count))
	return g
}

// Schedule enqueues task onto the next loop, round-robin.
func (g *Group) Schedule(task api.Task) error {
	if task == nil {
		return errNilTask
	}
	if g.state.Load() != stateRunning {
		return api.ErrGroupShutdown
	}
	idx := g.next.Add(1) % uint64(len(g.loops))
	g.loops[idx].enqueue(task)
	return nil
}

// Size returns the number of loops.
func (g *Group) Size() int { return len(g.loops) }

// Name returns the role-qualified group name.
func (g *Group) Name() string { return g.name }

// Daemon reports the background flag inherited from configuration.
func (g *Group) Daemon() bool { return g.daemon }

// LoopNames returns the deterministic names of all loops.
func (g *Group) LoopNames() []string {
	names := make([]string, len(g.loops))
	for i, l := range g.loops {
		names[i] = l.name
	}
	return names
}

// IsShutdown reports whether the group stopped accepting new work.
func (g *Group) IsShutdown() bool {
	return g.state.Load() != stateRunning
}

// SetEventSink installs the consumer of native reactor events. Only
// meaningful for native groups; transports install their dispatch here.
func (g *Group) SetEventSink(sink func(reactor.Event)) {
	g.sink.Store(sink)
}

// ShutdownGracefully stops intake and drains the group. Zero quietPeriod
// and timeout force-stop immediately (used to discard duplicates that lost
// a publication race). Idempotent: every call returns the same Completion.
func (g *Group) ShutdownGracefully(quietPeriod, timeout time.Duration) api.Completion {
	g.shutdownOnce.Do(func() {
		g.state.CompareAndSwap(stateRunning, stateQuiescing)
		go g.drain(quietPeriod, timeout)
	})
	return g.completion
}

func (g *Group) drain(quietPeriod, timeout time.Duration) {
	deadline := g.clk.Now().Add(timeout)

	if quietPeriod > 0 && timeout > 0 {
		tick := g.clk.Ticker(quietPollInterval(quietPeriod))
		defer tick.Stop()
		for !g.quietFor(quietPeriod) && g.clk.Now().Before(deadline) {
			<-tick.C
		}
	}

	g.state.Store(stateStopped)
	for _, l := range g.loops {
		close(l.quit)
	}

	var err error
	graceEnd := g.clk.Now().Add(forcedExitGrace)
	for _, l := range g.loops {
		remain := graceEnd.Sub(g.clk.Now())
		if remain <= 0 {
			remain = time.Millisecond
		}
		select {
		case <-l.done:
		case <-g.clk.After(remain):
			g.log.Warn("loop did not stop in time", zap.String("loop", l.name))
			err = api.ErrUncleanShutdown
		}
	}

	g.log.Debug("group stopped",
		zap.String("group", g.name), zap.Bool("clean", err == nil))
	g.completion.complete(err)
}

// quietFor reports whether all queues drained and no task completed within
// the trailing quiet window.
func (g *Group) quietFor(quiet time.Duration) bool {
	for _, l := range g.loops {
		if l.pending.Load() > 0 {
			return false
		}
	}
	idle := g.clk.Now().UnixNano() - g.lastActive.Load()
	return time.Duration(idle) >= quiet
}

func (g *Group) touch() {
	g.lastActive.Store(g.clk.Now().UnixNano())
}

func quietPollInterval(quiet time.Duration) time.Duration {
	iv := quiet / 8
	if iv < time.Millisecond {
		iv = time.Millisecond
	}
	if iv > 50*time.Millisecond {
		iv = 50 * time.Millisecond
	}
	return iv
}
