// File: resources/resources.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The resource manager: six lazily-populated slots, compare-and-swap
// publication with discard-on-loss, client colocation and selector
// aliasing. Acquisition never blocks on I/O; at worst it constructs one
// group and retries a failed publish by re-reading the slot.

package resources

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ygrebnov/errorc"
	"go.uber.org/zap"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/core/runloop"
	"github.com/momentics/hioload-loops/reactor"
)

// Resources implements api.LoopResources. Create with New; never reuse an
// instance after its disposal completed.
type Resources struct {
	prefix      string
	daemon      bool
	pinCPUs     bool
	workerCount int
	selectCount int
	log         *zap.Logger
	clk         clock.Clock

	// counter names every loop of this instance, strictly increasing
	// across all groups, never reused.
	counter atomic.Int64

	serverLoops       atomic.Pointer[runloop.Group]
	nativeServerLoops atomic.Pointer[runloop.Group]
	clientLoops       atomic.Pointer[colocated]
	nativeClientLoops atomic.Pointer[colocated]

	// Selector slots. Without a distinct select count these alias the
	// worker slots: same slot, not a copy.
	serverSelectLoops *atomic.Pointer[runloop.Group]
	nativeSelectLoops *atomic.Pointer[runloop.Group]
	ownSelect         bool

	running  atomic.Bool
	disposal atomic.Pointer[disposal]
}

var _ api.LoopResources = (*Resources)(nil)

// New constructs a Resources instance with the given loop-name prefix.
func New(prefix string, opts ...Option) (*Resources, error) {
	if prefix == "" {
		return nil, errorc.With(api.ErrInvalidConfig,
			errorc.String("prefix", "must not be empty"))
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &Resources{
		prefix:      prefix,
		daemon:      cfg.daemon,
		pinCPUs:     cfg.pinCPUs,
		workerCount: cfg.workerCount,
		selectCount: cfg.selectCount,
		log:         cfg.log,
		clk:         cfg.clk,
	}
	r.running.Store(true)

	if cfg.selectCount > 0 {
		r.ownSelect = true
		r.serverSelectLoops = new(atomic.Pointer[runloop.Group])
		r.nativeSelectLoops = new(atomic.Pointer[runloop.Group])
	} else {
		r.selectCount = cfg.workerCount
		r.serverSelectLoops = &r.serverLoops
		r.nativeSelectLoops = &r.nativeServerLoops
	}
	return r, nil
}

// OnClient returns the client worker group, colocated with the server
// workers of the same backend.
func (r *Resources) OnClient(useNative bool) (api.LoopGroup, error) {
	if useNative && reactor.HasNativeSupport() {
		return r.cacheNativeClientLoops()
	}
	return r.cacheNioClientLoops()
}

// OnServer returns the server worker group for the requested backend.
func (r *Resources) OnServer(useNative bool) (api.LoopGroup, error) {
	if useNative && reactor.HasNativeSupport() {
		return r.cacheNativeServerLoops()
	}
	return r.cacheNioServerLoops()
}

// OnServerSelect returns the acceptor group for the requested backend.
func (r *Resources) OnServerSelect(useNative bool) (api.LoopGroup, error) {
	if useNative && reactor.HasNativeSupport() {
		return r.cacheNativeSelectLoops()
	}
	return r.cacheNioSelectLoops()
}

// IsDisposed reports whether disposal has begun.
func (r *Resources) IsDisposed() bool {
	return !r.running.Load()
}

// DisposeLater returns a deferred disposal of every populated group.
// Constructing it performs no work; shutdown starts when the disposal is
// driven through Done or Await. Disposal is idempotent: later drives
// observe the wave triggered by the first.
func (r *Resources) DisposeLater(quietPeriod, timeout time.Duration) api.Disposal {
	return newDisposal(r, quietPeriod, timeout)
}

func (r *Resources) String() string {
	return fmt.Sprintf("Resources{prefix=%s, daemon=%t, selectCount=%d, workerCount=%d}",
		r.prefix, r.daemon, r.selectCount, r.workerCount)
}

func (r *Resources) factory(role string) *runloop.Factory {
	return runloop.NewFactory(r.prefix, role, r.daemon, &r.counter)
}

func (r *Resources) groupOptions() []runloop.Option {
	return []runloop.Option{
		runloop.WithClock(r.clk),
		runloop.WithLogger(r.log),
		runloop.WithCPUPinning(r.pinCPUs),
	}
}

// discard releases a candidate group that lost a publication race. Zero
// grace: the duplicate never received work. Failures are logged, never
// surfaced, since the caller already succeeded with the winning handle.
func (r *Resources) discard(g *runloop.Group) {
	c := g.ShutdownGracefully(0, 0)
	go func() {
		<-c.Done()
		if err := c.Err(); err != nil {
			r.log.Warn("failed to stop duplicate group",
				zap.String("group", g.Name()), zap.Error(err))
		}
	}()
}

func (r *Resources) cacheNioServerLoops() (*runloop.Group, error) {
	for {
		if g := r.serverLoops.Load(); g != nil {
			return g, nil
		}
		ng := runloop.NewGroup(r.workerCount, r.factory("nio"), r.groupOptions()...)
		if r.serverLoops.CompareAndSwap(nil, ng) {
			return ng, nil
		}
		r.discard(ng)
	}
}

func (r *Resources) cacheNioSelectLoops() (*runloop.Group, error) {
	if !r.ownSelect {
		return r.cacheNioServerLoops()
	}
	for {
		if g := r.serverSelectLoops.Load(); g != nil {
			return g, nil
		}
		ng := runloop.NewGroup(r.selectCount, r.factory("select-nio"), r.groupOptions()...)
		if r.serverSelectLoops.CompareAndSwap(nil, ng) {
			return ng, nil
		}
		r.discard(ng)
	}
}

func (r *Resources) cacheNioClientLoops() (api.LoopGroup, error) {
	for {
		if c := r.clientLoops.Load(); c != nil {
			return c, nil
		}
		server, err := r.cacheNioServerLoops()
		if err != nil {
			return nil, err
		}
		cand := newColocated(server)
		if r.clientLoops.CompareAndSwap(nil, cand) {
			return cand, nil
		}
		// Do not stop cand: it borrows the server loops.
	}
}

func (r *Resources) cacheNativeServerLoops() (*runloop.Group, error) {
	for {
		if g := r.nativeServerLoops.Load(); g != nil {
			return g, nil
		}
		ng, err := runloop.NewNativeGroup(r.workerCount,
			r.factory(reactor.Name()), r.groupOptions()...)
		if err != nil {
			return nil, err
		}
		if r.nativeServerLoops.CompareAndSwap(nil, ng) {
			return ng, nil
		}
		r.discard(ng)
	}
}

func (r *Resources) cacheNativeSelectLoops() (*runloop.Group, error) {
	if !r.ownSelect {
		return r.cacheNativeServerLoops()
	}
	for {
		if g := r.nativeSelectLoops.Load(); g != nil {
			return g, nil
		}
		ng, err := runloop.NewNativeGroup(r.selectCount,
			r.factory("select-"+reactor.Name()), r.groupOptions()...)
		if err != nil {
			return nil, err
		}
		if r.nativeSelectLoops.CompareAndSwap(nil, ng) {
			return ng, nil
		}
		r.discard(ng)
	}
}

func (r *Resources) cacheNativeClientLoops() (api.LoopGroup, error) {
	for {
		if c := r.nativeClientLoops.Load(); c != nil {
			return c, nil
		}
		server, err := r.cacheNativeServerLoops()
		if err != nil {
			return nil, err
		}
		cand := newColocated(server)
		if r.nativeClientLoops.CompareAndSwap(nil, cand) {
			return cand, nil
		}
		// Do not stop cand: it borrows the native server loops.
	}
}

// snapshot returns the distinct owning groups populated at this instant.
// Aliased selector slots are skipped so no group appears twice; colocated
// client handles own nothing and contribute no work.
func (r *Resources) snapshot() []*runloop.Group {
	groups := make([]*runloop.Group, 0, 4)
	add := func(g *runloop.Group) {
		if g != nil {
			groups = append(groups, g)
		}
	}
	add(r.serverLoops.Load())
	add(r.nativeServerLoops.Load())
	if r.ownSelect {
		add(r.serverSelectLoops.Load())
		add(r.nativeSelectLoops.Load())
	}
	return groups
}
