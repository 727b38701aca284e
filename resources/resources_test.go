// File: resources/resources_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package resources

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/core/runloop"
	"github.com/momentics/hioload-loops/reactor"
)

func newTestResources(t *testing.T, opts ...Option) *Resources {
	t.Helper()
	r, err := New("test", append([]Option{WithWorkerCount(2)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = r.DisposeLater(0, time.Second).Await(ctx)
	})
	return r
}

// All concurrent racers to one slot must converge on one reference-identical
// handle.
func TestOnServer_ConcurrentCallersGetOneGroup(t *testing.T) {
	r := newTestResources(t)

	const callers = 32
	var (
		start   = make(chan struct{})
		wg      sync.WaitGroup
		handles [callers]api.LoopGroup
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			g, err := r.OnServer(false)
			require.NoError(t, err)
			handles[i] = g
		}(i)
	}
	close(start)
	wg.Wait()

	winner := r.serverLoops.Load()
	require.NotNil(t, winner)
	for i := 0; i < callers; i++ {
		assert.Same(t, winner, handles[i], "caller %d observed a different handle", i)
	}
}

// A candidate group that loses the publication race is stopped with zero
// grace while the published winner keeps serving.
func TestDiscard_StopsLoserLeavesWinnerRunning(t *testing.T) {
	r := newTestResources(t)

	winner, err := r.cacheNioServerLoops()
	require.NoError(t, err)

	loser := runloop.NewGroup(1, r.factory("nio"), r.groupOptions()...)
	r.discard(loser)

	c := loser.ShutdownGracefully(0, 0)
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("discarded group did not stop")
	}
	require.NoError(t, c.Err())
	assert.True(t, loser.IsShutdown())

	assert.False(t, winner.IsShutdown(), "discard must not touch the winner")
	ran := make(chan struct{})
	require.NoError(t, winner.Schedule(func() { close(ran) }))
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("winner stopped serving after a discard")
	}
}

// A colocated candidate that loses the race borrows the server loops, so
// dropping it (or shutting it down) must leave the owner untouched.
func TestDiscard_LosingColocatedLeavesOwnerUntouched(t *testing.T) {
	r := newTestResources(t)

	owner, err := r.cacheNioServerLoops()
	require.NoError(t, err)

	published := newColocated(owner)
	require.True(t, r.clientLoops.CompareAndSwap(nil, published))

	client, err := r.OnClient(false)
	require.NoError(t, err)
	assert.Same(t, api.LoopGroup(published), client)

	loser := newColocated(owner)
	c := loser.ShutdownGracefully(0, 0)
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("borrowed shutdown must complete immediately")
	}
	require.NoError(t, c.Err())

	assert.False(t, owner.IsShutdown(), "losing colocated candidate must not stop the owner")
	require.NoError(t, owner.Schedule(func() {}))
}

func TestOnClient_ColocatedWithServerWorkers(t *testing.T) {
	r := newTestResources(t)

	server, err := r.OnServer(false)
	require.NoError(t, err)

	client, err := r.OnClient(false)
	require.NoError(t, err)

	co, ok := client.(*colocated)
	require.True(t, ok, "client handle must be a borrowed wrapper")
	assert.Same(t, server, api.LoopGroup(co.owner), "client must borrow the server loops")
	assert.Equal(t, server.Size(), client.Size())

	// Work scheduled through the client handle runs on the server loops.
	name := make(chan string, 1)
	require.NoError(t, client.Schedule(func() {
		n, _ := runloop.CurrentLoop()
		name <- n
	}))
	select {
	case n := <-name:
		assert.True(t, strings.HasPrefix(n, "test-nio-"),
			"expected a server worker loop, got %q", n)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task did not run")
	}
}

func TestOnClient_CannotShutDownSharedLoops(t *testing.T) {
	r := newTestResources(t)

	server, err := r.OnServer(false)
	require.NoError(t, err)
	client, err := r.OnClient(false)
	require.NoError(t, err)

	c := client.ShutdownGracefully(0, 0)
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("borrowed shutdown must complete immediately")
	}
	require.NoError(t, c.Err())
	assert.False(t, server.IsShutdown(), "borrowed shutdown must not touch the owner")
	require.NoError(t, server.Schedule(func() {}))
}

func TestOnServerSelect_AliasedWithoutSelectCount(t *testing.T) {
	r := newTestResources(t)

	server, err := r.OnServer(false)
	require.NoError(t, err)
	sel, err := r.OnServerSelect(false)
	require.NoError(t, err)
	assert.Same(t, server, sel, "selector must be the identical worker group")
}

func TestOnServerSelect_DistinctWithSelectCount(t *testing.T) {
	r := newTestResources(t, WithSelectCount(1))

	server, err := r.OnServer(false)
	require.NoError(t, err)
	sel, err := r.OnServerSelect(false)
	require.NoError(t, err)

	assert.NotSame(t, server, sel)
	assert.Equal(t, 2, server.Size())
	assert.Equal(t, 1, sel.Size())
	assert.True(t, strings.Contains(sel.Name(), "select-nio"))
}

func TestOnServer_NativeBackendSelection(t *testing.T) {
	r := newTestResources(t)

	g, err := r.OnServer(true)
	if reactor.HasNativeSupport() {
		require.NoError(t, err)
		assert.Contains(t, g.Name(), reactor.Name(),
			"native acquisition must use the native backend role")

		nio, err := r.OnServer(false)
		require.NoError(t, err)
		assert.NotSame(t, g, nio, "native and portable slots are independent")
	} else {
		// Without native support the portable group is returned.
		require.NoError(t, err)
		assert.Contains(t, g.Name(), "nio")
	}
}

func TestDisposeLater_ConcurrentSingleWave(t *testing.T) {
	r, err := New("test", WithWorkerCount(2))
	require.NoError(t, err)

	_, err = r.OnServer(false)
	require.NoError(t, err)
	_, err = r.OnClient(false)
	require.NoError(t, err)

	d1 := r.DisposeLater(0, 5*time.Second)
	d2 := r.DisposeLater(0, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var wg sync.WaitGroup
	for _, d := range []api.Disposal{d1, d2} {
		wg.Add(1)
		go func(d api.Disposal) {
			defer wg.Done()
			assert.NoError(t, d.Await(ctx))
		}(d)
	}
	wg.Wait()

	assert.True(t, r.IsDisposed())
	assert.True(t, r.serverLoops.Load().IsShutdown())
}

func TestDisposeLater_NothingPopulatedCompletesImmediately(t *testing.T) {
	r, err := New("test")
	require.NoError(t, err)

	d := r.DisposeLater(time.Hour, time.Hour)
	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("empty disposal must complete without waiting")
	}
	require.NoError(t, d.Err())
	assert.True(t, r.IsDisposed())
}

func TestDisposeLater_ConstructionPerformsNoWork(t *testing.T) {
	r, err := New("test", WithWorkerCount(1))
	require.NoError(t, err)
	_, err = r.OnServer(false)
	require.NoError(t, err)

	_ = r.DisposeLater(0, time.Second) // never driven
	assert.False(t, r.IsDisposed(), "undriven disposal must not flip the flag")
	assert.False(t, r.serverLoops.Load().IsShutdown())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, r.DisposeLater(0, time.Second).Await(ctx))
}

func TestIsDisposed_FlipsWhenDisposalBegins(t *testing.T) {
	r, err := New("test", WithWorkerCount(1))
	require.NoError(t, err)

	assert.False(t, r.IsDisposed())
	d := r.DisposeLater(0, time.Second)
	d.Done() // drive
	assert.True(t, r.IsDisposed(), "flag must flip as soon as disposal is driven")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, d.Await(ctx))
}

// The fully-specified shared scenario: four workers, aliased selectors,
// colocated clients, one set of loops torn down exactly once.
func TestSharedScenario(t *testing.T) {
	r, err := New("test", WithWorkerCount(4), WithDaemon(true))
	require.NoError(t, err)

	server, err := r.OnServer(false)
	require.NoError(t, err)
	require.Equal(t, 4, server.Size())
	require.Equal(t,
		[]string{"test-nio-1", "test-nio-2", "test-nio-3", "test-nio-4"},
		r.serverLoops.Load().LoopNames())

	sel, err := r.OnServerSelect(false)
	require.NoError(t, err)
	assert.Same(t, server, sel)

	client, err := r.OnClient(false)
	require.NoError(t, err)
	assert.Equal(t, 4, client.Size())
	assert.Equal(t, int64(4), r.counter.Load(), "colocation must create zero new loops")

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, r.DisposeLater(0, 5*time.Second).Await(ctx))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.True(t, server.IsShutdown())
}
