// File: resources/disposal.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The shutdown orchestrator. A disposal is a value representing the act
// of disposing: constructed cheaply, driven at most once. The first drive
// across all disposals of a Resources instance wins the flag flip and
// runs the single shutdown wave; every other disposal observes that wave.

package resources

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-loops/api"
)

type disposal struct {
	r           *Resources
	quietPeriod time.Duration
	timeout     time.Duration

	once sync.Once
	done chan struct{}
	err  error
}

var _ api.Disposal = (*disposal)(nil)

func newDisposal(r *Resources, quietPeriod, timeout time.Duration) *disposal {
	return &disposal{
		r:           r,
		quietPeriod: quietPeriod,
		timeout:     timeout,
		done:        make(chan struct{}),
	}
}

// drive claims or observes the shutdown wave. The flag flip happens
// synchronously so IsDisposed is true the moment a disposal is driven;
// the wave itself runs in the background.
func (d *disposal) drive() {
	d.once.Do(func() {
		if d.r.disposal.CompareAndSwap(nil, d) {
			d.r.running.Store(false)
			go d.run()
		} else {
			go d.observe()
		}
	})
}

// Done drives the disposal and returns its completion channel.
func (d *disposal) Done() <-chan struct{} {
	d.drive()
	return d.done
}

// Await drives the disposal and blocks until completion or ctx ends.
func (d *disposal) Await(ctx context.Context) error {
	d.drive()
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the aggregated shutdown error once Done is closed.
func (d *disposal) Err() error {
	select {
	case <-d.done:
		return d.err
	default:
		return nil
	}
}

// run executes the single shutdown wave: snapshot populated slots after
// the flip, drain each concurrently, complete when all finished. Partial
// failures never abort the remaining groups; they aggregate into err.
func (d *disposal) run() {
	defer close(d.done)

	groups := d.r.snapshot()
	if len(groups) == 0 {
		return
	}
	d.r.log.Info("disposing loop resources",
		zap.String("resources", d.r.String()), zap.Int("groups", len(groups)))

	var (
		mu   sync.Mutex
		errs error
	)
	var eg errgroup.Group
	for _, g := range groups {
		g := g
		eg.Go(func() error {
			c := g.ShutdownGracefully(d.quietPeriod, d.timeout)
			<-c.Done()
			if err := c.Err(); err != nil {
				d.r.log.Warn("group shutdown failed",
					zap.String("group", g.Name()), zap.Error(err))
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", g.Name(), err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait() // outcomes collected above, wave never aborts
	d.err = errs
}

// observe waits for the winning disposal's wave and adopts its outcome.
func (d *disposal) observe() {
	defer close(d.done)
	first := d.r.disposal.Load()
	if first == nil || first == d {
		return
	}
	<-first.done
	d.err = first.err
}
