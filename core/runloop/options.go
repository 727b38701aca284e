// File: core/runloop/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package runloop

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const defaultRingSize = 1024

type options struct {
	clk      clock.Clock
	log      *zap.Logger
	pinCPUs  bool
	ringSize uint64
}

func defaultOptions() options {
	return options{
		clk:      clock.New(),
		log:      zap.NewNop(),
		ringSize: defaultRingSize,
	}
}

// Option configures a Group at construction.
type Option func(*options)

// WithClock substitutes the wall clock used for shutdown timing.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		if clk != nil {
			o.clk = clk
		}
	}
}

// WithLogger attaches a structured logger. Default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCPUPinning pins each loop's OS thread to a logical CPU, round-robin,
// on platforms supporting affinity control.
func WithCPUPinning(enable bool) Option {
	return func(o *options) { o.pinCPUs = enable }
}

// WithRingSize sets the bounded task ring capacity per loop (rounded up to
// a power of two). Overflow spills into an unbounded queue either way.
func WithRingSize(size uint64) Option {
	return func(o *options) {
		if size > 0 {
			o.ringSize = size
		}
	}
}
