// File: resources/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Construction-time configuration of a Resources instance. Configuration
// is immutable after New; groups are never resized or replaced.

package resources

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ygrebnov/errorc"
	"go.uber.org/zap"

	"github.com/momentics/hioload-loops/api"
)

const (
	// DefaultShutdownQuietPeriod is the grace given to in-flight work when
	// disposal parameters are not supplied explicitly.
	DefaultShutdownQuietPeriod = 2 * time.Second

	// DefaultShutdownTimeout is the hard disposal cutoff used by the fx
	// module and DisposeDefault.
	DefaultShutdownTimeout = 15 * time.Second

	// workerCountEnv overrides the default I/O worker count.
	workerCountEnv = "HIOLOAD_IO_WORKER_COUNT"
)

// DefaultWorkerCount returns the worker count used when WithWorkerCount is
// not given: HIOLOAD_IO_WORKER_COUNT if set and positive, else
// max(4, NumCPU).
func DefaultWorkerCount() int {
	if v := os.Getenv(workerCountEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	n := runtime.NumCPU()
	if n < 4 {
		n = 4
	}
	return n
}

type config struct {
	workerCount int
	selectCount int // 0: selector slot aliases the worker slot
	daemon      bool
	pinCPUs     bool
	log         *zap.Logger
	clk         clock.Clock
}

func defaultConfig() config {
	return config{
		workerCount: DefaultWorkerCount(),
		selectCount: 0,
		daemon:      true,
		log:         zap.NewNop(),
		clk:         clock.New(),
	}
}

// Option configures a Resources instance. Invalid input is reported as an
// error from New instead of panicking.
type Option func(*config) error

// WithWorkerCount sets the loop count of worker groups (must be > 0).
func WithWorkerCount(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return errorc.With(api.ErrInvalidConfig,
				errorc.String("workerCount", strconv.Itoa(n)))
		}
		cfg.workerCount = n
		return nil
	}
}

// WithSelectCount gives acceptor selectors their own group of n loops
// (must be > 0). Without it OnServerSelect returns the worker group.
func WithSelectCount(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return errorc.With(api.ErrInvalidConfig,
				errorc.String("selectCount", strconv.Itoa(n)))
		}
		cfg.selectCount = n
		return nil
	}
}

// WithDaemon sets the background flag inherited by every loop identity.
// Default: true.
func WithDaemon(daemon bool) Option {
	return func(cfg *config) error { cfg.daemon = daemon; return nil }
}

// WithCPUPinning pins loop threads to logical CPUs on supported platforms.
func WithCPUPinning() Option {
	return func(cfg *config) error { cfg.pinCPUs = true; return nil }
}

// WithLogger attaches a structured logger. Default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *config) error {
		if log == nil {
			return errorc.With(api.ErrInvalidConfig,
				errorc.String("logger", "must not be nil"))
		}
		cfg.log = log
		return nil
	}
}

// WithClock substitutes the clock used for shutdown timing.
func WithClock(clk clock.Clock) Option {
	return func(cfg *config) error {
		if clk == nil {
			return errorc.With(api.ErrInvalidConfig,
				errorc.String("clock", "must not be nil"))
		}
		cfg.clk = clk
		return nil
	}
}
