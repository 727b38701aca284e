// File: resources/global.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Optional process-wide default instance. This is explicit process-scoped
// state with explicit init and teardown; prefer constructing a Resources
// and passing it to the transports you build.

package resources

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrDefaultInitialized is returned by InitDefault when a default
	// instance already exists.
	ErrDefaultInitialized = errors.New("resources: default already initialized")

	defaultMu  sync.Mutex
	defaultRes *Resources
)

// InitDefault constructs and installs the process-wide default instance.
func InitDefault(prefix string, opts ...Option) (*Resources, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRes != nil {
		return nil, ErrDefaultInitialized
	}
	r, err := New(prefix, opts...)
	if err != nil {
		return nil, err
	}
	defaultRes = r
	return r, nil
}

// Default returns the process-wide default instance, nil until InitDefault.
func Default() *Resources {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultRes
}

// DisposeDefault gracefully disposes and clears the default instance with
// the standard quiet period and timeout. No-op when no default exists.
func DisposeDefault(ctx context.Context) error {
	defaultMu.Lock()
	r := defaultRes
	defaultRes = nil
	defaultMu.Unlock()
	if r == nil {
		return nil
	}
	return r.DisposeLater(DefaultShutdownQuietPeriod, DefaultShutdownTimeout).Await(ctx)
}
