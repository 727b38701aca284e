//go:build !linux && !windows
// +build !linux,!windows

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without a native I/O backend.

package reactor

import "errors"

const (
	nativeSupported = false
	backendName     = "stub"
)

// NewReactor returns an error for unsupported platforms.
func NewReactor() (EventReactor, error) {
	return nil, errors.New("reactor: this platform is not supported")
}
