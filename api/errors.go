// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared error values for the hioload-loops library.

package api

import "errors"

var (
	// ErrGroupShutdown indicates the loop group no longer accepts work.
	ErrGroupShutdown = errors.New("loops: group is shut down")

	// ErrUncleanShutdown indicates at least one loop failed to stop within
	// the shutdown timeout. Reported through Completion/Disposal signals,
	// never from acquisition calls.
	ErrUncleanShutdown = errors.New("loops: loops still running after forced stop")

	// ErrNativeUnsupported indicates no native I/O backend exists on this
	// platform.
	ErrNativeUnsupported = errors.New("loops: native backend not supported on this platform")

	// ErrInvalidConfig indicates invalid LoopResources configuration.
	ErrInvalidConfig = errors.New("loops: invalid configuration")
)
