// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral event reactor interface for cross-platform IO multiplexing.

package reactor

import "time"

// EventReactor defines basic reactor operations across OS platforms.
type EventReactor interface {
	// Register an FD (epoll) or HANDLE (Windows) for IO notifications.
	Register(fd uintptr, userData uintptr) error

	// Wait blocks up to timeout for events and writes them into the output
	// slice. A zero timeout polls without blocking. Returns the number of
	// events written.
	Wait(events []Event, timeout time.Duration) (n int, err error)

	// Close releases the underlying handle/epfd.
	Close() error
}

// Event contains event information returned by a Wait call.
type Event struct {
	Fd       uintptr // File descriptor or handle.
	UserData uintptr // User-provided data.
}

// HasNativeSupport reports whether this platform has a native backend.
func HasNativeSupport() bool {
	return nativeSupported
}

// Name returns the backend identifier: "epoll", "iocp" or "stub". It is
// used as the role component of native loop names.
func Name() string {
	return backendName
}
