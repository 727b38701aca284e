//go:build windows
// +build windows

// File: reactor/reactor_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows IOCP (I/O Completion Port) reactor implementation and factory.

package reactor

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	nativeSupported = true
	backendName     = "iocp"
)

// windowsReactor is an IOCP-based event reactor.
type windowsReactor struct {
	iocp windows.Handle
}

// NewReactor constructs a new platform-specific EventReactor for Windows.
func NewReactor() (EventReactor, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	return &windowsReactor{iocp: port}, nil
}

// Register associates a handle with the completion port.
func (r *windowsReactor) Register(handle uintptr, userData uintptr) error {
	_, err := windows.CreateIoCompletionPort(windows.Handle(handle), r.iocp, userData, 0)
	return err
}

// Wait blocks up to timeout for a completion packet and fills events[0].
func (r *windowsReactor) Wait(events []Event, timeout time.Duration) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	var (
		bytes      uint32
		key        uintptr
		overlapped *windows.Overlapped
	)
	ms := uint32(timeout / time.Millisecond)
	err := windows.GetQueuedCompletionStatus(r.iocp, &bytes, &key, &overlapped, ms)
	if err != nil {
		if err == windows.WAIT_TIMEOUT {
			return 0, nil
		}
		return 0, err
	}
	events[0] = Event{
		Fd:       uintptr(unsafe.Pointer(overlapped)),
		UserData: key,
	}
	return 1, nil
}

// Close closes the IOCP handle.
func (r *windowsReactor) Close() error {
	return windows.CloseHandle(r.iocp)
}
