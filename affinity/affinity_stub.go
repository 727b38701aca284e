//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub for platforms without thread affinity control.

package affinity

import "errors"

const supported = false

func pinCurrentThread(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}
