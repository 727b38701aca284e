//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation via sched_setaffinity(2), pure Go through
// golang.org/x/sys/unix (no libpthread/libnuma dependency).

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const supported = true

// pinCurrentThread binds the calling thread (tid 0 = self) to cpuID.
func pinCurrentThread(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("affinity: invalid CPU index %d", cpuID)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity(cpu=%d): %w", cpuID, err)
	}
	return nil
}
