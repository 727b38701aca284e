//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows implementation via SetThreadAffinityMask.
//
// Reference: https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-setthreadaffinitymask

package affinity

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const supported = true

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinity = kernel32.NewProc("SetThreadAffinityMask")
)

// pinCurrentThread binds the calling thread to cpuID. Masks are limited to
// 64 logical processors of the current processor group.
func pinCurrentThread(cpuID int) error {
	if cpuID < 0 || cpuID >= 64 {
		return fmt.Errorf("affinity: invalid CPU index %d (valid: 0..63)", cpuID)
	}
	mask := uintptr(1) << uint(cpuID)
	ret, _, err := procSetThreadAffinity.Call(uintptr(windows.CurrentThread()), mask)
	if ret == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask(cpu=%d): %w", cpuID, err)
	}
	return nil
}
