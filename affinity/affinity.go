// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity of event-loop threads. Platform
// implementations live in build-tagged files (affinity_linux.go,
// affinity_windows.go, affinity_stub.go).

package affinity

// PinCurrentThread pins the calling OS thread to the given logical CPU on
// supported platforms. The caller must hold runtime.LockOSThread for the
// pin to stay meaningful. On unsupported platforms an error is returned.
func PinCurrentThread(cpuID int) error {
	return pinCurrentThread(cpuID)
}

// Supported reports whether CPU pinning works on this platform.
func Supported() bool {
	return supported
}
