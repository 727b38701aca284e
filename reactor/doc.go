// File: reactor/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package reactor is the native-capability collaborator of hioload-loops:
// an OS-specific I/O multiplexing primitive (epoll on Linux, IOCP on
// Windows) behind a platform-neutral interface, plus compile-time
// detection of whether a native backend exists at all. Loop groups treat
// it as an opaque pluggable capability; platforms without one fall back
// to the portable backend.
package reactor
