// File: internal/gid/gid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Goroutine identity for tagging event-loop goroutines. The runtime does not
// expose goroutine IDs, so the ID is parsed from the first line of the stack
// header ("goroutine N [running]:"). Called once per loop goroutine at start
// and once per OnLoop lookup; not on any hot path.

package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

var prefix = []byte("goroutine ")

// ID returns the runtime ID of the calling goroutine.
func ID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, prefix)
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
