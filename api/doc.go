// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package api defines the public contracts of hioload-loops: the LoopResources
// acquisition surface shared by client and server transports, the LoopGroup
// pool-handle capability set, and the asynchronous Completion/Disposal signals
// used for graceful teardown.
//
// Transports never create their own event-loop goroutines. They acquire
// lazily-initialized, process-shared loop groups through LoopResources so that
// many independent client and server instances share a bounded set of I/O
// workers.
package api
