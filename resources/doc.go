// File: resources/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package resources implements the shared event-loop resource manager. A
// Resources instance owns up to six lazily-created loop groups (server
// workers, acceptor selectors and colocated client workers, each in a
// portable and a native variant) and hands them out to transports through
// the api.LoopResources contract.
//
// Provisioning is lock-free: racers to an empty slot build a candidate
// group and publish it with a single compare-and-swap; losers discard
// their duplicate with zero grace. Disposal flips a running flag exactly
// once, snapshots whatever groups exist and drains them concurrently.
//
// The application owns its Resources instance and threads it through to
// every transport it builds. A thin process-wide default is available via
// InitDefault/Default/DisposeDefault for programs that genuinely want a
// single shared instance.
package resources
