// File: core/runloop/ring_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package runloop

import (
	"sync"
	"sync/atomic"
	"testing"
)

// TestTaskRing_EnqueueDequeue tests basic FIFO behavior.
func TestTaskRing_EnqueueDequeue(t *testing.T) {
	r := newTaskRing(8)

	ran := false
	if !r.enqueue(func() { ran = true }) {
		t.Fatalf("Expected enqueue to succeed")
	}

	task, ok := r.dequeue()
	if !ok {
		t.Fatalf("Expected dequeue to succeed")
	}
	task()
	if !ran {
		t.Errorf("Expected the dequeued task to be the enqueued one")
	}

	if _, ok := r.dequeue(); ok {
		t.Errorf("Expected empty ring after dequeue")
	}
}

// TestTaskRing_Full tests rejection when the ring is full.
func TestTaskRing_Full(t *testing.T) {
	r := newTaskRing(2)
	if !r.enqueue(func() {}) || !r.enqueue(func() {}) {
		t.Fatalf("Expected two enqueues to succeed")
	}
	if r.enqueue(func() {}) {
		t.Errorf("Expected enqueue to fail on a full ring")
	}
}

// TestTaskRing_RoundsUpToPowerOfTwo verifies odd sizes are rounded up.
func TestTaskRing_RoundsUpToPowerOfTwo(t *testing.T) {
	r := newTaskRing(5)
	if len(r.cells) != 8 {
		t.Errorf("Expected capacity 8, got %d", len(r.cells))
	}
}

// TestTaskRing_ConcurrentProducersConsumers exercises the MPMC paths.
func TestTaskRing_ConcurrentProducersConsumers(t *testing.T) {
	r := newTaskRing(64)
	const perProducer = 500
	const producers = 4

	var produced, consumed atomic.Int64
	var wg sync.WaitGroup

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				for !r.enqueue(func() {}) {
				}
				produced.Add(1)
			}
		}()
	}

	stop := make(chan struct{})
	for c := 0; c < 2; c++ {
		go func() {
			for {
				if _, ok := r.dequeue(); ok {
					consumed.Add(1)
					continue
				}
				select {
				case <-stop:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
	// Drain the remainder from the test goroutine.
	for consumed.Load() < produced.Load() {
		if _, ok := r.dequeue(); ok {
			consumed.Add(1)
		}
	}
	close(stop)

	if produced.Load() != int64(producers*perProducer) {
		t.Errorf("Expected %d produced, got %d", producers*perProducer, produced.Load())
	}
}
