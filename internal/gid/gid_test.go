// File: internal/gid/gid_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package gid

import (
	"sync"
	"testing"
)

// TestID_StableWithinGoroutine verifies the same goroutine observes one ID.
func TestID_StableWithinGoroutine(t *testing.T) {
	first := ID()
	if first == 0 {
		t.Fatalf("Expected non-zero goroutine ID")
	}
	if again := ID(); again != first {
		t.Errorf("Expected stable ID, got %d then %d", first, again)
	}
}

// TestID_DistinctAcrossGoroutines verifies two goroutines observe distinct IDs.
func TestID_DistinctAcrossGoroutines(t *testing.T) {
	var wg sync.WaitGroup
	ids := make([]uint64, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			ids[slot] = ID()
		}(i)
	}
	wg.Wait()

	if ids[0] == 0 || ids[1] == 0 {
		t.Fatalf("Expected non-zero IDs, got %v", ids)
	}
	if ids[0] == ids[1] {
		t.Errorf("Expected distinct IDs for distinct goroutines, got %d twice", ids[0])
	}
}
