package fmrt

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

// Invariant 12: two threads each performing k creates of disjoint keys
// into the same table end in a state with 2k elements, all readable.
func TestConcurrentDisjointCreates(t *testing.T) {
	reg := NewRegistry()
	tbl := mustDefine(t, reg, 0, "concurrent", 4000)
	if err := reg.DefineKey(0, "k", KindUInt32, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFields(0, []FieldDescriptor{{Name: "v", Kind: KindByte}}); err != nil {
		t.Fatal(err)
	}

	const k = 1000
	var wg sync.WaitGroup
	for worker := 0; worker < 2; worker++ {
		worker := worker
		wg.Add(1)
		go func() {
			defer wg.Done()
			base := uint32(worker * k)
			for i := uint32(0); i < k; i++ {
				if err := tbl.Create(UInt32Value(base+i), []Value{ByteValue(0)}); err != nil {
					t.Errorf("worker %d Create(%d): %v", worker, base+i, err)
				}
			}
		}()
	}
	wg.Wait()

	if got := tbl.CountEntries(); got != 2*k {
		t.Fatalf("CountEntries = %d, want %d", got, 2*k)
	}
	for i := uint32(0); i < 2*k; i++ {
		if _, err := tbl.Read(UInt32Value(i)); err != nil {
			t.Fatalf("Read(%d): %v", i, err)
		}
	}
	assertBalanced(t, tbl)
}

// A scaled-down televoting scenario (S4): several goroutines create
// from an overlapping key space; Ok+DuplicateKey must account for every
// attempted create and count_entries must match the Ok tally.
func TestConcurrentOverlappingCreates(t *testing.T) {
	reg := NewRegistry()
	const capacity = 2000
	tbl := mustDefine(t, reg, 0, "televoting", capacity)
	if err := reg.DefineKey(0, "phone", KindString, 15); err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFields(0, []FieldDescriptor{{Name: "votes", Kind: KindUInt32}}); err != nil {
		t.Fatal(err)
	}

	const goroutines = 4
	const perGoroutine = 1500
	const keySpace = capacity

	var ok, dup int64
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			rnd := uint32(g*7919 + 1)
			for i := 0; i < perGoroutine; i++ {
				rnd = rnd*1103515245 + 12345
				key := fmt.Sprintf("+39301%06d", rnd%keySpace)
				err := tbl.Create(String(key), []Value{UInt32Value(1)})
				switch AsResult(err) {
				case Ok:
					atomic.AddInt64(&ok, 1)
				case DuplicateKey:
					atomic.AddInt64(&dup, 1)
				default:
					t.Errorf("unexpected Create error: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	total := int64(goroutines * perGoroutine)
	if ok+dup != total {
		t.Fatalf("ok(%d)+dup(%d) = %d, want %d", ok, dup, ok+dup, total)
	}
	if got := int64(tbl.CountEntries()); got != ok {
		t.Fatalf("CountEntries = %d, want ok count %d", got, ok)
	}
	if got := tbl.CountEntries(); got > capacity {
		t.Fatalf("CountEntries = %d, exceeds capacity %d", got, capacity)
	}
	assertBalanced(t, tbl)
}
