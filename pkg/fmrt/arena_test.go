package fmrt

import "testing"

func TestArenaFreeListThreading(t *testing.T) {
	a, head := newArena(4, 16)
	if head != 0 {
		t.Fatalf("initial free-list head = %d, want 0", head)
	}
	var taken []uint32
	for i := 0; i < 4; i++ {
		idx := a.takeEmpty(&head)
		if idx == noneIndex {
			t.Fatalf("takeEmpty returned none after only %d slots taken", i)
		}
		taken = append(taken, idx)
	}
	if head != noneIndex {
		t.Fatalf("free list should be exhausted, head = %d", head)
	}
	if idx := a.takeEmpty(&head); idx != noneIndex {
		t.Fatalf("takeEmpty on exhausted arena = %d, want noneIndex", idx)
	}
	for i, idx := range taken {
		if idx != uint32(i) {
			t.Errorf("slot %d taken out of order: got index %d", i, idx)
		}
	}
}

func TestArenaReleaseIsLIFO(t *testing.T) {
	a, head := newArena(3, 16)
	first := a.takeEmpty(&head)
	second := a.takeEmpty(&head)
	third := a.takeEmpty(&head)
	a.release(&head, second)
	a.release(&head, first)
	// The most recently released slot (first) comes back out first.
	if got := a.takeEmpty(&head); got != first {
		t.Errorf("takeEmpty after release = %d, want %d", got, first)
	}
	if got := a.takeEmpty(&head); got != second {
		t.Errorf("takeEmpty after release = %d, want %d", got, second)
	}
	if head != noneIndex {
		t.Fatalf("free list should be exhausted, head = %d", head)
	}
	_ = third
}

func TestArenaFootprint(t *testing.T) {
	a, _ := newArena(10, 24)
	if got := a.footprint(); got != 240 {
		t.Errorf("footprint() = %d, want 240", got)
	}
}
