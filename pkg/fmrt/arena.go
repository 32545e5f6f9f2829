/*
Copyright 2014 The Camlistore Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fmrt

import "encoding/binary"

// arena is the fixed-size, contiguous block of slots backing one table.
// Each slot is laid out as [left index][right index][row payload]; the
// row payload's interpretation is governed by the owning table's schema.
// A slot is either threaded into the tree or threaded into the free
// list via its left-child field — never both, per the slot-uniqueness
// invariant.
type arena struct {
	data     []byte
	slotSize int
	capacity uint32
}

// newArena allocates a zeroed arena of capacity slots of slotSize bytes
// each and threads every slot into a free list (slot i's left-child
// field points to slot i+1; the last slot points to noneIndex). It
// returns the free-list head.
func newArena(capacity uint32, slotSize int) (*arena, uint32) {
	a := &arena{
		data:     make([]byte, int(capacity)*slotSize),
		slotSize: slotSize,
		capacity: capacity,
	}
	for i := uint32(0); i < capacity; i++ {
		next := i + 1
		if next >= capacity {
			next = noneIndex
		}
		setLeft(a.slot(i), next)
	}
	if capacity == 0 {
		return a, noneIndex
	}
	return a, 0
}

// slot returns the byte range for slot index idx.
func (a *arena) slot(idx uint32) []byte {
	start := int(idx) * a.slotSize
	return a.data[start : start+a.slotSize]
}

// footprint returns the number of bytes the arena occupies.
func (a *arena) footprint() int64 {
	return int64(a.capacity) * int64(a.slotSize)
}

// takeEmpty detaches and returns the head of the free list, or
// noneIndex if the arena is exhausted. head is the caller's current
// free-list head, updated in place.
func (a *arena) takeEmpty(head *uint32) uint32 {
	if *head == noneIndex {
		return noneIndex
	}
	idx := *head
	slot := a.slot(idx)
	*head = getLeft(slot)
	return idx
}

// release pushes idx back onto the free list headed by head. The slot's
// prior contents are not inspected.
func (a *arena) release(head *uint32, idx uint32) {
	setLeft(a.slot(idx), *head)
	*head = idx
}

func getLeft(slot []byte) uint32  { return binary.LittleEndian.Uint32(slot[0:4]) }
func getRight(slot []byte) uint32 { return binary.LittleEndian.Uint32(slot[4:8]) }

func setLeft(slot []byte, v uint32)  { binary.LittleEndian.PutUint32(slot[0:4], v) }
func setRight(slot []byte, v uint32) { binary.LittleEndian.PutUint32(slot[4:8], v) }
