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

import "sync"

// status tracks a table's lifecycle: Free (not yet defined), Defined
// (schema may still change), NotEmpty (schema is now immutable, since
// the arena has been allocated and at least one insert attempted).
type status uint8

const (
	statusFree status = iota
	statusDefined
	statusNotEmpty
)

// controlBlockSize approximates the fixed overhead of a table's control
// structure (schema, roots, counters, mutex) for MemoryFootprint, which
// by design reports declared capacity rather than bytes actually
// touched (§4.6, §9).
const controlBlockSize = 96

// Table owns one schema, one arena and one mutex, and serializes every
// mutating and reading operation against that mutex. It is the
// "Table Controller" of the design: a single self-contained unit that
// could, in a family of pluggable ordered stores, be one interchangeable
// backend implementation — except here there is exactly one shape of
// backend, the arena-backed AVL tree.
type Table struct {
	mu sync.Mutex

	id     uint8
	status status
	schema Schema

	arena      *arena
	root       uint32
	freeHead   uint32
	count      uint32
	keyDefined bool
}

// ensureArena allocates the arena and initializes the free list on the
// first call for a table (the lazy allocation point where Defined
// becomes NotEmpty). Subsequent calls are no-ops. Must be called with
// t.mu held.
func (t *Table) ensureArena() Result {
	if t.arena != nil {
		return Ok
	}
	if !t.keyDefined || t.schema.SlotSize == 0 {
		return Generic
	}
	if t.schema.Capacity < 1 || t.schema.Capacity > MaxCapacity {
		return Generic
	}
	a, head := newArena(t.schema.Capacity, t.schema.SlotSize)
	t.arena = a
	t.freeHead = head
	t.root = noneIndex
	t.status = statusNotEmpty
	return Ok
}

// defineKey declares (or redeclares) the table's key. Rejected once the
// table has held an element.
func (t *Table) defineKey(name string, kind Kind, stringLen int) Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == statusNotEmpty {
		return NotEmpty
	}
	fd, res := validateFieldSpec(name, kind, stringLen)
	if res != Ok {
		return res
	}
	t.schema.Key = fd
	t.keyDefined = true
	t.recomputeLayout()
	return Ok
}

// defineFields declares (or redeclares) the table's fields, in order.
// Rejected once the table has held an element.
func (t *Table) defineFields(specs []FieldDescriptor) Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == statusNotEmpty {
		return NotEmpty
	}
	if len(specs) < 1 || len(specs) > MaxFields {
		return MaxFieldsInvalid
	}
	validated := make([]FieldDescriptor, len(specs))
	for i, s := range specs {
		fd, res := validateFieldSpec(s.Name, s.Kind, s.StringLen)
		if res != Ok {
			return res
		}
		validated[i] = fd
	}
	t.schema.Fields = validated
	t.recomputeLayout()
	return Ok
}

func (t *Table) recomputeLayout() {
	key, fields, size := computeOffsets(t.schema.Key, t.schema.Fields)
	t.schema.Key = key
	t.schema.Fields = fields
	t.schema.SlotSize = size
}

// Create inserts a new row under key. It fails with DuplicateKey if the
// key is already present, or OutOfMemory if the arena is exhausted.
func (t *Table) Create(key Value, fields []Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if res := t.ensureArena(); res != Ok {
		return resultErr(res)
	}
	stack, found := t.searchStack(key)
	if found {
		return resultErr(DuplicateKey)
	}
	idx := t.arena.takeEmpty(&t.freeHead)
	if idx == noneIndex {
		return resultErr(OutOfMemory)
	}
	t.writeRow(t.arena.slot(idx), key, fields)
	t.insertAt(stack, idx)
	t.count++
	return nil
}

// Read looks up key and returns its fields in declaration order. It
// fails with NotFound if the key is absent.
func (t *Table) Read(key Value) ([]Value, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.arena == nil {
		return nil, resultErr(NotFound)
	}
	stack, found := t.searchStack(key)
	if !found {
		return nil, resultErr(NotFound)
	}
	return t.readFields(t.arena.slot(stack[len(stack)-1].index)), nil
}

// Modify overwrites the fields selected by mask on the row under key.
// It fails with NotFound if the key is absent.
func (t *Table) Modify(mask FieldMask, key Value, fields []Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.arena == nil {
		return resultErr(NotFound)
	}
	stack, found := t.searchStack(key)
	if !found {
		return resultErr(NotFound)
	}
	t.applyMask(t.arena.slot(stack[len(stack)-1].index), mask, fields)
	return nil
}

// CreateOrModify updates the row under key per mask if it exists,
// otherwise inserts a new row with all fields populated (mask is
// meaningless for the insert path). It fails with OutOfMemory only when
// inserting into an exhausted arena.
func (t *Table) CreateOrModify(mask FieldMask, key Value, fields []Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if res := t.ensureArena(); res != Ok {
		return resultErr(res)
	}
	stack, found := t.searchStack(key)
	if found {
		t.applyMask(t.arena.slot(stack[len(stack)-1].index), mask, fields)
		return nil
	}
	idx := t.arena.takeEmpty(&t.freeHead)
	if idx == noneIndex {
		return resultErr(OutOfMemory)
	}
	t.writeRow(t.arena.slot(idx), key, fields)
	t.insertAt(stack, idx)
	t.count++
	return nil
}

// Delete removes the row under key. It fails with NotFound if the key
// is absent.
func (t *Table) Delete(key Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.arena == nil {
		return resultErr(NotFound)
	}
	stack, found := t.searchStack(key)
	if !found {
		return resultErr(NotFound)
	}
	t.deleteAt(stack)
	return nil
}

// CountEntries returns the number of rows currently stored.
func (t *Table) CountEntries() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// MemoryFootprint returns the number of bytes allocated for this table:
// the (approximate) control-block overhead plus declared capacity times
// slot size. It reflects declared, not used, capacity, matching the
// original library's contract.
func (t *Table) MemoryFootprint() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int64(controlBlockSize) + int64(t.schema.Capacity)*int64(t.schema.SlotSize)
}

// Schema returns a copy of the table's current schema.
func (t *Table) Schema() Schema {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.schema
}

// walk visits every row in ascending (reverse=false) or descending
// (reverse=true) key order.
func (t *Table) walk(reverse bool, visit func(slot []byte)) {
	var rec func(idx uint32)
	rec = func(idx uint32) {
		if idx == noneIndex {
			return
		}
		slot := t.arena.slot(idx)
		left := getLeft(slot)
		right := getRight(slot)
		if reverse {
			rec(right)
			visit(slot)
			rec(left)
		} else {
			rec(left)
			visit(slot)
			rec(right)
		}
	}
	rec(t.root)
}

// walkRange visits every row whose key lies in [min, max], in ascending
// or descending order, pruning subtrees that lie entirely outside the
// range (§4.6).
func (t *Table) walkRange(reverse bool, min, max Value, visit func(slot []byte)) {
	kind := t.schema.Key.Kind
	var rec func(idx uint32)
	rec = func(idx uint32) {
		if idx == noneIndex {
			return
		}
		slot := t.arena.slot(idx)
		k := t.readKey(slot)
		switch {
		case kind.Compare(k, min) < 0:
			rec(getRight(slot))
		case kind.Compare(k, max) > 0:
			rec(getLeft(slot))
		default:
			left := getLeft(slot)
			right := getRight(slot)
			if reverse {
				rec(right)
				visit(slot)
				rec(left)
			} else {
				rec(left)
				visit(slot)
				rec(right)
			}
		}
	}
	rec(t.root)
}
