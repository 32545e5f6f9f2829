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

import (
	"encoding/binary"
	"math"
)

// readValue decodes the value of kind k stored at offset in slot.
func readValue(slot []byte, offset int, k Kind, maxLen int) Value {
	switch k {
	case KindUInt32:
		return UInt32Value(binary.LittleEndian.Uint32(slot[offset : offset+4]))
	case KindInt32:
		return Int32Value(int32(binary.LittleEndian.Uint32(slot[offset : offset+4])))
	case KindFloat64:
		bits := binary.LittleEndian.Uint64(slot[offset : offset+8])
		return Float64Value(math.Float64frombits(bits))
	case KindByte:
		return ByteValue(slot[offset])
	case KindTimestamp:
		return TimestampValue(int64(binary.LittleEndian.Uint64(slot[offset : offset+8])))
	case KindString:
		buf := slot[offset : offset+maxLen+1]
		n := 0
		for n < len(buf) && buf[n] != 0 {
			n++
		}
		return String(string(buf[:n]))
	default:
		return Value{}
	}
}

// writeValue encodes v (whose kind must match k) at offset in slot,
// truncating String values to maxLen bytes before storage.
func writeValue(slot []byte, offset int, k Kind, maxLen int, v Value) {
	switch k {
	case KindUInt32:
		binary.LittleEndian.PutUint32(slot[offset:offset+4], v.u32)
	case KindInt32:
		binary.LittleEndian.PutUint32(slot[offset:offset+4], uint32(v.i32))
	case KindFloat64:
		binary.LittleEndian.PutUint64(slot[offset:offset+8], math.Float64bits(v.f64))
	case KindByte:
		slot[offset] = v.b
	case KindTimestamp:
		binary.LittleEndian.PutUint64(slot[offset:offset+8], uint64(v.ts))
	case KindString:
		buf := slot[offset : offset+maxLen+1]
		s := v.s
		if len(s) > maxLen {
			s = s[:maxLen]
		}
		n := copy(buf, s)
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
	}
}

// writeRow writes a brand-new row (both child pointers reset to none,
// then the key, then each field in declaration order) into slot.
func (t *Table) writeRow(slot []byte, key Value, fields []Value) {
	setLeft(slot, noneIndex)
	setRight(slot, noneIndex)
	writeValue(slot, t.schema.Key.offset, t.schema.Key.Kind, t.schema.Key.StringLen, key)
	for i, f := range t.schema.Fields {
		writeValue(slot, f.offset, f.Kind, f.StringLen, fields[i])
	}
}

// readKey reads the key out of slot.
func (t *Table) readKey(slot []byte) Value {
	return readValue(slot, t.schema.Key.offset, t.schema.Key.Kind, t.schema.Key.StringLen)
}

// readFields reads every field out of slot, in declaration order.
func (t *Table) readFields(slot []byte) []Value {
	out := make([]Value, len(t.schema.Fields))
	for i, f := range t.schema.Fields {
		out[i] = readValue(slot, f.offset, f.Kind, f.StringLen)
	}
	return out
}

// applyMask overwrites the fields selected by mask (bit i selects field
// i, in declaration order), leaving the rest untouched.
func (t *Table) applyMask(slot []byte, mask FieldMask, fields []Value) {
	for i, f := range t.schema.Fields {
		if mask.Has(i) {
			writeValue(slot, f.offset, f.Kind, f.StringLen, fields[i])
		}
	}
}

// copyRow copies only the row payload (key + fields), not the child
// pointers, from the src slot into the dst slot. Used when an AVL
// delete's two-children case promotes the in-order successor's data
// into the deleted node's slot.
func (t *Table) copyRow(dst, src uint32) {
	dstSlot := t.arena.slot(dst)
	srcSlot := t.arena.slot(src)
	copy(dstSlot[2*indexSize:], srcSlot[2*indexSize:])
}

// copyFull copies an entire slot (child pointers and row payload) from
// src into dst. Used when an AVL delete's one-child case collapses a
// node into its sole child.
func (t *Table) copyFull(dst, src uint32) {
	dstSlot := t.arena.slot(dst)
	srcSlot := t.arena.slot(src)
	copy(dstSlot, srcSlot)
}
