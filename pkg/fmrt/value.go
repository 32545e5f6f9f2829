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

import "time"

// Value is a tagged union spanning the six kinds a key or field can hold.
// It plays the role the original C API filled with variadic, type-inferred
// arguments: operations accept a Value (or a slice of Values) and dispatch
// on the Kind recorded in the table's schema at call time. It is the
// caller's responsibility to pass Values whose Kind matches the schema;
// a mismatch is undefined behavior, exactly as variadic type confusion
// was undefined behavior in the original library.
type Value struct {
	kind Kind
	u32  uint32
	i32  int32
	f64  float64
	b    byte
	s    string
	ts   int64 // raw seconds since the epoch
}

// Kind reports which of the six scalar kinds v holds.
func (v Value) Kind() Kind { return v.kind }

// UInt32 returns the value as a uint32. Zero if v does not hold a UInt32.
func (v Value) UInt32() uint32 { return v.u32 }

// Int32 returns the value as an int32. Zero if v does not hold an Int32.
func (v Value) Int32() int32 { return v.i32 }

// Float64 returns the value as a float64. Zero if v does not hold a Float64.
func (v Value) Float64() float64 { return v.f64 }

// Byte returns the value as a byte. Zero if v does not hold a Byte.
func (v Value) Byte() byte { return v.b }

// String returns the value as a string. Empty if v does not hold a String.
func (v Value) String() string { return v.s }

// Time returns the value as the UTC time it represents. Zero if v does
// not hold a Timestamp.
func (v Value) Time() time.Time { return time.Unix(v.ts, 0).UTC() }

// RawTimestamp returns the raw seconds-since-epoch representation, which
// is how a Timestamp is always stored on the arena regardless of the
// active textual format.
func (v Value) RawTimestamp() int64 { return v.ts }

// UInt32Value constructs a Value of kind KindUInt32.
func UInt32Value(u uint32) Value { return Value{kind: KindUInt32, u32: u} }

// Int32Value constructs a Value of kind KindInt32.
func Int32Value(i int32) Value { return Value{kind: KindInt32, i32: i} }

// Float64Value constructs a Value of kind KindFloat64.
func Float64Value(f float64) Value { return Value{kind: KindFloat64, f64: f} }

// ByteValue constructs a Value of kind KindByte.
func ByteValue(b byte) Value { return Value{kind: KindByte, b: b} }

// String constructs a Value of kind KindString. Truncation to a table's
// declared maximum length happens at storage/comparison time, not here.
func String(s string) Value { return Value{kind: KindString, s: s} }

// TimestampValue constructs a Value of kind KindTimestamp from raw
// seconds since the epoch.
func TimestampValue(seconds int64) Value { return Value{kind: KindTimestamp, ts: seconds} }

// Timestamp constructs a Value of kind KindTimestamp from a time.Time.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, ts: t.Unix()} }
