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
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the six scalar value types a key or field can
// hold. The set is closed: unlike a pluggable-backend registry, every
// Kind is known at compile time and dispatch happens through switch
// statements over Kind below rather than through a constructor map.
type Kind uint8

const (
	KindUInt32 Kind = iota
	KindInt32
	KindFloat64
	KindByte
	KindString
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindUInt32:
		return "uint32"
	case KindInt32:
		return "int32"
	case KindFloat64:
		return "float64"
	case KindByte:
		return "byte"
	case KindString:
		return "string"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the six defined kinds.
func (k Kind) Valid() bool {
	return k <= KindTimestamp
}

// fixedSize is the on-arena footprint of kinds whose size does not depend
// on a declared string length. String resolves its footprint from the
// field/key descriptor's StringLen instead (see Schema).
var fixedSize = [...]int{
	KindUInt32:    4,
	KindInt32:     4,
	KindFloat64:   8,
	KindByte:      1,
	KindString:    0, // resolved per-descriptor
	KindTimestamp: 8,
}

// Size returns the on-arena footprint of a value of kind k. maxLen is the
// declared maximum string length (meaningless for non-string kinds).
func (k Kind) Size(maxLen int) int {
	if k == KindString {
		return maxLen + 1 // +1 for the terminator
	}
	return fixedSize[k]
}

// Compare orders two values of the same kind, returning <0, 0 or >0 the
// way strings.Compare does. Comparing values of different kinds, or of a
// kind other than the one a table declared, is undefined behavior (the
// caller's responsibility to avoid), exactly as in the original library.
func (k Kind) Compare(a, b Value) int {
	switch k {
	case KindUInt32:
		switch {
		case a.u32 < b.u32:
			return -1
		case a.u32 > b.u32:
			return 1
		default:
			return 0
		}
	case KindInt32:
		switch {
		case a.i32 < b.i32:
			return -1
		case a.i32 > b.i32:
			return 1
		default:
			return 0
		}
	case KindFloat64:
		// A strict three-way comparison rather than subtraction: the
		// latter is lossy for very large or very close magnitudes.
		switch {
		case a.f64 < b.f64:
			return -1
		case a.f64 > b.f64:
			return 1
		default:
			return 0
		}
	case KindByte:
		switch {
		case a.b < b.b:
			return -1
		case a.b > b.b:
			return 1
		default:
			return 0
		}
	case KindString:
		return strings.Compare(a.s, b.s)
	case KindTimestamp:
		switch {
		case a.ts < b.ts:
			return -1
		case a.ts > b.ts:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// Parse converts a text fragment (as found in a CSV field) into a Value
// of kind k. Malformed input yields the kind's zero fallback (zero for
// numerics, zero epoch for timestamps) rather than an error: CSV import
// must not abort on a single bad field. String input is truncated to
// maxLen. Timestamp input is interpreted against the process-wide time
// format (raw decimal seconds when the format is empty).
func (k Kind) Parse(text string, maxLen int) Value {
	switch k {
	case KindUInt32:
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return UInt32Value(0)
		}
		return UInt32Value(uint32(v))
	case KindInt32:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Int32Value(0)
		}
		return Int32Value(int32(v))
	case KindFloat64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Float64Value(0)
		}
		return Float64Value(v)
	case KindByte:
		if len(text) == 0 {
			return ByteValue(0)
		}
		return ByteValue(text[0])
	case KindString:
		if len(text) > maxLen {
			text = text[:maxLen]
		}
		return String(text)
	case KindTimestamp:
		return TimestampValue(parseTimestamp(text))
	default:
		return Value{}
	}
}

// Format renders a Value of kind k back to text, the inverse of Parse.
func (k Kind) Format(v Value, maxLen int) string {
	switch k {
	case KindUInt32:
		return strconv.FormatUint(uint64(v.u32), 10)
	case KindInt32:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindFloat64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindByte:
		return string([]byte{v.b})
	case KindString:
		s := v.s
		if len(s) > maxLen {
			s = s[:maxLen]
		}
		return s
	case KindTimestamp:
		return formatTimestamp(v.ts)
	default:
		return ""
	}
}
