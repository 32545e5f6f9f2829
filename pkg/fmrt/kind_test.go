package fmrt

import "testing"

func TestKindSize(t *testing.T) {
	cases := []struct {
		k      Kind
		maxLen int
		want   int
	}{
		{KindUInt32, 0, 4},
		{KindInt32, 0, 4},
		{KindFloat64, 0, 8},
		{KindByte, 0, 1},
		{KindTimestamp, 0, 8},
		{KindString, 32, 33},
		{KindString, 1, 2},
	}
	for _, c := range cases {
		if got := c.k.Size(c.maxLen); got != c.want {
			t.Errorf("%v.Size(%d) = %d, want %d", c.k, c.maxLen, got, c.want)
		}
	}
}

func TestKindCompare(t *testing.T) {
	if KindUInt32.Compare(UInt32Value(1), UInt32Value(2)) >= 0 {
		t.Error("uint32 1 should compare less than 2")
	}
	if KindInt32.Compare(Int32Value(-5), Int32Value(3)) >= 0 {
		t.Error("int32 -5 should compare less than 3")
	}
	if KindFloat64.Compare(Float64Value(1.5), Float64Value(1.5)) != 0 {
		t.Error("equal float64 values should compare equal")
	}
	if KindByte.Compare(ByteValue('a'), ByteValue('b')) >= 0 {
		t.Error("byte 'a' should compare less than 'b'")
	}
	if KindString.Compare(String("alpha"), String("beta")) >= 0 {
		t.Error("string alpha should compare less than beta")
	}
	if KindTimestamp.Compare(TimestampValue(100), TimestampValue(200)) >= 0 {
		t.Error("timestamp 100 should compare less than 200")
	}
}

func TestKindParseFallback(t *testing.T) {
	// Malformed numeric input yields the kind's zero fallback rather
	// than an error, by design (§4.1): CSV import must not abort on a
	// single bad field.
	if v := KindUInt32.Parse("not-a-number", 0); v.UInt32() != 0 {
		t.Errorf("malformed uint32 parse = %d, want 0", v.UInt32())
	}
	if v := KindInt32.Parse("", 0); v.Int32() != 0 {
		t.Errorf("malformed int32 parse = %d, want 0", v.Int32())
	}
	if v := KindFloat64.Parse("xyz", 0); v.Float64() != 0 {
		t.Errorf("malformed float64 parse = %v, want 0", v.Float64())
	}
}

func TestKindParseStringTruncation(t *testing.T) {
	v := KindString.Parse("abcdefgh", 4)
	if got := v.String(); got != "abcd" {
		t.Errorf("truncated parse = %q, want %q", got, "abcd")
	}
}

func TestKindFormatRoundTrip(t *testing.T) {
	cases := []struct {
		k      Kind
		v      Value
		maxLen int
	}{
		{KindUInt32, UInt32Value(42), 0},
		{KindInt32, Int32Value(-7), 0},
		{KindFloat64, Float64Value(3.25), 0},
		{KindByte, ByteValue('z'), 0},
		{KindString, String("hello"), 16},
	}
	for _, c := range cases {
		text := c.k.Format(c.v, c.maxLen)
		got := c.k.Parse(text, c.maxLen)
		if c.k.Compare(got, c.v) != 0 {
			t.Errorf("%v round trip through %q produced a different value", c.k, text)
		}
	}
}
