package fmrt

import "testing"

func TestDefineTableErrors(t *testing.T) {
	reg := NewRegistry()
	if err := reg.DefineTable(0, "t", 10); err != nil {
		t.Fatalf("DefineTable: %v", err)
	}
	if err := reg.DefineTable(0, "t2", 10); AsResult(err) != IDAlreadyExists {
		t.Fatalf("DefineTable(duplicate id) = %v, want IDAlreadyExists", err)
	}
	if err := reg.DefineTable(MaxTables, "overflow", 10); AsResult(err) != MaxTablesReached {
		t.Fatalf("DefineTable(id=MaxTables) = %v, want MaxTablesReached", err)
	}
	if err := reg.DefineTable(1, "zero-capacity", 0); AsResult(err) != Generic {
		t.Fatalf("DefineTable(capacity=0) = %v, want Generic", err)
	}
	if err := reg.DefineTable(1, "too-big", MaxCapacity+1); AsResult(err) != Generic {
		t.Fatalf("DefineTable(capacity>max) = %v, want Generic", err)
	}
}

func TestFillRegistryToCapacity(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < MaxTables; i++ {
		if err := reg.DefineTable(uint8(i), "t", 1); err != nil {
			t.Fatalf("DefineTable(%d): %v", i, err)
		}
	}
	if ids := reg.IDs(); len(ids) != MaxTables {
		t.Fatalf("IDs() = %v, want %d entries", ids, MaxTables)
	}
}

func TestFieldCountBounds(t *testing.T) {
	reg := NewRegistry()
	mustDefine(t, reg, 0, "t", 4)
	if err := reg.DefineKey(0, "k", KindByte, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFields(0, nil); AsResult(err) != MaxFieldsInvalid {
		t.Fatalf("DefineFields(0 fields) = %v, want MaxFieldsInvalid", err)
	}
	too := make([]FieldDescriptor, MaxFields+1)
	for i := range too {
		too[i] = FieldDescriptor{Name: "f", Kind: KindByte}
	}
	if err := reg.DefineFields(0, too); AsResult(err) != MaxFieldsInvalid {
		t.Fatalf("DefineFields(%d fields) = %v, want MaxFieldsInvalid", len(too), err)
	}
}

func TestStringLengthBounds(t *testing.T) {
	reg := NewRegistry()
	mustDefine(t, reg, 0, "t", 4)
	if err := reg.DefineKey(0, "k", KindString, 0); AsResult(err) != FieldTooLong {
		t.Fatalf("DefineKey(len=0) = %v, want FieldTooLong", err)
	}
	if err := reg.DefineKey(0, "k", KindString, MaxStringLen+1); AsResult(err) != FieldTooLong {
		t.Fatalf("DefineKey(len=max+1) = %v, want FieldTooLong", err)
	}
}

func TestNameTruncation(t *testing.T) {
	reg := NewRegistry()
	longName := "this-name-is-definitely-longer-than-thirty-two-characters"
	if err := reg.DefineTable(0, longName, 4); err != nil {
		t.Fatal(err)
	}
	tbl, _ := reg.Table(0)
	if got := len(tbl.Schema().Name); got != MaxTableNameLen {
		t.Fatalf("truncated table name length = %d, want %d", got, MaxTableNameLen)
	}
	if err := reg.DefineKey(0, "a-very-long-field-name-indeed", KindByte, 0); err != nil {
		t.Fatal(err)
	}
	if got := len(tbl.Schema().Key.Name); got != MaxFieldNameLen {
		t.Fatalf("truncated key name length = %d, want %d", got, MaxFieldNameLen)
	}
}

func TestOutOfMemory(t *testing.T) {
	reg := NewRegistry()
	tbl := mustDefine(t, reg, 0, "tiny", 2)
	if err := reg.DefineKey(0, "n", KindUInt32, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFields(0, []FieldDescriptor{{Name: "v", Kind: KindByte}}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Create(UInt32Value(1), []Value{ByteValue(0)}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Create(UInt32Value(2), []Value{ByteValue(0)}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Create(UInt32Value(3), []Value{ByteValue(0)}); AsResult(err) != OutOfMemory {
		t.Fatalf("Create beyond capacity = %v, want OutOfMemory", err)
	}
}

func TestDuplicateKey(t *testing.T) {
	reg := NewRegistry()
	tbl := mustDefine(t, reg, 0, "t", 4)
	if err := reg.DefineKey(0, "k", KindByte, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFields(0, []FieldDescriptor{{Name: "v", Kind: KindByte}}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Create(ByteValue(1), []Value{ByteValue(0)}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Create(ByteValue(1), []Value{ByteValue(0)}); AsResult(err) != DuplicateKey {
		t.Fatalf("Create(duplicate) = %v, want DuplicateKey", err)
	}
}

func TestMemoryFootprintReflectsDeclaredCapacity(t *testing.T) {
	reg := NewRegistry()
	tbl := mustDefine(t, reg, 0, "t", 1000)
	if err := reg.DefineKey(0, "k", KindUInt32, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFields(0, []FieldDescriptor{{Name: "v", Kind: KindUInt32}}); err != nil {
		t.Fatal(err)
	}
	before := tbl.MemoryFootprint()
	if err := tbl.Create(UInt32Value(1), []Value{UInt32Value(1)}); err != nil {
		t.Fatal(err)
	}
	after := tbl.MemoryFootprint()
	if before != after {
		t.Fatalf("MemoryFootprint changed after insert (%d -> %d); it must reflect declared capacity, not usage", before, after)
	}
	want := int64(controlBlockSize) + 1000*int64(tbl.Schema().SlotSize)
	if after != want {
		t.Fatalf("MemoryFootprint = %d, want %d", after, want)
	}
}
