package bloom

import (
	"bytes"
	"testing"
)

func TestBitArrayMemInsertHas(t *testing.T) {
	array := NewBitArrayMem(64)
	array.Insert(2)
	array.Insert(3)
	array.Insert(63)
	if ok, _ := array.Has(3); !ok {
		t.Errorf("should be true at index 3, got %v", ok)
	}
	if ok, _ := array.Has(4); ok {
		t.Errorf("should be false at index 4, got %v", ok)
	}
	if ok, _ := array.Has(63); !ok {
		t.Errorf("should be true at index 63, got %v", ok)
	}
}

func TestBitArrayMemInsertMulti(t *testing.T) {
	array := NewBitArrayMem(64)
	array.InsertMulti([]uint{1, 3, 7, 9})
	for _, index := range []uint{1, 3, 7, 9} {
		if ok, _ := array.Has(index); !ok {
			t.Errorf("should be true at index %d, got %v", index, ok)
		}
	}
	if ok, _ := array.Has(4); ok {
		t.Errorf("should be false at index 4, got %v", ok)
	}
}

func TestBitArrayMemSuperset(t *testing.T) {
	aArray := NewBitArrayMem(64)
	bArray := NewBitArrayMem(64)
	aArray.InsertMulti([]uint{1, 3, 7, 40})
	bArray.InsertMulti([]uint{1, 40})
	if ok, _ := aArray.Superset(bArray); !ok {
		t.Error("aArray should be a superset of bArray")
	}
	if ok, _ := bArray.Superset(aArray); ok {
		t.Error("bArray should not be a superset of aArray")
	}
}

func TestBitArrayMemUnion(t *testing.T) {
	aArray := NewBitArrayMem(64)
	bArray := NewBitArrayMem(64)
	aArray.InsertMulti([]uint{1, 3})
	bArray.InsertMulti([]uint{3, 40})
	merged, err := aArray.Union(bArray)
	if err != nil {
		t.Fatalf("error computing union: %v", err)
	}
	for _, index := range []uint{1, 3, 40} {
		if ok, _ := merged.Has(index); !ok {
			t.Errorf("union should be true at index %d", index)
		}
	}
	if count, _ := merged.BitCount(); count != 3 {
		t.Errorf("union bit count %v should be 3", count)
	}
	if ok, _ := aArray.Has(40); ok {
		t.Error("union should not mutate its operands")
	}
}

func TestBitArrayMemEqualsAndClear(t *testing.T) {
	aArray := NewBitArrayMem(64)
	bArray := NewBitArrayMem(64)
	aArray.InsertMulti([]uint{5, 6})
	bArray.InsertMulti([]uint{5, 6})
	if ok, _ := aArray.Equals(bArray); !ok {
		t.Error("arrays with identical bits should be equal")
	}
	aArray.Clear()
	if ok, _ := aArray.Equals(bArray); ok {
		t.Error("cleared array should no longer equal a populated one")
	}
	if count, _ := aArray.BitCount(); count != 0 {
		t.Errorf("cleared array bit count %v should be 0", count)
	}
}

func TestBitArrayMemByteLayout(t *testing.T) {
	array := NewBitArrayMem(64)
	array.InsertMulti([]uint{0, 33, 63})
	data, err := array.ToByteArray()
	if err != nil {
		t.Fatalf("error exporting array: %v", err)
	}
	want := []byte{0, 0, 0, 1, 0x80, 0, 0, 2}
	if !bytes.Equal(data, want) {
		t.Errorf("export %v should be %v", data, want)
	}
}

func TestBitArrayMemFromBytesRoundTrip(t *testing.T) {
	array := NewBitArrayMem(96)
	array.InsertMulti([]uint{0, 31, 32, 64, 95})
	data, _ := array.ToByteArray()
	rebuilt, err := BitArrayMemFromBytes(data)
	if err != nil {
		t.Fatalf("error rebuilding array: %v", err)
	}
	if ok, _ := rebuilt.Equals(array); !ok {
		t.Error("rebuilt array should equal the original")
	}
	if _, err := BitArrayMemFromBytes([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for export length not a multiple of 4")
	}
}
