package bloom

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// BitArrayMem is the in-memory BitArray, backed by
// https://github.com/bits-and-blooms/bitset.
type BitArrayMem struct {
	set  *bitset.BitSet
	size uint
}

// NewBitArrayMem creates a zeroed in-memory bit array of size bits. Filters
// always pass a multiple of 32 so the word export is exact.
func NewBitArrayMem(size uint) *BitArrayMem {
	return &BitArrayMem{set: bitset.New(size), size: size}
}

// BitArrayMemFromBytes rebuilds an array from a ToByteArray export.
func BitArrayMemFromBytes(data []byte) (*BitArrayMem, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: export length must be a positive multiple of 4, got %d",
			ErrBitArraySize, len(data))
	}
	size := uint(len(data) * 8)
	set := bitset.New(size)
	for j, v := range data {
		if v == 0 {
			continue
		}
		// Byte j holds bits 8*(3-j%4)..8*(3-j%4)+7 of word j/4.
		base := uint(j/4)*32 + uint(3-j%4)*8
		for bit := uint(0); bit < 8; bit++ {
			if v&(1<<bit) != 0 {
				set.Set(base + bit)
			}
		}
	}
	return &BitArrayMem{set: set, size: size}, nil
}

// Size returns the number of bits in the array.
func (b *BitArrayMem) Size() uint {
	return b.size
}

// Insert sets the bit at index.
func (b *BitArrayMem) Insert(index uint) (bool, error) {
	b.set.Set(index)
	return true, nil
}

// InsertMulti sets every bit in indexes.
func (b *BitArrayMem) InsertMulti(indexes []uint) (bool, error) {
	for _, index := range indexes {
		b.set.Set(index)
	}
	return true, nil
}

// Has reports whether the bit at index is set.
func (b *BitArrayMem) Has(index uint) (bool, error) {
	return b.set.Test(index), nil
}

// Clear zeroes every bit.
func (b *BitArrayMem) Clear() error {
	b.set.ClearAll()
	return nil
}

// Superset reports whether every bit set in other is also set here.
func (b *BitArrayMem) Superset(other BitArray) (bool, error) {
	o, ok := other.(*BitArrayMem)
	if !ok {
		return false, fmt.Errorf("%w: expected *BitArrayMem", ErrBitArrayKind)
	}
	return b.set.IsSuperSet(o.set), nil
}

// Union returns a new in-memory array with the bitwise OR of both arrays.
func (b *BitArrayMem) Union(other BitArray) (BitArray, error) {
	o, ok := other.(*BitArrayMem)
	if !ok {
		return nil, fmt.Errorf("%w: expected *BitArrayMem", ErrBitArrayKind)
	}
	return &BitArrayMem{set: b.set.Union(o.set), size: b.size}, nil
}

// Equals reports whether both arrays hold identical bits.
func (b *BitArrayMem) Equals(other BitArray) (bool, error) {
	o, ok := other.(*BitArrayMem)
	if !ok {
		return false, fmt.Errorf("%w: expected *BitArrayMem", ErrBitArrayKind)
	}
	return b.set.Equal(o.set), nil
}

// BitCount returns the number of set bits.
func (b *BitArrayMem) BitCount() (uint, error) {
	return b.set.Count(), nil
}

// ToByteArray exports the canonical big-endian word layout.
func (b *BitArrayMem) ToByteArray() ([]byte, error) {
	out := make([]byte, b.size/8)
	for p, ok := b.set.NextSet(0); ok; p, ok = b.set.NextSet(p + 1) {
		word := p / 32
		bit := p % 32
		out[4*word+3-bit/8] |= 1 << (bit % 8)
	}
	return out, nil
}
