package bloom

// BitArray is the storage backing a Filter: a fixed-size array of bits
// addressed 0..Size()-1. Implementations exist in memory (BitArrayMem) and
// on redis (BitArrayRedis). Binary operations require both operands to be
// of the same implementation and size.
type BitArray interface {
	// Size returns the number of bits.
	Size() uint

	// Insert sets the bit at index.
	Insert(index uint) (bool, error)

	// InsertMulti sets every bit in indexes.
	InsertMulti(indexes []uint) (bool, error)

	// Has reports whether the bit at index is set.
	Has(index uint) (bool, error)

	// Clear zeroes every bit.
	Clear() error

	// Superset reports whether every bit set in other is also set here.
	Superset(other BitArray) (bool, error)

	// Union returns a new array holding the bitwise OR of both arrays.
	Union(other BitArray) (BitArray, error)

	// Equals reports whether both arrays hold identical bits.
	Equals(other BitArray) (bool, error)

	// BitCount returns the number of set bits.
	BitCount() (uint, error)

	// ToByteArray exports the bits as Size()/8 bytes: 32-bit words in
	// index order, each word big-endian. Bit p lives in word p/32 at
	// position p%32. This layout is the wire representation shared by
	// all implementations.
	ToByteArray() ([]byte, error)
}
