package bloom

import "fmt"

// A 64-bit filter word needs 6 bits per index.
const (
	bloom64HashBits  = 6
	bloom64HashMask  = 1<<bloom64HashBits - 1
	bloom64MaxHashes = 32 / bloom64HashBits
)

// Bloom64 is the 64-bit sibling of Bloom32: each element maps to a uint64
// with up to five bits set, sliced six bits at a time from one 32-bit
// hash.
type Bloom64 struct {
	hashCount uint
	hash      HashFunc
}

// NewBloom64 creates a derivation with hashCount index slices, 1 to 5.
func NewBloom64(hashCount uint, hash HashFunc) (*Bloom64, error) {
	if hashCount < 1 || hashCount > bloom64MaxHashes {
		return nil, fmt.Errorf("%w: hashCount %d outside 1..%d",
			ErrHashCount, hashCount, bloom64MaxHashes)
	}
	if hash == nil {
		return nil, ErrNoHashFunctions
	}
	return &Bloom64{hashCount: hashCount, hash: hash}, nil
}

// FilterOf returns the filter word for a single element.
func (b *Bloom64) FilterOf(element []byte) uint64 {
	var word uint64
	hash := b.hash(element)
	for i := uint(0); i < b.hashCount; i++ {
		word |= 1 << (hash & bloom64HashMask)
		hash >>= bloom64HashBits
	}
	return word
}

// FilterOfAll returns the union word over all elements.
func (b *Bloom64) FilterOfAll(elements ...[]byte) uint64 {
	var word uint64
	for _, element := range elements {
		word |= b.FilterOf(element)
	}
	return word
}

// Contains64 reports whether super holds every bit of sub.
func Contains64(super, sub uint64) bool {
	return (super&sub)^sub == 0
}
