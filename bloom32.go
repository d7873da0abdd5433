package bloom

import "fmt"

// A 32-bit filter word needs 5 bits per index.
const (
	bloom32HashBits  = 5
	bloom32HashMask  = 1<<bloom32HashBits - 1
	bloom32MaxHashes = 32 / bloom32HashBits
)

// Bloom32 derives single-word Bloom filters: each element maps to a uint32
// with up to six bits set, sliced five bits at a time from one 32-bit
// hash. The word is its own filter; callers union words with | and test
// containment with Contains32. Bloom32 is independent of HashConfig and
// its byte layout.
type Bloom32 struct {
	hashCount uint
	hash      HashFunc
}

// NewBloom32 creates a derivation with hashCount index slices, 1 to 6.
func NewBloom32(hashCount uint, hash HashFunc) (*Bloom32, error) {
	if hashCount < 1 || hashCount > bloom32MaxHashes {
		return nil, fmt.Errorf("%w: hashCount %d outside 1..%d",
			ErrHashCount, hashCount, bloom32MaxHashes)
	}
	if hash == nil {
		return nil, ErrNoHashFunctions
	}
	return &Bloom32{hashCount: hashCount, hash: hash}, nil
}

// FilterOf returns the filter word for a single element.
func (b *Bloom32) FilterOf(element []byte) uint32 {
	var word uint32
	hash := b.hash(element)
	for i := uint(0); i < b.hashCount; i++ {
		word |= 1 << (hash & bloom32HashMask)
		hash >>= bloom32HashBits
	}
	return word
}

// FilterOfAll returns the union word over all elements.
func (b *Bloom32) FilterOfAll(elements ...[]byte) uint32 {
	var word uint32
	for _, element := range elements {
		word |= b.FilterOf(element)
	}
	return word
}

// Contains32 reports whether super holds every bit of sub.
func Contains32(super, sub uint32) bool {
	return (super&sub)^sub == 0
}
