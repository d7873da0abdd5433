package bloom

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	metro "github.com/dgryski/go-metro"
)

// HashFunc maps an element to a 32-bit hash value. Functions must be
// deterministic; everything else about the hash algorithm is up to the
// caller.
type HashFunc func(element []byte) uint32

// HashSource produces the raw hash material a HashConfig slices bit
// positions from.
type HashSource interface {
	// HashBytes returns AvailableBits()/8 bytes of hash material for element.
	HashBytes(element []byte) []byte

	// AvailableBits is the number of hash bits produced per element.
	AvailableBits() uint
}

// MetroHash returns a HashFunc that truncates a seeded metro hash to
// 32 bits.
func MetroHash(seed uint64) HashFunc {
	return func(element []byte) uint32 {
		return uint32(metro.Hash64(element, seed))
	}
}

// XXHash returns a HashFunc that truncates xxhash to 32 bits.
func XXHash() HashFunc {
	return func(element []byte) uint32 {
		return uint32(xxhash.Sum64(element))
	}
}

type functionSource struct {
	funcs []HashFunc
}

// NewFunctionSource creates a HashSource from one or more 32-bit hash
// functions. The raw hash material is the concatenation of each function's
// output in little-endian byte order: the first function fills bytes 0-3,
// the second bytes 4-7, and so on. This order is part of the byte-export
// contract and must not change.
func NewFunctionSource(funcs ...HashFunc) (HashSource, error) {
	if len(funcs) == 0 {
		return nil, ErrNoHashFunctions
	}
	return &functionSource{funcs: funcs}, nil
}

func (s *functionSource) HashBytes(element []byte) []byte {
	buf := make([]byte, 4*len(s.funcs))
	for i, f := range s.funcs {
		binary.LittleEndian.PutUint32(buf[4*i:], f(element))
	}
	return buf
}

func (s *functionSource) AvailableBits() uint {
	return 32 * uint(len(s.funcs))
}

type digestSource struct {
	salt []byte
}

// NewSHA256Source creates a HashSource that digests salt followed by the
// element bytes. Digest state is created per call, so the source holds no
// shared mutable state and may be used from multiple goroutines.
func NewSHA256Source(salt []byte) HashSource {
	return &digestSource{salt: append([]byte(nil), salt...)}
}

func (s *digestSource) HashBytes(element []byte) []byte {
	h := sha256.New()
	h.Write(s.salt)
	h.Write(element)
	return h.Sum(nil)
}

func (s *digestSource) AvailableBits() uint {
	return 8 * sha256.Size
}
