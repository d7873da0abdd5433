package bloom

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/YuyaAizawa/bloom/internal/util"
)

// HashConfig is the immutable parameter set shared by a family of filters:
// the number of index derivations per element, the filter size, and the
// width of each index field sliced from the raw hash material. Configs are
// read-only after construction and safe to share across goroutines.
type HashConfig struct {
	hashCount   uint
	filterBytes uint
	hashBits    uint
	hashMask    uint32
	source      HashSource
}

// NewHashConfig validates and builds a configuration.
// filterBytes must be a positive multiple of 4 and the source must supply
// at least hashBits*hashCount bits, where hashBits is the field width
// needed to address every bit slot of the filter.
func NewHashConfig(source HashSource, hashCount, filterBytes uint) (*HashConfig, error) {
	if filterBytes == 0 || filterBytes%4 != 0 {
		return nil, fmt.Errorf("%w, got %d", ErrFilterBytes, filterBytes)
	}
	if hashCount < 1 {
		return nil, fmt.Errorf("%w: hashCount must be at least 1, got %d", ErrHashCount, hashCount)
	}
	hashBits := uint(bits.Len(uint(filterBytes*8 - 1)))
	if hashBits*hashCount > source.AvailableBits() {
		return nil, fmt.Errorf("%w: need %d bits, source provides %d",
			ErrInsufficientEntropy, hashBits*hashCount, source.AvailableBits())
	}
	return &HashConfig{
		hashCount:   hashCount,
		filterBytes: filterBytes,
		hashBits:    hashBits,
		hashMask:    uint32(1)<<hashBits - 1,
		source:      source,
	}, nil
}

// NewEstimatedConfig sizes a configuration for numItems elements at the
// given false positive rate, rounding the filter size up to a multiple of
// four bytes. The source still has to supply enough bits for the derived
// hash count.
func NewEstimatedConfig(source HashSource, numItems uint, errorRate float64) (*HashConfig, error) {
	mBits := util.CalculateFilterBits(numItems, errorRate)
	filterBytes := util.RoundUp(util.Max((mBits+7)/8, 4), 4)
	hashCount := util.Max(util.CalculateNumHashes(filterBytes*8, numItems), 1)
	return NewHashConfig(source, hashCount, filterBytes)
}

// HashCount returns the number of bit positions derived per element.
func (c *HashConfig) HashCount() uint {
	return c.hashCount
}

// FilterBytes returns the filter size in bytes.
func (c *HashConfig) FilterBytes() uint {
	return c.filterBytes
}

// FilterBits returns the number of bit slots in a filter.
func (c *HashConfig) FilterBits() uint {
	return c.filterBytes * 8
}

// HashBits returns the width in bits of each index field.
func (c *HashConfig) HashBits() uint {
	return c.hashBits
}

// Equals reports structural equality. Two independently constructed
// configurations with identical parameters are interchangeable; the hash
// sources are expected to agree when the parameters do.
func (c *HashConfig) Equals(other *HashConfig) bool {
	return c.hashCount == other.hashCount &&
		c.filterBytes == other.filterBytes &&
		c.hashBits == other.hashBits
}

// BitPositions derives the element's bit positions. Field i occupies bits
// [i*hashBits, (i+1)*hashBits) of the raw hash material and is read as a
// little-endian 32-bit word at byte offset i*hashBits/8, shifted and
// masked. The three pad bytes keep the final, possibly byte-unaligned,
// 4-byte read in range. The scratch buffer is per call, so concurrent
// readers never share state.
func (c *HashConfig) BitPositions(element []byte) []uint {
	raw := c.source.HashBytes(element)
	buf := make([]byte, len(raw)+3)
	copy(buf, raw)

	m := c.filterBytes * 8
	positions := make([]uint, c.hashCount)
	for i := uint(0); i < c.hashCount; i++ {
		offset := i * c.hashBits
		w := binary.LittleEndian.Uint32(buf[offset/8:])
		p := uint(w>>(offset%8)) & uint(c.hashMask)
		// The mask spans ceil(log2(m)) bits, so for bit counts that are
		// not powers of two the masked value can exceed m-1 by less
		// than m.
		if p >= m {
			p -= m
		}
		positions[i] = p
	}
	return positions
}

// Add sets the element's bit positions in the given bit array. Remote
// arrays get all positions in one batch.
func (c *HashConfig) Add(array BitArray, element []byte) error {
	positions := c.BitPositions(element)
	if _, ok := array.(*BitArrayMem); ok {
		for _, p := range positions {
			if _, err := array.Insert(p); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := array.InsertMulti(positions)
	return err
}

// Contains tests the element's bit positions in the given bit array,
// returning false on the first unset bit. A false result is definitive; a
// true result may be a false positive.
func (c *HashConfig) Contains(array BitArray, element []byte) (bool, error) {
	for _, p := range c.BitPositions(element) {
		ok, err := array.Has(p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
