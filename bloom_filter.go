/*
Package bloom implements configurable Bloom filters.

A HashConfig turns an element into a fixed number of bit positions, either
by slicing the concatenated output of caller-supplied 32-bit hash functions
or by slicing a salted SHA-256 digest of the element bytes. Filters built
from the same configuration share its bit layout and combine with union and
superset tests. Bits can live in memory (bits-and-blooms/bitset) or in a
redis bitmap.
*/
package bloom

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// Filter is a packed bit array tied to the HashConfig that populates it.
// A Filter is a mutable accumulator and is not safe for concurrent
// mutation; callers must serialize access.
type Filter struct {
	config *HashConfig
	bits   BitArray
}

// Empty returns an all-zero in-memory filter for this configuration.
func (c *HashConfig) Empty() *Filter {
	return &Filter{config: c, bits: NewBitArrayMem(c.filterBytes * 8)}
}

// EmptyRedis returns an all-zero redis-backed filter for this
// configuration. MakeRedisClient must have been called first.
func (c *HashConfig) EmptyRedis() (*Filter, error) {
	array, err := NewBitArrayRedis(c.filterBytes * 8)
	if err != nil {
		return nil, err
	}
	return &Filter{config: c, bits: array}, nil
}

// FilterOf returns a fresh in-memory filter holding the given elements.
func (c *HashConfig) FilterOf(elements ...[]byte) *Filter {
	f := c.Empty()
	for _, element := range elements {
		f.Add(element)
	}
	return f
}

// FilterOfStrings returns a fresh in-memory filter holding the given
// string elements.
func (c *HashConfig) FilterOfStrings(elements ...string) *Filter {
	f := c.Empty()
	for _, element := range elements {
		f.AddString(element)
	}
	return f
}

// NewFilterWithBitArray wraps an existing bit array in a filter for config.
func NewFilterWithBitArray(config *HashConfig, array BitArray) (*Filter, error) {
	if array.Size() != config.filterBytes*8 {
		return nil, fmt.Errorf("%w: bit array has %d bits, config needs %d",
			ErrBitArraySize, array.Size(), config.filterBytes*8)
	}
	return &Filter{config: config, bits: array}, nil
}

// FilterFromBytes rebuilds an in-memory filter from a ToByteArray export.
func FilterFromBytes(config *HashConfig, data []byte) (*Filter, error) {
	if uint(len(data)) != config.filterBytes {
		return nil, fmt.Errorf("%w: export has %d bytes, config needs %d",
			ErrBitArraySize, len(data), config.filterBytes)
	}
	array, err := BitArrayMemFromBytes(data)
	if err != nil {
		return nil, err
	}
	return &Filter{config: config, bits: array}, nil
}

// FilterFromRedisKey attaches a filter to the redis bitmap stored at key.
func FilterFromRedisKey(config *HashConfig, key string) (*Filter, error) {
	array, err := BitArrayRedisFromKey(key)
	if err != nil {
		return nil, err
	}
	return NewFilterWithBitArray(config, array)
}

// Config returns the configuration the filter was built from.
func (f *Filter) Config() *HashConfig {
	return f.config
}

// BitArray returns the storage backing the filter.
func (f *Filter) BitArray() BitArray {
	return f.bits
}

// Add inserts element into the filter in place and returns the filter for
// chaining.
func (f *Filter) Add(element []byte) *Filter {
	f.config.Add(f.bits, element)
	return f
}

// AddString inserts a string element.
func (f *Filter) AddString(element string) *Filter {
	return f.Add([]byte(element))
}

// Contains reports whether the filter may hold element. A false result is
// definitive; a true result may be a false positive. Elements actually
// added are always reported as contained.
func (f *Filter) Contains(element []byte) bool {
	ok, _ := f.config.Contains(f.bits, element)
	return ok
}

// ContainsString tests a string element.
func (f *Filter) ContainsString(element string) bool {
	return f.Contains([]byte(element))
}

// Clear zeroes the filter in place.
func (f *Filter) Clear() error {
	return f.bits.Clear()
}

// ContainsFilter reports whether every bit set in other is also set in f,
// which holds whenever the elements behind other are a subset of those
// behind f. A true result can still be a collective false positive; a
// genuine superset relationship is never reported false. Both filters must
// share a structurally equal configuration.
func (f *Filter) ContainsFilter(other *Filter) (bool, error) {
	if err := f.checkConfig(other); err != nil {
		return false, err
	}
	return f.bits.Superset(other.bits)
}

// Union returns a new filter holding the bitwise OR of both filters. The
// result represents exactly the filter of the union of the two element
// sets. Both filters must share a structurally equal configuration.
func (f *Filter) Union(other *Filter) (*Filter, error) {
	if err := f.checkConfig(other); err != nil {
		return nil, err
	}
	merged, err := f.bits.Union(other.bits)
	if err != nil {
		return nil, err
	}
	return &Filter{config: f.config, bits: merged}, nil
}

// Equals reports whether both filters hold identical bits. Both filters
// must share a structurally equal configuration.
func (f *Filter) Equals(other *Filter) (bool, error) {
	if err := f.checkConfig(other); err != nil {
		return false, err
	}
	return f.bits.Equals(other.bits)
}

func (f *Filter) checkConfig(other *Filter) error {
	if !f.config.Equals(other.config) {
		return ErrIncompatibleConfig
	}
	return nil
}

// ToByteArray exports the filter as FilterBytes() bytes: 32-bit words in
// index order, each word big-endian. The layout is identical across
// storage backends and is the only wire representation.
func (f *Filter) ToByteArray() ([]byte, error) {
	return f.bits.ToByteArray()
}

// ToByteStream returns a reader over the same bytes as ToByteArray. The
// export is fetched on first read; every call returns a fresh reader, so
// the stream restarts per call.
func (f *Filter) ToByteStream() io.Reader {
	return &filterReader{filter: f}
}

// ToBinaryString renders the filter most-significant word first, each word
// zero-padded to 32 bits.
func (f *Filter) ToBinaryString() (string, error) {
	data, err := f.ToByteArray()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(data) * 8)
	for i := len(data)/4 - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%032b", binary.BigEndian.Uint32(data[4*i:]))
	}
	return sb.String(), nil
}

// PositiveRate estimates the false positive probability from the current
// fill ratio.
func (f *Filter) PositiveRate() float64 {
	count, _ := f.bits.BitCount()
	m := float64(f.config.filterBytes * 8)
	return math.Pow(1-math.Exp(-float64(count)/m), float64(f.config.hashCount))
}

type filterReader struct {
	filter *Filter
	data   []byte
	pos    int
	loaded bool
	err    error
}

func (r *filterReader) Read(p []byte) (int, error) {
	if !r.loaded {
		r.data, r.err = r.filter.ToByteArray()
		r.loaded = true
	}
	if r.err != nil {
		return 0, r.err
	}
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
