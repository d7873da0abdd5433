package bloom

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/redis/go-redis/v9"

	"github.com/YuyaAizawa/bloom/internal/util"
)

// BitArrayRedis is the redis-backed BitArray. The bits live in a redis
// string manipulated with bitmap commands, so filters sharing a
// configuration can also share state across processes. Redis numbers bit 0
// as the most significant bit of byte 0; ToByteArray converts back to the
// canonical word layout, which keeps exports interchangeable with
// BitArrayMem.
// For more details, please refer https://redis.io/docs/data-types/bitmaps/
type BitArrayRedis struct {
	size uint
	key  string
}

// NewBitArrayRedis creates a zeroed bit array of size bits under a random
// key. MakeRedisClient must have been called first.
func NewBitArrayRedis(size uint) (*BitArrayRedis, error) {
	key := util.GenerateRandomString(16)
	zero := make([]byte, (size+7)/8)
	err := getRedisClient().Set(context.Background(), key, string(zero), 0).Err()
	if err != nil {
		return nil, fmt.Errorf("bloom: error creating redis bit array: %w", err)
	}
	return &BitArrayRedis{size: size, key: key}, nil
}

// BitArrayRedisFromKey attaches to the bitmap already stored at key.
func BitArrayRedisFromKey(key string) (*BitArrayRedis, error) {
	val, err := getRedisClient().Get(context.Background(), key).Result()
	if err != nil {
		return nil, fmt.Errorf("bloom: error reading redis bit array: %w", err)
	}
	return &BitArrayRedis{size: uint(len(val) * 8), key: key}, nil
}

// Key returns the redis key holding the bitmap.
func (b *BitArrayRedis) Key() string {
	return b.key
}

// Size returns the number of bits in the array.
func (b *BitArrayRedis) Size() uint {
	return b.size
}

// Insert sets the bit at index.
func (b *BitArrayRedis) Insert(index uint) (bool, error) {
	err := getRedisClient().SetBit(context.Background(), b.key, int64(index), 1).Err()
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertMulti sets every bit in indexes with a single pipelined round trip.
func (b *BitArrayRedis) InsertMulti(indexes []uint) (bool, error) {
	if len(indexes) == 0 {
		return false, fmt.Errorf("bloom: at least one index is required")
	}
	ctx := context.Background()
	pipe := getRedisClient().Pipeline()
	for i := range indexes {
		pipe.SetBit(ctx, b.key, int64(indexes[i]), 1)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Has reports whether the bit at index is set.
func (b *BitArrayRedis) Has(index uint) (bool, error) {
	val, err := getRedisClient().GetBit(context.Background(), b.key, int64(index)).Result()
	if err != nil {
		return false, err
	}
	return val != 0, nil
}

// Clear resets the bitmap to all zeroes.
func (b *BitArrayRedis) Clear() error {
	zero := make([]byte, (b.size+7)/8)
	return getRedisClient().Set(context.Background(), b.key, string(zero), 0).Err()
}

// Superset reports whether every bit set in other is also set here.
func (b *BitArrayRedis) Superset(other BitArray) (bool, error) {
	o, ok := other.(*BitArrayRedis)
	if !ok {
		return false, fmt.Errorf("%w: expected *BitArrayRedis", ErrBitArrayKind)
	}
	aVal, bVal, err := fetchBitmapPair(b.key, o.key)
	if err != nil {
		return false, err
	}
	if len(aVal) != len(bVal) {
		return false, fmt.Errorf("%w: %d != %d bytes", ErrBitArraySize, len(aVal), len(bVal))
	}
	for i := range bVal {
		if aVal[i]&bVal[i] != bVal[i] {
			return false, nil
		}
	}
	return true, nil
}

// Union stores the bitwise OR of both bitmaps under a fresh key and
// returns the array attached to it.
func (b *BitArrayRedis) Union(other BitArray) (BitArray, error) {
	o, ok := other.(*BitArrayRedis)
	if !ok {
		return nil, fmt.Errorf("%w: expected *BitArrayRedis", ErrBitArrayKind)
	}
	aVal, bVal, err := fetchBitmapPair(b.key, o.key)
	if err != nil {
		return nil, err
	}
	if len(aVal) != len(bVal) {
		return nil, fmt.Errorf("%w: %d != %d bytes", ErrBitArraySize, len(aVal), len(bVal))
	}
	merged := make([]byte, len(aVal))
	for i := range aVal {
		merged[i] = aVal[i] | bVal[i]
	}
	key := util.GenerateRandomString(16)
	err = getRedisClient().Set(context.Background(), key, string(merged), 0).Err()
	if err != nil {
		return nil, err
	}
	return &BitArrayRedis{size: b.size, key: key}, nil
}

// Equals reports whether both bitmaps hold identical bits.
func (b *BitArrayRedis) Equals(other BitArray) (bool, error) {
	o, ok := other.(*BitArrayRedis)
	if !ok {
		return false, fmt.Errorf("%w: expected *BitArrayRedis", ErrBitArrayKind)
	}
	aVal, bVal, err := fetchBitmapPair(b.key, o.key)
	if err != nil {
		return false, err
	}
	return bytes.Equal(aVal, bVal), nil
}

// BitCount returns the number of set bits.
func (b *BitArrayRedis) BitCount() (uint, error) {
	bitRange := &redis.BitCount{Start: 0, End: -1}
	val, err := getRedisClient().BitCount(context.Background(), b.key, bitRange).Result()
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}

// ToByteArray exports the canonical big-endian word layout. Each redis byte
// is bit-reversed to translate the MSB-first bitmap order into the word
// layout's LSB-first bit positions.
func (b *BitArrayRedis) ToByteArray() ([]byte, error) {
	val, err := getRedisClient().Get(context.Background(), b.key).Result()
	if err != nil {
		return nil, err
	}
	raw := make([]byte, b.size/8)
	copy(raw, val)
	out := make([]byte, b.size/8)
	for i := uint(0); i < b.size/32; i++ {
		w := uint32(bits.Reverse8(raw[4*i])) |
			uint32(bits.Reverse8(raw[4*i+1]))<<8 |
			uint32(bits.Reverse8(raw[4*i+2]))<<16 |
			uint32(bits.Reverse8(raw[4*i+3]))<<24
		binary.BigEndian.PutUint32(out[4*i:], w)
	}
	return out, nil
}

func fetchBitmapPair(aKey, bKey string) ([]byte, []byte, error) {
	ctx := context.Background()
	aVal, err := getRedisClient().Get(ctx, aKey).Result()
	if err != nil {
		return nil, nil, err
	}
	bVal, err := getRedisClient().Get(ctx, bKey).Result()
	if err != nil {
		return nil, nil, err
	}
	return []byte(aVal), []byte(bVal), nil
}
