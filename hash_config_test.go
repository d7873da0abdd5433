package bloom

import (
	"errors"
	"testing"
)

func newTestConfig(t *testing.T, hashCount, filterBytes uint) *HashConfig {
	t.Helper()
	source, err := NewFunctionSource(MetroHash(1373), XXHash())
	if err != nil {
		t.Fatalf("error creating hash source: %v", err)
	}
	config, err := NewHashConfig(source, hashCount, filterBytes)
	if err != nil {
		t.Fatalf("error creating config: %v", err)
	}
	return config
}

func TestConfigFilterBytesValidation(t *testing.T) {
	source, _ := NewFunctionSource(XXHash())
	for _, filterBytes := range []uint{0, 3, 10, 1023} {
		_, err := NewHashConfig(source, 1, filterBytes)
		if !errors.Is(err, ErrFilterBytes) {
			t.Errorf("filterBytes %d: expected ErrFilterBytes, got %v", filterBytes, err)
		}
	}
	if _, err := NewHashConfig(source, 1, 4); err != nil {
		t.Errorf("filterBytes 4 should be accepted, got %v", err)
	}
}

func TestConfigHashCountValidation(t *testing.T) {
	source, _ := NewFunctionSource(XXHash())
	_, err := NewHashConfig(source, 0, 1024)
	if !errors.Is(err, ErrHashCount) {
		t.Errorf("expected ErrHashCount, got %v", err)
	}
}

func TestConfigEntropyValidation(t *testing.T) {
	// 1024 bytes = 8192 slots, 13 bits per index.
	source, _ := NewFunctionSource(XXHash())
	_, err := NewHashConfig(source, 3, 1024)
	if !errors.Is(err, ErrInsufficientEntropy) {
		t.Errorf("3x13 bits from a 32-bit source: expected ErrInsufficientEntropy, got %v", err)
	}
	if _, err := NewHashConfig(source, 2, 1024); err != nil {
		t.Errorf("2x13 bits from a 32-bit source should fit, got %v", err)
	}

	digest := NewSHA256Source(nil)
	if _, err := NewHashConfig(digest, 19, 1024); err != nil {
		t.Errorf("19x13 bits from a 256-bit digest should fit, got %v", err)
	}
	_, err = NewHashConfig(digest, 20, 1024)
	if !errors.Is(err, ErrInsufficientEntropy) {
		t.Errorf("20x13 bits from a 256-bit digest: expected ErrInsufficientEntropy, got %v", err)
	}
}

func TestConfigStructuralEquality(t *testing.T) {
	aConfig := newTestConfig(t, 2, 1024)
	bConfig := newTestConfig(t, 2, 1024)
	if !aConfig.Equals(bConfig) {
		t.Error("independently constructed configs with identical parameters should be equal")
	}
	cConfig := newTestConfig(t, 1, 1024)
	if aConfig.Equals(cConfig) {
		t.Error("configs with different hash counts should not be equal")
	}
	dConfig := newTestConfig(t, 2, 512)
	if aConfig.Equals(dConfig) {
		t.Error("configs with different sizes should not be equal")
	}
}

func TestConfigDerivedParameters(t *testing.T) {
	config := newTestConfig(t, 2, 1024)
	if config.FilterBytes() != 1024 {
		t.Errorf("filterBytes: %v should be 1024", config.FilterBytes())
	}
	if config.FilterBits() != 8192 {
		t.Errorf("filterBits: %v should be 8192", config.FilterBits())
	}
	if config.HashBits() != 13 {
		t.Errorf("hashBits: %v should be 13", config.HashBits())
	}
	if config.HashCount() != 2 {
		t.Errorf("hashCount: %v should be 2", config.HashCount())
	}
}

func TestBitPositionsBoundary(t *testing.T) {
	// Minimal one-word filter: 32 slots, 5-bit index fields.
	source, _ := NewFunctionSource(constHashFunc(0xFFFFFFFF))
	config, err := NewHashConfig(source, 1, 4)
	if err != nil {
		t.Fatalf("error creating config: %v", err)
	}
	positions := config.BitPositions([]byte("x"))
	if len(positions) != 1 || positions[0] != 31 {
		t.Errorf("positions %v should be [31]", positions)
	}
}

func TestBitPositionsByteAlignedSlices(t *testing.T) {
	// 32 bytes = 256 slots, so index fields are exactly one byte wide and
	// the positions spell out the little-endian concatenation order.
	source, _ := NewFunctionSource(constHashFunc(0x04030201), constHashFunc(0x08070605))
	config, err := NewHashConfig(source, 8, 32)
	if err != nil {
		t.Fatalf("error creating config: %v", err)
	}
	positions := config.BitPositions([]byte("x"))
	for i, want := range []uint{1, 2, 3, 4, 5, 6, 7, 8} {
		if positions[i] != want {
			t.Errorf("position %d: %v should be %v", i, positions[i], want)
		}
	}
}

func TestBitPositionsUnalignedSlices(t *testing.T) {
	// Six 5-bit fields packed into one 32-bit hash.
	hash := uint32(7 | 10<<5 | 3<<10 | 31<<15 | 0<<20 | 16<<25)
	source, _ := NewFunctionSource(constHashFunc(hash))
	config, err := NewHashConfig(source, 6, 4)
	if err != nil {
		t.Fatalf("error creating config: %v", err)
	}
	positions := config.BitPositions([]byte("x"))
	for i, want := range []uint{7, 10, 3, 31, 0, 16} {
		if positions[i] != want {
			t.Errorf("position %d: %v should be %v", i, positions[i], want)
		}
	}
}

func TestBitPositionsInRange(t *testing.T) {
	config := newTestConfig(t, 2, 1024)
	for i := 0; i < 1000; i++ {
		element := []byte{byte(i), byte(i >> 8)}
		for _, p := range config.BitPositions(element) {
			if p >= config.FilterBits() {
				t.Fatalf("position %d out of range for %d slots", p, config.FilterBits())
			}
		}
	}
}

func TestEstimatedConfig(t *testing.T) {
	config, err := NewEstimatedConfig(NewSHA256Source(nil), 1000, 0.01)
	if err != nil {
		t.Fatalf("error creating estimated config: %v", err)
	}
	if config.FilterBytes()%4 != 0 || config.FilterBytes() == 0 {
		t.Errorf("filterBytes %v should be a positive multiple of 4", config.FilterBytes())
	}
	if config.HashCount() < 1 {
		t.Errorf("hashCount %v should be at least 1", config.HashCount())
	}
	filter := config.Empty()
	for i := 0; i < 100; i++ {
		filter.Add([]byte{byte(i)})
	}
	for i := 0; i < 100; i++ {
		if !filter.Contains([]byte{byte(i)}) {
			t.Fatalf("element %d should be in filter", i)
		}
	}
}
