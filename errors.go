package bloom

import "errors"

var (
	// ErrFilterBytes rejects filter sizes that are not positive multiples
	// of four bytes.
	ErrFilterBytes = errors.New("bloom: filterBytes must be a positive multiple of 4")

	// ErrHashCount rejects hash counts outside the supported range.
	ErrHashCount = errors.New("bloom: invalid hashCount")

	// ErrNoHashFunctions rejects hash sources built without any function.
	ErrNoHashFunctions = errors.New("bloom: at least one hash function is required")

	// ErrInsufficientEntropy rejects configurations whose hash source
	// cannot supply hashCount independent index fields.
	ErrInsufficientEntropy = errors.New("bloom: hash source has too few bits for the requested configuration")

	// ErrIncompatibleConfig is returned by binary filter operations when
	// the operands were built from structurally different configurations.
	ErrIncompatibleConfig = errors.New("bloom: filters must share a structurally equal configuration")

	// ErrRemoveUnsupported is returned by FilterSet.Remove. A filter
	// cannot un-set a bit that other elements may share.
	ErrRemoveUnsupported = errors.New("bloom: removal is not supported")

	// ErrBitArrayKind is returned when a binary bit array operation mixes
	// implementations.
	ErrBitArrayKind = errors.New("bloom: mismatched bit array implementations")

	// ErrBitArraySize is returned when bit array sizes do not line up.
	ErrBitArraySize = errors.New("bloom: mismatched bit array size")
)
