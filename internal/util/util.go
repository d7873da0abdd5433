package util

import (
	"math"
	"math/rand"
	"time"
	"unsafe"
)

var src = rand.NewSource(time.Now().UnixNano())

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// CalculateFilterBits returns the bit count that keeps the false positive
// rate at errorRate for numItems elements.
func CalculateFilterBits(numItems uint, errorRate float64) uint {
	return uint(math.Ceil(-(float64(numItems) * math.Log(errorRate)) / math.Pow(math.Log(2), 2)))
}

// CalculateNumHashes returns the hash count that minimizes the false
// positive rate for a filter of size bits holding numItems elements.
func CalculateNumHashes(size, numItems uint) uint {
	return uint(math.Ceil(float64(size) / float64(numItems) * math.Log(2)))
}

// Max returns the larger of a and b.
func Max(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}

// RoundUp rounds n up to the next multiple of m.
func RoundUp(n, m uint) uint {
	return (n + m - 1) / m * m
}

// GenerateRandomString returns n random letters, used for redis keys.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	// A src.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, src.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}
