package generator

import (
	"unicode/utf16"
)

// Seed derives the selection seed for a normalized prompt and file name.
// The hash runs over UTF-16 code units with 32-bit signed wraparound so the
// same inputs give the same seed on every platform.
func Seed(prompt, fileName string) uint32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(prompt + "|" + fileName)) {
		hash = hash*31 + int32(unit)
	}
	if hash < 0 {
		// -MinInt32 overflows int32 but fits in uint32
		return uint32(-int64(hash))
	}
	return uint32(hash)
}

// pick returns items[(seed+offset) mod len(items)]; items must be non-empty
func pick[T any](items []T, seed uint32, offset int) T {
	idx := (uint64(seed) + uint64(offset)) % uint64(len(items))
	return items[idx]
}
