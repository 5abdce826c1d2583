// Package bitset implements a bit array for dense indexes.
//
package bitset // import "github.com/chalonverse/llvm/internal/bitset"

const uintSize = 32 << (^uint(0) >> 32 & 1) // 32 or 64

// Bitset is a bit array for dense indexes.
type Bitset []uint

// NewBitset constructs a Bitset holding n bits.
func NewBitset(n int) Bitset {
	return make(Bitset, (n+uintSize-1)/uintSize)
}

// Set sets the bit at index i.
func (bs Bitset) Set(i int) {
	bs[i/uintSize] |= 1 << (uint(i) % uintSize)
}

// Test tests the bit at index i.
func (bs Bitset) Test(i int) bool {
	return bs[i/uintSize]&(1<<(uint(i)%uintSize)) != 0
}
