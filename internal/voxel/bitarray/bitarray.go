// Package bitarray implements a fixed-size bit vector backed by 32-bit
// words, bounds-checked on every per-bit access.
package bitarray

import (
	"errors"

	"github.com/voxelcore/voxelengine/internal/voxel/bitops"
)

// ErrOutOfRange is returned when a bit position falls outside the array.
var ErrOutOfRange = errors.New("bitarray: position out of range")

// BitArray is a contiguous sequence of N 32-bit words addressed bit by bit.
type BitArray struct {
	words []uint32
}

// New allocates a BitArray with n words. Requests of n<1 default to 1.
func New(n int) *BitArray {
	if n < 1 {
		n = 1
	}
	return &BitArray{words: make([]uint32, n)}
}

// Len returns the number of 32-bit words backing the array.
func (a *BitArray) Len() int { return len(a.words) }

// Words exposes the underlying word slice for bulk operations (e.g. the
// BVXLayer's whole-voxel fill/empty).
func (a *BitArray) Words() []uint32 { return a.words }

func (a *BitArray) split(pos int) (word int, bit uint, err error) {
	if pos < 0 {
		return 0, 0, ErrOutOfRange
	}
	word = pos >> 5
	if word >= len(a.words) {
		return 0, 0, ErrOutOfRange
	}
	return word, uint(pos & 31), nil
}

// BitAt returns the bit at pos.
func (a *BitArray) BitAt(pos int) (uint32, error) {
	w, b, err := a.split(pos)
	if err != nil {
		return 0, err
	}
	return bitops.BitAt(a.words[w], b), nil
}

// BitInvAt returns the inverse of the bit at pos.
func (a *BitArray) BitInvAt(pos int) (uint32, error) {
	w, b, err := a.split(pos)
	if err != nil {
		return 0, err
	}
	return bitops.BitInvAt(a.words[w], b), nil
}

// SetBitAt sets the bit at pos to 1.
func (a *BitArray) SetBitAt(pos int) error {
	w, b, err := a.split(pos)
	if err != nil {
		return err
	}
	a.words[w] = bitops.SetBitAt(a.words[w], b)
	return nil
}

// UnsetBitAt clears the bit at pos.
func (a *BitArray) UnsetBitAt(pos int) error {
	w, b, err := a.split(pos)
	if err != nil {
		return err
	}
	a.words[w] = bitops.UnsetBitAt(a.words[w], b)
	return nil
}

// ToggleBitAt flips the bit at pos.
func (a *BitArray) ToggleBitAt(pos int) error {
	w, b, err := a.split(pos)
	if err != nil {
		return err
	}
	a.words[w] = bitops.ToggleBitAt(a.words[w], b)
	return nil
}

// SetBit sets or clears the bit at pos depending on val.
func (a *BitArray) SetBit(pos int, val uint32) error {
	w, b, err := a.split(pos)
	if err != nil {
		return err
	}
	a.words[w] = bitops.SetBit(a.words[w], b, val)
	return nil
}

// PopCount returns the total number of set bits across the whole array.
func (a *BitArray) PopCount() uint32 {
	var total uint32
	for _, w := range a.words {
		total += bitops.PopCount(w)
	}
	return total
}
