// Package wordutil implements two's-complement helpers on an unsigned
// machine word. Values are stored sign-extended to the full word, so the
// word's own top bit can be used for sign tests regardless of the logical
// bit width.
package wordutil

import "unsafe"

// Bits is the width of the underlying word.
const Bits = int64(unsafe.Sizeof(uint64(0)) * 8)

const topBit = uint64(1) << 63

// Lshift shifts left, returning 0 if the shift consumes the whole word.
func Lshift(v uint64, n int64) uint64 {
	if n <= -Bits || n >= Bits {
		return 0
	}
	if n < 0 {
		return v >> uint(-n)
	}
	return v << uint(n)
}

// Rshift is a logical right shift with the same whole-word guard.
func Rshift(v uint64, n int64) uint64 {
	if n <= -Bits || n >= Bits {
		return 0
	}
	if n < 0 {
		return v << uint(-n)
	}
	return v >> uint(n)
}

// Arshift right-shifts v, filling with the sign bit if signed.
func Arshift(v uint64, n int64, signed bool) uint64 {
	if n == 0 {
		return v
	}
	if signed && v&topBit != 0 {
		if n >= Bits {
			return ^uint64(0)
		}
		return Rshift(v, n) | ^Rshift(^uint64(0), n)
	}
	return Rshift(v, n)
}

// Mask returns a mask covering the low totalBits bits.
func Mask(totalBits int64) uint64 {
	if totalBits <= 0 {
		return 0
	}
	if totalBits >= Bits {
		return ^uint64(0)
	}
	return 1<<uint(totalBits) - 1
}

// SignBit returns the bit marking the sign position for the given width.
func SignBit(totalBits int64) uint64 {
	return Lshift(1, totalBits-1)
}

// SignExtend fills the bits above totalBits with ones if the sign bit is
// set. v must already be masked to totalBits.
func SignExtend(v uint64, totalBits int64) uint64 {
	if totalBits < Bits && v&SignBit(totalBits) != 0 {
		return v | ^Mask(totalBits)
	}
	return v
}

// Negate returns the two's-complement negation of the bit pattern.
func Negate(v uint64) uint64 {
	return ^v + 1
}

// IsNeg reports whether a sign-extended pattern represents a negative value.
func IsNeg(v uint64, signed bool) bool {
	return signed && v&topBit != 0
}

// MaxScaled returns the largest representable scaled value for the width.
func MaxScaled(totalBits int64, signed bool) uint64 {
	if signed {
		return SignBit(totalBits) - 1
	}
	return Mask(totalBits)
}

// MinScaled returns the smallest representable scaled value, sign-extended.
func MinScaled(totalBits int64, signed bool) uint64 {
	if signed {
		return Lshift(^uint64(0), totalBits-1)
	}
	return 0
}

// MinScaledMag returns the magnitude of the smallest representable value.
func MinScaledMag(totalBits int64, signed bool) uint64 {
	if signed {
		return SignBit(totalBits)
	}
	return 0
}

// Compare compares two sign-extended patterns of equal total width.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(signed bool, a, b uint64) int {
	if signed {
		aNeg, bNeg := a&topBit != 0, b&topBit != 0
		switch {
		case (aNeg == bNeg && a > b) || (!aNeg && bNeg):
			return 1
		case (aNeg == bNeg && a < b) || (aNeg && !bNeg):
			return -1
		default:
			return 0
		}
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
