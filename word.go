// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"math"
	"math/big"

	wu "github.com/avdva/fpbin/internal/wordutil"
)

// The compact representation keeps the two's-complement bit pattern of the
// scaled value in a single machine word, sign-extended to the full word
// width. Negative numbers come out in the wash of ordinary unsigned
// arithmetic; sign handling is explicit everywhere a shift or compare needs
// it, since relying on signed-integer overflow is not portable.

func wordFromBits(bits uint64, f Format) Value {
	w := bits & wu.Mask(f.TotalBits())
	if f.Signed {
		w = wu.SignExtend(w, f.TotalBits())
	}
	return Value{format: f, word: w}
}

// wordFromFloat scales value by 2^FracBits, pre-saturates to the word range
// and then reconciles with the requested format. Only RoundNearPosInf
// adjusts before the floor; every other mode truncates.
func wordFromFloat(value float64, f Format, ov OverflowMode, rnd RoundMode) (Value, error) {
	maxScaled := wu.MaxScaled(wu.Bits, f.Signed)
	minScaled := wu.MinScaled(wu.Bits, f.Signed)
	minScaledMag := wu.MinScaledMag(wu.Bits, f.Signed)

	scaled := math.Ldexp(value, int(f.FracBits))
	if rnd == RoundNearPosInf {
		scaled += 0.5
	}
	scaled = math.Floor(scaled)

	var w uint64
	switch {
	case scaled >= float64(maxScaled):
		w = maxScaled
	case scaled <= -float64(minScaledMag):
		w = minScaled
	case f.Signed && scaled < 0:
		w = wu.Negate(uint64(-scaled))
	default:
		w = uint64(scaled)
	}
	return wordCheckOverflow(Value{format: f, word: w}, ov, false, false)
}

func wordWrap(w uint64, signed bool, maxScaled, signBit uint64) uint64 {
	// Subtracting the sign bit from the magnitude-masked value wraps into
	// the negative range and sign-extends in one go.
	if signed && w&signBit != 0 {
		return (w & maxScaled) - signBit
	}
	return w & maxScaled
}

// wordCheckOverflow reconciles the pattern with the value's declared format.
// forcePos/forceNeg let resize report an overflow that already destroyed
// the evidence, like int bits lost to a native left shift.
func wordCheckOverflow(v Value, ov OverflowMode, forcePos, forceNeg bool) (Value, error) {
	total := v.format.TotalBits()
	signed := v.format.Signed
	maxScaled := wu.MaxScaled(total, signed)
	minScaled := wu.MinScaled(total, signed)
	signBit := wu.SignBit(total)

	w := v.word
	switch {
	case wu.Compare(signed, w, maxScaled) > 0 || forcePos:
		switch ov {
		case OverflowWrap:
			w = wordWrap(w, signed, maxScaled, signBit)
		case OverflowSaturate:
			w = maxScaled
		default:
			return Value{}, ErrOverflow.New("value does not fit format %v", v.format)
		}
	case wu.Compare(signed, w, minScaled) < 0 || forceNeg:
		switch ov {
		case OverflowWrap:
			w = wordWrap(w, signed, maxScaled, signBit)
		case OverflowSaturate:
			w = minScaled
		default:
			return Value{}, ErrOverflow.New("value does not fit format %v", v.format)
		}
	}
	v.word = w
	return v, nil
}

func wordResize(v Value, intBits, fracBits int64, ov OverflowMode, rnd RoundMode) (Value, error) {
	f := v.format
	w := v.word
	neg := wu.IsNeg(w, f.Signed)
	forcePos, forceNeg := false, false

	switch {
	case fracBits < f.FracBits:
		// Shift first, adjust after: adding the rounding increment to the
		// unshifted value could overflow the word at full width.
		k := f.FracBits - fracBits
		shifted := wu.Arshift(w, k, f.Signed)
		switch rnd {
		case RoundDirectZero:
			if neg && w&wu.Mask(k) != 0 {
				shifted++
			}
		case RoundNearPosInf, RoundNearZero, RoundNearEven:
			// Bits are read through the sign-filling shift so that chop
			// counts at or past the word width still see the sign copies.
			choppedMSB := wu.Arshift(w, k-1, f.Signed) & 1
			var lower uint64
			if k > 1 {
				lower = w & wu.Mask(k-1)
			}
			switch {
			case rnd == RoundNearPosInf:
				if choppedMSB != 0 {
					shifted++
				}
			case rnd == RoundNearZero:
				// Ties go toward zero: on an exact half, positive values
				// truncate and negative values take the increment.
				if choppedMSB != 0 && (neg || lower != 0) {
					shifted++
				}
			default: // RoundNearEven
				newLSB := wu.Arshift(w, k, f.Signed) & 1
				if choppedMSB != 0 && (lower != 0 || newLSB != 0) {
					shifted++
				}
			}
		}
		w = shifted
	case fracBits > f.FracBits:
		k := fracBits - f.FracBits
		shifted := wu.Lshift(w, k)
		// A left shift on the native word wraps silently. If the caller
		// asked for saturate or exception and int bits were dropped, the
		// shifted-out bits must be checked against the sign pattern here,
		// since the wrap already happened.
		if ov != OverflowWrap && intBits < f.IntBits {
			newNeg := wu.IsNeg(shifted, f.Signed)
			overMask := ^wu.Rshift(^uint64(0), k)
			over := w & overMask
			if neg {
				if !newNeg || ^over&overMask != 0 {
					forceNeg = true
				}
			} else if newNeg || over != 0 {
				forcePos = true
			}
		}
		w = shifted
	}

	out := Value{format: Format{IntBits: intBits, FracBits: fracBits, Signed: f.Signed}, word: w}
	return wordCheckOverflow(out, ov, forcePos, forceNeg)
}

// wordAlignFrac left-shifts the operand with fewer frac bits so both share
// the larger count. Exact: the dispatcher guarantees the widened operand
// still fits the word.
func wordAlignFrac(a, b Value) (Value, Value) {
	switch {
	case a.format.FracBits > b.format.FracBits:
		diff := a.format.FracBits - b.format.FracBits
		nb := b
		nb.word = wu.Lshift(b.word, diff)
		nb.format.FracBits = a.format.FracBits
		return a, nb
	case b.format.FracBits > a.format.FracBits:
		diff := b.format.FracBits - a.format.FracBits
		na := a
		na.word = wu.Lshift(a.word, diff)
		na.format.FracBits = b.format.FracBits
		return na, b
	default:
		return a, b
	}
}

func wordAdd(a, b Value) Value {
	f := addResultFormat(a.format, b.format)
	a, b = wordAlignFrac(a, b)
	return Value{format: f, word: a.word + b.word}
}

func wordSub(a, b Value) Value {
	f := addResultFormat(a.format, b.format)
	a, b = wordAlignFrac(a, b)
	res := Value{format: f, word: a.word - b.word}
	if !f.Signed {
		// Unsigned subtraction can dip below zero; wrap it back into range.
		res, _ = wordCheckOverflow(res, OverflowWrap, false, false)
	}
	return res
}

func wordMul(a, b Value) Value {
	return Value{format: mulResultFormat(a.format, b.format), word: a.word * b.word}
}

func wordDiv(a, b Value) (Value, error) {
	if b.word == 0 {
		return Value{}, ErrDivZero.New("%s / 0", a.String())
	}
	// Unsigned division on magnitudes, re-signed after: a sign-extended
	// negative pattern would compare larger than any positive denominator.
	aNeg := wu.IsNeg(a.word, a.format.Signed)
	bNeg := wu.IsNeg(b.word, b.format.Signed)
	aMag, bMag := a.word, b.word
	if aNeg {
		aMag = wu.Negate(aMag)
	}
	if bNeg {
		bMag = wu.Negate(bMag)
	}
	// Scaling the numerator by the denominator's total bits yields
	// FracBits(a) + IntBits(b) fractional bits in the quotient.
	q := wu.Lshift(aMag, b.format.TotalBits()) / bMag
	if aNeg != bNeg {
		q = wu.Negate(q)
	}
	return Value{format: divResultFormat(a.format, b.format), word: q}, nil
}

func wordNeg(v Value) Value {
	return Value{format: negResultFormat(v.format), word: wu.Negate(v.word)}
}

func wordShl(v Value, n int64) Value {
	total := v.format.TotalBits()
	mask := wu.Mask(total)
	shifted := wu.Lshift(v.word, n)
	// The bits above the sign position must match the new sign, since sign
	// tests use the full word.
	if v.format.Signed && shifted&wu.SignBit(total) != 0 {
		shifted |= ^mask
	} else {
		shifted &= mask
	}
	v.word = shifted
	return v
}

func wordShr(v Value, n int64) Value {
	v.word = wu.Arshift(v.word, n, v.format.Signed)
	return v
}

// wordCompare compares in two blocks: first the bits down to the shallower
// fractional position, then the leftover low fractional bits of the deeper
// operand. Left shifts are never needed, so the word cannot overflow.
func wordCompare(a, b Value) int {
	common := minInt64(a.format.FracBits, b.format.FracBits)
	aShift := a.format.FracBits - common
	bShift := b.format.FracBits - common

	c := wu.Compare(a.format.Signed,
		wu.Arshift(a.word, aShift, a.format.Signed),
		wu.Arshift(b.word, bShift, b.format.Signed))
	if c != 0 {
		return c
	}

	// The high blocks matched, so signs are equal; whichever operand still
	// has nonzero unconsumed low bits is the larger.
	aRest := a.word & ^wu.Lshift(^uint64(0), aShift)
	bRest := b.word & ^wu.Lshift(^uint64(0), bShift)
	switch {
	case aRest > bRest:
		return 1
	case aRest < bRest:
		return -1
	default:
		return 0
	}
}

func wordBitsAsSigned(v Value) *big.Int {
	w := v.word
	total := v.format.TotalBits()
	if !v.format.Signed && w&wu.SignBit(total) != 0 {
		w |= ^wu.Mask(total)
	}
	return big.NewInt(int64(w))
}

func wordRawBits(v Value) *big.Int {
	return new(big.Int).SetUint64(v.word & wu.Mask(v.format.TotalBits()))
}

func wordFloat64(v Value) float64 {
	if wu.IsNeg(v.word, v.format.Signed) {
		return math.Ldexp(-float64(wu.Negate(v.word)), -int(v.format.FracBits))
	}
	return math.Ldexp(float64(v.word), -int(v.format.FracBits))
}
