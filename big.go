// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"math"
	"math/big"
)

// The extended representation stores the scaled value as a native signed
// big.Int instead of a manual two's-complement pattern; the bitwise helpers
// on big.Int already treat negative numbers as infinite two's complement,
// which keeps the masking logic aligned with the compact path.

var (
	bigOne  = big.NewInt(1)
	bigFive = big.NewInt(5)
	bigTen  = big.NewInt(10)
)

func bigMask(bits int64) *big.Int {
	if bits <= 0 {
		return new(big.Int)
	}
	m := new(big.Int).Lsh(bigOne, uint(bits))
	return m.Sub(m, bigOne)
}

func bigMaxScaled(totalBits int64, signed bool) *big.Int {
	if signed {
		return bigMask(totalBits - 1)
	}
	return bigMask(totalBits)
}

func bigMinScaled(totalBits int64, signed bool) *big.Int {
	if !signed {
		return new(big.Int)
	}
	m := new(big.Int).Lsh(bigOne, uint(totalBits-1))
	return m.Neg(m)
}

func bigFromBits(bits *big.Int, f Format) Value {
	total := f.TotalBits()
	v := new(big.Int).And(bits, bigMask(total))
	if f.Signed && v.Bit(int(total-1)) == 1 {
		v.Sub(v, new(big.Int).Lsh(bigOne, uint(total)))
	}
	return Value{format: f, big: v}
}

// bigScaledFloor computes floor(value * 2^fracBits) exactly, with the
// optional pre-add of a half for RoundNearPosInf. The mantissa/exponent
// decomposition keeps everything in integer arithmetic.
func bigScaledFloor(value float64, fracBits int64, rnd RoundMode) *big.Int {
	mant, exp := math.Frexp(value)
	scaled := big.NewInt(int64(math.Ldexp(mant, 53)))
	shift := int64(exp) - 53 + fracBits
	if shift >= 0 {
		// An integer already; half an LSB cannot move the floor.
		return scaled.Lsh(scaled, uint(shift))
	}
	if rnd == RoundNearPosInf {
		scaled.Add(scaled, new(big.Int).Lsh(bigOne, uint(-shift-1)))
	}
	return scaled.Rsh(scaled, uint(-shift))
}

func bigFromFloat(value float64, f Format, ov OverflowMode, rnd RoundMode) (Value, error) {
	scaled := bigScaledFloor(value, f.FracBits, rnd)
	if !f.Signed && scaled.Sign() < 0 {
		scaled.SetInt64(0)
	}
	return bigCheckOverflow(Value{format: f, big: scaled}, ov)
}

func bigWrap(v *big.Int, f Format) *big.Int {
	total := f.TotalBits()
	wrapped := new(big.Int).And(v, bigMask(total))
	if f.Signed && wrapped.Bit(int(total-1)) == 1 {
		wrapped.Sub(wrapped, new(big.Int).Lsh(bigOne, uint(total)))
	}
	return wrapped
}

func bigCheckOverflow(v Value, ov OverflowMode) (Value, error) {
	total := v.format.TotalBits()
	maxScaled := bigMaxScaled(total, v.format.Signed)
	minScaled := bigMinScaled(total, v.format.Signed)

	switch {
	case v.big.Cmp(maxScaled) > 0:
		switch ov {
		case OverflowWrap:
			v.big = bigWrap(v.big, v.format)
		case OverflowSaturate:
			v.big = maxScaled
		default:
			return Value{}, ErrOverflow.New("value does not fit format %v", v.format)
		}
	case v.big.Cmp(minScaled) < 0:
		switch ov {
		case OverflowWrap:
			v.big = bigWrap(v.big, v.format)
		case OverflowSaturate:
			v.big = minScaled
		default:
			return Value{}, ErrOverflow.New("value does not fit format %v", v.format)
		}
	}
	return v, nil
}

func bigResize(v Value, intBits, fracBits int64, ov OverflowMode, rnd RoundMode) (Value, error) {
	f := v.format
	scaled := v.big

	switch {
	case fracBits < f.FracBits:
		k := f.FracBits - fracBits
		// Rsh floors on negative values, which is exactly direct_neg_inf.
		shifted := new(big.Int).Rsh(scaled, uint(k))
		neg := scaled.Sign() < 0
		switch rnd {
		case RoundDirectZero:
			if neg && new(big.Int).And(scaled, bigMask(k)).Sign() != 0 {
				shifted.Add(shifted, bigOne)
			}
		case RoundNearPosInf, RoundNearZero, RoundNearEven:
			choppedMSB := scaled.Bit(int(k-1)) == 1
			lower := false
			if k > 1 {
				lower = new(big.Int).And(scaled, bigMask(k-1)).Sign() != 0
			}
			switch {
			case rnd == RoundNearPosInf:
				if choppedMSB {
					shifted.Add(shifted, bigOne)
				}
			case rnd == RoundNearZero:
				if choppedMSB && (neg || lower) {
					shifted.Add(shifted, bigOne)
				}
			default: // RoundNearEven
				if choppedMSB && (lower || scaled.Bit(int(k)) == 1) {
					shifted.Add(shifted, bigOne)
				}
			}
		}
		scaled = shifted
	case fracBits > f.FracBits:
		scaled = new(big.Int).Lsh(scaled, uint(fracBits-f.FracBits))
	default:
		scaled = new(big.Int).Set(scaled)
	}

	out := Value{format: Format{IntBits: intBits, FracBits: fracBits, Signed: f.Signed}, big: scaled}
	return bigCheckOverflow(out, ov)
}

func bigAlignFrac(a, b Value) (Value, Value) {
	switch {
	case a.format.FracBits > b.format.FracBits:
		nb := b
		nb.big = new(big.Int).Lsh(b.big, uint(a.format.FracBits-b.format.FracBits))
		nb.format.FracBits = a.format.FracBits
		return a, nb
	case b.format.FracBits > a.format.FracBits:
		na := a
		na.big = new(big.Int).Lsh(a.big, uint(b.format.FracBits-a.format.FracBits))
		na.format.FracBits = b.format.FracBits
		return na, b
	default:
		return a, b
	}
}

func bigAdd(a, b Value) Value {
	f := addResultFormat(a.format, b.format)
	a, b = bigAlignFrac(a, b)
	return Value{format: f, big: new(big.Int).Add(a.big, b.big)}
}

func bigSub(a, b Value) Value {
	f := addResultFormat(a.format, b.format)
	a, b = bigAlignFrac(a, b)
	res := Value{format: f, big: new(big.Int).Sub(a.big, b.big)}
	if !f.Signed {
		res, _ = bigCheckOverflow(res, OverflowWrap)
	}
	return res
}

func bigMul(a, b Value) Value {
	return Value{
		format: mulResultFormat(a.format, b.format),
		big:    new(big.Int).Mul(a.big, b.big),
	}
}

func bigDiv(a, b Value) (Value, error) {
	if b.big.Sign() == 0 {
		return Value{}, ErrDivZero.New("%s / 0", a.String())
	}
	// Quotients truncate toward zero, so divide magnitudes and re-sign.
	num := new(big.Int).Abs(a.big)
	den := new(big.Int).Abs(b.big)
	num.Lsh(num, uint(b.format.TotalBits()))
	num.Quo(num, den)
	if (a.big.Sign() < 0) != (b.big.Sign() < 0) {
		num.Neg(num)
	}
	return Value{format: divResultFormat(a.format, b.format), big: num}, nil
}

func bigNeg(v Value) Value {
	return Value{format: negResultFormat(v.format), big: new(big.Int).Neg(v.big)}
}

func bigShl(v Value, n int64) Value {
	shifted := new(big.Int).Lsh(v.big, uint(n))
	out := Value{format: v.format, big: shifted}
	out, _ = bigCheckOverflow(out, OverflowWrap)
	return out
}

func bigShr(v Value, n int64) Value {
	v.big = new(big.Int).Rsh(v.big, uint(n))
	return v
}

func bigCompare(a, b Value) int {
	common := minInt64(a.format.FracBits, b.format.FracBits)
	aShift := a.format.FracBits - common
	bShift := b.format.FracBits - common

	c := new(big.Int).Rsh(a.big, uint(aShift)).Cmp(new(big.Int).Rsh(b.big, uint(bShift)))
	if c != 0 {
		return c
	}
	aRest := new(big.Int).And(a.big, bigMask(aShift))
	bRest := new(big.Int).And(b.big, bigMask(bShift))
	return aRest.Cmp(bRest)
}

func bigFloat64(v Value) float64 {
	f := new(big.Float).SetInt(v.big)
	f.SetMantExp(f, -int(v.format.FracBits))
	res, _ := f.Float64()
	return res
}
