// Copyright 2021 Aleksandr Demakin. All rights reserved.

// Package fpbin implements a binary fixed point numeric type with explicit
// control over rounding and overflow. A value is a scaled integer plus a
// Format that says where the binary point sits; arithmetic grows the format
// so results are always exact, and Resize brings values back to a budget.
package fpbin

import (
	"math"
	"math/big"

	wu "github.com/avdva/fpbin/internal/wordutil"
)

// Value is an immutable fixed point number. Values up to the machine word
// wide are stored compactly; wider ones switch to a big.Int transparently,
// including mid-operation when an intermediate result outgrows the word.
// The zero Value is not usable; construct values with the From* functions.
type Value struct {
	format Format
	word   uint64
	big    *big.Int
}

func (v Value) isBig() bool {
	return v.big != nil
}

// FromFloat builds a value with the given format. NaNs and infinities are
// rejected. Only RoundNearPosInf changes the scaling, every other mode
// truncates toward negative infinity, matching how resize treats a value
// that is about to lose precision it never had.
func FromFloat(value float64, f Format, ov OverflowMode, rnd RoundMode) (Value, error) {
	if err := f.validate(); err != nil {
		return Value{}, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Value{}, ErrOperand.New("cannot represent %v", value)
	}
	if f.TotalBits() > wu.Bits {
		return bigFromFloat(value, f, ov, rnd)
	}
	return wordFromFloat(value, f, ov, rnd)
}

// MustFromFloat is FromFloat that panics on error. For constants and tests.
func MustFromFloat(value float64, f Format, ov OverflowMode, rnd RoundMode) Value {
	v, err := FromFloat(value, f, ov, rnd)
	if err != nil {
		panic(err)
	}
	return v
}

// FromBits reinterprets the low TotalBits bits of the given pattern in the
// given format. For signed formats the top stored bit is the sign.
func FromBits(bits *big.Int, f Format) (Value, error) {
	if err := f.validate(); err != nil {
		return Value{}, err
	}
	if f.TotalBits() > wu.Bits {
		return bigFromBits(bits, f), nil
	}
	low := new(big.Int).And(bits, bigMask(wu.Bits))
	return wordFromBits(low.Uint64(), f), nil
}

// FromInt builds a signed integer-valued fixed point number with just
// enough int bits to hold i. The most negative int64 needs 65 bits and
// lands in the big representation.
func FromInt(i int64) Value {
	mag := new(big.Int).Abs(big.NewInt(i))
	f := Format{IntBits: int64(mag.BitLen()) + 1, FracBits: 0, Signed: true}
	if f.TotalBits() > wu.Bits {
		return Value{format: f, big: big.NewInt(i)}
	}
	return Value{format: f, word: uint64(i)}
}

// FromFloatExact builds a signed value in the smallest format that
// represents the float with no precision loss. Every finite float64 fits in
// at most 54 stored bits once trailing zero mantissa bits are dropped, so
// the result is always compact, though IntBits or FracBits may be negative.
func FromFloatExact(value float64) (Value, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Value{}, ErrOperand.New("cannot represent %v", value)
	}
	if value == 0 {
		return Value{format: Format{IntBits: 1, FracBits: 0, Signed: true}}, nil
	}
	mant, exp := math.Frexp(value)
	m := int64(math.Ldexp(mant, 53))
	var tz int64
	for m&1 == 0 {
		m >>= 1
		tz++
	}
	f := Format{
		IntBits:  int64(exp) + 1,
		FracBits: 53 - int64(exp) - tz,
		Signed:   true,
	}
	return Value{format: f, word: uint64(m)}, nil
}

// Format returns the value's format.
func (v Value) Format() Format {
	return v.format
}

// IsSigned reports whether the value's format is signed.
func (v Value) IsSigned() bool {
	return v.format.Signed
}

// Copy returns an independent copy of the value.
func (v Value) Copy() Value {
	if v.isBig() {
		v.big = new(big.Int).Set(v.big)
	}
	return v
}

func (v Value) toBig() Value {
	if v.isBig() {
		return v
	}
	var b *big.Int
	if wu.IsNeg(v.word, v.format.Signed) {
		b = new(big.Int).Neg(new(big.Int).SetUint64(wu.Negate(v.word)))
	} else {
		b = new(big.Int).SetUint64(v.word)
	}
	return Value{format: v.format, big: b}
}

// toWord converts to the compact representation. The value must fit the
// word, which the callers guarantee by checking TotalBits first.
func (v Value) toWord() Value {
	if !v.isBig() {
		return v
	}
	var w uint64
	if v.big.Sign() < 0 {
		w = wu.Negate(new(big.Int).Neg(v.big).Uint64())
	} else {
		w = v.big.Uint64()
	}
	return Value{format: v.format, word: w}
}

// scaled returns the signed scaled value as a big.Int.
func (v Value) scaled() *big.Int {
	return v.toBig().big
}

type opKind uint8

const (
	opAdd opKind = iota
	opMul
	opDiv
	opCmp
)

// prepareOperands brings two values to a common signedness and a common
// representation, promoting both to big if the result format of the
// requested operation does not fit the machine word.
func prepareOperands(a, b Value, kind opKind) (Value, Value) {
	if a.format.Signed != b.format.Signed {
		if a.format.Signed {
			b = b.ToSigned()
		} else {
			a = a.ToSigned()
		}
	}
	var needBig bool
	switch kind {
	case opAdd:
		needBig = addResultFormat(a.format, b.format).TotalBits() > wu.Bits
	case opMul:
		needBig = mulResultFormat(a.format, b.format).TotalBits() > wu.Bits
	case opDiv:
		needBig = divResultFormat(a.format, b.format).TotalBits() > wu.Bits
	}
	if a.isBig() || b.isBig() || needBig {
		return a.toBig(), b.toBig()
	}
	return a, b
}

// Add returns v + other in the format (max(int)+1, max(frac)). The result
// is exact; mixed signedness converts the unsigned operand first.
func (v Value) Add(other Value) Value {
	a, b := prepareOperands(v, other, opAdd)
	if a.isBig() {
		return bigAdd(a, b)
	}
	return wordAdd(a, b)
}

// Sub returns v - other in the same format Add uses. An unsigned result
// that would go below zero wraps.
func (v Value) Sub(other Value) Value {
	a, b := prepareOperands(v, other, opAdd)
	if a.isBig() {
		return bigSub(a, b)
	}
	return wordSub(a, b)
}

// Mul returns v * other in the format (sum of int, sum of frac). Exact.
func (v Value) Mul(other Value) Value {
	a, b := prepareOperands(v, other, opMul)
	if a.isBig() {
		return bigMul(a, b)
	}
	return wordMul(a, b)
}

// Div returns v / other, truncated toward zero at the result precision
// FracBits(v) + IntBits(other). Division by a zero value is an error.
func (v Value) Div(other Value) (Value, error) {
	a, b := prepareOperands(v, other, opDiv)
	if a.isBig() {
		return bigDiv(a, b)
	}
	return wordDiv(a, b)
}

// Neg returns -v with one extra int bit. An unsigned value becomes signed
// first, so negating it yields the actual negative number rather than a
// wrapped pattern.
func (v Value) Neg() Value {
	if !v.format.Signed {
		v = v.ToSigned()
	}
	if !v.isBig() && negResultFormat(v.format).TotalBits() > wu.Bits {
		v = v.toBig()
	}
	if v.isBig() {
		return bigNeg(v)
	}
	return wordNeg(v)
}

// Abs returns the absolute value, growing the format only when negation
// actually happens.
func (v Value) Abs() Value {
	if v.Sign() >= 0 {
		return v.Copy()
	}
	return v.Neg()
}

// Shl shifts the scaled value left by n bit positions. The format does not
// change; bits shifted past the top are lost and the sign bit takes
// whatever lands on it.
func (v Value) Shl(n uint) Value {
	if v.isBig() {
		return bigShl(v.Copy(), int64(n))
	}
	return wordShl(v, int64(n))
}

// Shr shifts the scaled value right by n bit positions, replicating the
// sign bit for signed formats. The format does not change.
func (v Value) Shr(n uint) Value {
	if v.isBig() {
		return bigShr(v.Copy(), int64(n))
	}
	return wordShr(v, int64(n))
}

// Cmp compares the numeric values, ignoring format differences.
// Returns -1 if v < other, 0 if equal, 1 if v > other.
func (v Value) Cmp(other Value) int {
	a, b := prepareOperands(v, other, opCmp)
	if a.isBig() {
		return bigCompare(a, b)
	}
	return wordCompare(a, b)
}

// Eq reports whether the two values are numerically equal.
func (v Value) Eq(other Value) bool {
	return v.Cmp(other) == 0
}

// Sign returns -1 for negative values, 0 for zero, 1 for positive.
func (v Value) Sign() int {
	if v.isBig() {
		return v.big.Sign()
	}
	if v.word == 0 {
		return 0
	}
	if wu.IsNeg(v.word, v.format.Signed) {
		return -1
	}
	return 1
}

// IsZero reports whether the value is exactly zero.
func (v Value) IsZero() bool {
	return v.Sign() == 0
}

// ToSigned returns the value in a signed format with one extra int bit.
// Signed values are returned as a copy.
func (v Value) ToSigned() Value {
	if v.format.Signed {
		return v.Copy()
	}
	f := Format{IntBits: v.format.IntBits + 1, FracBits: v.format.FracBits, Signed: true}
	if !v.isBig() && f.TotalBits() > wu.Bits {
		v = v.toBig()
	}
	res := v.Copy()
	res.format = f
	return res
}

// Resize changes the format to f's bit counts, rounding dropped fractional
// bits per rnd and handling lost int bits per ov. Signedness never changes;
// f.Signed is ignored. Under OverflowError the returned error leaves v
// untouched. A value resized wide enough switches to the big representation
// and drops back to the compact one as soon as it fits again.
func (v Value) Resize(f Format, ov OverflowMode, rnd RoundMode) (Value, error) {
	nf := Format{IntBits: f.IntBits, FracBits: f.FracBits, Signed: v.format.Signed}
	if err := nf.validate(); err != nil {
		return Value{}, err
	}
	var (
		res Value
		err error
	)
	if v.isBig() || nf.TotalBits() > wu.Bits {
		res, err = bigResize(v.toBig(), nf.IntBits, nf.FracBits, ov, rnd)
	} else {
		res, err = wordResize(v, nf.IntBits, nf.FracBits, ov, rnd)
	}
	if err != nil {
		return Value{}, err
	}
	if res.isBig() && res.format.TotalBits() <= wu.Bits {
		res = res.toWord()
	}
	return res, nil
}

// Float64 returns the nearest float64. Wide values lose precision.
func (v Value) Float64() float64 {
	if v.isBig() {
		return bigFloat64(v)
	}
	return wordFloat64(v)
}

// BitsAsSigned returns the stored bit pattern reinterpreted as a signed
// two's-complement number, regardless of the format's signedness.
func (v Value) BitsAsSigned() *big.Int {
	if v.isBig() {
		total := v.format.TotalBits()
		raw := new(big.Int).And(v.big, bigMask(total))
		if raw.Bit(int(total-1)) == 1 {
			raw.Sub(raw, new(big.Int).Lsh(bigOne, uint(total)))
		}
		return raw
	}
	return wordBitsAsSigned(v)
}

// Bits returns the stored bit pattern as a non-negative number.
func (v Value) Bits() *big.Int {
	if v.isBig() {
		return new(big.Int).And(v.big, bigMask(v.format.TotalBits()))
	}
	return wordRawBits(v)
}

// Int returns the integer part, truncated toward zero.
func (v Value) Int() *big.Int {
	trunc, _ := v.Resize(
		Format{IntBits: maxInt64(v.format.IntBits, 1), FracBits: 0},
		OverflowWrap, RoundDirectZero,
	)
	return trunc.BitsAsSigned()
}

// Bit reports whether stored bit i is set, counting from the least
// significant stored bit.
func (v Value) Bit(i int64) (bool, error) {
	if i < 0 || i >= v.format.TotalBits() {
		return false, ErrOperand.New("bit %d out of range for format %v", i, v.format)
	}
	if v.isBig() {
		return v.big.Bit(int(i)) == 1, nil
	}
	return v.word&wu.Lshift(1, i) != 0, nil
}

// Slice extracts stored bits hi down to lo inclusive as an unsigned
// integer-valued result. The bounds may be given in either order; hi is
// clamped to the top stored bit.
func (v Value) Slice(hi, lo int64) (Value, error) {
	if hi < lo {
		hi, lo = lo, hi
	}
	total := v.format.TotalBits()
	if lo < 0 || lo >= total {
		return Value{}, ErrOperand.New("bit %d out of range for format %v", lo, v.format)
	}
	if hi >= total {
		hi = total - 1
	}
	width := hi - lo + 1
	f := Format{IntBits: width, FracBits: 0, Signed: false}
	if v.isBig() {
		bits := new(big.Int).Rsh(v.big, uint(lo))
		bits.And(bits, bigMask(width))
		if width > wu.Bits {
			return Value{format: f, big: bits}, nil
		}
		return Value{format: f, word: bits.Uint64()}, nil
	}
	return Value{format: f, word: wu.Rshift(v.word, lo) & wu.Mask(width)}, nil
}
