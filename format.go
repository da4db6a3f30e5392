// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"fmt"

	"github.com/zeebo/errs"
)

var (
	// ErrFormat is the class of errors for malformed formats.
	ErrFormat = errs.Class("invalid format")
	// ErrOverflow is the class of errors raised under OverflowError mode.
	ErrOverflow = errs.Class("fixed point overflow")
	// ErrDivZero is the class of errors for division by a zero value.
	ErrDivZero = errs.Class("division by zero")
	// ErrOperand is the class of errors for values that cannot take part
	// in an operation, like NaNs or out-of-range bit indices.
	ErrOperand = errs.Class("bad operand")
)

// OverflowMode selects the behavior when a value exceeds the representable
// range of its format.
type OverflowMode uint8

const (
	// OverflowWrap masks the value to the format width, two's-complement style.
	OverflowWrap OverflowMode = iota
	// OverflowSaturate clamps to the nearest representable extreme.
	OverflowSaturate
	// OverflowError fails the operation, leaving the input value untouched.
	OverflowError
)

// RoundMode selects the behavior when fractional bits are discarded.
type RoundMode uint8

const (
	// RoundDirectNegInf truncates toward negative infinity.
	RoundDirectNegInf RoundMode = iota
	// RoundDirectZero truncates toward zero.
	RoundDirectZero
	// RoundNearPosInf rounds to nearest, ties toward positive infinity.
	RoundNearPosInf
	// RoundNearZero rounds to nearest, ties toward zero.
	RoundNearZero
	// RoundNearEven rounds to nearest, ties to the even neighbor.
	RoundNearEven
)

func (m OverflowMode) String() string {
	switch m {
	case OverflowWrap:
		return "wrap"
	case OverflowSaturate:
		return "sat"
	case OverflowError:
		return "excep"
	}
	return fmt.Sprintf("OverflowMode(%d)", uint8(m))
}

func (m RoundMode) String() string {
	switch m {
	case RoundDirectNegInf:
		return "direct_neg_inf"
	case RoundDirectZero:
		return "direct_zero"
	case RoundNearPosInf:
		return "near_pos_inf"
	case RoundNearZero:
		return "near_zero"
	case RoundNearEven:
		return "near_even"
	}
	return fmt.Sprintf("RoundMode(%d)", uint8(m))
}

// Format describes how a scaled value is interpreted: IntBits bits above the
// binary point, FracBits below it, with an optional sign bit counted inside
// IntBits. Either field may be negative, placing the binary point outside the
// stored bits; only the sum is constrained to be >= 1.
type Format struct {
	IntBits  int64
	FracBits int64
	Signed   bool
}

// TotalBits returns the stored width of the format.
func (f Format) TotalBits() int64 {
	return f.IntBits + f.FracBits
}

func (f Format) validate() error {
	if f.TotalBits() < 1 {
		return ErrFormat.New("total bits must be >= 1, got (%d, %d)", f.IntBits, f.FracBits)
	}
	return nil
}

func (f Format) String() string {
	sign := "u"
	if f.Signed {
		sign = "s"
	}
	return fmt.Sprintf("(%d, %d, %s)", f.IntBits, f.FracBits, sign)
}

// The format-growth algebra. Operands are assumed to have been brought to a
// common signedness already.

func addResultFormat(a, b Format) Format {
	return Format{
		IntBits:  maxInt64(a.IntBits, b.IntBits) + 1,
		FracBits: maxInt64(a.FracBits, b.FracBits),
		Signed:   a.Signed,
	}
}

func mulResultFormat(a, b Format) Format {
	return Format{
		IntBits:  a.IntBits + b.IntBits,
		FracBits: a.FracBits + b.FracBits,
		Signed:   a.Signed,
	}
}

// divResultFormat is derived so that the truncated quotient of the shifted
// scaled values never overflows; the extra int bit covers the signed
// most-negative-by-smallest case, like -8 / -0.125.
func divResultFormat(a, b Format) Format {
	f := Format{
		IntBits:  a.IntBits + b.FracBits,
		FracBits: a.FracBits + b.IntBits,
		Signed:   a.Signed,
	}
	if a.Signed {
		f.IntBits++
	}
	return f
}

func negResultFormat(f Format) Format {
	return Format{IntBits: f.IntBits + 1, FracBits: f.FracBits, Signed: f.Signed}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
