// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloatsFloat64s(t *testing.T) {
	a := assert.New(t)

	floats := []float64{0.5, -1.25, 3}
	vals, err := FromFloats(floats, Format{IntBits: 4, FracBits: 2, Signed: true}, OverflowError, RoundNearPosInf)
	a.NoError(err)
	a.Equal(floats, Float64s(vals))

	_, err = FromFloats([]float64{100}, fmt41s, OverflowError, RoundNearPosInf)
	a.True(ErrOverflow.Has(err))
}

func TestResizeAll(t *testing.T) {
	a := assert.New(t)

	vals, err := FromFloats([]float64{1.5, -2.75}, Format{IntBits: 4, FracBits: 2, Signed: true}, OverflowError, RoundNearPosInf)
	a.NoError(err)
	res, err := ResizeAll(vals, fmt41s, OverflowError, RoundNearPosInf)
	a.NoError(err)
	a.Equal([]float64{1.5, -2.5}, Float64s(res))

	_, err = ResizeAll(vals, Format{IntBits: 1, FracBits: 1}, OverflowError, RoundNearPosInf)
	a.True(ErrOverflow.Has(err))
	// The inputs are untouched on failure.
	a.Equal([]float64{1.5, -2.75}, Float64s(vals))
}

func TestMinMax(t *testing.T) {
	a := assert.New(t)

	vals, err := FromFloats([]float64{1.5, -2.75, 3, 0}, Format{IntBits: 4, FracBits: 2, Signed: true}, OverflowError, RoundNearPosInf)
	a.NoError(err)
	min, max, ok := MinMax(vals)
	a.True(ok)
	a.Equal(-2.75, min.Float64())
	a.Equal(3.0, max.Float64())

	_, _, ok = MinMax(nil)
	a.False(ok)
}
