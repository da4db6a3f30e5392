// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwitchableFloatTracking(t *testing.T) {
	a := assert.New(t)

	s := NewSwitchableFloat(1.5)
	s.SetFloat(-3)
	s.SetFloat(2)
	min, max := s.MinMax()
	a.Equal(-3.0, min)
	a.Equal(2.0, max)
	a.Equal(2.0, s.Float64())
	a.False(s.FixedMode())

	// Results keep accumulating the extremes.
	r := s.Mul(NewSwitchableFloat(3))
	min, max = r.MinMax()
	a.Equal(-3.0, min)
	a.Equal(6.0, max)
}

func TestSwitchableFixedArithmetic(t *testing.T) {
	a := assert.New(t)

	x := NewSwitchableFixed(mustF(t, 1.5, fmt41s))
	y := NewSwitchableFixed(mustF(t, 2.5, fmt41s))

	sum := x.Add(y)
	a.True(sum.FixedMode())
	v, ok := sum.Fixed()
	a.True(ok)
	a.Equal(4.0, v.Float64())

	prod := x.Mul(y)
	a.True(prod.FixedMode())
	a.Equal(3.75, prod.Float64())

	q, err := x.Div(y)
	a.NoError(err)
	a.True(q.FixedMode())
	// 1.5/2.5 truncated toward zero at 5 fractional bits.
	a.Equal(0.59375, q.Float64())

	_, err = x.Div(NewSwitchableFixed(mustF(t, 0, fmt41s)))
	a.True(ErrDivZero.Has(err))
}

func TestSwitchableMixedModes(t *testing.T) {
	a := assert.New(t)

	x := NewSwitchableFixed(mustF(t, 1.5, fmt41s))
	y := NewSwitchableFloat(2)

	sum := x.Add(y)
	a.False(sum.FixedMode())
	a.Equal(3.5, sum.Float64())

	q, err := y.Div(NewSwitchableFloat(0))
	a.NoError(err)
	a.True(math.IsInf(q.Float64(), 1))

	a.Equal(-1, x.Cmp(y))
	a.Equal(1, y.Cmp(x))
	a.Equal(0, x.Cmp(NewSwitchableFloat(1.5)))
}

func TestSwitchableResize(t *testing.T) {
	a := assert.New(t)

	x := NewSwitchableFixed(mustF(t, 2.75, Format{IntBits: 4, FracBits: 2, Signed: true}))
	r, err := x.Resize(fmt41s, OverflowError, RoundNearPosInf)
	a.NoError(err)
	a.Equal(3.0, r.Float64())

	f := NewSwitchableFloat(2.75)
	r, err = f.Resize(fmt41s, OverflowError, RoundNearPosInf)
	a.NoError(err)
	a.Equal(2.75, r.Float64())
	a.False(r.FixedMode())
}

func TestSwitchableString(t *testing.T) {
	a := assert.New(t)
	a.Equal("1.5", NewSwitchableFixed(mustF(t, 1.5, fmt41s)).String())
	a.Equal("2.5", NewSwitchableFloat(2.5).String())
}
