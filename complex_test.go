// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cpx(t *testing.T, re, im float64, f Format) Complex {
	t.Helper()
	return NewComplex(mustF(t, re, f), mustF(t, im, f))
}

func TestComplexArithmetic(t *testing.T) {
	a := assert.New(t)

	x := cpx(t, 1, 2, fmt40s)
	y := cpx(t, 3, -1, fmt40s)

	sum := x.Add(y)
	a.Equal(complex(4, 1), sum.Complex128())

	diff := x.Sub(y)
	a.Equal(complex(-2, 3), diff.Complex128())

	prod := x.Mul(y)
	a.Equal(complex(5, 5), prod.Complex128())
	a.Equal(Format{IntBits: 9, FracBits: 0, Signed: true}, prod.Real().Format())

	a.Equal(complex(-1, -2), x.Neg().Complex128())
	a.Equal(complex(1, -2), x.Conj().Complex128())
	a.Equal(5.0, x.MagnitudeSquared().Float64())
}

func TestComplexDiv(t *testing.T) {
	a := assert.New(t)

	x := cpx(t, 4, 2, fmt40s)
	y := cpx(t, 2, 0, fmt40s)
	q, err := x.Div(y)
	a.NoError(err)
	a.Equal(complex(2, 1), q.Complex128())

	_, err = x.Div(cpx(t, 0, 0, fmt40s))
	a.True(ErrDivZero.Has(err))
}

func TestComplexResizeEqString(t *testing.T) {
	a := assert.New(t)

	x := cpx(t, 1.5, -2, Format{IntBits: 4, FracBits: 2, Signed: true})
	a.Equal("1.5-2.0j", x.String())
	a.Equal("1.5+2.0j", x.Conj().String())

	r, err := x.Resize(fmt41s, OverflowError, RoundNearPosInf)
	a.NoError(err)
	a.True(r.Eq(x))
	a.Equal(fmt41s, r.Real().Format())

	_, err = x.Resize(Format{IntBits: 1, FracBits: 1}, OverflowError, RoundNearPosInf)
	a.True(ErrOverflow.Has(err))
}
