// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValidate(t *testing.T) {
	a := assert.New(t)
	a.NoError(Format{IntBits: 4, FracBits: 4}.validate())
	a.NoError(Format{IntBits: -2, FracBits: 3}.validate())
	a.NoError(Format{IntBits: 5, FracBits: -4}.validate())
	a.True(ErrFormat.Has(Format{IntBits: 0, FracBits: 0}.validate()))
	a.True(ErrFormat.Has(Format{IntBits: 2, FracBits: -2}.validate()))
}

func TestFormatString(t *testing.T) {
	a := assert.New(t)
	a.Equal("(4, 1, s)", Format{IntBits: 4, FracBits: 1, Signed: true}.String())
	a.Equal("(8, 0, u)", Format{IntBits: 8}.String())
}

func TestResultFormats(t *testing.T) {
	tests := []struct {
		a, b Format
		add  Format
		mul  Format
		div  Format
	}{
		{
			a:   Format{IntBits: 4, FracBits: 1, Signed: true},
			b:   Format{IntBits: 3, FracBits: 2, Signed: true},
			add: Format{IntBits: 5, FracBits: 2, Signed: true},
			mul: Format{IntBits: 7, FracBits: 3, Signed: true},
			div: Format{IntBits: 7, FracBits: 4, Signed: true},
		},
		{
			a:   Format{IntBits: 8, FracBits: 0},
			b:   Format{IntBits: 8, FracBits: 0},
			add: Format{IntBits: 9, FracBits: 0},
			mul: Format{IntBits: 16, FracBits: 0},
			div: Format{IntBits: 8, FracBits: 8},
		},
		{
			a:   Format{IntBits: -2, FracBits: 6, Signed: true},
			b:   Format{IntBits: 3, FracBits: -1, Signed: true},
			add: Format{IntBits: 4, FracBits: 6, Signed: true},
			mul: Format{IntBits: 1, FracBits: 5, Signed: true},
			div: Format{IntBits: -2, FracBits: 9, Signed: true},
		},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a := assert.New(t)
			a.Equal(test.add, addResultFormat(test.a, test.b))
			a.Equal(test.mul, mulResultFormat(test.a, test.b))
			a.Equal(test.div, divResultFormat(test.a, test.b))
		})
	}
}

func TestModeStrings(t *testing.T) {
	a := assert.New(t)
	a.Equal("wrap", OverflowWrap.String())
	a.Equal("sat", OverflowSaturate.String())
	a.Equal("excep", OverflowError.String())
	a.Equal("direct_neg_inf", RoundDirectNegInf.String())
	a.Equal("near_even", RoundNearEven.String())
}
