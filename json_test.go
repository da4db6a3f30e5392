// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONRoundTrip(t *testing.T) {
	a := assert.New(t)

	v := mustF(t, 2.5, fmt41s)
	data, err := json.Marshal(v)
	a.NoError(err)
	a.JSONEq(`{"ib":4,"fb":1,"sv":"5","sgn":true,"rep":"word"}`, string(data))

	var back Value
	a.NoError(json.Unmarshal(data, &back))
	a.True(back.Eq(v))
	a.Equal(v.Format(), back.Format())
	a.False(back.isBig())
}

func TestJSONRoundTripWide(t *testing.T) {
	a := assert.New(t)

	v, err := FromFloat(1, Format{IntBits: 40, FracBits: 30, Signed: true}, OverflowError, RoundDirectNegInf)
	a.NoError(err)
	data, err := json.Marshal(v)
	a.NoError(err)

	var back Value
	a.NoError(json.Unmarshal(data, &back))
	a.True(back.isBig())
	a.True(back.Eq(v))
	a.Equal(v.Format(), back.Format())
}

func TestJSONWordRecordTooWide(t *testing.T) {
	a := assert.New(t)

	// A compact record written on a platform with a wider word loads into
	// the big representation instead of failing.
	record := `{"ib":100,"fb":0,"sv":"1267650600228229401496703205376","sgn":true,"rep":"word"}`
	var v Value
	a.NoError(json.Unmarshal([]byte(record), &v))
	a.True(v.isBig())
	a.Equal(Format{IntBits: 100, FracBits: 0, Signed: true}, v.Format())
	a.Equal(0, v.scaled().Cmp(new(big.Int).Lsh(big.NewInt(1), 100)))
}

func TestJSONBigRecordStaysBig(t *testing.T) {
	a := assert.New(t)
	var v Value
	a.NoError(json.Unmarshal([]byte(`{"ib":4,"fb":1,"sv":"5","sgn":true,"rep":"big"}`), &v))
	a.True(v.isBig())
	a.True(v.Eq(mustF(t, 2.5, fmt41s)))
}

func TestJSONErrors(t *testing.T) {
	a := assert.New(t)
	var v Value
	a.True(ErrFormat.Has(json.Unmarshal([]byte(`{"ib":0,"fb":0,"sv":"0","sgn":false,"rep":"word"}`), &v)))
	a.True(ErrFormat.Has(json.Unmarshal([]byte(`{"ib":4,"fb":0,"sv":"xyz","sgn":false,"rep":"word"}`), &v)))
	a.True(ErrFormat.Has(json.Unmarshal([]byte(`{"ib":4,"fb":0,"sv":"1","sgn":false,"rep":"huge"}`), &v)))
}

func TestJSONOutOfRangeWraps(t *testing.T) {
	a := assert.New(t)
	var v Value
	a.NoError(json.Unmarshal([]byte(`{"ib":3,"fb":0,"sv":"9","sgn":true,"rep":"word"}`), &v))
	a.Equal(1.0, v.Float64())
}
