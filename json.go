// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"encoding/json"
	"math/big"

	wu "github.com/avdva/fpbin/internal/wordutil"
)

// jsonValue is the wire form of a Value. The scaled value travels as a
// signed decimal string so records survive any word width; rep remembers
// which representation produced the record.
type jsonValue struct {
	IntBits  int64  `json:"ib"`
	FracBits int64  `json:"fb"`
	Scaled   string `json:"sv"`
	Signed   bool   `json:"sgn"`
	Repr     string `json:"rep"`
}

const (
	reprWord = "word"
	reprBig  = "big"
)

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	rep := reprWord
	if v.isBig() {
		rep = reprBig
	}
	return json.Marshal(jsonValue{
		IntBits:  v.format.IntBits,
		FracBits: v.format.FracBits,
		Scaled:   v.scaled().String(),
		Signed:   v.format.Signed,
		Repr:     rep,
	})
}

// UnmarshalJSON implements json.Unmarshaler. A record tagged with the
// compact representation that is too wide for this platform's word loads
// as a big value instead of failing.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return ErrFormat.Wrap(err)
	}
	f := Format{IntBits: jv.IntBits, FracBits: jv.FracBits, Signed: jv.Signed}
	if err := f.validate(); err != nil {
		return err
	}
	if jv.Repr != reprWord && jv.Repr != reprBig {
		return ErrFormat.New("unknown representation %q", jv.Repr)
	}
	scaled, ok := new(big.Int).SetString(jv.Scaled, 10)
	if !ok {
		return ErrFormat.New("bad scaled value %q", jv.Scaled)
	}
	// The big representation stores the record's scaled value as is; the
	// compact one masks and sign-extends to establish the word invariant.
	res := Value{format: f, big: scaled}
	if jv.Repr == reprWord && f.TotalBits() <= wu.Bits {
		low := new(big.Int).And(scaled, bigMask(wu.Bits))
		res = wordFromBits(low.Uint64(), f)
	}
	*v = res
	return nil
}
