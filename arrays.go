// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

// Batch helpers for slices of values, the common shape of filter
// coefficients and sample buffers.

// FromFloats converts a slice of floats into values of a single format.
// The first failing element aborts the conversion.
func FromFloats(values []float64, f Format, ov OverflowMode, rnd RoundMode) ([]Value, error) {
	res := make([]Value, 0, len(values))
	for _, fl := range values {
		v, err := FromFloat(fl, f, ov, rnd)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// ResizeAll resizes every element to the same format. The first failing
// element aborts, leaving the input untouched.
func ResizeAll(values []Value, f Format, ov OverflowMode, rnd RoundMode) ([]Value, error) {
	res := make([]Value, 0, len(values))
	for _, v := range values {
		rv, err := v.Resize(f, ov, rnd)
		if err != nil {
			return nil, err
		}
		res = append(res, rv)
	}
	return res, nil
}

// Float64s converts every element to its nearest float64.
func Float64s(values []Value) []float64 {
	res := make([]float64, len(values))
	for i, v := range values {
		res[i] = v.Float64()
	}
	return res
}

// MinMax returns the numerically smallest and largest elements.
// ok is false for an empty slice.
func MinMax(values []Value) (min, max Value, ok bool) {
	if len(values) == 0 {
		return Value{}, Value{}, false
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v.Cmp(min) < 0 {
			min = v
		}
		if v.Cmp(max) > 0 {
			max = v
		}
	}
	return min, max, true
}
