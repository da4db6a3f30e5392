// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import "strings"

// Complex is a complex number with fixed point real and imaginary parts.
// The parts keep their own formats; arithmetic grows them exactly as the
// scalar operations do.
type Complex struct {
	re, im Value
}

// NewComplex builds a complex value from its parts.
func NewComplex(re, im Value) Complex {
	return Complex{re: re, im: im}
}

// Real returns the real part.
func (c Complex) Real() Value {
	return c.re
}

// Imag returns the imaginary part.
func (c Complex) Imag() Value {
	return c.im
}

// Add returns c + other.
func (c Complex) Add(other Complex) Complex {
	return Complex{re: c.re.Add(other.re), im: c.im.Add(other.im)}
}

// Sub returns c - other.
func (c Complex) Sub(other Complex) Complex {
	return Complex{re: c.re.Sub(other.re), im: c.im.Sub(other.im)}
}

// Mul returns c * other: (a+bj)(x+yj) = (ax-by) + (ay+bx)j.
func (c Complex) Mul(other Complex) Complex {
	return Complex{
		re: c.re.Mul(other.re).Sub(c.im.Mul(other.im)),
		im: c.re.Mul(other.im).Add(c.im.Mul(other.re)),
	}
}

// Div returns c / other via the conjugate: each part is a scalar division
// by |other|^2, so both divisions truncate toward zero independently.
func (c Complex) Div(other Complex) (Complex, error) {
	den := other.MagnitudeSquared()
	re, err := c.re.Mul(other.re).Add(c.im.Mul(other.im)).Div(den)
	if err != nil {
		return Complex{}, err
	}
	im, err := c.im.Mul(other.re).Sub(c.re.Mul(other.im)).Div(den)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: im}, nil
}

// Neg returns -c.
func (c Complex) Neg() Complex {
	return Complex{re: c.re.Neg(), im: c.im.Neg()}
}

// Conj returns the complex conjugate.
func (c Complex) Conj() Complex {
	return Complex{re: c.re.Copy(), im: c.im.Neg()}
}

// MagnitudeSquared returns re^2 + im^2.
func (c Complex) MagnitudeSquared() Value {
	return c.re.Mul(c.re).Add(c.im.Mul(c.im))
}

// Eq reports whether both parts are numerically equal.
func (c Complex) Eq(other Complex) bool {
	return c.re.Eq(other.re) && c.im.Eq(other.im)
}

// Resize resizes both parts to the same format.
func (c Complex) Resize(f Format, ov OverflowMode, rnd RoundMode) (Complex, error) {
	re, err := c.re.Resize(f, ov, rnd)
	if err != nil {
		return Complex{}, err
	}
	im, err := c.im.Resize(f, ov, rnd)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: im}, nil
}

// Complex128 returns the nearest complex128.
func (c Complex) Complex128() complex128 {
	return complex(c.re.Float64(), c.im.Float64())
}

// String renders the value as "a+bj" or "a-bj".
func (c Complex) String() string {
	im := c.im.String()
	if !strings.HasPrefix(im, "-") {
		im = "+" + im
	}
	return c.re.String() + im + "j"
}
