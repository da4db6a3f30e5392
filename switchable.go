// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"fmt"
	"math"
)

// Switchable holds either a fixed point value or a plain float64 behind one
// arithmetic surface, so a signal chain can be flipped between the two
// without touching the math code. In float mode it tracks the extremes
// every assignment has reached, which is how word lengths get picked before
// flipping the chain to fixed.
type Switchable struct {
	fpMode bool
	fp     Value
	f      float64
	min    float64
	max    float64
}

// NewSwitchableFixed returns a switchable in fixed point mode.
func NewSwitchableFixed(v Value) Switchable {
	return Switchable{fpMode: true, fp: v}
}

// NewSwitchableFloat returns a switchable in float mode.
func NewSwitchableFloat(f float64) Switchable {
	return Switchable{f: f, min: f, max: f}
}

// FixedMode reports whether the value is in fixed point mode.
func (s Switchable) FixedMode() bool {
	return s.fpMode
}

// Fixed returns the held fixed point value. ok is false in float mode.
func (s Switchable) Fixed() (v Value, ok bool) {
	return s.fp, s.fpMode
}

// Float64 returns the numeric value in either mode.
func (s Switchable) Float64() float64 {
	if s.fpMode {
		return s.fp.Float64()
	}
	return s.f
}

// SetFloat assigns a new float value, updating the tracked extremes.
// It has no effect in fixed point mode.
func (s *Switchable) SetFloat(f float64) {
	if s.fpMode {
		return
	}
	s.f = f
	s.min = math.Min(s.min, f)
	s.max = math.Max(s.max, f)
}

// MinMax returns the smallest and largest values seen in float mode.
func (s Switchable) MinMax() (min, max float64) {
	return s.min, s.max
}

func (s Switchable) withFloat(f float64) Switchable {
	return Switchable{f: f, min: math.Min(s.min, f), max: math.Max(s.max, f)}
}

// Add returns s + other. The result is fixed point only if both operands
// are; a float operand drags the result into float mode.
func (s Switchable) Add(other Switchable) Switchable {
	if s.fpMode && other.fpMode {
		return Switchable{fpMode: true, fp: s.fp.Add(other.fp)}
	}
	return s.withFloat(s.Float64() + other.Float64())
}

// Sub returns s - other.
func (s Switchable) Sub(other Switchable) Switchable {
	if s.fpMode && other.fpMode {
		return Switchable{fpMode: true, fp: s.fp.Sub(other.fp)}
	}
	return s.withFloat(s.Float64() - other.Float64())
}

// Mul returns s * other.
func (s Switchable) Mul(other Switchable) Switchable {
	if s.fpMode && other.fpMode {
		return Switchable{fpMode: true, fp: s.fp.Mul(other.fp)}
	}
	return s.withFloat(s.Float64() * other.Float64())
}

// Div returns s / other. In float mode division by zero yields the usual
// float infinity rather than an error.
func (s Switchable) Div(other Switchable) (Switchable, error) {
	if s.fpMode && other.fpMode {
		q, err := s.fp.Div(other.fp)
		if err != nil {
			return Switchable{}, err
		}
		return Switchable{fpMode: true, fp: q}, nil
	}
	return s.withFloat(s.Float64() / other.Float64()), nil
}

// Resize resizes the held value in fixed point mode and is a no-op in
// float mode, so mode flips do not require guarding every resize site.
func (s Switchable) Resize(f Format, ov OverflowMode, rnd RoundMode) (Switchable, error) {
	if !s.fpMode {
		return s, nil
	}
	v, err := s.fp.Resize(f, ov, rnd)
	if err != nil {
		return Switchable{}, err
	}
	return Switchable{fpMode: true, fp: v}, nil
}

// Cmp compares numeric values across modes.
func (s Switchable) Cmp(other Switchable) int {
	if s.fpMode && other.fpMode {
		return s.fp.Cmp(other.fp)
	}
	a, b := s.Float64(), other.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (s Switchable) String() string {
	if s.fpMode {
		return s.fp.String()
	}
	return fmt.Sprintf("%v", s.f)
}
