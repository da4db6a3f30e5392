// Copyright 2021 Aleksandr Demakin. All rights reserved.

package fpbin

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	wu "github.com/avdva/fpbin/internal/wordutil"
)

// String renders the exact decimal value. A binary fraction of f bits is an
// exact decimal of at most f digits, since scaled/2^f == scaled*5^f/10^f,
// so no float conversion is involved. Trailing zeros are stripped down to a
// single fractional digit; the integer part always carries ".0" at minimum.
func (v Value) String() string {
	scaled := v.scaled()
	fracBits := v.format.FracBits
	if fracBits < 0 {
		scaled = new(big.Int).Lsh(scaled, uint(-fracBits))
		fracBits = 0
	}

	var sb strings.Builder
	if scaled.Sign() < 0 {
		sb.WriteByte('-')
	}
	mag := new(big.Int).Abs(scaled)
	sb.WriteString(new(big.Int).Rsh(mag, uint(fracBits)).String())
	sb.WriteByte('.')

	if fracBits == 0 {
		sb.WriteByte('0')
		return sb.String()
	}
	frac := new(big.Int).And(mag, bigMask(fracBits))
	frac.Mul(frac, new(big.Int).Exp(bigFive, big.NewInt(fracBits), nil))
	digits := frac.String()
	for int64(len(digits)) < fracBits {
		digits = "0" + digits
	}
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}
	sb.WriteString(digits)
	return sb.String()
}

// Decimal returns the exact value as a decimal.Decimal.
func (v Value) Decimal() decimal.Decimal {
	scaled := v.scaled()
	fracBits := v.format.FracBits
	if fracBits <= 0 {
		return decimal.NewFromBigInt(new(big.Int).Lsh(scaled, uint(-fracBits)), 0)
	}
	coeff := new(big.Int).Mul(scaled, new(big.Int).Exp(bigFive, big.NewInt(fracBits), nil))
	return decimal.NewFromBigInt(coeff, int32(-fracBits))
}

// FromDecimal builds a value from a decimal, rounding the fractional tail
// per rnd and reconciling with the format per ov. The scaling is done in
// exact integer arithmetic.
func FromDecimal(d decimal.Decimal, f Format, ov OverflowMode, rnd RoundMode) (Value, error) {
	if err := f.validate(); err != nil {
		return Value{}, err
	}
	num := new(big.Int).Set(d.Coefficient())
	den := big.NewInt(1)
	if f.FracBits >= 0 {
		num.Lsh(num, uint(f.FracBits))
	} else {
		den.Lsh(den, uint(-f.FracBits))
	}
	if e := int64(d.Exponent()); e >= 0 {
		num.Mul(num, new(big.Int).Exp(bigTen, big.NewInt(e), nil))
	} else {
		den.Mul(den, new(big.Int).Exp(bigTen, big.NewInt(-e), nil))
	}

	scaled := roundQuotient(num, den, rnd)
	res, err := bigCheckOverflow(Value{format: f, big: scaled}, ov)
	if err != nil {
		return Value{}, err
	}
	if res.format.TotalBits() <= wu.Bits {
		res = res.toWord()
	}
	return res, nil
}

// roundQuotient computes num/den rounded per rnd. den must be positive.
func roundQuotient(num, den *big.Int, rnd RoundMode) *big.Int {
	q, r := new(big.Int), new(big.Int)
	q.DivMod(num, den, r)
	if r.Sign() == 0 {
		return q
	}
	// DivMod floors, so r is in (0, den) and q is the direct_neg_inf answer.
	neg := num.Sign() < 0
	switch rnd {
	case RoundDirectNegInf:
	case RoundDirectZero:
		if neg {
			q.Add(q, bigOne)
		}
	default:
		switch twice := new(big.Int).Lsh(r, 1); twice.Cmp(den) {
		case 1:
			q.Add(q, bigOne)
		case 0:
			switch {
			case rnd == RoundNearPosInf:
				q.Add(q, bigOne)
			case rnd == RoundNearZero:
				if neg {
					q.Add(q, bigOne)
				}
			default: // RoundNearEven
				if q.Bit(0) == 1 {
					q.Add(q, bigOne)
				}
			}
		}
	}
	return q
}
