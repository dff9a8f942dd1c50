// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"math"
	"strconv"
	"strings"
)

// A Number is a numeric value, either an exact 64-bit integer or a 64-bit
// floating-point value. The zero value is the integer 0.
type Number struct {
	isFloat bool
	i       int64
	f       float64
}

// Int returns an integer Number with value v.
func Int(v int64) Number { return Number{i: v} }

// Float returns a floating-point Number with value v.
func Float(v float64) Number { return Number{isFloat: true, f: v} }

// IsInt reports whether n is an integer.
func (n Number) IsInt() bool { return !n.isFloat }

// Int64 returns the value of n as an integer. A floating-point value is
// truncated toward zero.
func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns the value of n as a floating-point value.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// String renders n as text. Integers are rendered as exact decimal digits.
// Finite floating-point values are rendered in the shortest form that
// round-trips, and always include a decimal point or exponent so that the
// text is read back as a floating-point value.
func (n Number) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if math.IsInf(n.f, 0) || math.IsNaN(n.f) || strings.IndexByte(s, '.') >= 0 {
		return s
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}

const (
	maxFracDigits = 18   // fraction digits held exactly in fracPart
	maxExponent   = 9999 // exponent magnitudes are clamped to this
	maxExactFloat = 1 << 53
)

// Exactly representable powers of ten.
var floatPow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

var intPow10 = [...]uint64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

// numberParts records the pieces of a numeric literal as it is read.
type numberParts struct {
	neg     bool
	nonzero bool   // some digit of the mantissa is not zero
	intPart uint64 // exact integer part, valid unless intOver
	intOver bool   // intPart exceeded the int64 range

	hasFrac    bool
	fracPart   uint64 // first fracDigits digits of the fraction
	fracDigits int
	fracOver   bool // the fraction has more than maxFracDigits digits

	hasExp bool
	expNeg bool
	exp    int

	// The retained digits of the literal, for conversions that cannot be done
	// exactly from the parts above.
	text []byte
	tbuf [32]byte
}

func (p *numberParts) pushInt(d int) {
	p.text = append(p.text, byte('0'+d))
	p.nonzero = p.nonzero || d != 0
	if p.intOver {
		return
	}
	limit := uint64(math.MaxInt64)
	if p.neg {
		limit++
	}
	if p.intPart > (limit-uint64(d))/10 {
		p.intOver = true
		return
	}
	p.intPart = p.intPart*10 + uint64(d)
}

func (p *numberParts) pushFrac(d int) {
	if !p.hasFrac {
		p.hasFrac = true
		p.text = append(p.text, '.')
	}
	p.text = append(p.text, byte('0'+d))
	p.nonzero = p.nonzero || d != 0
	if p.fracDigits < maxFracDigits {
		p.fracPart = p.fracPart*10 + uint64(d)
		p.fracDigits++
	} else {
		p.fracOver = true
	}
}

func (p *numberParts) pushExp(d int) {
	p.exp = min(p.exp*10+d, maxExponent)
}

// ReadNumber reads a numeric literal whose first character first has already
// been consumed. It returns the number and the first character following the
// literal, which has been consumed.
//
// The grammar accepted is:
//
//	[-] digit+ [. digit+] [(e|E) [+|-] digit+]
//
// The result is a floating-point value if the literal has a fraction or a
// negative exponent, or if its value does not fit in an int64; otherwise it is
// an exact integer.
func (r *Reader) ReadNumber(first Char) (Number, Char, error) {
	var p numberParts
	p.text = p.tbuf[:0]
	c := first
	if c == '-' {
		p.neg = true
		next, err := r.ReadChar()
		if err != nil {
			return Number{}, EOF, err
		}
		c = next
	}
	if !IsDigit(c) {
		return Number{}, c, r.failf(NumberFormatError, "got %q, want digit", c)
	}
	p.pushInt(int(c - '0'))
	_, c, err := r.readDigits(p.pushInt)
	if err != nil {
		return Number{}, EOF, err
	}

	if c == '.' {
		var nd int
		nd, c, err = r.readDigits(p.pushFrac)
		if err != nil {
			return Number{}, EOF, err
		} else if nd == 0 {
			return Number{}, c, r.failf(NumberFormatError, "no digits after decimal point")
		}
	}

	if c == 'e' || c == 'E' {
		p.hasExp = true
		c, err = r.ReadChar()
		if err != nil {
			return Number{}, EOF, err
		}
		if c == '+' || c == '-' {
			p.expNeg = c == '-'
			c, err = r.ReadChar()
			if err != nil {
				return Number{}, EOF, err
			}
		}
		if !IsDigit(c) {
			return Number{}, c, r.failf(NumberFormatError, "got %q, want exponent digit", c)
		}
		p.pushExp(int(c - '0'))
		_, c, err = r.readDigits(p.pushExp)
		if err != nil {
			return Number{}, EOF, err
		}
	}
	return p.value(), c, nil
}

// value assembles the number described by p.
func (p *numberParts) value() Number {
	if !p.hasFrac && !p.expNeg && !p.intOver {
		if v, ok := p.scaledInt(); ok {
			return Int(v)
		}
	}
	f := p.float()
	if p.neg {
		f = -f
	}
	return Float(f)
}

// scaledInt returns the integer part scaled by the exponent, if the result
// fits in an int64.
func (p *numberParts) scaledInt() (int64, bool) {
	v := p.intPart
	if v != 0 && p.exp != 0 {
		limit := uint64(math.MaxInt64)
		if p.neg {
			limit++
		}
		if p.exp >= len(intPow10) || v > limit/intPow10[p.exp] {
			return 0, false
		}
		v *= intPow10[p.exp]
	}
	if p.neg {
		return -int64(v), true
	}
	return int64(v), true
}

// float returns the unsigned magnitude of p as a floating-point value.
func (p *numberParts) float() float64 {
	if !p.nonzero {
		return 0
	}
	e10 := p.exp
	if p.expNeg {
		e10 = -e10
	}

	// If the digits form an exactly-representable mantissa and the scale is
	// an exactly-representable power of ten, a single operation gives the
	// correctly rounded result.
	if !p.intOver && !p.fracOver && p.intPart <= maxExactFloat/intPow10[p.fracDigits] {
		m := p.intPart*intPow10[p.fracDigits] + p.fracPart
		e := e10 - p.fracDigits
		if m <= maxExactFloat {
			if e >= 0 && e < len(floatPow10) {
				return float64(m) * floatPow10[e]
			} else if e < 0 && -e < len(floatPow10) {
				return float64(m) / floatPow10[-e]
			}
		}
	}

	// Otherwise, convert the retained digits. A result out of range is
	// reported as an infinity or zero, which is what we want.
	p.text = append(p.text, 'e')
	p.text = strconv.AppendInt(p.text, int64(e10), 10)
	f, _ := strconv.ParseFloat(string(p.text), 64)
	return f
}
