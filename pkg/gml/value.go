package gml

import (
	"strconv"
	"strings"
)

// Kind tags the two shapes a Value can take.
type Kind uint8

const (
	KindReal Kind = iota
	KindString
)

// Value is a GML value: either a Real or a byte string. The zero Value is
// Real(0), which is also the default for every uninitialized slot when the
// lenient policy is enabled.
//
// Strings hold raw bytes in the ANSI code page; use DecodeANSI to obtain
// UTF-8 for display.
type Value struct {
	kind Kind
	real Real
	str  string
}

// FromReal wraps a Real.
func FromReal(r Real) Value { return Value{kind: KindReal, real: r} }

// FromFloat wraps a float64.
func FromFloat(f float64) Value { return Value{kind: KindReal, real: Real(f)} }

// FromInt wraps an integer.
func FromInt[T ~int | ~int32 | ~int64 | ~uint32](i T) Value {
	return Value{kind: KindReal, real: Real(i)}
}

// FromBool returns 1 for true and 0 for false.
func FromBool(b bool) Value {
	if b {
		return Value{kind: KindReal, real: 1}
	}
	return Value{}
}

// FromString wraps a byte string.
func FromString(s string) Value { return Value{kind: KindString, str: s} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsReal reports whether v holds a Real.
func (v Value) IsReal() bool { return v.kind == KindReal }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.kind == KindString }

// Real returns the numeric payload, or 0 for strings.
func (v Value) Real() Real {
	if v.kind == KindReal {
		return v.real
	}
	return 0
}

// Float is shorthand for float64(v.Real()).
func (v Value) Float() float64 { return float64(v.Real()) }

// Round rounds the numeric payload; strings round to 0.
func (v Value) Round() int32 { return v.Real().Round() }

// Str returns the string payload, or "" for reals.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.str
	}
	return ""
}

// Truthy implements GML truthiness: a Real is true when it is at least 0.5,
// a string is never true.
func (v Value) Truthy() bool {
	return v.kind == KindReal && v.real >= 0.5
}

// AlmostEqual compares two values with the tolerant equality used by == and
// switch: reals within CmpEpsilon, strings byte-wise. Mixed kinds are never
// equal.
func (v Value) AlmostEqual(o Value) bool {
	switch {
	case v.kind == KindReal && o.kind == KindReal:
		return v.real.AlmostEqual(o.real)
	case v.kind == KindString && o.kind == KindString:
		return v.str == o.str
	default:
		return false
	}
}

// ToGMLString converts v the way string() does.
func (v Value) ToGMLString() string {
	if v.kind == KindString {
		return v.str
	}
	return v.real.String()
}

// String renders v for diagnostics: strings are quoted.
func (v Value) String() string {
	if v.kind == KindString {
		return strconv.Quote(DecodeANSI(v.str))
	}
	return v.real.String()
}

// compare orders two values. Reals order numerically, strings byte-wise and
// every Real sorts before every string.
func compare(a, b Value) int {
	switch {
	case a.kind == KindReal && b.kind == KindReal:
		switch {
		case a.real.AlmostEqual(b.real):
			return 0
		case a.real < b.real:
			return -1
		default:
			return 1
		}
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.str, b.str)
	case a.kind == KindReal:
		return -1
	default:
		return 1
	}
}

// Compare exposes the ordering used by min/max and sorting kernel functions.
func Compare(a, b Value) int { return compare(a, b) }
