// Package gml defines the data model shared by the loader and the virtual
// machine: values, operators, the pre-compiled instruction tree, the
// instance-variable table and the runtime error taxonomy.
package gml

import (
	"math"
	"strconv"
)

// CmpEpsilon is the tolerance used for equality between two Reals.
// Both the == operator and switch case matching compare through it.
const CmpEpsilon = 1e-14

// Real is the GML number type. All numeric values are doubles; integer
// conversion goes through Round, which reproduces the x87 behavior of the
// original runner.
type Real float64

// Round rounds half to even and converts to int32. Values that do not fit
// (including NaN) yield math.MinInt32, the x87 "integer indefinite" value.
func (r Real) Round() int32 {
	f := math.RoundToEven(float64(r))
	if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return math.MinInt32
	}
	return int32(f)
}

// Floor returns the largest integral Real not greater than r.
func (r Real) Floor() Real { return Real(math.Floor(float64(r))) }

// Trunc drops the fractional part of r.
func (r Real) Trunc() Real { return Real(math.Trunc(float64(r))) }

// Abs returns |r|.
func (r Real) Abs() Real { return Real(math.Abs(float64(r))) }

// AlmostEqual reports whether r and o differ by no more than CmpEpsilon.
func (r Real) AlmostEqual(o Real) bool {
	return math.Abs(float64(r-o)) <= CmpEpsilon
}

// Float returns r as a float64.
func (r Real) Float() float64 { return float64(r) }

// String formats r the way string() does: integral values without a
// fractional part, everything else with two decimals.
func (r Real) String() string {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}
