package gml

import (
	"math"
	"strings"
)

// BinaryOperator identifies a two-operand GML operator.
type BinaryOperator uint8

const (
	OpAdd BinaryOperator = iota
	OpAnd
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpBinaryShiftLeft
	OpBinaryShiftRight
	OpDivide
	OpEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpIntDivide
	OpLessThan
	OpLessThanOrEqual
	OpModulo
	OpMultiply
	OpNotEqual
	OpOr
	OpSubtract
	OpXor
)

var binaryOperatorNames = [...]string{
	OpAdd:                "+",
	OpAnd:                "&&",
	OpBitwiseAnd:         "&",
	OpBitwiseOr:          "|",
	OpBitwiseXor:         "^",
	OpBinaryShiftLeft:    "<<",
	OpBinaryShiftRight:   ">>",
	OpDivide:             "/",
	OpEqual:              "==",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
	OpIntDivide:          "div",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpModulo:             "mod",
	OpMultiply:           "*",
	OpNotEqual:           "!=",
	OpOr:                 "||",
	OpSubtract:           "-",
	OpXor:                "^^",
}

func (op BinaryOperator) String() string {
	if int(op) < len(binaryOperatorNames) {
		return binaryOperatorNames[op]
	}
	return "?"
}

// LookupBinaryOperator maps an operator symbol to its BinaryOperator.
func LookupBinaryOperator(sym string) (BinaryOperator, bool) {
	for i, name := range binaryOperatorNames {
		if name == sym {
			return BinaryOperator(i), true
		}
	}
	return 0, false
}

// Call applies the operator. Operand kinds the operator does not accept
// produce an InvalidOperandsBinary error.
func (op BinaryOperator) Call(lhs, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		return lhs.Add(rhs)
	case OpAnd:
		return lhs.And(rhs)
	case OpBitwiseAnd:
		return lhs.BitAnd(rhs)
	case OpBitwiseOr:
		return lhs.BitOr(rhs)
	case OpBitwiseXor:
		return lhs.BitXor(rhs)
	case OpBinaryShiftLeft:
		return lhs.Shl(rhs)
	case OpBinaryShiftRight:
		return lhs.Shr(rhs)
	case OpDivide:
		return lhs.Div(rhs)
	case OpEqual:
		return lhs.Eq(rhs), nil
	case OpGreaterThan:
		return lhs.Gt(rhs), nil
	case OpGreaterThanOrEqual:
		return lhs.Gte(rhs), nil
	case OpIntDivide:
		return lhs.IntDiv(rhs)
	case OpLessThan:
		return lhs.Lt(rhs), nil
	case OpLessThanOrEqual:
		return lhs.Lte(rhs), nil
	case OpModulo:
		return lhs.Mod(rhs)
	case OpMultiply:
		return lhs.Mul(rhs)
	case OpNotEqual:
		return lhs.Ne(rhs), nil
	case OpOr:
		return lhs.Or(rhs)
	case OpSubtract:
		return lhs.Sub(rhs)
	case OpXor:
		return lhs.Xor(rhs)
	default:
		return Value{}, NewInvalidBinaryOperator(op)
	}
}

// UnaryOperator identifies a single-operand GML operator.
type UnaryOperator uint8

const (
	OpNegate UnaryOperator = iota
	OpNot
	OpComplement
)

func (op UnaryOperator) String() string {
	switch op {
	case OpNegate:
		return "-"
	case OpNot:
		return "!"
	case OpComplement:
		return "~"
	default:
		return "?"
	}
}

// LookupUnaryOperator maps an operator symbol to its UnaryOperator.
func LookupUnaryOperator(sym string) (UnaryOperator, bool) {
	switch sym {
	case "-":
		return OpNegate, true
	case "!":
		return OpNot, true
	case "~":
		return OpComplement, true
	}
	return 0, false
}

// Call applies the operator.
func (op UnaryOperator) Call(v Value) (Value, error) {
	switch op {
	case OpNegate:
		return v.Neg()
	case OpNot:
		return v.Not()
	case OpComplement:
		return v.Complement()
	default:
		return Value{}, NewInvalidUnaryOperator(op)
	}
}

func bothReal(a, b Value) bool { return a.kind == KindReal && b.kind == KindReal }

// Add sums two reals or concatenates two strings.
func (v Value) Add(o Value) (Value, error) {
	switch {
	case bothReal(v, o):
		return FromReal(v.real + o.real), nil
	case v.kind == KindString && o.kind == KindString:
		return FromString(v.str + o.str), nil
	}
	return Value{}, NewInvalidOperandsBinary(OpAdd, v, o)
}

// Sub subtracts two reals.
func (v Value) Sub(o Value) (Value, error) {
	if bothReal(v, o) {
		return FromReal(v.real - o.real), nil
	}
	return Value{}, NewInvalidOperandsBinary(OpSubtract, v, o)
}

// Mul multiplies two reals. A real times a string repeats the string.
func (v Value) Mul(o Value) (Value, error) {
	switch {
	case bothReal(v, o):
		return FromReal(v.real * o.real), nil
	case v.kind == KindReal && o.kind == KindString:
		n := v.real.Round()
		if n <= 0 {
			return FromString(""), nil
		}
		return FromString(strings.Repeat(o.str, int(n))), nil
	}
	return Value{}, NewInvalidOperandsBinary(OpMultiply, v, o)
}

// Div divides two reals. Division by zero is an error.
func (v Value) Div(o Value) (Value, error) {
	if bothReal(v, o) && o.real != 0 {
		return FromReal(v.real / o.real), nil
	}
	return Value{}, NewInvalidOperandsBinary(OpDivide, v, o)
}

// IntDiv divides two reals and truncates toward zero.
func (v Value) IntDiv(o Value) (Value, error) {
	if bothReal(v, o) && o.real != 0 {
		return FromReal((v.real / o.real).Trunc()), nil
	}
	return Value{}, NewInvalidOperandsBinary(OpIntDivide, v, o)
}

// Mod is the floating-point remainder, with the sign of the dividend.
func (v Value) Mod(o Value) (Value, error) {
	if bothReal(v, o) && o.real != 0 {
		return FromReal(Real(math.Mod(float64(v.real), float64(o.real)))), nil
	}
	return Value{}, NewInvalidOperandsBinary(OpModulo, v, o)
}

func (v Value) bitwise(o Value, op BinaryOperator, f func(a, b int32) int32) (Value, error) {
	if bothReal(v, o) {
		return FromInt(f(v.real.Round(), o.real.Round())), nil
	}
	return Value{}, NewInvalidOperandsBinary(op, v, o)
}

// BitAnd rounds both operands and ANDs them.
func (v Value) BitAnd(o Value) (Value, error) {
	return v.bitwise(o, OpBitwiseAnd, func(a, b int32) int32 { return a & b })
}

// BitOr rounds both operands and ORs them.
func (v Value) BitOr(o Value) (Value, error) {
	return v.bitwise(o, OpBitwiseOr, func(a, b int32) int32 { return a | b })
}

// BitXor rounds both operands and XORs them.
func (v Value) BitXor(o Value) (Value, error) {
	return v.bitwise(o, OpBitwiseXor, func(a, b int32) int32 { return a ^ b })
}

// Shl shifts left; the count is masked to five bits as on x86.
func (v Value) Shl(o Value) (Value, error) {
	return v.bitwise(o, OpBinaryShiftLeft, func(a, b int32) int32 { return a << (uint32(b) & 31) })
}

// Shr is an arithmetic right shift; the count is masked to five bits.
func (v Value) Shr(o Value) (Value, error) {
	return v.bitwise(o, OpBinaryShiftRight, func(a, b int32) int32 { return a >> (uint32(b) & 31) })
}

func (v Value) logical(o Value, op BinaryOperator, f func(a, b bool) bool) (Value, error) {
	if bothReal(v, o) {
		return FromBool(f(v.Truthy(), o.Truthy())), nil
	}
	return Value{}, NewInvalidOperandsBinary(op, v, o)
}

// And is logical conjunction over truthiness.
func (v Value) And(o Value) (Value, error) {
	return v.logical(o, OpAnd, func(a, b bool) bool { return a && b })
}

// Or is logical disjunction over truthiness.
func (v Value) Or(o Value) (Value, error) {
	return v.logical(o, OpOr, func(a, b bool) bool { return a || b })
}

// Xor is logical exclusive-or over truthiness.
func (v Value) Xor(o Value) (Value, error) {
	return v.logical(o, OpXor, func(a, b bool) bool { return a != b })
}

// Eq is tolerant equality. Mixed kinds compare unequal.
func (v Value) Eq(o Value) Value { return FromBool(v.AlmostEqual(o)) }

// Ne is the negation of Eq.
func (v Value) Ne(o Value) Value { return FromBool(!v.AlmostEqual(o)) }

func (v Value) ordered(o Value, f func(c int) bool) Value {
	if v.kind != o.kind {
		return FromBool(false)
	}
	return FromBool(f(compare(v, o)))
}

// Lt compares two values of the same kind; mixed kinds yield false.
func (v Value) Lt(o Value) Value { return v.ordered(o, func(c int) bool { return c < 0 }) }

// Lte compares two values of the same kind; mixed kinds yield false.
func (v Value) Lte(o Value) Value { return v.ordered(o, func(c int) bool { return c <= 0 }) }

// Gt compares two values of the same kind; mixed kinds yield false.
func (v Value) Gt(o Value) Value { return v.ordered(o, func(c int) bool { return c > 0 }) }

// Gte compares two values of the same kind; mixed kinds yield false.
func (v Value) Gte(o Value) Value { return v.ordered(o, func(c int) bool { return c >= 0 }) }

// Neg negates a real.
func (v Value) Neg() (Value, error) {
	if v.kind == KindReal {
		return FromReal(-v.real), nil
	}
	return Value{}, NewInvalidOperandsUnary(OpNegate, v)
}

// Not inverts the truthiness of a real.
func (v Value) Not() (Value, error) {
	if v.kind == KindReal {
		return FromBool(!v.Truthy()), nil
	}
	return Value{}, NewInvalidOperandsUnary(OpNot, v)
}

// Complement rounds a real and flips its bits.
func (v Value) Complement() (Value, error) {
	if v.kind == KindReal {
		return FromInt(^v.real.Round()), nil
	}
	return Value{}, NewInvalidOperandsUnary(OpComplement, v)
}
