package gml

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a runtime error.
type ErrorKind uint8

const (
	// Scope and identity errors
	ErrNonexistentAsset ErrorKind = iota + 1
	ErrUninitializedVariable
	ErrUninitializedArgument
	ErrReadOnlyVariable

	// Numeric and shape errors
	ErrInvalidArrayIndex
	ErrTooManyArrayDimensions
	ErrInvalidRoomSpeed
	ErrWrongArgumentCount

	// Operator errors
	ErrInvalidOperandsUnary
	ErrInvalidOperandsBinary
	ErrInvalidUnaryOperator
	ErrInvalidBinaryOperator

	// Control flow domain errors
	ErrEndOfRoomOrder
	ErrReplayError

	// Host and function errors
	ErrFunctionError
	ErrExternalFunction
	ErrUnknownFunction
	ErrBadDirectory
)

var errorKindNames = map[ErrorKind]string{
	ErrNonexistentAsset:       "NONEXISTENT_ASSET",
	ErrUninitializedVariable:  "UNINITIALIZED_VARIABLE",
	ErrUninitializedArgument:  "UNINITIALIZED_ARGUMENT",
	ErrReadOnlyVariable:       "READ_ONLY_VARIABLE",
	ErrInvalidArrayIndex:      "INVALID_ARRAY_INDEX",
	ErrTooManyArrayDimensions: "TOO_MANY_ARRAY_DIMENSIONS",
	ErrInvalidRoomSpeed:       "INVALID_ROOM_SPEED",
	ErrWrongArgumentCount:     "WRONG_ARGUMENT_COUNT",
	ErrInvalidOperandsUnary:   "INVALID_OPERANDS_UNARY",
	ErrInvalidOperandsBinary:  "INVALID_OPERANDS_BINARY",
	ErrInvalidUnaryOperator:   "INVALID_UNARY_OPERATOR",
	ErrInvalidBinaryOperator:  "INVALID_BINARY_OPERATOR",
	ErrEndOfRoomOrder:         "END_OF_ROOM_ORDER",
	ErrReplayError:            "REPLAY_ERROR",
	ErrFunctionError:          "FUNCTION_ERROR",
	ErrExternalFunction:       "EXTERNAL_FUNCTION",
	ErrUnknownFunction:        "UNKNOWN_FUNCTION",
	ErrBadDirectory:           "BAD_DIRECTORY",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// AssetType names the asset table an id was looked up in.
type AssetType uint8

const (
	AssetSprite AssetType = iota
	AssetSound
	AssetBackground
	AssetPath
	AssetScript
	AssetFont
	AssetTimeline
	AssetObject
	AssetRoom
	AssetConstant
	AssetTrigger
)

func (t AssetType) String() string {
	switch t {
	case AssetSprite:
		return "sprite"
	case AssetSound:
		return "sound"
	case AssetBackground:
		return "background"
	case AssetPath:
		return "path"
	case AssetScript:
		return "script"
	case AssetFont:
		return "font"
	case AssetTimeline:
		return "timeline"
	case AssetObject:
		return "object"
	case AssetRoom:
		return "room"
	case AssetConstant:
		return "constant"
	case AssetTrigger:
		return "trigger"
	default:
		return "asset"
	}
}

// Error is the single runtime error type of the interpreter. Every error
// raised by evaluation or execution is fatal to the current instruction and
// propagates to the caller of Execute.
type Error struct {
	Kind    ErrorKind
	Message string
	// Index carries the offending id, index or count for kinds that have one.
	Index int64
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: k})
// works as a kind test.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsKind reports whether err is, or wraps, a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind ErrorKind, index int64, format string, args ...any) *Error {
	return &Error{Kind: kind, Index: index, Message: fmt.Sprintf(format, args...)}
}

// NewNonexistentAsset reports a lookup of an id with no asset behind it.
func NewNonexistentAsset(t AssetType, id int32) *Error {
	return newError(ErrNonexistentAsset, int64(id), "%s %d does not exist", t, id)
}

// NewUninitializedVariable reports a read of a variable that was never set.
func NewUninitializedVariable(name string, arrayIndex uint32) *Error {
	if arrayIndex == 0 {
		return newError(ErrUninitializedVariable, int64(arrayIndex), "unknown variable %s", name)
	}
	return newError(ErrUninitializedVariable, int64(arrayIndex), "unknown variable %s or array index out of bounds (%d)", name, arrayIndex)
}

// NewUninitializedArgument reports a read of an argument the caller did not pass.
func NewUninitializedArgument(n int) *Error {
	return newError(ErrUninitializedArgument, int64(n), "uninitialized argument %d", n)
}

// NewReadOnlyVariable reports a write to a variable that cannot be assigned.
func NewReadOnlyVariable(v InstanceVariable) *Error {
	return newError(ErrReadOnlyVariable, int64(v), "cannot assign to the variable %s", v)
}

// NewInvalidArrayIndex reports an array index outside [0, 32000). dim names
// the dimension that failed (1 or 2).
func NewInvalidArrayIndex(index int32, dim int) *Error {
	return newError(ErrInvalidArrayIndex, int64(index), "invalid array index %d in dimension %d (must be in [0, 32000))", index, dim)
}

// NewTooManyArrayDimensions reports an accessor with more than two dimensions.
func NewTooManyArrayDimensions(n int) *Error {
	return newError(ErrTooManyArrayDimensions, int64(n), "too many array dimensions (%d)", n)
}

// NewInvalidRoomSpeed reports a non-positive room_speed.
func NewInvalidRoomSpeed(speed int32) *Error {
	return newError(ErrInvalidRoomSpeed, int64(speed), "invalid room speed %d", speed)
}

// NewWrongArgumentCount reports a call with the wrong number of arguments.
func NewWrongArgumentCount(name string, expected, got int) *Error {
	return newError(ErrWrongArgumentCount, int64(got), "%s: wrong number of arguments (expected %d, got %d)", name, expected, got)
}

// NewInvalidOperandsUnary reports an operand the unary operator cannot take.
func NewInvalidOperandsUnary(op UnaryOperator, v Value) *Error {
	return newError(ErrInvalidOperandsUnary, 0, "invalid operand for %s: %s", op, v)
}

// NewInvalidOperandsBinary reports operands the binary operator cannot take.
func NewInvalidOperandsBinary(op BinaryOperator, lhs, rhs Value) *Error {
	return newError(ErrInvalidOperandsBinary, 0, "invalid operands for %s: %s, %s", op, lhs, rhs)
}

// NewInvalidUnaryOperator reports an operator id outside the known set.
func NewInvalidUnaryOperator(op UnaryOperator) *Error {
	return newError(ErrInvalidUnaryOperator, int64(op), "invalid unary operator %d", uint8(op))
}

// NewInvalidBinaryOperator reports an operator id outside the known set.
func NewInvalidBinaryOperator(op BinaryOperator) *Error {
	return newError(ErrInvalidBinaryOperator, int64(op), "invalid binary operator %d", uint8(op))
}

// NewEndOfRoomOrder reports navigation past either end of the room order.
func NewEndOfRoomOrder() *Error {
	return newError(ErrEndOfRoomOrder, 0, "moving to next or previous room past the end of the room order")
}

// NewReplayError reports a desync between a recorded replay and the game.
func NewReplayError(detail string) *Error {
	return newError(ErrReplayError, 0, "replay error: %s", detail)
}

// NewFunctionError reports a failure inside a kernel function.
func NewFunctionError(name, detail string) *Error {
	return newError(ErrFunctionError, 0, "%s: %s", name, detail)
}

// NewExternalFunction reports a failure inside an extension function.
func NewExternalFunction(name, detail string) *Error {
	return newError(ErrExternalFunction, 0, "external function %s: %s", name, detail)
}

// NewUnknownFunction reports a call to a function name with no implementation.
func NewUnknownFunction(name string) *Error {
	return newError(ErrUnknownFunction, 0, "unknown function or script %s", name)
}

// NewBadDirectory reports an unusable directory path.
func NewBadDirectory(path string) *Error {
	return newError(ErrBadDirectory, 0, "bad directory %q", path)
}
