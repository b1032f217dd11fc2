package gml

// The instruction tree is produced by an external front end. One []Instruction
// is compiled per event handler, script, or creation code block; every
// expression inside it is a Node.

// Special instance identifiers usable as expression owners and with() targets.
const (
	SelfID        int32 = -1
	OtherID       int32 = -2
	AllID         int32 = -3
	NooneID       int32 = -4
	GlobalID      int32 = -5
	UnspecifiedID int32 = -6
	LocalID       int32 = -7
)

// InstanceIDBase is the first persistent instance id. Smaller non-negative
// values name objects.
const InstanceIDBase int32 = 100000

// MaxArgs is the number of positional arguments a call can carry.
const MaxArgs = 16

// ReturnType is how a body finished executing.
type ReturnType uint8

const (
	Normal ReturnType = iota
	Continue
	Break
	Exit
)

func (r ReturnType) String() string {
	switch r {
	case Normal:
		return "normal"
	case Continue:
		return "continue"
	case Break:
		return "break"
	case Exit:
		return "exit"
	default:
		return "?"
	}
}

// AssignmentType is the operator of an assignment statement.
type AssignmentType uint8

const (
	AssignSet AssignmentType = iota
	AssignAdd
	AssignSubtract
	AssignMultiply
	AssignDivide
	AssignBitAnd
	AssignBitOr
	AssignBitXor
)

// Apply combines the current value with the assigned one.
func (a AssignmentType) Apply(current, rhs Value) (Value, error) {
	switch a {
	case AssignSet:
		return rhs, nil
	case AssignAdd:
		return current.Add(rhs)
	case AssignSubtract:
		return current.Sub(rhs)
	case AssignMultiply:
		return current.Mul(rhs)
	case AssignDivide:
		return current.Div(rhs)
	case AssignBitAnd:
		return current.BitAnd(rhs)
	case AssignBitOr:
		return current.BitOr(rhs)
	case AssignBitXor:
		return current.BitXor(rhs)
	default:
		return rhs, nil
	}
}

// IdentifierKind is the lexical scope an accessor names.
type IdentifierKind uint8

const (
	// IdentUnknown is an unqualified identifier: global if it was declared
	// with globalvar, otherwise the current instance.
	IdentUnknown IdentifierKind = iota
	IdentOwn
	IdentOther
	IdentGlobal
	IdentLocal
	IdentExpression
)

// InstanceIdentifier is the owner part of a field or variable access.
type InstanceIdentifier struct {
	Kind IdentifierKind
	Expr Node // set when Kind is IdentExpression
}

// ArrayAccessor holds up to two index expressions. Index1 nil means no
// index; Index2 non-nil means a 2D access.
type ArrayAccessor struct {
	Index1 Node
	Index2 Node
}

// FieldAccessor addresses a user-defined field.
type FieldAccessor struct {
	Index int
	Array ArrayAccessor
	Owner InstanceIdentifier
}

// VariableAccessor addresses a built-in instance variable.
type VariableAccessor struct {
	Var   InstanceVariable
	Array ArrayAccessor
	Owner InstanceIdentifier
}

// Node is an expression.
type Node interface {
	node()
}

// Literal is a constant value embedded in the tree.
type Literal struct{ Value Value }

// Constant reads a user constant by id.
type Constant struct{ ID int }

// Function calls a kernel function by id.
type Function struct {
	ID   int
	Name string
	Args []Node
}

// Script calls a user script by id.
type Script struct {
	ID   int32
	Args []Node
}

// ExtensionFunction calls a function exported by an extension package.
type ExtensionFunction struct {
	ID   int
	Name string
	Args []Node
}

// Field reads a user-defined field.
type Field struct{ Accessor FieldAccessor }

// Variable reads a built-in instance variable.
type Variable struct{ Accessor VariableAccessor }

// Binary applies a two-operand operator.
type Binary struct {
	Left, Right Node
	Operator    BinaryOperator
}

// Unary applies a one-operand operator.
type Unary struct {
	Child    Node
	Operator UnaryOperator
}

// ErrorNode is an error detected by the front end and deferred until the
// expression is actually evaluated.
type ErrorNode struct{ Err *Error }

func (*Literal) node()           {}
func (*Constant) node()          {}
func (*Function) node()          {}
func (*Script) node()            {}
func (*ExtensionFunction) node() {}
func (*Field) node()             {}
func (*Variable) node()          {}
func (*Binary) node()            {}
func (*Unary) node()             {}
func (*ErrorNode) node()         {}

// Instruction is a statement.
type Instruction interface {
	instruction()
}

// SetField assigns to a user-defined field.
type SetField struct {
	Accessor       FieldAccessor
	Value          Node
	AssignmentType AssignmentType
}

// SetVariable assigns to a built-in instance variable.
type SetVariable struct {
	Accessor       VariableAccessor
	Value          Node
	AssignmentType AssignmentType
}

// EvalExpression evaluates an expression for its side effects.
type EvalExpression struct{ Node Node }

// IfElse branches on the truthiness of Cond.
type IfElse struct {
	Cond     Node
	IfBody   []Instruction
	ElseBody []Instruction
}

// LoopUntil is do { Body } until (Cond).
type LoopUntil struct {
	Cond Node
	Body []Instruction
}

// LoopWhile is while (Cond) { Body }.
type LoopWhile struct {
	Cond Node
	Body []Instruction
}

// LoopFor is the condition, body and step of a for loop. The initializer is
// compiled as a separate instruction before it.
type LoopFor struct {
	Cond Node
	Body []Instruction
	Step Instruction
}

// Repeat runs Body Count times.
type Repeat struct {
	Count Node
	Body  []Instruction
}

// SwitchCase is one case label: the expression to compare and the offset in
// the shared body where its statements begin.
type SwitchCase struct {
	Expr   Node
	Offset int
}

// Switch compares Input against each case in order and runs Body from the
// matched offset to the end. Default is -1 when there is no default label.
type Switch struct {
	Input   Node
	Cases   []SwitchCase
	Default int
	Body    []Instruction
}

// With runs Body once per instance named by Target.
type With struct {
	Target Node
	Body   []Instruction
}

// Return ends the current body with the given return type.
type Return struct{ ReturnType ReturnType }

// GlobalVar declares field ids as permanently global.
type GlobalVar struct{ Fields []int }

// ErrorInstruction is an error detected by the front end and deferred until
// the statement is executed.
type ErrorInstruction struct{ Err *Error }

func (*SetField) instruction()         {}
func (*SetVariable) instruction()      {}
func (*EvalExpression) instruction()   {}
func (*IfElse) instruction()           {}
func (*LoopUntil) instruction()        {}
func (*LoopWhile) instruction()        {}
func (*LoopFor) instruction()          {}
func (*Repeat) instruction()           {}
func (*Switch) instruction()           {}
func (*With) instruction()             {}
func (*Return) instruction()           {}
func (*GlobalVar) instruction()        {}
func (*ErrorInstruction) instruction() {}
