package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

type compiler struct {
	funcs  FunctionResolver
	bundle *asset.Bundle

	assets      map[string]int32
	sprites     map[string]int32
	backgrounds map[string]int32
	paths       map[string]int32
	fonts       map[string]int32
	scripts     map[string]int32
	timelines   map[string]int32
	objects     map[string]int32
	rooms       map[string]int32

	// locals holds the names declared with "local" in the block being
	// compiled.
	locals map[string]bool
}

func newCompiler(funcs FunctionResolver) *compiler {
	return &compiler{
		funcs:       funcs,
		bundle:      asset.NewBundle(),
		assets:      make(map[string]int32),
		sprites:     make(map[string]int32),
		backgrounds: make(map[string]int32),
		paths:       make(map[string]int32),
		fonts:       make(map[string]int32),
		scripts:     make(map[string]int32),
		timelines:   make(map[string]int32),
		objects:     make(map[string]int32),
		rooms:       make(map[string]int32),
	}
}

// errorAt reports a problem with a node, prefixed with its position.
func errorAt(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

// wrapAt prefixes err with the node's position, keeping it inspectable.
func wrapAt(n *yaml.Node, err error) error {
	return fmt.Errorf("line %d: %w", n.Line, err)
}

// single splits a one-key mapping into its key and value.
func single(n *yaml.Node) (string, *yaml.Node, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, false
	}
	return n.Content[0].Value, n.Content[1], true
}

// fields indexes a mapping node by key.
func fields(n *yaml.Node) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected a mapping")
	}
	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		m[n.Content[i].Value] = n.Content[i+1]
	}
	return m, nil
}

// code compiles one independent block: an event, script, moment or
// creation code.
func (c *compiler) code(n *yaml.Node) ([]gml.Instruction, error) {
	c.locals = make(map[string]bool)
	return c.instrs(n)
}

func (c *compiler) instrs(n *yaml.Node) ([]gml.Instruction, error) {
	if n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected a list of instructions")
	}
	var out []gml.Instruction
	for _, item := range n.Content {
		compiled, err := c.instr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, compiled...)
	}
	return out, nil
}

var assignOps = map[string]gml.AssignmentType{
	"=":  gml.AssignSet,
	"+=": gml.AssignAdd,
	"-=": gml.AssignSubtract,
	"*=": gml.AssignMultiply,
	"/=": gml.AssignDivide,
	"&=": gml.AssignBitAnd,
	"|=": gml.AssignBitOr,
	"^=": gml.AssignBitXor,
}

func (c *compiler) instr(n *yaml.Node) ([]gml.Instruction, error) {
	if n.Kind == yaml.ScalarNode {
		switch n.Value {
		case "exit":
			return []gml.Instruction{&gml.Return{ReturnType: gml.Exit}}, nil
		case "break":
			return []gml.Instruction{&gml.Return{ReturnType: gml.Break}}, nil
		case "continue":
			return []gml.Instruction{&gml.Return{ReturnType: gml.Continue}}, nil
		}
		return nil, errorAt(n, "unknown statement %q", n.Value)
	}
	key, val, ok := single(n)
	if !ok {
		return nil, errorAt(n, "a statement is a single-key mapping")
	}

	switch key {
	case "set":
		in, err := c.set(val)
		if err != nil {
			return nil, err
		}
		return []gml.Instruction{in}, nil

	case "eval":
		expr, err := c.expr(val)
		if err != nil {
			return nil, err
		}
		return []gml.Instruction{&gml.EvalExpression{Node: expr}}, nil

	case "return":
		expr, err := c.expr(val)
		if err != nil {
			return nil, err
		}
		return []gml.Instruction{&gml.EvalExpression{Node: expr}, &gml.Return{ReturnType: gml.Exit}}, nil

	case "if":
		f, err := fields(val)
		if err != nil {
			return nil, err
		}
		cond, err := c.required(val, f, "cond")
		if err != nil {
			return nil, err
		}
		then, err := c.instrs(f["then"])
		if err != nil {
			return nil, err
		}
		els, err := c.instrs(f["else"])
		if err != nil {
			return nil, err
		}
		return []gml.Instruction{&gml.IfElse{Cond: cond, IfBody: then, ElseBody: els}}, nil

	case "while", "until":
		f, err := fields(val)
		if err != nil {
			return nil, err
		}
		cond, err := c.required(val, f, "cond")
		if err != nil {
			return nil, err
		}
		body, err := c.instrs(f["do"])
		if err != nil {
			return nil, err
		}
		if key == "while" {
			return []gml.Instruction{&gml.LoopWhile{Cond: cond, Body: body}}, nil
		}
		return []gml.Instruction{&gml.LoopUntil{Cond: cond, Body: body}}, nil

	case "for":
		return c.forLoop(val)

	case "repeat":
		f, err := fields(val)
		if err != nil {
			return nil, err
		}
		count, err := c.required(val, f, "count")
		if err != nil {
			return nil, err
		}
		body, err := c.instrs(f["do"])
		if err != nil {
			return nil, err
		}
		return []gml.Instruction{&gml.Repeat{Count: count, Body: body}}, nil

	case "switch":
		in, err := c.switchStmt(val)
		if err != nil {
			return nil, err
		}
		return []gml.Instruction{in}, nil

	case "with":
		f, err := fields(val)
		if err != nil {
			return nil, err
		}
		target, err := c.required(val, f, "target")
		if err != nil {
			return nil, err
		}
		body, err := c.instrs(f["do"])
		if err != nil {
			return nil, err
		}
		return []gml.Instruction{&gml.With{Target: target, Body: body}}, nil

	case "globalvar":
		names, err := nameList(val)
		if err != nil {
			return nil, err
		}
		gv := &gml.GlobalVar{}
		for _, name := range names {
			gv.Fields = append(gv.Fields, c.bundle.FieldNames.Intern(name))
		}
		return []gml.Instruction{gv}, nil

	case "local":
		names, err := nameList(val)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			c.locals[name] = true
		}
		return nil, nil

	default:
		return nil, errorAt(n, "unknown statement %q", key)
	}
}

func nameList(n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected a name or a list of names")
	}
	names := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, errorAt(item, "expected a name")
		}
		names = append(names, item.Value)
	}
	return names, nil
}

func (c *compiler) required(parent *yaml.Node, f map[string]*yaml.Node, key string) (gml.Node, error) {
	n, ok := f[key]
	if !ok {
		return nil, errorAt(parent, "missing %q", key)
	}
	return c.expr(n)
}

func (c *compiler) forLoop(val *yaml.Node) ([]gml.Instruction, error) {
	f, err := fields(val)
	if err != nil {
		return nil, err
	}
	var out []gml.Instruction
	if init, ok := f["init"]; ok {
		compiled, err := c.instr(init)
		if err != nil {
			return nil, err
		}
		out = append(out, compiled...)
	}
	cond, err := c.required(val, f, "cond")
	if err != nil {
		return nil, err
	}
	loop := &gml.LoopFor{Cond: cond}
	if step, ok := f["step"]; ok {
		compiled, err := c.instr(step)
		if err != nil {
			return nil, err
		}
		if len(compiled) != 1 {
			return nil, errorAt(step, "for step must be a single statement")
		}
		loop.Step = compiled[0]
	}
	if loop.Body, err = c.instrs(f["do"]); err != nil {
		return nil, err
	}
	return append(out, loop), nil
}

// switchStmt flattens the case bodies into one body. Each case label
// records the offset its statements start at, so execution falls through
// into the following cases until a break.
func (c *compiler) switchStmt(val *yaml.Node) (gml.Instruction, error) {
	f, err := fields(val)
	if err != nil {
		return nil, err
	}
	input, err := c.required(val, f, "value")
	if err != nil {
		return nil, err
	}
	sw := &gml.Switch{Input: input, Default: -1}
	cases, ok := f["cases"]
	if !ok {
		return sw, nil
	}
	if cases.Kind != yaml.SequenceNode {
		return nil, errorAt(cases, "cases must be a list")
	}
	for _, item := range cases.Content {
		cf, err := fields(item)
		if err != nil {
			return nil, err
		}
		offset := len(sw.Body)
		if _, isDefault := cf["default"]; isDefault {
			sw.Default = offset
		} else {
			expr, err := c.required(item, cf, "case")
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, gml.SwitchCase{Expr: expr, Offset: offset})
		}
		body, err := c.instrs(cf["do"])
		if err != nil {
			return nil, err
		}
		sw.Body = append(sw.Body, body...)
	}
	return sw, nil
}

// set compiles [target, value] or [target, op, value].
func (c *compiler) set(val *yaml.Node) (gml.Instruction, error) {
	if val.Kind != yaml.SequenceNode || (len(val.Content) != 2 && len(val.Content) != 3) {
		return nil, errorAt(val, "set takes [target, value] or [target, op, value]")
	}
	op := gml.AssignSet
	valueNode := val.Content[1]
	if len(val.Content) == 3 {
		var ok bool
		if op, ok = assignOps[val.Content[1].Value]; !ok {
			return nil, errorAt(val.Content[1], "unknown assignment operator %q", val.Content[1].Value)
		}
		valueNode = val.Content[2]
	}
	value, err := c.expr(valueNode)
	if err != nil {
		return nil, err
	}
	fieldAcc, varAcc, err := c.access(val.Content[0])
	if err != nil {
		return nil, err
	}
	if varAcc != nil {
		return &gml.SetVariable{Accessor: *varAcc, Value: value, AssignmentType: op}, nil
	}
	return &gml.SetField{Accessor: *fieldAcc, Value: value, AssignmentType: op}, nil
}

// Keywords usable as values and as owners.
var keywords = map[string]int32{
	"self":   gml.SelfID,
	"other":  gml.OtherID,
	"all":    gml.AllID,
	"noone":  gml.NooneID,
	"global": gml.GlobalID,
	"local":  gml.LocalID,
}

func (c *compiler) expr(n *yaml.Node) (gml.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return c.scalar(n)
	case yaml.MappingNode:
	default:
		return nil, errorAt(n, "expected an expression")
	}

	key, val, ok := single(n)
	if !ok {
		return nil, errorAt(n, "an expression is a scalar or a single-key mapping")
	}
	switch key {
	case "real":
		f, err := strconv.ParseFloat(val.Value, 64)
		if err != nil {
			return nil, errorAt(val, "bad real %q", val.Value)
		}
		return &gml.Literal{Value: gml.FromFloat(f)}, nil

	case "string":
		return &gml.Literal{Value: gml.FromString(gml.EncodeANSI(val.Value))}, nil

	case "const":
		id, ok := c.bundle.ConstantNames[val.Value]
		if !ok {
			return nil, wrapAt(val, gml.NewNonexistentAsset(gml.AssetConstant, -1))
		}
		return &gml.Constant{ID: id}, nil

	case "field", "var":
		fieldAcc, varAcc, err := c.access(n)
		if err != nil {
			return nil, err
		}
		if varAcc != nil {
			return &gml.Variable{Accessor: *varAcc}, nil
		}
		return &gml.Field{Accessor: *fieldAcc}, nil

	case "call", "script":
		return c.call(key, val)

	case "binary":
		if val.Kind != yaml.SequenceNode || len(val.Content) != 3 {
			return nil, errorAt(val, "binary takes [lhs, op, rhs]")
		}
		op, ok := gml.LookupBinaryOperator(val.Content[1].Value)
		if !ok {
			return nil, errorAt(val.Content[1], "unknown binary operator %q", val.Content[1].Value)
		}
		lhs, err := c.expr(val.Content[0])
		if err != nil {
			return nil, err
		}
		rhs, err := c.expr(val.Content[2])
		if err != nil {
			return nil, err
		}
		return &gml.Binary{Left: lhs, Right: rhs, Operator: op}, nil

	case "unary":
		if val.Kind != yaml.SequenceNode || len(val.Content) != 2 {
			return nil, errorAt(val, "unary takes [op, operand]")
		}
		op, ok := gml.LookupUnaryOperator(val.Content[0].Value)
		if !ok {
			return nil, errorAt(val.Content[0], "unknown unary operator %q", val.Content[0].Value)
		}
		child, err := c.expr(val.Content[1])
		if err != nil {
			return nil, err
		}
		return &gml.Unary{Child: child, Operator: op}, nil

	default:
		return nil, errorAt(n, "unknown expression %q", key)
	}
}

// scalar compiles a bare value: numbers and booleans are literals, quoted
// text is a string, and anything else is an identifier.
func (c *compiler) scalar(n *yaml.Node) (gml.Node, error) {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return &gml.Literal{Value: gml.FromString(gml.EncodeANSI(n.Value))}, nil
	}
	switch n.Tag {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			i, ierr := strconv.ParseInt(n.Value, 0, 64)
			if ierr != nil {
				return nil, errorAt(n, "bad number %q", n.Value)
			}
			f = float64(i)
		}
		return &gml.Literal{Value: gml.FromFloat(f)}, nil
	case "!!bool":
		return &gml.Literal{Value: gml.FromBool(n.Value == "true")}, nil
	case "!!null":
		return &gml.Literal{Value: gml.Value{}}, nil
	}
	return c.identifier(n)
}

func (c *compiler) identifier(n *yaml.Node) (gml.Node, error) {
	name := n.Value
	if strings.Contains(name, ".") {
		fieldAcc, varAcc, err := c.access(n)
		if err != nil {
			return nil, err
		}
		if varAcc != nil {
			return &gml.Variable{Accessor: *varAcc}, nil
		}
		return &gml.Field{Accessor: *fieldAcc}, nil
	}
	if id, ok := keywords[name]; ok {
		return &gml.Literal{Value: gml.FromInt(id)}, nil
	}
	if c.locals[name] {
		return &gml.Field{Accessor: gml.FieldAccessor{
			Index: c.bundle.FieldNames.Intern(name),
			Owner: gml.InstanceIdentifier{Kind: gml.IdentLocal},
		}}, nil
	}
	if id, ok := c.bundle.ConstantNames[name]; ok {
		return &gml.Constant{ID: id}, nil
	}
	if id, ok := c.assets[name]; ok {
		return &gml.Literal{Value: gml.FromInt(id)}, nil
	}
	if v, ok := gml.LookupVariable(name); ok {
		return &gml.Variable{Accessor: gml.VariableAccessor{Var: v}}, nil
	}
	return &gml.Field{Accessor: gml.FieldAccessor{Index: c.bundle.FieldNames.Intern(name)}}, nil
}

// access compiles an assignable location. Exactly one of the results is
// non-nil on success. Accepted forms:
//
//	name                              unqualified
//	owner.name                        owner is self, other, global or an identifier
//	{field: name} / {var: name}
//	{field: {name: n, owner: o, index: [i, j]}}
func (c *compiler) access(n *yaml.Node) (*gml.FieldAccessor, *gml.VariableAccessor, error) {
	var (
		name      string
		owner     = gml.InstanceIdentifier{Kind: gml.IdentUnknown}
		array     gml.ArrayAccessor
		forceKind string
		err       error
	)

	switch n.Kind {
	case yaml.ScalarNode:
		name = n.Value
		if dot := strings.LastIndex(name, "."); dot > 0 {
			if owner, err = c.owner(n, name[:dot]); err != nil {
				return nil, nil, err
			}
			name = name[dot+1:]
		}
	case yaml.MappingNode:
		key, val, ok := single(n)
		if !ok || (key != "field" && key != "var") {
			return nil, nil, errorAt(n, "expected a field or variable")
		}
		forceKind = key
		if val.Kind == yaml.ScalarNode {
			name = val.Value
			break
		}
		f, err := fields(val)
		if err != nil {
			return nil, nil, err
		}
		nameNode, ok := f["name"]
		if !ok {
			return nil, nil, errorAt(val, "missing \"name\"")
		}
		name = nameNode.Value
		if o, ok := f["owner"]; ok {
			if o.Kind == yaml.ScalarNode && o.Tag == "!!str" {
				owner, err = c.owner(o, o.Value)
			} else {
				var expr gml.Node
				expr, err = c.expr(o)
				owner = gml.InstanceIdentifier{Kind: gml.IdentExpression, Expr: expr}
			}
			if err != nil {
				return nil, nil, err
			}
		}
		if idx, ok := f["index"]; ok {
			if array, err = c.arrayAccessor(idx); err != nil {
				return nil, nil, err
			}
		}
	default:
		return nil, nil, errorAt(n, "expected a field or variable")
	}

	if name == "" {
		return nil, nil, errorAt(n, "empty name")
	}
	if forceKind != "field" && owner.Kind == gml.IdentUnknown && c.locals[name] {
		owner.Kind = gml.IdentLocal
	}
	if forceKind != "field" && owner.Kind != gml.IdentLocal {
		if v, ok := gml.LookupVariable(name); ok {
			return nil, &gml.VariableAccessor{Var: v, Array: array, Owner: owner}, nil
		}
		if forceKind == "var" {
			return nil, nil, errorAt(n, "unknown built-in variable %q", name)
		}
	}
	return &gml.FieldAccessor{Index: c.bundle.FieldNames.Intern(name), Array: array, Owner: owner}, nil, nil
}

func (c *compiler) owner(n *yaml.Node, prefix string) (gml.InstanceIdentifier, error) {
	switch prefix {
	case "self":
		return gml.InstanceIdentifier{Kind: gml.IdentOwn}, nil
	case "other":
		return gml.InstanceIdentifier{Kind: gml.IdentOther}, nil
	case "global":
		return gml.InstanceIdentifier{Kind: gml.IdentGlobal}, nil
	}
	inner := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: prefix, Line: n.Line, Column: n.Column}
	if _, err := strconv.ParseFloat(prefix, 64); err == nil {
		inner.Tag = "!!float"
	}
	expr, err := c.expr(inner)
	if err != nil {
		return gml.InstanceIdentifier{}, err
	}
	return gml.InstanceIdentifier{Kind: gml.IdentExpression, Expr: expr}, nil
}

func (c *compiler) arrayAccessor(n *yaml.Node) (gml.ArrayAccessor, error) {
	var acc gml.ArrayAccessor
	items := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		items = n.Content
	}
	if len(items) > 2 {
		return acc, wrapAt(n, gml.NewTooManyArrayDimensions(len(items)))
	}
	var err error
	if len(items) > 0 {
		if acc.Index1, err = c.expr(items[0]); err != nil {
			return acc, err
		}
	}
	if len(items) > 1 {
		if acc.Index2, err = c.expr(items[1]); err != nil {
			return acc, err
		}
	}
	return acc, nil
}

// call compiles [name, args...]. A name that is a script becomes a script
// call; anything else must be a built-in function.
func (c *compiler) call(key string, val *yaml.Node) (gml.Node, error) {
	var nameNode *yaml.Node
	var argNodes []*yaml.Node
	switch val.Kind {
	case yaml.ScalarNode:
		nameNode = val
	case yaml.SequenceNode:
		if len(val.Content) == 0 {
			return nil, errorAt(val, "%s needs a name", key)
		}
		nameNode, argNodes = val.Content[0], val.Content[1:]
	default:
		return nil, errorAt(val, "%s takes [name, args...]", key)
	}
	name := nameNode.Value
	if len(argNodes) > gml.MaxArgs {
		return nil, wrapAt(val, gml.NewWrongArgumentCount(name, gml.MaxArgs, len(argNodes)))
	}
	args := make([]gml.Node, 0, len(argNodes))
	for _, a := range argNodes {
		expr, err := c.expr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}

	if id, ok := c.scripts[name]; ok {
		return &gml.Script{ID: id, Args: args}, nil
	}
	if key == "script" {
		return nil, wrapAt(nameNode, gml.NewNonexistentAsset(gml.AssetScript, -1))
	}
	if c.funcs != nil {
		if id, ok := c.funcs.Lookup(name); ok {
			return &gml.Function{ID: id, Name: name, Args: args}, nil
		}
	}
	return nil, wrapAt(nameNode, gml.NewUnknownFunction(name))
}

var eventTypes = map[string]int{
	"create":     asset.EventCreate,
	"destroy":    asset.EventDestroy,
	"alarm":      asset.EventAlarm,
	"step":       asset.EventStep,
	"collision":  asset.EventCollision,
	"keyboard":   asset.EventKeyboard,
	"mouse":      asset.EventMouse,
	"other":      asset.EventOther,
	"draw":       asset.EventDraw,
	"keypress":   asset.EventKeyPress,
	"keyrelease": asset.EventKeyRelease,
	"trigger":    asset.EventTrigger,
}

var eventNumbers = map[string]int{
	"normal":             asset.StepNormal,
	"begin":              asset.StepBegin,
	"end":                asset.StepEnd,
	"outside_room":       asset.OtherOutsideRoom,
	"intersect_boundary": asset.OtherIntersectBoundary,
	"game_start":         asset.OtherGameStart,
	"game_end":           asset.OtherGameEnd,
	"room_start":         asset.OtherRoomStart,
	"room_end":           asset.OtherRoomEnd,
	"no_more_lives":      asset.OtherNoMoreLives,
	"animation_end":      asset.OtherAnimationEnd,
	"end_of_path":        asset.OtherEndOfPath,
	"no_more_health":     asset.OtherNoMoreHealth,
}

func eventKey(e *eventDoc) (asset.EventKey, error) {
	t, ok := eventTypes[e.Type]
	if !ok {
		return asset.EventKey{}, fmt.Errorf("unknown event type %q", e.Type)
	}
	key := asset.EventKey{Type: t}
	if e.Number.Kind == 0 {
		return key, nil
	}
	v := e.Number.Value
	if n, err := strconv.Atoi(v); err == nil {
		key.Number = n
		return key, nil
	}
	if n, ok := eventNumbers[v]; ok {
		key.Number = n
		return key, nil
	}
	if rest, ok := strings.CutPrefix(v, "user"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 && n < 16 {
			key.Number = asset.OtherUser0 + n
			return key, nil
		}
	}
	return asset.EventKey{}, errorAt(&e.Number, "unknown event number %q", v)
}
