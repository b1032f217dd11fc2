package vm

import (
	"testing"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// Object ids of the bundle built by newTestBundle. objChild's parent is
// objBase.
const (
	objBase  int32 = 0
	objOther int32 = 1
	objChild int32 = 2
)

func num(x float64) gml.Node { return &gml.Literal{Value: gml.FromFloat(x)} }

func text(s string) gml.Node { return &gml.Literal{Value: gml.FromString(s)} }

func own() gml.InstanceIdentifier { return gml.InstanceIdentifier{Kind: gml.IdentOwn} }

func global() gml.InstanceIdentifier { return gml.InstanceIdentifier{Kind: gml.IdentGlobal} }

func ownedBy(expr gml.Node) gml.InstanceIdentifier {
	return gml.InstanceIdentifier{Kind: gml.IdentExpression, Expr: expr}
}

func readField(id int, owner gml.InstanceIdentifier) gml.Node {
	return &gml.Field{Accessor: gml.FieldAccessor{Index: id, Owner: owner}}
}

func setField(id int, owner gml.InstanceIdentifier, op gml.AssignmentType, value gml.Node) gml.Instruction {
	return &gml.SetField{
		Accessor:       gml.FieldAccessor{Index: id, Owner: owner},
		Value:          value,
		AssignmentType: op,
	}
}

func readVar(v gml.InstanceVariable) gml.Node {
	return &gml.Variable{Accessor: gml.VariableAccessor{Var: v}}
}

func setVar(v gml.InstanceVariable, value gml.Node) gml.Instruction {
	return &gml.SetVariable{Accessor: gml.VariableAccessor{Var: v}, Value: value}
}

func eval(n gml.Node) gml.Instruction { return &gml.EvalExpression{Node: n} }

func ret(rt gml.ReturnType) gml.Instruction { return &gml.Return{ReturnType: rt} }

// call builds a kernel call, failing the test when the function is unknown.
func call(t *testing.T, k *Kernel, name string, args ...gml.Node) gml.Node {
	t.Helper()
	id, ok := k.Lookup(name)
	if !ok {
		t.Fatalf("kernel function %q is not registered", name)
	}
	return &gml.Function{ID: id, Name: name, Args: args}
}

// newTestBundle returns three linked objects and two empty rooms.
func newTestBundle(t *testing.T) *asset.Bundle {
	t.Helper()
	b := asset.NewBundle()
	b.Objects.Add(asset.NewObject("obj_base"))
	b.Objects.Add(asset.NewObject("obj_other"))
	child := asset.NewObject("obj_child")
	child.ParentIndex = objBase
	b.Objects.Add(child)
	if err := asset.LinkObjects(b.Objects); err != nil {
		t.Fatalf("LinkObjects failed: %v", err)
	}
	b.Rooms.Add(&asset.Room{Name: "rm_first"})
	b.Rooms.Add(&asset.Room{Name: "rm_second"})
	b.RoomOrder = []int32{0, 1}
	return b
}

func newTestGame(t *testing.T, b *asset.Bundle, opts ...Option) *Game {
	t.Helper()
	if b == nil {
		b = newTestBundle(t)
	}
	return New(b, append([]Option{WithRandomSeed(1)}, opts...)...)
}

// spawn inserts an instance without running its create event.
func spawn(t *testing.T, g *Game, object int32) instance.Handle {
	t.Helper()
	h, err := g.createInstance(0, 0, 0, object)
	if err != nil {
		t.Fatalf("createInstance(%d) failed: %v", object, err)
	}
	return h
}

func fieldOf(g *Game, h instance.Handle, id int) (gml.Value, bool) {
	return g.Instances.Get(h).Fields.Get(id, 0)
}

func mustExecute(t *testing.T, g *Game, ctx *Context, body ...gml.Instruction) gml.ReturnType {
	t.Helper()
	rt, err := g.Execute(body, ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	return rt
}
