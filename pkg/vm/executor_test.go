package vm

import (
	"errors"
	"testing"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

func TestBroadcastWriteFirstRead(t *testing.T) {
	g := newTestGame(t, nil)
	hp := g.FieldNames.Intern("hp")
	a1 := spawn(t, g, objBase)
	b1 := spawn(t, g, objOther)
	c1 := spawn(t, g, objChild)
	ctx := NewContext(a1, a1)

	mustExecute(t, g, ctx, setField(hp, ownedBy(num(float64(objBase))), gml.AssignSet, num(5)))

	for _, h := range []instance.Handle{a1, c1} {
		if v, ok := fieldOf(g, h, hp); !ok || v.Real() != 5 {
			t.Errorf("instance %d: hp = %v, %v; want 5", g.Instances.Get(h).ID, v, ok)
		}
	}
	if _, ok := fieldOf(g, b1, hp); ok {
		t.Error("write to obj_base reached an unrelated object")
	}

	g.Instances.Get(c1).Fields.Set(hp, 0, gml.FromInt(9))
	v, err := g.Eval(readField(hp, ownedBy(num(float64(objBase)))), ctx)
	if err != nil || v.Real() != 5 {
		t.Errorf("read of obj_base.hp = %v, %v; want the first instance's 5", v, err)
	}

	t.Run("compound write to a missing field", func(t *testing.T) {
		_, err := g.Execute([]gml.Instruction{
			setField(hp, ownedBy(num(float64(objOther))), gml.AssignAdd, num(1)),
		}, ctx)
		if !gml.IsKind(err, gml.ErrUninitializedVariable) {
			t.Errorf("got %v, want %s", err, gml.ErrUninitializedVariable)
		}
	})

	t.Run("all", func(t *testing.T) {
		mustExecute(t, g, ctx, setField(hp, ownedBy(num(float64(gml.AllID))), gml.AssignSet, num(1)))
		for _, h := range []instance.Handle{a1, b1, c1} {
			if v, _ := fieldOf(g, h, hp); v.Real() != 1 {
				t.Errorf("instance %d: hp = %v, want 1", g.Instances.Get(h).ID, v)
			}
		}
	})

	t.Run("object with no instances", func(t *testing.T) {
		g.Instances.MarkDeleted(b1)
		mustExecute(t, g, ctx, setField(hp, ownedBy(num(float64(objOther))), gml.AssignSet, num(1)))
		_, err := g.Eval(readField(hp, ownedBy(num(float64(objOther)))), ctx)
		if !gml.IsKind(err, gml.ErrUninitializedVariable) {
			t.Errorf("read from an empty object: got %v", err)
		}
	})
}

func TestArrayIndices(t *testing.T) {
	g := newTestGame(t, nil)
	arr := g.FieldNames.Intern("arr")
	h := spawn(t, g, objBase)
	ctx := NewContext(h, h)

	set := func(i1, i2 gml.Node) gml.Instruction {
		return &gml.SetField{
			Accessor: gml.FieldAccessor{Index: arr, Owner: own(), Array: gml.ArrayAccessor{Index1: i1, Index2: i2}},
			Value:    num(1),
		}
	}

	mustExecute(t, g, ctx, set(num(3), num(4)))
	if _, ok := g.Instances.Get(h).Fields.Get(arr, 96004); !ok {
		t.Error("arr[3,4] not stored at flattened index 96004")
	}

	tests := []struct {
		name   string
		i1, i2 gml.Node
		ok     bool
	}{
		{"zero", num(0), nil, true},
		{"last", num(31999), nil, true},
		{"negative", num(-1), nil, false},
		{"one past the end", num(32000), nil, false},
		{"second dimension too large", num(0), num(32000), false},
		{"rounded into range", num(31999.4), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Execute([]gml.Instruction{set(tt.i1, tt.i2)}, ctx)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !gml.IsKind(err, gml.ErrInvalidArrayIndex) {
				t.Errorf("got %v, want %s", err, gml.ErrInvalidArrayIndex)
			}
		})
	}
}

func TestSwitch(t *testing.T) {
	g := newTestGame(t, nil)
	out := g.FieldNames.Intern("out")
	ctx := NewContext(instance.NoHandle, instance.NoHandle)

	// switch (input) { case 1: out += "a"; case 2: out += "b"; break; default: out += "d" }
	sw := func(input gml.Node, withDefault bool) *gml.Switch {
		s := &gml.Switch{
			Input: input,
			Cases: []gml.SwitchCase{{Expr: num(1), Offset: 0}, {Expr: num(2), Offset: 1}},
			Body: []gml.Instruction{
				setField(out, global(), gml.AssignAdd, text("a")),
				setField(out, global(), gml.AssignAdd, text("b")),
				ret(gml.Break),
				setField(out, global(), gml.AssignAdd, text("d")),
			},
			Default: -1,
		}
		if withDefault {
			s.Default = 3
		}
		return s
	}

	tests := []struct {
		name        string
		input       gml.Node
		withDefault bool
		want        string
	}{
		{"falls through to break", num(1), true, "ab"},
		{"second case", num(2), true, "b"},
		{"within epsilon", num(2 + 1e-15), true, "b"},
		{"default", num(7), true, "d"},
		{"string never matches a real", text("1"), true, "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Globals.Set(out, 0, gml.FromString(""))
			if rt := mustExecute(t, g, ctx, sw(tt.input, tt.withDefault)); rt != gml.Normal {
				t.Errorf("return type = %v, want normal", rt)
			}
			if v, _ := g.Globals.Get(out, 0); v.Str() != tt.want {
				t.Errorf("out = %q, want %q", v.Str(), tt.want)
			}
		})
	}

	t.Run("no match and no default", func(t *testing.T) {
		g.Globals.Set(out, 0, gml.FromString(""))
		ctx.ReturnValue = gml.FromInt(7)
		if rt := mustExecute(t, g, ctx, sw(num(9), false)); rt != gml.Normal {
			t.Errorf("return type = %v, want normal", rt)
		}
		if ctx.ReturnValue.Real() != 7 {
			t.Errorf("ReturnValue = %v, want 7", ctx.ReturnValue)
		}
		if v, _ := g.Globals.Get(out, 0); v.Str() != "" {
			t.Errorf("out = %q, want nothing run", v.Str())
		}
	})

	t.Run("continue passes through", func(t *testing.T) {
		s := &gml.Switch{Input: num(1), Cases: []gml.SwitchCase{{Expr: num(1)}}, Body: []gml.Instruction{ret(gml.Continue)}, Default: -1}
		if rt := mustExecute(t, g, ctx, s); rt != gml.Continue {
			t.Errorf("return type = %v, want continue", rt)
		}
	})
}

func TestLoops(t *testing.T) {
	g := newTestGame(t, nil)
	i := g.FieldNames.Intern("i")
	n := g.FieldNames.Intern("n")
	ctx := NewContext(instance.NoHandle, instance.NoHandle)
	reset := func() {
		g.Globals.Set(i, 0, gml.FromInt(0))
		g.Globals.Set(n, 0, gml.FromInt(0))
	}
	count := func(field int) gml.Real {
		v, _ := g.Globals.Get(field, 0)
		return v.Real()
	}
	less := func(field int, limit float64) gml.Node {
		return &gml.Binary{Left: readField(field, global()), Right: num(limit), Operator: gml.OpLessThan}
	}

	t.Run("while with continue and break", func(t *testing.T) {
		reset()
		// while (i < 10) { i += 1; if (i == 2) continue; if (i == 5) break; n += 1 }
		mustExecute(t, g, ctx, &gml.LoopWhile{
			Cond: less(i, 10),
			Body: []gml.Instruction{
				setField(i, global(), gml.AssignAdd, num(1)),
				&gml.IfElse{Cond: &gml.Binary{Left: readField(i, global()), Right: num(2), Operator: gml.OpEqual}, IfBody: []gml.Instruction{ret(gml.Continue)}},
				&gml.IfElse{Cond: &gml.Binary{Left: readField(i, global()), Right: num(5), Operator: gml.OpEqual}, IfBody: []gml.Instruction{ret(gml.Break)}},
				setField(n, global(), gml.AssignAdd, num(1)),
			},
		})
		if count(i) != 5 || count(n) != 3 {
			t.Errorf("i = %v n = %v, want 5 and 3", count(i), count(n))
		}
	})

	t.Run("for runs the step after continue", func(t *testing.T) {
		reset()
		rt := mustExecute(t, g, ctx, &gml.LoopFor{
			Cond: less(i, 4),
			Body: []gml.Instruction{ret(gml.Continue), setField(n, global(), gml.AssignAdd, num(1))},
			Step: setField(i, global(), gml.AssignAdd, num(1)),
		})
		if rt != gml.Normal || count(i) != 4 || count(n) != 0 {
			t.Errorf("rt %v i %v n %v", rt, count(i), count(n))
		}
	})

	t.Run("repeat rounds its count", func(t *testing.T) {
		reset()
		mustExecute(t, g, ctx, &gml.Repeat{Count: num(2.6), Body: []gml.Instruction{setField(n, global(), gml.AssignAdd, num(1))}})
		if count(n) != 3 {
			t.Errorf("n = %v, want 3", count(n))
		}
	})

	t.Run("exit leaves nested loops", func(t *testing.T) {
		reset()
		rt := mustExecute(t, g, ctx,
			&gml.Repeat{Count: num(5), Body: []gml.Instruction{
				&gml.LoopWhile{Cond: num(1), Body: []gml.Instruction{ret(gml.Exit)}},
			}},
			setField(n, global(), gml.AssignSet, num(99)),
		)
		if rt != gml.Exit || count(n) != 0 {
			t.Errorf("rt %v n %v, want exit before the assignment", rt, count(n))
		}
	})

	t.Run("until checks after the body", func(t *testing.T) {
		reset()
		mustExecute(t, g, ctx, &gml.LoopUntil{Cond: num(1), Body: []gml.Instruction{setField(n, global(), gml.AssignAdd, num(1))}})
		if count(n) != 1 {
			t.Errorf("n = %v, want 1", count(n))
		}
	})
}

func TestLoopUntilContinueSkipsCondition(t *testing.T) {
	k := NewKernel()
	errLimit := errors.New("call limit reached")
	calls := 0
	k.Register("tick", func(_ *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		calls++
		if calls >= 100 {
			return gml.Value{}, errLimit
		}
		return gml.Value{}, nil
	})
	g := newTestGame(t, nil, WithKernel(k))

	// do { tick(); continue } until (true)
	loop := &gml.LoopUntil{
		Cond: num(1),
		Body: []gml.Instruction{eval(call(t, k, "tick")), ret(gml.Continue)},
	}
	_, err := g.Execute([]gml.Instruction{loop}, NewContext(instance.NoHandle, instance.NoHandle))
	if !errors.Is(err, errLimit) {
		t.Fatalf("got %v, want the call limit error", err)
	}
	if calls != 100 {
		t.Errorf("body ran %d times, want 100", calls)
	}
}

func TestWith(t *testing.T) {
	k := NewKernel()
	visits := 0

	t.Run("all destroying self", func(t *testing.T) {
		g := newTestGame(t, nil, WithKernel(k))
		n := g.FieldNames.Intern("visits")
		g.Globals.Set(n, 0, gml.FromInt(0))
		hs := []instance.Handle{spawn(t, g, objBase), spawn(t, g, objOther), spawn(t, g, objBase)}

		mustExecute(t, g, NewContext(hs[0], hs[0]), &gml.With{
			Target: num(float64(gml.AllID)),
			Body: []gml.Instruction{
				eval(call(t, k, "instance_destroy")),
				setField(n, global(), gml.AssignAdd, num(1)),
			},
		})
		if v, _ := g.Globals.Get(n, 0); v.Real() != 3 {
			t.Errorf("visited %v instances, want 3", v)
		}
		for _, h := range hs {
			if g.Instances.IsAlive(h) {
				t.Errorf("instance %d survived", g.Instances.Get(h).ID)
			}
		}
		g.Instances.Compact()
		if g.Instances.Len() != 0 {
			t.Errorf("%d instances left after compact", g.Instances.Len())
		}
	})

	t.Run("destroying later targets skips them", func(t *testing.T) {
		g := newTestGame(t, nil, WithKernel(k))
		n := g.FieldNames.Intern("visits")
		g.Globals.Set(n, 0, gml.FromInt(0))
		first := spawn(t, g, objBase)
		spawn(t, g, objOther)
		spawn(t, g, objOther)

		mustExecute(t, g, NewContext(first, first), &gml.With{
			Target: num(float64(gml.AllID)),
			Body: []gml.Instruction{
				setField(n, global(), gml.AssignAdd, num(1)),
				&gml.With{Target: num(float64(objOther)), Body: []gml.Instruction{eval(call(t, k, "instance_destroy"))}},
			},
		})
		if v, _ := g.Globals.Get(n, 0); v.Real() != 1 {
			t.Errorf("visited %v instances, want 1", v)
		}
	})

	t.Run("self and other swap", func(t *testing.T) {
		g := newTestGame(t, nil, WithKernel(k))
		who := g.FieldNames.Intern("who")
		a := spawn(t, g, objBase)
		b := spawn(t, g, objOther)
		ctx := NewContext(a, instance.NoHandle)

		mustExecute(t, g, ctx, &gml.With{
			Target: num(float64(objOther)),
			Body: []gml.Instruction{
				setField(who, own(), gml.AssignSet, text("self")),
				setField(who, gml.InstanceIdentifier{Kind: gml.IdentOther}, gml.AssignSet, text("other")),
			},
		})
		if v, _ := fieldOf(g, b, who); v.Str() != "self" {
			t.Errorf("target's field = %v", v)
		}
		if v, _ := fieldOf(g, a, who); v.Str() != "other" {
			t.Errorf("caller's field = %v", v)
		}
		if ctx.This != a || ctx.Other != instance.NoHandle {
			t.Error("with did not restore self and other")
		}
	})

	t.Run("single pass converts break", func(t *testing.T) {
		g := newTestGame(t, nil, WithKernel(k))
		a := spawn(t, g, objBase)
		ctx := NewContext(a, a)
		for _, target := range []int32{gml.SelfID, gml.OtherID, g.Instances.Get(a).ID} {
			if rt := mustExecute(t, g, ctx, &gml.With{Target: num(float64(target)), Body: []gml.Instruction{ret(gml.Break)}}); rt != gml.Normal {
				t.Errorf("with(%d) break returned %v", target, rt)
			}
		}
		if rt := mustExecute(t, g, ctx, &gml.With{Target: num(float64(gml.SelfID)), Body: []gml.Instruction{ret(gml.Exit)}}); rt != gml.Exit {
			t.Errorf("with(self) exit returned %v", rt)
		}
	})

	t.Run("noone and missing ids run nothing", func(t *testing.T) {
		g := newTestGame(t, nil, WithKernel(k))
		k.Register("visit", func(_ *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
			visits++
			return gml.Value{}, nil
		})
		for _, target := range []float64{float64(gml.NooneID), 123456, 17} {
			mustExecute(t, g, NewContext(instance.NoHandle, instance.NoHandle),
				&gml.With{Target: num(target), Body: []gml.Instruction{eval(call(t, k, "visit"))}})
		}
		if visits != 0 {
			t.Errorf("body ran %d times", visits)
		}
	})
}

func TestAssignmentSetsReturnValue(t *testing.T) {
	g := newTestGame(t, nil)
	x := g.FieldNames.Intern("x1")
	ctx := NewContext(instance.NoHandle, instance.NoHandle)
	mustExecute(t, g, ctx, setField(x, global(), gml.AssignSet, num(4)))
	if ctx.ReturnValue.Real() != 4 {
		t.Errorf("ReturnValue = %v, want the assigned 4", ctx.ReturnValue)
	}
}

func TestGlobalVar(t *testing.T) {
	g := newTestGame(t, nil)
	lvl := g.FieldNames.Intern("level")
	h := spawn(t, g, objBase)
	ctx := NewContext(h, h)

	mustExecute(t, g, ctx,
		&gml.GlobalVar{Fields: []int{lvl}},
		setField(lvl, gml.InstanceIdentifier{}, gml.AssignSet, num(3)),
	)
	if v, ok := g.Globals.Get(lvl, 0); !ok || v.Real() != 3 {
		t.Errorf("global level = %v, %v", v, ok)
	}
	if _, ok := fieldOf(g, h, lvl); ok {
		t.Error("globalvar field was written to the instance")
	}
}

func TestDeferredErrors(t *testing.T) {
	g := newTestGame(t, nil)
	ctx := NewContext(instance.NoHandle, instance.NoHandle)
	want := gml.NewUnknownFunction("nope")

	_, err := g.Execute([]gml.Instruction{&gml.ErrorInstruction{Err: want}}, ctx)
	if !gml.IsKind(err, gml.ErrUnknownFunction) {
		t.Errorf("ErrorInstruction: got %v", err)
	}
	_, err = g.Eval(&gml.ErrorNode{Err: want}, ctx)
	if !gml.IsKind(err, gml.ErrUnknownFunction) {
		t.Errorf("ErrorNode: got %v", err)
	}

	t.Run("missing error", func(t *testing.T) {
		var gmlErr *gml.Error
		_, err := g.Execute([]gml.Instruction{&gml.ErrorInstruction{}}, ctx)
		if err == nil || errors.As(err, &gmlErr) {
			t.Errorf("empty ErrorInstruction: got %v", err)
		}
		_, err = g.Eval(&gml.ErrorNode{}, ctx)
		if err == nil || errors.As(err, &gmlErr) {
			t.Errorf("empty ErrorNode: got %v", err)
		}
		if err != nil && err.Error() == "" {
			t.Error("empty ErrorNode reported an empty message")
		}
	})
}

func TestUnlinkedBundle(t *testing.T) {
	b := asset.NewBundle()
	b.Objects.Add(asset.NewObject("obj_base"))
	b.Objects.Add(asset.NewObject("obj_other"))
	child := asset.NewObject("obj_child")
	child.ParentIndex = objBase
	b.Objects.Add(child)
	hp := b.FieldNames.Intern("hp")

	g := newTestGame(t, b)
	base := spawn(t, g, objBase)
	derived := spawn(t, g, objChild)
	other := spawn(t, g, objOther)
	ctx := NewContext(instance.NoHandle, instance.NoHandle)
	mustExecute(t, g, ctx, setField(hp, ownedBy(num(float64(objBase))), gml.AssignSet, num(3)))

	for _, h := range []instance.Handle{base, derived} {
		if v, ok := fieldOf(g, h, hp); !ok || v.Real() != 3 {
			t.Errorf("instance %d: hp = %v, %v; want 3", g.Instances.Get(h).ID, v, ok)
		}
	}
	if _, ok := fieldOf(g, other, hp); ok {
		t.Error("write to obj_base reached obj_other")
	}
}
