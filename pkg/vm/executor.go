package vm

import (
	"errors"
	"fmt"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/field"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// Execute runs a body of instructions. A non-Normal return type from any
// instruction ends the body and is passed up.
func (g *Game) Execute(body []gml.Instruction, ctx *Context) (gml.ReturnType, error) {
	for _, instr := range body {
		rt, err := g.execInstruction(instr, ctx)
		if err != nil {
			return gml.Normal, err
		}
		if rt != gml.Normal {
			return rt, nil
		}
	}
	return gml.Normal, nil
}

func (g *Game) execInstruction(instr gml.Instruction, ctx *Context) (gml.ReturnType, error) {
	switch in := instr.(type) {
	case *gml.SetField:
		return gml.Normal, g.execSetField(in, ctx)

	case *gml.SetVariable:
		return gml.Normal, g.execSetVariable(in, ctx)

	case *gml.EvalExpression:
		v, err := g.Eval(in.Node, ctx)
		if err != nil {
			return gml.Normal, err
		}
		ctx.ReturnValue = v
		return gml.Normal, nil

	case *gml.IfElse:
		cond, err := g.Eval(in.Cond, ctx)
		if err != nil {
			return gml.Normal, err
		}
		if cond.Truthy() {
			return g.Execute(in.IfBody, ctx)
		}
		return g.Execute(in.ElseBody, ctx)

	case *gml.LoopUntil:
		return g.execLoopUntil(in, ctx)

	case *gml.LoopWhile:
		for {
			cond, err := g.Eval(in.Cond, ctx)
			if err != nil {
				return gml.Normal, err
			}
			if !cond.Truthy() {
				return gml.Normal, nil
			}
			rt, err := g.Execute(in.Body, ctx)
			if err != nil {
				return gml.Normal, err
			}
			switch rt {
			case gml.Break:
				return gml.Normal, nil
			case gml.Exit:
				return gml.Exit, nil
			}
		}

	case *gml.LoopFor:
		for {
			cond, err := g.Eval(in.Cond, ctx)
			if err != nil {
				return gml.Normal, err
			}
			if !cond.Truthy() {
				return gml.Normal, nil
			}
			rt, err := g.Execute(in.Body, ctx)
			if err != nil {
				return gml.Normal, err
			}
			switch rt {
			case gml.Break:
				return gml.Normal, nil
			case gml.Exit:
				return gml.Exit, nil
			}
			if in.Step != nil {
				if rt, err := g.execInstruction(in.Step, ctx); err != nil || rt == gml.Exit {
					return rt, err
				}
			}
		}

	case *gml.Repeat:
		count, err := g.Eval(in.Count, ctx)
		if err != nil {
			return gml.Normal, err
		}
		for n := count.Round(); n > 0; n-- {
			rt, err := g.Execute(in.Body, ctx)
			if err != nil {
				return gml.Normal, err
			}
			switch rt {
			case gml.Break:
				return gml.Normal, nil
			case gml.Exit:
				return gml.Exit, nil
			}
		}
		return gml.Normal, nil

	case *gml.Switch:
		return g.execSwitch(in, ctx)

	case *gml.With:
		return g.execWith(in, ctx)

	case *gml.Return:
		return in.ReturnType, nil

	case *gml.GlobalVar:
		for _, id := range in.Fields {
			g.GlobalVars[id] = struct{}{}
			if !g.Globals.Has(id) {
				g.Globals.Set(id, 0, gml.Value{})
			}
		}
		return gml.Normal, nil

	case *gml.ErrorInstruction:
		if in.Err == nil {
			return gml.Normal, errors.New("error instruction without an error")
		}
		return gml.Normal, in.Err

	default:
		return gml.Normal, fmt.Errorf("unknown instruction type %T", instr)
	}
}

// execLoopUntil runs do/until. continue jumps back to the top of the body
// without testing the condition.
func (g *Game) execLoopUntil(in *gml.LoopUntil, ctx *Context) (gml.ReturnType, error) {
	for {
		rt, err := g.Execute(in.Body, ctx)
		if err != nil {
			return gml.Normal, err
		}
		switch rt {
		case gml.Continue:
			continue
		case gml.Break:
			return gml.Normal, nil
		case gml.Exit:
			return gml.Exit, nil
		}
		cond, err := g.Eval(in.Cond, ctx)
		if err != nil {
			return gml.Normal, err
		}
		if cond.Truthy() {
			return gml.Normal, nil
		}
	}
}

func (g *Game) execSwitch(in *gml.Switch, ctx *Context) (gml.ReturnType, error) {
	input, err := g.Eval(in.Input, ctx)
	if err != nil {
		return gml.Normal, err
	}
	start := -1
	for _, c := range in.Cases {
		v, err := g.Eval(c.Expr, ctx)
		if err != nil {
			return gml.Normal, err
		}
		if input.AlmostEqual(v) {
			start = c.Offset
			break
		}
	}
	if start < 0 {
		start = in.Default
	}
	if start < 0 || start > len(in.Body) {
		return gml.Normal, nil
	}
	rt, err := g.Execute(in.Body[start:], ctx)
	if err != nil {
		return gml.Normal, err
	}
	if rt == gml.Break {
		return gml.Normal, nil
	}
	return rt, nil
}

func (g *Game) execWith(in *gml.With, ctx *Context) (gml.ReturnType, error) {
	target, err := g.Eval(in.Target, ctx)
	if err != nil {
		return gml.Normal, err
	}
	oldThis, oldOther := ctx.This, ctx.Other
	defer func() {
		ctx.This, ctx.Other = oldThis, oldOther
	}()

	var it *instance.Iter
	switch id := target.Round(); {
	case id == gml.SelfID || id == gml.UnspecifiedID:
		return withResult(g.Execute(in.Body, ctx))
	case id == gml.OtherID:
		ctx.This, ctx.Other = oldOther, oldThis
		return withResult(g.Execute(in.Body, ctx))
	case id == gml.AllID:
		it = g.Instances.IterByInsertion()
	case id >= gml.InstanceIDBase:
		h, ok := g.Instances.GetByInstID(id)
		if !ok {
			return gml.Normal, nil
		}
		ctx.This, ctx.Other = h, oldThis
		return withResult(g.Execute(in.Body, ctx))
	case id >= 0:
		it = g.Instances.IterByIdentity(g.identities(id))
	default:
		return gml.Normal, nil
	}

	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		ctx.This, ctx.Other = h, oldThis
		rt, err := g.Execute(in.Body, ctx)
		if err != nil {
			return gml.Normal, err
		}
		switch rt {
		case gml.Break:
			return gml.Normal, nil
		case gml.Exit:
			return gml.Exit, nil
		}
	}
	return gml.Normal, nil
}

// withResult maps the outcome of a single-pass with body: only exit leaves
// the enclosing code.
func withResult(rt gml.ReturnType, err error) (gml.ReturnType, error) {
	if err != nil || rt != gml.Exit {
		return gml.Normal, err
	}
	return gml.Exit, nil
}

func (g *Game) execSetField(in *gml.SetField, ctx *Context) error {
	acc := &in.Accessor
	target, err := g.getTarget(ctx, acc.Owner, g.isGlobalVar(acc.Index))
	if err != nil {
		return err
	}
	index, err := g.getArrayIndex(acc.Array, ctx)
	if err != nil {
		return err
	}
	value, err := g.Eval(in.Value, ctx)
	if err != nil {
		return err
	}
	ctx.ReturnValue = value

	switch target.Kind {
	case TargetSingle:
		if inst := g.Instances.Get(target.Handle); inst != nil {
			return g.assignField(inst.Fields, acc.Index, index, in.AssignmentType, value)
		}
		return nil
	case TargetGlobal:
		return g.assignField(g.Globals, acc.Index, index, in.AssignmentType, value)
	case TargetLocal:
		return g.assignField(ctx.Locals, acc.Index, index, in.AssignmentType, value)
	default:
		it := g.iter(target)
		for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
			if err := g.assignField(g.Instances.Get(h).Fields, acc.Index, index, in.AssignmentType, value); err != nil {
				return err
			}
		}
		return nil
	}
}

func (g *Game) assignField(bag *field.Bag, id int, index uint32, op gml.AssignmentType, value gml.Value) error {
	if op != gml.AssignSet {
		current, ok := bag.Get(id, index)
		if !ok {
			var err error
			if current, err = g.uninitField(id, index); err != nil {
				return err
			}
		}
		var err error
		if value, err = op.Apply(current, value); err != nil {
			return err
		}
	}
	bag.Set(id, index, value)
	return nil
}

func (g *Game) execSetVariable(in *gml.SetVariable, ctx *Context) error {
	acc := &in.Accessor
	target, err := g.getTarget(ctx, acc.Owner, false)
	if err != nil {
		return err
	}
	index, err := g.getArrayIndex(acc.Array, ctx)
	if err != nil {
		return err
	}
	value, err := g.Eval(in.Value, ctx)
	if err != nil {
		return err
	}
	ctx.ReturnValue = value

	switch target.Kind {
	case TargetGlobal, TargetLocal:
		return g.assignVariable(g.Instances.Get(ctx.This), acc.Var, index, in.AssignmentType, value, ctx)
	case TargetSingle:
		if !target.Handle.Valid() && target.Handle != ctx.This {
			return nil
		}
		return g.assignVariable(g.Instances.Get(target.Handle), acc.Var, index, in.AssignmentType, value, ctx)
	default:
		it := g.iter(target)
		for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
			if err := g.assignVariable(g.Instances.Get(h), acc.Var, index, in.AssignmentType, value, ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

func (g *Game) assignVariable(inst *instance.Instance, v gml.InstanceVariable, index uint32, op gml.AssignmentType, value gml.Value, ctx *Context) error {
	if op != gml.AssignSet {
		current, err := g.getInstanceVar(inst, v, index, ctx)
		if err != nil {
			return err
		}
		if value, err = op.Apply(current, value); err != nil {
			return err
		}
	}
	return g.setInstanceVar(inst, v, index, value, ctx)
}
