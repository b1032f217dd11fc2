package vm

import (
	"errors"
	"fmt"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// Eval reduces an expression to a value.
func (g *Game) Eval(node gml.Node, ctx *Context) (gml.Value, error) {
	switch n := node.(type) {
	case *gml.Literal:
		return n.Value, nil

	case *gml.Constant:
		if n.ID < 0 || n.ID >= len(g.Constants) {
			return gml.Value{}, gml.NewNonexistentAsset(gml.AssetConstant, int32(n.ID))
		}
		return g.Constants[n.ID], nil

	case *gml.Function:
		args, err := g.evalArgs(n.Args, ctx)
		if err != nil {
			return gml.Value{}, err
		}
		return g.Kernel.Invoke(n.ID, g, ctx, args)

	case *gml.Script:
		args, err := g.evalArgs(n.Args, ctx)
		if err != nil {
			return gml.Value{}, err
		}
		return g.CallScript(n.ID, ctx, args)

	case *gml.ExtensionFunction:
		args, err := g.evalArgs(n.Args, ctx)
		if err != nil {
			return gml.Value{}, err
		}
		if g.Extensions == nil {
			return gml.Value{}, gml.NewExternalFunction(n.Name, "no extension dispatcher is loaded")
		}
		return g.Extensions.CallExtension(n.ID, n.Name, args)

	case *gml.Field:
		return g.readField(&n.Accessor, ctx)

	case *gml.Variable:
		return g.readVariable(&n.Accessor, ctx)

	case *gml.Binary:
		lhs, err := g.Eval(n.Left, ctx)
		if err != nil {
			return gml.Value{}, err
		}
		rhs, err := g.Eval(n.Right, ctx)
		if err != nil {
			return gml.Value{}, err
		}
		return n.Operator.Call(lhs, rhs)

	case *gml.Unary:
		v, err := g.Eval(n.Child, ctx)
		if err != nil {
			return gml.Value{}, err
		}
		return n.Operator.Call(v)

	case *gml.ErrorNode:
		if n.Err == nil {
			return gml.Value{}, errors.New("error node without an error")
		}
		return gml.Value{}, n.Err

	default:
		return gml.Value{}, fmt.Errorf("unknown node type %T", node)
	}
}

// evalArgs evaluates call arguments left to right.
func (g *Game) evalArgs(nodes []gml.Node, ctx *Context) ([]gml.Value, error) {
	if len(nodes) > gml.MaxArgs {
		return nil, gml.NewWrongArgumentCount("call", gml.MaxArgs, len(nodes))
	}
	var buf [gml.MaxArgs]gml.Value
	for i, node := range nodes {
		v, err := g.Eval(node, ctx)
		if err != nil {
			return nil, err
		}
		buf[i] = v
	}
	return buf[:len(nodes)], nil
}

// CallScript runs a user script in a fresh frame and returns its result.
func (g *Game) CallScript(id int32, ctx *Context, args []gml.Value) (gml.Value, error) {
	script, ok := g.Scripts.Get(id)
	if !ok {
		return gml.Value{}, gml.NewNonexistentAsset(gml.AssetScript, id)
	}
	if g.callDepth >= MaxCallDepth {
		return gml.Value{}, gml.NewFunctionError(script.Name, fmt.Sprintf("call depth exceeds %d", MaxCallDepth))
	}
	g.callDepth++
	defer func() { g.callDepth-- }()

	frame := ctx.child(args)
	if _, err := g.Execute(script.Body, frame); err != nil {
		return gml.Value{}, err
	}
	return frame.ReturnValue, nil
}

func (g *Game) readField(acc *gml.FieldAccessor, ctx *Context) (gml.Value, error) {
	target, err := g.getTarget(ctx, acc.Owner, g.isGlobalVar(acc.Index))
	if err != nil {
		return gml.Value{}, err
	}
	index, err := g.getArrayIndex(acc.Array, ctx)
	if err != nil {
		return gml.Value{}, err
	}

	var v gml.Value
	var ok bool
	switch target.Kind {
	case TargetGlobal:
		v, ok = g.Globals.Get(acc.Index, index)
	case TargetLocal:
		v, ok = ctx.Locals.Get(acc.Index, index)
	default:
		if inst := g.first(target); inst != nil {
			v, ok = inst.Fields.Get(acc.Index, index)
		}
	}
	if !ok {
		return g.uninitField(acc.Index, index)
	}
	return v, nil
}

func (g *Game) readVariable(acc *gml.VariableAccessor, ctx *Context) (gml.Value, error) {
	target, err := g.getTarget(ctx, acc.Owner, false)
	if err != nil {
		return gml.Value{}, err
	}
	index, err := g.getArrayIndex(acc.Array, ctx)
	if err != nil {
		return gml.Value{}, err
	}

	switch target.Kind {
	case TargetGlobal, TargetLocal:
		// Built-in variables have no global or local storage; they resolve
		// against the current instance.
		return g.getInstanceVar(g.Instances.Get(ctx.This), acc.Var, index, ctx)
	case TargetSingle:
		if !target.Handle.Valid() && target.Handle != ctx.This {
			return g.uninitVariable(acc.Var, index)
		}
		return g.getInstanceVar(g.Instances.Get(target.Handle), acc.Var, index, ctx)
	default:
		inst := g.first(target)
		if inst == nil {
			return g.uninitVariable(acc.Var, index)
		}
		return g.getInstanceVar(inst, acc.Var, index, ctx)
	}
}
