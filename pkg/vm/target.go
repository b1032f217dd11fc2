package vm

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/field"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// TargetKind is the shape of a resolved access scope.
type TargetKind uint8

const (
	// TargetSingle is one instance, or none when Handle is NoHandle.
	TargetSingle TargetKind = iota
	// TargetObjects is every instance whose object identifies as Object.
	TargetObjects
	// TargetAll is every instance.
	TargetAll
	// TargetGlobal is the global field bag.
	TargetGlobal
	// TargetLocal is the frame's local field bag.
	TargetLocal
)

// Target is where a field or variable access goes. Reads from Objects and
// All use the first matching instance; writes go to all of them.
type Target struct {
	Kind   TargetKind
	Handle instance.Handle
	Object int32
}

// getTarget resolves the owner part of an accessor. inGlobalVars says
// whether the accessed field was declared with globalvar.
func (g *Game) getTarget(ctx *Context, owner gml.InstanceIdentifier, inGlobalVars bool) (Target, error) {
	switch owner.Kind {
	case gml.IdentOwn:
		return Target{Kind: TargetSingle, Handle: ctx.This}, nil
	case gml.IdentOther:
		return Target{Kind: TargetSingle, Handle: ctx.Other}, nil
	case gml.IdentGlobal:
		return Target{Kind: TargetGlobal}, nil
	case gml.IdentLocal:
		return Target{Kind: TargetLocal}, nil
	case gml.IdentExpression:
		v, err := g.Eval(owner.Expr, ctx)
		if err != nil {
			return Target{}, err
		}
		return g.targetFromID(ctx, v.Round()), nil
	default:
		if inGlobalVars {
			return Target{Kind: TargetGlobal}, nil
		}
		return Target{Kind: TargetSingle, Handle: ctx.This}, nil
	}
}

func (g *Game) targetFromID(ctx *Context, id int32) Target {
	switch id {
	case gml.SelfID, gml.UnspecifiedID:
		return Target{Kind: TargetSingle, Handle: ctx.This}
	case gml.OtherID:
		return Target{Kind: TargetSingle, Handle: ctx.Other}
	case gml.AllID:
		return Target{Kind: TargetAll}
	case gml.NooneID:
		return Target{Kind: TargetSingle, Handle: instance.NoHandle}
	case gml.GlobalID:
		return Target{Kind: TargetGlobal}
	case gml.LocalID:
		return Target{Kind: TargetLocal}
	}
	if id >= gml.InstanceIDBase {
		h, _ := g.Instances.GetByInstID(id)
		return Target{Kind: TargetSingle, Handle: h}
	}
	return Target{Kind: TargetObjects, Object: id}
}

// iter returns an iterator over the instances a broadcast target covers.
func (g *Game) iter(t Target) *instance.Iter {
	if t.Kind == TargetObjects {
		return g.Instances.IterByIdentity(g.identities(t.Object))
	}
	return g.Instances.IterByInsertion()
}

// first returns the instance a read from t sees, or nil.
func (g *Game) first(t Target) *instance.Instance {
	switch t.Kind {
	case TargetSingle:
		return g.Instances.Get(t.Handle)
	case TargetObjects, TargetAll:
		if h, ok := g.iter(t).Next(g.Instances); ok {
			return g.Instances.Get(h)
		}
	}
	return nil
}

// getArrayIndex evaluates an array accessor to a flattened field index.
func (g *Game) getArrayIndex(acc gml.ArrayAccessor, ctx *Context) (uint32, error) {
	if acc.Index1 == nil {
		return 0, nil
	}
	v1, err := g.Eval(acc.Index1, ctx)
	if err != nil {
		return 0, err
	}
	i1, err := field.CheckIndex(v1.Round(), 1)
	if err != nil {
		return 0, err
	}
	if acc.Index2 == nil {
		return i1, nil
	}
	v2, err := g.Eval(acc.Index2, ctx)
	if err != nil {
		return 0, err
	}
	i2, err := field.CheckIndex(v2.Round(), 2)
	if err != nil {
		return 0, err
	}
	return field.Flatten(i1, i2), nil
}
