package vm

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/field"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// Context is the frame a body of code executes in. Every event, script call
// and creation code block gets its own Context; with() only swaps This and
// Other for the duration of its body.
type Context struct {
	This  instance.Handle
	Other instance.Handle

	EventType   int
	EventNumber int
	EventObject int32
	EventAction int32

	// Relative is the "relative" checkbox of the action being executed.
	Relative bool

	Arguments     [gml.MaxArgs]gml.Value
	ArgumentCount int

	Locals      *field.Bag
	ReturnValue gml.Value
}

// NewContext creates a frame with the given self and other instances and no
// arguments.
func NewContext(this, other instance.Handle) *Context {
	return &Context{
		This:        this,
		Other:       other,
		EventObject: -1,
		Locals:      field.NewBag(),
	}
}

// child creates the frame for a script call: same instances and event
// metadata, fresh locals, the given arguments.
func (ctx *Context) child(args []gml.Value) *Context {
	c := &Context{
		This:          ctx.This,
		Other:         ctx.Other,
		EventType:     ctx.EventType,
		EventNumber:   ctx.EventNumber,
		EventObject:   ctx.EventObject,
		EventAction:   ctx.EventAction,
		Relative:      ctx.Relative,
		ArgumentCount: len(args),
		Locals:        field.NewBag(),
	}
	copy(c.Arguments[:], args)
	return c
}

// Argument returns positional argument n, or false when fewer were passed.
func (ctx *Context) Argument(n int) (gml.Value, bool) {
	if n < 0 || n >= ctx.ArgumentCount {
		return gml.Value{}, false
	}
	return ctx.Arguments[n], true
}
