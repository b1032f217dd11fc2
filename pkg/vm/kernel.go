package vm

import (
	"fmt"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// KernelFunc is the signature of a built-in function. Functions receive the
// game, the calling frame and the evaluated arguments.
type KernelFunc func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error)

// Kernel is the table of built-in functions. The front end resolves names
// to ids with Lookup when it compiles code; the VM dispatches by id.
type Kernel struct {
	names []string
	funcs []KernelFunc
	ids   map[string]int
}

// NewKernel creates a table holding the default built-in functions.
func NewKernel() *Kernel {
	k := &Kernel{ids: make(map[string]int)}
	k.registerMath()
	k.registerRandom()
	k.registerString()
	k.registerFile()
	k.registerInstance()
	k.registerRoom()
	k.registerDraw()
	k.registerParticle()
	k.registerVariable()
	return k
}

// Register adds a function, or replaces the function of the same name while
// keeping its id, and returns the id.
func (k *Kernel) Register(name string, fn KernelFunc) int {
	if id, ok := k.ids[name]; ok {
		k.funcs[id] = fn
		return id
	}
	k.names = append(k.names, name)
	k.funcs = append(k.funcs, fn)
	id := len(k.funcs) - 1
	k.ids[name] = id
	return id
}

// registerFixed adds a function that takes exactly arity arguments.
func (k *Kernel) registerFixed(name string, arity int, fn KernelFunc) int {
	return k.Register(name, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		if len(args) != arity {
			return gml.Value{}, gml.NewWrongArgumentCount(name, arity, len(args))
		}
		return fn(g, ctx, args)
	})
}

// Lookup returns the id of a function by name.
func (k *Kernel) Lookup(name string) (int, bool) {
	id, ok := k.ids[name]
	return id, ok
}

// Name returns the name of the function with the given id.
func (k *Kernel) Name(id int) string {
	if id < 0 || id >= len(k.names) {
		return fmt.Sprintf("<function %d>", id)
	}
	return k.names[id]
}

// Len returns the number of registered functions.
func (k *Kernel) Len() int { return len(k.funcs) }

// Invoke calls the function with the given id.
func (k *Kernel) Invoke(id int, g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
	if id < 0 || id >= len(k.funcs) {
		return gml.Value{}, gml.NewUnknownFunction(k.Name(id))
	}
	return k.funcs[id](g, ctx, args)
}
