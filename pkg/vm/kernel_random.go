package vm

import (
	"math"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

func (k *Kernel) registerRandom() {
	k.registerFixed("random", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromFloat(g.Random.Next(args[0].Float())), nil
	})
	k.registerFixed("random_range", 2, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		lo, hi := args[0].Float(), args[1].Float()
		return gml.FromFloat(lo + g.Random.Next(hi-lo)), nil
	})
	k.registerFixed("irandom", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		bound := args[0].Round()
		if bound < 0 {
			return gml.FromInt(-g.Random.NextInt(-bound)), nil
		}
		return gml.FromInt(g.Random.NextInt(bound)), nil
	})
	k.registerFixed("irandom_range", 2, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		lo, hi := args[0].Round(), args[1].Round()
		if hi < lo {
			lo, hi = hi, lo
		}
		return gml.FromInt(lo + g.Random.NextInt(hi-lo)), nil
	})
	k.Register("choose", func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if len(args) == 0 {
			return gml.Value{}, gml.NewWrongArgumentCount("choose", 1, 0)
		}
		return args[int(math.Floor(g.Random.Next(float64(len(args)))))], nil
	})
	k.registerFixed("random_set_seed", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		g.Random.SetSeed(args[0].Round())
		return gml.Value{}, nil
	})
	k.registerFixed("random_get_seed", 0, func(g *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		return gml.FromInt(g.Random.Seed()), nil
	})
	k.registerFixed("randomize", 0, func(g *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		g.Random.SetSeed(int32(g.Now().UnixNano()))
		return gml.Value{}, nil
	})
}
