package vm

import (
	"math"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func (k *Kernel) registerMath() {
	k.registerFixed("abs", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromReal(args[0].Real().Abs()), nil
	})
	k.registerFixed("round", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromInt(args[0].Round()), nil
	})
	k.registerFixed("floor", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromReal(args[0].Real().Floor()), nil
	})
	k.registerFixed("ceil", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromFloat(math.Ceil(args[0].Float())), nil
	})
	k.registerFixed("sqrt", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		x := args[0].Float()
		if x < 0 {
			return gml.Value{}, gml.NewFunctionError("sqrt", "cannot take the square root of a negative number")
		}
		return gml.FromFloat(math.Sqrt(x)), nil
	})

	unary := []struct {
		name string
		f    func(float64) float64
	}{
		{"sin", math.Sin},
		{"cos", math.Cos},
		{"tan", math.Tan},
		{"exp", math.Exp},
		{"degtorad", degToRad},
		{"radtodeg", func(r float64) float64 { return r * 180 / math.Pi }},
		{"frac", func(x float64) float64 { return x - math.Trunc(x) }},
		{"sqr", func(x float64) float64 { return x * x }},
		{"sign", func(x float64) float64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return -1
			}
			return 0
		}},
	}
	for _, u := range unary {
		k.registerFixed(u.name, 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
			return gml.FromFloat(u.f(args[0].Float())), nil
		})
	}
	k.registerFixed("ln", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		x := args[0].Float()
		if x <= 0 {
			return gml.Value{}, gml.NewFunctionError("ln", "argument must be positive")
		}
		return gml.FromFloat(math.Log(x)), nil
	})
	k.registerFixed("power", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromFloat(math.Pow(args[0].Float(), args[1].Float())), nil
	})
	k.registerFixed("arctan2", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromFloat(math.Atan2(args[0].Float(), args[1].Float())), nil
	})
	k.Register("mean", func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if len(args) == 0 {
			return gml.Value{}, gml.NewWrongArgumentCount("mean", 1, 0)
		}
		var sum float64
		for _, a := range args {
			sum += a.Float()
		}
		return gml.FromFloat(sum / float64(len(args))), nil
	})

	k.Register("min", func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return extreme("min", args, func(c int) bool { return c < 0 })
	})
	k.Register("max", func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return extreme("max", args, func(c int) bool { return c > 0 })
	})

	k.registerFixed("point_direction", 4, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		dx := args[2].Float() - args[0].Float()
		dy := args[3].Float() - args[1].Float()
		d := math.Atan2(-dy, dx) * 180 / math.Pi
		if d < 0 {
			d += 360
		}
		return gml.FromFloat(d), nil
	})
	k.registerFixed("point_distance", 4, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromFloat(math.Hypot(args[2].Float()-args[0].Float(), args[3].Float()-args[1].Float())), nil
	})
	k.registerFixed("lengthdir_x", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromFloat(args[0].Float() * math.Cos(degToRad(args[1].Float()))), nil
	})
	k.registerFixed("lengthdir_y", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromFloat(-args[0].Float() * math.Sin(degToRad(args[1].Float()))), nil
	})
}

// extreme returns the argument that wins every comparison under better.
func extreme(name string, args []gml.Value, better func(c int) bool) (gml.Value, error) {
	if len(args) == 0 {
		return gml.Value{}, gml.NewWrongArgumentCount(name, 1, 0)
	}
	best := args[0]
	for _, v := range args[1:] {
		if better(gml.Compare(v, best)) {
			best = v
		}
	}
	return best, nil
}
