package vm

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/particle"
)

// Colours selectable by index in the drawing actions, in BGR order.
var actionPalette = [...]uint32{
	0x000000, // black
	0x808080, // gray
	0xC0C0C0, // silver
	0xFFFFFF, // white
	0x000080, // maroon
	0x008000, // green
	0x008080, // olive
	0x800000, // navy
	0x800080, // purple
	0x808000, // teal
	0x0000FF, // red
	0x00FF00, // lime
	0x00FFFF, // yellow
	0xFF0000, // blue
	0xFF00FF, // fuchsia
	0xFFFF00, // aqua
}

// lerpColour blends two BGR colours channel by channel; t is clamped to [0, 1].
func lerpColour(from, to uint32, t float64) uint32 {
	t = min(max(t, 0), 1)
	var out uint32
	for shift := 0; shift < 24; shift += 8 {
		a := float64((from >> shift) & 0xFF)
		b := float64((to >> shift) & 0xFF)
		out |= uint32(a+(b-a)*t+0.5) << shift
	}
	return out
}

func paletteColour(index int32) (uint32, bool) {
	if index < 0 || int(index) >= len(actionPalette) {
		return 0, false
	}
	return actionPalette[index], true
}

func (k *Kernel) registerDraw() {
	k.registerFixed("draw_set_color", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		g.DrawColour = uint32(args[0].Round())
		return gml.Value{}, nil
	})
	k.registerFixed("draw_set_alpha", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		g.DrawAlpha = args[0].Real()
		return gml.Value{}, nil
	})

	k.registerFixed("draw_sprite", 4, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		sprite := args[0].Round()
		if _, ok := g.Sprites.Get(sprite); !ok {
			return gml.Value{}, gml.NewNonexistentAsset(gml.AssetSprite, sprite)
		}
		if g.Renderer == nil {
			return gml.Value{}, nil
		}
		frame := args[1].Real()
		if frame < 0 {
			if inst := g.Instances.Get(ctx.This); inst != nil {
				frame = inst.ImageIndex
			} else {
				frame = 0
			}
		}
		g.Renderer.DrawSprite(sprite, int(frame.Floor()), args[2].Float(), args[3].Float(), 1, 1, 0, 0xFFFFFF, g.DrawAlpha.Float())
		return gml.Value{}, nil
	})

	k.registerFixed("draw_rectangle", 5, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if g.Renderer != nil {
			g.Renderer.DrawRectangle(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float(),
				g.DrawColour, g.DrawAlpha.Float(), args[4].Truthy())
		}
		return gml.Value{}, nil
	})

	k.registerFixed("draw_text", 3, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if g.Renderer != nil {
			g.Renderer.DrawText(args[0].Float(), args[1].Float(), gml.DecodeANSI(str(args[2])), g.DrawColour, g.DrawAlpha.Float())
		}
		return gml.Value{}, nil
	})

	// action_draw_health draws the health bar. backcol 0 is no background,
	// otherwise palette entry backcol-1. barcol 0 runs red to green and 1
	// black to white as health rises; higher values pick palette entry
	// barcol-2.
	k.registerFixed("action_draw_health", 6, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		if g.Renderer == nil {
			return gml.Value{}, nil
		}
		x1, y1, x2, y2 := args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float()
		if ctx.Relative {
			if inst := g.Instances.Get(ctx.This); inst != nil {
				x1, x2 = x1+inst.X.Float(), x2+inst.X.Float()
				y1, y2 = y1+inst.Y.Float(), y2+inst.Y.Float()
			}
		}
		fraction := min(max(g.Health.Float()/100, 0), 1)

		if back, ok := paletteColour(args[4].Round() - 1); ok {
			g.Renderer.DrawRectangle(x1, y1, x2, y2, back, 1, false)
		}
		var bar uint32
		switch barcol := args[5].Round(); barcol {
		case 0:
			bar = lerpColour(0x0000FF, 0x00FF00, fraction)
		case 1:
			bar = lerpColour(0x000000, 0xFFFFFF, fraction)
		default:
			var ok bool
			if bar, ok = paletteColour(barcol - 2); !ok {
				bar = 0xFFFFFF
			}
		}
		if fraction > 0 {
			g.Renderer.DrawRectangle(x1, y1, x1+(x2-x1)*fraction, y2, bar, 1, false)
		}
		g.Renderer.DrawRectangle(x1, y1, x2, y2, 0x000000, 1, true)
		return gml.Value{}, nil
	})
}

func (k *Kernel) registerParticle() {
	k.registerFixed("part_type_create", 0, func(g *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		return gml.FromInt(g.Particles.Create()), nil
	})
	k.registerFixed("part_type_destroy", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		g.Particles.Destroy(args[0].Round())
		return gml.Value{}, nil
	})
	k.registerFixed("part_type_exists", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		_, ok := g.Particles.Get(args[0].Round())
		return gml.FromBool(ok), nil
	})
	k.registerFixed("part_type_alpha1", 2, withParticleType(func(t *particle.Type, args []gml.Value) {
		t.SetAlpha1(args[0].Float())
	}))
	k.registerFixed("part_type_alpha2", 3, withParticleType(func(t *particle.Type, args []gml.Value) {
		t.SetAlpha2(args[0].Float(), args[1].Float())
	}))
	k.registerFixed("part_type_alpha3", 4, withParticleType(func(t *particle.Type, args []gml.Value) {
		t.SetAlpha3(args[0].Float(), args[1].Float(), args[2].Float())
	}))
	k.registerFixed("part_type_color2", 3, withParticleType(func(t *particle.Type, args []gml.Value) {
		t.SetColour2(uint32(args[0].Round()), uint32(args[1].Round()))
	}))
}

// withParticleType adapts a setter on an existing particle type. The first
// argument is the type id; unknown ids are ignored.
func withParticleType(set func(t *particle.Type, args []gml.Value)) KernelFunc {
	return func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if t, ok := g.Particles.Get(args[0].Round()); ok {
			set(t, args[1:])
		}
		return gml.Value{}, nil
	}
}
