package vm

import (
	"strconv"
	"strings"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// parseReal reads the leading number of s the way real() does: surrounding
// blanks are ignored and anything unparsable is 0.
func parseReal(s string) gml.Real {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return gml.Real(f)
}

// mapASCII shifts the bytes in [lo, hi] by delta. Other bytes, including
// the upper half of the code page, are kept.
func mapASCII(s string, lo, hi byte, delta int) string {
	b := []byte(s)
	for i, c := range b {
		if c >= lo && c <= hi {
			b[i] = byte(int(c) + delta)
		}
	}
	return string(b)
}

// span converts a 1-based position and count into a clamped byte range.
func span(n int, pos, count int32) (int, int) {
	start := min(max(int(pos)-1, 0), n)
	end := min(start+max(int(count), 0), n)
	return start, end
}

func (k *Kernel) registerString() {
	k.registerFixed("string", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromString(str(args[0])), nil
	})
	k.registerFixed("real", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if args[0].IsString() {
			return gml.FromReal(parseReal(args[0].Str())), nil
		}
		return args[0], nil
	})
	k.registerFixed("string_length", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromInt(len(str(args[0]))), nil
	})
	k.registerFixed("string_copy", 3, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		s := str(args[0])
		start, end := span(len(s), args[1].Round(), args[2].Round())
		return gml.FromString(s[start:end]), nil
	})
	k.registerFixed("string_char_at", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		s := str(args[0])
		i := int(args[1].Round()) - 1
		if i < 0 || i >= len(s) {
			return gml.FromString(""), nil
		}
		return gml.FromString(s[i : i+1]), nil
	})
	k.registerFixed("string_pos", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromInt(strings.Index(str(args[1]), str(args[0])) + 1), nil
	})
	k.registerFixed("string_upper", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromString(mapASCII(str(args[0]), 'a', 'z', 'A'-'a')), nil
	})
	k.registerFixed("string_lower", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromString(mapASCII(str(args[0]), 'A', 'Z', 'a'-'A')), nil
	})
	k.registerFixed("string_delete", 3, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		s := str(args[0])
		start, end := span(len(s), args[1].Round(), args[2].Round())
		return gml.FromString(s[:start] + s[end:]), nil
	})
	k.registerFixed("string_insert", 3, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		s := str(args[1])
		at := min(max(int(args[2].Round())-1, 0), len(s))
		return gml.FromString(s[:at] + str(args[0]) + s[at:]), nil
	})
	k.registerFixed("string_replace", 3, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromString(strings.Replace(str(args[0]), str(args[1]), str(args[2]), 1)), nil
	})
	k.registerFixed("string_replace_all", 3, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if str(args[1]) == "" {
			return gml.FromString(str(args[0])), nil
		}
		return gml.FromString(strings.ReplaceAll(str(args[0]), str(args[1]), str(args[2]))), nil
	})
	k.registerFixed("string_count", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		if str(args[0]) == "" {
			return gml.FromInt(0), nil
		}
		return gml.FromInt(strings.Count(str(args[1]), str(args[0]))), nil
	})
	k.registerFixed("string_repeat", 2, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromString(strings.Repeat(str(args[0]), max(int(args[1].Round()), 0))), nil
	})
	k.registerFixed("chr", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.FromString(string([]byte{byte(args[0].Round())})), nil
	})
	k.registerFixed("ord", 1, func(_ *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		s := str(args[0])
		if s == "" {
			return gml.FromInt(0), nil
		}
		return gml.FromInt(int32(s[0])), nil
	})
	k.registerFixed("show_debug_message", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		g.log.Info("show_debug_message", "message", gml.DecodeANSI(str(args[0])))
		return gml.Value{}, nil
	})
}
