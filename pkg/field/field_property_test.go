package field

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

func TestPropertyFlatten(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("Split inverts Flatten", prop.ForAll(
		func(i, j uint32) bool {
			a, b := Split(Flatten(i, j))
			return a == i && b == j
		},
		gen.UInt32Range(0, ArrayDim-1),
		gen.UInt32Range(0, ArrayDim-1),
	))

	properties.Property("distinct index pairs never collide", prop.ForAll(
		func(i1, j1, i2, j2 uint32) bool {
			if i1 == i2 && j1 == j2 {
				return true
			}
			return Flatten(i1, j1) != Flatten(i2, j2)
		},
		gen.UInt32Range(0, ArrayDim-1),
		gen.UInt32Range(0, ArrayDim-1),
		gen.UInt32Range(0, ArrayDim-1),
		gen.UInt32Range(0, ArrayDim-1),
	))

	properties.Property("a stored value reads back", prop.ForAll(
		func(id int, index uint32, x float64) bool {
			b := NewBag()
			b.Set(id, index, gml.FromFloat(x))
			v, ok := b.Get(id, index)
			return ok && v.Float() == x
		},
		gen.IntRange(0, 1000),
		gen.UInt32Range(0, ArrayDim*ArrayDim-1),
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}
