package field

import (
	"testing"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

func TestFlatten(t *testing.T) {
	if got := Flatten(3, 4); got != 96004 {
		t.Errorf("Flatten(3, 4) = %d, want 96004", got)
	}
	i, j := Split(96004)
	if i != 3 || j != 4 {
		t.Errorf("Split(96004) = %d, %d", i, j)
	}
	if Flatten(0, 7) != 7 {
		t.Error("a 1D index should flatten to itself")
	}
}

func TestCheckIndex(t *testing.T) {
	tests := []struct {
		index int32
		ok    bool
	}{
		{-1, false},
		{0, true},
		{31999, true},
		{32000, false},
	}
	for _, tt := range tests {
		got, err := CheckIndex(tt.index, 1)
		if tt.ok {
			if err != nil || got != uint32(tt.index) {
				t.Errorf("CheckIndex(%d) = %d, %v", tt.index, got, err)
			}
			continue
		}
		if !gml.IsKind(err, gml.ErrInvalidArrayIndex) {
			t.Errorf("CheckIndex(%d): got %v, want %s", tt.index, err, gml.ErrInvalidArrayIndex)
		}
	}
}

func TestBag(t *testing.T) {
	b := NewBag()
	if _, ok := b.Get(1, 0); ok {
		t.Fatal("empty bag returned a value")
	}

	b.Set(1, 0, gml.FromInt(5))
	b.Set(1, Flatten(2, 3), gml.FromString("x"))
	if v, ok := b.Get(1, 0); !ok || v.Real() != 5 {
		t.Errorf("Get(1, 0) = %v, %v", v, ok)
	}
	if v, ok := b.Get(1, 64003); !ok || v.Str() != "x" {
		t.Errorf("Get(1, 64003) = %v, %v", v, ok)
	}
	if _, ok := b.Get(1, 1); ok {
		t.Error("unset index of a set field should be absent")
	}
	if !b.Has(1) || b.Has(2) {
		t.Error("Has reports the wrong fields")
	}
	if b.Field(1).Len() != 2 {
		t.Errorf("field 1 has %d indices, want 2", b.Field(1).Len())
	}

	b.Delete(1)
	if b.Has(1) || b.Len() != 0 {
		t.Error("Delete left the field behind")
	}
}

func TestNames(t *testing.T) {
	n := NewNames()
	a := n.Intern("hp")
	b := n.Intern("HP")
	if a == b {
		t.Error("names should be case-sensitive")
	}
	if n.Intern("hp") != a {
		t.Error("Intern should be idempotent")
	}
	if id, ok := n.Lookup("HP"); !ok || id != b {
		t.Errorf("Lookup(HP) = %d, %v", id, ok)
	}
	if n.Name(a) != "hp" {
		t.Errorf("Name(%d) = %q", a, n.Name(a))
	}
	if n.Name(99) != "<field 99>" {
		t.Errorf("unknown id named %q", n.Name(99))
	}
}
