package particle

import "testing"

func TestAlpha(t *testing.T) {
	m := NewManager()
	id := m.Create()
	pt, ok := m.Get(id)
	if !ok {
		t.Fatal("created type not found")
	}

	pt.SetAlpha2(0.2, 0.8)
	if pt.Alpha1 != 0.2 || pt.Alpha2 != 0.5 || pt.Alpha3 != 0.8 {
		t.Errorf("alpha2(0.2, 0.8) = %v %v %v, want 0.2 0.5 0.8", pt.Alpha1, pt.Alpha2, pt.Alpha3)
	}

	pt.SetAlpha1(0.3)
	if pt.Alpha1 != 0.3 || pt.Alpha2 != 0.3 || pt.Alpha3 != 0.3 {
		t.Errorf("alpha1(0.3) = %v %v %v", pt.Alpha1, pt.Alpha2, pt.Alpha3)
	}
}

func TestColour2(t *testing.T) {
	m := NewManager()
	pt, _ := m.Get(m.Create())
	pt.SetColour2(0x0000FF, 0x00FF00)
	if pt.Colour2 != 0x007F7F {
		t.Errorf("midpoint colour = %06X, want 007F7F", pt.Colour2)
	}
}

func TestManagerReusesIDs(t *testing.T) {
	m := NewManager()
	a := m.Create()
	b := m.Create()
	m.Destroy(a)
	if _, ok := m.Get(a); ok {
		t.Error("destroyed type still exists")
	}
	if c := m.Create(); c != a {
		t.Errorf("Create() = %d, want reused id %d", c, a)
	}
	if _, ok := m.Get(b); !ok {
		t.Error("unrelated type lost")
	}
	if _, ok := m.Get(-1); ok {
		t.Error("negative id resolved")
	}
}
