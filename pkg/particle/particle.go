// Package particle keeps the particle type table behind the part_type_*
// functions. Simulation and drawing of particles are not implemented here;
// only the type settings the scripts configure.
package particle

// Type is one particle type's settings.
type Type struct {
	Shape int32

	SizeMin, SizeMax   float64
	SizeIncr, SizeWig  float64
	XScale, YScale     float64
	LifeMin, LifeMax   int32
	Alpha1             float64
	Alpha2             float64
	Alpha3             float64
	Colour1            uint32
	Colour2            uint32
	Colour3            uint32
	Additive           bool
	DirMin, DirMax     float64
	SpeedMin, SpeedMax float64
}

// Manager owns particle types by id.
type Manager struct {
	types []*Type
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Create allocates a new particle type with default settings and returns its id.
func (m *Manager) Create() int32 {
	t := &Type{
		SizeMin: 1, SizeMax: 1,
		XScale: 1, YScale: 1,
		LifeMin: 100, LifeMax: 100,
		Alpha1: 1, Alpha2: 1, Alpha3: 1,
		Colour1: 0xFFFFFF, Colour2: 0xFFFFFF, Colour3: 0xFFFFFF,
	}
	for i, existing := range m.types {
		if existing == nil {
			m.types[i] = t
			return int32(i)
		}
	}
	m.types = append(m.types, t)
	return int32(len(m.types) - 1)
}

// Get returns the type with the given id.
func (m *Manager) Get(id int32) (*Type, bool) {
	if id < 0 || int(id) >= len(m.types) || m.types[id] == nil {
		return nil, false
	}
	return m.types[id], true
}

// Destroy frees a type id.
func (m *Manager) Destroy(id int32) {
	if id >= 0 && int(id) < len(m.types) {
		m.types[id] = nil
	}
}

// SetAlpha1 sets a constant alpha over the particle's life.
func (t *Type) SetAlpha1(a float64) {
	t.Alpha1, t.Alpha2, t.Alpha3 = a, a, a
}

// SetAlpha2 fades from start to end; the midpoint is interpolated half-way.
func (t *Type) SetAlpha2(start, end float64) {
	t.Alpha1 = start
	t.Alpha2 = (start + end) / 2
	t.Alpha3 = end
}

// SetAlpha3 sets start, middle and end alpha explicitly.
func (t *Type) SetAlpha3(start, middle, end float64) {
	t.Alpha1, t.Alpha2, t.Alpha3 = start, middle, end
}

// SetColour2 fades between two colours; the midpoint is the per-channel
// half-way mix.
func (t *Type) SetColour2(start, end uint32) {
	t.Colour1 = start
	t.Colour2 = MixColour(start, end)
	t.Colour3 = end
}

// MixColour returns the per-channel average of two BGR colours.
func MixColour(a, b uint32) uint32 {
	var out uint32
	for shift := uint32(0); shift < 24; shift += 8 {
		ca := (a >> shift) & 0xFF
		cb := (b >> shift) & 0xFF
		out |= ((ca + cb) / 2) << shift
	}
	return out
}
