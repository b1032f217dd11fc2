package instance

// Handle is a transient reference to a slot in a List. A handle goes stale
// once its instance has been removed by Compact; stale handles resolve to nil
// even if the slot has been reused. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// NoHandle is the invalid handle.
var NoHandle Handle

// Valid reports whether h was ever issued by a List.
func (h Handle) Valid() bool { return h.gen != 0 }

type slot struct {
	inst     *Instance
	gen      uint32
	inactive bool
}

// List stores the instances of the current room. Iteration is lazy and
// tolerant of mutation: instances marked deleted mid-iteration are skipped,
// and instances inserted mid-iteration are visited by insertion-order
// iterators that have not yet reached the end.
type List struct {
	slots []slot
	free  []uint32
	order []Handle
	byID  map[int32]Handle
}

// NewList creates an empty List.
func NewList() *List {
	return &List{byID: make(map[int32]Handle)}
}

// Insert adds an instance and returns its handle.
func (l *List) Insert(inst *Instance) Handle {
	var idx uint32
	if n := len(l.free); n > 0 {
		idx = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		l.slots = append(l.slots, slot{})
		idx = uint32(len(l.slots) - 1)
	}
	s := &l.slots[idx]
	s.gen++
	s.inst = inst
	s.inactive = false
	h := Handle{index: idx, gen: s.gen}
	l.order = append(l.order, h)
	l.byID[inst.ID] = h
	return h
}

func (l *List) slot(h Handle) *slot {
	if !h.Valid() || int(h.index) >= len(l.slots) {
		return nil
	}
	s := &l.slots[h.index]
	if s.gen != h.gen || s.inst == nil {
		return nil
	}
	return s
}

// Get returns the instance behind h, or nil if h is stale. Instances marked
// deleted stay reachable until Compact.
func (l *List) Get(h Handle) *Instance {
	if s := l.slot(h); s != nil {
		return s.inst
	}
	return nil
}

// IsAlive reports whether h refers to an existing, active instance.
func (l *List) IsAlive(h Handle) bool {
	s := l.slot(h)
	return s != nil && s.inst.Exists && !s.inactive
}

// MarkDeleted flags an instance as destroyed. Its storage is reclaimed by
// the next Compact.
func (l *List) MarkDeleted(h Handle) {
	if s := l.slot(h); s != nil {
		s.inst.Exists = false
	}
}

// GetByInstID looks up a live, active instance by persistent id.
func (l *List) GetByInstID(id int32) (Handle, bool) {
	h, ok := l.byID[id]
	if !ok || !l.IsAlive(h) {
		return NoHandle, false
	}
	return h, true
}

// Deactivate hides an instance from iteration and id lookups.
func (l *List) Deactivate(h Handle) {
	if s := l.slot(h); s != nil {
		s.inactive = true
	}
}

// Activate makes a deactivated instance visible again.
func (l *List) Activate(h Handle) {
	if s := l.slot(h); s != nil {
		s.inactive = false
	}
}

// IsActive reports whether h refers to an instance that is not deactivated.
func (l *List) IsActive(h Handle) bool {
	s := l.slot(h)
	return s != nil && !s.inactive
}

// Compact reclaims the slots of deleted instances. Handles to them go stale.
func (l *List) Compact() {
	kept := l.order[:0]
	for _, h := range l.order {
		s := l.slot(h)
		if s == nil {
			continue
		}
		if !s.inst.Exists {
			delete(l.byID, s.inst.ID)
			s.inst = nil
			s.inactive = false
			l.free = append(l.free, h.index)
			continue
		}
		kept = append(kept, h)
	}
	l.order = kept
}

// Clear removes every instance.
func (l *List) Clear() {
	for _, h := range l.order {
		if s := l.slot(h); s != nil {
			s.inst.Exists = false
		}
	}
	l.Compact()
}

// Len returns the number of live, active instances.
func (l *List) Len() int {
	n := 0
	it := l.IterByInsertion()
	for _, ok := it.Next(l); ok; _, ok = it.Next(l) {
		n++
	}
	return n
}

// Count returns the number of live, active instances whose object identifies
// as one of identities.
func (l *List) Count(identities map[int32]struct{}) int {
	n := 0
	it := l.IterByIdentity(identities)
	for _, ok := it.Next(l); ok; _, ok = it.Next(l) {
		n++
	}
	return n
}

// Iter is a lazy cursor over a List's insertion order.
type Iter struct {
	pos        int
	identities map[int32]struct{}
	inactive   bool
}

// IterByInsertion visits live, active instances in creation order.
func (l *List) IterByInsertion() *Iter { return &Iter{} }

// IterByIdentity visits live, active instances whose object index is in
// identities, in creation order.
func (l *List) IterByIdentity(identities map[int32]struct{}) *Iter {
	return &Iter{identities: identities}
}

// IterInactive visits live, deactivated instances in creation order.
func (l *List) IterInactive() *Iter { return &Iter{inactive: true} }

// Next advances the cursor. The list is re-read on every call, so mutation
// between calls is safe.
func (it *Iter) Next(l *List) (Handle, bool) {
	for it.pos < len(l.order) {
		h := l.order[it.pos]
		it.pos++
		s := l.slot(h)
		if s == nil || !s.inst.Exists || s.inactive != it.inactive {
			continue
		}
		if it.identities != nil {
			if _, ok := it.identities[s.inst.ObjectIndex]; !ok {
				continue
			}
		}
		return h, true
	}
	return NoHandle, false
}
