package pyobject

import "github.com/aristanetworks/gomap"

// setPayload backs both KindSet and KindFrozenset: a Set is a mutable
// wrapper over the same gomap machinery Dict uses, keyed on the element
// itself with an unused bool value.
type setPayload struct {
	m *gomap.Map[*Object, bool]
}

func newSetPayload(items []*Object) *setPayload {
	sp := &setPayload{m: gomap.NewHint[*Object, bool](len(items), Equal, hashSeeded)}
	for _, it := range items {
		sp.m.Set(it, true)
	}
	return sp
}

// NewSet builds a mutable Set Object from items, discarding duplicates
// under Equal.
func NewSet(items []*Object) *Object {
	return newObject(KindSet, newSetPayload(items))
}

// NewFrozenset builds an immutable Frozenset Object.
func NewFrozenset(items []*Object) *Object {
	return newObject(KindFrozenset, newSetPayload(items))
}

func (sp *setPayload) contains(key *Object) bool {
	_, ok := sp.m.Get(key)
	return ok
}

func (sp *setPayload) each(fn func(k *Object) bool) {
	it := sp.m.Iter()
	for it.Next() {
		if !fn(it.Key()) {
			return
		}
	}
}

// SetAdd inserts value into a mutable Set in place.
func SetAdd(set, value *Object) error {
	if set.Kind != KindSet {
		return typeErr("%q object has no attribute \"add\"", set.Kind)
	}
	set.payload.(*setPayload).m.Set(value, true)
	return nil
}

// Discard removes value from a mutable Set in place, a no-op if absent.
func Discard(set, value *Object) error {
	if set.Kind != KindSet {
		return typeErr("%q object has no attribute \"discard\"", set.Kind)
	}
	set.payload.(*setPayload).m.Delete(value)
	return nil
}
