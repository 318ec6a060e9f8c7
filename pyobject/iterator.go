package pyobject

func init() {
	register("__iter__", func(recv *Object, args []*Object) (*Object, error) { return Iter(recv) })
	register("__next__", func(recv *Object, args []*Object) (*Object, error) { return Next(recv) })
	register("add", func(recv *Object, args []*Object) (*Object, error) {
		if err := SetAdd(recv, args[0]); err != nil {
			return nil, err
		}
		return None(), nil
	})
	register("discard", func(recv *Object, args []*Object) (*Object, error) {
		if err := Discard(recv, args[0]); err != nil {
			return nil, err
		}
		return None(), nil
	})
	register("append", func(recv *Object, args []*Object) (*Object, error) {
		if err := Append(recv, args[0]); err != nil {
			return nil, err
		}
		return None(), nil
	})
}

// iteratorPayload wraps a materialized view of the source's elements plus a
// cursor. Building the view eagerly at op_iter time (rather than walking
// the live container) keeps Next simple and matches spec.md's "not
// restartable" contract: mutating the source after iteration has begun
// does not retroactively change what Next yields.
type iteratorPayload struct {
	items  []*Object
	cursor int
	done   bool
}

// Iter implements `op_iter`: copies recv's current elements into a fresh
// Iterator handle. Calling it again on the same source starts a new,
// independent cursor; an Iterator passed in is returned as itself.
func Iter(recv *Object) (*Object, error) {
	if recv.Kind == KindIterator {
		return recv.Self(), nil
	}
	items, err := materialize(recv)
	if err != nil {
		return nil, err
	}
	return newObject(KindIterator, &iteratorPayload{items: items}), nil
}

func materialize(recv *Object) ([]*Object, error) {
	switch recv.Kind {
	case KindList:
		return append([]*Object{}, recv.payload.(*listPayload).items...), nil
	case KindTuple:
		return append([]*Object{}, recv.payload.([]*Object)...), nil
	case KindStr:
		runes := []rune(recv.payload.(string))
		out := make([]*Object, len(runes))
		for i, r := range runes {
			out[i] = NewStr(string(r))
		}
		return out, nil
	case KindBytes:
		b := recv.payload.([]byte)
		out := make([]*Object, len(b))
		for i, c := range b {
			out[i] = NewBytes([]byte{c})
		}
		return out, nil
	case KindDict:
		d := recv.payload.(*Dict)
		out := make([]*Object, 0, d.Len())
		d.Iter(func(k, v *Object) bool {
			out = append(out, k)
			return true
		})
		return out, nil
	case KindSet, KindFrozenset:
		sp := recv.payload.(*setPayload)
		out := make([]*Object, 0, sp.m.Len())
		sp.each(func(k *Object) bool {
			out = append(out, k)
			return true
		})
		return out, nil
	default:
		return nil, typeErr("%q object is not iterable", recv.Kind)
	}
}

// Next implements `op_next`: advances the cursor, returning
// ErrStopIteration once exhausted. Iterators are not restartable — once
// done is set, every subsequent call returns the same sentinel.
func Next(recv *Object) (*Object, error) {
	if recv.Kind != KindIterator {
		return nil, typeErr("%q object is not an iterator", recv.Kind)
	}
	p := recv.payload.(*iteratorPayload)
	if p.done || p.cursor >= len(p.items) {
		p.done = true
		return nil, ErrStopIteration
	}
	v := p.items[p.cursor]
	p.cursor++
	return v, nil
}
