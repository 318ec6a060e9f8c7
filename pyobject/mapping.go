package pyobject

import "github.com/aristanetworks/gomap"

func init() {
	register("__getitem__", func(recv *Object, args []*Object) (*Object, error) { return GetItem(recv, args[0]) })
	register("__setitem__", func(recv *Object, args []*Object) (*Object, error) {
		if err := SetItem(recv, args[0], args[1]); err != nil {
			return nil, err
		}
		return None(), nil
	})
	register("__delitem__", func(recv *Object, args []*Object) (*Object, error) {
		if err := DelItem(recv, args[0]); err != nil {
			return nil, err
		}
		return None(), nil
	})
	register("__contains__", func(recv *Object, args []*Object) (*Object, error) { return Contains(recv, args[0]) })
	register("__len__", func(recv *Object, args []*Object) (*Object, error) { return Len(recv) })
}

// Dict is an unordered, cross-type-equal mapping, a thin wrapper
// over gomap.Map keyed and hashed by this package's own Equal/Hash —
// grounded directly on kisielk-og-rek's Dict, generalized from `any` keys
// to *Object keys since every value in this runtime is already an Object.
type Dict struct {
	m *gomap.Map[*Object, *Object]
}

// NewDict returns an empty dictionary Object.
func NewDict() *Object {
	return newObject(KindDict, &Dict{m: gomap.NewHint[*Object, *Object](0, Equal, hashSeeded)})
}

// Get looks up key, reporting whether an equal key is present.
func (d *Dict) Get(key *Object) (*Object, bool) { return d.m.Get(key) }

// Set inserts or overwrites key's value.
func (d *Dict) Set(key, value *Object) { d.m.Set(key, value) }

// Del removes key, reporting whether it was present.
func (d *Dict) Del(key *Object) bool {
	_, ok := d.m.Get(key)
	if ok {
		d.m.Delete(key)
	}
	return ok
}

// Len returns the number of entries.
func (d *Dict) Len() int { return d.m.Len() }

// Iter visits every entry in arbitrary order, stopping early if fn returns
// false.
func (d *Dict) Iter(fn func(k, v *Object) bool) {
	it := d.m.Iter()
	for it.Next() {
		if !fn(it.Key(), it.Elem()) {
			return
		}
	}
}

// NewDictObject is the dispatch-facing constructor used by the vm's
// OP_BUILD_DICT handler.
func NewDictObject(keys, values []*Object) *Object {
	o := NewDict()
	d := o.payload.(*Dict)
	for i := range keys {
		d.Set(keys[i], values[i])
	}
	return o
}

// GetItem implements subscripting (`recv[key]`) for Dict and the sequence
// Kinds; dict lookups raise EKey on miss, list/tuple lookups forward to
// the sequence layer.
func GetItem(recv, key *Object) (*Object, error) {
	switch recv.Kind {
	case KindDict:
		v, ok := recv.payload.(*Dict).Get(key)
		if !ok {
			return nil, NewError(EKey, "%v", Repr(key))
		}
		return v, nil
	case KindList, KindTuple, KindStr, KindBytes:
		return sequenceGetItem(recv, key)
	default:
		return nil, typeErr("%q object is not subscriptable", recv.Kind)
	}
}

// SetItem implements `recv[key] = value`, valid for Dict and List.
func SetItem(recv, key, value *Object) error {
	switch recv.Kind {
	case KindDict:
		recv.payload.(*Dict).Set(key, value)
		return nil
	case KindList:
		return sequenceSetItem(recv, key, value)
	default:
		return typeErr("%q object does not support item assignment", recv.Kind)
	}
}

// DelItem implements `del recv[key]`.
func DelItem(recv, key *Object) error {
	switch recv.Kind {
	case KindDict:
		if !recv.payload.(*Dict).Del(key) {
			return NewError(EKey, "%v", Repr(key))
		}
		return nil
	default:
		return typeErr("%q object does not support item deletion", recv.Kind)
	}
}

// Contains implements `key in recv` for Dict, Set/Frozenset and the
// sequence Kinds.
func Contains(recv, key *Object) (*Object, error) {
	switch recv.Kind {
	case KindDict:
		_, ok := recv.payload.(*Dict).Get(key)
		return NewBool(ok), nil
	case KindSet, KindFrozenset:
		return NewBool(recv.payload.(*setPayload).contains(key)), nil
	case KindList, KindTuple:
		for _, e := range sequenceItems(recv) {
			if Equal(e, key) {
				return NewBool(true), nil
			}
		}
		return NewBool(false), nil
	case KindStr:
		return NewBool(containsSubstring(recv.payload.(string), key)), nil
	default:
		return nil, typeErr("argument of type %q is not iterable", recv.Kind)
	}
}

// Len implements `len(recv)`.
func Len(recv *Object) (*Object, error) {
	switch recv.Kind {
	case KindDict:
		return NewIntFromInt64(int64(recv.payload.(*Dict).Len())), nil
	case KindSet, KindFrozenset:
		return NewIntFromInt64(int64(recv.payload.(*setPayload).m.Len())), nil
	case KindList:
		return NewIntFromInt64(int64(len(recv.payload.(*listPayload).items))), nil
	case KindTuple:
		return NewIntFromInt64(int64(len(recv.payload.([]*Object)))), nil
	case KindStr:
		return NewIntFromInt64(int64(len([]rune(recv.payload.(string))))), nil
	case KindBytes:
		return NewIntFromInt64(int64(len(recv.payload.([]byte)))), nil
	default:
		return nil, typeErr("object of type %q has no len()", recv.Kind)
	}
}
