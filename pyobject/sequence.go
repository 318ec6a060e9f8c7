package pyobject

import "math/big"

func init() {
	register("__add__", chainAdd)
	register("__mul__", chainMul)
}

// listPayload is the native payload behind KindList. It is stored behind a
// pointer so every List Object sharing this payload observes an append or
// item-assignment made through any other handle to the same list, matching
// spec.md's "interior mutability in containers" note.
type listPayload struct {
	items []*Object
}

// NewList builds a List Object owning a copy of items.
func NewList(items []*Object) *Object {
	cp := make([]*Object, len(items))
	copy(cp, items)
	return newObject(KindList, &listPayload{items: cp})
}

// NewTuple builds a Tuple Object. The empty tuple is a singleton, per
// spec.md's invariant.
func NewTuple(items []*Object) *Object {
	if len(items) == 0 {
		return emptyTuple
	}
	cp := make([]*Object, len(items))
	copy(cp, items)
	return newObject(KindTuple, cp)
}

var emptyTuple = newObject(KindTuple, []*Object{})

// ListItems returns the live backing slice of a List, for callers that need
// direct mutation.
func ListItems(o *Object) *[]*Object { return &o.payload.(*listPayload).items }

// Append appends value to a List in place.
func Append(list, value *Object) error {
	if list.Kind != KindList {
		return typeErr("%q object has no attribute \"append\"", list.Kind)
	}
	p := list.payload.(*listPayload)
	p.items = append(p.items, value)
	return nil
}

func sequenceItems(o *Object) []*Object {
	switch o.Kind {
	case KindList:
		return o.payload.(*listPayload).items
	case KindTuple:
		return o.payload.([]*Object)
	default:
		return nil
	}
}

func normalizeIndex(length int, idx *big.Int) (int, bool) {
	if !idx.IsInt64() {
		return 0, false
	}
	i := int(idx.Int64())
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

func sequenceGetItem(recv, key *Object) (*Object, error) {
	if recv.Kind == KindStr || recv.Kind == KindBytes {
		return stringGetItem(recv, key)
	}
	idx, ok := Int(key)
	if !ok {
		return nil, typeErr("indices must be integers, not %q", key.Kind)
	}
	items := sequenceItems(recv)
	i, ok := normalizeIndex(len(items), idx)
	if !ok {
		return nil, NewError(EIndex, "%s index out of range", recv.Kind)
	}
	return items[i], nil
}

func sequenceSetItem(recv, key, value *Object) error {
	idx, ok := Int(key)
	if !ok {
		return typeErr("indices must be integers, not %q", key.Kind)
	}
	p := recv.payload.(*listPayload)
	i, ok := normalizeIndex(len(p.items), idx)
	if !ok {
		return NewError(EIndex, "list assignment index out of range")
	}
	p.items[i] = value
	return nil
}

// Concat implements `+` between two same-Kind sequences.
func Concat(a, b *Object) (*Object, error) {
	if a.Kind != b.Kind || (a.Kind != KindList && a.Kind != KindTuple) {
		return nil, typeErrBinOp("+", a, b)
	}
	combined := append(append([]*Object{}, sequenceItems(a)...), sequenceItems(b)...)
	if a.Kind == KindTuple {
		return NewTuple(combined), nil
	}
	return NewList(combined), nil
}

// Repeat implements `seq * n`, where n is a non-negative integer (a
// negative count yields the empty sequence, per spec.md's container
// contract for tuples, generalized to list/str/bytes).
func Repeat(seq, n *Object) (*Object, error) {
	count, ok := Int(n)
	if !ok {
		return nil, typeErrBinOp("*", seq, n)
	}
	c := 0
	if count.Sign() > 0 {
		if !count.IsInt64() {
			return nil, overflowErr("repeat count too large")
		}
		c = int(count.Int64())
	}
	switch seq.Kind {
	case KindStr:
		s := seq.payload.(string)
		out := make([]rune, 0, len([]rune(s))*c)
		for i := 0; i < c; i++ {
			out = append(out, []rune(s)...)
		}
		return NewStr(string(out)), nil
	case KindBytes:
		b := seq.payload.([]byte)
		out := make([]byte, 0, len(b)*c)
		for i := 0; i < c; i++ {
			out = append(out, b...)
		}
		return NewBytes(out), nil
	case KindList, KindTuple:
		items := sequenceItems(seq)
		out := make([]*Object, 0, len(items)*c)
		for i := 0; i < c; i++ {
			out = append(out, items...)
		}
		if seq.Kind == KindTuple {
			return NewTuple(out), nil
		}
		return NewList(out), nil
	default:
		return nil, typeErrBinOp("*", seq, n)
	}
}

func chainAdd(recv *Object, args []*Object) (*Object, error) {
	other := args[0]
	if recv.Kind == KindStr || recv.Kind == KindBytes {
		return StringConcat(recv, other)
	}
	if recv.Kind == KindList || recv.Kind == KindTuple {
		return Concat(recv, other)
	}
	return Add(recv, other)
}

func chainMul(recv *Object, args []*Object) (*Object, error) {
	other := args[0]
	if recv.Kind == KindStr || recv.Kind == KindBytes || recv.Kind == KindList || recv.Kind == KindTuple {
		return Repeat(recv, other)
	}
	if other.Kind == KindStr || other.Kind == KindBytes || other.Kind == KindList || other.Kind == KindTuple {
		return Repeat(other, recv)
	}
	return Mul(recv, other)
}
