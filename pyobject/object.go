// Package pyobject is the runtime object model: every value the virtual
// machine touches is a *Object, a Kind tag plus a native Go payload. There is
// exactly one constructor, newObject, so every Object is born with its weak
// self-reference already populated.
package pyobject

import (
	"fmt"
	"math/big"
)

// Kind tags which built-in type an Object's payload holds.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindStr
	KindBytes
	KindTuple
	KindList
	KindDict
	KindSet
	KindFrozenset
	KindIterator
	KindFunction
	KindCode
	KindFrame
	KindModule
	KindType
	KindObject
	KindNone
)

var kindNames = [...]string{
	KindInt:       "int",
	KindFloat:     "float",
	KindBool:      "bool",
	KindStr:       "str",
	KindBytes:     "bytes",
	KindTuple:     "tuple",
	KindList:      "list",
	KindDict:      "dict",
	KindSet:       "set",
	KindFrozenset: "frozenset",
	KindIterator:  "iterator",
	KindFunction:  "function",
	KindCode:      "code",
	KindFrame:     "frame",
	KindModule:    "module",
	KindType:      "type",
	KindObject:    "object",
	KindNone:      "NoneType",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// WeakRef is a non-owning reference to an Object. Go's garbage collector
// already reclaims a payload once every strong *Object pointer reaching it
// drops out of scope, so WeakRef needs no liveness bookkeeping of its own:
// it is an unexported pointer, set once at construction and never kept alive
// past the object it names.
type WeakRef struct {
	target *Object
}

// Upgrade returns the strong handle this weak reference names. It never
// fails in this implementation — there is no detached state to detect,
// because the only path that ever constructs a WeakRef is newObject itself.
func (w WeakRef) Upgrade() *Object { return w.target }

// Object is the runtime handle every opcode operates on: a tagged pointer to
// a native payload, plus a weak reference back to itself.
type Object struct {
	Kind    Kind
	payload any
	self    WeakRef
}

// newObject is the sole constructor. Every Object is born with self already
// pointing back at it, per the self-reference protocol containers rely on
// when they need to hand out "a reference to me" without re-wrapping.
func newObject(kind Kind, payload any) *Object {
	o := &Object{Kind: kind, payload: payload}
	o.self = WeakRef{target: o}
	return o
}

// Self returns a fresh strong handle obtained through the receiver's own
// weak self-reference.
func (o *Object) Self() *Object { return o.self.Upgrade() }

// Payload returns the per-Kind native value backing the receiver. Callers
// that know the Kind type-assert directly; this is the escape hatch for
// generic code (printing, hashing) that must handle every Kind uniformly.
func (o *Object) Payload() any { return o.payload }

// Is implements identity comparison (`is`): same underlying allocation.
func Is(a, b *Object) bool { return a == b }

// Id returns a stable per-object identity string, used by Str/Repr to render
// a bare object() instance.
func Id(o *Object) string { return fmt.Sprintf("%p", o) }

var none = newObject(KindNone, nil)

// None is the single None object; every reference to None is this pointer.
func None() *Object { return none }

// Truthy implements Python's bool() coercion rules for the Kind set this
// implementation supports.
func Truthy(o *Object) bool {
	switch o.Kind {
	case KindNone:
		return false
	case KindBool:
		return o.payload.(bool)
	case KindInt:
		return o.payload.(*big.Int).Sign() != 0
	case KindFloat:
		return o.payload.(float64) != 0
	case KindStr:
		return o.payload.(string) != ""
	case KindBytes:
		return len(o.payload.([]byte)) != 0
	case KindTuple:
		return len(o.payload.([]*Object)) != 0
	case KindList:
		return len(o.payload.(*listPayload).items) != 0
	case KindDict:
		return o.payload.(*Dict).Len() != 0
	case KindSet, KindFrozenset:
		return o.payload.(*setPayload).m.Len() != 0
	default:
		return true
	}
}
