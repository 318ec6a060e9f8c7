package pyobject

// typePayload is the payload for KindType objects: the name of the Kind
// they represent. type(1) and type(2) must compare equal, so the name
// rather than the *Object is what Equal keys on.
type typePayload struct {
	name string
}

// metaType is what type() returns when applied to a type object itself:
// Python's type(int) is int, but type(type(int)) is type, the fixed point
// every type object shares.
var metaType = &typePayload{name: "type"}

// NewTypeObject returns the type object named after k, the value type()
// produces when applied to any instance of that Kind.
func NewTypeObject(k Kind) *Object {
	return newObject(KindType, &typePayload{name: k.String()})
}

// TypeOf implements the type() builtin: every Kind gets its own type
// object, and type objects themselves are all instances of "type".
func TypeOf(o *Object) *Object {
	if o.Kind == KindType {
		return newObject(KindType, metaType)
	}
	return NewTypeObject(o.Kind)
}

// NewObject returns a bare instance of the universal base type, the value
// object() constructs. It carries no attributes of its own; dispatch finds
// no methods for it beyond identity comparison, matching Python's object().
func NewObject() *Object {
	return newObject(KindObject, nil)
}
