package pyobject

func init() {
	register("__str__", func(recv *Object, args []*Object) (*Object, error) { return NewStr(Str(recv)), nil })
	register("__repr__", func(recv *Object, args []*Object) (*Object, error) { return NewStr(Repr(recv)), nil })
}

var emptyStr = newObject(KindStr, "")

// NewStr builds a Str Object. The empty string is a singleton, per
// spec.md's invariant.
func NewStr(s string) *Object {
	if s == "" {
		return emptyStr
	}
	return newObject(KindStr, s)
}

// NewBytes builds a Bytes Object.
func NewBytes(b []byte) *Object {
	cp := make([]byte, len(b))
	copy(cp, b)
	return newObject(KindBytes, cp)
}

// StringConcat implements `+` for str/bytes, requiring both operands share
// the same Kind — Python never implicitly concatenates str with bytes.
func StringConcat(a, b *Object) (*Object, error) {
	if a.Kind != b.Kind {
		return nil, typeErrBinOp("+", a, b)
	}
	switch a.Kind {
	case KindStr:
		return NewStr(a.payload.(string) + b.payload.(string)), nil
	case KindBytes:
		out := append(append([]byte{}, a.payload.([]byte)...), b.payload.([]byte)...)
		return NewBytes(out), nil
	default:
		return nil, typeErrBinOp("+", a, b)
	}
}

// stringGetItem implements Unicode-scalar indexing for str (resolving
// spec.md's Open Question (c) in favor of a correct []rune decode instead
// of the distilled single-byte-lossy behavior) and byte indexing for bytes.
func stringGetItem(recv, key *Object) (*Object, error) {
	idx, ok := Int(key)
	if !ok {
		return nil, typeErr("indices must be integers, not %q", key.Kind)
	}
	if recv.Kind == KindBytes {
		b := recv.payload.([]byte)
		i, ok := normalizeIndex(len(b), idx)
		if !ok {
			return nil, NewError(EIndex, "index out of range")
		}
		return NewBytes([]byte{b[i]}), nil
	}
	runes := []rune(recv.payload.(string))
	i, ok := normalizeIndex(len(runes), idx)
	if !ok {
		return nil, NewError(EIndex, "string index out of range")
	}
	return NewStr(string(runes[i])), nil
}

func containsSubstring(haystack string, needle *Object) bool {
	if needle.Kind != KindStr {
		return false
	}
	n := needle.payload.(string)
	h := haystack
	if n == "" {
		return true
	}
	for i := 0; i+len(n) <= len(h); i++ {
		if h[i:i+len(n)] == n {
			return true
		}
	}
	return false
}
