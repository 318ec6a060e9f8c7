package vm

import (
	"io"

	"nilan/pyobject"
)

// builtins returns the names every module's global namespace starts out
// with: print, len, type, str, int, bool, list, any, all and object.
func builtins() map[string]*pyobject.Object {
	return map[string]*pyobject.Object{
		"print":  pyobject.NewNativeFunction("print", builtinPrint),
		"len":    pyobject.NewNativeFunction("len", builtinLen),
		"type":   pyobject.NewNativeFunction("type", builtinType),
		"str":    pyobject.NewNativeFunction("str", builtinStr),
		"int":    pyobject.NewNativeFunction("int", builtinInt),
		"bool":   pyobject.NewNativeFunction("bool", builtinBool),
		"list":   pyobject.NewNativeFunction("list", builtinList),
		"any":    pyobject.NewNativeFunction("any", builtinAny),
		"all":    pyobject.NewNativeFunction("all", builtinAll),
		"object": pyobject.NewNativeFunction("object", builtinObject),
	}
}

func builtinPrint(args []*pyobject.Object) (*pyobject.Object, error) {
	for i, a := range args {
		if i > 0 {
			io.WriteString(stdout, " ")
		}
		io.WriteString(stdout, pyobject.Str(a))
	}
	io.WriteString(stdout, "\n")
	return pyobject.None(), nil
}

func builtinLen(args []*pyobject.Object) (*pyobject.Object, error) {
	if err := arity("len", args, 1); err != nil {
		return nil, err
	}
	return pyobject.Len(args[0])
}

func builtinType(args []*pyobject.Object) (*pyobject.Object, error) {
	if err := arity("type", args, 1); err != nil {
		return nil, err
	}
	return pyobject.TypeOf(args[0]), nil
}

func builtinObject(args []*pyobject.Object) (*pyobject.Object, error) {
	if err := arity("object", args, 0); err != nil {
		return nil, err
	}
	return pyobject.NewObject(), nil
}

func builtinStr(args []*pyobject.Object) (*pyobject.Object, error) {
	if len(args) == 0 {
		return pyobject.NewStr(""), nil
	}
	return pyobject.NewStr(pyobject.Str(args[0])), nil
}

func builtinInt(args []*pyobject.Object) (*pyobject.Object, error) {
	if len(args) == 0 {
		return pyobject.NewIntFromInt64(0), nil
	}
	n, ok := pyobject.Int(args[0])
	if !ok {
		return nil, pyobject.NewError(pyobject.EType, "int() argument must be a number, not %q", args[0].Kind)
	}
	return pyobject.NewInt(n), nil
}

func builtinBool(args []*pyobject.Object) (*pyobject.Object, error) {
	if len(args) == 0 {
		return pyobject.NewBool(false), nil
	}
	return pyobject.NewBool(pyobject.Truthy(args[0])), nil
}

func builtinList(args []*pyobject.Object) (*pyobject.Object, error) {
	if len(args) == 0 {
		return pyobject.NewList(nil), nil
	}
	items, err := materialize(args[0])
	if err != nil {
		return nil, err
	}
	return pyobject.NewList(items), nil
}

func builtinAny(args []*pyobject.Object) (*pyobject.Object, error) {
	items, err := materialize(args[0])
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		if pyobject.Truthy(v) {
			return pyobject.NewBool(true), nil
		}
	}
	return pyobject.NewBool(false), nil
}

func builtinAll(args []*pyobject.Object) (*pyobject.Object, error) {
	items, err := materialize(args[0])
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		if !pyobject.Truthy(v) {
			return pyobject.NewBool(false), nil
		}
	}
	return pyobject.NewBool(true), nil
}

func materialize(o *pyobject.Object) ([]*pyobject.Object, error) {
	it, err := pyobject.Iter(o)
	if err != nil {
		return nil, err
	}
	var out []*pyobject.Object
	for {
		v, err := pyobject.Next(it)
		if err == pyobject.ErrStopIteration {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func arity(name string, args []*pyobject.Object, want int) error {
	if len(args) != want {
		return pyobject.NewError(pyobject.EType, "%s() takes exactly %d argument (%d given)", name, want, len(args))
	}
	return nil
}
