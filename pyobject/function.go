package pyobject

func init() {
	register("__call__", func(recv *Object, args []*Object) (*Object, error) {
		return nil, NewError(ENotImplemented, "call must be dispatched by the vm, not pyobject")
	})
}

// NewFunction wraps an arbitrary compiled-code payload (the compiler
// package's own Code/Bytecode type, opaque to this package) together with
// its default argument values (Defaults). pyobject only carries
// the tag and the payload; the call protocol itself lives in vm, since
// pyobject sits below compiler/vm in the dependency order and cannot
// import either.
func NewFunction(name string, code any, defaults []*Object) *Object {
	return newObject(KindFunction, &FunctionPayload{Name: name, Code: code, Defaults: defaults})
}

// NewNativeFunction wraps a Go closure as a callable Object, for built-ins
// (print, len, type, ...) the vm installs into its global namespace.
func NewNativeFunction(name string, fn func(args []*Object) (*Object, error)) *Object {
	return newObject(KindFunction, &FunctionPayload{Name: name, Native: fn})
}

// NewBoundMethod wraps one of this package's own dispatch-table entries
// (looked up by name via Call) as a callable Object with its receiver
// already fixed, the value an OP_LOAD_ATTR produces for e.g. `xs.append`.
func NewBoundMethod(recv *Object, name string) *Object {
	return newObject(KindFunction, &FunctionPayload{
		Name: name,
		Native: func(args []*Object) (*Object, error) {
			return Call(name, recv, args...)
		},
	})
}

// FunctionPayload is the native value behind KindFunction. Exactly one of
// Code or Native is set: Code for a user-defined function compiled to
// bytecode (interpreted by vm), Native for a built-in or bound method
// (invoked directly as a Go closure, bypassing the bytecode interpreter).
type FunctionPayload struct {
	Name     string
	Code     any
	Defaults []*Object
	Native   func(args []*Object) (*Object, error)
}

// NewCode wraps a compiler.Code value (passed in as `any` to avoid an
// import cycle) as a first-class Object, the constant-pool representation
// for nested function definitions.
func NewCode(code any) *Object { return newObject(KindCode, code) }

// NewModule wraps a module's top-level namespace.
func NewModule(name string, globals *Dict) *Object {
	return newObject(KindModule, &ModulePayload{Name: name, Globals: globals})
}

// ModulePayload is the native value behind KindModule.
type ModulePayload struct {
	Name    string
	Globals *Dict
}
