// Package vm executes compiler.Code: a stack-based fetch-decode-execute
// loop over a call stack of Frames, built in the teacher's own vm
// package's shape (Stack, a single dispatch switch over compiler.Opcode)
// generalized from a flat single-frame instruction stream to a full call
// protocol with a bounded recursion depth.
package vm

import (
	"fmt"
	"io"
	"os"

	"nilan/compiler"
	"nilan/pyobject"
)

// maxFrames bounds call depth, standing in for CPython's recursion limit;
// exceeding it raises ERecursion rather than overflowing the Go stack.
const maxFrames = 256

// stdout is where the print() builtin writes; overridable by the CLI/tests
// so a script's output can be captured instead of going to the process's
// real stdout.
var stdout io.Writer = os.Stdout

// VM is the runtime environment bytecode executes in: a call stack of
// Frames sharing one global namespace.
type VM struct {
	frames  []*Frame
	globals *pyobject.Dict
}

// New creates a VM whose global namespace starts out populated with the
// built-in functions.
func New() *VM {
	globals := pyobject.NewDict().Payload().(*pyobject.Dict)
	for name, fn := range builtins() {
		globals.Set(pyobject.NewStr(name), fn)
	}
	return &VM{globals: globals}
}

// Globals exposes the module namespace, which persists across successive
// Run calls on the same VM.
func (vm *VM) Globals() *pyobject.Dict { return vm.globals }

// Run executes a compiled module's top-level Code to completion, returning
// the value its frame returned: the implicit trailing None, unless the
// module body executes a top-level `return` of its own.
func (vm *VM) Run(code *compiler.Code) (*pyobject.Object, error) {
	base := len(vm.frames)
	vm.frames = append(vm.frames, newFrame(code, nil))
	v, err := vm.loop()
	if err != nil {
		annotated := vm.annotate(err)
		vm.frames = vm.frames[:base]
		return nil, annotated
	}
	return v, nil
}

// annotate prefixes a Python-level error with a traceback built from the
// frame stack at the point of failure, the way CPython formats uncaught
// exceptions; vm-internal DeveloperErrors pass through unchanged since they
// already identify themselves as bugs rather than program errors.
func (vm *VM) annotate(err error) error {
	pe, ok := err.(*pyobject.Error)
	if !ok {
		return err
	}
	trace := "Traceback (most recent call last):\n"
	for _, f := range vm.frames {
		trace += fmt.Sprintf("  in %s\n", f.code.Name)
	}
	return pyobject.NewError(pe.Kind, "%s%s", trace, pe.Message)
}

func (vm *VM) frame() *Frame { return vm.frames[len(vm.frames)-1] }

// loop is the fetch-decode-execute cycle. It runs until the bottom-most
// frame (the module, or the one a call protocol pushed frames on top of)
// returns, at which point execution is complete and the result is handed
// back to Run.
func (vm *VM) loop() (*pyobject.Object, error) {
	baseDepth := len(vm.frames) - 1
	for {
		f := vm.frame()
		op := compiler.Opcode(f.code.Instructions[f.ip])
		def, err := compiler.Get(op)
		if err != nil {
			return nil, DeveloperError{Message: err.Error()}
		}
		operand := 0
		if len(def.OperandWidths) > 0 {
			operand = int(compiler.ReadUint16(f.code.Instructions[f.ip+1:]))
		}
		size := 1
		for _, w := range def.OperandWidths {
			size += w
		}
		f.ip += size

		returned, result, err := vm.exec(op, operand)
		if err != nil {
			return nil, err
		}
		if returned && len(vm.frames) <= baseDepth {
			return result, nil
		}
	}
}

func (vm *VM) pop() (*pyobject.Object, error) {
	v, ok := vm.frame().stack.pop()
	if !ok {
		return nil, DeveloperError{Message: "operand stack underflow"}
	}
	return v, nil
}

// exec performs one instruction. It returns returned=true exactly when a
// frame was popped by OP_RETURN_VALUE or OP_END (result is the value handed
// back to the caller, or to Run if the popped frame was the bottom one).
func (vm *VM) exec(op compiler.Opcode, operand int) (returned bool, result *pyobject.Object, err error) {
	f := vm.frame()

	switch op {
	case compiler.OP_CONSTANT:
		f.stack.push(f.code.Constants[operand])

	case compiler.OP_POP:
		if _, err := vm.pop(); err != nil {
			return false, nil, err
		}

	case compiler.OP_GET_LOCAL:
		f.stack.push(f.locals[operand])

	case compiler.OP_SET_LOCAL:
		v, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		f.locals[operand] = v

	case compiler.OP_GET_GLOBAL:
		name := f.code.Names[operand]
		v, ok := vm.globals.Get(pyobject.NewStr(name))
		if !ok {
			return false, nil, pyobject.NewError(pyobject.EName, "name %q is not defined", name)
		}
		f.stack.push(v)

	case compiler.OP_SET_GLOBAL:
		v, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		vm.globals.Set(pyobject.NewStr(f.code.Names[operand]), v)

	case compiler.OP_ADD, compiler.OP_SUB, compiler.OP_MUL, compiler.OP_TRUEDIV,
		compiler.OP_FLOORDIV, compiler.OP_MOD, compiler.OP_POW,
		compiler.OP_BITAND, compiler.OP_BITOR, compiler.OP_BITXOR,
		compiler.OP_LSHIFT, compiler.OP_RSHIFT,
		compiler.OP_EQ, compiler.OP_NE, compiler.OP_LT, compiler.OP_LE, compiler.OP_GT, compiler.OP_GE:
		b, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		a, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		v, err := pyobject.Call(dunderFor(op), a, b)
		if err != nil {
			return false, nil, err
		}
		f.stack.push(v)

	case compiler.OP_IS, compiler.OP_ISNOT:
		b, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		a, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		same := pyobject.Is(a, b)
		if op == compiler.OP_ISNOT {
			same = !same
		}
		f.stack.push(pyobject.NewBool(same))

	case compiler.OP_IN, compiler.OP_NOTIN:
		container, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		item, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		v, err := pyobject.Contains(container, item)
		if err != nil {
			return false, nil, err
		}
		if op == compiler.OP_NOTIN {
			v = pyobject.NewBool(!pyobject.Truthy(v))
		}
		f.stack.push(v)

	case compiler.OP_NOT:
		a, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		f.stack.push(pyobject.Not(a))

	case compiler.OP_NEGATE, compiler.OP_POS, compiler.OP_INVERT:
		a, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		var v *pyobject.Object
		switch op {
		case compiler.OP_NEGATE:
			v, err = pyobject.Neg(a)
		case compiler.OP_POS:
			v, err = pyobject.Pos(a)
		case compiler.OP_INVERT:
			v, err = pyobject.Invert(a)
		}
		if err != nil {
			return false, nil, err
		}
		f.stack.push(v)

	case compiler.OP_JUMP:
		f.ip = operand

	case compiler.OP_JUMP_IF_FALSE:
		v, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		if !pyobject.Truthy(v) {
			f.ip = operand
		}

	case compiler.OP_JUMP_IF_FALSE_OR_POP:
		v, ok := f.stack.peek()
		if !ok {
			return false, nil, DeveloperError{Message: "operand stack underflow"}
		}
		if !pyobject.Truthy(v) {
			f.ip = operand
		} else {
			vm.pop()
		}

	case compiler.OP_JUMP_IF_TRUE_OR_POP:
		v, ok := f.stack.peek()
		if !ok {
			return false, nil, DeveloperError{Message: "operand stack underflow"}
		}
		if pyobject.Truthy(v) {
			f.ip = operand
		} else {
			vm.pop()
		}

	case compiler.OP_MAKE_FUNCTION:
		f.stack.push(f.code.Constants[operand])

	case compiler.OP_CALL_FUNCTION:
		args := make([]*pyobject.Object, operand)
		for i := operand - 1; i >= 0; i-- {
			v, err := vm.pop()
			if err != nil {
				return false, nil, err
			}
			args[i] = v
		}
		callee, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		if err := vm.call(callee, args); err != nil {
			return false, nil, err
		}

	case compiler.OP_RETURN_VALUE:
		v, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		vm.frames = vm.frames[:len(vm.frames)-1]
		if len(vm.frames) > 0 {
			vm.frame().stack.push(v)
		}
		return true, v, nil

	case compiler.OP_BUILD_LIST:
		items := make([]*pyobject.Object, operand)
		for i := operand - 1; i >= 0; i-- {
			v, err := vm.pop()
			if err != nil {
				return false, nil, err
			}
			items[i] = v
		}
		f.stack.push(pyobject.NewList(items))

	case compiler.OP_BUILD_DICT:
		keys := make([]*pyobject.Object, operand)
		values := make([]*pyobject.Object, operand)
		for i := operand - 1; i >= 0; i-- {
			v, err := vm.pop()
			if err != nil {
				return false, nil, err
			}
			k, err := vm.pop()
			if err != nil {
				return false, nil, err
			}
			keys[i], values[i] = k, v
		}
		f.stack.push(pyobject.NewDictObject(keys, values))

	case compiler.OP_LOAD_ATTR:
		recv, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		v, err := vm.loadAttr(recv, f.code.Names[operand])
		if err != nil {
			return false, nil, err
		}
		f.stack.push(v)

	case compiler.OP_ASSERT:
		msg, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		test, err := vm.pop()
		if err != nil {
			return false, nil, err
		}
		if !pyobject.Truthy(test) {
			if pyobject.Is(msg, pyobject.None()) {
				return false, nil, pyobject.NewError(pyobject.EAssertion, "")
			}
			return false, nil, pyobject.NewError(pyobject.EAssertion, "%s", pyobject.Str(msg))
		}

	case compiler.OP_END:
		vm.frames = vm.frames[:len(vm.frames)-1]
		return true, pyobject.None(), nil

	default:
		return false, nil, DeveloperError{Message: fmt.Sprintf("unhandled opcode %d", op)}
	}

	return false, nil, nil
}

// call invokes a Function object: native built-ins/bound methods run
// immediately, user-defined code pushes a new Frame for the main loop to
// pick up on its next iteration.
func (vm *VM) call(callee *pyobject.Object, args []*pyobject.Object) error {
	if callee.Kind != pyobject.KindFunction {
		return pyobject.NewError(pyobject.EType, "%q object is not callable", callee.Kind)
	}
	fp := callee.Payload().(*pyobject.FunctionPayload)
	if fp.Native != nil {
		v, err := fp.Native(args)
		if err != nil {
			return err
		}
		vm.frame().stack.push(v)
		return nil
	}

	code := fp.Code.(*compiler.Code)
	if len(args) != len(code.Params) {
		return pyobject.NewError(pyobject.EType, "%s() takes %d argument(s) (%d given)", fp.Name, len(code.Params), len(args))
	}
	if len(vm.frames) >= maxFrames {
		return pyobject.NewError(pyobject.ERecursion, "maximum recursion depth exceeded")
	}
	vm.frames = append(vm.frames, newFrame(code, args))
	return nil
}

func (vm *VM) loadAttr(recv *pyobject.Object, name string) (*pyobject.Object, error) {
	if recv.Kind == pyobject.KindModule {
		mp := recv.Payload().(*pyobject.ModulePayload)
		v, ok := mp.Globals.Get(pyobject.NewStr(name))
		if !ok {
			return nil, pyobject.NewError(pyobject.EAttribute, "module %q has no attribute %q", mp.Name, name)
		}
		return v, nil
	}
	if !pyobject.HasMethod(name) {
		return nil, pyobject.NewError(pyobject.EAttribute, "%q object has no attribute %q", recv.Kind, name)
	}
	return pyobject.NewBoundMethod(recv, name), nil
}

func dunderFor(op compiler.Opcode) string {
	switch op {
	case compiler.OP_ADD:
		return "__add__"
	case compiler.OP_SUB:
		return "__sub__"
	case compiler.OP_MUL:
		return "__mul__"
	case compiler.OP_TRUEDIV:
		return "__truediv__"
	case compiler.OP_FLOORDIV:
		return "__floordiv__"
	case compiler.OP_MOD:
		return "__mod__"
	case compiler.OP_POW:
		return "__pow__"
	case compiler.OP_BITAND:
		return "__and__"
	case compiler.OP_BITOR:
		return "__or__"
	case compiler.OP_BITXOR:
		return "__xor__"
	case compiler.OP_LSHIFT:
		return "__lshift__"
	case compiler.OP_RSHIFT:
		return "__rshift__"
	case compiler.OP_EQ:
		return "__eq__"
	case compiler.OP_NE:
		return "__ne__"
	case compiler.OP_LT:
		return "__lt__"
	case compiler.OP_LE:
		return "__le__"
	case compiler.OP_GT:
		return "__gt__"
	case compiler.OP_GE:
		return "__ge__"
	default:
		return ""
	}
}
