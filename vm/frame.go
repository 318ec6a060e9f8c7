package vm

import (
	"nilan/compiler"
	"nilan/pyobject"
)

// Frame is one activation record: a function call in progress (or, at the
// bottom of the call stack, the top-level module body treated as a
// zero-argument call). Each frame owns its own operand stack and local
// variable slots, addressed by OP_GET_LOCAL/OP_SET_LOCAL's slot operand.
type Frame struct {
	code   *compiler.Code
	locals []*pyobject.Object
	stack  Stack
	ip     int
}

func newFrame(code *compiler.Code, args []*pyobject.Object) *Frame {
	locals := make([]*pyobject.Object, code.NumLocals)
	for i := range args {
		if i < len(locals) {
			locals[i] = args[i]
		}
	}
	for i := range locals {
		if locals[i] == nil {
			locals[i] = pyobject.None()
		}
	}
	return &Frame{code: code, locals: locals}
}
