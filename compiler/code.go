// Package compiler walks a parsed ast.Module and emits bytecode for the vm
// to execute: one Opcode per instruction, operands encoded big-endian
// immediately after the opcode byte.
package compiler

import (
	"encoding/binary"
	"fmt"
	"strings"

	"nilan/pyobject"
)

// Opcode identifies a single bytecode instruction.
type Opcode byte

const (
	OP_CONSTANT Opcode = iota
	OP_POP

	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_GET_GLOBAL
	OP_SET_GLOBAL

	OP_ADD
	OP_SUB
	OP_MUL
	OP_TRUEDIV
	OP_FLOORDIV
	OP_MOD
	OP_POW

	OP_BITAND
	OP_BITOR
	OP_BITXOR
	OP_LSHIFT
	OP_RSHIFT

	OP_EQ
	OP_NE
	OP_LT
	OP_LE
	OP_GT
	OP_GE
	OP_IS
	OP_ISNOT
	OP_IN
	OP_NOTIN

	OP_NOT
	OP_NEGATE
	OP_POS
	OP_INVERT

	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_JUMP_IF_FALSE_OR_POP
	OP_JUMP_IF_TRUE_OR_POP

	OP_MAKE_FUNCTION
	OP_CALL_FUNCTION
	OP_RETURN_VALUE

	OP_BUILD_LIST
	OP_BUILD_DICT
	OP_LOAD_ATTR

	OP_ASSERT
	OP_END
)

// OpCodeDefinition names an opcode and the byte width of each of its
// operands, in order.
type OpCodeDefinition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*OpCodeDefinition{
	OP_CONSTANT: {"OP_CONSTANT", []int{2}},
	OP_POP:      {"OP_POP", []int{}},

	OP_GET_LOCAL:  {"OP_GET_LOCAL", []int{2}},
	OP_SET_LOCAL:  {"OP_SET_LOCAL", []int{2}},
	OP_GET_GLOBAL: {"OP_GET_GLOBAL", []int{2}},
	OP_SET_GLOBAL: {"OP_SET_GLOBAL", []int{2}},

	OP_ADD:      {"OP_ADD", []int{}},
	OP_SUB:      {"OP_SUB", []int{}},
	OP_MUL:      {"OP_MUL", []int{}},
	OP_TRUEDIV:  {"OP_TRUEDIV", []int{}},
	OP_FLOORDIV: {"OP_FLOORDIV", []int{}},
	OP_MOD:      {"OP_MOD", []int{}},
	OP_POW:      {"OP_POW", []int{}},

	OP_BITAND:  {"OP_BITAND", []int{}},
	OP_BITOR:   {"OP_BITOR", []int{}},
	OP_BITXOR:  {"OP_BITXOR", []int{}},
	OP_LSHIFT:  {"OP_LSHIFT", []int{}},
	OP_RSHIFT:  {"OP_RSHIFT", []int{}},

	OP_EQ:    {"OP_EQ", []int{}},
	OP_NE:    {"OP_NE", []int{}},
	OP_LT:    {"OP_LT", []int{}},
	OP_LE:    {"OP_LE", []int{}},
	OP_GT:    {"OP_GT", []int{}},
	OP_GE:    {"OP_GE", []int{}},
	OP_IS:    {"OP_IS", []int{}},
	OP_ISNOT: {"OP_ISNOT", []int{}},
	OP_IN:    {"OP_IN", []int{}},
	OP_NOTIN: {"OP_NOTIN", []int{}},

	OP_NOT:    {"OP_NOT", []int{}},
	OP_NEGATE: {"OP_NEGATE", []int{}},
	OP_POS:    {"OP_POS", []int{}},
	OP_INVERT: {"OP_INVERT", []int{}},

	OP_JUMP:                  {"OP_JUMP", []int{2}},
	OP_JUMP_IF_FALSE:         {"OP_JUMP_IF_FALSE", []int{2}},
	OP_JUMP_IF_FALSE_OR_POP:  {"OP_JUMP_IF_FALSE_OR_POP", []int{2}},
	OP_JUMP_IF_TRUE_OR_POP:   {"OP_JUMP_IF_TRUE_OR_POP", []int{2}},

	OP_MAKE_FUNCTION: {"OP_MAKE_FUNCTION", []int{2}},
	OP_CALL_FUNCTION: {"OP_CALL_FUNCTION", []int{2}},
	OP_RETURN_VALUE:  {"OP_RETURN_VALUE", []int{}},

	OP_BUILD_LIST: {"OP_BUILD_LIST", []int{2}},
	OP_BUILD_DICT: {"OP_BUILD_DICT", []int{2}},
	OP_LOAD_ATTR:  {"OP_LOAD_ATTR", []int{2}},

	OP_ASSERT: {"OP_ASSERT", []int{}},
	OP_END:    {"OP_END", []int{}},
}

// Get looks up an opcode's definition, the way the vm's fetch-decode loop
// needs to in order to know how many operand bytes follow.
func Get(op Opcode) (*OpCodeDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode %d undefined", op)
	}
	return def, nil
}

// MakeInstruction encodes one opcode plus its operands into their wire
// form: opcode byte, then each operand big-endian at its declared width.
func MakeInstruction(op Opcode, operands ...int) []byte {
	def, ok := definitions[op]
	if !ok {
		return []byte{}
	}
	width := 1
	for _, w := range def.OperandWidths {
		width += w
	}
	instruction := make([]byte, width)
	instruction[0] = byte(op)
	offset := 1
	for i, operand := range operands {
		switch def.OperandWidths[i] {
		case 2:
			binary.BigEndian.PutUint16(instruction[offset:], uint16(operand))
		case 1:
			instruction[offset] = byte(operand)
		}
		offset += def.OperandWidths[i]
	}
	return instruction
}

func ReadUint16(ins []byte) uint16 { return binary.BigEndian.Uint16(ins) }

// Code is the compiled form of one function body (or the top-level module,
// treated as a zero-parameter function). Constants and Names are separate
// pools: Constants holds literal values pushed by OP_CONSTANT, Names holds
// the identifier strings OP_GET_GLOBAL/OP_SET_GLOBAL/OP_LOAD_ATTR index
// into. Names is deduplicated, so a repeated name costs one pool slot;
// Constants is not, so each literal occurrence gets its own slot.
type Code struct {
	Name         string
	Params       []string
	NumLocals    int
	Instructions []byte
	Constants    []*pyobject.Object
	Names        []string
}

// Disassemble renders Instructions in a human-readable form, used by the
// CLI's emit subcommand.
func Disassemble(c *Code) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s):\n", c.Name, strings.Join(c.Params, ", "))
	for ip := 0; ip < len(c.Instructions); {
		op := Opcode(c.Instructions[ip])
		def, err := Get(op)
		if err != nil {
			fmt.Fprintf(&b, "%04d ERROR: %s\n", ip, err)
			ip++
			continue
		}
		operands, read := readOperands(def, c.Instructions[ip+1:])
		fmt.Fprintf(&b, "%04d %-24s%s\n", ip, def.Name, formatOperands(c, op, operands))
		ip += 1 + read
	}
	return b.String()
}

func readOperands(def *OpCodeDefinition, ins []byte) ([]int, int) {
	operands := make([]int, len(def.OperandWidths))
	offset := 0
	for i, width := range def.OperandWidths {
		if width == 2 {
			operands[i] = int(ReadUint16(ins[offset:]))
		}
		offset += width
	}
	return operands, offset
}

func formatOperands(c *Code, op Opcode, operands []int) string {
	if len(operands) == 0 {
		return ""
	}
	switch op {
	case OP_CONSTANT, OP_MAKE_FUNCTION:
		if operands[0] < len(c.Constants) {
			return fmt.Sprintf("%d (%s)", operands[0], pyobject.Repr(c.Constants[operands[0]]))
		}
	case OP_GET_GLOBAL, OP_SET_GLOBAL, OP_LOAD_ATTR:
		if operands[0] < len(c.Names) {
			return fmt.Sprintf("%d (%s)", operands[0], c.Names[operands[0]])
		}
	}
	return fmt.Sprint(operands[0])
}
