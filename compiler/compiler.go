package compiler

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"nilan/ast"
	"nilan/pyobject"
	"nilan/token"
)

// local tracks one name bound within the function currently being compiled.
// Unlike a block-scoped language, every Assign inside a function body binds
// a function-local slot regardless of how deeply the Block nests it, since
// this language has no block-scoped statement (if/while/for are Non-goals,
// so Block only ever appears as a function body).
type local struct {
	name string
	slot int
}

// Compiler walks one function body (or the top-level module, treated as a
// zero-parameter function named "<module>") and emits its Code. Nested
// FunctionDef/Lambda bodies compile under their own child Compiler; names
// not found there fall through to OP_GET_GLOBAL/OP_SET_GLOBAL, since
// closures over an enclosing function's locals are a Non-goal (global and
// nonlocal declarations are recognized but rejected at compile time).
type Compiler struct {
	code    Code
	locals  []local
	isFunc  bool
}

// NewModuleCompiler creates the compiler for the top-level module.
func NewModuleCompiler() *Compiler {
	return &Compiler{code: Code{Name: "<module>"}}
}

func newFunctionCompiler(name string, params []token.Token) *Compiler {
	c := &Compiler{code: Code{Name: name}, isFunc: true}
	for _, p := range params {
		c.declareLocal(p.Lexeme)
	}
	return c
}

// Compile compiles a full module body into its Code, recovering
// SemanticError/DeveloperError panics raised anywhere during the walk and
// returning them as the error.
func Compile(module ast.Module) (c *Code, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case SemanticError:
				err = v
			case DeveloperError:
				err = v
			default:
				panic(r)
			}
		}
	}()

	comp := NewModuleCompiler()
	for _, stmt := range module.Body {
		stmt.Accept(comp)
	}
	comp.emitReturnNone()
	comp.emit(OP_END)
	comp.code.NumLocals = len(comp.locals)
	return &comp.code, nil
}

func (c *Compiler) emit(op Opcode, operands ...int) int {
	pos := len(c.code.Instructions)
	c.code.Instructions = append(c.code.Instructions, MakeInstruction(op, operands...)...)
	return pos
}

func (c *Compiler) emitPlaceholderJump(op Opcode) int {
	return c.emit(op, 0)
}

// patchJump overwrites a previously emitted jump's 2-byte operand with the
// current instruction length, after the opcode byte at jumpPos.
func (c *Compiler) patchJump(jumpPos int) {
	target := len(c.code.Instructions)
	operandPos := jumpPos + 1
	binary.BigEndian.PutUint16(c.code.Instructions[operandPos:], uint16(target))
}

func (c *Compiler) addConstant(v *pyobject.Object) int {
	c.code.Constants = append(c.code.Constants, v)
	return len(c.code.Constants) - 1
}

func (c *Compiler) addName(name string) int {
	for i, n := range c.code.Names {
		if n == name {
			return i
		}
	}
	c.code.Names = append(c.code.Names, name)
	return len(c.code.Names) - 1
}

func (c *Compiler) declareLocal(name string) int {
	for _, l := range c.locals {
		if l.name == name {
			panic(SemanticError{Message: fmt.Sprintf("redefinition of variable %q", name)})
		}
	}
	slot := len(c.locals)
	c.locals = append(c.locals, local{name: name, slot: slot})
	return slot
}

func (c *Compiler) resolveLocal(name string) int {
	for _, l := range c.locals {
		if l.name == name {
			return l.slot
		}
	}
	return -1
}

func (c *Compiler) emitReturnNone() {
	idx := c.addConstant(pyobject.None())
	c.emit(OP_CONSTANT, idx)
	c.emit(OP_RETURN_VALUE)
}

// loadName emits whatever loads the current value of an identifier:
// OP_GET_LOCAL if it is a local (or a parameter) of the function currently
// being compiled, OP_GET_GLOBAL otherwise. Module-scope compilation has no
// locals, so every name there resolves as global.
func (c *Compiler) loadName(name string) {
	if c.isFunc {
		if slot := c.resolveLocal(name); slot != -1 {
			c.emit(OP_GET_LOCAL, slot)
			return
		}
	}
	c.emit(OP_GET_GLOBAL, c.addName(name))
}

// storeName emits whatever stores the top-of-stack value into an
// identifier. A local binds on its first assignment within the function;
// later assignments to the same name reuse its slot. At module scope every
// assignment is global.
func (c *Compiler) storeName(name string) {
	if c.isFunc {
		slot := c.resolveLocal(name)
		if slot == -1 {
			slot = c.declareLocal(name)
		}
		c.emit(OP_SET_LOCAL, slot)
		return
	}
	c.emit(OP_SET_GLOBAL, c.addName(name))
}

// ---- statements ----

func (c *Compiler) VisitModule(m ast.Module) any {
	for _, stmt := range m.Body {
		stmt.Accept(c)
	}
	return nil
}

func (c *Compiler) VisitFunctionDef(f ast.FunctionDef) any {
	fc := newFunctionCompiler(f.Name.Lexeme, f.Params)
	for _, stmt := range f.Body.Statements {
		stmt.Accept(fc)
	}
	fc.emitReturnNone()
	fc.emit(OP_END)
	fc.code.NumLocals = len(fc.locals)
	for _, p := range f.Params {
		fc.code.Params = append(fc.code.Params, p.Lexeme)
	}

	fnObj := pyobject.NewFunction(f.Name.Lexeme, &fc.code, nil)
	idx := c.addConstant(fnObj)
	c.emit(OP_MAKE_FUNCTION, idx)
	c.storeName(f.Name.Lexeme)
	return nil
}

func (c *Compiler) VisitBlock(b ast.Block) any {
	for _, stmt := range b.Statements {
		stmt.Accept(c)
	}
	return nil
}

func (c *Compiler) VisitReturn(r ast.Return) any {
	if r.Value != nil {
		r.Value.Accept(c)
	} else {
		idx := c.addConstant(pyobject.None())
		c.emit(OP_CONSTANT, idx)
	}
	c.emit(OP_RETURN_VALUE)
	return nil
}

func (c *Compiler) VisitAssign(a ast.Assign) any {
	a.Value.Accept(c)
	name, ok := a.Target.(ast.Name)
	if !ok {
		panic(SemanticError{Message: "cannot assign to this expression"})
	}
	c.storeName(name.Tok.Lexeme)
	return nil
}

func (c *Compiler) VisitAugAssign(a ast.AugAssign) any {
	name, ok := a.Target.(ast.Name)
	if !ok {
		panic(SemanticError{Message: "cannot assign to this expression"})
	}
	c.loadName(name.Tok.Lexeme)
	a.Value.Accept(c)
	c.emitBinaryOp(augToBinaryOperator(a.Operator))
	c.storeName(name.Tok.Lexeme)
	return nil
}

func (c *Compiler) VisitAssert(a ast.Assert) any {
	a.Test.Accept(c)
	if a.Msg != nil {
		a.Msg.Accept(c)
	} else {
		idx := c.addConstant(pyobject.None())
		c.emit(OP_CONSTANT, idx)
	}
	c.emit(OP_ASSERT)
	return nil
}

func (c *Compiler) VisitExpressionStmt(e ast.ExpressionStmt) any {
	e.Expression.Accept(c)
	c.emit(OP_POP)
	return nil
}

func (c *Compiler) VisitNewlineMarker(n ast.NewlineMarker) any { return nil }

func (c *Compiler) VisitPass(p ast.Pass) any { return nil }

func (c *Compiler) VisitDelete(d ast.Delete) any {
	panic(SemanticError{Message: "del is not implemented"})
}

func (c *Compiler) VisitClassDef(cd ast.ClassDef) any {
	panic(SemanticError{Message: "class definitions are not implemented"})
}

func (c *Compiler) VisitImport(i ast.Import) any {
	panic(SemanticError{Message: "import is not implemented"})
}

func (c *Compiler) VisitGlobal(g ast.Global) any {
	panic(SemanticError{Message: "global is not implemented"})
}

func (c *Compiler) VisitNonlocal(n ast.Nonlocal) any {
	panic(SemanticError{Message: "nonlocal is not implemented"})
}

func (c *Compiler) VisitBreak(b ast.Break) any {
	panic(SemanticError{Message: "break outside loop"})
}

func (c *Compiler) VisitContinue(ct ast.Continue) any {
	panic(SemanticError{Message: "continue outside loop"})
}

// ---- expressions ----

func (c *Compiler) VisitConstant(ct ast.Constant) any {
	c.emit(OP_CONSTANT, c.addConstant(constantToObject(ct)))
	return nil
}

func (c *Compiler) VisitNameConstant(nc ast.NameConstant) any {
	var obj *pyobject.Object
	switch nc.Kind {
	case token.TRUE:
		obj = pyobject.NewBool(true)
	case token.FALSE:
		obj = pyobject.NewBool(false)
	default:
		obj = pyobject.None()
	}
	c.emit(OP_CONSTANT, c.addConstant(obj))
	return nil
}

func (c *Compiler) VisitName(n ast.Name) any {
	c.loadName(n.Tok.Lexeme)
	return nil
}

func (c *Compiler) VisitUnaryOp(u ast.UnaryOp) any {
	u.Operand.Accept(c)
	switch u.Operator.Kind {
	case token.MINUS:
		c.emit(OP_NEGATE)
	case token.PLUS:
		c.emit(OP_POS)
	case token.TILDE:
		c.emit(OP_INVERT)
	case token.NOT:
		c.emit(OP_NOT)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled unary operator %s", u.Operator.Kind)})
	}
	return nil
}

func (c *Compiler) VisitBinaryOp(b ast.BinaryOp) any {
	switch b.Operator.Kind {
	case token.AND:
		b.Left.Accept(c)
		end := c.emitPlaceholderJump(OP_JUMP_IF_FALSE_OR_POP)
		b.Right.Accept(c)
		c.patchJump(end)
		return nil
	case token.OR:
		b.Left.Accept(c)
		end := c.emitPlaceholderJump(OP_JUMP_IF_TRUE_OR_POP)
		b.Right.Accept(c)
		c.patchJump(end)
		return nil
	}

	b.Left.Accept(c)
	b.Right.Accept(c)
	c.emitBinaryOp(b.Operator.Kind)
	return nil
}

func (c *Compiler) emitBinaryOp(kind token.Kind) {
	switch kind {
	case token.PLUS:
		c.emit(OP_ADD)
	case token.MINUS:
		c.emit(OP_SUB)
	case token.STAR:
		c.emit(OP_MUL)
	case token.SLASH:
		c.emit(OP_TRUEDIV)
	case token.DOUBLESLASH:
		c.emit(OP_FLOORDIV)
	case token.PERCENT:
		c.emit(OP_MOD)
	case token.DOUBLESTAR:
		c.emit(OP_POW)
	case token.AMP:
		c.emit(OP_BITAND)
	case token.PIPE:
		c.emit(OP_BITOR)
	case token.CARET:
		c.emit(OP_BITXOR)
	case token.LSHIFT:
		c.emit(OP_LSHIFT)
	case token.RSHIFT:
		c.emit(OP_RSHIFT)
	case token.EQ:
		c.emit(OP_EQ)
	case token.NOTEQ:
		c.emit(OP_NE)
	case token.LESS:
		c.emit(OP_LT)
	case token.LESSEQ:
		c.emit(OP_LE)
	case token.GREATER:
		c.emit(OP_GT)
	case token.GREATEREQ:
		c.emit(OP_GE)
	case token.IS:
		c.emit(OP_IS)
	case token.ISNOT:
		c.emit(OP_ISNOT)
	case token.IN:
		c.emit(OP_IN)
	case token.NOTIN:
		c.emit(OP_NOTIN)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled binary operator %s", kind)})
	}
}

// augToBinaryOperator maps an AugAssign's Operator token to the plain
// binary-operator kind that expresses the same arithmetic, since `x += y`
// compiles as `x = x + y`.
func augToBinaryOperator(tok token.Token) token.Kind {
	switch tok.Kind {
	case token.PLUSEQ:
		return token.PLUS
	case token.MINUSEQ:
		return token.MINUS
	case token.STAREQ:
		return token.STAR
	case token.SLASHEQ:
		return token.SLASH
	case token.DOUBLESLASHEQ:
		return token.DOUBLESLASH
	case token.PERCENTEQ:
		return token.PERCENT
	case token.DOUBLESTAREQ:
		return token.DOUBLESTAR
	case token.AMPEQ:
		return token.AMP
	case token.PIPEEQ:
		return token.PIPE
	case token.CARETEQ:
		return token.CARET
	case token.LSHIFTEQ:
		return token.LSHIFT
	case token.RSHIFTEQ:
		return token.RSHIFT
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled augmented-assignment operator %s", tok.Kind)})
	}
}

func (c *Compiler) VisitConditional(cd ast.Conditional) any {
	cd.Test.Accept(c)
	elseJump := c.emitPlaceholderJump(OP_JUMP_IF_FALSE)
	cd.Body.Accept(c)
	endJump := c.emitPlaceholderJump(OP_JUMP)
	c.patchJump(elseJump)
	cd.Orelse.Accept(c)
	c.patchJump(endJump)
	return nil
}

func (c *Compiler) VisitLambda(l ast.Lambda) any {
	fc := newFunctionCompiler("<lambda>", l.Params)
	l.Body.Accept(fc)
	fc.emit(OP_RETURN_VALUE)
	fc.emit(OP_END)
	fc.code.NumLocals = len(fc.locals)
	for _, p := range l.Params {
		fc.code.Params = append(fc.code.Params, p.Lexeme)
	}

	fnObj := pyobject.NewFunction("<lambda>", &fc.code, nil)
	c.emit(OP_MAKE_FUNCTION, c.addConstant(fnObj))
	return nil
}

func (c *Compiler) VisitCall(call ast.Call) any {
	call.Func.Accept(c)
	for _, arg := range call.Args {
		arg.Accept(c)
	}
	c.emit(OP_CALL_FUNCTION, len(call.Args))
	return nil
}

func (c *Compiler) VisitAttribute(a ast.Attribute) any {
	a.Value.Accept(c)
	c.emit(OP_LOAD_ATTR, c.addName(a.Attr.Lexeme))
	return nil
}

func (c *Compiler) VisitListLit(l ast.ListLit) any {
	for _, elt := range l.Elts {
		elt.Accept(c)
	}
	c.emit(OP_BUILD_LIST, len(l.Elts))
	return nil
}

func (c *Compiler) VisitDictLit(d ast.DictLit) any {
	for i := range d.Keys {
		d.Keys[i].Accept(c)
		d.Values[i].Accept(c)
	}
	c.emit(OP_BUILD_DICT, len(d.Keys))
	return nil
}

// constantToObject wraps a parser-decoded literal (produced by the lexer's
// number/string scanning) as a runtime object, the one place the compiler
// crosses from the AST's raw Go values into the object model.
func constantToObject(ct ast.Constant) *pyobject.Object {
	switch v := ct.Value.(type) {
	case *big.Int:
		return pyobject.NewInt(v)
	case float64:
		return pyobject.NewFloat(v)
	case string:
		return pyobject.NewStr(v)
	case []byte:
		return pyobject.NewBytes(v)
	case complex128:
		panic(SemanticError{Message: "complex number literals are not implemented"})
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unrecognized constant literal type %T", ct.Value)})
	}
}
