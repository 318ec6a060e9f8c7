package ast

import "nilan/token"

// Constant wraps an owned token carrying a decoded literal value (number,
// string or bytes). Tok is copied out of the parser's token stream so the
// node outlives the source buffer it was scanned from.
type Constant struct {
	Tok   token.Token
	Value any
}

func (c Constant) Accept(v ExprVisitor) any { return v.VisitConstant(c) }

// NameConstant represents one of the three reserved singleton values True,
// False and None. Kept distinct from Constant because its value does not
// come from the lexer's literal decoding, only from the token's kind.
type NameConstant struct {
	Tok  token.Token
	Kind token.Kind
}

func (nc NameConstant) Accept(v ExprVisitor) any { return v.VisitNameConstant(nc) }

// Name is a reference to a previously bound name: a load in expression
// position, or the target of an Assign/AugAssign statement.
type Name struct {
	Tok token.Token
}

func (n Name) Accept(v ExprVisitor) any { return v.VisitName(n) }

// UnaryOp applies a single prefix operator (-, not, ~) to Operand. Operator
// carries the originating token so the compiler can discriminate it without
// re-deriving the operator from a string.
type UnaryOp struct {
	Operator token.Token
	Operand  Expr
}

func (u UnaryOp) Accept(v ExprVisitor) any { return v.VisitUnaryOp(u) }

// BinaryOp covers every infix operator produced by the precedence ladder:
// arithmetic, comparison, is/is not, in/not in, and/or, bitwise, shifts.
type BinaryOp struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (b BinaryOp) Accept(v ExprVisitor) any { return v.VisitBinaryOp(b) }

// Conditional is the ternary expression `Body if Test else Orelse`.
type Conditional struct {
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (c Conditional) Accept(v ExprVisitor) any { return v.VisitConditional(c) }

// Lambda is an anonymous single-expression function.
type Lambda struct {
	Params []token.Token
	Body   Expr
}

func (l Lambda) Accept(v ExprVisitor) any { return v.VisitLambda(l) }

// Call applies Func to a list of positional argument expressions.
type Call struct {
	Func Expr
	Args []Expr
}

func (c Call) Accept(v ExprVisitor) any { return v.VisitCall(c) }

// Attribute is `Value.Attr`.
type Attribute struct {
	Value Expr
	Attr  token.Token
}

func (a Attribute) Accept(v ExprVisitor) any { return v.VisitAttribute(a) }

// ListLit is a `[elt, elt, ...]` literal.
type ListLit struct {
	Elts []Expr
}

func (l ListLit) Accept(v ExprVisitor) any { return v.VisitListLit(l) }

// DictLit is a `{key: value, ...}` literal. Keys and Values are parallel
// slices of equal length.
type DictLit struct {
	Keys   []Expr
	Values []Expr
}

func (d DictLit) Accept(v ExprVisitor) any { return v.VisitDictLit(d) }
