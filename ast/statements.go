package ast

import "nilan/token"

// Module is the root node: an ordered sequence of top-level statements.
type Module struct {
	Body []Stmt
}

func (m Module) Accept(v StmtVisitor) any { return v.VisitModule(m) }

// FunctionDef captures a function's name, parameter list and body block.
type FunctionDef struct {
	Name   token.Token
	Params []token.Token
	Body   Block
}

func (f FunctionDef) Accept(v StmtVisitor) any { return v.VisitFunctionDef(f) }

// Block is a suite bracketed by the preprocessor's synthetic
// BLOCKSTART/BLOCKEND tokens, holding a sequence of statements.
type Block struct {
	Statements []Stmt
}

func (b Block) Accept(v StmtVisitor) any { return v.VisitBlock(b) }

// Return is `return` or `return Value`. Value is nil for a bare return.
type Return struct {
	Tok   token.Token
	Value Expr
}

func (r Return) Accept(v StmtVisitor) any { return v.VisitReturn(r) }

// Assign is `Target = Value`.
type Assign struct {
	Target Expr
	Value  Expr
}

func (a Assign) Accept(v StmtVisitor) any { return v.VisitAssign(a) }

// AugAssign is `Target Operator= Value` (+=, -=, and the rest).
type AugAssign struct {
	Target   Expr
	Operator token.Token
	Value    Expr
}

func (a AugAssign) Accept(v StmtVisitor) any { return v.VisitAugAssign(a) }

// Assert is `assert Test` or `assert Test, Msg`. Msg is nil when absent.
type Assert struct {
	Test Expr
	Msg  Expr
}

func (a Assert) Accept(v StmtVisitor) any { return v.VisitAssert(a) }

// ExpressionStmt evaluates Expression and discards the result.
type ExpressionStmt struct {
	Expression Expr
}

func (e ExpressionStmt) Accept(v StmtVisitor) any { return v.VisitExpressionStmt(e) }

// NewlineMarker is a statement-level placeholder for a blank logical line;
// the compiler emits nothing for it.
type NewlineMarker struct{}

func (n NewlineMarker) Accept(v StmtVisitor) any { return v.VisitNewlineMarker(n) }

// The following are Non-goal stubs: the parser recognizes their leading
// keyword and produces a node carrying just enough to report a meaningful
// "not implemented" error at compile time, but never gives them real
// semantics (classes with inheritance, imports, global/nonlocal scoping,
// and for/while loops are explicitly out of scope).

// Delete is the stub for `del target`.
type Delete struct {
	Tok     token.Token
	Targets []Expr
}

func (d Delete) Accept(v StmtVisitor) any { return v.VisitDelete(d) }

// ClassDef is the stub for `class Name: ...`.
type ClassDef struct {
	Tok  token.Token
	Name token.Token
	Body Block
}

func (c ClassDef) Accept(v StmtVisitor) any { return v.VisitClassDef(c) }

// Import is the stub for `import name`.
type Import struct {
	Tok   token.Token
	Names []token.Token
}

func (i Import) Accept(v StmtVisitor) any { return v.VisitImport(i) }

// Global is the stub for `global name, ...`.
type Global struct {
	Tok   token.Token
	Names []token.Token
}

func (g Global) Accept(v StmtVisitor) any { return v.VisitGlobal(g) }

// Nonlocal is the stub for `nonlocal name, ...`.
type Nonlocal struct {
	Tok   token.Token
	Names []token.Token
}

func (n Nonlocal) Accept(v StmtVisitor) any { return v.VisitNonlocal(n) }

// Pass is the stub for `pass`.
type Pass struct {
	Tok token.Token
}

func (p Pass) Accept(v StmtVisitor) any { return v.VisitPass(p) }

// Break is the stub for `break`.
type Break struct {
	Tok token.Token
}

func (b Break) Accept(v StmtVisitor) any { return v.VisitBreak(b) }

// Continue is the stub for `continue`.
type Continue struct {
	Tok token.Token
}

func (c Continue) Accept(v StmtVisitor) any { return v.VisitContinue(c) }
