// Package ast defines the abstract syntax tree produced by the parser: a
// module is an ordered sequence of statements, statements do not produce a
// value, expressions do. Both families follow the visitor pattern so new
// operations (compiling, printing) can be added without touching the node
// types themselves.
package ast

// ExprVisitor is implemented by anything that operates over expression
// nodes (the compiler, an AST printer). One method per expression variant.
type ExprVisitor interface {
	VisitConstant(c Constant) any
	VisitNameConstant(nc NameConstant) any
	VisitName(n Name) any
	VisitUnaryOp(u UnaryOp) any
	VisitBinaryOp(b BinaryOp) any
	VisitConditional(c Conditional) any
	VisitLambda(l Lambda) any
	VisitCall(c Call) any
	VisitAttribute(a Attribute) any
	VisitListLit(l ListLit) any
	VisitDictLit(d DictLit) any
}

// StmtVisitor is implemented by anything that operates over statement
// nodes. One method per statement variant, including the Non-goal stubs
// (ClassDef, Import, Global, Nonlocal, Delete, Pass, Break, Continue) which
// the parser still produces nodes for even though the compiler rejects them.
type StmtVisitor interface {
	VisitModule(m Module) any
	VisitFunctionDef(f FunctionDef) any
	VisitBlock(b Block) any
	VisitReturn(r Return) any
	VisitAssign(a Assign) any
	VisitAugAssign(a AugAssign) any
	VisitAssert(a Assert) any
	VisitExpressionStmt(e ExpressionStmt) any
	VisitNewlineMarker(n NewlineMarker) any
	VisitDelete(d Delete) any
	VisitClassDef(c ClassDef) any
	VisitImport(i Import) any
	VisitGlobal(g Global) any
	VisitNonlocal(n Nonlocal) any
	VisitPass(p Pass) any
	VisitBreak(b Break) any
	VisitContinue(c Continue) any
}

// Expr is the base interface for every expression node.
type Expr interface {
	Accept(v ExprVisitor) any
}

// Stmt is the base interface for every statement node.
type Stmt interface {
	Accept(v StmtVisitor) any
}
