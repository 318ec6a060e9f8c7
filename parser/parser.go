// Package parser implements a recursive-descent parser over the block
// preprocessor's phase-2 token stream, producing an ast.Module. It follows
// the teacher's shape: a position cursor over a token slice, peek/previous/
// advance/isMatch/consume primitives, and an explicit precedence ladder
// rather than a Pratt table.
package parser

import (
	"fmt"

	"nilan/ast"
	"nilan/token"
)

// augAssignOps is the set of augmented-assignment operator token kinds.
var augAssignOps = map[token.Kind]bool{
	token.PLUSEQ: true, token.MINUSEQ: true, token.STAREQ: true,
	token.SLASHEQ: true, token.DOUBLESLASHEQ: true, token.PERCENTEQ: true,
	token.DOUBLESTAREQ: true, token.AMPEQ: true, token.PIPEEQ: true,
	token.CARETEQ: true, token.LSHIFTEQ: true, token.RSHIFTEQ: true,
}

// Parser holds a token slice and a position cursor, mirroring the teacher's
// Parser. The position is always one unit ahead of the token last consumed.
type Parser struct {
	tokens   []token.Token
	position int
	errors   []error
}

// New constructs a Parser over a phase-2 token stream (post block
// preprocessing).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.position]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.position + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.position-1]
}

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) isFinished() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) checkType(kind token.Kind) bool {
	if p.isFinished() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) isMatch(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.checkType(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.checkType(kind) {
		return p.advance(), nil
	}
	cur := p.peek()
	return cur, newSyntaxError(cur.Line, cur.Column, message)
}

// Parse parses the whole token stream into an ast.Module, collecting errors
// rather than aborting on the first one: after a failing statement the
// parser resynchronizes at the next NEWLINE and keeps going.
func (p *Parser) Parse() (ast.Module, []error) {
	var body []ast.Stmt
	for !p.isFinished() {
		stmt, err := p.statement()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		body = append(body, stmt)
	}
	return ast.Module{Body: body}, p.errors
}

func (p *Parser) synchronize() {
	for !p.isFinished() && p.peek().Kind != token.NEWLINE {
		p.advance()
	}
	if !p.isFinished() {
		p.advance()
	}
}

// statement parses one statement, consuming any trailing NEWLINE.
func (p *Parser) statement() (ast.Stmt, error) {
	var stmt ast.Stmt
	var err error

	switch {
	case p.isMatch(token.NEWLINE):
		return ast.NewlineMarker{}, nil
	case p.isMatch(token.DEF):
		return p.functionDef()
	case p.isMatch(token.RETURN):
		stmt, err = p.returnStmt()
	case p.isMatch(token.ASSERT):
		stmt, err = p.assertStmt()
	case p.isMatch(token.PASS):
		stmt = ast.Pass{Tok: p.previous()}
	case p.isMatch(token.BREAK):
		stmt = ast.Break{Tok: p.previous()}
	case p.isMatch(token.CONTINUE):
		stmt = ast.Continue{Tok: p.previous()}
	case p.isMatch(token.DEL):
		stmt, err = p.deleteStmt()
	case p.isMatch(token.CLASS):
		return p.classDef()
	case p.isMatch(token.IMPORT):
		stmt, err = p.importStmt()
	case p.isMatch(token.GLOBAL):
		stmt, err = p.nameListStmt(func(tok token.Token, names []token.Token) ast.Stmt {
			return ast.Global{Tok: tok, Names: names}
		})
	case p.isMatch(token.NONLOCAL):
		stmt, err = p.nameListStmt(func(tok token.Token, names []token.Token) ast.Stmt {
			return ast.Nonlocal{Tok: tok, Names: names}
		})
	default:
		stmt, err = p.exprOrAssignStmt()
	}
	if err != nil {
		return nil, err
	}
	return stmt, p.endOfStatement()
}

// endOfStatement consumes the NEWLINE that should follow a simple statement,
// tolerating EOF/BLOCKEND for the last statement of a suite or module.
func (p *Parser) endOfStatement() error {
	if p.isMatch(token.NEWLINE) {
		return nil
	}
	if p.checkType(token.EOF) || p.checkType(token.BLOCKEND) {
		return nil
	}
	cur := p.peek()
	return newSyntaxError(cur.Line, cur.Column, fmt.Sprintf("expected newline, got %s", cur.Kind))
}

// suite parses a function or class body: either a `BLOCKSTART` ... `BLOCKEND`
// bracketed sequence of statements, or (for a one-liner) a single simple
// statement on the same line.
func (p *Parser) suite() (ast.Block, error) {
	if p.isMatch(token.NEWLINE) {
		if _, err := p.consume(token.BLOCKSTART, "expected an indented block"); err != nil {
			return ast.Block{}, err
		}
		var statements []ast.Stmt
		for !p.checkType(token.BLOCKEND) && !p.isFinished() {
			stmt, err := p.statement()
			if err != nil {
				p.errors = append(p.errors, err)
				p.synchronize()
				continue
			}
			statements = append(statements, stmt)
		}
		if _, err := p.consume(token.BLOCKEND, "expected end of block"); err != nil {
			return ast.Block{}, err
		}
		return ast.Block{Statements: statements}, nil
	}
	stmt, err := p.statement()
	if err != nil {
		return ast.Block{}, err
	}
	return ast.Block{Statements: []ast.Stmt{stmt}}, nil
}

func (p *Parser) functionDef() (ast.Stmt, error) {
	name, err := p.consume(token.IDENT, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.checkType(token.RPAREN) {
		for {
			param, err := p.consume(token.IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.isMatch(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after parameter list"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON, "expected ':' after function signature"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	return ast.FunctionDef{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) classDef() (ast.Stmt, error) {
	tok := p.previous()
	name, err := p.consume(token.IDENT, "expected class name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON, "expected ':' after class name"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	return ast.ClassDef{Tok: tok, Name: name, Body: body}, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	tok := p.previous()
	if p.checkType(token.NEWLINE) || p.checkType(token.EOF) || p.checkType(token.BLOCKEND) {
		return ast.Return{Tok: tok}, nil
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.Return{Tok: tok, Value: value}, nil
}

func (p *Parser) assertStmt() (ast.Stmt, error) {
	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	var msg ast.Expr
	if p.isMatch(token.COMMA) {
		msg, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	return ast.Assert{Test: test, Msg: msg}, nil
}

func (p *Parser) deleteStmt() (ast.Stmt, error) {
	tok := p.previous()
	var targets []ast.Expr
	for {
		target, err := p.expression()
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
		if !p.isMatch(token.COMMA) {
			break
		}
	}
	return ast.Delete{Tok: tok, Targets: targets}, nil
}

func (p *Parser) importStmt() (ast.Stmt, error) {
	tok := p.previous()
	var names []token.Token
	for {
		name, err := p.consume(token.IDENT, "expected module name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.isMatch(token.COMMA) {
			break
		}
	}
	return ast.Import{Tok: tok, Names: names}, nil
}

func (p *Parser) nameListStmt(build func(token.Token, []token.Token) ast.Stmt) (ast.Stmt, error) {
	tok := p.previous()
	var names []token.Token
	for {
		name, err := p.consume(token.IDENT, "expected name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.isMatch(token.COMMA) {
			break
		}
	}
	return build(tok, names), nil
}

// exprOrAssignStmt parses an expression, then classifies it as a plain
// expression statement, a plain assignment, or an augmented assignment
// depending on what follows.
func (p *Parser) exprOrAssignStmt() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.isMatch(token.ASSIGN) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return ast.Assign{Target: expr, Value: value}, nil
	}
	if op := p.peek(); augAssignOps[op.Kind] {
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return ast.AugAssign{Target: expr, Operator: op, Value: value}, nil
	}
	return ast.ExpressionStmt{Expression: expr}, nil
}

// expression is the entry point into the precedence ladder, starting at the
// lowest-precedence rule (lambda).
func (p *Parser) expression() (ast.Expr, error) {
	return p.lambdaExpr()
}

func (p *Parser) lambdaExpr() (ast.Expr, error) {
	if !p.isMatch(token.LAMBDA) {
		return p.conditionalExpr()
	}
	var params []token.Token
	if !p.checkType(token.COLON) {
		for {
			param, err := p.consume(token.IDENT, "expected lambda parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.isMatch(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.COLON, "expected ':' after lambda parameters"); err != nil {
		return nil, err
	}
	body, err := p.lambdaExpr()
	if err != nil {
		return nil, err
	}
	return ast.Lambda{Params: params, Body: body}, nil
}

// conditionalExpr parses `Body if Test else Orelse`.
func (p *Parser) conditionalExpr() (ast.Expr, error) {
	body, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if !p.isMatch(token.IF) {
		return body, nil
	}
	test, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.ELSE, "expected 'else' in conditional expression"); err != nil {
		return nil, err
	}
	orelse, err := p.conditionalExpr()
	if err != nil {
		return nil, err
	}
	return ast.Conditional{Test: test, Body: body, Orelse: orelse}, nil
}

func (p *Parser) orExpr() (ast.Expr, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.OR) {
		op := p.previous()
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) andExpr() (ast.Expr, error) {
	left, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.AND) {
		op := p.previous()
		right, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) notExpr() (ast.Expr, error) {
	if p.isMatch(token.NOT) {
		op := p.previous()
		operand, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{Operator: op, Operand: operand}, nil
	}
	return p.comparisonExpr()
}

// comparisonExpr handles the relational operators plus the two-token
// composites `is not` and `not in`, synthesized here into single tokens.
func (p *Parser) comparisonExpr() (ast.Expr, error) {
	left, err := p.bitOrExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isMatch(token.LESS, token.LESSEQ, token.GREATER, token.GREATEREQ, token.EQ, token.NOTEQ, token.IN):
			op := p.previous()
			right, err := p.bitOrExpr()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryOp{Left: left, Operator: op, Right: right}
		case p.checkType(token.IS):
			isTok := p.advance()
			op := isTok
			if p.isMatch(token.NOT) {
				op = token.New(token.ISNOT, isTok.Line, isTok.Column)
			}
			right, err := p.bitOrExpr()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryOp{Left: left, Operator: op, Right: right}
		case p.checkType(token.NOT) && p.peekAt(1).Kind == token.IN:
			notTok := p.advance()
			p.advance() // IN
			op := token.New(token.NOTIN, notTok.Line, notTok.Column)
			right, err := p.bitOrExpr()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryOp{Left: left, Operator: op, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) bitOrExpr() (ast.Expr, error) {
	left, err := p.bitXorExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.PIPE) {
		op := p.previous()
		right, err := p.bitXorExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) bitXorExpr() (ast.Expr, error) {
	left, err := p.bitAndExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.CARET) {
		op := p.previous()
		right, err := p.bitAndExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) bitAndExpr() (ast.Expr, error) {
	left, err := p.shiftExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.AMP) {
		op := p.previous()
		right, err := p.shiftExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) shiftExpr() (ast.Expr, error) {
	left, err := p.termExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.LSHIFT, token.RSHIFT) {
		op := p.previous()
		right, err := p.termExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) termExpr() (ast.Expr, error) {
	left, err := p.factorExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.PLUS, token.MINUS) {
		op := p.previous()
		right, err := p.factorExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

// factorExpr covers multiplication, matrix-multiplication, true-division,
// floor-division and modulo — kept as distinct operators per the floor-div
// split (Open Question (b): `/` and `//` compile to distinct opcodes).
func (p *Parser) factorExpr() (ast.Expr, error) {
	left, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.STAR, token.AT, token.SLASH, token.DOUBLESLASH, token.PERCENT) {
		op := p.previous()
		right, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) unaryExpr() (ast.Expr, error) {
	if p.isMatch(token.PLUS, token.MINUS, token.TILDE) {
		op := p.previous()
		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{Operator: op, Operand: operand}, nil
	}
	return p.powerExpr()
}

// powerExpr is right-associative and binds tighter than unary on its left
// operand (the call/attribute chain), but allows a further unary expression
// on its right operand (`2 ** -1`).
func (p *Parser) powerExpr() (ast.Expr, error) {
	left, err := p.callOrAttrExpr()
	if err != nil {
		return nil, err
	}
	if p.isMatch(token.DOUBLESTAR) {
		op := p.previous()
		right, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.BinaryOp{Left: left, Operator: op, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) callOrAttrExpr() (ast.Expr, error) {
	expr, err := p.primaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isMatch(token.LPAREN):
			var args []ast.Expr
			if !p.checkType(token.RPAREN) {
				for {
					arg, err := p.conditionalExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.isMatch(token.COMMA) {
						break
					}
				}
			}
			if _, err := p.consume(token.RPAREN, "expected ')' after call arguments"); err != nil {
				return nil, err
			}
			expr = ast.Call{Func: expr, Args: args}
		case p.isMatch(token.DOT):
			attr, err := p.consume(token.IDENT, "expected attribute name after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.Attribute{Value: expr, Attr: attr}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) primaryExpr() (ast.Expr, error) {
	switch {
	case p.isMatch(token.NUMBER, token.STRING):
		tok := p.previous()
		return ast.Constant{Tok: tok, Value: tok.Literal}, nil
	case p.isMatch(token.TRUE, token.FALSE, token.NONE):
		return ast.NameConstant{Tok: p.previous(), Kind: p.previous().Kind}, nil
	case p.isMatch(token.IDENT):
		return ast.Name{Tok: p.previous()}, nil
	case p.isMatch(token.LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "expected ')' after parenthesized expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case p.isMatch(token.LBRACKET):
		var elts []ast.Expr
		if !p.checkType(token.RBRACKET) {
			for {
				elt, err := p.conditionalExpr()
				if err != nil {
					return nil, err
				}
				elts = append(elts, elt)
				if !p.isMatch(token.COMMA) {
					break
				}
			}
		}
		if _, err := p.consume(token.RBRACKET, "expected ']' after list literal"); err != nil {
			return nil, err
		}
		return ast.ListLit{Elts: elts}, nil
	case p.isMatch(token.LBRACE):
		var keys, values []ast.Expr
		if !p.checkType(token.RBRACE) {
			for {
				key, err := p.conditionalExpr()
				if err != nil {
					return nil, err
				}
				if _, err := p.consume(token.COLON, "expected ':' in dict literal"); err != nil {
					return nil, err
				}
				value, err := p.conditionalExpr()
				if err != nil {
					return nil, err
				}
				keys = append(keys, key)
				values = append(values, value)
				if !p.isMatch(token.COMMA) {
					break
				}
			}
		}
		if _, err := p.consume(token.RBRACE, "expected '}' after dict literal"); err != nil {
			return nil, err
		}
		return ast.DictLit{Keys: keys, Values: values}, nil
	}
	cur := p.peek()
	return nil, newSyntaxError(cur.Line, cur.Column, fmt.Sprintf("unexpected token %s", cur.Kind))
}
