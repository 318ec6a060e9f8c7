package main

import (
	"fmt"
	"strings"

	"nilan/ast"
	"nilan/blockpp"
	"nilan/lexer"
	"nilan/parser"
	"nilan/token"
)

// parseSource runs one source string through the lexer, block preprocessor,
// and parser, returning the resulting module. The REPL's continuation check
// calls the lexer on its own, so it is kept separate from compilation proper.
func parseSource(src string) (ast.Module, error) {
	lex := lexer.New(src)
	tokens, err := lex.Scan()
	if err != nil {
		return ast.Module{}, err
	}
	tokens, err = blockpp.Preprocess(tokens)
	if err != nil {
		return ast.Module{}, err
	}
	p := parser.New(tokens)
	module, errs := p.Parse()
	if len(errs) > 0 {
		var b strings.Builder
		for _, e := range errs {
			fmt.Fprintln(&b, e)
		}
		return ast.Module{}, fmt.Errorf("%s", strings.TrimRight(b.String(), "\n"))
	}
	return module, nil
}

// lastNonEOF returns the last token before EOF, or the zero token if the
// stream is empty. Used by the REPL to decide whether a line plausibly ends
// a statement or still expects more input.
func lastNonEOF(tokens []token.Token) token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind != token.EOF {
			return tokens[i]
		}
	}
	return token.Token{}
}
