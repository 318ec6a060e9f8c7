package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"nilan/compiler"
	"nilan/lexer"
	"nilan/pyobject"
	"nilan/token"
	"nilan/vm"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

// replCmd starts an interactive session: read a line, decide whether the
// buffered source is ready to parse, and if so compile and run it against a
// single long-lived vm so definitions and globals persist across entries.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive session.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     "/tmp/.nilan_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(rl.Stderr(), "💥 failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	machine := vm.New()
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err)
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		lex := lexer.New(source)
		tokens, err := lex.Scan()
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err)
			buffer.Reset()
			continue
		}

		if !isInputReady(source, tokens) {
			continue
		}

		module, err := parseSource(source)
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err)
			buffer.Reset()
			continue
		}

		code, err := compiler.Compile(module)
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err)
			buffer.Reset()
			continue
		}

		result, err := machine.Run(code)
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err)
			buffer.Reset()
			continue
		}
		if result != nil && !pyobject.Is(result, pyobject.None()) {
			fmt.Fprintln(rl.Stdout(), pyobject.Repr(result))
		}
		buffer.Reset()
	}
}

// isInputReady decides whether a line of input plausibly completes a
// statement: parentheses/brackets/braces must balance, the buffer's last
// non-blank physical line must not still be indented (a def's suite still
// being typed), and the last non-EOF token must not be one that obviously
// expects a continuation (a trailing operator, comma, open bracket, or a
// colon introducing a suite).
func isInputReady(source string, tokens []token.Token) bool {
	balance := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			balance++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			balance--
		}
	}
	if balance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	switch last.Kind {
	case token.COLON, token.COMMA,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.DOUBLESLASH,
		token.PERCENT, token.DOUBLESTAR, token.AMP, token.PIPE, token.CARET,
		token.LSHIFT, token.RSHIFT,
		token.PLUSEQ, token.MINUSEQ, token.STAREQ, token.SLASHEQ,
		token.DOUBLESLASHEQ, token.PERCENTEQ, token.DOUBLESTAREQ,
		token.AMPEQ, token.PIPEEQ, token.CARETEQ, token.LSHIFTEQ, token.RSHIFTEQ,
		token.EQ, token.NOTEQ, token.LESS, token.LESSEQ, token.GREATER, token.GREATEREQ,
		token.ASSIGN, token.AND, token.OR, token.NOT, token.IF, token.ELSE,
		token.LPAREN, token.LBRACKET, token.LBRACE:
		return false
	}

	lines := strings.Split(source, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		return lines[i][0] != ' ' && lines[i][0] != '\t'
	}
	return true
}

