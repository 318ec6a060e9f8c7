package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nilan/compiler"
	"nilan/vm"

	"github.com/google/subcommands"
)

// runCmd compiles and executes a source file, or a string passed via -c, in
// one shot.
type runCmd struct {
	code string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Compile and execute a source file.
run -c <code>:
  Compile and execute a string argument.
`
}
func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "c", "", "compile and execute this string instead of reading a file")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.code != "" {
		return runSource(c.code)
	}

	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}
	return runFile(args[0])
}

// runFile reads a source file and executes it, mapping an unreadable file to
// the generic runtime-error exit code.
func runFile(path string) subcommands.ExitStatus {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}
	return runSource(string(data))
}

// runSource parses, compiles, and executes a source string, returning the
// exit code assigned by the three-way outcome: 2 for a lex/parse/compile
// failure, 1 for a runtime error, 0 on success.
func runSource(src string) subcommands.ExitStatus {
	module, err := parseSource(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitSyntaxError
	}

	code, err := compiler.Compile(module)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitSyntaxError
	}

	machine := vm.New()
	if _, err := machine.Run(code); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// Exit codes beyond subcommands' own ExitSuccess(0)/ExitFailure(1)/
// ExitUsageError(2): kept distinct constants so a syntax failure and a
// usage failure are never confused even though they share a numeric value.
const (
	exitSyntaxError    subcommands.ExitStatus = 2
	exitNotImplemented subcommands.ExitStatus = 3
)
