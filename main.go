package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// knownSubcommands are the names dispatched through subcommands.Execute; any
// other bare first argument is treated as a source file to read, compile,
// and execute directly.
var knownSubcommands = map[string]bool{
	"run": true, "repl": true, "emit": true,
	"help": true, "flags": true, "commands": true,
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&emitCmd{}, "")

	code := flag.String("c", "", "compile and execute STRING as a program")
	module := flag.String("m", "", "load MODULE by name (not implemented)")
	flag.Parse()

	ctx := context.Background()

	if *module != "" {
		fmt.Fprintf(os.Stderr, "💥 NotImplementedError: -m %s is not implemented\n", *module)
		os.Exit(int(exitNotImplemented))
	}

	if *code != "" {
		os.Exit(int(runSource(*code)))
	}

	switch flag.Arg(0) {
	case "":
		os.Exit(int((&replCmd{}).Execute(ctx, flag.CommandLine)))
	default:
		if knownSubcommands[flag.Arg(0)] {
			os.Exit(int(subcommands.Execute(ctx)))
		}
		os.Exit(int(runFile(flag.Arg(0))))
	}
}
