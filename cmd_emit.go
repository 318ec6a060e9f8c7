package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"nilan/compiler"
	"nilan/pyobject"

	"github.com/google/subcommands"
)

// emitCmd compiles a source file, prints its disassembled bytecode, and
// writes a sibling *.compiled file holding a JSON rendering of the same
// instruction vector for outside inspection.
type emitCmd struct{}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Print the disassembled bytecode for a source file" }
func (*emitCmd) Usage() string {
	return `emit <file>:
  Compile a source file, print its bytecode, and write <file>.compiled.
`
}
func (*emitCmd) SetFlags(f *flag.FlagSet) {}

func (*emitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	module, err := parseSource(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitSyntaxError
	}

	code, err := compiler.Compile(module)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitSyntaxError
	}

	emitDisassembly(code)

	if err := writeCompiledJSON(code, args[0]+".compiled"); err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to write compiled artifact: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func emitDisassembly(code *compiler.Code) {
	fmt.Print(compiler.Disassemble(code))
	for _, c := range code.Constants {
		if c.Kind != pyobject.KindFunction {
			continue
		}
		fp, ok := c.Payload().(*pyobject.FunctionPayload)
		if !ok || fp.Code == nil {
			continue
		}
		nested, ok := fp.Code.(*compiler.Code)
		if !ok {
			continue
		}
		fmt.Println()
		emitDisassembly(nested)
	}
}

// codeDump is the JSON-friendly shape of a compiler.Code, debug output only
// and never reloaded; nested function constants recurse into Functions the
// same way emitDisassembly recurses into their own bytecode.
type codeDump struct {
	Name        string     `json:"name"`
	Params      []string   `json:"params"`
	NumLocals   int        `json:"num_locals"`
	Disassembly string     `json:"disassembly"`
	Constants   []string   `json:"constants"`
	Names       []string   `json:"names"`
	Functions   []codeDump `json:"functions,omitempty"`
}

func dumpCode(code *compiler.Code) codeDump {
	constants := make([]string, len(code.Constants))
	var functions []codeDump
	for i, c := range code.Constants {
		constants[i] = pyobject.Repr(c)
		if c.Kind != pyobject.KindFunction {
			continue
		}
		fp, ok := c.Payload().(*pyobject.FunctionPayload)
		if !ok || fp.Code == nil {
			continue
		}
		if nested, ok := fp.Code.(*compiler.Code); ok {
			functions = append(functions, dumpCode(nested))
		}
	}
	return codeDump{
		Name:        code.Name,
		Params:      code.Params,
		NumLocals:   code.NumLocals,
		Disassembly: strings.TrimRight(compiler.Disassemble(code), "\n"),
		Constants:   constants,
		Names:       code.Names,
		Functions:   functions,
	}
}

// writeCompiledJSON renders code as prettified JSON and writes it to path
// (MarshalIndent, then Create, then Write).
func writeCompiledJSON(code *compiler.Code, path string) error {
	bytes, err := json.MarshalIndent(dumpCode(code), "", "  ")
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating compiled artifact: %s", err.Error())
	}
	defer f.Close()
	if _, err := f.Write(bytes); err != nil {
		return fmt.Errorf("error writing compiled artifact: %s", err.Error())
	}
	return nil
}
