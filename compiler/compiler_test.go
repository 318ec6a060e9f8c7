package compiler_test

import (
	"strings"
	"testing"

	"nilan/blockpp"
	"nilan/compiler"
	"nilan/lexer"
	"nilan/parser"
	"nilan/pyobject"
)

// functionCode pulls the nested compiler.Code out of the first
// function-valued constant in a compiled module, for asserting on a
// function body's own instructions/locals rather than the module's.
func functionCode(t *testing.T, code *compiler.Code) *compiler.Code {
	t.Helper()
	for _, c := range code.Constants {
		if c.Kind != pyobject.KindFunction {
			continue
		}
		fp, ok := c.Payload().(*pyobject.FunctionPayload)
		if !ok {
			continue
		}
		if fc, ok := fp.Code.(*compiler.Code); ok {
			return fc
		}
	}
	t.Fatal("no function constant found")
	return nil
}

func compile(t *testing.T, src string) *compiler.Code {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	tokens, err = blockpp.Preprocess(tokens)
	if err != nil {
		t.Fatalf("preprocess error: %v", err)
	}
	module, errs := parser.New(tokens).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	code, err := compiler.Compile(module)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return code
}

func TestCompileAssignEmitsGlobalStore(t *testing.T) {
	code := compile(t, "x = 1\n")
	dis := compiler.Disassemble(code)
	if !strings.Contains(dis, "OP_SET_GLOBAL") {
		t.Errorf("disassembly missing OP_SET_GLOBAL:\n%s", dis)
	}
}

func TestCompileFunctionParamsBecomeLocals(t *testing.T) {
	code := compile(t, "def add(a, b):\n    return a + b\n")
	if len(code.Constants) != 2 {
		t.Fatalf("expected two constants (the function object and the trailing None), got %d", len(code.Constants))
	}
	if fc := functionCode(t, code); fc.NumLocals != 2 {
		t.Errorf("expected params a, b as 2 locals, got %d", fc.NumLocals)
	}
	dis := compiler.Disassemble(code)
	if !strings.Contains(dis, "OP_MAKE_FUNCTION") {
		t.Errorf("disassembly missing OP_MAKE_FUNCTION:\n%s", dis)
	}
}

func TestCompileConditionalPatchesBothJumps(t *testing.T) {
	code := compile(t, "x = 1 if True else 2\n")
	dis := compiler.Disassemble(code)
	if !strings.Contains(dis, "OP_JUMP_IF_FALSE") || !strings.Contains(dis, "OP_JUMP ") {
		t.Errorf("disassembly missing conditional jump pair:\n%s", dis)
	}
}

func TestCompileAndOrEmitValuePreservingJumps(t *testing.T) {
	code := compile(t, "x = 1 and 2\n")
	dis := compiler.Disassemble(code)
	if !strings.Contains(dis, "OP_JUMP_IF_FALSE_OR_POP") {
		t.Errorf("`and` should compile to OP_JUMP_IF_FALSE_OR_POP:\n%s", dis)
	}

	code = compile(t, "x = 1 or 2\n")
	dis = compiler.Disassemble(code)
	if !strings.Contains(dis, "OP_JUMP_IF_TRUE_OR_POP") {
		t.Errorf("`or` should compile to OP_JUMP_IF_TRUE_OR_POP:\n%s", dis)
	}
}

func TestCompileAugAssignReusesLocalSlot(t *testing.T) {
	code := compile(t, "def f(a):\n    a += 1\n    return a\n")
	fc := functionCode(t, code)
	if fc.NumLocals != 1 {
		t.Errorf("NumLocals = %d, want 1 (param a reused by a += 1)", fc.NumLocals)
	}
	dis := compiler.Disassemble(fc)
	if !strings.Contains(dis, "OP_ADD") {
		t.Errorf("a += 1 should compile to OP_ADD:\n%s", dis)
	}
}

func TestCompileAssertWithMessage(t *testing.T) {
	code := compile(t, "assert 1 == 1, \"should hold\"\n")
	dis := compiler.Disassemble(code)
	if !strings.Contains(dis, "OP_ASSERT") {
		t.Errorf("disassembly missing OP_ASSERT:\n%s", dis)
	}
}

func TestCompileRejectsGlobalKeyword(t *testing.T) {
	tokens, err := lexer.New("global x\n").Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	tokens, err = blockpp.Preprocess(tokens)
	if err != nil {
		t.Fatalf("preprocess error: %v", err)
	}
	module, errs := parser.New(tokens).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if _, err := compiler.Compile(module); err == nil {
		t.Fatal("expected global statement to be rejected at compile time")
	}
}
