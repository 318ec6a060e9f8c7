package vm

import (
	"strings"
	"testing"

	"nilan/blockpp"
	"nilan/compiler"
	"nilan/lexer"
	"nilan/parser"
	"nilan/pyobject"
)

func compileSource(t *testing.T, src string) *compiler.Code {
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

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := stdout
	var b strings.Builder
	stdout = &b
	defer func() { stdout = old }()
	fn()
	return b.String()
}

func TestRunArithmeticAndPrint(t *testing.T) {
	code := compileSource(t, "x = 2 + 3 * 4\nprint(x)\n")
	out := captureStdout(t, func() {
		if _, err := New().Run(code); err != nil {
			t.Fatalf("run error: %v", err)
		}
	})
	if strings.TrimSpace(out) != "14" {
		t.Errorf("print output = %q, want \"14\"", out)
	}
}

func TestRunFunctionCallAndReturn(t *testing.T) {
	code := compileSource(t, "def add(a, b):\n    return a + b\nprint(add(3, 4))\n")
	out := captureStdout(t, func() {
		if _, err := New().Run(code); err != nil {
			t.Fatalf("run error: %v", err)
		}
	})
	if strings.TrimSpace(out) != "7" {
		t.Errorf("print output = %q, want \"7\"", out)
	}
}

func TestRunRecursionHitsLimit(t *testing.T) {
	code := compileSource(t, "def loop(n):\n    return loop(n + 1)\nloop(0)\n")
	_, err := New().Run(code)
	if err == nil {
		t.Fatal("expected a recursion-limit error")
	}
	pe, ok := err.(*pyobject.Error)
	if !ok {
		t.Fatalf("error type = %T, want *pyobject.Error", err)
	}
	if !strings.Contains(pe.Message, "recursion") {
		t.Errorf("error message = %q, want mention of recursion", pe.Message)
	}
}

func TestRunAssertFailureCarriesMessage(t *testing.T) {
	code := compileSource(t, "assert 1 == 2, \"nope\"\n")
	_, err := New().Run(code)
	if err == nil {
		t.Fatal("expected assertion failure")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error = %v, want it to carry the assert message", err)
	}
}

func TestRunAssertSuccessIsSilent(t *testing.T) {
	code := compileSource(t, "assert 1 == 1\n")
	if _, err := New().Run(code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunListAppendIsBoundMethodCall(t *testing.T) {
	code := compileSource(t, "xs = [1, 2]\nxs.append(3)\nprint(xs)\n")
	out := captureStdout(t, func() {
		if _, err := New().Run(code); err != nil {
			t.Fatalf("run error: %v", err)
		}
	})
	if strings.TrimSpace(out) != "[1, 2, 3]" {
		t.Errorf("print output = %q, want \"[1, 2, 3]\"", out)
	}
}

func TestRunShortCircuitAndPreservesOperandValue(t *testing.T) {
	code := compileSource(t, "print(0 and 5)\nprint(3 and 5)\n")
	out := captureStdout(t, func() {
		if _, err := New().Run(code); err != nil {
			t.Fatalf("run error: %v", err)
		}
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != "0" || lines[1] != "5" {
		t.Errorf("print output = %v, want [\"0\" \"5\"]", lines)
	}
}

func TestRunGlobalsPersistAcrossRuns(t *testing.T) {
	machine := New()
	first := compileSource(t, "x = 10\n")
	if _, err := machine.Run(first); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second := compileSource(t, "print(x + 1)\n")
	out := captureStdout(t, func() {
		if _, err := machine.Run(second); err != nil {
			t.Fatalf("second run error: %v", err)
		}
	})
	if strings.TrimSpace(out) != "11" {
		t.Errorf("print output = %q, want \"11\"", out)
	}
}

func TestRunTruncatesFramesAfterError(t *testing.T) {
	machine := New()
	bad := compileSource(t, "def loop(n):\n    return loop(n + 1)\nloop(0)\n")
	if _, err := machine.Run(bad); err == nil {
		t.Fatal("expected a recursion-limit error")
	}
	if len(machine.frames) != 0 {
		t.Fatalf("frames after error = %d, want 0", len(machine.frames))
	}

	good := compileSource(t, "x = 1\n")
	if _, err := machine.Run(good); err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if len(machine.frames) != 0 {
		t.Fatalf("frames after success = %d, want 0", len(machine.frames))
	}
}

func TestRunDoesNotAccumulateFramesAcrossRepeatedErrors(t *testing.T) {
	machine := New()
	bad := compileSource(t, "assert 1 == 2\n")
	for i := 0; i < 5; i++ {
		if _, err := machine.Run(bad); err == nil {
			t.Fatal("expected assertion failure")
		}
	}
	if len(machine.frames) != 0 {
		t.Fatalf("frames after repeated errors = %d, want 0", len(machine.frames))
	}
}

func TestRunUndefinedNameRaisesNameError(t *testing.T) {
	code := compileSource(t, "print(y)\n")
	_, err := New().Run(code)
	if err == nil {
		t.Fatal("expected a NameError")
	}
	pe, ok := err.(*pyobject.Error)
	if !ok {
		t.Fatalf("error type = %T, want *pyobject.Error", err)
	}
	if pe.Kind != pyobject.EName {
		t.Errorf("error kind = %v, want EName", pe.Kind)
	}
}
