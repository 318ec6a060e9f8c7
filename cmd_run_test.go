package main

import (
	"testing"

	"github.com/google/subcommands"
)

func TestRunSourceSuccessExitsZero(t *testing.T) {
	if got := runSource("x = 1\n"); got != subcommands.ExitSuccess {
		t.Errorf("exit status = %v, want ExitSuccess", got)
	}
}

func TestRunSourceSyntaxErrorExitsTwo(t *testing.T) {
	if got := runSource("x = = 1\n"); got != exitSyntaxError {
		t.Errorf("exit status = %v, want exitSyntaxError (2)", got)
	}
}

func TestRunSourceRuntimeErrorExitsOne(t *testing.T) {
	if got := runSource("print(undefined_name)\n"); got != subcommands.ExitFailure {
		t.Errorf("exit status = %v, want ExitFailure (1)", got)
	}
}
