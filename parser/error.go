package parser

import "fmt"

// SyntaxError reports a single parse failure at a source position. The
// parser collects these rather than aborting on the first one, so a run can
// surface more than one diagnostic per invocation.
type SyntaxError struct {
	Line    int32
	Column  int32
	Message string
}

func newSyntaxError(line, column int32, message string) SyntaxError {
	return SyntaxError{Line: line, Column: column, Message: message}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: line %d, column %d - %s", e.Line, e.Column, e.Message)
}
