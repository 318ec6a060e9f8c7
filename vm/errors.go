package vm

import "fmt"

// DeveloperError marks a vm-internal invariant violation (an unknown
// opcode, an operand stack underflow): a bug in the compiler or the vm
// itself, never something a Nilan-Py program can trigger by running badly.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}
