package pyobject

import "fmt"

// ErrKind classifies a runtime error the way the virtual machine's traceback
// and exit-code logic need: a small closed set shared by every layer above
// this package, rather than one Go error type per failure site.
type ErrKind uint8

const (
	EType ErrKind = iota
	EValue
	EOverflow
	EKey
	EIndex
	EAttribute
	EName
	EAssertion
	EStopIteration
	ERecursion
	ENotImplemented
	ESystem
)

var errKindNames = [...]string{
	EType:           "TypeError",
	EValue:          "ValueError",
	EOverflow:       "OverflowError",
	EKey:            "KeyError",
	EIndex:          "IndexError",
	EAttribute:      "AttributeError",
	EName:           "NameError",
	EAssertion:      "AssertionError",
	EStopIteration:  "StopIteration",
	ERecursion:      "RecursionError",
	ENotImplemented: "NotImplementedError",
	ESystem:         "SystemError",
}

func (k ErrKind) String() string {
	if int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return fmt.Sprintf("ErrKind(%d)", k)
}

// Error is the single runtime error type every layer above this package
// raises and catches. It carries just a kind and a message; the frame walk
// that turns a chain of these into a traceback lives in the vm package.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Message }

// NewError builds an *Error with a formatted message, the constructor every
// pyobject operation that can fail uses instead of ad hoc fmt.Errorf calls.
func NewError(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrStopIteration is the sentinel every iterator's Next returns once
// exhausted. Iterators are not restartable: once this is returned, every
// subsequent Next call returns it again.
var ErrStopIteration = &Error{Kind: EStopIteration, Message: "iterator exhausted"}

func typeErr(format string, args ...any) error { return NewError(EType, format, args...) }
func valueErr(format string, args ...any) error { return NewError(EValue, format, args...) }
func overflowErr(format string, args ...any) error { return NewError(EOverflow, format, args...) }
