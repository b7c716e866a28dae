package mapping

import "fmt"

// TypeNotFoundError reports a declared type name that resolves to
// neither a primitive type nor a known persistent class, or a reference
// field whose column count does not match the referenced class's
// identity columns. Always fatal to the generation run.
type TypeNotFoundError struct {
	TypeName string
	Class    string
	Field    string
	Detail   string
}

func (e *TypeNotFoundError) Error() string {
	msg := fmt.Sprintf("cannot resolve type %q", e.TypeName)
	if e.Field != "" {
		msg += fmt.Sprintf(" of field %q", e.Field)
	}
	if e.Class != "" {
		msg += fmt.Sprintf(" in class %q", e.Class)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// StructuralError reports any other structural inconsistency in the
// mapping or the generator configuration: mismatched inherited identity
// types, a missing reference target, an unsupported grouping mode.
// Always fatal; generation aborts before any output is flushed.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "structural mapping error: " + e.Reason
}

// Structuralf creates a StructuralError with a formatted reason.
func Structuralf(format string, args ...any) *StructuralError {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}
