package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per kind. Every *Error unwraps to the sentinel of its
// kind so callers can match with errors.Is.
var (
	ErrMalformedTypeName           = errors.New("malformed type name")
	ErrMalformedMapping            = errors.New("malformed mapping")
	ErrDuplicateClassMapping       = errors.New("duplicate class mapping")
	ErrDuplicateMemberMapping      = errors.New("duplicate member mapping")
	ErrHierarchyCycleDetected      = errors.New("hierarchy cycle detected")
	ErrUnresolvedAncestorReference = errors.New("unresolved ancestor reference")
)

// Sentinel returns the package-level sentinel error for k, or nil.
func (k Kind) Sentinel() error {
	switch k {
	case KindMalformedTypeName:
		return ErrMalformedTypeName
	case KindMalformedMapping:
		return ErrMalformedMapping
	case KindDuplicateClassMapping:
		return ErrDuplicateClassMapping
	case KindDuplicateMemberMapping:
		return ErrDuplicateMemberMapping
	case KindHierarchyCycleDetected:
		return ErrHierarchyCycleDetected
	case KindUnresolvedAncestorReference:
		return ErrUnresolvedAncestorReference
	default:
		return nil
	}
}

// Error is a pipeline failure with enough context to report precisely.
type Error struct {
	// Kind of the failure.
	Kind Kind
	// Line is the 1-based source line, or 0 when not tied to a line.
	Line int
	// Class is the original name of the class involved (if any).
	Class string
	// Member identifies the field or method involved (if any).
	Member string
	// Message is the human-readable description.
	Message string
	// Err is the underlying cause (if any).
	Err error
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AtLine sets the source line and returns e.
func (e *Error) AtLine(line int) *Error {
	e.Line = line
	return e
}

// In sets the class and member identity and returns e.
func (e *Error) In(class, member string) *Error {
	e.Class = class
	e.Member = member

	return e
}

// Wrap records cause as the underlying error and returns e.
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}

	b.WriteString(e.Kind.Sentinel().Error())

	if e.Class != "" || e.Member != "" {
		b.WriteString(" [")
		b.WriteString(e.Class)

		if e.Member != "" {
			if e.Class != "" {
				b.WriteByte('.')
			}

			b.WriteString(e.Member)
		}

		b.WriteByte(']')
	}

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// KindOf returns the kind of the first *Error in err's chain, or the zero Kind.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}

	return 0
}
