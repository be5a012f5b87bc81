package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics holds all diagnostic information collected during a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Kind identifies the category of this diagnostic.
	Kind Kind
	// Message is the human-readable description.
	Message string
	// Class identifies which class this relates to (if any).
	Class string
	// Member identifies which field or method this relates to (if any).
	Member string
	// Line is the source line, 0 when unknown.
	Line int
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(kind Kind, message, class, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Kind:     kind,
		Message:  message,
		Class:    class,
		Member:   member,
	})
}

// AddErrorAt adds an error diagnostic tied to a source line.
func (d *Diagnostics) AddErrorAt(kind Kind, line int, message, class, member string) {
	d.AddError(kind, message, class, member)
	d.Errors[len(d.Errors)-1].Line = line
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(kind Kind, message, class, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Kind:     kind,
		Message:  message,
		Class:    class,
		Member:   member,
	})
}

// AddWarningAt adds a warning diagnostic tied to a source line.
func (d *Diagnostics) AddWarningAt(kind Kind, line int, message, class, member string) {
	d.AddWarning(kind, message, class, member)
	d.Warnings[len(d.Warnings)-1].Line = line
}

// AddInfo adds an info diagnostic with optional suggestions.
func (d *Diagnostics) AddInfo(kind Kind, message, class, member string, suggestions ...string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:    DiagnosticInfo,
		Kind:        kind,
		Message:     message,
		Class:       class,
		Member:      member,
		Suggestions: suggestions,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Clone returns a deep copy, so a holder can hand out diagnostics without
// exposing its own slices.
func (d Diagnostics) Clone() Diagnostics {
	clone := func(in []Diagnostic) []Diagnostic {
		if in == nil {
			return nil
		}

		out := make([]Diagnostic, len(in))
		for i, diag := range in {
			out[i] = diag
			out[i].Suggestions = append([]string(nil), diag.Suggestions...)
		}

		return out
	}

	return Diagnostics{
		Errors:   clone(d.Errors),
		Warnings: clone(d.Warnings),
		Infos:    clone(d.Infos),
	}
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Line > 0 {
		prefix = append(prefix, fmt.Sprintf("line %d", d.Line))
	}

	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Kind != 0 {
		msg = fmt.Sprintf("[%s] %s", d.Kind, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
