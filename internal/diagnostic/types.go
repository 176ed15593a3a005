package diagnostic

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"schema-generator/internal/common"
)

// Diagnostics holds all diagnostic information from a check.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Resource identifies which resource this relates to (if any).
	Resource string
	// Field identifies which field this relates to (if any).
	Field string
	// Cause is the underlying error, kept for errors.As.
	Cause error
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Diagnostic codes.
const (
	CodeParseError    = "parse_error"
	CodeTopologyError = "topology_error"
	CodeUnknownScalar = "unknown_scalar"
	CodeNoFields      = "no_fields"
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic caused by err.
func (d *Diagnostics) AddError(code string, err error, resource, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  err.Error(),
		Resource: resource,
		Field:    field,
		Cause:    err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, resource, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Resource: resource,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, resource, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Resource: resource,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns errors, warnings and infos, in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Err combines all error diagnostics into one error, or returns nil. The
// individual errors are available through multierr.Errors, and errors.As
// reaches their causes.
func (d *Diagnostics) Err() error {
	var combined error
	for _, e := range d.Errors {
		combined = multierr.Append(combined, diagnosticError{e})
	}

	return combined
}

// diagnosticError adapts a Diagnostic to the error interface.
type diagnosticError struct {
	d Diagnostic
}

func (e diagnosticError) Error() string { return e.d.String() }

func (e diagnosticError) Unwrap() error { return e.d.Cause }

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix string

	switch {
	case d.Resource != "" && d.Field != "":
		prefix = d.Resource + "." + d.Field
	case d.Resource != "":
		prefix = d.Resource
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if prefix != "" {
		return prefix + ": " + msg
	}

	return msg
}

// Format renders every diagnostic on its own line, prefixed by severity.
func (d *Diagnostics) Format() string {
	var sb strings.Builder
	for _, diag := range d.All() {
		sb.WriteString(diag.Severity.String())
		sb.WriteString(": ")
		sb.WriteString(diag.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
