package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an audit error
type Kind string

const (
	KindInputNotFound    Kind = "input_not_found"
	KindSelectionInvalid Kind = "selection_invalid"
	KindColumnNotFound   Kind = "column_not_found"
	KindNoValidColumns   Kind = "no_valid_columns"
	KindIOFailure        Kind = "io_failure"
	KindConfigInvalid    Kind = "config_invalid"
)

// AuditError is the error type returned by the audit core
type AuditError struct {
	Kind        Kind     `json:"kind"`
	Message     string   `json:"message"`
	Column      string   `json:"column,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Cause       error    `json:"-"`
}

// Error implements the error interface
func (e *AuditError) Error() string {
	if e == nil {
		return "unknown audit error"
	}
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean one of: %s?)", strings.Join(e.Suggestions, ", "))
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AuditError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewInputNotFound reports missing source files, sheets or headers
func NewInputNotFound(message string) *AuditError {
	return &AuditError{Kind: KindInputNotFound, Message: message}
}

// NewSelectionInvalid reports an out-of-range or non-numeric selection
func NewSelectionInvalid(message string) *AuditError {
	return &AuditError{Kind: KindSelectionInvalid, Message: message}
}

// NewColumnNotFound reports a requested column missing from the header row
func NewColumnNotFound(column string, suggestions []string) *AuditError {
	return &AuditError{
		Kind:        KindColumnNotFound,
		Message:     fmt.Sprintf("column %q not found", column),
		Column:      column,
		Suggestions: suggestions,
	}
}

// NewNoValidColumns reports that none of the requested columns resolved
func NewNoValidColumns(warnings []*AuditError) *AuditError {
	err := &AuditError{Kind: KindNoValidColumns, Message: "no valid columns found to check"}
	if len(warnings) > 0 {
		causes := make([]error, 0, len(warnings))
		for _, w := range warnings {
			causes = append(causes, w)
		}
		err.Cause = errors.Join(causes...)
	}
	return err
}

// NewIOFailure wraps a load or save failure
func NewIOFailure(operation string, cause error) *AuditError {
	return &AuditError{Kind: KindIOFailure, Message: operation + " failed", Cause: cause}
}

// NewConfigInvalid wraps a configuration validation failure
func NewConfigInvalid(cause error) *AuditError {
	return &AuditError{Kind: KindConfigInvalid, Message: "invalid run configuration", Cause: cause}
}

// IsKind reports whether err (or anything it wraps) is an AuditError of kind
func IsKind(err error, kind Kind) bool {
	var ae *AuditError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first AuditError in err's chain, or "".
func KindOf(err error) Kind {
	var ae *AuditError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}
