package diag

import (
	"errors"
	"fmt"

	"xtread/internal/source"
)

// Error is the single located failure returned by the reader.
// Codes in the INT range mark reader bugs; everything else is a problem in the input.
type Error struct {
	Code  Code
	Span  source.Span
	Msg   string
	Fixes []Fix
}

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, span source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: span, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Code.ID(), e.Span, e.Msg)
}

// WithFix attaches a suggested edit and returns e.
func (e *Error) WithFix(title string, edits ...FixEdit) *Error {
	e.Fixes = append(e.Fixes, Fix{Title: title, Edits: edits})
	return e
}

// Internal reports whether the error is a reader bug.
func (e *Error) Internal() bool {
	return e != nil && e.Code.IsInternal()
}

// Diagnostic converts the error into an error-severity diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	d := NewError(e.Code, e.Span, e.Msg)
	if e.Internal() {
		d = d.WithNote(e.Span, "this is a bug in the reader, not in the source file")
	}
	for _, fix := range e.Fixes {
		d = d.WithFix(fix.Title, fix.Edits...)
	}
	return d
}

// Report forwards the error to r.
func (e *Error) Report(r Reporter) {
	if e == nil || r == nil {
		return
	}
	d := e.Diagnostic()
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}

// AsError extracts the located reader error from a wrapped chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
