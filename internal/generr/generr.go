// Package generr defines the error taxonomy of the generator. Every error
// raised while compiling user input carries the file it came from and, when
// it is about a specific property, a locator inside that file.
package generr

import (
	"fmt"
	"strings"
)

// Kind classifies a generation error.
type Kind int

const (
	// ConfigShape: a property has the wrong type or an invalid value.
	ConfigShape Kind = iota + 1
	// MissingProperty: a required property is absent.
	MissingProperty
	// Duplicate: an identifier, accumulator entry or output slot is taken.
	Duplicate
	// Reference: a texture, geometry or template reference cannot be resolved.
	Reference
	// Template: evaluating a template failed.
	Template
	// IO: a file is missing or unreadable, or a path that must be free exists.
	IO
)

func (k Kind) String() string {
	switch k {
	case ConfigShape:
		return "ConfigShapeError"
	case MissingProperty:
		return "MissingRequiredPropertyError"
	case Duplicate:
		return "DuplicateDefinitionError"
	case Reference:
		return "ReferenceResolutionError"
	case Template:
		return "TemplateEvaluationError"
	case IO:
		return "IOError"
	}
	return "UnknownError"
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrConfigShape     = &Error{Kind: ConfigShape}
	ErrMissingProperty = &Error{Kind: MissingProperty}
	ErrDuplicate       = &Error{Kind: Duplicate}
	ErrReference       = &Error{Kind: Reference}
	ErrTemplate        = &Error{Kind: Template}
	ErrIO              = &Error{Kind: IO}
)

// Error is a generation failure.
type Error struct {
	Kind    Kind
	Message string
	// File is the path of the offending document.
	File string
	// Locator points inside File, in document.Path notation.
	Locator string
	// Err is the underlying cause, if any.
	Err error
}

// Error renders the message followed by the location lines, one per line.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.File != "" {
		fmt.Fprintf(&b, "\nPath: %s", e.File)
	}
	if e.Locator != "" {
		fmt.Fprintf(&b, "\nJSON Path: %s", e.Locator)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, "\nError: %s", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, which makes the sentinels work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == "" && t.File == ""
}

// At returns a copy of e located at file and locator.
func (e *Error) At(file string, locator fmt.Stringer) *Error {
	cp := *e
	cp.File = file
	if locator != nil {
		cp.Locator = locator.String()
	}
	return &cp
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// New builds an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Shape(format string, args ...any) *Error   { return New(ConfigShape, format, args...) }
func Missing(format string, args ...any) *Error { return New(MissingProperty, format, args...) }
func Dup(format string, args ...any) *Error     { return New(Duplicate, format, args...) }
func Ref(format string, args ...any) *Error     { return New(Reference, format, args...) }
func Tmpl(format string, args ...any) *Error    { return New(Template, format, args...) }
func IOErr(format string, args ...any) *Error   { return New(IO, format, args...) }
