package shadow

import (
	"strings"
)

// ErrorKind categorizes an *Error.
type ErrorKind string

const (
	KindConfiguration   ErrorKind = "configuration"    // shadow kind not cataloged
	KindFieldNotFound   ErrorKind = "field_not_found"  // name not declared
	KindAmbiguousField  ErrorKind = "ambiguous_field"  // name declared more than once
	KindInvalidShadow   ErrorKind = "invalid_shadow"   // malformed shadow or catalog
	KindInvalidPlatform ErrorKind = "invalid_platform" // unusable pointer/reference sizes
	KindVersionMismatch ErrorKind = "version_mismatch" // live runtime outside catalog range
)

// Sentinels for use with errors.Is. Matching compares only the Kind.
var (
	ErrConfiguration   = &Error{Kind: KindConfiguration}
	ErrFieldNotFound   = &Error{Kind: KindFieldNotFound}
	ErrAmbiguousField  = &Error{Kind: KindAmbiguousField}
	ErrInvalidShadow   = &Error{Kind: KindInvalidShadow}
	ErrInvalidPlatform = &Error{Kind: KindInvalidPlatform}
	ErrVersionMismatch = &Error{Kind: KindVersionMismatch}
)

// Error is the error type returned by the catalog and the resolver.
// None of its kinds are fatal: callers are expected to treat them as
// a failed best-effort lookup.
type Error struct {
	Cause  error
	Kind   ErrorKind
	Shadow string
	Field  string
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("shadow: ")
	b.WriteString(string(e.Kind))

	if e.Shadow != "" {
		b.WriteString(" in ")
		b.WriteString(e.Shadow)
		if e.Field != "" {
			b.WriteByte('.')
			b.WriteString(e.Field)
		}
	} else if e.Field != "" {
		b.WriteString(" for ")
		b.WriteString(e.Field)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" - ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func configurationError(kind Kind) *Error {
	return &Error{
		Kind:   KindConfiguration,
		Detail: "shadow kind " + kind.String() + " is not cataloged",
	}
}

func fieldNotFound(shadowName string, field string, detail string) *Error {
	return &Error{
		Kind:   KindFieldNotFound,
		Shadow: shadowName,
		Field:  field,
		Detail: detail,
	}
}

func ambiguousField(shadowName string, field string, owners []string) *Error {
	return &Error{
		Kind:   KindAmbiguousField,
		Shadow: shadowName,
		Field:  field,
		Detail: "declared by " + strings.Join(owners, ", "),
	}
}

func invalidShadow(shadowName string, detail string) *Error {
	return &Error{
		Kind:   KindInvalidShadow,
		Shadow: shadowName,
		Detail: detail,
	}
}
