package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidToken       = NewError("invalid token")
	ErrInvalidExpression  = NewError("invalid expression")
	ErrRedefinition       = NewError("multiple definitions")
	ErrCircularDefinition = NewError("circular definition")
	ErrMissingDefinition  = NewError("missing definition")
	ErrUndefinedName      = NewError("undefined name")
	ErrNoDefinitions      = NewError("no definitions available")
	ErrReadInput          = NewError("failed to read input")
	ErrQuery              = NewError("query failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
// Errors created with [Error.Wrap] or [Error.With] keep matching the
// sentinel they were created from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) > 0 {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// TokenError reports a character sequence in an expression body that does
// not begin any token. Offset is relative to the start of the body.
type TokenError struct {
	Offset int
}

func (e *TokenError) Error() string {
	return "invalid token at character " + strconv.Itoa(e.Offset)
}

func (e *TokenError) Unwrap() error { return ErrInvalidToken }

func (e *TokenError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrInvalidToken.msg),
		slog.Int("offset", e.Offset),
	)
}

// ExpressionError reports a token stream that does not reduce to a single
// expression tree.
type ExpressionError struct {
	Reason string
}

func (e *ExpressionError) Error() string {
	if e.Reason == "" {
		return ErrInvalidExpression.msg
	}

	return ErrInvalidExpression.msg + ": " + e.Reason
}

func (e *ExpressionError) Unwrap() error { return ErrInvalidExpression }

func (e *ExpressionError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrInvalidExpression.msg),
		slog.String("reason", e.Reason),
	)
}

// RedefinitionError reports every definition of every name that is defined
// more than once in a compilation unit.
type RedefinitionError struct {
	// Groups holds one entry per duplicated name, in order of first
	// appearance. Each group holds all definitions using that name.
	Groups [][]*Definition
}

// Names returns the duplicated names in order of first appearance.
func (e *RedefinitionError) Names() []string {
	names := make([]string, 0, len(e.Groups))
	for _, group := range e.Groups {
		names = append(names, group[0].Name)
	}

	return names
}

func (e *RedefinitionError) Error() string {
	var sb strings.Builder

	sb.WriteString("the following name")

	if len(e.Groups) > 1 {
		sb.WriteString("s have")
	} else {
		sb.WriteString(" has")
	}

	sb.WriteString(" multiple definitions: ")

	for i, group := range e.Groups {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(group[0].Name)
		sb.WriteString(" (")

		for j, def := range group {
			if j > 0 {
				sb.WriteString("; ")
			}

			sb.WriteString(def.Location())
		}

		sb.WriteString(")")
	}

	return sb.String()
}

func (e *RedefinitionError) Unwrap() error { return ErrRedefinition }

func (e *RedefinitionError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.Groups)+1)
	attrs = append(attrs, slog.String("error", ErrRedefinition.msg))

	for _, group := range e.Groups {
		locs := make([]string, 0, len(group))
		for _, def := range group {
			locs = append(locs, def.Location())
		}

		attrs = append(attrs, slog.Any(group[0].Name, locs))
	}

	return slog.GroupValue(attrs...)
}

// CircularDefinitionError reports the names that could not be resolved
// because each depends, directly or transitively, on another unresolved
// name.
type CircularDefinitionError struct {
	Names []string
}

func (e *CircularDefinitionError) Error() string {
	return "the following names are involved in a circular definition: " +
		strings.Join(e.Names, ",")
}

func (e *CircularDefinitionError) Unwrap() error { return ErrCircularDefinition }

func (e *CircularDefinitionError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrCircularDefinition.msg),
		slog.Any("names", e.Names),
	)
}

// MissingDefinitionError reports names used in definition bodies that have
// no definition in the compilation unit.
type MissingDefinitionError struct {
	Names []string
	// Referrers are the definitions whose bodies use a missing name.
	Referrers []*Definition
}

func (e *MissingDefinitionError) Error() string {
	return "the following names are undefined: " + strings.Join(e.Names, ",")
}

func (e *MissingDefinitionError) Unwrap() error { return ErrMissingDefinition }

func (e *MissingDefinitionError) LogValue() slog.Value {
	refs := make([]string, 0, len(e.Referrers))
	for _, def := range e.Referrers {
		refs = append(refs, def.Name+"@"+def.Location())
	}

	return slog.GroupValue(
		slog.String("error", ErrMissingDefinition.msg),
		slog.Any("names", e.Names),
		slog.Any("referrers", refs),
	)
}

// UndefinedNameError reports a name evaluated before it was added to the
// namespace.
type UndefinedNameError struct {
	Name string
}

func (e *UndefinedNameError) Error() string {
	return "invalid name '" + e.Name + "'"
}

func (e *UndefinedNameError) Unwrap() error { return ErrUndefinedName }

func (e *UndefinedNameError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrUndefinedName.msg),
		slog.String("name", e.Name),
	)
}

// SourceError locates an error within a named source text.
type SourceError struct {
	Source string
	Span   Span     // Span of the marker that failed
	Pos    Position // Position of the failure
	Err    error
}

func (e *SourceError) Error() string {
	var sb strings.Builder

	if e.Source != "" {
		sb.WriteString(e.Source)
		sb.WriteString(": ")
	}

	sb.WriteString("line ")
	sb.WriteString(strconv.Itoa(e.Pos.Line))
	sb.WriteString(" at character ")
	sb.WriteString(strconv.Itoa(e.Pos.Column))
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())

	return sb.String()
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("source", e.Source),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.Int("start", e.Span.Start),
		slog.Int("end", e.Span.End),
		slog.Any("cause", e.Err),
	)
}
