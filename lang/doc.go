// Package lang compiles text documents that embed arithmetic definitions and
// directional references.
//
// # Markers
//
// A definition marker names an arithmetic expression:
//
//	@=name[expression]
//
// Names begin with a letter, may contain letters, digits, and underscores,
// and may not end with an underscore. The expression body uses numbers,
// names of other definitions, the binary operators + - * /, and
// parentheses. Multiplication and division bind tighter than addition and
// subtraction, and operators of equal precedence associate to the left.
//
// A reference marker names a neighboring definition:
//
//	@<  the nearest definition to the left
//	@>  the nearest definition to the right
//
// Definitions of a text form a ring, so a reference past either end wraps
// around to the opposite end.
//
// # Compilation
//
// Compilation replaces each definition marker with its value rendered with
// two fractional digits, and each reference marker with the referenced name
// with underscores rendered as spaces:
//
//	Pay @=rate[50*2] to @<.   →   Pay 100.00 to rate.
//
// Definitions may use each other in any order. Several texts compiled
// together with [CompileMany] share one namespace, while references only
// ever name definitions of their own text.
//
// # Errors
//
// Failures are reported with typed errors that unwrap to the sentinel
// values of this package, so callers may test them with [errors.Is] and
// inspect details with [errors.As]:
//
//	[*TokenError]               ErrInvalidToken
//	[*ExpressionError]          ErrInvalidExpression
//	[*RedefinitionError]        ErrRedefinition
//	[*CircularDefinitionError]  ErrCircularDefinition
//	[*MissingDefinitionError]   ErrMissingDefinition
//	[*UndefinedNameError]       ErrUndefinedName
//
// Errors tied to a marker are wrapped in a [*SourceError] carrying the name
// of the text and the line and column of the failure.
package lang
