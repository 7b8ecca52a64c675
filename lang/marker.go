package lang

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	// definitionPattern matches @=name[body]. The body ends at the first ']'.
	definitionPattern = regexp.MustCompile(
		`@=([a-zA-Z](?:[a-zA-Z\d_]*[a-zA-Z\d])?)\[([^\]]*)\]`,
	)

	referencePattern = regexp.MustCompile(`@[<>]`)
)

// Span is a half-open byte range [Start, End) of a source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// Position is a 1-based line and column (in bytes) of a source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// lineIndex maps byte offsets of a text to positions.
type lineIndex []int // offsets of each '\n'

func newLineIndex(text string) lineIndex {
	var idx lineIndex

	for i := range len(text) {
		if text[i] == '\n' {
			idx = append(idx, i)
		}
	}

	return idx
}

func (idx lineIndex) position(offset int) Position {
	// Number of newlines strictly before offset.
	n := sort.SearchInts(idx, offset)
	if n == 0 {
		return Position{Line: 1, Column: offset + 1}
	}

	return Position{Line: n + 1, Column: offset - idx[n-1]}
}

// PositionOf returns the position of a byte offset in text.
func PositionOf(text string, offset int) Position {
	offset = min(max(offset, 0), len(text))
	line := strings.Count(text[:offset], "\n") + 1
	col := offset - strings.LastIndexByte(text[:offset], '\n')

	return Position{Line: line, Column: col}
}

// Definition is a named expression embedded in a source text.
// Definitions are never modified after extraction and may be shared between
// goroutines.
type Definition struct {
	Source string   // name of the source text, empty for anonymous text
	Span   Span     // span of the whole marker
	Pos    Position // position of Span.Start
	Name   string
	Body   Production

	deps struct {
		once  sync.Once
		names []string
	}
}

// Dependencies returns the sorted, distinct names used in the body of d.
// The result is computed once and must not be modified.
func (d *Definition) Dependencies() []string {
	d.deps.once.Do(func() {
		d.deps.names = Dependencies(d.Body)
	})

	return d.deps.names
}

// Location formats the source and position of d for diagnostics.
func (d *Definition) Location() string {
	if d.Source == "" {
		return d.Pos.String()
	}

	return d.Source + ":" + d.Pos.String()
}

// Direction selects which neighboring definition a [Reference] names.
type Direction int

const (
	DirectionLeft  Direction = iota // left
	DirectionRight                  // right
)

// Reference is a directional marker that resolves to the name of the
// nearest definition in its direction.
type Reference struct {
	Span      Span
	Direction Direction
}

// ExtractDefinitions returns the definitions of text in scan order.
func ExtractDefinitions(text string) ([]*Definition, error) {
	return extractDefinitions("", text)
}

func extractDefinitions(source, text string) ([]*Definition, error) {
	matches := definitionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	lines := newLineIndex(text)
	defs := make([]*Definition, 0, len(matches))

	for _, m := range matches {
		span := Span{Start: m[0], End: m[1]}
		bodyStart := m[4]

		body, err := Parse(text[bodyStart:m[5]])
		if err != nil {
			offset := span.Start
			if te, ok := err.(*TokenError); ok {
				offset = bodyStart + te.Offset
			}

			return nil, &SourceError{
				Source: source,
				Span:   span,
				Pos:    lines.position(offset),
				Err:    err,
			}
		}

		defs = append(defs, &Definition{
			Source: source,
			Span:   span,
			Pos:    lines.position(span.Start),
			Name:   text[m[2]:m[3]],
			Body:   body,
		})
	}

	return defs, nil
}

// ExtractReferences returns the references of text in scan order.
func ExtractReferences(text string) []Reference {
	matches := referencePattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]Reference, 0, len(matches))

	for _, m := range matches {
		dir := DirectionRight
		if text[m[0]+1] == '<' {
			dir = DirectionLeft
		}

		refs = append(refs, Reference{
			Span:      Span{Start: m[0], End: m[1]},
			Direction: dir,
		})
	}

	return refs
}
