package lang

import (
	"cmp"
	"slices"
	"strings"
)

// Replacement substitutes Text for the bytes of a source covered by Span.
type Replacement struct {
	Span Span
	Text string
}

// Splice returns source with every replacement applied.
// Replacement spans must not overlap; their order does not matter.
func Splice(source string, replacements []Replacement) string {
	if len(replacements) == 0 {
		return source
	}

	sorted := slices.Clone(replacements)
	slices.SortFunc(sorted, func(a, b Replacement) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})

	size := len(source)
	for _, r := range sorted {
		size += len(r.Text) - r.Span.Len()
	}

	var sb strings.Builder

	sb.Grow(max(size, 0))

	prev := 0 // end of the previous span; a zero-length span at 0 precedes all

	for _, r := range sorted {
		sb.WriteString(source[prev:r.Span.Start])
		sb.WriteString(r.Text)
		prev = r.Span.End
	}

	// A zero-length span at len(source) follows all.
	sb.WriteString(source[prev:])

	return sb.String()
}
