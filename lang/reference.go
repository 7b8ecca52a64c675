package lang

import (
	"cmp"
	"slices"
)

// ResolvedReference is a [Reference] paired with the name of the definition
// it points to.
type ResolvedReference struct {
	Span Span
	Name string
}

// ResolveReferences names the definition each reference points to.
//
// A [DirectionRight] reference names the first definition starting at or
// after it, and a [DirectionLeft] reference names the last definition
// starting before it. The definitions form a ring: a left reference before
// the first definition names the last one, and a right reference after the
// last definition names the first one.
//
// Resolving any reference without definitions fails with [ErrNoDefinitions].
func ResolveReferences(
	refs []Reference,
	defs []*Definition,
) ([]ResolvedReference, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	if len(defs) == 0 {
		return nil, ErrNoDefinitions
	}

	sorted := slices.SortedStableFunc(
		slices.Values(defs),
		func(a, b *Definition) int { return cmp.Compare(a.Span.Start, b.Span.Start) },
	)

	n := len(sorted)
	out := make([]ResolvedReference, 0, len(refs))

	for _, ref := range refs {
		i, _ := slices.BinarySearchFunc(
			sorted, ref.Span.Start,
			func(d *Definition, start int) int { return cmp.Compare(d.Span.Start, start) },
		)

		if ref.Direction == DirectionLeft {
			i--
		}

		out = append(out, ResolvedReference{
			Span: ref.Span,
			Name: sorted[((i%n)+n)%n].Name,
		})
	}

	return out, nil
}
