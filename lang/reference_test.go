package lang

import (
	"errors"
	"testing"
)

func TestResolveReferences(t *testing.T) {
	// Definitions are listed out of order to check that resolution sorts them.
	defs := []*Definition{
		{Name: "c", Span: Span{Start: 30, End: 36}},
		{Name: "a", Span: Span{Start: 10, End: 16}},
		{Name: "b", Span: Span{Start: 20, End: 26}},
	}

	tests := []struct {
		name string
		ref  Reference
		want string
	}{
		{name: "left_wraps_to_last", ref: Reference{Span{5, 7}, DirectionLeft}, want: "c"},
		{name: "right_before_first", ref: Reference{Span{5, 7}, DirectionRight}, want: "a"},
		{name: "left_between", ref: Reference{Span{17, 19}, DirectionLeft}, want: "a"},
		{name: "right_between", ref: Reference{Span{17, 19}, DirectionRight}, want: "b"},
		{name: "left_after_last", ref: Reference{Span{40, 42}, DirectionLeft}, want: "c"},
		{name: "right_wraps_to_first", ref: Reference{Span{40, 42}, DirectionRight}, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveReferences([]Reference{tt.ref}, defs)
			if err != nil {
				t.Fatalf("ResolveReferences failed: %v", err)
			}

			if len(got) != 1 {
				t.Fatalf("expected 1 resolved reference, got %d", len(got))
			}

			if got[0].Name != tt.want {
				t.Errorf("Name = %q, want %q", got[0].Name, tt.want)
			}

			if got[0].Span != tt.ref.Span {
				t.Errorf("Span = %+v, want %+v", got[0].Span, tt.ref.Span)
			}
		})
	}
}

func TestResolveReferences_SingleDefinition(t *testing.T) {
	defs := []*Definition{{Name: "only", Span: Span{Start: 10, End: 20}}}
	refs := []Reference{
		{Span: Span{0, 2}, Direction: DirectionLeft},
		{Span: Span{0, 2}, Direction: DirectionRight},
		{Span: Span{30, 32}, Direction: DirectionLeft},
		{Span: Span{30, 32}, Direction: DirectionRight},
	}

	got, err := ResolveReferences(refs, defs)
	if err != nil {
		t.Fatalf("ResolveReferences failed: %v", err)
	}

	for i, r := range got {
		if r.Name != "only" {
			t.Errorf("reference %d: Name = %q, want %q", i, r.Name, "only")
		}
	}
}

func TestResolveReferences_NoDefinitions(t *testing.T) {
	_, err := ResolveReferences([]Reference{{Span: Span{0, 2}}}, nil)
	if !errors.Is(err, ErrNoDefinitions) {
		t.Errorf("error = %v, want ErrNoDefinitions", err)
	}

	got, err := ResolveReferences(nil, nil)
	if err != nil || got != nil {
		t.Errorf("ResolveReferences(nil, nil) = %v, %v; want nil, nil", got, err)
	}
}
