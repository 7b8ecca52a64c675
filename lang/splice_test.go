package lang

import "testing"

func TestSplice(t *testing.T) {
	tests := []struct {
		name   string
		source string
		reps   []Replacement
		want   string
	}{
		{
			name:   "identity",
			source: "unchanged text",
			want:   "unchanged text",
		},
		{
			name:   "whole_text",
			source: "@=a[1]",
			reps:   []Replacement{{Span: Span{0, 6}, Text: "1.00"}},
			want:   "1.00",
		},
		{
			name:   "unordered",
			source: "x @< y @> z",
			reps: []Replacement{
				{Span: Span{7, 9}, Text: "right"},
				{Span: Span{2, 4}, Text: "left"},
			},
			want: "x left y right z",
		},
		{
			name:   "adjacent",
			source: "@<@>",
			reps: []Replacement{
				{Span: Span{0, 2}, Text: "a"},
				{Span: Span{2, 4}, Text: "b"},
			},
			want: "ab",
		},
		{
			name:   "insert_at_ends",
			source: "middle",
			reps: []Replacement{
				{Span: Span{6, 6}, Text: "]"},
				{Span: Span{0, 0}, Text: "["},
			},
			want: "[middle]",
		},
		{
			name:   "delete",
			source: "keep-drop-keep",
			reps:   []Replacement{{Span: Span{4, 10}, Text: ""}},
			want:   "keepkeep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Splice(tt.source, tt.reps); got != tt.want {
				t.Errorf("Splice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplice_DoesNotReorderInput(t *testing.T) {
	reps := []Replacement{
		{Span: Span{2, 3}, Text: "B"},
		{Span: Span{0, 1}, Text: "A"},
	}

	if got := Splice("a-b", reps); got != "A-B" {
		t.Errorf("Splice() = %q, want %q", got, "A-B")
	}

	if reps[0].Text != "B" {
		t.Error("expected caller's replacements to keep their order")
	}
}
