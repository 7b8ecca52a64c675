package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "left_reference",
			text: "Pay @=rate[50*2] to @<.",
			want: "Pay 100.00 to rate.",
		},
		{
			name: "right_reference_wraps",
			text: "@=unit_price[9.5] @> items",
			want: "9.50 unit price items",
		},
		{
			name: "no_markers",
			text: "plain text without markers",
			want: "plain text without markers",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
		{
			name: "forward_use",
			text: "@=total[price*2] @=price[3]",
			want: "6.00 3.00",
		},
		{
			name: "multiline",
			text: "Hours: @=hours[37.5]\nRate: @=rate[40]\nDue: @=due[hours*rate] for @<\n",
			want: "Hours: 37.50\nRate: 40.00\nDue: 1500.00 for due\n",
		},
		{
			name: "between",
			text: "@=first[1] @< @> @=second[2]",
			want: "1.00 first second 2.00",
		},
		{
			name: "non_finite",
			text: "@=a[1/0] @=b[0-a] @=c[0/0]",
			want: "+Inf -Inf NaN",
		},
		{
			name: "rounding",
			text: "@=third[1/3] @=two_thirds[2/3]",
			want: "0.33 0.67",
		},
		{
			name: "unmatched_markers_kept",
			text: "@=x[1] @ @= @=_[1] @=y_[2]",
			want: "1.00 @ @= @=_[1] @=y_[2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}

			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "invalid_token", text: "@=a[1 & 2]", want: ErrInvalidToken},
		{name: "invalid_expression", text: "@=a[(1]", want: ErrInvalidExpression},
		{name: "redefinition", text: "@=a[1] @=a[2]", want: ErrRedefinition},
		{name: "circular", text: "@=a[b] @=b[a]", want: ErrCircularDefinition},
		{name: "missing", text: "@=a[b]", want: ErrMissingDefinition},
		{name: "no_definitions", text: "see @<", want: ErrNoDefinitions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(context.Background(), tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compile() error = %v, want %v", err, tt.want)
			}

			if got != "" {
				t.Errorf("expected no output on error, got %q", got)
			}
		})
	}
}

func TestCompile_NoDefinitionsPosition(t *testing.T) {
	_, err := Compile(context.Background(), "line one\nsee @< here")

	var se *SourceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SourceError", err)
	}

	if want := (Position{Line: 2, Column: 5}); se.Pos != want {
		t.Errorf("Pos = %v, want %v", se.Pos, want)
	}
}

func TestCompile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compile(ctx, "@=a[1]")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCompileMany(t *testing.T) {
	sources := []Source{
		{Name: "rates.txt", Text: "Base rate @=rate[10] per @<."},
		{Name: "invoice.txt", Text: "Total @=total[rate*3] is @<."},
		{Name: "notes.txt", Text: "Nothing to compile here."},
	}

	out, err := CompileMany(context.Background(), sources)
	if err != nil {
		t.Fatalf("CompileMany failed: %v", err)
	}

	want := []Source{
		{Name: "rates.txt", Text: "Base rate 10.00 per rate."},
		{Name: "invoice.txt", Text: "Total 30.00 is total."},
		{Name: "notes.txt", Text: "Nothing to compile here."},
	}

	if len(out) != len(want) {
		t.Fatalf("expected %d outputs, got %d", len(want), len(out))
	}

	for i := range want {
		if out[i] != want[i] {
			t.Errorf("output %d = %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestCompileMany_ReferencesStayInText(t *testing.T) {
	sources := []Source{
		{Name: "a.txt", Text: "@=one[1] @>"},
		{Name: "b.txt", Text: "@=two[one+1] @< @>"},
	}

	out, err := CompileMany(context.Background(), sources)
	if err != nil {
		t.Fatalf("CompileMany failed: %v", err)
	}

	if out[0].Text != "1.00 one" {
		t.Errorf("a.txt = %q, want %q", out[0].Text, "1.00 one")
	}

	if out[1].Text != "2.00 two two" {
		t.Errorf("b.txt = %q, want %q", out[1].Text, "2.00 two two")
	}
}

func TestCompileMany_Redefinition(t *testing.T) {
	sources := []Source{
		{Name: "a.txt", Text: "@=x[1]"},
		{Name: "b.txt", Text: "first\n@=y[2] @=x[2]"},
	}

	_, err := CompileMany(context.Background(), sources)

	var re *RedefinitionError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *RedefinitionError", err)
	}

	if len(re.Groups) != 1 || len(re.Groups[0]) != 2 {
		t.Fatalf("unexpected groups: %v", re.Groups)
	}

	locs := []string{re.Groups[0][0].Location(), re.Groups[0][1].Location()}
	if locs[0] != "a.txt:1:1" || locs[1] != "b.txt:2:8" {
		t.Errorf("locations = %v", locs)
	}

	if !strings.Contains(err.Error(), "x (a.txt:1:1; b.txt:2:8)") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCompileMany_TextWithoutDefinitions(t *testing.T) {
	sources := []Source{
		{Name: "a.txt", Text: "@=x[1]"},
		{Name: "b.txt", Text: "refers to @<"},
	}

	_, err := CompileMany(context.Background(), sources)

	var se *SourceError
	if !errors.As(err, &se) || se.Source != "b.txt" {
		t.Fatalf("error = %v, want *SourceError in b.txt", err)
	}

	if !errors.Is(err, ErrNoDefinitions) {
		t.Error("expected error to match ErrNoDefinitions")
	}
}

func TestCompileMany_SourceErrorNamesText(t *testing.T) {
	sources := []Source{
		{Name: "good.txt", Text: "@=x[1]"},
		{Name: "bad.txt", Text: "@=y[1 ? 2]"},
	}

	_, err := CompileMany(context.Background(), sources, WithConcurrency(1))
	if err == nil || !strings.HasPrefix(err.Error(), "bad.txt: line 1 at character 7: ") {
		t.Errorf("error = %v, want located in bad.txt", err)
	}
}

func TestCompileMany_Empty(t *testing.T) {
	out, err := CompileMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("CompileMany failed: %v", err)
	}

	if len(out) != 0 {
		t.Errorf("expected no outputs, got %v", out)
	}
}

func TestResolve(t *testing.T) {
	unit, err := Resolve(context.Background(), []Source{
		{Name: "a.txt", Text: "@=a[1] @<"},
		{Name: "b.txt", Text: "@=b[a*2]"},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if unit.Namespace["a"] != 1 || unit.Namespace["b"] != 2 {
		t.Errorf("Namespace = %v", unit.Namespace)
	}

	if n := len(unit.Definitions()); n != 2 {
		t.Errorf("expected 2 definitions, got %d", n)
	}

	if refs := unit.Texts[0].References; len(refs) != 1 || refs[0].Name != "a" {
		t.Errorf("References = %v", refs)
	}

	rendered := unit.Render()
	if rendered[0].Text != "1.00 a" || rendered[1].Text != "2.00" {
		t.Errorf("Render() = %v", rendered)
	}
}

func TestNew_Concurrency(t *testing.T) {
	if c := New(WithConcurrency(0)); c.concurrency < 1 {
		t.Errorf("concurrency = %d, want at least 1", c.concurrency)
	}

	if c := New(WithConcurrency(3)); c.concurrency != 3 {
		t.Errorf("concurrency = %d, want 3", c.concurrency)
	}
}
