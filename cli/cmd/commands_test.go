package cmd

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ardnew/ledgerscript/lang"
)

const ledger = "Pay @=rate[50*2] to @<.\nThen @=hours[rate/25] for @<.\n"

func TestDump(t *testing.T) {
	tests := []struct {
		format string
		indent int
		check  func(out string) bool
	}{
		{"native", 2, func(out string) bool {
			return out == "@=hours[4]\n@=rate[100]\n"
		}},
		{"json", 0, func(out string) bool {
			return out == `{"hours":4,"rate":100}`+"\n"
		}},
		{"json", 2, func(out string) bool {
			return strings.Contains(out, "\n  \"rate\": 100\n")
		}},
		{"yaml", 2, func(out string) bool {
			return strings.Contains(out, "hours: 4") && strings.Contains(out, "rate: 100")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ctx, out := testContext(ledger)

			d := &Dump{Format: tt.format, Indent: tt.indent}
			if err := d.Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if !tt.check(out.String()) {
				t.Errorf("dump %s = %q", tt.format, out.String())
			}
		})
	}
}

func TestDumpCircular(t *testing.T) {
	ctx, _ := testContext("@=a[b] @=b[a]")

	err := (&Dump{Format: "native"}).Run(ctx)
	if !errors.Is(err, lang.ErrCircularDefinition) {
		t.Errorf("Run() error = %v, want %v", err, lang.ErrCircularDefinition)
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		expr    string
		want    string
		wantErr bool
	}{
		{expr: "rate * 12 > 1000", want: "true"},
		{expr: "rate / 3", want: "33.33"},
		{expr: "hours * rate", want: "400.00"},
		{expr: `rate > 50 ? "high" : "low"`, want: "high"},
		{expr: "missing + 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ctx, out := testContext(ledger)

			err := (&Query{Expr: tt.expr}).Run(ctx)
			if tt.wantErr {
				if !errors.Is(err, lang.ErrQuery) {
					t.Errorf("Run() error = %v, want %v", err, lang.ErrQuery)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := strings.TrimSuffix(out.String(), "\n"); got != tt.want {
				t.Errorf("query %q = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

var (
	deleted  = regexp.MustCompile(`(?s)\[-(.*?)-\]`)
	inserted = regexp.MustCompile(`(?s)\{\+(.*?)\+\}`)
)

// undiff recovers the texts on either side of a marked-up diff.
func undiff(marked string) (before, after string) {
	before = inserted.ReplaceAllString(deleted.ReplaceAllString(marked, "$1"), "")
	after = deleted.ReplaceAllString(inserted.ReplaceAllString(marked, "$1"), "")

	return before, after
}

func TestDiff(t *testing.T) {
	ctx, out := testContext(ledger)

	if err := (&Diff{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	before, after := undiff(out.String())

	if before != ledger {
		t.Errorf("diff before = %q, want %q", before, ledger)
	}

	if want := "Pay 100.00 to rate.\nThen 4.00 for hours.\n"; after != want {
		t.Errorf("diff after = %q, want %q", after, want)
	}
}

func TestDiffFiles(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir,
		[2]string{"a.txt", "@=x[1] plain"},
		[2]string{"b.txt", "unchanged"},
	)

	ctx, out := testContext("")

	if err := (&Diff{Files: paths}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()

	for _, path := range paths {
		if !strings.Contains(got, "--- "+path+"\n") {
			t.Errorf("diff output missing header for %s:\n%s", filepath.Base(path), got)
		}
	}

	if !strings.Contains(got, "\nunchanged\n") {
		t.Errorf("diff output = %q, want unchanged file verbatim", got)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "nil"},
		{2.5, "2.50"},
		{float32(1), "1.00"},
		{7, "7"},
		{"text", "text"},
		{true, "true"},
		{[]any{1, 2}, "[1 2]"},
	}

	for _, tt := range tests {
		if got := formatResult(tt.in); got != tt.want {
			t.Errorf("formatResult(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
