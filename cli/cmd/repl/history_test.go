package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)
	h := NewHistory(path)

	if err := h.Load(); err != nil {
		t.Fatalf("Load() of missing file error = %v", err)
	}

	for _, entry := range []string{"one", "  two  ", "", "one", "one", "three"} {
		if err := h.Add(entry); err != nil {
			t.Fatalf("Add(%q) error = %v", entry, err)
		}
	}

	want := []string{"two", "one", "three"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "two\none\nthree\n" {
		t.Errorf("history file = %q", got)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %q, want %q", got, want)
	}
}

func TestHistoryEntry(t *testing.T) {
	h := NewHistory("")

	_ = h.Add("first")
	_ = h.Add("second")

	tests := []struct {
		index   int
		want    string
		wantErr bool
	}{
		{0, "first", false},
		{1, "second", false},
		{-1, "", true},
		{2, "", true},
	}

	for _, tt := range tests {
		got, err := h.Entry(tt.index)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Entry(%d) = %q, %v", tt.index, got, err)
		}

		if tt.wantErr && !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v, want %v", tt.index, err, ErrOutOfBounds)
		}
	}

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}
