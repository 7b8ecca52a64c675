package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "ledgerscript" {
		t.Errorf("expected Name to be %q, got %q", "ledgerscript", Name)
	}

	if Description == "" {
		t.Error("expected non-empty Description")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("expected Version to be %q, got %q", content, Version())
	}

	if strings.ContainsAny(Version(), " \n") {
		t.Errorf("expected trimmed version, got %q", Version())
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("expected Author to have at least one entry")
	}

	for _, a := range Author {
		if a.Name == "" || !strings.Contains(a.Email, "@") {
			t.Errorf("invalid author %+v", a)
		}
	}
}

func TestPrefix(t *testing.T) {
	p := Prefix()
	if p == "" {
		t.Fatal("expected non-empty Prefix")
	}

	if strings.HasPrefix(p, ".") {
		t.Errorf("expected leading dots removed, got %q", p)
	}
}

func TestPaths(t *testing.T) {
	if got := filepath.Base(ConfigDir()); got != Prefix() {
		t.Errorf("ConfigDir() = %q, want base %q", ConfigDir(), Prefix())
	}

	if got := filepath.Base(CacheDir()); got != Prefix() {
		t.Errorf("CacheDir() = %q, want base %q", CacheDir(), Prefix())
	}

	if got, want := ConfigPath("config.yaml"), filepath.Join(ConfigDir(), "config.yaml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}

	if got, want := CachePath("history"), filepath.Join(CacheDir(), "history"); got != want {
		t.Errorf("CachePath() = %q, want %q", got, want)
	}
}

func TestUserDir(t *testing.T) {
	base := t.TempDir()

	got := userDir(func() (string, error) { return base, nil }, ".unused")
	if want := filepath.Join(base, Prefix()); got != want {
		t.Errorf("userDir() = %q, want %q", got, want)
	}

	t.Setenv("HOME", base)

	got = userDir(func() (string, error) { return "", os.ErrNotExist }, ".fallback")
	if want := filepath.Join(base, ".fallback", Prefix()); got != want {
		t.Errorf("userDir() fallback = %q, want %q", got, want)
	}
}
