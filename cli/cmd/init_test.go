package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// initCLI is a minimal command line whose flags init writes.
type initCLI struct {
	Level   string   `default:"warn"`
	Pretty  bool     `default:"true"`
	Workers int      `default:"4"`
	Empty   string   `default:""`
	Secret  string   `default:"x"    hidden:""`
	Tags    []string `default:"a,b"`

	Init Init `cmd:""`
}

func initContext(t *testing.T, confPath string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse([]string{"init"})
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			err := (&Init{Force: tt.force}).Run(initContext(t, confPath))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, data)
			}

			if got["level"] != "warn" || got["pretty"] != true {
				t.Errorf("config = %v", got)
			}

			if _, ok := got["workers"]; !ok {
				t.Errorf("config missing workers: %v", got)
			}

			if tags, ok := got["tags"].([]any); !ok || len(tags) != 2 {
				t.Errorf("config tags = %#v", got["tags"])
			}

			for _, key := range []string{"empty", "secret", "help", "existing"} {
				if _, ok := got[key]; ok {
					t.Errorf("config should not contain %q: %v", key, got)
				}
			}
		})
	}
}

func TestInitNoContext(t *testing.T) {
	err := (&Init{}).Run(context.Background())
	if !errors.Is(err, ErrNoContext) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoContext)
	}
}
