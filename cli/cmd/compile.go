package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"github.com/ardnew/ledgerscript/lang"
	"github.com/ardnew/ledgerscript/log"
	"github.com/ardnew/ledgerscript/pkg"
)

const (
	// lockFile is the advisory lock held in the target directory while
	// compiled files are written.
	lockFile = "." + pkg.Name + ".lock"

	lockRetryDelay = 50 * time.Millisecond

	fileMode os.FileMode = 0o644
)

// Compile compiles source files as one unit sharing a single namespace.
//
// With no files, standard input is compiled to standard output. Otherwise
// each compiled file is written under Target at the path it was read from.
type Compile struct {
	Target string   `default:"target" help:"Output directory for compiled files"          short:"t" type:"path"`
	Watch  bool     `                 help:"Recompile whenever a source file changes"     short:"w"`
	Files  []string `                 help:"Source files, or '-' for standard input" arg:"" name:"file" optional:""`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !c.Watch {
		return c.compile(ctx)
	}

	if len(c.Files) == 0 || slices.Contains(c.Files, stdinSource) {
		return ErrWatchStdin
	}

	return watch(ctx, c.Files, c.compile)
}

// compile reads, compiles, and writes every source once.
func (c *Compile) compile(ctx context.Context) error {
	sources, err := readSources(ctx, c.Files)
	if err != nil {
		return err
	}

	compiled, err := lang.CompileMany(ctx, sources, compilerOptions()...)
	if err != nil {
		return err
	}

	return c.write(ctx, compiled)
}

// write writes each compiled source to its destination. Files under the
// target directory are written while holding the target's advisory lock.
func (c *Compile) write(ctx context.Context, compiled []lang.Source) error {
	var files []lang.Source

	for _, src := range compiled {
		if !isStdout(src) {
			files = append(files, src)

			continue
		}

		if _, err := io.WriteString(outputFrom(ctx), src.Text); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	if len(files) == 0 {
		return nil
	}

	if err := os.MkdirAll(c.Target, pkg.DirMode); err != nil {
		return ErrWriteTarget.Wrap(err).With(slog.String("target", c.Target))
	}

	lock := flock.New(filepath.Join(c.Target, lockFile))

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return ErrLockTarget.Wrap(err).With(slog.String("target", c.Target))
	}

	defer func() { _ = lock.Unlock() }()

	for _, src := range files {
		path := targetPath(c.Target, src.Name)

		if err := os.MkdirAll(filepath.Dir(path), pkg.DirMode); err != nil {
			return ErrWriteTarget.Wrap(err).With(slog.String("file", path))
		}

		if err := os.WriteFile(path, []byte(src.Text), fileMode); err != nil {
			return ErrWriteTarget.Wrap(err).With(slog.String("file", path))
		}

		log.DebugContext(ctx, "wrote compiled file",
			slog.String("source", src.Name),
			slog.String("file", path),
			slog.String("size", humanize.Bytes(uint64(len(src.Text)))),
		)
	}

	return nil
}

// targetPath returns the path under target where the compiled form of the
// source file name is written. Absolute paths and paths leading out of the
// working directory are re-rooted under target.
func targetPath(target, name string) string {
	rel := filepath.Clean(name)
	rel = strings.TrimPrefix(rel, filepath.VolumeName(rel))
	rel = strings.TrimLeft(rel, string(filepath.Separator))

	parent := ".." + string(filepath.Separator)
	for strings.HasPrefix(rel, parent) {
		rel = rel[len(parent):]
	}

	return filepath.Join(target, rel)
}
