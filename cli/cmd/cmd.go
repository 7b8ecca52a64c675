package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/ledgerscript/lang"
	"github.com/ardnew/ledgerscript/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	inputKey  struct{}
	outputKey struct{}
)

// WithInput returns a new context.Context whose commands read standard input
// from r instead of os.Stdin.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

// WithOutput returns a new context.Context whose commands write their results
// to w instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// compilerOptions returns the options shared by every command that drives the
// compiler.
func compilerOptions() []lang.Option {
	return []lang.Option{lang.WithLogger(log.Default())}
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// hard links.
type fileKey struct {
	dev uint64
	ino uint64
}

const (
	// stdinSource is the special source path for reading from stdin.
	stdinSource = "-"
	// stdinName names the source read from stdin when it is compiled with
	// other files.
	stdinName = "<stdin>"
)

// uniquePaths returns paths with every repeated file removed, keeping the
// first occurrence of each. Files are compared by device and inode after
// resolving symlinks. All occurrences of "-" collapse to one.
func uniquePaths(paths []string) ([]string, error) {
	unique := make([]string, 0, len(paths))
	seen := make(map[fileKey]struct{}, len(paths))
	stdin := false

	for _, path := range paths {
		if path == stdinSource {
			if !stdin {
				unique = append(unique, path)
			}

			stdin = true

			continue
		}

		key, err := makeFileKey(path)
		if err != nil {
			return nil, ErrReadSource.Wrap(err).With(slog.String("file", path))
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		unique = append(unique, path)
	}

	return unique, nil
}

// makeFileKey returns the device and inode of the file at path.
func makeFileKey(path string) (key fileKey, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return key, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return key, err
	}

	if info.IsDir() {
		return key, ErrIsDirectory
	}

	dev, ino, ok := inode(info)
	if !ok {
		// Fall back to the cleaned absolute path on systems without inodes.
		abs, err := filepath.Abs(resolved)
		if err != nil {
			return key, err
		}

		return fileKey{ino: xxh3.HashString(abs)}, nil
	}

	return fileKey{dev: dev, ino: ino}, nil
}

// readSources reads each unique path into a [lang.Source] named by its path.
// With no paths, a single anonymous source is read from stdin.
func readSources(ctx context.Context, paths []string) ([]lang.Source, error) {
	if len(paths) == 0 {
		src, err := lang.New(compilerOptions()...).Read(ctx, "", inputFrom(ctx))
		if err != nil {
			return nil, err
		}

		return []lang.Source{src}, nil
	}

	paths, err := uniquePaths(paths)
	if err != nil {
		return nil, err
	}

	c := lang.New(compilerOptions()...)
	sources := make([]lang.Source, 0, len(paths))

	for _, path := range paths {
		if path == stdinSource {
			src, err := c.Read(ctx, stdinName, inputFrom(ctx))
			if err != nil {
				return nil, err
			}

			sources = append(sources, src)

			continue
		}

		src, err := readFile(ctx, c, path)
		if err != nil {
			return nil, err
		}

		sources = append(sources, src)
	}

	return sources, nil
}

func readFile(ctx context.Context, c *lang.Compiler, path string) (lang.Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return lang.Source{}, ErrReadSource.Wrap(err).With(slog.String("file", path))
	}
	defer file.Close()

	return c.Read(ctx, path, file)
}

// isStdout reports whether the compiled form of src is written to the
// output stream rather than under the target directory.
func isStdout(src lang.Source) bool {
	return src.Name == "" || src.Name == stdinName
}
