package lang

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/ledgerscript/log"
)

// Source is a named source text. Name is used only for diagnostics and may be
// empty for a single anonymous text.
type Source struct {
	Name string
	Text string
}

// Option configures a [Compiler].
type Option func(*Compiler)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithCache controls whether extraction results are shared through the
// package-level cache. It is enabled by default.
func WithCache(enable bool) Option {
	return func(c *Compiler) {
		c.cache = enable
	}
}

// WithConcurrency limits the number of source texts extracted concurrently
// by [Compiler.Resolve]. Values less than 1 select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(c *Compiler) {
		c.concurrency = n
	}
}

// Compiler resolves and renders source texts.
// A Compiler is safe for concurrent use.
type Compiler struct {
	logger      log.Logger
	cache       bool
	concurrency int
}

// New returns a Compiler configured with opts.
func New(opts ...Option) *Compiler {
	c := &Compiler{cache: true}

	for _, opt := range opts {
		opt(c)
	}

	if c.concurrency < 1 {
		c.concurrency = runtime.GOMAXPROCS(0)
	}

	return c
}

// Compile compiles a single anonymous source text.
func Compile(ctx context.Context, text string, opts ...Option) (string, error) {
	return New(opts...).Compile(ctx, text)
}

// CompileMany compiles sources as one unit sharing a single namespace.
func CompileMany(
	ctx context.Context,
	sources []Source,
	opts ...Option,
) ([]Source, error) {
	return New(opts...).CompileMany(ctx, sources)
}

// Text holds the markers extracted from one source text of a [Unit].
type Text struct {
	Source      Source
	Definitions []*Definition
	References  []ResolvedReference
}

// Unit is a resolved compilation unit: one or more source texts sharing a
// namespace.
type Unit struct {
	Namespace Namespace
	Texts     []Text
}

// Definitions returns the definitions of all texts of u in source order.
func (u *Unit) Definitions() []*Definition {
	var defs []*Definition
	for _, t := range u.Texts {
		defs = append(defs, t.Definitions...)
	}

	return defs
}

// Render splices the values and names of u into each source text.
func (u *Unit) Render() []Source {
	out := make([]Source, len(u.Texts))

	for i, t := range u.Texts {
		replacements := make(
			[]Replacement, 0, len(t.Definitions)+len(t.References),
		)

		for _, def := range t.Definitions {
			replacements = append(replacements, Replacement{
				Span: def.Span,
				Text: FormatValue(u.Namespace[def.Name]),
			})
		}

		for _, ref := range t.References {
			replacements = append(replacements, Replacement{
				Span: ref.Span,
				Text: FormatName(ref.Name),
			})
		}

		out[i] = Source{
			Name: t.Source.Name,
			Text: Splice(t.Source.Text, replacements),
		}
	}

	return out
}

// Compile compiles a single anonymous source text.
func (c *Compiler) Compile(ctx context.Context, text string) (string, error) {
	out, err := c.CompileMany(ctx, []Source{{Text: text}})
	if err != nil {
		return "", err
	}

	return out[0].Text, nil
}

// CompileMany compiles sources as one unit sharing a single namespace. The
// result holds one compiled text per source, in the same order.
// Any error aborts the whole unit.
func (c *Compiler) CompileMany(
	ctx context.Context,
	sources []Source,
) ([]Source, error) {
	unit, err := c.Resolve(ctx, sources...)
	if err != nil {
		return nil, err
	}

	out := unit.Render()

	c.logger.TraceContext(ctx, "render complete",
		slog.Int("source_count", len(out)),
	)

	return out, nil
}

// Resolve extracts the markers of every source concurrently, resolves each
// text's references against its own definitions, and resolves the pooled
// definitions of all texts into one namespace.
func (c *Compiler) Resolve(ctx context.Context, sources ...Source) (*Unit, error) {
	unit := &Unit{Texts: make([]Text, len(sources))}
	refs := make([][]Reference, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			ex, err := c.extract(gctx, src)
			if err != nil {
				return err
			}

			unit.Texts[i] = Text{Source: src, Definitions: ex.defs}
			refs[i] = ex.refs

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range unit.Texts {
		t := &unit.Texts[i]

		resolved, err := ResolveReferences(refs[i], t.Definitions)
		if err != nil {
			// Only a reference without definitions fails; point at the first.
			first := refs[i][0].Span

			return nil, &SourceError{
				Source: t.Source.Name,
				Span:   first,
				Pos:    PositionOf(t.Source.Text, first.Start),
				Err:    err,
			}
		}

		t.References = resolved
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defs := unit.Definitions()

	ns, err := ResolveDefinitions(defs)
	if err != nil {
		return nil, err
	}

	unit.Namespace = ns

	c.logger.TraceContext(ctx, "namespace resolved",
		slog.Int("source_count", len(sources)),
		slog.Int("definition_count", len(defs)),
	)

	return unit, nil
}

// Resolve resolves sources as one unit without rendering them.
func Resolve(ctx context.Context, sources []Source, opts ...Option) (*Unit, error) {
	return New(opts...).Resolve(ctx, sources...)
}
