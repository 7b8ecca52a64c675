package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ledgerscript/lang"
)

// Dump resolves the namespace of the source files and prints it.
type Dump struct {
	Format string   `default:"native" enum:"native,json,yaml" help:"Output format (${enum})"                         short:"o"`
	Indent int      `default:"2"                              help:"Indent width for JSON and YAML output"           short:"i"`
	Files  []string `                                         help:"Source files, or '-' for standard input" arg:"" name:"file" optional:""`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := readSources(ctx, d.Files)
	if err != nil {
		return err
	}

	unit, err := lang.Resolve(ctx, sources, compilerOptions()...)
	if err != nil {
		return err
	}

	out := outputFrom(ctx)

	switch d.Format {
	case "json":
		err = unit.Namespace.FormatJSON(ctx, out, d.Indent)
	case "yaml":
		err = unit.Namespace.FormatYAML(ctx, out, d.Indent)
	default:
		err = unit.Namespace.Format(ctx, out)
	}

	if err != nil {
		return lang.WrapError(err).With(slog.String("format", d.Format))
	}

	return nil
}
