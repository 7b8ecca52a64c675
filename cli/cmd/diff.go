package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ardnew/ledgerscript/lang"
)

var (
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true)
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Diff shows what compiling each source file changes, without writing
// anything.
//
// Removed text is printed as [-text-] and inserted text as {+text+}, or in
// color when Color is set.
type Diff struct {
	Color bool     `default:"false" help:"Color changes instead of marking them" negatable:""`
	Files []string `                help:"Source files, or '-' for standard input" arg:"" name:"file" optional:""`
}

// Run executes the diff command.
func (d *Diff) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := readSources(ctx, d.Files)
	if err != nil {
		return err
	}

	compiled, err := lang.CompileMany(ctx, sources, compilerOptions()...)
	if err != nil {
		return err
	}

	var sb strings.Builder

	for i, src := range sources {
		if len(sources) > 1 || src.Name != "" {
			sb.WriteString(d.header(src.Name))
			sb.WriteByte('\n')
		}

		rendered := renderDiff(src.Text, compiled[i].Text, d.Color)
		sb.WriteString(rendered)

		if len(sources) > 1 && !strings.HasSuffix(rendered, "\n") {
			sb.WriteByte('\n')
		}
	}

	if _, err := fmt.Fprint(outputFrom(ctx), sb.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func (d *Diff) header(name string) string {
	h := "--- " + name
	if d.Color {
		return headerStyle.Render(h)
	}

	return h
}

// renderDiff returns the character diff between before and after.
func renderDiff(before, after string, color bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var sb strings.Builder

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			if color {
				sb.WriteString(deleteStyle.Render(diff.Text))
			} else {
				sb.WriteString("[-" + diff.Text + "-]")
			}

		case diffmatchpatch.DiffInsert:
			if color {
				sb.WriteString(insertStyle.Render(diff.Text))
			} else {
				sb.WriteString("{+" + diff.Text + "+}")
			}

		case diffmatchpatch.DiffEqual:
			sb.WriteString(diff.Text)
		}
	}

	return sb.String()
}
