package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ardnew/ledgerscript/lang"
)

// Query evaluates an expression over the namespace of the source files.
//
// Definition names are variables of the expression, which may use any
// operator or builtin function of the expr language:
//
//	ledgerscript query 'rate * 12 > 1000' budget.txt
type Query struct {
	Expr  string   `arg:"" help:"Expression to evaluate"                      name:"expr"`
	Files []string `arg:"" help:"Source files, or '-' for standard input" name:"file" optional:""`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := readSources(ctx, q.Files)
	if err != nil {
		return err
	}

	unit, err := lang.Resolve(ctx, sources, compilerOptions()...)
	if err != nil {
		return err
	}

	result, err := unit.Namespace.Query(ctx, q.Expr)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), formatResult(result)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// formatResult renders a query result. Numbers are rendered the way
// definitions are spliced into compiled text.
func formatResult(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case float64:
		return lang.FormatValue(v)
	case float32:
		return lang.FormatValue(float64(v))
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
