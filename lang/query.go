package lang

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
)

// Query evaluates an expr-lang expression using ns as its environment.
// Each definition is visible by name, so a query such as
//
//	rate * 12 > 1000
//
// yields a bool. The query may use any expr-lang builtin.
func (ns Namespace) Query(ctx context.Context, source string) (any, error) {
	env := make(map[string]any, len(ns))
	for name, v := range ns {
		env[name] = v
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("query", source))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("query", source))
	}

	return out, nil
}
