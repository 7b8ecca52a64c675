package lang

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes ns as definition markers, one per line in name order:
//
//	@=rate[100]
//	@=total[(0-12.5)]
//
// The output is itself a valid source text that compiles to the same
// namespace. Negative and non-finite values are written as expressions
// since the expression grammar has neither signed literals nor infinities.
func (ns Namespace) Format(ctx context.Context, w io.Writer) error {
	var sb strings.Builder

	for _, name := range ns.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}

		sb.WriteString("@=")
		sb.WriteString(name)
		sb.WriteByte('[')
		sb.WriteString(literal(ns[name]))
		sb.WriteString("]\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return NewError("failed to write namespace").Wrap(err)
	}

	return nil
}

// literal renders v as an expression body that evaluates to v.
func literal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "0/0"
	case math.IsInf(v, 1):
		return "1/0"
	case math.IsInf(v, -1):
		return "(0-1/0)"
	case v < 0 || (v == 0 && math.Signbit(v)):
		return "(0-" + strconv.FormatFloat(-v, 'f', -1, 64) + ")"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// values returns ns as JSON/YAML friendly values. Non-finite values have no
// JSON or YAML number representation and are rendered as strings.
func (ns Namespace) values() map[string]any {
	out := make(map[string]any, len(ns))

	for name, v := range ns {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[name] = strconv.FormatFloat(v, 'f', -1, 64)

			continue
		}

		out[name] = v
	}

	return out
}

// FormatJSON writes ns as a JSON object. A positive indent pretty prints
// the object using that many spaces per level.
func (ns Namespace) FormatJSON(ctx context.Context, w io.Writer, indent int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	if err := enc.Encode(ns.values()); err != nil {
		return NewError("failed to encode namespace").Wrap(err).
			With(slog.String("format", "json"))
	}

	return nil
}

// FormatYAML writes ns as a YAML mapping. An indent of zero writes a single
// flow-style mapping.
func (ns Namespace) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opts := []yaml.EncodeOption{yaml.Flow(indent <= 0)}
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	enc := yaml.NewEncoder(w, opts...)

	if err := enc.Encode(ns.values()); err != nil {
		return NewError("failed to encode namespace").Wrap(err).
			With(slog.String("format", "yaml"))
	}

	return enc.Close()
}
