package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/readahead"
)

// ReadSource reads all of r into a named [Source].
func ReadSource(ctx context.Context, name string, r io.Reader) (Source, error) {
	return New().Read(ctx, name, r)
}

// Read reads all of r into a named [Source]. Input is consumed through a
// read-ahead buffer so that decoding and disk I/O overlap.
func (c *Compiler) Read(
	ctx context.Context,
	name string,
	r io.Reader,
) (Source, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	var sb strings.Builder

	n, err := io.Copy(&sb, contextReader{ctx: ctx, r: ra})
	if err != nil {
		return Source{}, ErrReadInput.Wrap(err).With(slog.String("source", name))
	}

	c.logger.TraceContext(ctx, "read source",
		slog.String("source", name),
		slog.String("size", humanize.Bytes(uint64(n))),
	)

	return Source{Name: name, Text: sb.String()}, nil
}

// contextReader stops reading once its context is done.
type contextReader struct {
	ctx context.Context //nolint:containedctx
	r   io.Reader
}

func (cr contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
