package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/xxh3"
)

// extractCache stores extraction results keyed by a hash of the source name
// and text. Definitions are immutable, so cached results are shared freely.
var extractCache sync.Map

// extraction holds the markers of one source text.
type extraction struct {
	once sync.Once
	defs []*Definition
	refs []Reference
	err  error
}

func (ex *extraction) run(src Source) {
	ex.once.Do(func() {
		ex.defs, ex.err = extractDefinitions(src.Name, src.Text)
		if ex.err == nil {
			ex.refs = ExtractReferences(src.Text)
		}
	})
}

// sourceKey hashes the name and text of src.
func sourceKey(src Source) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(src.Name)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(src.Text)

	return h.Sum64()
}

// ClearCache drops all cached extraction results.
func ClearCache() {
	extractCache.Clear()
}

// extract returns the markers of src, consulting the cache if enabled.
func (c *Compiler) extract(ctx context.Context, src Source) (*extraction, error) {
	if !c.cache {
		ex := new(extraction)
		ex.run(src)

		c.logExtract(ctx, src, ex, false)

		return ex, ex.err
	}

	key := sourceKey(src)

	value, hit := extractCache.LoadOrStore(key, new(extraction))

	ex, ok := value.(*extraction)
	if !ok {
		return nil, NewError("invalid cache entry").
			With(slog.String("source", src.Name))
	}

	ex.run(src)

	c.logExtract(ctx, src, ex, hit,
		slog.String("source_hash", strconv.FormatUint(key, 16)),
	)

	return ex, ex.err
}

func (c *Compiler) logExtract(
	ctx context.Context,
	src Source,
	ex *extraction,
	hit bool,
	attrs ...slog.Attr,
) {
	c.logger.TraceContext(ctx, "extract",
		append([]slog.Attr{
			slog.String("source", src.Name),
			slog.String("size", humanize.Bytes(uint64(len(src.Text)))),
			slog.Int("definition_count", len(ex.defs)),
			slog.Int("reference_count", len(ex.refs)),
			slog.Bool("cache_hit", hit),
		}, attrs...)...,
	)
}
