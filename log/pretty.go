package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette used by the pretty handlers. Colors degrade to plain text when the
// output does not support them.
var (
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	durationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	messageStyle  = lipgloss.NewStyle().Bold(true)

	levelStyle = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func renderLevel(l slog.Level) string {
	level := Level(l)

	var style lipgloss.Style

	switch {
	case level >= LevelError:
		style = levelStyle[LevelError]
	case level >= LevelWarn:
		style = levelStyle[LevelWarn]
	case level >= LevelInfo:
		style = levelStyle[LevelInfo]
	case level >= LevelDebug:
		style = levelStyle[LevelDebug]
	default:
		style = levelStyle[LevelTrace]
	}

	return style.Render(strings.ToUpper(level.String()))
}

// renderValue formats a resolved slog.Value with the palette.
func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return stringStyle.Render(v.String())
	case slog.KindInt64:
		return numberStyle.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return numberStyle.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return numberStyle.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return trueStyle.Render("true")
		}

		return falseStyle.Render("false")
	case slog.KindDuration:
		return durationStyle.Render(v.Duration().String())
	case slog.KindTime:
		return timeStyle.Render(v.Time().String())
	default:
		if level, ok := v.Any().(slog.Level); ok {
			return renderLevel(level)
		}

		return stringStyle.Render(fmt.Sprint(v.Any()))
	}
}

// flatten expands group attributes into dotted keys.
func flatten(prefix string, a slog.Attr, yield func(key string, v slog.Value)) {
	v := a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if v.Kind() != slog.KindGroup {
		yield(key, v)

		return
	}

	for _, sub := range v.Group() {
		flatten(key, sub, yield)
	}
}

// prettyTextHandler writes one colorized line per record.
type prettyTextHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	prefix     string      // dotted group path
	attrs      []slog.Attr // attrs added by WithAttrs, keys already prefixed
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	field := func(key, value string) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(keyStyle.Render(key))
		buf.WriteByte('=')
		buf.WriteString(value)
	}

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			field(slog.TimeKey, timeStyle.Render(ts))
		}
	}

	field(slog.LevelKey, renderLevel(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			field(slog.SourceKey, stringStyle.Render(
				src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	field(slog.MessageKey, messageStyle.Render(r.Message))

	for _, a := range h.attrs {
		flatten("", a, func(k string, v slog.Value) { field(k, renderValue(v)) })
	}

	r.Attrs(func(a slog.Attr) bool {
		flatten(h.prefix, a, func(k string, v slog.Value) { field(k, renderValue(v)) })

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], prefixed(h.prefix, attrs)...)

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = joinKey(h.prefix, name)

	return &c
}

// prettyJSONHandler writes one indented, colorized object per record.
type prettyJSONHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	prefix     string
	attrs      []slog.Attr
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	first := true
	field := func(key, value string) {
		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString("  ")
		buf.WriteString(keyStyle.Render(strconv.Quote(key)))
		buf.WriteString(": ")
		buf.WriteString(value)
	}

	buf.WriteString("{\n")

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			field(slog.TimeKey, timeStyle.Render(strconv.Quote(ts)))
		}
	}

	field(slog.LevelKey, renderLevel(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			field(slog.SourceKey, stringStyle.Render(
				strconv.Quote(src.File+":"+strconv.Itoa(src.Line)),
			))
		}
	}

	field(slog.MessageKey, messageStyle.Render(strconv.Quote(r.Message)))

	for _, a := range h.attrs {
		flatten("", a, func(k string, v slog.Value) { field(k, renderJSONValue(v)) })
	}

	r.Attrs(func(a slog.Attr) bool {
		flatten(h.prefix, a, func(k string, v slog.Value) { field(k, renderJSONValue(v)) })

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], prefixed(h.prefix, attrs)...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = joinKey(h.prefix, name)

	return &c
}

func renderJSONValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return stringStyle.Render(strconv.Quote(v.String()))
	case slog.KindDuration, slog.KindTime:
		return stringStyle.Render(strconv.Quote(v.String()))
	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			return renderLevel(level)
		}

		return stringStyle.Render(strconv.Quote(fmt.Sprint(v.Any())))
	default:
		return renderValue(v)
	}
}

func prefixed(prefix string, attrs []slog.Attr) []slog.Attr {
	if prefix == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: joinKey(prefix, a.Key), Value: a.Value}
	}

	return out
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
