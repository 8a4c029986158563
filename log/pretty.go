package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used to render log records.
//
// Styles are bound to a renderer created for the handler's writer, so color
// is dropped automatically when the writer is not a terminal.
type palette struct {
	key, str, num, time, boolT, boolF, null lipgloss.Style

	trace, debug, info, warn, error lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		time:  fg("4"),
		boolT: fg("2"),
		boolF: fg("1"),
		null:  fg("8"),
		trace: fg("5"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		error: fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.error
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyBase carries the state shared by the text and JSON handlers.
type prettyBase struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	style      palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr // preformatted by WithAttrs, keys already qualified
	groups     []string
}

func makePrettyBase(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) prettyBase {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	if formatTime == nil {
		formatTime = makeFormatTimeFunc(DefaultTimeLayout)
	}

	return prettyBase{
		opts:       *opts,
		formatTime: formatTime,
		style:      makePalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (b prettyBase) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if b.opts.Level != nil {
		threshold = b.opts.Level.Level()
	}

	return level >= threshold
}

func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	b.attrs = append(slices.Clip(b.attrs), b.flatten(b.groups, attrs)...)

	return b
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name != "" {
		b.groups = append(slices.Clip(b.groups), name)
	}

	return b
}

// header returns the built-in attributes of r in output order.
func (b prettyBase) header(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, 4) //nolint:mnd

	if !r.Time.IsZero() {
		out = append(out, b.replace(nil, slog.Time(slog.TimeKey, r.Time)))
	}

	out = append(out, b.replace(nil, slog.Any(slog.LevelKey, r.Level)))

	if b.opts.AddSource {
		if src := r.Source(); src != nil {
			out = append(out, b.replace(nil, slog.String(
				slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line),
			)))
		}
	}

	out = append(out, b.replace(nil, slog.String(slog.MessageKey, r.Message)))

	return slices.DeleteFunc(out, func(a slog.Attr) bool { return a.Equal(slog.Attr{}) })
}

// record returns all non-builtin attributes of r, including those added by
// WithAttrs, with group-qualified keys.
func (b prettyBase) record(r slog.Record) []slog.Attr {
	out := slices.Clone(b.attrs)

	r.Attrs(func(a slog.Attr) bool {
		out = append(out, b.flatten(b.groups, []slog.Attr{a})...)

		return true
	})

	return out
}

func (b prettyBase) replace(groups []string, a slog.Attr) slog.Attr {
	if b.opts.ReplaceAttr == nil {
		return a
	}

	return b.opts.ReplaceAttr(groups, a)
}

func (b prettyBase) flatten(groups []string, attrs []slog.Attr) []slog.Attr {
	var out []slog.Attr

	for _, a := range attrs {
		a.Value = a.Value.Resolve()

		if a.Value.Kind() == slog.KindGroup {
			sub := groups
			if a.Key != "" {
				sub = append(slices.Clip(groups), a.Key)
			}

			out = append(out, b.flatten(sub, a.Value.Group())...)

			continue
		}

		a = b.replace(groups, a)
		if a.Equal(slog.Attr{}) {
			continue
		}

		if len(groups) > 0 {
			a.Key = strings.Join(groups, ".") + "." + a.Key
		}

		out = append(out, a)
	}

	return out
}

func (b prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// formatValue renders v as unquoted, styled text.
func (b prettyBase) formatValue(key string, v slog.Value) string {
	p := b.style

	switch v.Kind() {
	case slog.KindString:
		if key == slog.LevelKey {
			return p.level(slog.Level(ParseLevel(v.String()))).Render(v.String())
		}

		return p.str.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.boolT.Render("true")
		}

		return p.boolF.Render("false")

	case slog.KindDuration:
		return p.num.Render(v.Duration().String())

	case slog.KindTime:
		return p.time.Render(b.formatTime(v.Time()))

	case slog.KindAny:
		switch val := v.Any().(type) {
		case nil:
			return p.null.Render("null")
		case slog.Level:
			return p.level(val).Render(strings.ToUpper(Level(val).String()))
		case error:
			return p.str.Render(val.Error())
		case time.Time:
			return p.time.Render(b.formatTime(val))
		}
	}

	return p.str.Render(v.String())
}

// prettyTextHandler renders records as a single line of key=value pairs with
// unquoted, styled values.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{makePrettyBase(w, opts, formatTime)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range append(h.header(r), h.record(r)...) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.formatValue(a.Key, a.Value))
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler renders records as an indented multiline object with
// unquoted, styled values.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{makePrettyBase(w, opts, formatTime)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{")

	for i, a := range append(h.header(r), h.record(r)...) {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.formatValue(a.Key, a.Value))
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
