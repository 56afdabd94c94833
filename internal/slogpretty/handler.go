// The code in this package is derivative of https://gitlab.com/greyxor/slogor.
// Mount of this source code is governed by a MIT license that can be found
// at https://gitlab.com/greyxor/slogor/-/blob/main/LICENSE?ref_type=heads.

// Package slogpretty provides a colored slog.Handler for routing traces printed on a terminal.
package slogpretty

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	maxBufferSize     = 16 << 10 // 16384
	initialBufferSize = 1024
)

var _ slog.Handler = (*Handler)(nil)

var logBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, initialBufferSize)
		return &b
	},
}

var timeFormat = fmt.Sprintf("%s %s", time.DateOnly, time.TimeOnly)

func freeBuf(b *[]byte) {
	if cap(*b) <= maxBufferSize {
		*b = (*b)[:0]
		logBufPool.Put(b)
	}
}

type groupOrAttrs struct {
	attr  slog.Attr
	group string
}

// Handler writes records below error level to out and the others to errOut.
type Handler struct {
	out    io.Writer
	errOut io.Writer
	lvl    slog.Leveler
	goa    []groupOrAttrs
}

// New returns a [Handler] logging records at or above lvl. Writes are serialized.
func New(out, errOut io.Writer, lvl slog.Leveler) *Handler {
	return &Handler{
		out:    &lockedWriter{w: out},
		errOut: &lockedWriter{w: errOut},
		lvl:    lvl,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	bufp := logBufPool.Get().(*[]byte)
	buf := *bufp

	defer func() {
		*bufp = buf
		freeBuf(bufp)
	}()

	buf = append(buf, "[TRAIL] "...)

	if !record.Time.IsZero() {
		buf = append(buf, faint...)
		buf = append(buf, record.Time.Format(timeFormat)...)
		buf = append(buf, normalIntensity...)
		buf = append(buf, " "...)
	}

	// Pad the level to five characters.
	buf = append(buf, "| "...)
	switch {
	case record.Level >= slog.LevelError:
		buf = append(buf, fgRed...)
		buf = append(buf, record.Level.String()...)
	case record.Level >= slog.LevelWarn:
		buf = append(buf, fgYellow...)
		buf = append(buf, record.Level.String()...)
		buf = append(buf, " "...)
	case record.Level >= slog.LevelInfo:
		buf = append(buf, fgGreen...)
		buf = append(buf, record.Level.String()...)
		buf = append(buf, " "...)
	default:
		buf = append(buf, fgMagenta...)
		buf = append(buf, record.Level.String()...)
	}

	buf = append(buf, reset...)
	buf = append(buf, " | "...)
	buf = append(buf, messageColor(record.Message)...)
	buf = append(buf, record.Message...)
	buf = append(buf, reset...)
	buf = append(buf, " | "...)

	lastGroup := ""
	for _, goa := range h.goa {
		switch {
		case goa.group != "":
			lastGroup += goa.group + "."
		default:
			attr := goa.attr
			if lastGroup != "" {
				attr.Key = lastGroup + attr.Key
			}

			buf = appendAttr(buf, attr)
		}
	}

	if record.NumAttrs() > 0 {
		record.Attrs(func(attr slog.Attr) bool {
			if lastGroup != "" {
				attr.Key = lastGroup + attr.Key
			}
			buf = appendAttr(buf, attr)

			return true
		})
	}

	// Replace the latest space by an EOL.
	buf[len(buf)-1] = '\n'

	w := h.out
	if record.Level >= slog.LevelError {
		w = h.errOut
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]groupOrAttrs, len(attrs))
	for i, attr := range attrs {
		newAttrs[i] = groupOrAttrs{attr: attr}
	}

	return &Handler{
		out:    h.out,
		errOut: h.errOut,
		lvl:    h.lvl,
		goa:    append(h.goa[:len(h.goa):len(h.goa)], newAttrs...),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		out:    h.out,
		errOut: h.errOut,
		lvl:    h.lvl,
		goa:    append(h.goa[:len(h.goa):len(h.goa)], groupOrAttrs{group: name}),
	}
}

// appendAttr appends the attribute to the buffer.
func appendAttr(buf []byte, attr slog.Attr) []byte {
	attr.Value = attr.Value.Resolve()

	// Ignore empty Attrs.
	if attr.Equal(slog.Attr{}) {
		return buf
	}

	buf = append(buf, faint...)
	buf = append(buf, bold...)

	buf = append(buf, attr.Key...)
	buf = append(buf, "="...)
	buf = append(buf, normalIntensity...)

	switch attr.Key {
	case "path":
		buf = append(buf, bgBlue...)
	case "matched":
		buf = append(buf, fgGreen...)
	case "missing":
		buf = append(buf, fgYellow...)
	case "elapsed":
		buf = append(buf, latencyColor(attr.Value.Duration())...)
	case "error":
		buf = append(buf, fgRed...)
	default:
		buf = append(buf, fgCyan...)
	}

	buf = append(buf, attr.Value.String()...)
	buf = append(buf, reset...)
	buf = append(buf, " "...)

	return buf
}

type lockedWriter struct {
	w io.Writer
	sync.Mutex
}

func (w *lockedWriter) Write(p []byte) (n int, err error) {
	w.Lock()
	n, err = w.w.Write(p)
	w.Unlock()
	return
}

func messageColor(msg string) string {
	switch msg {
	case "route resolved":
		return fgGreen
	case "route not found":
		return fgYellow
	case "route matching failed":
		return fgRed
	default:
		return ""
	}
}

func latencyColor(d time.Duration) string {
	if d < time.Millisecond {
		return fgGreen
	}
	if d < 10*time.Millisecond {
		return fgYellow
	}
	return fgRed
}
