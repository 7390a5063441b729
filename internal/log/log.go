// Package log provides logging output for the emulator.
//
// It is a thin veneer over log/slog: a formatted handler, a process-wide
// default logger, and aliases so the rest of the module only imports this
// package. Logs are written to standard error; standard out belongs to the
// running program.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
)

var (
	// DefaultLogger returns a new formatted logger writing to standard error. Components grab
	// it during startup and cache the result. It does not consult the logger set by SetDefault.
	DefaultLogger = func() *Logger { return NewFormattedLogger(os.Stderr) }

	// SetDefault overrides the log/slog package's default logger.
	SetDefault = slog.SetDefault

	// LogLevel holds the log level. It can be changed at runtime.
	LogLevel = &slog.LevelVar{}
)

// NewFormattedLogger returns a logger that formats and writes records to a writer.
func NewFormattedLogger(out io.Writer) *Logger {
	return slog.New(NewHandler(out))
}

// Handler implements slog.Handler. Records are written as a single line:
// the level, the source location, the message and then each attribute as
// KEY=value.
type Handler struct {
	mut *sync.Mutex // Synchronizes writer.
	out io.Writer

	opts  *slog.HandlerOptions
	group string
	attrs []Attr
}

// Options for log handlers.
var Options = &slog.HandlerOptions{
	AddSource: true,
	Level:     LogLevel,
}

// NewHandler creates and initializes a Handler with a writer.
func NewHandler(out io.Writer) *Handler {
	return &Handler{
		out:  out,
		mut:  new(sync.Mutex),
		opts: Options,
	}
}

// Enabled returns true if the level is at or above the current logging level.
func (h *Handler) Enabled(_ context.Context, level Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle formats and writes a log record to the handler's writer.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	out := &strings.Builder{}

	fmt.Fprintf(out, "%-5s", rec.Level.String())

	if h.opts.AddSource && rec.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{rec.PC})
		f, _ := frames.Next()
		_, file := path.Split(f.File)
		fmt.Fprintf(out, " %s:%d", file, f.Line)
	}

	fmt.Fprintf(out, " %s", rec.Message)

	for _, a := range h.attrs {
		h.appendAttr(out, h.group, a)
	}

	rec.Attrs(func(attr Attr) bool {
		h.appendAttr(out, h.group, attr)
		return true
	})

	fmt.Fprintln(out)

	h.mut.Lock()
	defer h.mut.Unlock()

	_, err := io.WriteString(h.out, out.String())

	return err
}

// WithGroup returns a handler that qualifies attribute keys with a group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := h.clone()
	if next.group != "" {
		next.group += "."
	}

	next.group += name

	return next
}

// WithAttrs returns a handler that combines the handler's attributes with the argument.
func (h *Handler) WithAttrs(attrs []Attr) slog.Handler {
	next := h.clone()
	next.attrs = append(next.attrs, attrs...)

	return next
}

func (h *Handler) clone() *Handler {
	attrs := make([]Attr, len(h.attrs))
	copy(attrs, h.attrs)

	return &Handler{
		mut:   h.mut,
		out:   h.out,
		opts:  h.opts,
		group: h.group,
		attrs: attrs,
	}
}

func (h *Handler) appendAttr(out io.Writer, prefix string, attr Attr) {
	attr.Value = attr.Value.Resolve()

	if attr.Equal(Attr{}) {
		return
	}

	key := attr.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, a := range attr.Value.Group() {
			h.appendAttr(out, key, a)
		}

		return
	}

	fmt.Fprintf(out, " %s=%v", strings.ToUpper(key), attr.Value.Any())
}

// Type and function aliases from log/slog.
type (
	Attr   = slog.Attr
	Level  = slog.Level
	Logger = slog.Logger
	Value  = slog.Value
)

var (
	Any         = slog.Any
	Group       = slog.Group
	GroupValue  = slog.GroupValue
	String      = slog.String
	StringValue = slog.StringValue
)

const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)
