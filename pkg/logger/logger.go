package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// SetupPrettySlog returns a slog.Logger with a human-oriented text handler
// for local runs: colored level, message, then attrs as compact JSON.
func SetupPrettySlog() *slog.Logger {
	return slog.New(NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type PrettyHandler struct {
	opts  *slog.HandlerOptions
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
}

func NewPrettyHandler(out io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: opts, mu: &sync.Mutex{}, out: out}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})

	var payload []byte
	if len(fields) > 0 {
		payload, _ = json.Marshal(fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s %s %s %s\n",
		r.Time.Format("15:04:05.000"),
		colorLevel(r.Level),
		r.Message,
		payload,
	)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PrettyHandler{opts: h.opts, mu: h.mu, out: h.out, attrs: merged}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened, good enough for local output.
	return h
}

func colorLevel(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "\x1b[31mERROR\x1b[0m"
	case l >= slog.LevelWarn:
		return "\x1b[33mWARN\x1b[0m"
	case l >= slog.LevelInfo:
		return "\x1b[32mINFO\x1b[0m"
	default:
		return "\x1b[35mDEBUG\x1b[0m"
	}
}
