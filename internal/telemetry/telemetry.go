// Package telemetry wraps log/slog with attribute constructors for the
// values a Merkle AVL tree logs about itself: hashes, heights, rotation
// kinds. It follows the same shape as blockberry's logging package, scaled
// down to one package's vocabulary.
package telemetry

import (
	"context"
	"io"
	"log/slog"
)

// NewNopLogger returns a logger that discards everything, for callers that
// don't pass a Logger option.
func NewNopLogger() *slog.Logger {
	return slog.New(nopHandler{})
}

// NewTextLogger creates a logger with text output, for development use.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Component identifies which part of the tree emitted a log line.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// KeyHash logs a hex-encoded digest string (already hex, unlike raw bytes).
func KeyHash(h string) slog.Attr {
	return slog.String("key_hash", h)
}

// Key logs a hex-encoded key.
func Key(k []byte) slog.Attr {
	return slog.String("key", bytesToHex(k))
}

// Height logs a node or tree height.
func Height(h uint8) slog.Attr {
	return slog.Int("height", int(h))
}

// Delta logs an AVL balance factor (left height minus right height).
func Delta(d int) slog.Attr {
	return slog.Int("delta", d)
}

// Rotation logs which of the four rebalancing cases fired.
func Rotation(kind string) slog.Attr {
	return slog.String("rotation", kind)
}

// Size logs the number of leaves in a tree.
func Size(n uint64) slog.Attr {
	return slog.Uint64("size", n)
}

// PathLen logs the length of an audit path.
func PathLen(n int) slog.Attr {
	return slog.Int("path_len", n)
}

// Error logs an error's message under the "error" key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

func bytesToHex(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool        { return false }
func (nopHandler) Handle(context.Context, slog.Record) error       { return nil }
func (h nopHandler) WithAttrs(attrs []slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(name string) slog.Handler            { return h }
