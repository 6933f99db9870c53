// Package logz configures process-wide structured logging on top of
// log/slog and provides deterministic JSON dumps for debugging.
//
// The attach/detach pair is idempotent: attaching twice is a no-op, and
// detaching restores whatever logger was the default before.
package logz

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Format selects the handler encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var (
	mu       sync.Mutex
	level    slog.LevelVar
	previous *slog.Logger
	attached bool
)

// Attach installs a handler writing to w as the slog default and returns
// true. It returns false without touching anything when a handler is
// already attached.
func Attach(w io.Writer, format Format, l slog.Level) bool {
	mu.Lock()
	defer mu.Unlock()
	if attached {
		return false
	}
	level.Set(l)
	opts := &slog.HandlerOptions{Level: &level}
	var h slog.Handler
	switch format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	previous = slog.Default()
	slog.SetDefault(slog.New(h))
	attached = true
	return true
}

// AttachStderr installs a text handler on standard error.
func AttachStderr(l slog.Level) bool {
	return Attach(os.Stderr, FormatText, l)
}

// Detach restores the default logger that was active before Attach and
// returns true. It returns false when nothing is attached.
func Detach() bool {
	mu.Lock()
	defer mu.Unlock()
	if !attached {
		return false
	}
	slog.SetDefault(previous)
	previous = nil
	attached = false
	return true
}

// SetLevel adjusts the minimum level of the attached handler. It has no
// effect when nothing is attached.
func SetLevel(l slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	if attached {
		level.Set(l)
	}
}

// Attached reports whether a handler installed by this package is the
// current slog default.
func Attached() bool {
	mu.Lock()
	defer mu.Unlock()
	return attached
}

// Dumper is any value that can flatten itself into a plain mapping.
// attrkit records satisfy it.
type Dumper interface {
	Dump() map[string]any
}

// JSONDumps renders v as indented JSON with sorted keys. Values
// implementing Dumper are flattened first, recursively, so nested records
// serialize as plain mappings.
func JSONDumps(v any) (string, error) {
	data, err := json.MarshalIndent(flatten(v), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func flatten(v any) any {
	switch v := v.(type) {
	case Dumper:
		return flatten(v.Dump())
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = flatten(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flatten(e)
		}
		return out
	default:
		return v
	}
}
