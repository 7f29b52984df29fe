// Package logger provides slog attribute helpers shared by the dispatcher
// and the builtin filters. Helpers return an empty Attr for nil or zero
// input, so call sites never need explicit guards.
package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component tags log records with the emitting component name.
func Component(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("component", name)
}

// HandlerName tags log records with the resolved handler's name.
func HandlerName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("handler", name)
}

// SessionID tags log records with a session id.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}
