package filters

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/webfold/dispatch/core/handler"
	"github.com/webfold/dispatch/core/logger"
)

// Logging emits one structured log record per request with method, path,
// status, response size and duration.
//
// Init parameters:
//
//	level  "debug", "info" (default), "warn" or "error"
type Logging struct {
	// Logger defaults to slog.Default(); set it before registration to
	// direct records elsewhere.
	Logger *slog.Logger

	level slog.Level
}

// NewLogging constructs the filter. Matches handler.FilterConstructor.
func NewLogging() (handler.Filter, error) {
	return &Logging{}, nil
}

// Init implements handler.Filter.
func (f *Logging) Init(config handler.Config) error {
	if f.Logger == nil {
		f.Logger = slog.Default()
	}
	switch config["level"] {
	case "", "info":
		f.level = slog.LevelInfo
	case "debug":
		f.level = slog.LevelDebug
	case "warn":
		f.level = slog.LevelWarn
	case "error":
		f.level = slog.LevelError
	default:
		f.level = slog.LevelInfo
	}
	return nil
}

// Filter implements handler.Filter.
func (f *Logging) Filter(w http.ResponseWriter, r *http.Request, chain handler.Chain) {
	sw := newStatusWriter(w)
	start := time.Now()

	chain.Next(sw, r)

	f.Logger.Log(r.Context(), f.level, "request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", sw.Status()),
		slog.Int("bytes", sw.bytes),
		logger.Duration(time.Since(start)),
	)
}
