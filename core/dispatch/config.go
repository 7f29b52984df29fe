package dispatch

import (
	"log/slog"
	"time"

	"github.com/webfold/dispatch/core/handler"
	"github.com/webfold/dispatch/core/session"
)

// DefaultCookieName is the session cookie issued by the dispatcher.
const DefaultCookieName = "CSESSIONID"

// Config is the environment-loadable dispatcher configuration (see
// core/config for loading).
type Config struct {
	ContextPath          string        `env:"DISPATCH_CONTEXT_PATH" envDefault:""`
	SessionCookie        string        `env:"DISPATCH_SESSION_COOKIE" envDefault:"CSESSIONID"`
	SessionTTL           time.Duration `env:"DISPATCH_SESSION_TTL" envDefault:"30m"`
	SessionTouchInterval time.Duration `env:"DISPATCH_SESSION_TOUCH_INTERVAL" envDefault:"0"`
	SessionMaxEntries    int           `env:"DISPATCH_SESSION_MAX_ENTRIES" envDefault:"100000"`
	SecureCookie         bool          `env:"DISPATCH_SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// FromConfig applies an environment-loaded configuration.
func FromConfig(cfg Config) Option {
	return func(d *Dispatcher) {
		d.contextPath = cfg.ContextPath
		if cfg.SessionCookie != "" {
			d.cookieName = cfg.SessionCookie
		}
		d.secureCookie = cfg.SecureCookie
		d.sessions = session.NewStore(
			session.WithTTL(cfg.SessionTTL),
			session.WithTouchInterval(cfg.SessionTouchInterval),
			session.WithMaxEntries(cfg.SessionMaxEntries),
		)
	}
}

// WithContextPath scopes route resolution and the session cookie to a path
// prefix, e.g. "/shop".
func WithContextPath(path string) Option {
	return func(d *Dispatcher) {
		d.contextPath = path
	}
}

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithSessionStore replaces the default session store.
func WithSessionStore(store *session.Store) Option {
	return func(d *Dispatcher) {
		if store != nil {
			d.sessions = store
		}
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(d *Dispatcher) {
		if name != "" {
			d.cookieName = name
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(d *Dispatcher) {
		d.secureCookie = secure
	}
}

// WithDefaultHandler sets the handler that answers requests no mapping
// covers. Default: a plain 404.
func WithDefaultHandler(h handler.Handler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.fallback = h
		}
	}
}
