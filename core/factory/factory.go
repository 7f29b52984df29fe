// Package factory provides at-most-once, thread-safe lazy construction of
// handler and filter instances. A Lazy wraps a constructor and the instance's
// init parameters; the first caller to request the instance constructs and
// initializes it, every other caller observes the same result. A failed
// construction latches the factory as permanently unavailable so the attempt
// is never repeated for the lifetime of the application.
package factory

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/webfold/dispatch/core/handler"
)

// ErrUnavailable is returned by Get when construction or initialization
// failed. The failure is permanent: the factory never retries.
var ErrUnavailable = errors.New("factory is permanently unavailable")

// Initializable is the capability shared by handlers and filters: a one-shot
// Init with descriptor parameters.
type Initializable interface {
	Init(config handler.Config) error
}

// Lazy defers construction of a shared instance to first use. All methods are
// safe for concurrent callers; the constructor and Init run exactly once.
type Lazy[T Initializable] struct {
	construct func() (T, error)
	config    handler.Config

	done     atomic.Bool
	mu       sync.Mutex
	instance T
	err      error
}

// New creates a factory around a constructor and the init parameters passed
// to the constructed instance. The constructor is not called here.
func New[T Initializable](construct func() (T, error), config handler.Config) *Lazy[T] {
	return &Lazy[T]{construct: construct, config: config}
}

// Get returns the shared instance, constructing and initializing it on the
// first call. Concurrent first callers all block until the single
// construction attempt finishes and then observe the same instance or the
// same ErrUnavailable.
func (l *Lazy[T]) Get() (T, error) {
	// Fast path: done is set with release semantics after instance and err
	// are written, so observers of done==true see the final state.
	if l.done.Load() {
		return l.instance, l.err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done.Load() {
		return l.instance, l.err
	}

	instance, err := l.construct()
	if err == nil {
		err = instance.Init(l.config)
	}
	if err != nil {
		l.err = fmt.Errorf("%w: %v", ErrUnavailable, err)
	} else {
		l.instance = instance
	}
	l.done.Store(true)

	return l.instance, l.err
}

// Available reports whether the instance is usable. It triggers construction
// if it has not happened yet.
func (l *Lazy[T]) Available() bool {
	_, err := l.Get()
	return err == nil
}
