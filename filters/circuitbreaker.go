package filters

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/webfold/dispatch/core/handler"
)

// CircuitBreaker trips a route after repeated server errors and answers 503
// while open, shielding a failing handler from further traffic. A response
// status of 500 or higher counts as a failure.
//
// Init parameters:
//
//	name       breaker name for state-change logs (default "dispatch")
//	threshold  request count before the failure ratio is evaluated (default 5)
//	timeout    open-state duration, e.g. "30s" (default 30s)
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewCircuitBreaker constructs the filter. Matches handler.FilterConstructor.
func NewCircuitBreaker() (handler.Filter, error) {
	return &CircuitBreaker{}, nil
}

// Init implements handler.Filter.
func (f *CircuitBreaker) Init(config handler.Config) error {
	name := config["name"]
	if name == "" {
		name = "dispatch"
	}
	threshold, err := intParam(config, "threshold", 5)
	if err != nil {
		return err
	}
	timeout := 30 * time.Second
	if v := config["timeout"]; v != "" {
		if timeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid timeout parameter %q: %w", v, err)
		}
	}

	f.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(threshold) && ratio >= 0.5
		},
	})
	return nil
}

// Filter implements handler.Filter.
func (f *CircuitBreaker) Filter(w http.ResponseWriter, r *http.Request, chain handler.Chain) {
	_, err := f.cb.Execute(func() (interface{}, error) {
		sw := newStatusWriter(w)
		chain.Next(sw, r)
		if sw.Status() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("upstream status %d", sw.Status())
		}
		return nil, nil
	})
	if err != nil && (err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests) {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	}
}
