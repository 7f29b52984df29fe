package filters

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/webfold/dispatch/core/handler"
)

// Metrics records a request counter and a latency histogram, labeled by
// method and status.
//
// Init parameters:
//
//	namespace  metric namespace (default "dispatch")
type Metrics struct {
	// Registerer defaults to prometheus.DefaultRegisterer; set it before
	// registration to use a custom registry.
	Registerer prometheus.Registerer

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics constructs the filter. Matches handler.FilterConstructor.
func NewMetrics() (handler.Filter, error) {
	return &Metrics{}, nil
}

// Init implements handler.Filter.
func (f *Metrics) Init(config handler.Config) error {
	namespace := config["namespace"]
	if namespace == "" {
		namespace = "dispatch"
	}
	if f.Registerer == nil {
		f.Registerer = prometheus.DefaultRegisterer
	}

	f.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Requests processed, by method and status.",
	}, []string{"method", "status"})
	f.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency, by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	if err := f.Registerer.Register(f.requests); err != nil {
		return err
	}
	return f.Registerer.Register(f.duration)
}

// Filter implements handler.Filter.
func (f *Metrics) Filter(w http.ResponseWriter, r *http.Request, chain handler.Chain) {
	sw := newStatusWriter(w)
	start := time.Now()

	chain.Next(sw, r)

	f.requests.WithLabelValues(r.Method, strconv.Itoa(sw.Status())).Inc()
	f.duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
}
