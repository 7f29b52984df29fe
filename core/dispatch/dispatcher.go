package dispatch

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/webfold/dispatch/core/chain"
	"github.com/webfold/dispatch/core/factory"
	"github.com/webfold/dispatch/core/handler"
	"github.com/webfold/dispatch/core/logger"
	"github.com/webfold/dispatch/core/routemap"
	"github.com/webfold/dispatch/core/session"
)

// route is a resolved routing target: the handler's name plus its shared
// lazy factory.
type route struct {
	name    string
	factory *factory.Lazy[handler.Handler]
}

// Dispatcher resolves requests for one deployed application. Registration
// and mapping happen single-threaded at load time; after Finalize the
// dispatcher is safe for concurrent requests.
type Dispatcher struct {
	contextPath  string
	cookieName   string
	secureCookie bool
	log          *slog.Logger
	sessions     *session.Store
	fallback     handler.Handler

	handlers map[string]*route
	filters  map[string]*factory.Lazy[handler.Filter]

	table      *routemap.Table[*route]
	extensions map[string]*route
	maxExtLen  int
	filterMaps *chain.Registry

	finalized bool
}

// New creates a dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cookieName: DefaultCookieName,
		log:        slog.Default(),
		fallback:   handler.HandlerFunc(http.NotFound),
		handlers:   make(map[string]*route),
		filters:    make(map[string]*factory.Lazy[handler.Filter]),
		table:      routemap.New[*route](),
		extensions: make(map[string]*route),
		filterMaps: chain.NewRegistry(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sessions == nil {
		d.sessions = session.NewStore()
	}
	return d
}

// RegisterHandler declares a handler under a unique name. The constructor
// runs lazily, at most once, on the handler's first use; config is passed to
// the instance's Init.
func (d *Dispatcher) RegisterHandler(name string, construct handler.HandlerConstructor, config handler.Config) error {
	if d.finalized {
		return ErrFinalized
	}
	if name == "" || construct == nil {
		return fmt.Errorf("%w: handler name and constructor are required", ErrConfiguration)
	}
	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("%w: duplicate handler name %q", ErrConfiguration, name)
	}
	d.handlers[name] = &route{name: name, factory: factory.New(func() (handler.Handler, error) {
		return construct()
	}, config)}
	return nil
}

// RegisterFilter declares a filter under a unique name.
func (d *Dispatcher) RegisterFilter(name string, construct handler.FilterConstructor, config handler.Config) error {
	if d.finalized {
		return ErrFinalized
	}
	if name == "" || construct == nil {
		return fmt.Errorf("%w: filter name and constructor are required", ErrConfiguration)
	}
	if _, exists := d.filters[name]; exists {
		return fmt.Errorf("%w: duplicate filter name %q", ErrConfiguration, name)
	}
	d.filters[name] = factory.New(func() (handler.Filter, error) {
		return construct()
	}, config)
	return nil
}

// MapHandler maps a URL pattern to a registered handler. A trailing "*"
// denotes a prefix pattern, "*.ext" an extension mapping, anything else an
// exact one. Two mappings for the same pattern conflict: handler targets do
// not merge.
func (d *Dispatcher) MapHandler(pattern, handlerName string) error {
	if d.finalized {
		return ErrFinalized
	}
	rt, ok := d.handlers[handlerName]
	if !ok {
		return fmt.Errorf("%w: mapping %q refers to unknown handler %q", ErrConfiguration, pattern, handlerName)
	}

	if ext, ok := extensionPattern(pattern); ok {
		if _, dup := d.extensions[ext]; dup {
			return fmt.Errorf("%w: duplicate extension mapping %q", ErrConfiguration, pattern)
		}
		d.extensions[ext] = rt
		if len(ext) > d.maxExtLen {
			d.maxExtLen = len(ext)
		}
		return nil
	}

	p, exact, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	if _, err := d.table.Add(p, exact, rt); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// MapFilterURL maps a filter to a URL pattern with its global declaration
// order. Filter lists for the same or nested patterns accumulate. Extension
// patterns cannot carry filters.
func (d *Dispatcher) MapFilterURL(pattern, filterName string, order int) error {
	if d.finalized {
		return ErrFinalized
	}
	f, ok := d.filters[filterName]
	if !ok {
		return fmt.Errorf("%w: mapping %q refers to unknown filter %q", ErrConfiguration, pattern, filterName)
	}
	if _, isExt := extensionPattern(pattern); isExt {
		return fmt.Errorf("%w: extension pattern %q cannot carry filters", ErrConfiguration, pattern)
	}
	p, exact, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	if err := d.filterMaps.MapURL(p, exact, chain.MappedFilter{Name: filterName, Order: order, Factory: f}); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// MapFilterName maps a filter to every request resolved to the named handler.
func (d *Dispatcher) MapFilterName(handlerName, filterName string, order int) error {
	if d.finalized {
		return ErrFinalized
	}
	f, ok := d.filters[filterName]
	if !ok {
		return fmt.Errorf("%w: mapping for handler %q refers to unknown filter %q", ErrConfiguration, handlerName, filterName)
	}
	if _, ok := d.handlers[handlerName]; !ok {
		return fmt.Errorf("%w: filter mapping refers to unknown handler %q", ErrConfiguration, handlerName)
	}
	d.filterMaps.MapName(handlerName, chain.MappedFilter{Name: filterName, Order: order, Factory: f})
	return nil
}

// Finalize freezes the routing structures. Must be called once, after all
// registrations, before serving. Idempotent.
func (d *Dispatcher) Finalize() error {
	if d.finalized {
		return nil
	}
	d.table.Finalize()
	d.filterMaps.Finalize()
	d.finalized = true
	return nil
}

// ServeHTTP implements http.Handler: it resolves the request to a handler,
// assembles the filter chain, and runs it on the calling goroutine.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !d.finalized {
		d.log.Error("request before finalize",
			logger.Component("dispatch"),
			logger.Error(ErrNotFinalized))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	path, ok := d.requestPath(r)
	if !ok {
		d.fallback.Handle(w, r)
		return
	}

	rt := d.resolve(path)

	name := ""
	target := d.fallback
	if rt != nil {
		instance, err := rt.factory.Get()
		if err != nil {
			// Permanently unavailable handler: degrade this route to
			// the fallback, leave every other route untouched.
			d.log.Error("handler unavailable",
				logger.Component("dispatch"),
				logger.HandlerName(rt.name),
				logger.Error(err))
		} else {
			name = rt.name
			target = instance
		}
	}

	url, named := d.filterMaps.ForRequest(path, name)
	c := chain.New(url, named, target, func(w http.ResponseWriter, r *http.Request, filterName string, err error) {
		d.log.Error("filter unavailable",
			logger.Component("dispatch"),
			slog.String("filter", filterName),
			logger.Error(err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	})
	c.Next(w, r)
}

// resolve applies the precedence exact > extension > prefix > catch-all.
// A nil return falls through to the default handler.
func (d *Dispatcher) resolve(path string) *route {
	rt, kind, ok := d.table.Lookup(path)
	if ok && kind == routemap.MatchExact {
		return rt
	}
	if ext := d.byExtension(path); ext != nil {
		return ext
	}
	if ok {
		return rt
	}
	return nil
}

// byExtension finds the longest registered extension suffix, bounded by the
// longest extension seen at registration.
func (d *Dispatcher) byExtension(path string) *route {
	if d.maxExtLen == 0 {
		return nil
	}
	start := len(path) - d.maxExtLen - 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(path)-1; i++ {
		if path[i] != '.' {
			continue
		}
		if rt, ok := d.extensions[path[i+1:]]; ok {
			return rt
		}
	}
	return nil
}

// requestPath strips the context path. Requests outside the context path are
// not resolved.
func (d *Dispatcher) requestPath(r *http.Request) (string, bool) {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	if d.contextPath == "" {
		return path, true
	}
	if !strings.HasPrefix(path, d.contextPath) {
		return "", false
	}
	path = path[len(d.contextPath):]
	// The context path must end at a segment boundary: "/shopping" is
	// outside the "/shop" context.
	if path != "" && path[0] != '/' {
		return "", false
	}
	if path == "" {
		path = "/"
	}
	return path, true
}
