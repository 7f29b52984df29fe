package filters

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/webfold/dispatch/core/cache"
	"github.com/webfold/dispatch/core/handler"
	"github.com/webfold/dispatch/pkg/clientip"
)

const defaultMaxClients = 10_000

// RateLimit rejects requests above a token-bucket rate with 429 without
// continuing the chain. In per-client mode each client IP gets its own
// bucket; bucket state lives in a bounded access-ordered map so idle clients
// age out of it.
//
// Init parameters:
//
//	rps          sustained requests per second (default 100)
//	burst        burst size (default rps)
//	per_client   "true" keys buckets by client IP
//	max_clients  per-client bucket bound (default 10000)
type RateLimit struct {
	limiter   *rate.Limiter
	perClient bool
	rps       int
	burst     int

	mu         sync.Mutex
	clients    *cache.Cache[string, *rate.Limiter]
	maxClients int
}

// NewRateLimit constructs the filter. Matches handler.FilterConstructor.
func NewRateLimit() (handler.Filter, error) {
	return &RateLimit{}, nil
}

// Init implements handler.Filter.
func (f *RateLimit) Init(config handler.Config) error {
	var err error
	if f.rps, err = intParam(config, "rps", 100); err != nil {
		return err
	}
	if f.burst, err = intParam(config, "burst", f.rps); err != nil {
		return err
	}
	if f.maxClients, err = intParam(config, "max_clients", defaultMaxClients); err != nil {
		return err
	}
	f.perClient = config["per_client"] == "true"

	if f.perClient {
		f.clients = cache.New[string, *rate.Limiter]()
		f.clients.OnMutation = func() {
			for f.clients.Len() > f.maxClients {
				oldest, ok := f.clients.Oldest()
				if !ok {
					break
				}
				f.clients.Remove(oldest.Key)
			}
		}
	} else {
		f.limiter = rate.NewLimiter(rate.Limit(f.rps), f.burst)
	}
	return nil
}

// Filter implements handler.Filter.
func (f *RateLimit) Filter(w http.ResponseWriter, r *http.Request, chain handler.Chain) {
	if !f.allow(r) {
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return
	}
	chain.Next(w, r)
}

func (f *RateLimit) allow(r *http.Request) bool {
	if !f.perClient {
		return f.limiter.Allow()
	}

	ip := clientip.GetIP(r)

	f.mu.Lock()
	limiter, ok := f.clients.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(f.rps), f.burst)
		f.clients.Put(ip, limiter)
	}
	f.mu.Unlock()

	return limiter.Allow()
}

func intParam(config handler.Config, key string, fallback int) (int, error) {
	v, ok := config[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", key, v)
	}
	return n, nil
}
