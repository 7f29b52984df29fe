package filters

import (
	"net/http"
	"strings"

	"github.com/webfold/dispatch/core/handler"
)

// SecurityHeaders sets standard hardening response headers before the rest
// of the chain runs.
//
// Init parameters (empty value keeps the default, "-" drops the header):
//
//	content_type_options   X-Content-Type-Options (default "nosniff")
//	frame_options          X-Frame-Options (default "DENY")
//	referrer_policy        Referrer-Policy (default "no-referrer")
//	hsts                   Strict-Transport-Security
//	                       (default "max-age=31536000; includeSubDomains")
//	csp                    Content-Security-Policy (no default)
type SecurityHeaders struct {
	headers map[string]string
}

// NewSecurityHeaders constructs the filter. Matches handler.FilterConstructor.
func NewSecurityHeaders() (handler.Filter, error) {
	return &SecurityHeaders{}, nil
}

// Init implements handler.Filter.
func (f *SecurityHeaders) Init(config handler.Config) error {
	defaults := []struct{ param, header, value string }{
		{"content_type_options", "X-Content-Type-Options", "nosniff"},
		{"frame_options", "X-Frame-Options", "DENY"},
		{"referrer_policy", "Referrer-Policy", "no-referrer"},
		{"hsts", "Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
		{"csp", "Content-Security-Policy", ""},
	}

	f.headers = make(map[string]string, len(defaults))
	for _, d := range defaults {
		v := d.value
		if configured, ok := config[d.param]; ok {
			v = configured
		}
		if v == "" || strings.TrimSpace(v) == "-" {
			continue
		}
		f.headers[d.header] = v
	}
	return nil
}

// Filter implements handler.Filter.
func (f *SecurityHeaders) Filter(w http.ResponseWriter, r *http.Request, chain handler.Chain) {
	for h, v := range f.headers {
		w.Header().Set(h, v)
	}
	chain.Next(w, r)
}
