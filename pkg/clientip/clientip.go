// Package clientip extracts the real client IP address from HTTP requests,
// accounting for proxy and CDN headers. The session store binds sessions to
// this address, so the extraction order prefers the most trustworthy sources:
// CF-Connecting-IP, then X-Forwarded-For (leftmost entry), then X-Real-IP,
// then the connection's RemoteAddr.
//
// Every candidate is parsed and normalized; malformed values and the
// unspecified address are skipped. GetIP never panics and always returns a
// string, falling back to the raw RemoteAddr when nothing validates.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// headerOrder lists proxy headers from most to least trusted.
var headerOrder = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// GetIP returns the client IP for the request.
func GetIP(r *http.Request) string {
	for _, h := range headerOrder {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		// X-Forwarded-For may hold "client, proxy1, proxy2"; the leftmost
		// entry is the originating client.
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		if ip := normalize(strings.TrimSpace(v)); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// normalize validates and canonicalizes an IP string, returning "" for
// invalid or unspecified addresses.
func normalize(s string) string {
	ip := net.ParseIP(s)
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
