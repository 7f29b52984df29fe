package dispatch

import (
	"fmt"
	"strings"
)

// extensionPattern reports whether pattern has the "*.ext" form and returns
// the extension.
func extensionPattern(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, "*.") || len(pattern) < 3 {
		return "", false
	}
	return pattern[2:], true
}

// parsePattern normalizes a descriptor URL pattern: a trailing "*" marks a
// prefix pattern and is stripped before insertion, everything else is exact.
// "/*" therefore becomes the reserved "/" catch-all.
func parsePattern(pattern string) (normalized string, exact bool, err error) {
	if pattern == "" || pattern[0] != '/' {
		return "", false, fmt.Errorf("%w: pattern %q must start with '/'", ErrConfiguration, pattern)
	}
	if strings.HasSuffix(pattern, "*") {
		return pattern[:len(pattern)-1], false, nil
	}
	return pattern, true, nil
}
