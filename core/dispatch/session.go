package dispatch

import (
	"errors"
	"net/http"

	"github.com/webfold/dispatch/core/logger"
	"github.com/webfold/dispatch/core/session"
	"github.com/webfold/dispatch/pkg/clientip"
)

// Session returns the requesting client's session, creating one when the
// request carries no valid session cookie. A cookie bound to a different
// client fails closed and is replaced by a fresh session; the entry it named
// stays untouched. The cookie is (re)issued whenever a session is created.
func (d *Dispatcher) Session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	ip := clientip.GetIP(r)
	ua := r.Header.Get("User-Agent")

	if c, err := r.Cookie(d.cookieName); err == nil && c.Value != "" {
		sess, err := d.sessions.Get(c.Value, ip, ua)
		switch {
		case err == nil:
			return sess, nil
		case errors.Is(err, session.ErrClientMismatch):
			d.log.Warn("session rejected: client binding mismatch",
				logger.Component("dispatch"),
				logger.SessionID(c.Value))
		}
		// Expired, unknown or rejected: fall through to a new session.
	}

	sess, err := d.sessions.Create(ip, ua)
	if err != nil {
		return nil, err
	}
	d.setSessionCookie(w, sess.ID, int(d.sessions.TTL().Seconds()))
	return sess, nil
}

// InvalidateSession destroys the current session, if any, and expires the
// session cookie.
func (d *Dispatcher) InvalidateSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(d.cookieName); err == nil && c.Value != "" {
		d.sessions.Invalidate(c.Value)
	}
	// Deletion is performed by re-issuing the cookie with MaxAge 0.
	d.setSessionCookie(w, "", 0)
}

// Sessions exposes the session store, e.g. for diagnostics.
func (d *Dispatcher) Sessions() *session.Store {
	return d.sessions
}

func (d *Dispatcher) setSessionCookie(w http.ResponseWriter, id string, maxAge int) {
	path := d.contextPath
	if path == "" {
		path = "/"
	}
	c := &http.Cookie{
		Name:     d.cookieName,
		Value:    id,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   d.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge == 0 {
		// MaxAge 0 means "no attribute" to net/http; force expiry.
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
