// Package jar provides cookie jar implementations with a string-based
// get/set interface keyed by URL. The fetch pipeline talks to a jar only
// through the Jar interface; cookie grammar, matching, and expiry are the
// jar's business.
package jar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Jar stores cookies keyed by domain/path/name and exposes string-based
// access by URL. Implementations must be safe for concurrent use by
// multiple goroutines.
type Jar interface {
	// CookieString returns the semicolon-joined "name=value" pairs to
	// send in a request for the given URL. An empty string means no
	// matching cookies.
	CookieString(ctx context.Context, u *url.URL) (string, error)

	// SetCookie stores a single raw Set-Cookie header value received
	// for the given URL.
	SetCookie(ctx context.Context, u *url.URL, raw string) error
}

// parseSetCookie parses one raw Set-Cookie header value. The value is
// run through net/http's response cookie parser, which silently drops
// malformed input; that case surfaces here as an error so callers can
// decide whether to ignore it.
func parseSetCookie(raw string) (*http.Cookie, error) {
	resp := http.Response{Header: http.Header{"Set-Cookie": {raw}}}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil, fmt.Errorf("jar: malformed cookie %q", raw)
	}
	return cookies[0], nil
}
