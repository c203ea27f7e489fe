package fetch

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/0x6d61/fetchjar/internal/transport"
)

// RedirectMode controls what happens when a redirect response arrives.
type RedirectMode string

const (
	// RedirectFollow follows redirect chains automatically. The default.
	RedirectFollow RedirectMode = "follow"
	// RedirectError fails the call on the first redirect response.
	RedirectError RedirectMode = "error"
	// RedirectManual returns the redirect response to the caller unfollowed.
	RedirectManual RedirectMode = "manual"
)

// sensitiveHeaders are stripped when a redirect leaves the cover of the
// current request's host.
var sensitiveHeaders = []string{
	"Authorization",
	"WWW-Authenticate",
	"Cookie",
	"Cookie2",
}

// isRedirectStatus reports whether the status code is one of the five
// redirect statuses. Nothing else is ever treated as a redirect, even
// with a Location header present.
func isRedirectStatus(status int) bool {
	switch status {
	case http.StatusMovedPermanently, // 301
		http.StatusFound,             // 302
		http.StatusSeeOther,          // 303
		http.StatusTemporaryRedirect, // 307
		http.StatusPermanentRedirect: // 308
		return true
	}
	return false
}

// resolveRedirect decides what to do with a redirect response. It
// returns the next hop's URL and record on the follow path, or an empty
// URL when the response is terminal for the caller (manual mode, or no
// Location header), or an error.
//
// originalURL is the URL that started the chain, reported by the
// redirect-limit error.
func resolveRedirect(mode RedirectMode, maxRedirects int, originalURL string, rec *record, resp *transport.Response) (string, *record, error) {
	switch mode {
	case RedirectError:
		return "", nil, &RedirectNotAllowedError{URL: resp.URL}
	case RedirectManual:
		return "", nil, nil
	case RedirectFollow:
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidRedirectMode, string(mode))
	}

	location := resp.Headers.Get("Location")
	if location == "" {
		return "", nil, nil
	}

	// The transport never follows redirects, so resp.URL is the URL of
	// the request that produced this response and the right base for
	// relative resolution.
	base, err := url.Parse(resp.URL)
	if err != nil {
		return "", nil, fmt.Errorf("fetch: parse response URL %q: %w", resp.URL, err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", nil, fmt.Errorf("fetch: malformed redirect location %q: %w", location, err)
	}
	redirectURL := base.ResolveReference(ref)

	if rec.hop >= maxRedirects {
		return "", nil, &RedirectLimitError{Limit: maxRedirects, URL: originalURL}
	}

	next := rec.clone()
	next.hop++

	if !covered(base.Hostname(), redirectURL.Hostname()) {
		for _, name := range sensitiveHeaders {
			next.deleteHeader(name)
		}
	}

	// A consumed stream cannot be resent. 303 is exempt because it
	// drops the body anyway.
	if resp.StatusCode != http.StatusSeeOther && next.body != nil && !next.body.Replayable() {
		return "", nil, &UnreplayableBodyError{Status: resp.StatusCode}
	}

	// 303 always downgrades to GET; 301/302 downgrade only a POST.
	// 307/308 never rewrite the method or body.
	downgrade := resp.StatusCode == http.StatusSeeOther ||
		((resp.StatusCode == http.StatusMovedPermanently || resp.StatusCode == http.StatusFound) &&
			strings.EqualFold(rec.method, http.MethodPost))
	if downgrade {
		next.method = http.MethodGet
		next.body = nil
		next.deleteHeader("Content-Length")
	}

	if policy := resp.Headers.Values("Referrer-Policy"); len(policy) > 0 {
		next.referrerPolicy = parseReferrerPolicy(strings.Join(policy, ", "))
	}

	return redirectURL.String(), next, nil
}
