// Package fetch implements the request/response interception pipeline:
// cookie injection from a jar, cookie harvesting into it, and
// browser-faithful redirect following (method/body downgrade, sensitive
// header stripping on cross-origin hops, referrer-policy propagation,
// hop ceiling). The underlying transport and the jar are collaborators
// supplied at construction time.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/0x6d61/fetchjar/internal/jar"
	"github.com/0x6d61/fetchjar/internal/transport"
)

// DefaultMaxRedirects is the redirect ceiling applied when neither the
// client nor the request specifies one.
const DefaultMaxRedirects = 20

// Init carries the per-call request configuration.
type Init struct {
	// Method is the HTTP method. Empty means GET.
	Method string

	// Header holds multi-value request headers. Takes precedence over
	// HeaderMap when both are set.
	Header http.Header

	// HeaderMap is a convenience single-value header shape. Cookie
	// injection overwrites an existing Cookie entry on this shape
	// instead of appending; see injectCookie.
	HeaderMap map[string]string

	// Body is the request body; nil means none.
	Body transport.Body

	// Redirect selects the redirect mode. Empty means RedirectFollow.
	Redirect RedirectMode

	// MaxRedirects caps the number of redirect hops for this call.
	// Zero means the client default.
	MaxRedirects int

	// ReferrerPolicy is the initial referrer policy for the call. It is
	// replaced along the chain by valid Referrer-Policy response
	// headers.
	ReferrerPolicy string

	// Timeout overrides the transport-level timeout for every hop of
	// this call. Zero means the transport default.
	Timeout time.Duration
}

// Response is the terminal response of a fetch call.
type Response struct {
	*transport.Response

	// Redirected is true once at least one redirect has been followed
	// within the call.
	Redirected bool
}

// Client runs fetch calls through a transport and a cookie jar. One jar
// belongs to one Client; independent calls on the same Client may run
// concurrently and interleave jar reads and writes, with last writer
// winning per cookie key.
type Client struct {
	transport          transport.Client
	jar                jar.Jar
	maxRedirects       int
	ignoreCookieErrors bool
	logger             *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMaxRedirects sets the default redirect ceiling for all calls.
func WithMaxRedirects(n int) Option {
	return func(c *Client) { c.maxRedirects = n }
}

// WithStrictCookieErrors makes jar storage failures abort the call
// instead of being dropped silently.
func WithStrictCookieErrors() Option {
	return func(c *Client) { c.ignoreCookieErrors = false }
}

// WithLogger sets the logger used for per-hop debug logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client. The transport and jar are required
// collaborators; the jar is shared by reference and must be safe for
// concurrent use.
func New(t transport.Client, j jar.Jar, opts ...Option) *Client {
	c := &Client{
		transport:          t,
		jar:                j,
		maxRedirects:       DefaultMaxRedirects,
		ignoreCookieErrors: true,
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues one logical request: it attaches stored cookies, sends
// the request through the transport, harvests response cookies into the
// jar, and walks the redirect chain according to the redirect mode. The
// returned response is the terminal one; its Redirected flag reports
// whether any hop was followed. ctx is threaded through every hop.
func (c *Client) Fetch(ctx context.Context, target string, init *Init) (*Response, error) {
	if init == nil {
		init = &Init{}
	}

	mode := init.Redirect
	if mode == "" {
		mode = RedirectFollow
	}
	maxRedirects := init.MaxRedirects
	if maxRedirects == 0 {
		maxRedirects = c.maxRedirects
	}

	rec := newRecord(init)
	urlStr := target

	// The redirect chain is an explicit loop rather than recursion, so
	// long chains cost nothing in stack depth. The ceiling check inside
	// resolveRedirect is the sole bound on its length.
	for {
		u, err := url.Parse(urlStr)
		if err != nil {
			return nil, fmt.Errorf("fetch: parse url %q: %w", urlStr, err)
		}

		cookieStr, err := c.jar.CookieString(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("fetch: read cookies: %w", err)
		}

		// Inject into a send-time copy so the hop's record stays a
		// clean snapshot: the next hop re-reads the jar rather than
		// inheriting this hop's Cookie line.
		sendHeader := rec.header.Clone()
		injectCookie(sendHeader, rec.simple, cookieStr)

		resp, err := c.transport.Do(ctx, &transport.Request{
			Method:  rec.method,
			URL:     urlStr,
			Header:  sendHeader,
			Body:    rec.body,
			Timeout: init.Timeout,
		})
		if err != nil {
			// Transport failures pass through unmodified.
			return nil, err
		}

		c.logger.Debug("fetch hop",
			"url", urlStr,
			"method", rec.method,
			"status", resp.StatusCode,
			"hop", rec.hop,
		)

		if err := c.storeCookies(ctx, resp); err != nil {
			return nil, err
		}

		out := &Response{Response: resp, Redirected: rec.hop > 0}
		if !isRedirectStatus(resp.StatusCode) {
			return out, nil
		}

		nextURL, nextRec, err := resolveRedirect(mode, maxRedirects, target, rec, resp)
		if err != nil {
			return nil, err
		}
		if nextURL == "" {
			// Manual mode, or a redirect status without a Location.
			return out, nil
		}
		urlStr, rec = nextURL, nextRec
	}
}

// storeCookies harvests the response's Set-Cookie values and stores them
// all concurrently, waiting for every store to settle before returning.
// Storage failures are dropped (with a debug log) unless the client was
// built with WithStrictCookieErrors.
func (c *Client) storeCookies(ctx context.Context, resp *transport.Response) error {
	raws := harvestCookies(resp)
	if len(raws) == 0 {
		return nil
	}

	respURL, err := url.Parse(resp.URL)
	if err != nil {
		return fmt.Errorf("fetch: parse response URL %q: %w", resp.URL, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, raw := range raws {
		raw := raw
		g.Go(func() error {
			if err := c.jar.SetCookie(gctx, respURL, raw); err != nil {
				if c.ignoreCookieErrors {
					c.logger.Debug("dropping cookie", "url", resp.URL, "error", err)
					return nil
				}
				return fmt.Errorf("fetch: store cookie: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}
