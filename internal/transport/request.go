// Package transport provides the single-hop HTTP transport layer. It
// never follows redirects itself: 3xx responses are returned unfollowed
// so the fetch pipeline controls cookie and header handling per hop.
package transport

import (
	"net/http"
	"time"
)

// Request represents one HTTP request to be sent by the transport client.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, etc.). Empty means GET.
	Method string

	// URL is the target URL.
	URL string

	// Header contains the HTTP headers to send.
	Header http.Header

	// Body is the request body; nil means no body.
	Body Body

	// Timeout overrides the client-level timeout for this specific
	// request. Zero means use the client default.
	Timeout time.Duration
}

// Clone returns a copy of the Request with its own header map. The body
// is shared: bodies are not duplicated, and a one-shot StreamBody stays
// one-shot in the clone.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}

	clone := &Request{
		Method:  r.Method,
		URL:     r.URL,
		Body:    r.Body,
		Timeout: r.Timeout,
	}
	if r.Header != nil {
		clone.Header = r.Header.Clone()
	}
	return clone
}
