package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRedirectMode is returned when the redirect option is not
	// one of follow, error, or manual.
	ErrInvalidRedirectMode = errors.New("fetch: invalid redirect mode")

	// ErrTooManyRedirects is returned when a redirect chain exceeds the
	// configured maximum number of hops.
	ErrTooManyRedirects = errors.New("fetch: too many redirects")

	// ErrUnreplayableBody is returned when a redirect would require
	// resending a one-shot streaming body.
	ErrUnreplayableBody = errors.New("fetch: cannot resend a consumed request body")
)

// RedirectNotAllowedError is returned when a redirect response arrives
// while the redirect mode is "error".
type RedirectNotAllowedError struct {
	// URL is the URL of the response that tried to redirect.
	URL string
}

func (e *RedirectNotAllowedError) Error() string {
	return fmt.Sprintf("fetch: redirect not allowed (response from %s)", e.URL)
}

// RedirectLimitError is returned when the hop count reaches the redirect
// ceiling. It unwraps to ErrTooManyRedirects.
type RedirectLimitError struct {
	// Limit is the configured maximum number of redirect hops.
	Limit int
	// URL is the original request URL that started the chain.
	URL string
}

func (e *RedirectLimitError) Error() string {
	return fmt.Sprintf("fetch: maximum redirects (%d) exceeded for %s", e.Limit, e.URL)
}

func (e *RedirectLimitError) Unwrap() error {
	return ErrTooManyRedirects
}

// UnreplayableBodyError is returned when a non-303 redirect would need
// to resend a streaming body that has already been consumed. It unwraps
// to ErrUnreplayableBody.
type UnreplayableBodyError struct {
	// Status is the redirect status that required the resend.
	Status int
}

func (e *UnreplayableBodyError) Error() string {
	return fmt.Sprintf("fetch: cannot resend a consumed request body (status %d)", e.Status)
}

func (e *UnreplayableBodyError) Unwrap() error {
	return ErrUnreplayableBody
}
