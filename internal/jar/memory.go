package jar

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Memory is an in-process jar backed by net/http/cookiejar with the
// public suffix list, so cookies cannot be set for effective TLDs.
// It holds nothing across process restarts.
type Memory struct {
	jar *cookiejar.Jar
}

// Compile-time check that Memory implements Jar.
var _ Jar = (*Memory)(nil)

// NewMemory creates an empty in-memory jar.
func NewMemory() *Memory {
	// cookiejar.New only fails on a nil-option misuse; with a valid
	// PublicSuffixList it cannot.
	j, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		panic(err)
	}
	return &Memory{jar: j}
}

// CookieString returns the cookie pairs matching u joined with "; ".
func (m *Memory) CookieString(ctx context.Context, u *url.URL) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cookies := m.jar.Cookies(u)
	if len(cookies) == 0 {
		return "", nil
	}

	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; "), nil
}

// SetCookie parses and stores one raw Set-Cookie value for u.
func (m *Memory) SetCookie(ctx context.Context, u *url.URL, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c, err := parseSetCookie(raw)
	if err != nil {
		return err
	}
	m.jar.SetCookies(u, []*http.Cookie{c})
	return nil
}
