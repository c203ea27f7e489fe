package fetch

import (
	"net/http"
	"testing"

	"github.com/0x6d61/fetchjar/internal/transport"
)

func redirectResponse(url string, status int, hdr http.Header) *transport.Response {
	if hdr == nil {
		hdr = http.Header{}
	}
	return &transport.Response{StatusCode: status, Headers: hdr, URL: url}
}

func TestIsRedirectStatus(t *testing.T) {
	for _, status := range []int{301, 302, 303, 307, 308} {
		if !isRedirectStatus(status) {
			t.Errorf("isRedirectStatus(%d) = false, want true", status)
		}
	}
	for _, status := range []int{200, 204, 300, 304, 305, 306, 400, 500} {
		if isRedirectStatus(status) {
			t.Errorf("isRedirectStatus(%d) = true, want false", status)
		}
	}
}

func TestResolveRedirectReferrerPolicyPropagation(t *testing.T) {
	rec := newRecord(&Init{ReferrerPolicy: "origin"})
	resp := redirectResponse("http://example.com/", 302, http.Header{
		"Location":        {"/next"},
		"Referrer-Policy": {"bogus-token no-referrer, unsafe-url"},
	})

	_, next, err := resolveRedirect(RedirectFollow, 20, "http://example.com/", rec, resp)
	if err != nil {
		t.Fatalf("resolveRedirect: %v", err)
	}
	// The LAST valid token wins; unrecognized ones are skipped.
	if next.referrerPolicy != "unsafe-url" {
		t.Errorf("referrerPolicy = %q, want %q", next.referrerPolicy, "unsafe-url")
	}
}

func TestResolveRedirectReferrerPolicyAbsentKeepsCurrent(t *testing.T) {
	rec := newRecord(&Init{ReferrerPolicy: "origin"})
	resp := redirectResponse("http://example.com/", 302, http.Header{"Location": {"/next"}})

	_, next, err := resolveRedirect(RedirectFollow, 20, "http://example.com/", rec, resp)
	if err != nil {
		t.Fatalf("resolveRedirect: %v", err)
	}
	if next.referrerPolicy != "origin" {
		t.Errorf("referrerPolicy = %q, want %q", next.referrerPolicy, "origin")
	}
}

func TestResolveRedirectReferrerPolicyNoValidTokenYieldsEmpty(t *testing.T) {
	rec := newRecord(&Init{ReferrerPolicy: "origin"})
	resp := redirectResponse("http://example.com/", 302, http.Header{
		"Location":        {"/next"},
		"Referrer-Policy": {"nonsense other-nonsense"},
	})

	_, next, err := resolveRedirect(RedirectFollow, 20, "http://example.com/", rec, resp)
	if err != nil {
		t.Fatalf("resolveRedirect: %v", err)
	}
	if next.referrerPolicy != "" {
		t.Errorf("referrerPolicy = %q, want empty", next.referrerPolicy)
	}
}

func TestResolveRedirectHopIncrement(t *testing.T) {
	rec := newRecord(&Init{})
	rec.hop = 3
	resp := redirectResponse("http://example.com/", 302, http.Header{"Location": {"/next"}})

	_, next, err := resolveRedirect(RedirectFollow, 20, "http://example.com/", rec, resp)
	if err != nil {
		t.Fatalf("resolveRedirect: %v", err)
	}
	if next.hop != 4 {
		t.Errorf("hop = %d, want 4", next.hop)
	}
	if rec.hop != 3 {
		t.Errorf("original record mutated: hop = %d, want 3", rec.hop)
	}
}

func TestResolveRedirectMalformedLocation(t *testing.T) {
	rec := newRecord(&Init{})
	resp := redirectResponse("http://example.com/", 302, http.Header{"Location": {"http://%zz"}})

	_, _, err := resolveRedirect(RedirectFollow, 20, "http://example.com/", rec, resp)
	if err == nil {
		t.Error("resolveRedirect with malformed Location returned nil error")
	}
}

func TestResolveRedirectStripDecisionUsesHostnameOnly(t *testing.T) {
	// Same hostname on a different port and scheme stays covered.
	rec := newRecord(&Init{Header: http.Header{"Authorization": {"secret"}}})
	resp := redirectResponse("https://example.com/start", 302, http.Header{
		"Location": {"http://example.com:8080/next"},
	})

	_, next, err := resolveRedirect(RedirectFollow, 20, "https://example.com/start", rec, resp)
	if err != nil {
		t.Fatalf("resolveRedirect: %v", err)
	}
	if got := next.header.Get("Authorization"); got != "secret" {
		t.Errorf("Authorization = %q, want kept for same hostname", got)
	}
}
