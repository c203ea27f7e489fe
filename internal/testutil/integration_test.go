package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/0x6d61/fetchjar/internal/fetch"
	"github.com/0x6d61/fetchjar/internal/jar"
	"github.com/0x6d61/fetchjar/internal/transport"
)

// newStack wires the real transport, a fresh in-memory jar, and a fetch
// client against a running origin.
func newStack(t *testing.T, opts ...fetch.Option) *fetch.Client {
	t.Helper()
	tc, err := transport.NewClient(transport.ClientOptions{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("transport.NewClient: %v", err)
	}
	return fetch.New(tc, jar.NewMemory(), opts...)
}

func TestIntegrationRedirectChain(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	resp, err := c.Fetch(context.Background(), srv.URL+"/redirect/3", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.BodyString() != "done" {
		t.Errorf("Body = %q, want %q", resp.BodyString(), "done")
	}
	if !resp.Redirected {
		t.Error("Redirected = false after a 3-hop chain")
	}
	if resp.URL != srv.URL+"/redirect/0" {
		t.Errorf("URL = %q, want the terminal URL", resp.URL)
	}
}

func TestIntegrationRedirectLimit(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	_, err := c.Fetch(context.Background(), srv.URL+"/loop", &fetch.Init{MaxRedirects: 3})
	if !errors.Is(err, fetch.ErrTooManyRedirects) {
		t.Errorf("error = %v, want ErrTooManyRedirects", err)
	}
}

func TestIntegrationCookiePersistence(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	ctx := context.Background()

	if _, err := c.Fetch(ctx, srv.URL+"/set?name=id&value=1", nil); err != nil {
		t.Fatalf("Fetch /set: %v", err)
	}

	resp, err := c.Fetch(ctx, srv.URL+"/cookie", nil)
	if err != nil {
		t.Fatalf("Fetch /cookie: %v", err)
	}
	if resp.BodyString() != "id=1" {
		t.Errorf("echoed Cookie = %q, want %q", resp.BodyString(), "id=1")
	}
}

func TestIntegrationCookieSetDuringRedirect(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	resp, err := c.Fetch(context.Background(), srv.URL+"/set-and-redirect", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	// The cookie set by the 302 must be visible on the landing request.
	if resp.BodyString() != "id=1" {
		t.Errorf("echoed Cookie = %q, want %q", resp.BodyString(), "id=1")
	}
}

func TestIntegrationSeeOtherDowngrade(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	resp, err := c.Fetch(context.Background(), srv.URL+"/see-other", &fetch.Init{
		Method: "POST",
		Body:   transport.NewStringBody("payload"),
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	// Method becomes GET and the body is dropped.
	if resp.BodyString() != "GET " {
		t.Errorf("echo = %q, want %q", resp.BodyString(), "GET ")
	}
}

func TestIntegrationTemporaryRedirectKeepsBody(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	resp, err := c.Fetch(context.Background(), srv.URL+"/temporary", &fetch.Init{
		Method: "POST",
		Body:   transport.NewStringBody("payload"),
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.BodyString() != "POST payload" {
		t.Errorf("echo = %q, want %q", resp.BodyString(), "POST payload")
	}
}

func TestIntegrationManualMode(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	resp, err := c.Fetch(context.Background(), srv.URL+"/redirect/1", &fetch.Init{
		Redirect: fetch.RedirectManual,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("StatusCode = %d, want 302", resp.StatusCode)
	}
}

func TestIntegrationNoLocationIsTerminal(t *testing.T) {
	srv := NewOrigin()
	defer srv.Close()

	c := newStack(t)
	resp, err := c.Fetch(context.Background(), srv.URL+"/no-location", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("StatusCode = %d, want 302", resp.StatusCode)
	}
}
