package jar

import (
	"context"
	"strings"
	"testing"
)

func TestMemory_SetAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	u := mustParse(t, "http://example.com/")

	if err := m.SetCookie(ctx, u, "id=abc123"); err != nil {
		t.Fatalf("SetCookie returned error: %v", err)
	}

	got, err := m.CookieString(ctx, u)
	if err != nil {
		t.Fatalf("CookieString returned error: %v", err)
	}
	if got != "id=abc123" {
		t.Errorf("CookieString = %q, want %q", got, "id=abc123")
	}
}

func TestMemory_EmptyJar(t *testing.T) {
	m := NewMemory()

	got, err := m.CookieString(context.Background(), mustParse(t, "http://example.com/"))
	if err != nil {
		t.Fatalf("CookieString returned error: %v", err)
	}
	if got != "" {
		t.Errorf("CookieString on empty jar = %q, want empty", got)
	}
}

func TestMemory_MalformedCookie(t *testing.T) {
	m := NewMemory()
	u := mustParse(t, "http://example.com/")

	if err := m.SetCookie(context.Background(), u, ""); err == nil {
		t.Error("SetCookie(\"\") returned nil error, want malformed cookie error")
	}
}

func TestMemory_MultipleCookiesJoined(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	u := mustParse(t, "http://example.com/")

	if err := m.SetCookie(ctx, u, "a=1"); err != nil {
		t.Fatalf("SetCookie: %v", err)
	}
	if err := m.SetCookie(ctx, u, "b=2"); err != nil {
		t.Fatalf("SetCookie: %v", err)
	}

	got, err := m.CookieString(ctx, u)
	if err != nil {
		t.Fatalf("CookieString: %v", err)
	}
	if !strings.Contains(got, "a=1") || !strings.Contains(got, "b=2") {
		t.Errorf("CookieString = %q, want both a=1 and b=2", got)
	}
	if !strings.Contains(got, "; ") {
		t.Errorf("CookieString = %q, want pairs joined with %q", got, "; ")
	}
}

func TestMemory_DomainIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.SetCookie(ctx, mustParse(t, "http://example.com/"), "a=1"); err != nil {
		t.Fatalf("SetCookie: %v", err)
	}

	got, err := m.CookieString(ctx, mustParse(t, "http://other.com/"))
	if err != nil {
		t.Fatalf("CookieString: %v", err)
	}
	if got != "" {
		t.Errorf("cookie leaked across domains: %q", got)
	}
}
