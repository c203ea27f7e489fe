package cookie

import (
	"reflect"
	"testing"
)

func TestSplitEmpty(t *testing.T) {
	if got := Split(""); got != nil {
		t.Errorf("Split(%q) = %v, want nil", "", got)
	}
}

func TestSplitSingleCookie(t *testing.T) {
	got := Split("id=abc123; Path=/; HttpOnly")
	want := []string{"id=abc123; Path=/; HttpOnly"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestSplitTwoPlainCookies(t *testing.T) {
	got := Split("a=1, b=2")
	want := []string{"a=1", "b=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestSplitExpiresCommaNotABoundary(t *testing.T) {
	// The comma inside the Expires date must not produce a third cookie.
	got := Split("a=1, Expires=Wed, 09 Jun 2021 10:18:14 GMT; b=2")
	if len(got) != 2 {
		t.Fatalf("Split() produced %d cookies (%v), want 2", len(got), got)
	}
	if got[0] != "a=1" {
		t.Errorf("first cookie = %q, want %q", got[0], "a=1")
	}
	if got[1] != "Expires=Wed, 09 Jun 2021 10:18:14 GMT; b=2" {
		t.Errorf("second cookie = %q", got[1])
	}
}

func TestSplitCookieWithExpiresAttribute(t *testing.T) {
	got := Split("session=xyz; Expires=Wed, 09 Jun 2021 10:18:14 GMT; Path=/, theme=dark; Secure")
	want := []string{
		"session=xyz; Expires=Wed, 09 Jun 2021 10:18:14 GMT; Path=/",
		"theme=dark; Secure",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestSplitThreeCookies(t *testing.T) {
	got := Split("a=1, b=2, c=3")
	want := []string{"a=1", "b=2", "c=3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestSplitTrailingCommaKept(t *testing.T) {
	// A comma not followed by "token=" is not a boundary.
	got := Split("a=1,")
	want := []string{"a=1,"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}
