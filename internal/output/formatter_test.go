package output

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"
)

func sampleResult() *Result {
	return &Result{
		URL:        "http://example.com/page",
		Status:     200,
		Protocol:   "HTTP/1.1",
		Redirected: true,
		Duration:   42 * time.Millisecond,
		Headers:    http.Header{"Content-Type": {"text/html"}},
		Body:       []byte("<html>hello</html>"),
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"text", "TEXT", "json", "JSON"} {
		f, err := New(name, 0)
		if err != nil {
			t.Errorf("New(%q) returned error: %v", name, err)
		}
		if f == nil {
			t.Errorf("New(%q) returned nil formatter", name)
		}
	}
	if _, err := New("xml", 0); err == nil {
		t.Error("New(\"xml\") returned nil error")
	}
}

func TestTextBodyOnlyByDefault(t *testing.T) {
	var sb strings.Builder
	f := &TextFormatter{}
	if err := f.Write(&sb, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if sb.String() != "<html>hello</html>" {
		t.Errorf("output = %q, want the bare body", sb.String())
	}
}

func TestTextVerboseIncludesStatusAndHeaders(t *testing.T) {
	var sb strings.Builder
	f := &TextFormatter{Verbose: 2}
	if err := f.Write(&sb, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"HTTP/1.1 200 OK", "Redirected: yes", "Content-Type: text/html", "<html>hello</html>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var sb strings.Builder
	f := &JSONFormatter{}
	if err := f.Write(&sb, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["status"] != float64(200) {
		t.Errorf("status = %v, want 200", decoded["status"])
	}
	if decoded["redirected"] != true {
		t.Errorf("redirected = %v, want true", decoded["redirected"])
	}
	if decoded["body"] != "<html>hello</html>" {
		t.Errorf("body = %v", decoded["body"])
	}
}

func TestJSONBinaryBodyBase64(t *testing.T) {
	res := sampleResult()
	res.Body = []byte{0xff, 0xfe, 0x00}

	var sb strings.Builder
	if err := (&JSONFormatter{Compact: true}).Write(&sb, res); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["body"]; ok {
		t.Error("binary body emitted as a JSON string")
	}
	if _, ok := decoded["body_base64"]; !ok {
		t.Error("body_base64 missing for a binary body")
	}
}
