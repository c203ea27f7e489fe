package output

import (
	"encoding/json"
	"io"
	"unicode/utf8"
)

// JSONFormatter outputs structured JSON.
type JSONFormatter struct {
	// Compact outputs single-line JSON when true (no indentation).
	Compact bool
}

// Format returns "json".
func (f *JSONFormatter) Format() string {
	return "json"
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	SchemaVersion string              `json:"schema_version"`
	Tool          string              `json:"tool"`
	URL           string              `json:"url"`
	Status        int                 `json:"status"`
	Protocol      string              `json:"protocol"`
	Redirected    bool                `json:"redirected"`
	DurationMS    float64             `json:"duration_ms"`
	Headers       map[string][]string `json:"headers"`
	Body          string              `json:"body,omitempty"`
	BodyBase64    []byte              `json:"body_base64,omitempty"`
}

// Write writes the result as JSON to w. A body that is not valid UTF-8
// is emitted base64-encoded instead of as a string.
func (f *JSONFormatter) Write(w io.Writer, result *Result) error {
	out := jsonOutput{
		SchemaVersion: "1.0",
		Tool:          "fetchjar",
		URL:           result.URL,
		Status:        result.Status,
		Protocol:      result.Protocol,
		Redirected:    result.Redirected,
		DurationMS:    float64(result.Duration.Microseconds()) / 1000,
		Headers:       result.Headers,
	}
	if utf8.Valid(result.Body) {
		out.Body = string(result.Body)
	} else {
		out.BodyBase64 = result.Body
	}

	enc := json.NewEncoder(w)
	if !f.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
