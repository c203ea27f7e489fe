// Package output provides formatters for fetched responses.
package output

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is everything the CLI knows about one completed fetch.
type Result struct {
	URL        string
	Status     int
	Protocol   string
	Redirected bool
	Duration   time.Duration
	Headers    http.Header
	Body       []byte
}

// Formatter writes a fetch result in a specific format.
type Formatter interface {
	// Format returns the format name (e.g., "text", "json").
	Format() string

	// Write writes the formatted result to w.
	Write(w io.Writer, result *Result) error
}

// New creates a formatter by format name ("text" or "json").
// The format name is case-insensitive.
func New(format string, verbose int) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text":
		return &TextFormatter{Verbose: verbose}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}
