package output

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// TextFormatter outputs plain terminal text. At verbosity 0 only the
// body is written, so the output can be piped like curl's.
type TextFormatter struct {
	// Verbose controls detail level: 0=body only, 1=+status line, 2=+headers.
	Verbose int
}

// Format returns "text".
func (f *TextFormatter) Format() string {
	return "text"
}

// Write writes the formatted result to w.
func (f *TextFormatter) Write(w io.Writer, result *Result) error {
	b := &strings.Builder{}

	if f.Verbose >= 1 {
		fmt.Fprintf(b, "%s %d %s\n", result.Protocol, result.Status, http.StatusText(result.Status))
		fmt.Fprintf(b, "URL: %s\n", result.URL)
		if result.Redirected {
			fmt.Fprintln(b, "Redirected: yes")
		}
		fmt.Fprintf(b, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	}

	if f.Verbose >= 2 {
		names := make([]string, 0, len(result.Headers))
		for name := range result.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, v := range result.Headers[name] {
				fmt.Fprintf(b, "%s: %s\n", name, v)
			}
		}
	}

	if f.Verbose >= 1 && len(result.Body) > 0 {
		fmt.Fprintln(b)
	}
	b.Write(result.Body)

	_, err := io.WriteString(w, b.String())
	return err
}
