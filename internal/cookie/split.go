// Package cookie provides parsing helpers for Set-Cookie header values,
// most importantly splitting a combined Set-Cookie header into its
// individual cookie strings.
package cookie

// isWhitespace reports whether c is a space or horizontal tab, the only
// whitespace permitted inside a Set-Cookie value per RFC 6265.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

// Split splits a combined Set-Cookie header value into individual cookie
// strings. Some intermediaries fold multiple Set-Cookie headers into one
// comma-joined value; a naive split on "," misparses cookies whose
// Expires attribute contains a comma (e.g. "Expires=Wed, 09 Jun 2021...").
//
// A comma is treated as a cookie boundary only when the text after it
// looks like the start of a new cookie-pair: a run of non-special
// characters followed by "=". Otherwise the comma is kept as part of the
// current cookie.
//
// A single plain cookie passes through unchanged as a one-element slice.
// An empty input yields nil.
func Split(s string) []string {
	if s == "" {
		return nil
	}

	var cookies []string
	pos := 0

	skipWhitespace := func() bool {
		for pos < len(s) && isWhitespace(s[pos]) {
			pos++
		}
		return pos < len(s)
	}

	for pos < len(s) {
		start := pos
		sepFound := false

		for skipWhitespace() {
			if s[pos] != ',' {
				pos++
				continue
			}

			// Candidate boundary. Look ahead: if the text after the
			// comma is "token=" this comma separates two cookies.
			lastComma := pos
			pos++
			skipWhitespace()
			nextStart := pos
			for pos < len(s) && s[pos] != '=' && s[pos] != ';' && s[pos] != ',' {
				pos++
			}

			if pos < len(s) && s[pos] == '=' {
				sepFound = true
				cookies = append(cookies, s[start:lastComma])
				pos = nextStart
				start = pos
			} else {
				// Not a boundary (e.g. the comma inside an Expires
				// date). Resume scanning just after it.
				pos = lastComma + 1
			}
		}

		if !sepFound || pos >= len(s) {
			cookies = append(cookies, s[start:])
		}
	}

	return cookies
}
