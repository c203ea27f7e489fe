package fetch

import (
	"strings"
	"unicode"
)

// referrerPolicies is the fixed set of valid Referrer-Policy tokens.
var referrerPolicies = map[string]bool{
	"":                                true,
	"no-referrer":                     true,
	"no-referrer-when-downgrade":      true,
	"same-origin":                     true,
	"origin":                          true,
	"strict-origin":                   true,
	"origin-when-cross-origin":        true,
	"strict-origin-when-cross-origin": true,
	"unsafe-url":                      true,
}

// parseReferrerPolicy extracts the policy from a Referrer-Policy header
// value. The value is split on commas and whitespace and the LAST token
// that is a member of the valid set wins; unrecognized tokens are
// ignored. If no valid token is present the result is the empty policy.
func parseReferrerPolicy(value string) string {
	policy := ""
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, tok := range tokens {
		if referrerPolicies[tok] {
			policy = tok
		}
	}
	return policy
}
