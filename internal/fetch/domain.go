package fetch

import "strings"

// covered reports whether the redirect target's host equals the current
// request's host or is a subdomain of it. Only hostnames are compared;
// scheme and port are ignored. A redirect to a parent domain or to an
// unrelated host is NOT covered, and sensitive headers are stripped for
// it.
func covered(requestHost, redirectHost string) bool {
	requestHost = strings.ToLower(requestHost)
	redirectHost = strings.ToLower(redirectHost)
	if requestHost == redirectHost {
		return true
	}
	return strings.HasSuffix(redirectHost, "."+requestHost)
}
