package fetch

import (
	"github.com/0x6d61/fetchjar/internal/cookie"
	"github.com/0x6d61/fetchjar/internal/transport"
)

// harvestCookies extracts the raw Set-Cookie values from a response.
// Distinct header values pass through in order. A single value is run
// through the combined-header splitter, because some transports and
// proxies fold multiple Set-Cookie headers into one comma-joined value;
// the splitter leaves a genuine single cookie untouched. The result is
// never nil-checked by callers: no cookies means an empty slice.
//
// This is a pure extraction; storing the cookies is the dispatcher's
// job.
func harvestCookies(resp *transport.Response) []string {
	values := resp.Headers.Values("Set-Cookie")
	switch len(values) {
	case 0:
		return nil
	case 1:
		return cookie.Split(values[0])
	default:
		out := make([]string, len(values))
		copy(out, values)
		return out
	}
}
