package fetch

import "net/http"

// injectCookie merges a jar-supplied cookie string into an outgoing
// header set. An empty cookie string is a no-op.
//
// The two header shapes diverge deliberately: multi-value headers get
// the cookie APPENDED as an additional Cookie line, while headers that
// came in as a plain map OVERWRITE any existing Cookie value. The
// overwrite is a documented limitation of the simple-map shape, kept
// rather than silently merged.
func injectCookie(h http.Header, simple bool, cookie string) {
	if cookie == "" {
		return
	}
	if simple {
		h.Set("Cookie", cookie)
		return
	}
	h.Add("Cookie", cookie)
}
