package fetch

import (
	"net/http"

	"github.com/0x6d61/fetchjar/internal/transport"
)

// record is the per-hop request state. A record is never mutated once a
// hop has used it; each redirect derives a fresh clone with the hop
// counter advanced.
type record struct {
	method         string
	header         http.Header
	simple         bool // headers were supplied as a plain map
	body           transport.Body
	referrerPolicy string
	hop            int
}

// newRecord normalizes the caller's init into the internal record. The
// header shape is decided exactly once here: an http.Header keeps
// multi-value semantics, a plain map is converted but remembered as
// "simple" so cookie injection can keep its historical overwrite
// behavior on that shape.
func newRecord(init *Init) *record {
	rec := &record{
		method:         init.Method,
		body:           init.Body,
		referrerPolicy: init.ReferrerPolicy,
	}
	if rec.method == "" {
		rec.method = http.MethodGet
	}

	switch {
	case init.Header != nil:
		rec.header = init.Header.Clone()
	case init.HeaderMap != nil:
		rec.simple = true
		rec.header = make(http.Header, len(init.HeaderMap))
		for k, v := range init.HeaderMap {
			rec.header.Set(k, v)
		}
	default:
		rec.header = make(http.Header)
	}
	return rec
}

// clone returns a copy of the record with its own header map. The body
// is shared, matching transport.Request semantics.
func (r *record) clone() *record {
	return &record{
		method:         r.method,
		header:         r.header.Clone(),
		simple:         r.simple,
		body:           r.body,
		referrerPolicy: r.referrerPolicy,
		hop:            r.hop,
	}
}

// deleteHeader removes a header by name, tolerating a nil map.
func (r *record) deleteHeader(name string) {
	if r.header != nil {
		r.header.Del(name)
	}
}
