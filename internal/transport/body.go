package transport

import (
	"bytes"
	"io"
)

// Body is a request body. Exactly three variants exist, chosen once when
// the request is built: a nil Body (no body), a BufferedBody (replayable
// bytes), or a StreamBody (a one-shot reader that cannot be resent).
type Body interface {
	// Reader returns a reader for one transmission of the body.
	Reader() io.Reader

	// Replayable reports whether the body can be transmitted again,
	// e.g. when a redirect requires resending it.
	Replayable() bool

	// Len returns the body length in bytes, or -1 if unknown.
	Len() int64
}

// BufferedBody is a fully buffered, replayable request body.
type BufferedBody struct {
	data []byte
}

// NewBufferedBody wraps b as a replayable body.
func NewBufferedBody(b []byte) *BufferedBody {
	return &BufferedBody{data: b}
}

// NewStringBody wraps s as a replayable body.
func NewStringBody(s string) *BufferedBody {
	return &BufferedBody{data: []byte(s)}
}

func (b *BufferedBody) Reader() io.Reader { return bytes.NewReader(b.data) }
func (b *BufferedBody) Replayable() bool  { return true }
func (b *BufferedBody) Len() int64        { return int64(len(b.data)) }

// StreamBody is a one-shot streaming request body. Once its reader has
// been consumed it cannot be safely resent.
type StreamBody struct {
	r io.Reader
}

// NewStreamBody wraps r as a one-shot body.
func NewStreamBody(r io.Reader) *StreamBody {
	return &StreamBody{r: r}
}

func (b *StreamBody) Reader() io.Reader { return b.r }
func (b *StreamBody) Replayable() bool  { return false }
func (b *StreamBody) Len() int64        { return -1 }
