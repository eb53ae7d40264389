package flushio

import (
	"bufio"
	"bytes"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w if it already flushes, a no-op flushing wrapper if
// w needs no buffering (io.Discard or an in-memory buffer), and otherwise a
// bufio.Writer around w.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if wf, ok := w.(WriteFlusher); ok {
		return wf
	}
	if w == io.Discard || isBuffer(w) {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// isBuffer matches in-memory buffers, like bytes.Buffer and strings.Builder.
func isBuffer(w io.Writer) bool {
	_, ok := w.(interface {
		Len() int
		Cap() int
		Grow(n int)
		Reset()
	})
	return ok
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// LineFlusher wraps wf so that it is flushed after every write completing a
// line, so that an interactive reader sees whole lines as soon as they are
// written.
func LineFlusher(wf WriteFlusher) WriteFlusher {
	if _, ok := wf.(nopFlusher); ok {
		return wf
	}
	if lf, ok := wf.(lineFlusher); ok {
		return lf
	}
	return lineFlusher{wf}
}

type lineFlusher struct{ WriteFlusher }

func (lf lineFlusher) Write(p []byte) (int, error) {
	n, err := lf.WriteFlusher.Write(p)
	if err == nil && bytes.IndexByte(p, '\n') >= 0 {
		err = lf.Flush()
	}
	return n, err
}
