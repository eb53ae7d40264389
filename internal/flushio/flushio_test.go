package flushio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainWriter hides any buffer methods of its Writer.
type plainWriter struct{ io.Writer }

func TestNewWriteFlusher(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, nopFlusher{}, NewWriteFlusher(&buf))
	assert.IsType(t, nopFlusher{}, NewWriteFlusher(io.Discard))

	wf := NewWriteFlusher(plainWriter{&buf})
	assert.Equal(t, wf, NewWriteFlusher(wf), "expected a WriteFlusher to be returned as is")

	_, err := io.WriteString(wf, "hello")
	require.NoError(t, err)
	assert.Equal(t, "", buf.String(), "expected output to be buffered")
	require.NoError(t, wf.Flush())
	assert.Equal(t, "hello", buf.String())
}

func TestLineFlusher(t *testing.T) {
	var buf bytes.Buffer
	wf := LineFlusher(NewWriteFlusher(plainWriter{&buf}))
	assert.Equal(t, wf, LineFlusher(wf))

	io.WriteString(wf, "1")
	assert.Equal(t, "", buf.String(), "expected partial line to be buffered")
	io.WriteString(wf, "2\n")
	assert.Equal(t, "12\n", buf.String())
}

func TestWriteFlushers(t *testing.T) {
	assert.Nil(t, WriteFlushers())
	assert.Nil(t, WriteFlushers(nil, nil))

	var a, b bytes.Buffer
	one := NewWriteFlusher(plainWriter{&a})
	assert.Equal(t, one, WriteFlushers(nil, one))

	two := NewWriteFlusher(plainWriter{&b})
	tee := WriteFlushers(one, two)
	assert.Len(t, WriteFlushers(tee, NewWriteFlusher(io.Discard)), 3, "expected nested tee to be flattened")

	io.WriteString(tee, "out\n")
	require.NoError(t, tee.Flush())
	assert.Equal(t, "out\n", a.String())
	assert.Equal(t, "out\n", b.String())
}

type failWriter struct{ err error }

func (fw failWriter) Write(p []byte) (int, error) { return 0, fw.err }
func (fw failWriter) Flush() error                { return fw.err }

func TestWriteFlushers_errors(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer
	tee := WriteFlushers(failWriter{boom}, NewWriteFlusher(&buf))
	_, err := io.WriteString(tee, "x")
	assert.Equal(t, boom, err)
	assert.Equal(t, "", buf.String(), "expected writing to stop at the first failure")
	assert.Equal(t, boom, tee.Flush())
}
