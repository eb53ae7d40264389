package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Error annotates a read or parse failure with its location.
type Error struct {
	Location
	Err error
}

func (e Error) Error() string { return fmt.Sprintf("%v: %v", e.Location, e.Err) }
func (e Error) Unwrap() error { return e.Err }

// Input reads integer values through a Queue of one or more input streams.
// Each line holds zero or more comma separated values; anything after a '#'
// is a comment. The location of the last value read is kept in Last to
// facilitate user feedback.
type Input struct {
	Queue []io.Reader
	Last  Location

	sc      *bufio.Scanner
	scan    Location
	pending []string
}

// ReadInt returns the next value, or io.EOF once every stream is exhausted.
// Streams are not closed.
func (in *Input) ReadInt() (int, error) {
	for len(in.pending) == 0 {
		if err := in.scanLine(); err != nil {
			return 0, err
		}
	}
	field := in.pending[0]
	in.pending = in.pending[1:]
	in.Last = in.scan
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, Error{in.scan, err}
	}
	return n, nil
}

func (in *Input) scanLine() error {
	if in.sc == nil && !in.nextIn() {
		return io.EOF
	}
	if !in.sc.Scan() {
		if err := in.sc.Err(); err != nil {
			in.sc = nil
			return Error{in.scan, err}
		}
		in.sc = nil
		return nil
	}
	in.scan.Line++
	line := in.sc.Text()
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	for _, field := range strings.Split(line, ",") {
		if field = strings.TrimSpace(field); field != "" {
			in.pending = append(in.pending, field)
		}
	}
	return nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.sc = bufio.NewScanner(r)
	in.scan = Location{Name: nameOf(r)}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
