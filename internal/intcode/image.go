package intcode

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Program is an Intcode program image: the initial memory contents, one
// integer per address starting at 0.
type Program []int

// Parse parses a single line of comma separated signed decimal integers.
// Whitespace around fields and a trailing newline are tolerated.
func Parse(s string) (Program, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty program")
	}
	fields := strings.Split(s, ",")
	prog := make(Program, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid program word #%v", i)
		}
		prog[i] = n
	}
	return prog, nil
}

// MustParse is like Parse but panics on error; it is intended for program
// literals.
func MustParse(s string) Program {
	prog, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return prog
}

// ReadProgram reads and parses a whole program image from r.
func ReadProgram(r io.Reader) (Program, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "ReadProgram")
	}
	prog, err := Parse(string(b))
	if err != nil {
		return nil, errors.Wrap(err, "ReadProgram")
	}
	return prog, nil
}

// LoadFile reads and parses the program image stored in fileName.
func LoadFile(fileName string) (Program, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadFile")
	}
	defer f.Close()
	prog, err := ReadProgram(f)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadFile %v", fileName)
	}
	return prog, nil
}

// Clone returns an independent copy of the program image.
func (prog Program) Clone() Program {
	return append(Program(nil), prog...)
}

func (prog Program) String() string {
	var sb strings.Builder
	for i, n := range prog {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}
