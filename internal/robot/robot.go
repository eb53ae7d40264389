// Package robot implements a hull painting robot controlled by an Intcode
// program.
//
// The robot starts at the origin facing up. Whenever the program reads input
// it receives the colour of the panel under the robot; the program then
// outputs a pair of values: the colour to paint that panel, and a turn
// direction (0 left, 1 right), after which the robot moves one panel forward.
package robot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jcorbin/intcode/internal/intcode"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidTurn  = errors.New("invalid turn")
)

// Color of a hull panel.
type Color int

const (
	Black Color = iota
	White
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// Point is a panel location; Y grows downward.
type Point struct{ X, Y int }

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Hull records panel colours; unknown panels are black.
type Hull struct {
	panels  map[Point]Color
	painted map[Point]int
}

// NewHull returns an all black hull.
func NewHull() *Hull {
	return &Hull{
		panels:  make(map[Point]Color),
		painted: make(map[Point]int),
	}
}

// Color returns the colour of the panel at p.
func (h *Hull) Color(p Point) Color { return h.panels[p] }

// Set colours the panel at p without counting it as painted.
func (h *Hull) Set(p Point, c Color) { h.panels[p] = c }

// Paint colours the panel at p, counting it as painted.
func (h *Hull) Paint(p Point, c Color) {
	h.panels[p] = c
	h.painted[p]++
}

// Painted returns how many panels were painted at least once.
func (h *Hull) Painted() int { return len(h.painted) }

// Render draws the bounding box of every known panel, one line per row, with
// '#' for white and '.' for black.
func (h *Hull) Render() string {
	if len(h.panels) == 0 {
		return ""
	}
	first := true
	var lo, hi Point
	for p := range h.panels {
		if first {
			lo, hi = p, p
			first = false
			continue
		}
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}

	var sb strings.Builder
	sb.Grow((hi.X - lo.X + 2) * (hi.Y - lo.Y + 1))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if h.panels[Point{x, y}] == White {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var up = Point{0, -1}

// Robot is an intcode.Device that paints a Hull.
type Robot struct {
	hull *Hull
	pos  Point
	dir  Point

	haveColor bool
	color     Color

	logfn func(mess string, args ...interface{})
}

// New creates a robot standing on the origin of hull, facing up.
func New(hull *Hull) *Robot {
	return &Robot{hull: hull, dir: up}
}

// Pos returns the robot's location.
func (r *Robot) Pos() Point { return r.pos }

// Input returns the colour of the panel under the robot.
func (r *Robot) Input() (int, error) {
	return int(r.hull.Color(r.pos)), nil
}

// Output handles the next value of a (colour, turn) pair.
func (r *Robot) Output(value int) error {
	if !r.haveColor {
		c := Color(value)
		if c != Black && c != White {
			return fmt.Errorf("%w %v @%v", ErrInvalidColor, value, r.pos)
		}
		r.color, r.haveColor = c, true
		return nil
	}

	switch value {
	case 0:
		r.dir = Point{r.dir.Y, -r.dir.X}
	case 1:
		r.dir = Point{-r.dir.Y, r.dir.X}
	default:
		return fmt.Errorf("%w %v @%v", ErrInvalidTurn, value, r.pos)
	}
	r.hull.Paint(r.pos, r.color)
	if r.logfn != nil {
		r.logfn("paint %v %v, turn %v", r.pos, r.color, value)
	}
	r.pos = r.pos.add(r.dir)
	r.haveColor = false
	return nil
}

// Paint runs prog with a robot on a fresh hull whose starting panel has the
// start colour, returning the hull after the program halts.
func Paint(ctx context.Context, prog intcode.Program, start Color, opts ...Option) (*Hull, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	hull := NewHull()
	hull.Set(Point{}, start)
	r := New(hull)
	r.logfn = cfg.logfn

	m := intcode.New(prog, cfg.machineOpts...)
	if err := intcode.Interact(ctx, m, r); err != nil {
		return hull, err
	}
	return hull, nil
}

type config struct {
	machineOpts []intcode.Option
	logfn       func(mess string, args ...interface{})
}

// Option configures Paint.
type Option func(*config)

// WithMachineOptions configures the robot's controlling machine.
func WithMachineOptions(opts ...intcode.Option) Option {
	return func(cfg *config) { cfg.machineOpts = append(cfg.machineOpts, opts...) }
}

// WithLogf logs every painted panel.
func WithLogf(logfn func(mess string, args ...interface{})) Option {
	return func(cfg *config) { cfg.logfn = logfn }
}
