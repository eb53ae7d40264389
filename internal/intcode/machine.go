package intcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gammazero/deque"

	"github.com/jcorbin/intcode/internal/mem"
	"github.com/jcorbin/intcode/internal/panicerr"
)

// Status is the run status of a Machine.
type Status uint8

// Machine run states.
const (
	Running Status = iota
	AwaitingInput
	Halted
)

func (st Status) String() string {
	switch st {
	case Running:
		return "running"
	case AwaitingInput:
		return "awaiting input"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("Status(%d)", uint8(st))
}

// Yield tells why Run or Step returned control to the caller.
type Yield uint8

// Yield reasons.
const (
	YieldNone   Yield = iota // only from Step: the instruction did not suspend
	YieldOutput              // an output value was produced
	YieldInput               // input is needed but none is queued
	YieldHalt                // the machine is halted
)

func (y Yield) String() string {
	switch y {
	case YieldNone:
		return "none"
	case YieldOutput:
		return "output"
	case YieldInput:
		return "input"
	case YieldHalt:
		return "halt"
	}
	return fmt.Sprintf("Yield(%d)", uint8(y))
}

// Result describes a suspension of a Machine.
type Result struct {
	Yield Yield
	Value int // the output value, for YieldOutput
	Steps int // instructions executed by the call

	// Idle is set when the machine was already halted, so nothing ran.
	Idle bool
}

func (res Result) String() string {
	if res.Yield == YieldOutput {
		return fmt.Sprintf("output(%v)", res.Value)
	}
	return res.Yield.String()
}

// Machine is a single Intcode machine. It exclusively owns its memory; values
// only cross machine boundaries through SupplyInput and Run results.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	logging

	mem    mem.Ints
	ip     int
	base   int
	input  deque.Deque[int]
	status Status
	fault  error

	steps     int64
	stepLimit int
}

// New creates a machine with a copy of prog loaded into fresh memory. If the
// image cannot be loaded, for example because it exceeds a memory limit, the
// machine is born faulted and returns the error from its first Run.
func New(prog Program, opts ...Option) *Machine {
	var m Machine
	if opt := Options(opts...); opt != nil {
		opt.apply(&m)
	}
	m.loadProgram(prog)
	return &m
}

// Reload reinitializes the machine with a fresh program image, discarding
// memory, pending input, registers, and any fault.
func (m *Machine) Reload(prog Program) {
	m.mem.Reset()
	m.input.Clear()
	m.loadProgram(prog)
}

func (m *Machine) loadProgram(prog Program) {
	m.ip, m.base = 0, 0
	m.status = Running
	m.fault = nil
	m.steps = 0
	if err := m.mem.Stor(0, prog...); err != nil {
		m.fault = Fault{IP: 0, Err: fmt.Errorf("unable to load program: %w", memError(err))}
	}
}

// SupplyInput appends values to the pending input queue. It never changes
// the run status; a machine awaiting input retries its input instruction on
// the next Run. Input supplied to a halted machine is accepted but never
// consumed.
func (m *Machine) SupplyInput(values ...int) {
	for _, v := range values {
		m.input.PushBack(v)
	}
}

// Run starts or continues execution until an output is produced, input is
// needed but not available, or the machine halts. Run on a halted machine
// executes nothing and returns an Idle YieldHalt result.
//
// Errors are fatal: the returned error is the machine's Fault (or, for an
// internal failure, a recovered panic) and every later call returns it again.
func (m *Machine) Run() (res Result, err error) {
	if m.fault != nil {
		return Result{Yield: YieldHalt}, m.fault
	}
	if m.status == Halted {
		return Result{Yield: YieldHalt, Idle: true}, nil
	}
	err = m.guard(func() error {
		for {
			yield, value, ran := m.step()
			if ran {
				res.Steps++
			}
			if yield != YieldNone {
				res.Yield, res.Value = yield, value
				return nil
			}
			if lim := m.stepLimit; lim > 0 && res.Steps >= lim {
				m.fail(StepLimitError{lim})
			}
		}
	})
	if err != nil {
		res.Yield = YieldHalt
	}
	return res, err
}

// Step executes exactly one instruction; its result has YieldNone unless the
// instruction produced an output, starved for input, or halted.
func (m *Machine) Step() (res Result, err error) {
	if m.fault != nil {
		return Result{Yield: YieldHalt}, m.fault
	}
	if m.status == Halted {
		return Result{Yield: YieldHalt, Idle: true}, nil
	}
	err = m.guard(func() error {
		yield, value, ran := m.step()
		if ran {
			res.Steps = 1
		}
		res.Yield, res.Value = yield, value
		return nil
	})
	if err != nil {
		res.Yield = YieldHalt
	}
	return res, err
}

func (m *Machine) guard(f func() error) error {
	err := panicerr.Guard("intcode", f)
	if err == nil {
		return nil
	}
	var flt Fault
	if errors.As(err, &flt) {
		err = flt
	}
	m.fault = err
	m.logf("!", "%v", err)
	return err
}

// fail halts execution by raising a Fault, recovered by guard.
func (m *Machine) fail(err error) {
	panic(Fault{IP: m.ip, Err: err})
}

// IP returns the instruction pointer.
func (m *Machine) IP() int { return m.ip }

// RelativeBase returns the relative base register.
func (m *Machine) RelativeBase() int { return m.base }

// Status returns the run status.
func (m *Machine) Status() Status { return m.status }

// Err returns the fault that stopped the machine, if any.
func (m *Machine) Err() error { return m.fault }

// Steps returns the number of instructions executed since the program was
// loaded.
func (m *Machine) Steps() int64 { return m.steps }

// Pending returns the number of queued input values.
func (m *Machine) Pending() int { return m.input.Len() }

// Load returns the value at addr; anything never written reads as 0.
func (m *Machine) Load(addr int) (int, error) {
	v, err := m.mem.Load(addr)
	return v, memError(err)
}

// Patch stores values into memory starting at addr, e.g. to set the noun and
// verb of a program before running it.
func (m *Machine) Patch(addr int, values ...int) error {
	return memError(m.mem.Stor(addr, values...))
}

// Memory returns a copy of memory up to its current extent.
func (m *Machine) Memory() []int { return m.mem.Snapshot() }

func (m *Machine) String() string {
	return fmt.Sprintf("ip:%v rb:%v %v pending:%v", m.ip, m.base, m.status, m.input.Len())
}

func memError(err error) error {
	var ae mem.AddressError
	if errors.As(err, &ae) {
		return AddressError{ae.Addr}
	}
	return err
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(" ", n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
