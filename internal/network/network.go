package network

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/atomic"

	"github.com/jcorbin/intcode/internal/intcode"
)

// Network is a chain of Intcode machines.
type Network struct {
	prog     intcode.Program
	stages   []stage
	feedback bool

	concurrent  bool
	machineOpts []intcode.Option
	logfn       func(mess string, args ...interface{})

	driven    bool
	rounds    atomic.Int64
	forwarded atomic.Int64
}

type stage struct {
	m     *intcode.Machine
	phase *int

	last    int
	emitted bool
}

// Stats describe the work done by the last Drive.
type Stats struct {
	Rounds    int64 // round-robin scheduling rounds
	Forwarded int64 // values routed from one stage to another
}

// BuildChain creates a network of stages machines, each loaded with its own
// copy of prog. With feedback, the last stage's output is routed back to the
// first stage.
func BuildChain(prog intcode.Program, stages int, feedback bool, opts ...Option) (*Network, error) {
	if stages < 1 {
		return nil, fmt.Errorf("invalid stage count %v", stages)
	}
	n := &Network{
		prog:     prog.Clone(),
		stages:   make([]stage, stages),
		feedback: feedback,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(n)
		}
	}
	for i := range n.stages {
		n.stages[i].m = intcode.New(n.prog, n.machineOpts...)
	}
	return n, nil
}

// Len returns the number of stages.
func (n *Network) Len() int { return len(n.stages) }

// Machine returns the machine of stage i.
func (n *Network) Machine(i int) *intcode.Machine { return n.stages[i].m }

// InitializeStage queues phase as the first input of stage i.
func (n *Network) InitializeStage(i, phase int) error {
	if i < 0 || i >= len(n.stages) {
		return fmt.Errorf("stage %v out of range [0, %v)", i, len(n.stages))
	}
	st := &n.stages[i]
	if st.phase != nil {
		return fmt.Errorf("stage %v already initialized with phase %v", i, *st.phase)
	}
	st.phase = &phase
	st.m.SupplyInput(phase)
	return nil
}

// Reset reloads every stage with a fresh copy of the program, forgetting any
// phase settings, so that the network may be driven again.
func (n *Network) Reset() {
	for i := range n.stages {
		st := &n.stages[i]
		st.m.Reload(n.prog)
		st.phase = nil
		st.last, st.emitted = 0, false
	}
	n.driven = false
	n.rounds.Store(0)
	n.forwarded.Store(0)
}

// Stats returns the work counters of the current or last Drive; it is safe to
// call while Drive is running.
func (n *Network) Stats() Stats {
	return Stats{
		Rounds:    n.rounds.Load(),
		Forwarded: n.forwarded.Load(),
	}
}

// Drive feeds signal to the first stage and runs the network to completion,
// returning the last value emitted by the terminal stage. Any machine fault
// aborts every stage and is returned as a StageError.
func (n *Network) Drive(ctx context.Context, signal int) (int, error) {
	if n.driven {
		return 0, ErrDriven
	}
	n.driven = true

	n.stages[0].m.SupplyInput(signal)
	n.logf("drive %v stages feedback:%v concurrent:%v signal:%v",
		len(n.stages), n.feedback, n.concurrent, signal)

	var err error
	switch {
	case n.concurrent:
		err = n.driveConcurrent(ctx)
	case n.feedback:
		err = n.driveRoundRobin(ctx)
	default:
		err = n.drivePass(ctx)
	}
	if err != nil {
		n.logf("drive failed: %v", err)
		return 0, err
	}

	term := n.stages[len(n.stages)-1]
	if !term.emitted {
		return 0, StageError{len(n.stages) - 1, ErrNoSignal}
	}
	n.logf("drive result %v", term.last)
	return term.last, nil
}

// next returns the index of the stage fed by stage i, or -1.
func (n *Network) next(i int) int {
	if i++; i < len(n.stages) {
		return i
	}
	if n.feedback {
		return 0
	}
	return -1
}

// emit records an output of stage i and routes it to the next stage; with
// queue set, the value is appended straight to the next machine's input.
func (n *Network) emit(i, value int, queue bool) (to int) {
	st := &n.stages[i]
	st.last, st.emitted = value, true
	to = n.next(i)
	if to >= 0 {
		n.forwarded.Inc()
		if queue {
			n.stages[to].m.SupplyInput(value)
		}
	}
	if n.logfn != nil {
		n.logf("stage %v -> %v: %v", i, to, value)
	}
	return to
}

func (n *Network) String() string {
	var sb strings.Builder
	for i, st := range n.stages {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		fmt.Fprintf(&sb, "[%v %v]", i, st.m)
	}
	if n.feedback {
		sb.WriteString(" -> [0]")
	}
	return sb.String()
}

func (n *Network) logf(mess string, args ...interface{}) {
	if n.logfn != nil {
		n.logfn(mess, args...)
	}
}
