package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jcorbin/intcode/internal/fileinput"
	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/network"
	"github.com/jcorbin/intcode/internal/robot"
)

func (a *app) runCommand(ctx context.Context, flags *flag.FlagSet, args []string) error {
	var in intsFlag
	noun, verb := -1, -1
	var showMem bool
	var teeFile string
	var inFiles stringsFlag
	flags.Var(&in, "in", "comma separated input values, read before any input file")
	flags.Var(&inFiles, "in-file", "read input values from the named file before standard input; may be repeated")
	flags.IntVar(&noun, "noun", -1, "patch address 1 before running")
	flags.IntVar(&verb, "verb", -1, "patch address 2 before running")
	flags.BoolVar(&showMem, "mem", false, "print address 0 after halting")
	flags.StringVar(&teeFile, "out", "", "also write output to the named file")
	prog, err := a.loadProgram(flags, args)
	if err != nil {
		return err
	}
	if teeFile != "" {
		if err := a.tee(teeFile); err != nil {
			return err
		}
	}

	m := intcode.New(prog, intcode.Options(a.opts...), intcode.WithInput(in...))
	if err := patchNounVerb(m, noun, verb); err != nil {
		return err
	}
	dev := &lineDevice{in: &fileinput.Input{}, out: flushio.LineFlusher(a.out)}
	for _, name := range inFiles {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, f)
		dev.in.Queue = append(dev.in.Queue, f)
	}
	dev.in.Queue = append(dev.in.Queue, a.in)
	if err := intcode.Interact(ctx, m, dev); err != nil {
		return err
	}
	a.log.Debugw("halted", "steps", m.Steps(), "ip", m.IP())

	if showMem {
		v, err := m.Load(0)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%v\n", v)
	}
	return nil
}

func patchNounVerb(m *intcode.Machine, noun, verb int) error {
	if noun >= 0 {
		if err := m.Patch(1, noun); err != nil {
			return err
		}
	}
	if verb >= 0 {
		if err := m.Patch(2, verb); err != nil {
			return err
		}
	}
	return nil
}

// lineDevice reads input values from its queued streams and writes one
// output value per line.
type lineDevice struct {
	in  *fileinput.Input
	out io.Writer
}

func (dev *lineDevice) Input() (int, error) {
	value, err := dev.in.ReadInt()
	if err == io.EOF {
		return 0, fmt.Errorf("%w after %v", intcode.ErrInputStarved, dev.in.Last)
	}
	return value, err
}

func (dev *lineDevice) Output(value int) error {
	_, err := fmt.Fprintf(dev.out, "%v\n", value)
	return err
}

func (a *app) gravityCommand(ctx context.Context, flags *flag.FlagSet, args []string) error {
	var target int
	flags.IntVar(&target, "target", 19690720, "value wanted at address 0")
	prog, err := a.loadProgram(flags, args)
	if err != nil {
		return err
	}
	noun, verb, err := searchNounVerb(ctx, prog, target, a.opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%v\n", 100*noun+verb)
	return nil
}

var errNotFound = errors.New("not found")

// searchStepLimit bounds each search run unless the caller sets a limit.
const searchStepLimit = 1 << 16

// searchNounVerb runs prog with every noun and verb in [0, 99], returning the
// first pair leaving target at address 0. Combinations that fault or exceed
// the step limit are skipped.
func searchNounVerb(ctx context.Context, prog intcode.Program, target int, opts ...intcode.Option) (noun, verb int, _ error) {
	m := intcode.New(prog, intcode.WithStepLimit(searchStepLimit), intcode.Options(opts...))
	for noun = 0; noun <= 99; noun++ {
		for verb = 0; verb <= 99; verb++ {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}
			m.Reload(prog)
			if err := patchNounVerb(m, noun, verb); err != nil {
				return 0, 0, err
			}
			if _, err := intcode.RunToHalt(m); err != nil {
				continue
			}
			if v, _ := m.Load(0); v == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("noun and verb for %v %w", target, errNotFound)
}

func (a *app) ampCommand(ctx context.Context, flags *flag.FlagSet, args []string) error {
	var feedback, concurrent bool
	var phases intsFlag
	flags.BoolVar(&feedback, "feedback", false, "route the last amplifier's output back to the first")
	flags.BoolVar(&concurrent, "concurrent", false, "run each amplifier in its own goroutine")
	flags.Var(&phases, "phases", "phase settings to permute (default 0-4, or 5-9 with -feedback)")
	prog, err := a.loadProgram(flags, args)
	if err != nil {
		return err
	}
	if len(phases) == 0 {
		phases = intsFlag{0, 1, 2, 3, 4}
		if feedback {
			phases = intsFlag{5, 6, 7, 8, 9}
		}
	}

	opts := []network.Option{
		network.WithConcurrency(concurrent),
		network.WithMachineOptions(a.opts...),
	}
	if a.logfn != nil {
		opts = append(opts, network.WithLogf(a.logfn))
	}
	signal, order, err := network.MaxSignal(ctx, prog, phases, feedback, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%v (phases %v)\n", signal, intcode.Program(order))
	return nil
}

func (a *app) paintCommand(ctx context.Context, flags *flag.FlagSet, args []string) error {
	var start int
	var render bool
	flags.IntVar(&start, "start", 0, "colour of the starting panel: 0 black, 1 white")
	flags.BoolVar(&render, "render", false, "draw the painted hull")
	prog, err := a.loadProgram(flags, args)
	if err != nil {
		return err
	}
	if c := robot.Color(start); c != robot.Black && c != robot.White {
		return fmt.Errorf("%w: invalid start colour %v", errUsage, start)
	}

	opts := []robot.Option{robot.WithMachineOptions(a.opts...)}
	if a.logfn != nil {
		opts = append(opts, robot.WithLogf(a.logfn))
	}
	hull, err := robot.Paint(ctx, prog, robot.Color(start), opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "painted %v\n", hull.Painted())
	if render {
		io.WriteString(a.out, hull.Render())
	}
	return nil
}

func (a *app) dumpCommand(ctx context.Context, flags *flag.FlagSet, args []string) error {
	prog, err := a.loadProgram(flags, args)
	if err != nil {
		return err
	}
	return intcode.Dump(a.out, prog)
}
