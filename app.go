package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/intcode"
)

var errUsage = errors.New("usage error")

// app holds everything commands share: standard streams, the logger, and
// the options every machine is built with.
type app struct {
	in  io.Reader
	out flushio.WriteFlusher
	log *zap.SugaredLogger

	logfn   func(mess string, args ...interface{})
	opts    []intcode.Option
	closers []io.Closer
}

type command struct {
	name string
	help string
	run  func(a *app, ctx context.Context, flags *flag.FlagSet, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"run", "run a program to halt, printing its outputs", (*app).runCommand},
		{"gravity", "search for the noun and verb producing a target", (*app).gravityCommand},
		{"amp", "find the highest amplifier chain signal", (*app).ampCommand},
		{"paint", "run a hull painting robot", (*app).paintCommand},
		{"dump", "disassemble a program", (*app).dumpCommand},
	}
}

func (a *app) run(ctx context.Context, args []string) (err error) {
	defer func() {
		if ferr := a.out.Flush(); err == nil {
			err = ferr
		}
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}()

	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	name, args := args[0], args[1:]
	for _, cmd := range commands {
		if cmd.name == name {
			flags := flag.NewFlagSet(name, flag.ContinueOnError)
			flags.SetOutput(os.Stderr)
			a.log.Debugw("command", "name", name, "args", args)
			return cmd.run(a, ctx, flags, args)
		}
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, name)
}

func (a *app) Close() (err error) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if cerr := a.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	a.closers = nil
	return err
}

// tee copies all further output into the named file.
func (a *app) tee(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, f)
	wf := flushio.NewWriteFlusher(f)
	a.closers = append(a.closers, flusherCloser{wf})
	a.out = flushio.WriteFlushers(a.out, wf)
	return nil
}

type flusherCloser struct{ flushio.WriteFlusher }

func (fc flusherCloser) Close() error { return fc.Flush() }

// loadProgram parses command flags, expecting exactly one program file
// argument, which is then loaded.
func (a *app) loadProgram(flags *flag.FlagSet, args []string) (intcode.Program, error) {
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if flags.NArg() != 1 {
		return nil, fmt.Errorf("%w: %v expects one program file, got %q",
			errUsage, flags.Name(), strings.Join(flags.Args(), " "))
	}
	prog, err := intcode.LoadFile(flags.Arg(0))
	if err != nil {
		return nil, err
	}
	a.log.Debugw("loaded program", "file", flags.Arg(0), "words", len(prog))
	return prog, nil
}

// intsFlag is a flag.Value holding a comma separated list of integers.
type intsFlag []int

func (ints *intsFlag) String() string { return intcode.Program(*ints).String() }

func (ints *intsFlag) Set(s string) error {
	prog, err := intcode.Parse(s)
	if err != nil {
		return err
	}
	*ints = intsFlag(prog)
	return nil
}

// stringsFlag is a repeatable string flag.
type stringsFlag []string

func (ss *stringsFlag) String() string { return strings.Join(*ss, ",") }

func (ss *stringsFlag) Set(s string) error {
	*ss = append(*ss, s)
	return nil
}
