package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/panicerr"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace bool
	var stepLimit int
	var memLimit uint
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&stepLimit, "step-limit", 0, "limit instructions executed between suspensions")
	flag.UintVar(&memLimit, "mem-limit", 0, "enable memory limit")
	flag.Usage = usage
	flag.Parse()

	log := newLogger(trace)
	defer log.Sync()

	app := app{
		in:  os.Stdin,
		out: flushio.NewWriteFlusher(os.Stdout),
		log: log,
	}
	if trace {
		app.logfn = log.Debugf
		app.opts = append(app.opts, intcode.WithLogf(log.Debugf))
	}
	if stepLimit != 0 {
		app.opts = append(app.opts, intcode.WithStepLimit(stepLimit))
	}
	if memLimit != 0 {
		app.opts = append(app.opts, intcode.WithMemLimit(memLimit))
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := app.run(ctx, flag.Args()); err != nil {
		if panicerr.IsPanic(err) {
			log.Errorf("%+v", err)
		} else {
			log.Errorf("%v", err)
		}
		log.Sync()
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] COMMAND [command flags] FILE\n\nCommands:\n", os.Args[0])
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", cmd.name, cmd.help)
	}
	fmt.Fprintf(out, "\nFlags:\n")
	flag.PrintDefaults()
}
