package network

import "github.com/jcorbin/intcode/internal/intcode"

// Option configures a Network when passed to BuildChain.
type Option interface{ apply(n *Network) }

// WithMachineOptions configures every stage machine.
func WithMachineOptions(opts ...intcode.Option) Option { return machineOptions(opts) }

// WithConcurrency runs each stage in its own goroutine, connected to its
// neighbours by FIFO links, instead of driving stages from one goroutine.
func WithConcurrency(concurrent bool) Option { return concurrencyOption(concurrent) }

// WithLogf installs a logging function for routing and scheduling events.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type machineOptions []intcode.Option
type concurrencyOption bool
type withLogfn func(mess string, args ...interface{})

func (opts machineOptions) apply(n *Network) {
	n.machineOpts = append(n.machineOpts, opts...)
}

func (c concurrencyOption) apply(n *Network) { n.concurrent = bool(c) }
func (logfn withLogfn) apply(n *Network)     { n.logfn = logfn }
