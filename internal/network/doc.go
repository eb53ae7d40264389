// Package network wires independent Intcode machines into a pipeline, where
// every output of one stage becomes an input of the next.
//
// A linear chain is driven in a single pass: each stage gets its phase and
// the incoming signal, and its first output is forwarded. A feedback chain
// also routes the last stage's outputs back to the first stage, and is driven
// until the last (terminal) stage halts; the network result is the last value
// that stage emitted. Feedback chains are driven round-robin by default, or by
// one goroutine per stage connected through FIFO links under WithConcurrency.
package network
