package network

import (
	"context"

	"github.com/jcorbin/intcode/internal/intcode"
)

// drivePass runs each stage of a linear chain once, in order, up to its first
// output; that output is queued as the next stage's signal.
func (n *Network) drivePass(ctx context.Context) error {
	for i := range n.stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := n.stages[i].m
		res, err := m.Run()
		if err != nil {
			return StageError{i, err}
		}
		switch res.Yield {
		case intcode.YieldOutput:
			n.emit(i, res.Value, true)
		case intcode.YieldInput:
			// nothing upstream is left to run
			return DeadlockError{i}
		case intcode.YieldHalt:
			return StageError{i, ErrNoSignal}
		}
	}
	return nil
}
