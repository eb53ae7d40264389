package network

import (
	"context"

	"github.com/jcorbin/intcode/internal/intcode"
)

// driveRoundRobin resumes every stage once per round, in stage order, until
// the terminal stage halts. Each resumption runs a machine up to its next
// suspension, so a stage contributes at most one value per round.
func (n *Network) driveRoundRobin(ctx context.Context) error {
	term := len(n.stages) - 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		round := n.rounds.Inc()

		progress := false
		for i := range n.stages {
			m := n.stages[i].m
			switch m.Status() {
			case intcode.Halted:
				continue
			case intcode.AwaitingInput:
				if m.Pending() == 0 {
					continue
				}
			}

			res, err := m.Run()
			if err != nil {
				return StageError{i, err}
			}
			if res.Steps > 0 {
				progress = true
			}
			switch res.Yield {
			case intcode.YieldOutput:
				n.emit(i, res.Value, true)
			case intcode.YieldHalt:
				n.logf("stage %v halted in round %v", i, round)
				if i == term {
					return nil
				}
			}
		}

		if !progress {
			return DeadlockError{n.blockedStage()}
		}
	}
}

// blockedStage returns the first stage waiting on input.
func (n *Network) blockedStage() int {
	for i := range n.stages {
		if n.stages[i].m.Status() == intcode.AwaitingInput {
			return i
		}
	}
	return len(n.stages) - 1
}
