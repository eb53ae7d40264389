package intcode

import (
	"context"
	"fmt"
)

// Device is the peer of an interactively driven machine: it supplies input
// whenever the machine starves and receives every output value.
type Device interface {
	Input() (int, error)
	Output(value int) error
}

// Interact drives m until it halts, feeding it from dev on input starvation
// and handing every output to dev. It returns the first machine fault, device
// error, or context error encountered.
func Interact(ctx context.Context, m *Machine, dev Device) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := m.Run()
		if err != nil {
			return err
		}
		switch res.Yield {
		case YieldOutput:
			if err := dev.Output(res.Value); err != nil {
				return err
			}
		case YieldInput:
			value, err := dev.Input()
			if err != nil {
				return err
			}
			m.SupplyInput(value)
		case YieldHalt:
			return nil
		}
	}
}

// RunToHalt runs m until it halts, collecting all of its outputs. If the
// machine starves for input, the outputs so far are returned along with an
// error wrapping ErrInputStarved.
func RunToHalt(m *Machine) (outputs []int, err error) {
	for {
		res, err := m.Run()
		if err != nil {
			return outputs, err
		}
		switch res.Yield {
		case YieldOutput:
			outputs = append(outputs, res.Value)
		case YieldInput:
			return outputs, fmt.Errorf("%w @%v", ErrInputStarved, m.IP())
		case YieldHalt:
			return outputs, nil
		}
	}
}
