package network

import (
	"context"
	"fmt"

	"github.com/jcorbin/intcode/internal/intcode"
)

// MaxSignal drives a chain of len(phases) stages once for every ordering of
// phases, starting from a zero signal, and returns the highest signal along
// with the phase ordering that produced it.
func MaxSignal(
	ctx context.Context,
	prog intcode.Program,
	phases []int,
	feedback bool,
	opts ...Option,
) (best int, order []int, err error) {
	if len(phases) == 0 {
		return 0, nil, fmt.Errorf("no phases given")
	}
	n, err := BuildChain(prog, len(phases), feedback, opts...)
	if err != nil {
		return 0, nil, err
	}
	first := true
	err = permute(phases, func(perm []int) error {
		n.Reset()
		for i, phase := range perm {
			if err := n.InitializeStage(i, phase); err != nil {
				return err
			}
		}
		signal, err := n.Drive(ctx, 0)
		if err != nil {
			return fmt.Errorf("phases %v: %w", perm, err)
		}
		if first || signal > best {
			first = false
			best = signal
			order = append(order[:0], perm...)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// permute calls each with every permutation of values, generated in place by
// Heap's algorithm; each must not retain its argument.
func permute(values []int, each func([]int) error) error {
	perm := append([]int(nil), values...)
	if err := each(perm); err != nil {
		return err
	}
	c := make([]int, len(perm))
	for i := 1; i < len(perm); {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			if err := each(perm); err != nil {
				return err
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}
