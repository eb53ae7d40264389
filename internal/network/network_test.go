package network

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/logio"
)

const (
	linearExample1 = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	linearExample2 = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	linearExample3 = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0"

	feedbackExample1 = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	feedbackExample2 = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

func Test_Network(t *testing.T) {
	networkTestCases{
		networkTest("linear example 1").withProg(linearExample1).
			withPhases(4, 3, 2, 1, 0).expectSignal(43210),
		networkTest("linear example 2").withProg(linearExample2).
			withPhases(0, 1, 2, 3, 4).expectSignal(54321),
		networkTest("linear example 3").withProg(linearExample3).
			withPhases(1, 0, 4, 3, 2).expectSignal(65210),

		networkTest("feedback example 1").withProg(feedbackExample1).feedback().
			withPhases(9, 8, 7, 6, 5).expectSignal(139629729),
		networkTest("feedback example 2").withProg(feedbackExample2).feedback().
			withPhases(9, 7, 8, 5, 6).expectSignal(18216),

		networkTest("linear pass of a looping program").withProg(feedbackExample1).
			withPhases(9, 8, 7, 6, 5).expectSignal(129),

		networkTest("single stage echo").withProg("3,0,3,0,4,0,99").
			withPhases(7).withSignal(11).expectSignal(11),
		networkTest("uninitialized stage reads signal first").withProg("3,0,4,0,99").
			withStages(2).withSignal(5).expectSignal(5),

		networkTest("linear stage starves").withProg("3,0,3,0,3,0,4,0,99").
			withPhases(1, 2).expectError(ErrDeadlock),
		networkTest("feedback stages starve").withProg("3,0,3,0,3,0,99").feedback().
			withPhases(1, 2).expectError(ErrDeadlock),

		networkTest("linear stage halts silently").withProg("3,0,3,0,99").
			withPhases(1, 2).expectError(ErrNoSignal).expectStage(0),
		networkTest("feedback terminal halts silently").withProg("3,0,3,0,99").feedback().
			withPhases(1).expectError(ErrNoSignal).expectStage(0),

		networkTest("illegal opcode").withProg("3,0,3,0,77").feedback().
			withPhases(1, 2, 3).expectError(intcode.ErrIllegalOpcode),
		networkTest("runaway stage").withProg("3,0,3,0,1105,1,4").
			withOptions(WithMachineOptions(intcode.WithStepLimit(100))).
			withPhases(1, 2).expectError(intcode.ErrStepLimit).expectStage(0),
	}.run(t)
}

func Test_Network_schedulers_agree(t *testing.T) {
	prog := intcode.MustParse(feedbackExample2)
	ctx := testContext(t)

	var signals []int
	for _, concurrent := range []bool{false, true} {
		n, err := BuildChain(prog, 5, true, WithConcurrency(concurrent))
		require.NoError(t, err)
		for i, phase := range []int{9, 7, 8, 5, 6} {
			require.NoError(t, n.InitializeStage(i, phase))
		}
		signal, err := n.Drive(ctx, 0)
		require.NoError(t, err, "concurrent:%v", concurrent)
		signals = append(signals, signal)

		for i := 0; i < n.Len(); i++ {
			assert.Equal(t, intcode.Halted, n.Machine(i).Status(), "stage %v status", i)
		}
	}
	assert.Equal(t, []int{18216, 18216}, signals)
}

func Test_Network_stats(t *testing.T) {
	ctx := testContext(t)

	t.Run("linear", func(t *testing.T) {
		n, err := BuildChain(intcode.MustParse(linearExample1), 5, false)
		require.NoError(t, err)
		for i, phase := range []int{4, 3, 2, 1, 0} {
			require.NoError(t, n.InitializeStage(i, phase))
		}
		_, err = n.Drive(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, Stats{Forwarded: 4}, n.Stats())
	})

	t.Run("round robin", func(t *testing.T) {
		n, err := BuildChain(intcode.MustParse(feedbackExample1), 5, true)
		require.NoError(t, err)
		for i, phase := range []int{9, 8, 7, 6, 5} {
			require.NoError(t, n.InitializeStage(i, phase))
		}
		_, err = n.Drive(ctx, 0)
		require.NoError(t, err)
		stats := n.Stats()
		assert.Greater(t, stats.Rounds, int64(1), "expected many rounds")
		assert.Greater(t, stats.Forwarded, stats.Rounds, "expected several values forwarded per round")
	})
}

func Test_Network_drive_once(t *testing.T) {
	ctx := testContext(t)
	n, err := BuildChain(intcode.MustParse(linearExample1), 5, false)
	require.NoError(t, err)

	drive := func() (int, error) {
		for i, phase := range []int{4, 3, 2, 1, 0} {
			if err := n.InitializeStage(i, phase); err != nil {
				return 0, err
			}
		}
		return n.Drive(ctx, 0)
	}

	signal, err := drive()
	require.NoError(t, err)
	assert.Equal(t, 43210, signal)

	_, err = n.Drive(ctx, 0)
	assert.ErrorIs(t, err, ErrDriven)

	n.Reset()
	signal, err = drive()
	require.NoError(t, err)
	assert.Equal(t, 43210, signal, "expected same signal after reset")
}

func Test_Network_InitializeStage(t *testing.T) {
	n, err := BuildChain(intcode.MustParse(linearExample1), 2, false)
	require.NoError(t, err)
	assert.Error(t, n.InitializeStage(-1, 0))
	assert.Error(t, n.InitializeStage(2, 0))
	assert.NoError(t, n.InitializeStage(1, 0))
	assert.Error(t, n.InitializeStage(1, 3), "expected double initialization to fail")
	assert.Equal(t, 1, n.Machine(1).Pending())

	_, err = BuildChain(intcode.MustParse(linearExample1), 0, false)
	assert.Error(t, err, "expected zero stages to fail")
}

func Test_Network_canceled(t *testing.T) {
	for _, concurrent := range []bool{false, true} {
		t.Run(fmt.Sprintf("concurrent:%v", concurrent), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			n, err := BuildChain(intcode.MustParse(feedbackExample1), 5, true, WithConcurrency(concurrent))
			require.NoError(t, err)
			_, err = n.Drive(ctx, 0)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func Test_Network_logging(t *testing.T) {
	lw := &logio.Writer{Logf: t.Logf, Prefix: "net: "}
	defer lw.Close()
	var lines int
	n, err := BuildChain(intcode.MustParse(linearExample1), 2, false, WithLogf(func(mess string, args ...interface{}) {
		lines++
		fmt.Fprintf(lw, mess+"\n", args...)
	}))
	require.NoError(t, err)
	require.NoError(t, n.InitializeStage(0, 1))
	require.NoError(t, n.InitializeStage(1, 2))
	signal, err := n.Drive(testContext(t), 0)
	require.NoError(t, err)
	assert.Equal(t, 12, signal)
	assert.Greater(t, lines, 2, "expected drive, routing, and result to be logged")
	assert.Contains(t, n.String(), "[0 ")
}

type networkTestCases []networkTestCase

func (ntcs networkTestCases) run(t *testing.T) {
	for _, ntc := range ntcs {
		if !t.Run(ntc.name, ntc.run) {
			return
		}
	}
}

type networkTestCase struct {
	name       string
	prog       string
	stages     int
	phases     []int
	signal     int
	isFeedback bool
	opts       []Option

	wantSignal int
	wantErr    error
	wantStage  *int
}

func networkTest(name string) networkTestCase {
	return networkTestCase{name: name}
}

func (nt networkTestCase) withProg(prog string) networkTestCase {
	nt.prog = prog
	return nt
}

func (nt networkTestCase) withStages(n int) networkTestCase {
	nt.stages = n
	return nt
}

func (nt networkTestCase) withPhases(phases ...int) networkTestCase {
	nt.phases = phases
	if nt.stages < len(phases) {
		nt.stages = len(phases)
	}
	return nt
}

func (nt networkTestCase) withSignal(signal int) networkTestCase {
	nt.signal = signal
	return nt
}

func (nt networkTestCase) withOptions(opts ...Option) networkTestCase {
	nt.opts = append(nt.opts, opts...)
	return nt
}

func (nt networkTestCase) feedback() networkTestCase {
	nt.isFeedback = true
	return nt
}

func (nt networkTestCase) expectSignal(signal int) networkTestCase {
	nt.wantSignal = signal
	return nt
}

func (nt networkTestCase) expectError(err error) networkTestCase {
	nt.wantErr = err
	return nt
}

func (nt networkTestCase) expectStage(i int) networkTestCase {
	nt.wantStage = &i
	return nt
}

// run drives the network under both schedulers.
func (nt networkTestCase) run(t *testing.T) {
	for _, concurrent := range []bool{false, true} {
		t.Run(fmt.Sprintf("concurrent:%v", concurrent), func(t *testing.T) {
			nt.runWith(t, concurrent)
		})
	}
}

func (nt networkTestCase) runWith(t *testing.T, concurrent bool) {
	prog, err := intcode.Parse(nt.prog)
	require.NoError(t, err, "invalid test program")

	opts := append([]Option{WithConcurrency(concurrent)}, nt.opts...)
	n, err := BuildChain(prog, nt.stages, nt.isFeedback, opts...)
	require.NoError(t, err)
	for i, phase := range nt.phases {
		require.NoError(t, n.InitializeStage(i, phase))
	}
	defer dumpOnFailure(t, n)

	signal, err := n.Drive(testContext(t), nt.signal)
	if nt.wantErr != nil {
		require.ErrorIs(t, err, nt.wantErr)
		if nt.wantStage != nil {
			var se StageError
			require.True(t, errors.As(err, &se), "expected a StageError, got %T", err)
			assert.Equal(t, *nt.wantStage, se.Stage, "expected stage")
		}
		return
	}
	require.NoError(t, err)
	assert.Equal(t, nt.wantSignal, signal, "expected signal")
}

func dumpOnFailure(t *testing.T, n *Network) {
	if t.Failed() {
		lw := &logio.Writer{Logf: t.Logf}
		defer lw.Close()
		for i := 0; i < n.Len(); i++ {
			fmt.Fprintf(lw, "stage %v:\n", i)
			n.Machine(i).Dump(lw)
		}
	}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
