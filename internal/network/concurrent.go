package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gammazero/deque"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/panicerr"
)

// errStopped tells a stage goroutine to exit cleanly: the terminal stage has
// halted, or another stage failed.
var errStopped = errors.New("network stopped")

// links holds the FIFO inbox of every stage, guarded by a single mutex; a
// stage waits on cond while its inbox is empty.
type links struct {
	mu   sync.Mutex
	cond sync.Cond

	inbox   []deque.Deque[int]
	waiting []bool
	blocked int // stages waiting on an empty inbox
	live    int // stages that have not exited
	stopped bool
}

func newLinks(n int) *links {
	ls := &links{
		inbox:   make([]deque.Deque[int], n),
		waiting: make([]bool, n),
		live:    n,
	}
	ls.cond.L = &ls.mu
	return ls
}

func (ls *links) send(to, value int) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.inbox[to].PushBack(value)
	if ls.waiting[to] {
		ls.waiting[to] = false
		ls.blocked--
	}
	ls.cond.Broadcast()
}

// recv blocks until a value arrives for stage i. It fails with a
// DeadlockError once every live stage is waiting on an empty inbox.
func (ls *links) recv(i int) (int, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	for {
		if ls.stopped {
			ls.unwait(i)
			return 0, errStopped
		}
		if ls.inbox[i].Len() > 0 {
			ls.unwait(i)
			return ls.inbox[i].PopFront(), nil
		}
		if !ls.waiting[i] {
			ls.waiting[i] = true
			ls.blocked++
		}
		if ls.blocked >= ls.live {
			ls.unwait(i)
			return 0, DeadlockError{i}
		}
		ls.cond.Wait()
	}
}

func (ls *links) unwait(i int) {
	if ls.waiting[i] {
		ls.waiting[i] = false
		ls.blocked--
	}
}

// exit removes a stage from the live count, waking waiters so that they
// re-check for deadlock.
func (ls *links) exit() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.live--
	ls.cond.Broadcast()
}

func (ls *links) stop() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.stopped = true
	ls.cond.Broadcast()
}

func (ls *links) isStopped() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.stopped
}

// driveConcurrent runs every stage in its own goroutine. The first failure
// stops the links, releasing every stage blocked on input, and cancels the
// group context.
func (n *Network) driveConcurrent(ctx context.Context) error {
	ls := newLinks(len(n.stages))
	eg, egctx := errgroup.WithContext(ctx)
	defer context.AfterFunc(egctx, ls.stop)()

	for i := range n.stages {
		i := i
		eg.Go(func() error {
			err := panicerr.Guard(fmt.Sprintf("stage %v", i), func() error {
				return n.runStage(egctx, ls, i)
			})
			if err != nil {
				ls.stop()
			}
			ls.exit()
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (n *Network) runStage(ctx context.Context, ls *links, i int) error {
	m := n.stages[i].m
	term := i == len(n.stages)-1
	for {
		if ctx.Err() != nil || ls.isStopped() {
			return nil
		}
		res, err := m.Run()
		if err != nil {
			return StageError{i, err}
		}
		switch res.Yield {
		case intcode.YieldOutput:
			if to := n.emit(i, res.Value, false); to >= 0 {
				ls.send(to, res.Value)
			}
			// a linear chain forwards only each stage's first output
			if !n.feedback {
				if term {
					ls.stop()
				}
				return nil
			}
		case intcode.YieldInput:
			value, err := ls.recv(i)
			if errors.Is(err, errStopped) {
				return nil
			} else if err != nil {
				return err
			}
			m.SupplyInput(value)
		case intcode.YieldHalt:
			n.logf("stage %v halted", i)
			if !n.feedback && !n.stages[i].emitted {
				return StageError{i, ErrNoSignal}
			}
			if term {
				ls.stop()
			}
			return nil
		}
	}
}
