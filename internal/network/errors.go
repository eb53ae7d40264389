package network

import (
	"errors"
	"fmt"
)

var (
	// ErrDeadlock is wrapped by DeadlockError.
	ErrDeadlock = errors.New("deadlock")

	// ErrNoSignal is returned when the terminal stage halts without ever
	// producing an output.
	ErrNoSignal = errors.New("no signal")

	// ErrDriven is returned by Drive on a network that must be Reset first.
	ErrDriven = errors.New("network already driven")
)

// DeadlockError reports a stage awaiting input that no stage can ever supply.
type DeadlockError struct{ Stage int }

func (de DeadlockError) Error() string {
	return fmt.Sprintf("deadlock: stage %v awaits input that no stage can supply", de.Stage)
}

func (DeadlockError) Unwrap() error { return ErrDeadlock }

// StageError annotates a fatal machine error with the stage that raised it.
type StageError struct {
	Stage int
	Err   error
}

func (se StageError) Error() string { return fmt.Sprintf("stage %v: %v", se.Stage, se.Err) }
func (se StageError) Unwrap() error { return se.Err }
