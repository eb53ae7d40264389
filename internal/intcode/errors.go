package intcode

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalOpcode    = errors.New("illegal opcode")
	ErrIllegalMode      = errors.New("illegal parameter mode")
	ErrInvalidWriteMode = errors.New("invalid write mode")
	ErrAddress          = errors.New("invalid address")
	ErrStepLimit        = errors.New("step limit exceeded")

	// ErrInputStarved is returned by helpers that cannot supply the input a
	// suspended machine is waiting for.
	ErrInputStarved = errors.New("input starved")
)

// OpcodeError reports an instruction word whose opcode is not recognized.
type OpcodeError struct{ Word int }

// ModeError reports a parameter mode digit outside of {0, 1, 2}.
type ModeError struct {
	Word  int
	Param int
	Mode  int
}

// WriteModeError reports an instruction whose write target parameter is in
// immediate mode.
type WriteModeError struct {
	Op    Opcode
	Param int
}

// AddressError reports a negative resolved address.
type AddressError struct{ Addr int }

// StepLimitError reports that a single Run exceeded its configured ceiling.
type StepLimitError struct{ Limit int }

func (oe OpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %v in word %v", oe.Word%100, oe.Word)
}

func (me ModeError) Error() string {
	return fmt.Sprintf("illegal mode %v for parameter %v of word %v", me.Mode, me.Param+1, me.Word)
}

func (we WriteModeError) Error() string {
	return fmt.Sprintf("immediate mode write target for parameter %v of %v", we.Param+1, we.Op)
}

func (ae AddressError) Error() string { return fmt.Sprintf("negative address %v", ae.Addr) }

func (sl StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %v exceeded", sl.Limit)
}

func (OpcodeError) Unwrap() error    { return ErrIllegalOpcode }
func (ModeError) Unwrap() error      { return ErrIllegalMode }
func (WriteModeError) Unwrap() error { return ErrInvalidWriteMode }
func (AddressError) Unwrap() error   { return ErrAddress }
func (StepLimitError) Unwrap() error { return ErrStepLimit }

// Fault is a fatal machine error, annotated with the address of the
// instruction that raised it. Once faulted, a machine returns the same fault
// from every further Run or Step.
type Fault struct {
	IP  int
	Err error
}

func (flt Fault) Error() string { return fmt.Sprintf("fault @%v: %v", flt.IP, flt.Err) }
func (flt Fault) Unwrap() error { return flt.Err }
