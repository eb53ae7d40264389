package intcode

import "strconv"

// Opcode selects the operation of an instruction.
type Opcode int

// Opcodes implemented by the machine.
const (
	OpAdd        Opcode = 1
	OpMul        Opcode = 2
	OpIn         Opcode = 3
	OpOut        Opcode = 4
	OpJumpTrue   Opcode = 5
	OpJumpFalse  Opcode = 6
	OpLess       Opcode = 7
	OpEqual      Opcode = 8
	OpAdjustBase Opcode = 9
	OpHalt       Opcode = 99
)

type opSpec struct {
	name   string
	params int
	write  int // index of the write target parameter, or -1
}

var opSpecs = [100]opSpec{
	OpAdd:        {"add", 3, 2},
	OpMul:        {"mul", 3, 2},
	OpIn:         {"in", 1, 0},
	OpOut:        {"out", 1, -1},
	OpJumpTrue:   {"jt", 2, -1},
	OpJumpFalse:  {"jf", 2, -1},
	OpLess:       {"lt", 3, 2},
	OpEqual:      {"eq", 3, 2},
	OpAdjustBase: {"arb", 1, -1},
	OpHalt:       {"hlt", 0, -1},
}

func (op Opcode) spec() (opSpec, bool) {
	if op < 0 || int(op) >= len(opSpecs) {
		return opSpec{}, false
	}
	spec := opSpecs[op]
	return spec, spec.name != ""
}

// Valid reports whether op is implemented.
func (op Opcode) Valid() bool {
	_, ok := op.spec()
	return ok
}

// Params returns the number of parameters taken by op.
func (op Opcode) Params() int {
	spec, _ := op.spec()
	return spec.params
}

// Width returns the number of words occupied by an instruction, opcode word
// included.
func (op Opcode) Width() int { return op.Params() + 1 }

// WriteParam returns the index of the parameter that op writes through, or -1.
func (op Opcode) WriteParam() int {
	if spec, ok := op.spec(); ok {
		return spec.write
	}
	return -1
}

func (op Opcode) String() string {
	if spec, ok := op.spec(); ok {
		return spec.name
	}
	return "op" + strconv.Itoa(int(op))
}

// Mode is a parameter addressing mode.
type Mode int

// Parameter modes.
const (
	Position  Mode = 0 // operand is the value at the given address
	Immediate Mode = 1 // operand is the literal value
	Relative  Mode = 2 // operand is the value at relative base + given address
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode" + strconv.Itoa(int(m))
}

// Instruction is the decoded view of an instruction word.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode
}

// Width returns the number of words occupied by the instruction.
func (in Instruction) Width() int { return in.Op.Width() }

// Decode splits an instruction word into its opcode and parameter modes.
// Mode digits are only validated for the parameters the opcode takes.
func Decode(word int) (in Instruction, err error) {
	in.Op = Opcode(word % 100)
	if !in.Op.Valid() {
		return in, OpcodeError{word}
	}
	digits := word / 100
	for i := range in.Modes {
		mode := Mode(digits % 10)
		digits /= 10
		if i >= in.Op.Params() {
			continue
		}
		if mode != Position && mode != Immediate && mode != Relative {
			return in, ModeError{Word: word, Param: i, Mode: int(mode)}
		}
		in.Modes[i] = mode
	}
	return in, nil
}
