package intcode

// step executes the instruction at ip. It reports why execution should
// suspend, any output value, and whether an instruction actually ran (an
// input instruction starving for input does not).
func (m *Machine) step() (yield Yield, value int, ran bool) {
	in, err := Decode(m.load(m.ip))
	if err != nil {
		m.fail(err)
	}

	if m.logfn != nil {
		m.logf(">", "@%v %v -- rb:%v", m.ip, m.disasm(in), m.base)
	}

	switch in.Op {
	case OpAdd:
		m.stor(in, 2, m.param(in, 0)+m.param(in, 1))

	case OpMul:
		m.stor(in, 2, m.param(in, 0)*m.param(in, 1))

	case OpIn:
		if m.input.Len() == 0 {
			m.status = AwaitingInput
			m.logf("<", "awaiting input @%v", m.ip)
			return YieldInput, 0, false
		}
		m.status = Running
		m.stor(in, 0, m.input.PopFront())

	case OpOut:
		value = m.param(in, 0)
		m.advance(in)
		m.logf("<", "output %v", value)
		return YieldOutput, value, true

	case OpJumpTrue:
		if m.param(in, 0) != 0 {
			m.jump(m.param(in, 1))
			return YieldNone, 0, true
		}

	case OpJumpFalse:
		if m.param(in, 0) == 0 {
			m.jump(m.param(in, 1))
			return YieldNone, 0, true
		}

	case OpLess:
		m.stor(in, 2, boolInt(m.param(in, 0) < m.param(in, 1)))

	case OpEqual:
		m.stor(in, 2, boolInt(m.param(in, 0) == m.param(in, 1)))

	case OpAdjustBase:
		m.base += m.param(in, 0)

	case OpHalt:
		m.steps++
		m.status = Halted
		m.logf("#", "halt @%v after %v steps", m.ip, m.steps)
		return YieldHalt, 0, true
	}

	m.advance(in)
	return YieldNone, 0, true
}

func (m *Machine) advance(in Instruction) {
	m.steps++
	m.ip += in.Width()
}

func (m *Machine) jump(addr int) {
	m.steps++
	m.ip = addr
}

// param resolves the value of the i-th parameter of the current instruction.
func (m *Machine) param(in Instruction, i int) int {
	raw := m.load(m.ip + 1 + i)
	switch in.Modes[i] {
	case Immediate:
		return raw
	case Relative:
		return m.load(m.base + raw)
	default:
		return m.load(raw)
	}
}

// stor writes val through the i-th parameter of the current instruction,
// which must be in position or relative mode.
func (m *Machine) stor(in Instruction, i int, val int) {
	raw := m.load(m.ip + 1 + i)
	addr := raw
	switch in.Modes[i] {
	case Immediate:
		m.fail(WriteModeError{Op: in.Op, Param: i})
	case Relative:
		addr = m.base + raw
	}
	if err := m.mem.Stor(addr, val); err != nil {
		m.fail(memError(err))
	}
}

func (m *Machine) load(addr int) int {
	val, err := m.mem.Load(addr)
	if err != nil {
		m.fail(memError(err))
	}
	return val
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
