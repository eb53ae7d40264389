package intcode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

type fmtBuf interface {
	WriteByte(c byte) error
	WriteString(s string) (n int, err error)
}

// Dump writes a disassembly of memory to w, one line per decoded instruction.
// Operands are written as "@n" for position mode, a bare "n" for immediate
// mode and "@rb+n" for relative mode. Words that do not decode, or whose
// instruction would run past the end of memory, are written as data.
func Dump(w io.Writer, memory []int) error {
	return dumper{out: w, mem: memory}.dump()
}

// Dump writes the machine registers followed by a disassembly of its memory.
func (m *Machine) Dump(w io.Writer) error {
	fmt.Fprintf(w, "# Machine Dump\n")
	fmt.Fprintf(w, "  ip: %v\n", m.ip)
	fmt.Fprintf(w, "  rb: %v\n", m.base)
	fmt.Fprintf(w, "  status: %v\n", m.status)
	if m.fault != nil {
		fmt.Fprintf(w, "  fault: %v\n", m.fault)
	}
	if n := m.input.Len(); n > 0 {
		pending := make([]int, n)
		for i := range pending {
			pending[i] = m.input.At(i)
		}
		fmt.Fprintf(w, "  pending: %v\n", pending)
	}
	fmt.Fprintf(w, "# Memory\n")
	return dumper{out: w, mem: m.mem.Snapshot(), mark: m.ip, marked: true}.dump()
}

type dumper struct {
	out io.Writer
	mem []int

	addrWidth int
	mark      int
	marked    bool
}

func (dump dumper) dump() error {
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(dump.mem)))
	}
	var buf bytes.Buffer
	for addr := 0; addr < len(dump.mem); {
		if dump.marked && addr == dump.mark {
			buf.WriteString("> ")
		} else {
			buf.WriteString("  ")
		}
		fmt.Fprintf(&buf, "@%-*v ", dump.addrWidth, addr)
		addr = dump.formatInstruction(&buf, addr)
		buf.WriteByte('\n')
		if _, err := buf.WriteTo(dump.out); err != nil {
			return err
		}
	}
	return nil
}

func (dump dumper) formatInstruction(buf fmtBuf, addr int) int {
	word := dump.mem[addr]
	in, err := Decode(word)
	if width := in.Width(); err == nil && addr+width <= len(dump.mem) {
		formatInstruction(buf, in, dump.mem[addr+1:addr+width])
		return addr + width
	}
	buf.WriteString("data ")
	buf.WriteString(strconv.Itoa(word))
	return addr + 1
}

// disasm formats the instruction at ip for trace logging.
func (m *Machine) disasm(in Instruction) string {
	var buf bytes.Buffer
	args := make([]int, in.Op.Params())
	m.mem.LoadInto(m.ip+1, args)
	formatInstruction(&buf, in, args)
	return buf.String()
}

func formatInstruction(buf fmtBuf, in Instruction, args []int) {
	buf.WriteString(in.Op.String())
	for i, arg := range args {
		buf.WriteByte(' ')
		switch in.Modes[i] {
		case Position:
			buf.WriteByte('@')
			buf.WriteString(strconv.Itoa(arg))
		case Immediate:
			buf.WriteString(strconv.Itoa(arg))
		case Relative:
			buf.WriteString("@rb")
			if arg >= 0 {
				buf.WriteByte('+')
			}
			buf.WriteString(strconv.Itoa(arg))
		}
	}
}
