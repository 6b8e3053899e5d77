package bflang

import (
	"bytes"
	"io"
)

// TapeSize is the default number of cells a machine addresses.
const TapeSize = 30000

type Options struct {
	// TapeSize overrides the default cell count for embedding. Zero
	// means TapeSize.
	TapeSize int
}

// Machine executes one optimized program. It owns its code, tape and
// pointers exclusively; distinct machines never share state and may run
// on separate goroutines without coordination.
type Machine struct {
	code  []Instr
	ip    int
	tape  []byte
	dp    int
	stack []int
}

// NewMachine parses and optimizes source and pairs it with a zero tape.
// It always succeeds; bracket problems only surface while running.
func NewMachine(source string) *Machine {
	return NewMachineOptions(source, nil)
}

func NewMachineOptions(source string, options *Options) *Machine {
	size := TapeSize
	if options != nil && options.TapeSize > 0 {
		size = options.TapeSize
	}
	return &Machine{
		code: Optimize(Parse([]byte(source))),
		tape: make([]byte, size),
	}
}

// Pointer returns the current data pointer.
func (m *Machine) Pointer() int {
	return m.dp
}

// Tape returns the cells in [i, j). The slice aliases machine state.
func (m *Machine) Tape(i, j int) []byte {
	return m.tape[i:j]
}

// Program returns the optimized instruction sequence.
func (m *Machine) Program() []Instr {
	return m.code
}

// RunPure runs with no input and discarded output.
func (m *Machine) RunPure() error {
	return m.Run(bytes.NewReader(nil), io.Discard)
}

// Run executes the program to completion. input yields one byte per In
// and output accepts one byte per Out; both calls block per the
// collaborator's own semantics. The first failure aborts the run:
// ReadError, WriteError, or ErrUnbalancedParens.
func (m *Machine) Run(input io.Reader, output io.Writer) error {
	var buf [1]byte
	last := len(m.tape) - 1

	for m.ip < len(m.code) {
		instr := m.code[m.ip]
		switch n := instr.Arg(); instr.Op() {

		case OpRight:
			m.dp += n
			if m.dp > last {
				m.dp = last
			}

		case OpLeft:
			if n > m.dp {
				m.dp = 0
			} else {
				m.dp -= n
			}

		case OpAdd:
			m.tape[m.dp] += byte(n)

		case OpSub:
			m.tape[m.dp] -= byte(n)

		case OpOut:
			buf[0] = m.tape[m.dp]
			if _, err := output.Write(buf[:]); err != nil {
				return WriteError{Err: err}
			}

		case OpIn:
			switch _, err := io.ReadFull(input, buf[:]); err {
			case nil:
				m.tape[m.dp] = buf[0]
			case io.EOF:
				m.tape[m.dp] = 0
			default:
				return ReadError{Err: err}
			}

		case OpOpen:
			if m.tape[m.dp] == 0 {
				m.skipLoop()
			} else {
				m.stack = append(m.stack, m.ip)
			}

		case OpClose:
			if m.tape[m.dp] != 0 {
				if len(m.stack) == 0 {
					return ErrUnbalancedParens
				}
				m.ip = m.stack[len(m.stack)-1]
			} else if len(m.stack) > 0 {
				m.stack = m.stack[:len(m.stack)-1]
			}

		}
		m.ip++
	}

	return nil
}

// skipLoop advances ip to the Close matching the Open at ip, tracking
// nesting depth. An unmatched Open runs the scan off the end of the
// program, which ends the run without error.
func (m *Machine) skipLoop() {
	depth := 0
	for {
		m.ip++
		if m.ip >= len(m.code) {
			return
		}
		switch m.code[m.ip].Op() {
		case OpClose:
			if depth == 0 {
				return
			}
			depth--
		case OpOpen:
			depth++
		}
	}
}
