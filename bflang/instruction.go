package bflang

import "fmt"

type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpRight
	OpLeft
	OpOut
	OpIn
	OpOpen
	OpClose
)

// Instr packs an Op in the low 8 bits and its run-length count in the
// upper 56. Out, In, Open and Close carry no count.
type Instr uint64

func (o Op) With(n int) Instr {
	return Instr(o) | (Instr(n) << 8)
}

func (i Instr) Op() Op {
	return Op(i & 0xff)
}

func (i Instr) Arg() int {
	return int(i >> 8)
}

func (i Instr) String() string {
	switch op := i.Op(); op {
	case OpAdd:
		return fmt.Sprintf("Add(%d)", i.Arg())
	case OpSub:
		return fmt.Sprintf("Sub(%d)", i.Arg())
	case OpRight:
		return fmt.Sprintf("Right(%d)", i.Arg())
	case OpLeft:
		return fmt.Sprintf("Left(%d)", i.Arg())
	case OpOut:
		return "Out"
	case OpIn:
		return "In"
	case OpOpen:
		return "Open"
	case OpClose:
		return "Close"
	default:
		return fmt.Sprintf("Instr(%d)", uint64(i))
	}
}
