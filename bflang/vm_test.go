package bflang

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---" +
	".+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.\n"

const helloWorldComplex = ">++++++++[-<+++++++++>]<.>>+>-[+]++>++>+++[>[->+++<<+++>]<<]" +
	">-----.>->+++..+++.>-.<<+[>[+>+]>>]<--------------.>>.+++.---" +
	"---.--------.>+.>+."

func TestInitialized(t *testing.T) {
	m := NewMachine("")

	if m.Pointer() != 0 {
		t.Fatalf("got %d", m.Pointer())
	}
	if !bytes.Equal(m.Tape(0, 4), []byte{0, 0, 0, 0}) {
		t.Fatalf("got %v", m.Tape(0, 4))
	}
	if len(m.Tape(0, TapeSize)) != TapeSize {
		t.Fatal("short tape")
	}
}

func TestInstructionRight(t *testing.T) {
	m := NewMachine(">")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if m.Pointer() != 1 {
		t.Fatalf("got %d", m.Pointer())
	}
}

func TestInstructionLeft(t *testing.T) {
	m := NewMachine("<")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if m.Pointer() != 0 {
		t.Fatalf("got %d", m.Pointer())
	}
}

func TestInstructionLeft2(t *testing.T) {
	// fuses to Right(2) Left(1): unequal counts never cancel
	m := NewMachine(">><")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if m.Pointer() != 1 {
		t.Fatalf("got %d", m.Pointer())
	}
}

func TestLeftSaturates(t *testing.T) {
	m := NewMachine(">.<<<<<")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if m.Pointer() != 0 {
		t.Fatalf("got %d", m.Pointer())
	}
}

func TestRightClampsToLastCell(t *testing.T) {
	m := NewMachineOptions(">>>>>>>>.+", &Options{TapeSize: 4})
	var output bytes.Buffer
	if err := m.Run(bytes.NewReader(nil), &output); err != nil {
		t.Fatal(err)
	}
	// dp stays on the last valid cell, never one past it
	if m.Pointer() != 3 {
		t.Fatalf("got %d", m.Pointer())
	}
	if !bytes.Equal(m.Tape(0, 4), []byte{0, 0, 0, 1}) {
		t.Fatalf("got %v", m.Tape(0, 4))
	}
}

func TestInstructionPlus(t *testing.T) {
	m := NewMachine("+")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 1), []byte{1}) {
		t.Fatalf("got %v", m.Tape(0, 1))
	}
}

func TestInstructionPlus2(t *testing.T) {
	m := NewMachine("++>++>++")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 3), []byte{2, 2, 2}) {
		t.Fatalf("got %v", m.Tape(0, 3))
	}
}

func TestInstructionMinus(t *testing.T) {
	m := NewMachine("-")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 1), []byte{255}) {
		t.Fatalf("got %v", m.Tape(0, 1))
	}
}

func TestInstructionMinus2(t *testing.T) {
	m := NewMachine("-->-->--")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 3), []byte{254, 254, 254}) {
		t.Fatalf("got %v", m.Tape(0, 3))
	}
}

func TestCellWrapAround(t *testing.T) {
	// 256 increments return a zero cell to zero
	m := NewMachine(string(bytes.Repeat([]byte{'+'}, 256)))
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 1), []byte{0}) {
		t.Fatalf("got %v", m.Tape(0, 1))
	}

	// 300 fuses to a single Add(300); wraparound happens at execution
	m = NewMachine(string(bytes.Repeat([]byte{'+'}, 300)))
	if !slices.Equal(m.Program(), []Instr{OpAdd.With(300)}) {
		t.Fatalf("got %v", m.Program())
	}
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 1), []byte{300 - 256}) {
		t.Fatalf("got %v", m.Tape(0, 1))
	}
}

func TestInstructionDot(t *testing.T) {
	var output bytes.Buffer
	m := NewMachine(".")
	if err := m.Run(bytes.NewReader(nil), &output); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(output.Bytes(), []byte{0}) {
		t.Fatalf("got %v", output.Bytes())
	}
}

func TestInstructionDot2(t *testing.T) {
	var output bytes.Buffer
	m := NewMachine("+>++>+++.<.<.")
	if err := m.Run(bytes.NewReader(nil), &output); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(output.Bytes(), []byte{3, 2, 1}) {
		t.Fatalf("got %v", output.Bytes())
	}
}

func TestEmitsThree(t *testing.T) {
	var output bytes.Buffer
	m := NewMachine("+++.")
	if err := m.Run(bytes.NewReader(nil), &output); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(output.Bytes(), []byte{3}) {
		t.Fatalf("got %v", output.Bytes())
	}
}

func TestInstructionComma(t *testing.T) {
	m := NewMachine(",>,>,")
	if err := m.Run(bytes.NewReader([]byte{5, 4, 3}), io.Discard); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 3), []byte{5, 4, 3}) {
		t.Fatalf("got %v", m.Tape(0, 3))
	}
}

func TestInstructionComma2(t *testing.T) {
	var output bytes.Buffer
	m := NewMachine(",.>,.>,.")
	if err := m.Run(bytes.NewReader([]byte{5, 4, 3}), &output); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(output.Bytes(), []byte{5, 4, 3}) {
		t.Fatalf("got %v", output.Bytes())
	}
}

func TestInputEOFZeroesCell(t *testing.T) {
	m := NewMachine("+++,")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 1), []byte{0}) {
		t.Fatalf("got %v", m.Tape(0, 1))
	}
}

func TestHelloWorld(t *testing.T) {
	var output bytes.Buffer
	m := NewMachine(helloWorld)
	if err := m.Run(bytes.NewReader(nil), &output); err != nil {
		t.Fatal(err)
	}
	if output.String() != "Hello World!\n" {
		t.Fatalf("got %q", output.String())
	}
}

func TestHelloWorldComplex(t *testing.T) {
	var output bytes.Buffer
	m := NewMachine(helloWorldComplex)
	if err := m.Run(bytes.NewReader(nil), &output); err != nil {
		t.Fatal(err)
	}
	if output.String() != "Hello World!\n" {
		t.Fatalf("got %q", output.String())
	}
}

func TestUnbalancedClose(t *testing.T) {
	m := NewMachine("+]")
	err := m.RunPure()
	if !errors.Is(err, ErrUnbalancedParens) {
		t.Fatalf("got %v", err)
	}
}

func TestCloseOnZeroCellIsIgnored(t *testing.T) {
	// a stray ] over a zero cell pops nothing and carries on
	m := NewMachine("]+")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 1), []byte{1}) {
		t.Fatalf("got %v", m.Tape(0, 1))
	}
}

func TestUnmatchedOpenEndsSilently(t *testing.T) {
	// skipping an unmatched [ runs off the end without error
	m := NewMachine("[+++")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 1), []byte{0}) {
		t.Fatalf("got %v", m.Tape(0, 1))
	}

	m = NewMachine("[[[")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
}

func TestNestedLoops(t *testing.T) {
	// 3 * 4 via nested loops
	m := NewMachine("+++[>++++[>+<-]<-]")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 3), []byte{0, 0, 12}) {
		t.Fatalf("got %v", m.Tape(0, 3))
	}
}

func TestSkipNestedLoop(t *testing.T) {
	// the whole outer loop is skipped on a zero cell, nesting included
	m := NewMachine("[>+[>+<-]<-]+++")
	if err := m.RunPure(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Tape(0, 2), []byte{3, 0}) {
		t.Fatalf("got %v", m.Tape(0, 2))
	}
}

func TestWriteError(t *testing.T) {
	m := NewMachine("+.")
	err := m.Run(bytes.NewReader(nil), failWriter{})
	var writeErr WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, errBroken) {
		t.Fatalf("got %v", err)
	}
}

func TestReadError(t *testing.T) {
	m := NewMachine(",")
	err := m.Run(failReader{}, io.Discard)
	var readErr ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("got %v", err)
	}
}

func TestOptimizedMatchesRaw(t *testing.T) {
	sources := []string{
		"+++---+++.",
		">>><<<>.",
		"++[->+<]>.",
		",++.>,--.",
		helloWorld,
		helloWorldComplex,
	}
	input := []byte{9, 8, 7, 6, 5}

	for _, source := range sources {
		raw := &Machine{
			code: Parse([]byte(source)),
			tape: make([]byte, TapeSize),
		}
		optimized := NewMachine(source)

		var rawOut, optOut bytes.Buffer
		if err := raw.Run(bytes.NewReader(input), &rawOut); err != nil {
			t.Fatal(err)
		}
		if err := optimized.Run(bytes.NewReader(input), &optOut); err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(rawOut.Bytes(), optOut.Bytes()) {
			t.Fatalf("%q: output %v vs %v", source, rawOut.Bytes(), optOut.Bytes())
		}
		if !bytes.Equal(raw.Tape(0, TapeSize), optimized.Tape(0, TapeSize)) {
			t.Fatalf("%q: tapes differ", source)
		}
	}
}

var errBroken = errors.New("broken")

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errBroken
}

type failReader struct{}

func (failReader) Read(p []byte) (int, error) {
	return 0, errBroken
}
