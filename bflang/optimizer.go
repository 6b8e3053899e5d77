package bflang

// Optimize rewrites an instruction sequence into an equivalent, usually
// shorter one by fusing runs of same-direction instructions and
// cancelling adjacent opposing pairs of equal count. Out, In, Open and
// Close never take part, so nothing merges across them.
//
// The scan keeps an output buffer and, after appending each incoming
// instruction, reapplies the pair rules to the top two output entries
// until none fires. A cancellation can expose a new fusible pair and a
// fusion can expose a new cancellable one; the inner loop chases both,
// so a single pass reaches the fixed point and re-optimizing is a
// no-op. Counts are plain sums, never reduced mod 256 here; wraparound
// belongs to execution.
func Optimize(instrs []Instr) []Instr {
	out := make([]Instr, 0, len(instrs))
	for _, instr := range instrs {
		out = append(out, instr)
		for len(out) >= 2 {
			a, b := out[len(out)-2], out[len(out)-1]
			if fused, ok := compactPair(a, b); ok {
				out = out[:len(out)-2]
				if fused != 0 {
					out = append(out, fused)
				}
				continue
			}
			break
		}
	}
	return out
}

// compactPair applies the peephole rules to one adjacent pair. A zero
// result with ok set means the pair cancelled outright.
func compactPair(a, b Instr) (Instr, bool) {
	x, y := a.Arg(), b.Arg()
	switch {

	case a.Op() == b.Op():
		switch a.Op() {
		case OpAdd, OpSub, OpRight, OpLeft:
			return a.Op().With(x + y), true
		}

	case x == y:
		switch {
		case a.Op() == OpAdd && b.Op() == OpSub,
			a.Op() == OpSub && b.Op() == OpAdd,
			a.Op() == OpRight && b.Op() == OpLeft,
			a.Op() == OpLeft && b.Op() == OpRight:
			return 0, true
		}

	}
	return 0, false
}
