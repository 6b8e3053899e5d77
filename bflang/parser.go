package bflang

// Parse maps source bytes to instructions. The eight command bytes each
// yield one unit-count instruction; every other byte is a comment and
// yields nothing. Parsing cannot fail.
func Parse(source []byte) []Instr {
	instrs := make([]Instr, 0, len(source))
	for _, b := range source {
		switch b {
		case '+':
			instrs = append(instrs, OpAdd.With(1))
		case '-':
			instrs = append(instrs, OpSub.With(1))
		case '>':
			instrs = append(instrs, OpRight.With(1))
		case '<':
			instrs = append(instrs, OpLeft.With(1))
		case '.':
			instrs = append(instrs, Instr(OpOut))
		case ',':
			instrs = append(instrs, Instr(OpIn))
		case '[':
			instrs = append(instrs, Instr(OpOpen))
		case ']':
			instrs = append(instrs, Instr(OpClose))
		}
	}
	return instrs
}
