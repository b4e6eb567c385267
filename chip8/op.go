package chip8

import "fmt"

// Op identifies a CHIP-8 operation, independent of its operands.
type Op byte

const (
	BAD Op = iota // not a valid operation
	NOP
	CLS
	RET
	JP
	CALL
	SEI  // skip if Vx == nn
	SNEI // skip if Vx != nn
	SE   // skip if Vx == Vy
	LDI  // Vx = nn
	ADDI // Vx += nn
	LD   // Vx = Vy
	OR
	AND
	XOR
	ADD
	SUB
	SHR
	SUBN
	SHL
	SNE // skip if Vx != Vy
	LDIX
	JPV0
	RND
	DRW
	SKP
	SKNP
	LDVDT
	LDK
	LDDTV
	LDSTV
	ADDIX
	LDF
	BCDX
	STR // store V0..Vx at I
	LDR // load V0..Vx from I
	numOps
)

var opStrings = [...]string{
	BAD:   "???",
	NOP:   "NOP",
	CLS:   "CLS",
	RET:   "RET",
	JP:    "JP",
	CALL:  "CALL",
	SEI:   "SE",
	SNEI:  "SNE",
	SE:    "SE",
	LDI:   "LD",
	ADDI:  "ADD",
	LD:    "LD",
	OR:    "OR",
	AND:   "AND",
	XOR:   "XOR",
	ADD:   "ADD",
	SUB:   "SUB",
	SHR:   "SHR",
	SUBN:  "SUBN",
	SHL:   "SHL",
	SNE:   "SNE",
	LDIX:  "LD",
	JPV0:  "JP",
	RND:   "RND",
	DRW:   "DRW",
	SKP:   "SKP",
	SKNP:  "SKNP",
	LDVDT: "LD",
	LDK:   "LD",
	LDDTV: "LD",
	LDSTV: "LD",
	ADDIX: "ADD",
	LDF:   "LD",
	BCDX:  "LD",
	STR:   "LD",
	LDR:   "LD",
}

// String returns the assembler mnemonic for o. Several Ops share the LD,
// ADD, SE, SNE and JP mnemonics and differ only in their operands.
func (o Op) String() string {
	if o < numOps {
		return opStrings[o]
	}
	return fmt.Sprintf("Op(%d)", byte(o))
}

// Instr is a decoded instruction. Only the operands used by Op are set.
type Instr struct {
	Op   Op
	X, Y byte   // register indices
	N    byte   // 4-bit count
	NN   byte   // 8-bit immediate
	NNN  uint16 // 12-bit address
}

func (in Instr) String() string {
	switch in.Op {
	case NOP, CLS, RET:
		return in.Op.String()
	case JP, CALL:
		return fmt.Sprintf("%s %.3X", in.Op, in.NNN)
	case JPV0:
		return fmt.Sprintf("JP V0, %.3X", in.NNN)
	case LDIX:
		return fmt.Sprintf("LD I, %.3X", in.NNN)
	case SEI, SNEI, LDI, ADDI, RND:
		return fmt.Sprintf("%s V%X, %.2X", in.Op, in.X, in.NN)
	case SE, SNE, LD, OR, AND, XOR, ADD, SUB, SUBN:
		return fmt.Sprintf("%s V%X, V%X", in.Op, in.X, in.Y)
	case SHR, SHL, SKP, SKNP:
		return fmt.Sprintf("%s V%X", in.Op, in.X)
	case DRW:
		return fmt.Sprintf("DRW V%X, V%X, %X", in.X, in.Y, in.N)
	case LDVDT:
		return fmt.Sprintf("LD V%X, DT", in.X)
	case LDK:
		return fmt.Sprintf("LD V%X, K", in.X)
	case LDDTV:
		return fmt.Sprintf("LD DT, V%X", in.X)
	case LDSTV:
		return fmt.Sprintf("LD ST, V%X", in.X)
	case ADDIX:
		return fmt.Sprintf("ADD I, V%X", in.X)
	case LDF:
		return fmt.Sprintf("LD F, V%X", in.X)
	case BCDX:
		return fmt.Sprintf("LD B, V%X", in.X)
	case STR:
		return fmt.Sprintf("LD [I], V%X", in.X)
	case LDR:
		return fmt.Sprintf("LD V%X, [I]", in.X)
	}
	return in.Op.String()
}

// operands describes which fields of an instruction word an Op uses.
type operands byte

const (
	argNone    operands = iota
	argAddr               // nnn
	argRegImm             // x, nn
	argRegReg             // x, y
	argReg                // x
	argRegRegN            // x, y, n
)

type rule struct {
	mask, value uint16
	op          Op
	args        operands
}

// rules is ordered from the most specific mask to the least, so that a
// fully fixed pattern is always tried before any pattern that leaves the
// same nibbles free.
var rules = []rule{
	{0xffff, 0x0000, NOP, argNone},
	{0xffff, 0x00e0, CLS, argNone},
	{0xffff, 0x00ee, RET, argNone},

	{0xf00f, 0x5000, SE, argRegReg},
	{0xf00f, 0x8000, LD, argRegReg},
	{0xf00f, 0x8001, OR, argRegReg},
	{0xf00f, 0x8002, AND, argRegReg},
	{0xf00f, 0x8003, XOR, argRegReg},
	{0xf00f, 0x8004, ADD, argRegReg},
	{0xf00f, 0x8005, SUB, argRegReg},
	{0xf00f, 0x8006, SHR, argReg},
	{0xf00f, 0x8007, SUBN, argRegReg},
	{0xf00f, 0x800e, SHL, argReg},
	{0xf00f, 0x9000, SNE, argRegReg},

	{0xf0ff, 0xe09e, SKP, argReg},
	{0xf0ff, 0xe0a1, SKNP, argReg},
	{0xf0ff, 0xf007, LDVDT, argReg},
	{0xf0ff, 0xf00a, LDK, argReg},
	{0xf0ff, 0xf015, LDDTV, argReg},
	{0xf0ff, 0xf018, LDSTV, argReg},
	{0xf0ff, 0xf01e, ADDIX, argReg},
	{0xf0ff, 0xf029, LDF, argReg},
	{0xf0ff, 0xf033, BCDX, argReg},
	{0xf0ff, 0xf055, STR, argReg},
	{0xf0ff, 0xf065, LDR, argReg},

	{0xf000, 0x1000, JP, argAddr},
	{0xf000, 0x2000, CALL, argAddr},
	{0xf000, 0x3000, SEI, argRegImm},
	{0xf000, 0x4000, SNEI, argRegImm},
	{0xf000, 0x6000, LDI, argRegImm},
	{0xf000, 0x7000, ADDI, argRegImm},
	{0xf000, 0xa000, LDIX, argAddr},
	{0xf000, 0xb000, JPV0, argAddr},
	{0xf000, 0xc000, RND, argRegImm},
	{0xf000, 0xd000, DRW, argRegRegN},
}

// Decode returns the instruction encoded by w, and reports whether w
// encodes a valid instruction. If it does not, the returned Instr has
// Op BAD.
func Decode(w uint16) (Instr, bool) {
	for _, r := range rules {
		if w&r.mask != r.value {
			continue
		}
		in := Instr{Op: r.op}
		switch r.args {
		case argAddr:
			in.NNN = w & 0x0fff
		case argRegImm:
			in.X = nibble(w, 2)
			in.NN = byte(w)
		case argRegReg:
			in.X, in.Y = nibble(w, 2), nibble(w, 1)
		case argReg:
			in.X = nibble(w, 2)
		case argRegRegN:
			in.X, in.Y, in.N = nibble(w, 2), nibble(w, 1), nibble(w, 0)
		}
		return in, true
	}
	return Instr{Op: BAD}, false
}

// nibble returns the i'th nibble of w, counting from the least significant.
func nibble(w uint16, i uint) byte {
	return byte(w>>(4*i)) & 0xf
}

// Word returns the instruction word that encodes in.
// It returns 0 (NOP) for an Instr with Op BAD.
func (in Instr) Word() uint16 {
	for _, r := range rules {
		if r.op != in.Op {
			continue
		}
		w := r.value
		switch r.args {
		case argAddr:
			w |= in.NNN & 0x0fff
		case argRegImm:
			w |= uint16(in.X&0xf)<<8 | uint16(in.NN)
		case argRegReg:
			w |= uint16(in.X&0xf)<<8 | uint16(in.Y&0xf)<<4
		case argReg:
			w |= uint16(in.X&0xf) << 8
		case argRegRegN:
			w |= uint16(in.X&0xf)<<8 | uint16(in.Y&0xf)<<4 | uint16(in.N&0xf)
		}
		return w
	}
	return 0
}
