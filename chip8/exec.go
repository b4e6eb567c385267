package chip8

import (
	"errors"
	"fmt"
)

// ErrWaitKey is returned by Cycle and Exec when the instruction is a key
// wait (FX0A) and no key is pressed. The program counter is left pointing
// at the instruction, so the next Cycle executes it again.
var ErrWaitKey = errors.New("waiting for key")

// Cycle fetches the instruction at m.PC, advances m.PC past it, and
// executes it. It returns ErrWaitKey if the machine is stalled waiting
// for a key press, and otherwise only returns a non-nil error (of type
// HaltError) if the instruction faults. A faulting instruction leaves
// m.PC at its own address and has no other effect.
func (m *Machine) Cycle() error {
	opPC := m.PC
	if int(opPC)+1 >= MemSize {
		return HaltError{HaltCode: OutOfRange, Addr: opPC}
	}
	w := short(m.Mem[opPC], m.Mem[opPC+1])
	in, ok := Decode(w)
	if !ok {
		return HaltError{HaltCode: IllegalOp, Word: w, Addr: opPC}
	}
	m.PC += 2
	return m.exec(in, w, opPC)
}

// Exec executes in as if it had just been fetched, so m.PC should
// already point past it. It returns errors as described for Cycle.
func (m *Machine) Exec(in Instr) error {
	return m.exec(in, in.Word(), m.PC-2)
}

// exec executes in, which was decoded from w at opPC.
func (m *Machine) exec(in Instr, w, opPC uint16) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(HaltCode); ok {
				m.PC = opPC
				err = HaltError{
					HaltCode: code,
					Word:     w,
					Addr:     opPC,
				}
			} else {
				panic(e)
			}
		}
	}()

	m.stalled = false
	x, y := in.X, in.Y

	switch in.Op {
	case NOP:
	case CLS:
		m.Screen = Framebuffer{}
	case RET:
		m.PC = m.Stack.Pop()
	case JP:
		m.PC = in.NNN
	case CALL:
		m.Stack.Push(m.PC)
		m.PC = in.NNN
	case SEI:
		m.skipIf(m.V[x] == in.NN)
	case SNEI:
		m.skipIf(m.V[x] != in.NN)
	case SE:
		m.skipIf(m.V[x] == m.V[y])
	case SNE:
		m.skipIf(m.V[x] != m.V[y])
	case LDI:
		m.V[x] = in.NN
	case ADDI:
		m.V[x] += in.NN
	case LD:
		m.V[x] = m.V[y]
	case OR:
		m.V[x] |= m.V[y]
	case AND:
		m.V[x] &= m.V[y]
	case XOR:
		m.V[x] ^= m.V[y]
	case ADD:
		sum := uint16(m.V[x]) + uint16(m.V[y])
		m.V[x] = byte(sum)
		m.V[Flag] = flag(sum > 0xff)
	case SUB:
		vx, vy := m.V[x], m.V[y]
		m.V[x] = vx - vy
		m.V[Flag] = flag(vx >= vy)
	case SUBN:
		vx, vy := m.V[x], m.V[y]
		m.V[x] = vy - vx
		m.V[Flag] = flag(vy >= vx)
	case SHR:
		vx := m.V[x]
		m.V[x] = vx >> 1
		m.V[Flag] = vx & 0x01
	case SHL:
		vx := m.V[x]
		m.V[x] = vx << 1
		m.V[Flag] = vx >> 7
	case LDIX:
		m.I = in.NNN
	case JPV0:
		m.PC = uint16(m.V[0]) + in.NNN
	case RND:
		m.V[x] = m.Rand.Byte() & in.NN
	case DRW:
		m.draw(m.V[x], m.V[y], in.N)
	case SKP:
		m.skipIf(m.pressed(m.V[x]))
	case SKNP:
		m.skipIf(!m.pressed(m.V[x]))
	case LDVDT:
		m.V[x] = m.DT
	case LDK:
		for k := range m.Keys {
			if m.Keys[k] {
				m.V[x] = byte(k)
				return nil
			}
		}
		m.PC -= 2
		m.stalled = true
		return ErrWaitKey
	case LDDTV:
		m.DT = m.V[x]
	case LDSTV:
		m.ST = m.V[x]
	case ADDIX:
		m.I += uint16(m.V[x])
	case LDF:
		m.I = uint16(m.V[x]) * glyphSize
	case BCDX:
		m.checkRange(m.I, 3)
		d := BCD(m.V[x])
		copy(m.Mem[m.I:], d[:])
	case STR:
		m.checkRange(m.I, int(x)+1)
		copy(m.Mem[m.I:], m.V[:x+1])
	case LDR:
		m.checkRange(m.I, int(x)+1)
		copy(m.V[:x+1], m.Mem[m.I:])
	default:
		panic(IllegalOp)
	}
	return nil
}

// draw XORs the n-byte sprite at m.I onto the screen with its top-left
// corner at (x, y), wrapping at the screen edges. VF is set to 1 if any
// lit cell was erased, and to 0 otherwise.
func (m *Machine) draw(x, y, n byte) {
	m.checkRange(m.I, int(n))
	erased := false
	for row := 0; row < int(n); row++ {
		bits := m.Mem[int(m.I)+row]
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if m.Screen.toggle(int(x)+col, int(y)+row) {
				erased = true
			}
		}
	}
	m.V[Flag] = flag(erased)
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.PC += 2
	}
}

// checkRange panics with OutOfRange unless the n bytes starting at addr
// are all within memory.
func (m *Machine) checkRange(addr uint16, n int) {
	if int(addr)+n > MemSize {
		panic(OutOfRange)
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// HaltError is returned by Cycle and Exec if an instruction faults.
type HaltError struct {
	HaltCode
	Word uint16
	Addr uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s executing %.4x at %.3x", e.HaltCode, e.Word, e.Addr)
}

// HaltCode signifies the type of fault that halted execution.
type HaltCode byte

const (
	IllegalOp      HaltCode = 0x01
	StackOverflow  HaltCode = 0x02
	StackUnderflow HaltCode = 0x03
	OutOfRange     HaltCode = 0x04
)

func (c HaltCode) String() string {
	if s, ok := map[HaltCode]string{
		IllegalOp:      "illegal instruction",
		StackOverflow:  "stack overflow",
		StackUnderflow: "stack underflow",
		OutOfRange:     "memory out of range",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}

func short(hi, lo byte) uint16 {
	return uint16(hi)<<8 + uint16(lo)
}
