// Package chip8 provides an implementation of a CHIP-8 interpreter, called
// Machine, that can be used to execute CHIP-8 programs.
package chip8

import (
	"errors"
	"fmt"
)

const (
	MemSize     = 0x1000
	ProgramBase = 0x200
	NumRegs     = 16
	NumKeys     = 16
	Width       = 64
	Height      = 32

	// Flag is the register overwritten by ADD, SUB, SUBN, SHR, SHL
	// and DRW to report carry, borrow, the shifted-out bit or a
	// collision. Those instructions write it after their result, so
	// when Vx is VF the flag wins.
	Flag = 0xf

	glyphSize = 5
)

var font = [16 * glyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// Machine is an implementation of a CHIP-8 CPU and its surrounding state.
// A Machine must not be used by more than one goroutine at a time.
type Machine struct {
	Mem    [MemSize]byte
	PC     uint16
	V      [NumRegs]byte
	I      uint16
	Stack  Stack
	Keys   [NumKeys]bool
	DT, ST byte
	Screen Framebuffer

	// Rand supplies the bytes for RND.
	Rand RandSource

	stalled bool
}

// Framebuffer holds the lit state of each display cell in row-major order.
type Framebuffer [Width * Height]bool

// At reports whether the cell at column x, row y is lit.
// Coordinates wrap around the screen edges.
func (f *Framebuffer) At(x, y int) bool {
	return f[cell(x, y)]
}

func (f *Framebuffer) toggle(x, y int) (erased bool) {
	i := cell(x, y)
	erased = f[i]
	f[i] = !f[i]
	return erased
}

func cell(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}

// New returns a Machine with the font loaded and the program counter at
// ProgramBase. Its RND instruction draws from an unseeded source.
func New() *Machine {
	m := &Machine{Rand: NewRand(0)}
	m.Reset()
	return m
}

// Reset restores m to the state returned by New, erasing any loaded
// program. The random source is kept.
func (m *Machine) Reset() {
	r := m.Rand
	*m = Machine{PC: ProgramBase, Rand: r}
	copy(m.Mem[:], font[:])
}

var ErrProgramTooLarge = errors.New("program too large")

// Load copies rom into memory at ProgramBase. If rom does not fit, Load
// returns an error wrapping ErrProgramTooLarge and memory is unchanged.
func (m *Machine) Load(rom []byte) error {
	if n := len(rom); n > MemSize-ProgramBase {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrProgramTooLarge, n, MemSize-ProgramBase)
	}
	copy(m.Mem[ProgramBase:], rom)
	return nil
}

// KeyDown marks key k as pressed. Keys above 0xf are ignored.
func (m *Machine) KeyDown(k byte) {
	if k < NumKeys {
		m.Keys[k] = true
	}
}

// KeyUp marks key k as released. Keys above 0xf are ignored.
func (m *Machine) KeyUp(k byte) {
	if k < NumKeys {
		m.Keys[k] = false
	}
}

// Display returns the current contents of the screen.
// It is only valid until the next call to Cycle, Exec or Reset.
func (m *Machine) Display() *Framebuffer { return &m.Screen }

// Stalled reports whether the most recent instruction was a key wait
// that found no key pressed.
func (m *Machine) Stalled() bool { return m.stalled }

// TickTimers decrements the delay and sound timers if they are nonzero.
// It reports whether the sound timer reached zero on this tick, which is
// when the buzzer should sound.
func (m *Machine) TickTimers() (beep bool) {
	if m.DT > 0 {
		m.DT--
	}
	if m.ST > 0 {
		m.ST--
		beep = m.ST == 0
	}
	return beep
}

func (m *Machine) pressed(k byte) bool {
	return k < NumKeys && m.Keys[k]
}
