package chip8

import (
	"fmt"
	"strings"
)

// StackSize is the number of return addresses the call stack holds.
const StackSize = 16

// Stack implements the CHIP-8 call stack.
type Stack struct {
	Addrs [StackSize]uint16
	Ptr   byte
}

// Push panics with StackOverflow if the stack is full.
func (s *Stack) Push(addr uint16) {
	if s.Ptr == StackSize {
		panic(StackOverflow)
	}
	s.Addrs[s.Ptr] = addr
	s.Ptr++
}

// Pop panics with StackUnderflow if the stack is empty.
func (s *Stack) Pop() uint16 {
	if s.Ptr == 0 {
		panic(StackUnderflow)
	}
	s.Ptr--
	return s.Addrs[s.Ptr]
}

func (s Stack) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, v := range s.Addrs[:s.Ptr] {
		b.WriteByte(' ')
		fmt.Fprintf(&b, "%.3x", v)
	}
	b.WriteByte(' ')
	b.WriteByte(')')
	return b.String()
}
