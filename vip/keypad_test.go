package vip

import "testing"

func TestKeyForRune(t *testing.T) {
	for _, c := range []struct {
		r  rune
		k  byte
		ok bool
	}{
		{'1', 0x1, true},
		{'4', 0xc, true},
		{'q', 0x4, true},
		{'Q', 0x4, true},
		{'r', 0xd, true},
		{'s', 0x8, true},
		{'x', 0x0, true},
		{'X', 0x0, true},
		{'v', 0xf, true},
		{'5', 0, false},
		{'p', 0, false},
		{0, 0, false},
	} {
		k, ok := KeyForRune(c.r)
		if k != c.k || ok != c.ok {
			t.Errorf("KeyForRune(%q) = %x, %v; want %x, %v", c.r, k, ok, c.k, c.ok)
		}
	}
}

func TestKeypadComplete(t *testing.T) {
	var seen [16]bool
	for r, k := range keypad {
		if seen[k] {
			t.Errorf("key %x mapped twice (again by %q)", k, r)
		}
		seen[k] = true
	}
	for k, ok := range seen {
		if !ok {
			t.Errorf("key %x not mapped", k)
		}
	}
	for c, r := range codeRunes {
		if _, ok := KeyForRune(r); !ok {
			t.Errorf("key code %v maps to %q, which is not on the keypad", c, r)
		}
	}
}
