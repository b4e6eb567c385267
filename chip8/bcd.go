package chip8

// BCD returns the hundreds, tens and ones digits of v, computed with the
// double-dabble shift-and-add-3 algorithm.
func BCD(v byte) [3]byte {
	// Bits 0-7 hold the input; bits 8-11, 12-15 and 16-19 hold the
	// ones, tens and hundreds digits once all eight bits are shifted in.
	acc := uint32(v)
	for i := 0; i < 8; i++ {
		for shift := 8; shift <= 16; shift += 4 {
			if (acc>>shift)&0xf >= 5 {
				acc += 3 << shift
			}
		}
		acc <<= 1
	}
	return [3]byte{
		byte(acc>>16) & 0xf,
		byte(acc>>12) & 0xf,
		byte(acc>>8) & 0xf,
	}
}
