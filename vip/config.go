// Package vip runs a chip8.Machine at a fixed frame rate with a hex
// keypad and buzzer, as the COSMAC VIP did.
package vip

// Config controls how a Runner and its frontends drive the machine.
type Config struct {
	CyclesPerFrame int    // instructions executed per frame
	FrameRate      int    // frames (and timer ticks) per second
	Scale          int    // window pixels per display cell
	Seed           uint64 // seed for RND; 0 picks a random seed
	Mute           bool
	Watch          bool // pause on a fault rather than exit
}

// DefaultConfig returns the settings used for any zero Config fields.
func DefaultConfig() Config {
	return Config{
		CyclesPerFrame: 15,
		FrameRate:      60,
		Scale:          15,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CyclesPerFrame <= 0 {
		c.CyclesPerFrame = d.CyclesPerFrame
	}
	if c.FrameRate <= 0 {
		c.FrameRate = d.FrameRate
	}
	if c.Scale <= 0 {
		c.Scale = d.Scale
	}
	return c
}
