package vip

import (
	"encoding/binary"
	"time"
)

// Buzzer sounds a tone when the machine's sound timer runs out.
type Buzzer interface {
	Beep()
}

// NopBuzzer is a silent Buzzer.
type NopBuzzer struct{}

func (NopBuzzer) Beep() {}

const (
	sampleRate   = 44100
	toneHz       = 440
	toneDuration = time.Second / 10
	toneVolume   = 0x1000
)

// squareWave returns signed 16-bit little-endian mono samples of a
// square wave at freq Hz lasting d.
func squareWave(freq int, d time.Duration) []byte {
	n := int(int64(sampleRate) * int64(d) / int64(time.Second))
	b := make([]byte, n*2)
	period := sampleRate / freq
	for i := 0; i < n; i++ {
		v := int16(toneVolume)
		if i%period >= period/2 {
			v = -v
		}
		binary.LittleEndian.PutUint16(b[i*2:], uint16(v))
	}
	return b
}
