package vip

import (
	"encoding/binary"
	"testing"
)

func TestSquareWave(t *testing.T) {
	b := squareWave(toneHz, toneDuration)
	if got, want := len(b), sampleRate/10*2; got != want {
		t.Fatalf("got %d bytes, want %d", got, want)
	}
	period := sampleRate / toneHz
	for i := 0; i < len(b)/2; i++ {
		v := int16(binary.LittleEndian.Uint16(b[i*2:]))
		want := int16(toneVolume)
		if i%period >= period/2 {
			want = -want
		}
		if v != want {
			t.Fatalf("sample %d is %d, want %d", i, v, want)
		}
	}
	if b := squareWave(toneHz, 0); len(b) != 0 {
		t.Errorf("zero duration wave has %d bytes", len(b))
	}
}
