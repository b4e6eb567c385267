//go:build !headless

package vip

import (
	"bytes"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// ToneBuzzer plays a short square-wave tone through the system's
// audio output.
type ToneBuzzer struct {
	ctx  *oto.Context
	tone []byte

	mu     sync.Mutex
	player *oto.Player
}

// NewToneBuzzer opens the audio device. Only one may be created per
// process.
func NewToneBuzzer() (Buzzer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &ToneBuzzer{
		ctx:  ctx,
		tone: squareWave(toneHz, toneDuration),
	}, nil
}

// Beep starts the tone unless it is already playing.
func (b *ToneBuzzer) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p := b.player; p != nil {
		if p.IsPlaying() {
			return
		}
		p.Close()
	}
	b.player = b.ctx.NewPlayer(bytes.NewReader(b.tone))
	b.player.Play()
}
