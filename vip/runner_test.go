package vip

import (
	"errors"
	"testing"

	"github.com/nf/ch8/chip8"
)

type countBuzzer struct{ n int }

func (b *countBuzzer) Beep() { b.n++ }

// frontFunc adapts a function to the Frontend interface.
type frontFunc func(r *Runner) error

func (f frontFunc) Run(r *Runner) error { return f(r) }

func TestRunnerFrame(t *testing.T) {
	buzz := &countBuzzer{}
	r := NewRunner(Config{CyclesPerFrame: 4}, buzz)
	err := r.start([]byte{
		0x60, 0x01, // LD V0, 01
		0xf0, 0x18, // LD ST, V0
		0xf3, 0x0a, // LD V3, K
		0xa0, 0x00, // LD I, 000 (glyph 0)
		0xd1, 0x25, // DRW V1, V2, 5
		0x12, 0x0a, // JP 20a
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := r.frame(); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if !r.m.Stalled() || r.m.PC != 0x204 {
		t.Fatalf("PC is %.3x, stalled %v; want 204, true", r.m.PC, r.m.Stalled())
	}
	if buzz.n != 1 {
		t.Errorf("got %d beeps, want 1", buzz.n)
	}
	<-r.Frames()

	r.KeyDown(0xb)
	r.KeyUp(0xb)
	r.KeyDown(0x6)
	if err := r.frame(); err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if r.m.V[3] != 0x6 {
		t.Errorf("V3 is %x, want 6", r.m.V[3])
	}
	fb := <-r.Frames()
	if !fb.At(0, 0) || !fb.At(3, 4) || fb.At(1, 1) {
		t.Errorf("glyph 0 not drawn at (0, 0)")
	}
	if buzz.n != 1 {
		t.Errorf("got %d beeps, want 1", buzz.n)
	}
}

func TestRunnerTap(t *testing.T) {
	r := NewRunner(Config{CyclesPerFrame: 4}, nil)
	err := r.start([]byte{
		0xf3, 0x0a, // LD V3, K
		0xe3, 0x9e, // SKP V3
		0x64, 0x01, // LD V4, 01
		0x12, 0x06, // JP 206
	})
	if err != nil {
		t.Fatal(err)
	}

	r.KeyDown(0x5)
	r.KeyUp(0x5)
	r.KeyDown(0x7)
	r.KeyUp(0x7)
	r.KeyDown(0x7)
	if err := r.frame(); err != nil {
		t.Fatal(err)
	}
	if r.m.V[3] != 0x5 {
		t.Errorf("V3 is %x, want 5", r.m.V[3])
	}
	if r.m.V[4] != 0 {
		t.Errorf("SKP did not see key 5 held during the frame")
	}
	if r.m.Keys[0x5] {
		t.Errorf("key 5 still down after the frame")
	}
	if !r.m.Keys[0x7] {
		t.Errorf("key 7 released, want down")
	}
}

func TestRunnerFault(t *testing.T) {
	r := NewRunner(Config{FrameRate: 1000}, nil)
	err := r.Run([]byte{0x00, 0x00, 0xff, 0xff}, frontFunc(func(r *Runner) error {
		<-r.Done()
		return nil
	}))
	var h chip8.HaltError
	if !errors.As(err, &h) {
		t.Fatalf("got error %v, want HaltError", err)
	}
	if want := (chip8.HaltError{HaltCode: chip8.IllegalOp, Word: 0xffff, Addr: 0x202}); h != want {
		t.Errorf("got %v, want %v", h, want)
	}
}

func TestRunnerQuit(t *testing.T) {
	r := NewRunner(Config{FrameRate: 1000}, nil)
	err := r.Run([]byte{0x12, 0x00}, frontFunc(func(r *Runner) error {
		<-r.Frames()
		return nil
	}))
	if err != nil {
		t.Errorf("got error %v, want nil", err)
	}
	select {
	case <-r.Done():
	default:
		t.Errorf("runner not done after Run returned")
	}
}

func TestRunnerTooLarge(t *testing.T) {
	r := NewRunner(Config{}, nil)
	err := r.Run(make([]byte, chip8.MemSize), frontFunc(func(*Runner) error {
		t.Fatal("frontend started")
		return nil
	}))
	if !errors.Is(err, chip8.ErrProgramTooLarge) {
		t.Errorf("got error %v, want ErrProgramTooLarge", err)
	}
}

func TestRunnerSwap(t *testing.T) {
	r := NewRunner(Config{FrameRate: 1000, Watch: true}, nil)
	err := r.Run([]byte{0xff, 0xff}, frontFunc(func(r *Runner) error {
		// The illegal instruction halts the machine but, in watch
		// mode, the runner keeps going until a new program arrives.
		<-r.Frames()
		r.Swap([]byte{
			0xa0, 0x00, // LD I, 000
			0xd0, 0x05, // DRW V0, V0, 5
			0x12, 0x04, // JP 204
		})
		for {
			select {
			case fb := <-r.Frames():
				if fb.At(0, 0) {
					return nil
				}
			case <-r.Done():
				t.Error("runner stopped")
				return nil
			}
		}
	}))
	if err != nil {
		t.Errorf("got error %v, want nil", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	got := Config{Scale: 3, Seed: 9}.withDefaults()
	want := DefaultConfig()
	want.Scale, want.Seed = 3, 9
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
