package vip

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/nf/ch8/chip8"
)

// Frontend presents the machine to the user.
type Frontend interface {
	// Run displays frames from r and forwards key presses to it until
	// the user quits or r is done.
	Run(r *Runner) error
}

// Runner owns a chip8.Machine and executes it at a fixed frame rate.
// Its exported methods may be called from any goroutine.
type Runner struct {
	cfg  Config
	buzz Buzzer

	keys   chan keyEvent
	frames chan chip8.Framebuffer
	swap   chan []byte
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once

	// Only accessed by the execution goroutine.
	m      *chip8.Machine
	halted bool
	err    error
}

type keyEvent struct {
	key  byte
	down bool
}

func NewRunner(cfg Config, buzz Buzzer) *Runner {
	if buzz == nil {
		buzz = NopBuzzer{}
	}
	return &Runner{
		cfg:    cfg.withDefaults(),
		buzz:   buzz,
		keys:   make(chan keyEvent, 64),
		frames: make(chan chip8.Framebuffer, 1),
		swap:   make(chan []byte),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run loads rom into a new machine and executes it while front runs.
// It returns when front returns or, unless the Runner is in watch mode,
// when the machine faults. The fault, if any, is returned.
func (r *Runner) Run(rom []byte, front Frontend) error {
	if err := r.start(rom); err != nil {
		return err
	}
	go r.loop()

	err := front.Run(r)
	r.Quit()
	<-r.done
	if err != nil {
		return err
	}
	return r.err
}

func (r *Runner) start(rom []byte) error {
	r.m = chip8.New()
	if s := r.cfg.Seed; s != 0 {
		r.m.Rand = chip8.NewRand(s)
	}
	return r.m.Load(rom)
}

func (r *Runner) loop() {
	defer close(r.done)

	t := time.NewTicker(time.Second / time.Duration(r.cfg.FrameRate))
	defer t.Stop()
	for {
		select {
		case <-r.quit:
			return
		case rom := <-r.swap:
			r.m.Reset()
			if err := r.m.Load(rom); err != nil {
				log.Printf("chip8: %v", err)
				r.halted = true
				break
			}
			r.halted = false
		case <-t.C:
			if err := r.frame(); err != nil {
				log.Printf("chip8: %v", err)
				if !r.cfg.Watch {
					r.err = err
					return
				}
			}
		}
	}
}

// frame applies pending key events, executes one frame's worth of
// instructions, ticks the timers and publishes the screen.
// A key pressed and released within one frame stays down until the
// frame's instructions have run, so that short taps are seen.
func (r *Runner) frame() error {
	var pressed, release [chip8.NumKeys]bool
	for pending := true; pending; {
		select {
		case e := <-r.keys:
			if int(e.key) >= chip8.NumKeys {
				break
			}
			switch {
			case e.down:
				r.m.KeyDown(e.key)
				pressed[e.key] = true
				release[e.key] = false
			case pressed[e.key]:
				release[e.key] = true
			default:
				r.m.KeyUp(e.key)
			}
		default:
			pending = false
		}
	}
	defer func() {
		for k, up := range release {
			if up {
				r.m.KeyUp(byte(k))
			}
		}
	}()

	if r.halted {
		return nil
	}
	for i := 0; i < r.cfg.CyclesPerFrame; i++ {
		err := r.m.Cycle()
		if errors.Is(err, chip8.ErrWaitKey) {
			// No key can arrive before the next frame.
			break
		}
		if err != nil {
			r.halted = true
			r.publish()
			return err
		}
	}
	if r.m.TickTimers() {
		r.buzz.Beep()
	}
	r.publish()
	return nil
}

func (r *Runner) publish() {
	fb := *r.m.Display()
	select {
	case <-r.frames:
	default:
	}
	r.frames <- fb
}

// Frames delivers the screen after each frame. Frames that are not
// received before the next one is ready are dropped.
func (r *Runner) Frames() <-chan chip8.Framebuffer { return r.frames }

// Done is closed when execution stops.
func (r *Runner) Done() <-chan struct{} { return r.done }

// KeyDown presses keypad key k at the start of the next frame.
func (r *Runner) KeyDown(k byte) { r.sendKey(keyEvent{k, true}) }

// KeyUp releases keypad key k at the start of the next frame.
func (r *Runner) KeyUp(k byte) { r.sendKey(keyEvent{k, false}) }

func (r *Runner) sendKey(e keyEvent) {
	select {
	case r.keys <- e:
	case <-r.done:
	}
}

// Swap resets the machine and loads rom in place of the running program,
// resuming a machine that halted on a fault.
func (r *Runner) Swap(rom []byte) {
	select {
	case r.swap <- rom:
	case <-r.done:
	}
}

// Quit stops execution.
func (r *Runner) Quit() {
	r.once.Do(func() { close(r.quit) })
}
