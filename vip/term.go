package vip

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/ch8/chip8"
)

// Terminals report key presses but not releases, so a key is held down
// for this long after its most recent press or auto-repeat.
const keyHold = 100 * time.Millisecond

// Term is a Frontend that draws the display in the terminal, above a
// pane showing log output. It is also a Buzzer that rings the
// terminal bell.
type Term struct {
	app    *tview.Application
	screen tcell.Screen
	held   [chip8.NumKeys]*time.Timer

	mu   sync.Mutex
	live bool
}

// NewTerm prepares a terminal frontend. The terminal is taken over by
// Run and released when it returns.
func NewTerm() (*Term, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerm(s), nil
}

func newTerm(s tcell.Screen) *Term {
	return &Term{app: tview.NewApplication(), screen: s}
}

// Beep rings the bell while Run is displaying the screen.
func (t *Term) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.live {
		t.screen.Beep()
	}
}

func (t *Term) Run(r *Runner) error {
	// SetScreen initializes the screen.
	t.mu.Lock()
	t.app.SetScreen(t.screen)
	t.live = true
	t.mu.Unlock()
	defer t.stop()

	var (
		app     = t.app
		display = tview.NewBox()
		logView = tview.NewTextView().
			SetMaxLines(1000)
		rows = tview.NewFlex().
			SetDirection(tview.FlexRow)

		mu sync.Mutex
		fb chip8.Framebuffer
	)
	display.SetBorder(true).SetTitle(" ch8 ")
	display.SetDrawFunc(func(s tcell.Screen, x, y, width, height int) (int, int, int, int) {
		mu.Lock()
		f := fb
		mu.Unlock()
		drawCells(s, &f, x+1, y+1)
		return x + 1, y + 1, width - 2, height - 2
	})
	logView.SetChangedFunc(func() { app.Draw() })
	rows.
		AddItem(display, chip8.Height/2+2, 0, false).
		AddItem(logView, 0, 1, false)
	app.SetRoot(rows, true)

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.stop()
			return nil
		case tcell.KeyRune:
			if k, ok := KeyForRune(ev.Rune()); ok {
				t.press(r, k)
			}
			return nil
		}
		return ev
	})

	log.SetOutput(logView)
	defer log.SetOutput(os.Stderr)

	stop := make(chan bool)
	defer close(stop)
	go func() {
		for {
			select {
			case f := <-r.Frames():
				mu.Lock()
				fb = f
				mu.Unlock()
				app.Draw()
			case <-r.Done():
				t.stop()
				return
			case <-stop:
				return
			}
		}
	}()

	return app.Run()
}

// stop ends Run. The bell is silenced first, as the screen is
// finalized when the application stops.
func (t *Term) stop() {
	t.mu.Lock()
	t.live = false
	t.mu.Unlock()
	t.app.Stop()
}

// press holds k down, extending the hold if it is already down.
func (t *Term) press(r *Runner, k byte) {
	if tm := t.held[k]; tm != nil && tm.Stop() {
		tm.Reset(keyHold)
		return
	}
	r.KeyDown(k)
	t.held[k] = time.AfterFunc(keyHold, func() { r.KeyUp(k) })
}

// drawCells draws fb with its top-left corner at (x0, y0), packing two
// display rows into each character cell with the upper half block.
func drawCells(s tcell.Screen, fb *chip8.Framebuffer, x0, y0 int) {
	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(fb.At(x, y))).
				Background(cellColor(fb.At(x, y+1)))
			s.SetContent(x0+x, y0+y/2, '▀', nil, style)
		}
	}
}

func cellColor(lit bool) tcell.Color {
	if lit {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}
