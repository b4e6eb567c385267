package vip

import (
	"image"
	"image/draw"
	"log"

	"github.com/nf/ch8/chip8"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// GUI is a Frontend that shows the display in a desktop window.
// Its Run method must be called from the main goroutine.
type GUI struct {
	size image.Point
}

func NewGUI(cfg Config) *GUI {
	cfg = cfg.withDefaults()
	return &GUI{size: image.Point{chip8.Width * cfg.Scale, chip8.Height * cfg.Scale}}
}

// Events sent to the window by the frame pump.
type (
	frameEvent struct{ fb chip8.Framebuffer }
	haltEvent  struct{}
)

func (g *GUI) Run(r *Runner) (err error) {
	driver.Main(func(s screen.Screen) {
		w, e := s.NewWindow(&screen.NewWindowOptions{
			Title:  "ch8",
			Width:  g.size.X,
			Height: g.size.Y,
		})
		if e != nil {
			err = e
			return
		}
		defer w.Release()

		buf, e := s.NewBuffer(g.size)
		if e != nil {
			err = e
			return
		}
		defer buf.Release()
		tex, e := s.NewTexture(g.size)
		if e != nil {
			err = e
			return
		}
		defer tex.Release()

		stop := make(chan bool)
		defer close(stop)
		go func() {
			for {
				select {
				case fb := <-r.Frames():
					w.Send(frameEvent{fb})
				case <-r.Done():
					w.Send(haltEvent{})
					return
				case <-stop:
					return
				}
			}
		}()

		var (
			sz    size.Event
			dirty bool
		)
		for {
			switch e := w.NextEvent().(type) {
			case haltEvent:
				return

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}

			case key.Event:
				if e.Code == key.CodeEscape {
					return
				}
				k, ok := KeyForRune(codeRunes[e.Code])
				if !ok {
					break
				}
				switch e.Direction {
				case key.DirPress:
					r.KeyDown(k)
				case key.DirRelease:
					r.KeyUp(k)
				}

			case frameEvent:
				Scale(buf.RGBA(), Image(&e.fb, On, Off))
				tex.Upload(image.Point{}, buf, buf.Bounds())
				dirty = true

			case paint.Event:
				dirty = true

			case error:
				log.Print(e)
			}

			if dirty && sz.WidthPx > 0 {
				w.Scale(sz.Bounds(), tex, tex.Bounds(), draw.Src, nil)
				w.Publish()
				dirty = false
			}
		}
	})
	return err
}

// codeRunes maps the physical keys of the keypad block to the
// characters KeyForRune expects, regardless of modifiers.
var codeRunes = map[key.Code]rune{
	key.Code1: '1', key.Code2: '2', key.Code3: '3', key.Code4: '4',
	key.CodeQ: 'q', key.CodeW: 'w', key.CodeE: 'e', key.CodeR: 'r',
	key.CodeA: 'a', key.CodeS: 's', key.CodeD: 'd', key.CodeF: 'f',
	key.CodeZ: 'z', key.CodeX: 'x', key.CodeC: 'c', key.CodeV: 'v',
}
