package vip

import (
	"image"
	"image/color"

	"github.com/nf/ch8/chip8"
	xdraw "golang.org/x/image/draw"
)

var (
	On  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Off = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// Image returns a chip8.Width x chip8.Height image of fb, with lit cells
// in color on and the rest in color off.
func Image(fb *chip8.Framebuffer, on, off color.RGBA) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			c := off
			if fb.At(x, y) {
				c = on
			}
			m.SetRGBA(x, y, c)
		}
	}
	return m
}

// Scale fills dst with src, enlarged without smoothing so that each
// display cell stays a sharp square.
func Scale(dst *image.RGBA, src image.Image) {
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}
