package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const watermarkMargin = 8

// stampWatermark draws label in the bottom-right corner of the canvas, with
// a dark offset shadow so it stays readable on light and dark photos alike.
func stampWatermark(canvas *image.RGBA, label string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()

	bounds := canvas.Bounds()
	x := bounds.Max.X - width - watermarkMargin
	y := bounds.Max.Y - watermarkMargin
	if x < bounds.Min.X || y-face.Height < bounds.Min.Y {
		// Canvas too small to hold the label.
		return
	}

	shadow := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{A: 160}),
		Face: face,
		Dot:  fixed.P(x+1, y+1),
	}
	shadow.DrawString(label)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 200}),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(label)
}
