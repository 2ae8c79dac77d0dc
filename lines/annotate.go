package lines

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	verticalColor   = color.RGBA{R: 255, A: 255}
	horizontalColor = color.RGBA{B: 255, A: 255}
	borderColor     = color.RGBA{G: 255, A: 255}
)

const strokeWidth = 2

// annotate draws the detected lines onto an origin-based copy of img
func annotate(img image.Image, res *Result, labels bool) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(out, image.Point{}, img, b, draw.Src, nil)

	w, h := b.Dx(), b.Dy()
	for _, x := range res.Vertical {
		fill(out, image.Rect(x, 0, x+strokeWidth, h), verticalColor)
	}
	for _, y := range res.Horizontal {
		fill(out, image.Rect(0, y, w, y+strokeWidth), horizontalColor)
	}

	fill(out, image.Rect(0, 0, w, strokeWidth), borderColor)
	fill(out, image.Rect(0, h-strokeWidth, w, h), borderColor)
	fill(out, image.Rect(0, 0, strokeWidth, h), borderColor)
	fill(out, image.Rect(w-strokeWidth, 0, w, h), borderColor)

	if labels {
		for i, x := range res.Vertical {
			label(out, strconv.Itoa(i), x+3, 14, verticalColor)
		}
		for i, y := range res.Horizontal {
			label(out, strconv.Itoa(i), 4, y-2, horizontalColor)
		}
	}
	return out
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func label(dst *image.RGBA, s string, x, y int, c color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
