package lines

import (
	"image"
)

// intensityMap is a row-major grayscale buffer
type intensityMap struct {
	w, h int
	pix  []float64
}

func newIntensityMap(img image.Image) *intensityMap {
	b := img.Bounds()
	m := &intensityMap{w: b.Dx(), h: b.Dy(), pix: make([]float64, b.Dx()*b.Dy())}

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < m.h; y++ {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < m.w; x++ {
				p := row[x*4 : x*4+3]
				m.pix[y*m.w+x] = luma(float64(p[0]), float64(p[1]), float64(p[2]))
			}
		}
		return m
	}

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.pix[y*m.w+x] = luma(float64(r>>8), float64(g>>8), float64(bl>>8))
		}
	}
	return m
}

func luma(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

func (m *intensityMap) at(x, y int) float64 {
	return m.pix[y*m.w+x]
}

// axis abstracts over columns and rows so both directions share one code path.
// pos indexes the axis being searched, along walks the orthogonal axis.
type axis struct {
	m        *intensityMap
	vertical bool
}

func (a axis) size() int {
	if a.vertical {
		return a.m.w
	}
	return a.m.h
}

func (a axis) length() int {
	if a.vertical {
		return a.m.h
	}
	return a.m.w
}

func (a axis) at(pos, along int) float64 {
	if a.vertical {
		return a.m.at(pos, along)
	}
	return a.m.at(along, pos)
}
