package session

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/tsawler/tabgrid/model"
)

// Ruled table used throughout: four columns and four rows of rules in
// document space on a US letter page.
var (
	ruleCols = []float64{72, 222, 372, 522}
	ruleRows = []float64{92, 122, 152, 182}
)

type fakeDoc struct {
	pages int
	frags map[int][]model.TextFragment
	errs  map[int]error
	calls map[int]int
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) PageSize(page int) (float64, float64, error) {
	return 612, 792, nil
}

func (d *fakeDoc) Fragments(page int) ([]model.TextFragment, error) {
	if d.calls == nil {
		d.calls = make(map[int]int)
	}
	d.calls[page]++
	if err := d.errs[page]; err != nil {
		return nil, err
	}
	return d.frags[page], nil
}

// ruledRenderer draws ruleCols and ruleRows as one point wide black rules
type ruledRenderer struct {
	renders int
	mags    []float64
}

func (r *ruledRenderer) Render(page int, mag float64) (image.Image, error) {
	r.renders++
	r.mags = append(r.mags, mag)
	w, h := int(math.Round(612*mag)), int(math.Round(792*mag))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	thick := max(2, int(mag))
	black := image.NewUniform(color.Black)
	top, bottom := int(ruleRows[0]*mag), int(ruleRows[len(ruleRows)-1]*mag)+thick
	left, right := int(ruleCols[0]*mag), int(ruleCols[len(ruleCols)-1]*mag)+thick
	for _, x := range ruleCols {
		px := int(x * mag)
		draw.Draw(img, image.Rect(px, top, px+thick, bottom), black, image.Point{}, draw.Src)
	}
	for _, y := range ruleRows {
		py := int(y * mag)
		draw.Draw(img, image.Rect(left, py, right, py+thick), black, image.Point{}, draw.Src)
	}
	return img, nil
}

type failingRenderer struct{}

func (failingRenderer) Render(int, float64) (image.Image, error) {
	return nil, errors.New("render failed")
}

type fakeOCR struct {
	frags []model.TextFragment
}

func (o *fakeOCR) Fragments(page int) ([]model.TextFragment, error) {
	return o.frags, nil
}

func word(text string, x0, y0, x1, y1 float64) model.TextFragment {
	return model.TextFragment{Text: text, BBox: model.NewRect(x0, y0, x1, y1), Dir: model.Point{X: 1}, FontSize: 12}
}

// tableWords fills the ruled table with a header and two data rows
func tableWords() []model.TextFragment {
	return []model.TextFragment{
		word("Name", 80, 101, 107, 113),
		word("Qty", 230, 101, 248, 113),
		word("Price", 380, 101, 410, 113),
		word("Tea", 80, 131, 98, 143),
		word("10", 230, 131, 242, 143),
		word("2.50", 380, 131, 404, 143),
		word("Coffee", 80, 161, 116, 173),
		word("4", 230, 161, 236, 173),
		word("3.75", 380, 161, 404, 173),
	}
}

// stacked lays out text one character per line, top to bottom, starting at
// the top left of a cell
func stacked(text string, x, y float64) []model.TextFragment {
	var out []model.TextFragment
	for i, r := range text {
		top := y + float64(i)*5
		out = append(out, model.TextFragment{
			Text:     string(r),
			BBox:     model.NewRect(x, top, x+4, top+5),
			Dir:      model.Point{Y: 1},
			FontSize: 5,
		})
	}
	return out
}

func newDoc() *fakeDoc {
	var vertical []model.TextFragment
	vertical = append(vertical, stacked("elbaT", 100, 93)...)
	vertical = append(vertical, stacked("emaN", 250, 93)...)
	vertical = append(vertical, stacked("ytQ", 400, 93)...)

	return &fakeDoc{
		pages: 4,
		frags: map[int][]model.TextFragment{
			0: tableWords(),
			2: vertical,
		},
		errs: map[int]error{3: errors.New("corrupt content stream")},
	}
}
