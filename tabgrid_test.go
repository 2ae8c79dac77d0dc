package tabgrid

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/tabgrid/config"
	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/session"
	"github.com/tsawler/tabgrid/tables"
)

var (
	testPDF  = filepath.Join("document", "testdata", "table.pdf")
	ruleCols = []float64{72, 222, 372, 522}
	ruleRows = []float64{92, 122, 152, 182}
	wantRows = [][]string{
		{"Name", "Qty", "Price"},
		{"Tea", "10", "2.50"},
		{"Coffee", "4", "3.75"},
	}
)

// pageSource serves the same table words on every page except those with
// an error
type pageSource struct {
	pages int
	errs  map[int]error
}

func (p pageSource) PageCount() int { return p.pages }

func (p pageSource) PageSize(int) (float64, float64, error) { return 612, 792, nil }

func (p pageSource) Fragments(page int) ([]model.TextFragment, error) {
	if err := p.errs[page]; err != nil {
		return nil, err
	}
	var frags []model.TextFragment
	for r, row := range wantRows {
		for c, w := range row {
			x := ruleCols[c] + 10
			y := ruleRows[r] + 10
			frags = append(frags, model.TextFragment{
				Text: w,
				BBox: model.Rect{X0: x, Y0: y, X1: x + 30, Y1: y + 10},
				Dir:  model.Point{X: 1},
			})
		}
	}
	return frags, nil
}

func TestOpen(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Markers(ruleCols, ruleRows).Grid()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
	if !model.IsKind(err, model.KindUserInput) {
		t.Errorf("expected user input error, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	grid, warnings, err := Open(testPDF).Markers(ruleCols, ruleRows).Grid()
	if err != nil {
		t.Fatalf("failed to extract grid: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if !reflect.DeepEqual(grid.Rows, wantRows) {
		t.Errorf("got %q, want %q", grid.Rows, wantRows)
	}
}

func TestGrid_NoMarkers(t *testing.T) {
	_, _, err := Open(testPDF).Grid()
	if !errors.Is(err, session.ErrNoMarkers) {
		t.Errorf("expected ErrNoMarkers, got %v", err)
	}
}

func TestMarkersRequireTwoPerAxis(t *testing.T) {
	_, _, err := Open(testPDF).Markers([]float64{72}, ruleRows).Grid()
	if !model.IsKind(err, model.KindUserInput) {
		t.Errorf("expected user input error, got %v", err)
	}
}

func TestInvalidPage(t *testing.T) {
	_, _, err := Open(testPDF).Pages(2).Markers(ruleCols, ruleRows).Grid()
	if err == nil {
		t.Fatal("expected error for page out of range")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("unexpected error: %v", err)
	}

	_, _, err = Open(testPDF).PageRange(3, 1).Grid()
	if !model.IsKind(err, model.KindUserInput) {
		t.Errorf("expected user input error, got %v", err)
	}
}

func TestPageCount(t *testing.T) {
	count, err := Open(testPDF).PageCount()
	if err != nil {
		t.Fatalf("failed to get page count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 page, got %d", count)
	}
}

func TestTranspose(t *testing.T) {
	grid, _, err := Open(testPDF).Markers(ruleCols, ruleRows).Transpose().Grid()
	if err != nil {
		t.Fatalf("failed to extract grid: %v", err)
	}
	want := []string{"Name", "Tea", "Coffee"}
	if !reflect.DeepEqual(grid.Rows[0], want) {
		t.Errorf("got %q, want %q", grid.Rows[0], want)
	}
}

func TestConfig(t *testing.T) {
	store := markers.NewStore()
	store.SetWorking(ruleCols, ruleRows)
	if _, err := store.SaveForPage(0); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	snap := config.New("prices")
	snap.Filename = "table.pdf"
	snap.Capture(store, 0)
	path := filepath.Join(dir, "table.yaml")
	if err := snap.Save(path); err != nil {
		t.Fatal(err)
	}

	grid, warnings, err := Open(testPDF).Config(path).Grid()
	if err != nil {
		t.Fatalf("failed to extract grid: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if !reflect.DeepEqual(grid.Rows, wantRows) {
		t.Errorf("got %q, want %q", grid.Rows, wantRows)
	}

	// A snapshot made for another file still loads, with a warning
	snap.Filename = "other.pdf"
	if err := snap.Save(path); err != nil {
		t.Fatal(err)
	}
	_, warnings, err = Open(testPDF).Config(path).Grid()
	if err != nil {
		t.Fatalf("failed to extract grid: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Page != 0 || !strings.Contains(warnings[0].Message, "other.pdf") {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestConfig_ManualData(t *testing.T) {
	store := markers.NewStore()
	store.SetWorking(ruleCols[:3], ruleRows[:2])
	if _, err := store.SaveForPage(0); err != nil {
		t.Fatal(err)
	}
	snap := config.New("")
	snap.Filename = "table.pdf"
	snap.Capture(store, 0)
	snap.SetManual(map[int]*model.Grid{0: model.GridFromRows([][]string{{"typed", "by hand"}})})
	path := filepath.Join(t.TempDir(), "table.json")
	if err := snap.Save(path); err != nil {
		t.Fatal(err)
	}

	pages, _, err := Open(testPDF).Config(path).PageGrids()
	if err != nil {
		t.Fatalf("failed to extract page grids: %v", err)
	}
	if len(pages) != 1 || pages[0].Source != session.FromManual {
		t.Fatalf("expected one manual page, got %+v", pages)
	}
	if got := pages[0].Grid.Cell(0, 1); got != "by hand" {
		t.Errorf("got %q", got)
	}

	// Explicit markers bypass manual data
	pages, _, err = Open(testPDF).Config(path).Markers(ruleCols, ruleRows).PageGrids()
	if err != nil {
		t.Fatalf("failed to extract page grids: %v", err)
	}
	if pages[0].Source != session.FromExtraction {
		t.Errorf("expected extraction, got %s", pages[0].Source)
	}
}

func TestPageGrids_IncompletePages(t *testing.T) {
	store := markers.NewStore()
	for page, cols := range [][]float64{ruleCols, {72}, ruleCols} {
		store.SetWorking(cols, ruleRows)
		if _, err := store.SaveForPage(page); err != nil {
			t.Fatal(err)
		}
	}
	snap := config.New("")
	snap.Filename = "fake.pdf"
	snap.Capture(store, 0)
	path := filepath.Join(t.TempDir(), "fake.json")
	if err := snap.Save(path); err != nil {
		t.Fatal(err)
	}

	src := pageSource{pages: 3, errs: map[int]error{2: errors.New("corrupt content stream")}}
	pages, warnings, err := FromSource("fake.pdf", src, nil).Config(path).PageGrids()
	if err != nil {
		t.Fatalf("failed to extract page grids: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 page grids, got %d", len(pages))
	}

	if pages[0].Source != session.FromExtraction || !reflect.DeepEqual(pages[0].Grid.Rows, wantRows) {
		t.Errorf("page 1: got %s %q", pages[0].Source, pages[0].Grid.Rows)
	}
	tests := []struct {
		index int
		rows  int
		cols  int
	}{
		{1, 3, 1},
		{2, 3, 3},
	}
	for _, tt := range tests {
		pg := pages[tt.index]
		if pg.Source != session.FromEmpty {
			t.Errorf("page %d: expected empty grid, got %s", pg.Page+1, pg.Source)
		}
		if pg.Grid.RowCount() != tt.rows || pg.Grid.ColCount() != tt.cols {
			t.Errorf("page %d: got %dx%d, want %dx%d", pg.Page+1, pg.Grid.RowCount(), pg.Grid.ColCount(), tt.rows, tt.cols)
		}
	}

	if len(warnings) != 2 || warnings[0].Page != 2 || warnings[1].Page != 3 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	grid, _, err := FromSource("fake.pdf", src, nil).Config(path).Grid()
	if err != nil {
		t.Fatalf("failed to extract grid: %v", err)
	}
	if grid.RowCount() != 9 {
		t.Errorf("expected 9 merged rows, got %d", grid.RowCount())
	}
}

func TestMerge(t *testing.T) {
	src := pageSource{pages: 2}

	tests := []struct {
		name  string
		ext   *Extractor
		rows  int
		cols  int
		first []string
	}{
		{
			name:  "vertical",
			ext:   FromSource("fake.pdf", src, nil).Pages(2, 1),
			rows:  6,
			cols:  3,
			first: []string{"Name", "Qty", "Price"},
		},
		{
			name:  "horizontal",
			ext:   FromSource("fake.pdf", src, nil).Pages(1, 2).Merge(tables.MergeHorizontal),
			rows:  3,
			cols:  6,
			first: []string{"Name", "Qty", "Price", "Name", "Qty", "Price"},
		},
		{
			name:  "duplicate pages",
			ext:   FromSource("fake.pdf", src, nil).Pages(1, 1),
			rows:  3,
			cols:  3,
			first: []string{"Name", "Qty", "Price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, _, err := tt.ext.Markers(ruleCols, ruleRows).Grid()
			if err != nil {
				t.Fatalf("failed to extract grid: %v", err)
			}
			if grid.RowCount() != tt.rows || grid.ColCount() != tt.cols {
				t.Errorf("got %dx%d, want %dx%d", grid.RowCount(), grid.ColCount(), tt.rows, tt.cols)
			}
			if !reflect.DeepEqual(grid.Rows[0], tt.first) {
				t.Errorf("first row %q, want %q", grid.Rows[0], tt.first)
			}
		})
	}
}

func TestChainImmutability(t *testing.T) {
	base := Open(testPDF)
	withPages := base.Pages(1)
	withMarkers := withPages.Markers(ruleCols, ruleRows)

	if base.options.pages != nil {
		t.Error("base extractor should not have pages set")
	}
	if withPages.options.hasMarkers() {
		t.Error("withPages should not have markers set")
	}
	if !withMarkers.options.hasMarkers() || len(withMarkers.options.pages) != 1 {
		t.Error("withMarkers should carry pages and markers")
	}

	cols := []float64{72, 222}
	ext := base.Markers(cols, ruleRows)
	cols[0] = 0
	if ext.options.columns[0] != 72 {
		t.Error("markers should be copied")
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	MustGrid(Open("nonexistent.pdf").Markers(ruleCols, ruleRows).Grid())
}

func TestFormatWarnings(t *testing.T) {
	got := FormatWarnings([]Warning{
		{Message: "configuration was created for a different file"},
		{Page: 2, Message: "mapping uses approximate scale 1/magnification"},
		{Page: 3, Message: "page 3 has no text layer"},
	})
	want := "configuration was created for a different file\n" +
		"page 2: mapping uses approximate scale 1/magnification\n" +
		"page 3 has no text layer"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDetect(t *testing.T) {
	if testing.Short() {
		t.Skip("renders with pdfium")
	}

	det, _, err := Open(testPDF).Detect(1, model.Rect{X0: 60, Y0: 80, X1: 540, Y1: 194})
	if err != nil {
		t.Fatalf("failed to detect lines: %v", err)
	}
	for _, want := range []float64{222, 372} {
		if !near(det.Columns, want, 2) {
			t.Errorf("no column near %g in %v", want, det.Columns)
		}
	}
	for _, want := range []float64{122, 152} {
		if !near(det.Rows, want, 2) {
			t.Errorf("no row near %g in %v", want, det.Rows)
		}
	}

	_, _, err = Open(testPDF).Detect(2, model.Rect{X0: 60, Y0: 80, X1: 540, Y1: 194})
	if !model.IsKind(err, model.KindUserInput) {
		t.Errorf("expected user input error, got %v", err)
	}
}

func TestDetect_NoRenderer(t *testing.T) {
	_, _, err := FromSource("fake.pdf", pageSource{pages: 1}, nil).
		Detect(1, model.Rect{X0: 60, Y0: 80, X1: 540, Y1: 194})
	if !model.IsKind(err, model.KindDependencyMissing) {
		t.Errorf("expected dependency error, got %v", err)
	}
}

func near(values []float64, want, tol float64) bool {
	for _, v := range values {
		if math.Abs(v-want) <= tol {
			return true
		}
	}
	return false
}
