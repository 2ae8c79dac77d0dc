package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		ok      bool
		wantErr bool
	}{
		{line: "", ok: false},
		{line: "   # comment", ok: false},
		{line: "undo", want: Command{Intent: IntentUndo, Args: []string{}}, ok: true},
		{line: "Add-Column 10 20.5", want: Command{Intent: IntentAddColumn, Args: []string{"10", "20.5"}}, ok: true},
		{line: `export "my table.csv"`, want: Command{Intent: IntentExport, Args: []string{"my table.csv"}}, ok: true},
		{line: `manual-set 1 1 1 "say \"hi\""`, want: Command{Intent: IntentManualSet, Args: []string{"1", "1", "1", `say "hi"`}}, ok: true},
		{line: `manual-set 1 1 1 ""`, want: Command{Intent: IntentManualSet, Args: []string{"1", "1", "1", ""}}, ok: true},
		{line: `export "open`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok, err := ParseCommand(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnterminatedQuote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDispatcher_Run(t *testing.T) {
	s, _, _ := newSession(t)
	d := NewDispatcher(s)
	dir := t.TempDir()
	out := filepath.Join(dir, "table.csv")
	cfg := filepath.Join(dir, "layout.yaml")

	script := strings.Join([]string{
		"# ruled table on page 1",
		"select 72 92 522 182",
		"detect --clear",
		"save-page",
		"extract space",
		"orient analyze",
		"transpose",
		"transpose",
		`export "` + out + `"`,
		`save-config "` + cfg + `" "ledger layout"`,
		"reset",
		`load-config "` + cfg + `"`,
		"goto-page 2",
		"zoom in",
	}, "\n")

	var buf bytes.Buffer
	require.NoError(t, d.Run(strings.NewReader(script), &buf))

	log := buf.String()
	assert.Contains(t, log, "detected 2 vertical and 2 horizontal lines")
	assert.Contains(t, log, "saved markers for page 1")
	assert.Contains(t, log, "extracted 3x3 table")
	assert.Contains(t, log, "loaded 1 page markers")
	assert.Contains(t, log, "page 2 of 4")
	assert.Contains(t, log, "zoom 120%")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Name,Qty,Price\nTea,10,2.50\nCoffee,4,3.75\n", string(data))

	assert.Empty(t, s.Markers().Columns(), "page 2 has no saved markers")
	rec, ok := s.Markers().Record(0)
	require.True(t, ok)
	assert.Equal(t, ruleCols, rec.Columns)
}

func TestDispatcher_Errors(t *testing.T) {
	s, _, _ := newSession(t)
	d := NewDispatcher(s)

	tests := []struct {
		script string
		line   string
	}{
		{"frobnicate", "line 1"},
		{"add-row ten", "line 1"},
		{"undo", "line 1"},
		{"add-row 1\ngoto-page 0", "line 2"},
		{"select 1 2 3", "line 1"},
		{"extract sideways", "line 1"},
		{"force-orient sideways", "line 1"},
		{"extract-marked diagonal", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			err := d.Run(strings.NewReader(tt.script), &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.line)
			assert.True(t, model.IsKind(err, model.KindUserInput))
		})
	}
}

func TestDispatcher_AddBatchIsAtomic(t *testing.T) {
	s, _, _ := newSession(t)
	d := NewDispatcher(s)

	_, err := d.Dispatch(Command{Intent: IntentAddColumn, Args: []string{"10", "20", "10"}})
	assert.ErrorIs(t, err, markers.ErrDuplicate)
	assert.Empty(t, s.Markers().Columns())
	assert.Empty(t, s.Markers().History())

	require.NoError(t, s.AddMarker(markers.Row, 5))
	_, err = d.Dispatch(Command{Intent: IntentAddRow, Args: []string{"1", "5"}})
	assert.ErrorIs(t, err, markers.ErrDuplicate)
	assert.Equal(t, []float64{5}, s.Markers().Rows())
	assert.Len(t, s.Markers().History(), 1)
}

func TestDispatcher_Register(t *testing.T) {
	s, _, _ := newSession(t)
	d := NewDispatcher(s)

	d.Register("pages", func(s *Session, args []string) (string, error) {
		return "pages: 4", nil
	})
	msg, err := d.Dispatch(Command{Intent: "pages"})
	require.NoError(t, err)
	assert.Equal(t, "pages: 4", msg)
	assert.Contains(t, d.Intents(), Intent("pages"))
	assert.Contains(t, d.Intents(), IntentExtractMarked)
}

func TestDispatcher_ManualAndMarked(t *testing.T) {
	s, _, _ := newSession(t)
	d := NewDispatcher(s)

	script := strings.Join([]string{
		"add-column 72 222 372 522",
		"add-row 92 122 152",
		"save-page",
		"goto-page 2",
		"add-column 72 222 372 522",
		"add-row 92 122 152",
		"save-page",
		`manual-set 2 1 1 "typed value"`,
		"extract-marked horizontal",
	}, "\n")
	var buf bytes.Buffer
	require.NoError(t, d.Run(strings.NewReader(script), &buf))
	assert.Contains(t, buf.String(), "extracted 2x6 table from pages: 1, 2")

	g, ok := s.Grid()
	require.True(t, ok)
	assert.Equal(t, "Name", g.Cell(0, 0))
	assert.Equal(t, "typed value", g.Cell(0, 3))
}
