package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
)

func populated(t *testing.T) *markers.Store {
	t.Helper()
	s := markers.NewStore()
	for _, v := range []float64{200.5, 10.0} {
		require.NoError(t, s.Add(markers.Column, v))
	}
	for _, v := range []float64{90, 5} {
		require.NoError(t, s.Add(markers.Row, v))
	}
	_, err := s.SaveForPage(2)
	require.NoError(t, err)
	return s
}

func TestSnapshot_RoundTrip(t *testing.T) {
	for _, format := range []Format{JSON, YAML} {
		snap := New("table layout")
		snap.Filename = "report.pdf"
		snap.Capture(populated(t), 2)
		snap.SetManual(map[int]*model.Grid{
			4: model.GridFromRows([][]string{{"a", "b"}, {"", "c\nd"}}),
		})

		var buf bytes.Buffer
		require.NoError(t, snap.Encode(&buf, format))

		got, err := Decode(&buf, format)
		require.NoError(t, err)
		assert.Equal(t, snap, got)

		assert.Equal(t, []float64{10.0, 200.5}, got.ColumnMarkers)
		assert.Equal(t, []float64{5, 90}, got.RowMarkers)
		assert.Equal(t, markers.PageRecord{Columns: []float64{10.0, 200.5}, Rows: []float64{5, 90}}, got.PageMarkers[2])
		assert.Equal(t, "c\nd", got.Manual()[4].Cell(1, 1))
	}
}

func TestSnapshot_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"layout.json", "layout.yaml"} {
		t.Run(name, func(t *testing.T) {
			snap := New("saved")
			snap.Capture(populated(t), 0)

			path := filepath.Join(dir, name)
			require.NoError(t, snap.Save(path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, snap.ColumnMarkers, got.ColumnMarkers)
			assert.Equal(t, snap.PageMarkers, got.PageMarkers)

			store := markers.NewStore()
			require.NoError(t, got.Restore(store))
			assert.Equal(t, []float64{10.0, 200.5}, store.Columns())
			assert.Equal(t, []int{2}, store.MarkedPages())
		})
	}
}

func TestSnapshot_JSONLayout(t *testing.T) {
	snap := &Snapshot{
		Description: "d",
		CreatedDate: "2024-01-02 03:04:05",
		PageMarkers: map[int]markers.PageRecord{1: {Columns: []float64{1, 2}, Rows: []float64{3, 4}}},
	}
	var buf bytes.Buffer
	require.NoError(t, snap.Encode(&buf, JSON))
	assert.Contains(t, buf.String(), `"page_markers": {`)
	assert.Contains(t, buf.String(), `"1": {`)
	assert.Contains(t, buf.String(), `"created_date": "2024-01-02 03:04:05"`)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"description": "nothing"}`), 0o644))
	_, err := Load(empty)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.True(t, model.IsKind(err, model.KindUserInput))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"page_markers": `), 0o644))
	_, err = Load(broken)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.True(t, model.IsKind(err, model.KindUserInput))
}

func TestSnapshot_RestoreInvalidLeavesStore(t *testing.T) {
	store := populated(t)
	snap := &Snapshot{PageMarkers: map[int]markers.PageRecord{0: {Columns: []float64{1}}}}

	assert.Error(t, snap.Restore(store))
	assert.Equal(t, []int{2}, store.MarkedPages())
	assert.Equal(t, []float64{10.0, 200.5}, store.Columns())
}

func TestSnapshot_CheckFilename(t *testing.T) {
	snap := &Snapshot{Filename: "report.pdf"}

	_, ok := snap.CheckFilename("/data/in/report.pdf")
	assert.True(t, ok)

	msg, ok := snap.CheckFilename("other.pdf")
	assert.False(t, ok)
	assert.Contains(t, msg, "report.pdf")
	assert.Contains(t, msg, "other.pdf")

	_, ok = (&Snapshot{}).CheckFilename("")
	assert.True(t, ok)
}
