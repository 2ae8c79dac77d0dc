package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tabgrid/model"
)

func TestMerge_Vertical(t *testing.T) {
	a := model.GridFromRows([][]string{{"a1", "a2"}})
	b := model.GridFromRows([][]string{{"b1", "b2", "b3"}, {"c1"}})

	got := Merge([]*model.Grid{a, nil, b}, MergeVertical, MergeOptions{})
	assert.Equal(t, [][]string{{"a1", "a2"}, {"b1", "b2", "b3"}, {"c1"}}, got.Rows)

	padded := Merge([]*model.Grid{a, b}, MergeVertical, MergeOptions{PadVertical: true})
	assert.Equal(t, [][]string{{"a1", "a2", ""}, {"b1", "b2", "b3"}, {"c1", "", ""}}, padded.Rows)

	// Inputs are not aliased.
	got.Rows[0][0] = "changed"
	assert.Equal(t, "a1", a.Cell(0, 0))
}

func TestMerge_Horizontal(t *testing.T) {
	// Widths 2 and 3, heights 2 and 3.
	a := model.GridFromRows([][]string{{"a", "b"}, {"c"}})
	b := model.GridFromRows([][]string{{"1", "2", "3"}, {"4", "5", "6"}, {"7", "8", "9"}})

	got := Merge([]*model.Grid{a, b}, MergeHorizontal, MergeOptions{})
	require.Equal(t, 3, got.RowCount())
	assert.Equal(t, 5, got.ColCount())
	assert.Equal(t, [][]string{
		{"a", "b", "1", "2", "3"},
		{"c", "", "4", "5", "6"},
		{"", "", "7", "8", "9"},
	}, got.Rows)
}

func TestMerge_Empty(t *testing.T) {
	assert.True(t, Merge(nil, MergeVertical, MergeOptions{}).IsEmpty())
	assert.True(t, Merge(nil, MergeHorizontal, MergeOptions{}).IsEmpty())
}

func TestTranspose(t *testing.T) {
	g := model.GridFromRows([][]string{{"a", "b", "c"}, {"d"}})

	got, err := Transpose(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "d"}, {"b", ""}, {"c", ""}}, got.Rows)

	back, err := Transpose(got)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "", ""}}, back.Rows)
}

func TestTranspose_Empty(t *testing.T) {
	_, err := Transpose(&model.Grid{})
	assert.True(t, model.IsKind(err, model.KindUserInput))

	_, err = Transpose(nil)
	assert.True(t, model.IsKind(err, model.KindUserInput))
}
