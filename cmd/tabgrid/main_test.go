package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tabgrid/model"
)

var fixture = filepath.Join("..", "..", "document", "testdata", "table.pdf")

func TestParsePages(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "1", want: []int{1}},
		{in: "1-3,5", want: []int{1, 2, 3, 5}},
		{in: " 2 , 4-4 ", want: []int{2, 4}},
		{in: "3-1", wantErr: true},
		{in: "0", wantErr: true},
		{in: "a", wantErr: true},
		{in: "1-2-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePages(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArea(t *testing.T) {
	r, err := parseArea("60, 80,540.5,400")
	require.NoError(t, err)
	assert.Equal(t, model.Rect{X0: 60, Y0: 80, X1: 540.5, Y1: 400}, r)

	_, err = parseArea("1,2,3")
	assert.Error(t, err)
	_, err = parseArea("1,2,3,x")
	assert.Error(t, err)
}

func TestExtractCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "table.csv")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{
		"extract", fixture,
		"--columns", "72,222,372,522",
		"--rows", "92,122,152,182",
		"--output", out,
	})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "3x3 table written to")
	assert.Empty(t, strings.TrimSpace(stderr.String()))
}
