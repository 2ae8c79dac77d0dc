package model

// TextFragment is a positioned unit of extracted text.
type TextFragment struct {
	Text string
	BBox Rect

	// Dir is the writing direction of the span as a unit vector in document
	// space. (1, 0) is ordinary left-to-right text, a negative X marks
	// right-to-left runs and a dominant Y component marks vertical runs.
	// The zero value means the source reported no direction.
	Dir Point

	FontName string
	FontSize float64
}

// Center returns the center of the fragment's bounding box
func (f TextFragment) Center() Point {
	return f.BBox.Center()
}
