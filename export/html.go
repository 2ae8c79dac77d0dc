package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/tabgrid/model"
)

// WriteHTML writes grid as a <table> of <tr> and <td> elements. Line breaks
// inside a cell become <br> elements.
func WriteHTML(w io.Writer, grid *model.Grid) error {
	table := element(atom.Table)
	body := element(atom.Tbody)
	table.AppendChild(body)

	width := grid.ColCount()
	for _, row := range grid.Rows {
		tr := element(atom.Tr)
		for j := 0; j < width; j++ {
			td := element(atom.Td)
			if j < len(row) {
				appendCellText(td, row[j])
			}
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}

	if err := html.Render(w, table); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func appendCellText(td *html.Node, cell string) {
	for i, line := range strings.Split(cell, "\n") {
		if i > 0 {
			td.AppendChild(element(atom.Br))
		}
		if line != "" {
			td.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
}
