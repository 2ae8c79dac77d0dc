// Package document opens PDF files and provides the two page services the
// rest of tabgrid needs: positioned text fragments and raster renders.
//
// Coordinates are document space: PDF points with the origin at the top
// left of the page and y growing downward. Page numbers are 0-indexed.
//
//	doc, err := document.Open("report.pdf")
//	defer doc.Close()
//	frags, err := doc.Fragments(0)
//
//	r, err := document.NewPdfiumRenderer("report.pdf")
//	defer r.Close()
//	img, err := r.Render(0, 8)
//
// Open validates the file with pdfcpu, which also supplies page
// dimensions. Text comes from ledongthuc/pdf as individual glyphs and is
// grouped into spans by [GroupSpans]. Rendering uses the WebAssembly build
// of PDFium, so no native library is required.
package document
