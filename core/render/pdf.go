// Package render: PDF renderer.
// Prints the extracted source as a line-numbered listing using gofpdf.
// Token colours are not carried over; the listing is monochrome.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/jxrprism/core"
)

const (
	listingFontSize = 8.5
	listingLineH    = 4.2
	gutterWidth     = 12.0
	tabWidth        = 4
)

// PDFRenderer renders the page source as a PDF listing.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the extracted source into PDF bytes.
func (r *PDFRenderer) Render(page *core.Page) ([]byte, error) {
	if page.Result.Source == "" {
		return nil, fmt.Errorf("no source to render: %v", page.Result.Reason)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title from metadata.
	if page.Meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 15)
		pdf.MultiCell(0, 7, tr(page.Meta.Title), "", "L", false)
		pdf.Ln(2)
	}

	// Source reference.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+page.Meta.Source), "", "L", false)
	pdf.Ln(4)

	labels := lineLabels(page.Result)
	pdf.SetFont("Courier", "", listingFontSize)
	for i, line := range core.SplitLines(page.Result.Source) {
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))

		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(gutterWidth, listingLineH, labels[i], "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, listingLineH, " "+tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// lineLabels returns one gutter label per source line: the generated line
// index when the block is numbered, blanks otherwise.
func lineLabels(res core.Result) []string {
	n := core.CountLines(res.Source)
	labels := make([]string, n)
	if res.Block == nil || !res.Block.Numbered() || len(res.Block.Index) != n {
		return labels
	}
	for i, e := range res.Block.Index {
		labels[i] = e.Label
	}
	return labels
}
