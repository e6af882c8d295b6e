package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfTextX = 100.0
	// distance from the bottom edge, in points
	pdfTextY = 750.0
)

// renderPDF draws the content as a single line at a fixed position. Nothing is
// wrapped or paginated; text running past the page edge is clipped.
func renderPDF(content string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Story", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	line := strings.Join(strings.Fields(content), " ")

	_, pageHeight := pdf.GetPageSize()
	pdf.Text(pdfTextX, pageHeight-pdfTextY, tr(line))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
