package itinerary

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Document struct {
	Destination string
	Days        int
	Itinerary   string
	GeneratedAt time.Time
}

// RenderPDF lays out the itinerary on A4 pages, lines starting with "#" become headings.
func RenderPDF(document Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// UTF-8 to the cp1252 of the core fonts
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	// header bar
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, translate(document.Destination), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(20)
	pdf.CellFormat(170, 6, fmt.Sprintf("%d day itinerary, generated %s", document.Days, document.GeneratedAt.Format("02 Jan 2006")), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(20, 20, 20)

	for _, line := range strings.Split(document.Itinerary, "\n") {
		line = strings.TrimRight(line, " \t\r")

		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(170, 7, translate(strings.TrimSpace(strings.TrimLeft(line, "#"))), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(170, 5, translate(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render itinerary pdf: %w", err)
	}

	return buf.Bytes(), nil
}
