package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin       = 12.0
	pdfBottomMargin = 18.0
	pdfRowHeight    = 7.0
	pdfFont         = "Helvetica"
)

// RenderPDF draws an A4 report: hospital header with optional logo, the
// record table with its header repeated on every page, and a sign-off block.
func RenderPDF(w io.Writer, doc Document, logoPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.SetTitle(doc.Title(), true)
	pdf.SetCreator("hospital-management-api", true)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	drawHeader(pdf, tr, doc, logoPath)

	pageWidth, pageHeight := pdf.GetPageSize()
	widths := columnWidths(pdf, doc.Table, pageWidth-2*pdfMargin)

	drawTableHeader(pdf, tr, doc.Table.Columns, widths)
	pdf.SetFont(pdfFont, "", 9)
	for i, record := range doc.Table.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			drawTableHeader(pdf, tr, doc.Table.Columns, widths)
			pdf.SetFont(pdfFont, "", 9)
		}
		fill := i%2 == 1
		pdf.SetFillColor(241, 245, 249)
		pdf.SetTextColor(30, 30, 30)
		for c, value := range record {
			text := fit(pdf, tr(value), widths[c]-2)
			pdf.CellFormat(widths[c], pdfRowHeight, text, "LR", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.CellFormat(sum(widths), 0, "", "T", 1, "", false, 0, "")

	drawSignOff(pdf, tr, pageHeight)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, doc Document, logoPath string) {
	textX := pdfMargin
	if logoPath != "" {
		if _, err := os.Stat(logoPath); err == nil {
			pdf.ImageOptions(logoPath, pdfMargin, pdfMargin, 0, 18, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			if !pdf.Err() {
				textX = pdfMargin + 24
			} else {
				// An unreadable logo is not worth failing the export over.
				pdf.ClearError()
			}
		}
	}

	pdf.SetXY(textX, pdfMargin)
	pdf.SetFont(pdfFont, "B", 16)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 8, tr(doc.Hospital), "", 2, "L", false, 0, "")

	pdf.SetFont(pdfFont, "", 11)
	pdf.SetTextColor(51, 65, 85)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s (%s)", doc.Title(), doc.Label)), "", 2, "L", false, 0, "")

	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s UTC, %d records",
		doc.GeneratedAt.UTC().Format("2006-01-02 15:04:05"), len(doc.Table.Rows)), "", 1, "L", false, 0, "")

	pdf.SetY(pdfMargin + 24)
}

func drawTableHeader(pdf *fpdf.Fpdf, tr func(string) string, columns []string, widths []float64) {
	pdf.SetFont(pdfFont, "B", 9)
	pdf.SetFillColor(30, 64, 175)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(148, 163, 184)
	for i, column := range columns {
		pdf.CellFormat(widths[i], pdfRowHeight+1, tr(column), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func drawSignOff(pdf *fpdf.Fpdf, tr func(string) string, pageHeight float64) {
	const blockHeight = 30.0
	if pdf.GetY()+blockHeight > pageHeight-pdfBottomMargin {
		pdf.AddPage()
	}
	pdf.Ln(10)
	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(30, 30, 30)
	for _, label := range []string{"Prepared by", "Signature", "Date"} {
		pdf.CellFormat(30, 7, tr(label+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, "", "B", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
}

// columnWidths splits the usable width in proportion to the longest value
// of each column, with a floor so short columns stay legible.
func columnWidths(pdf *fpdf.Fpdf, t Table, total float64) []float64 {
	n := len(t.Columns)
	if n == 0 {
		return nil
	}
	const minWidth = 12.0

	pdf.SetFont(pdfFont, "", 9)
	want := make([]float64, n)
	for i, column := range t.Columns {
		want[i] = pdf.GetStringWidth(column) + 4
	}
	for _, record := range t.Rows {
		for i, value := range record {
			if i < n {
				if w := pdf.GetStringWidth(value) + 4; w > want[i] {
					want[i] = w
				}
			}
		}
	}

	for i := range want {
		if want[i] < minWidth {
			want[i] = minWidth
		}
	}
	scale := total / sum(want)
	for i := range want {
		want[i] *= scale
	}
	return want
}

// fit truncates s with an ellipsis so it fits in width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
