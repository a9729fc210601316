package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts pdf, csv or xlsx; an empty value means pdf.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q, expected pdf, csv or xlsx", ErrInvalidFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/pdf"
	}
}

// Document is one export: the filtered table plus the header it is printed under.
type Document struct {
	Hospital    string
	Entity      string
	Label       string
	GeneratedAt time.Time
	Table       Table
}

func (d Document) Title() string {
	if d.Entity == "" {
		return "Report"
	}
	return strings.ToUpper(d.Entity[:1]) + d.Entity[1:] + " report"
}

func render(w io.Writer, f Format, doc Document, logoPath string) error {
	switch f {
	case FormatCSV:
		return RenderCSV(w, doc.Table)
	case FormatXLSX:
		return RenderXLSX(w, doc)
	case FormatPDF:
		return RenderPDF(w, doc, logoPath)
	default:
		return fmt.Errorf("%w %q", ErrInvalidFormat, f)
	}
}
