package report

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

// Excel rejects sheet names longer than this.
const maxSheetName = 31

// RenderXLSX writes the table to a single sheet with a bold header row.
func RenderXLSX(w io.Writer, doc Document) error {
	file := xlsx.NewFile()

	name := doc.Title()
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	sheet, err := file.AddSheet(name)
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	header := xlsx.NewStyle()
	header.Font.Bold = true
	header.ApplyFont = true

	row := sheet.AddRow()
	for _, column := range doc.Table.Columns {
		cell := row.AddCell()
		cell.Value = column
		cell.SetStyle(header)
	}

	for _, record := range doc.Table.Rows {
		row := sheet.AddRow()
		for _, value := range record {
			row.AddCell().Value = value
		}
	}

	return file.Write(w)
}
