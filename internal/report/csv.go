package report

import (
	"encoding/csv"
	"io"
)

// RenderCSV writes a header row followed by one row per record.
func RenderCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
