package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// WriteCSV writes t with a header line. The Date column is rendered from the
// parsed dates: date only, unless some row carries a time of day.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	dateIdx := t.ColumnIndex(ColDate)
	layout := DateLayout(t)
	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		copy(record, r.Values)
		for i := len(r.Values); i < len(record); i++ {
			record[i] = ""
		}
		if dateIdx >= 0 {
			record[dateIdx] = ""
			if r.Date.Valid {
				record[dateIdx] = r.Date.Time.Format(layout)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DateLayout picks the rendering for the whole Date column.
func DateLayout(t *Table) string {
	for _, r := range t.Rows {
		if !r.Date.Valid {
			continue
		}
		h, m, s := r.Date.Time.Clock()
		if h != 0 || m != 0 || s != 0 {
			return dateTimeLayout
		}
	}
	return dateLayout
}
