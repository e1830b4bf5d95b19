package render

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes a flat table: a leading group column, then the visible columns.
func WriteCSV(w io.Writer, run *Run) error {
	cols := run.Columns()
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(cols)+1)
	header = append(header, "Group")
	for _, c := range cols {
		header = append(header, c.DisplayName)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, g := range run.Assignment.Groups {
		for _, row := range g {
			rec := make([]string, 0, len(cols)+1)
			rec = append(rec, fmt.Sprint(i+1))
			for _, c := range cols {
				rec = append(rec, row.Value(c.FieldKey))
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
