package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes a workbook with one sheet per group.
func WriteXLSX(w io.Writer, run *Run) error {
	f := excelize.NewFile()
	defer f.Close()

	cols := run.Columns()
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.DisplayName
	}
	for i, g := range run.Assignment.Groups {
		name := groupTitle(i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("write header %s: %w", name, err)
		}
		for j, row := range g {
			vals := make([]any, len(cols))
			for k, c := range cols {
				vals[k] = row.Value(c.FieldKey)
			}
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &vals); err != nil {
				return fmt.Errorf("write row %s: %w", cell, err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
