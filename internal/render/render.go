// Package render turns a grouping run into user-facing output.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/groupr-cli/internal/grouping"
	"github.com/KaramelBytes/groupr-cli/internal/table"
)

// Format selects an output encoding.
type Format string

const (
	Markdown Format = "markdown"
	JSON     Format = "json"
	CSV      Format = "csv"
	XLSX     Format = "xlsx"
)

// ParseFormat maps user input to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use markdown|json|csv|xlsx)", s)
}

// Run is one generated assignment together with what is needed to show it.
type Run struct {
	ID         string
	Source     string
	Seed       uint64
	CreatedAt  time.Time
	Table      *table.ParsedTable
	Assignment *grouping.Assignment
	View       View
}

// NewRun stamps a fresh id and creation time.
func NewRun(source string, seed uint64, t *table.ParsedTable, a *grouping.Assignment, v View) *Run {
	return &Run{
		ID:         uuid.NewString(),
		Source:     source,
		Seed:       seed,
		CreatedAt:  time.Now().UTC(),
		Table:      t,
		Assignment: a,
		View:       v,
	}
}

// Columns returns the columns that should be shown for this run.
func (r *Run) Columns() []table.Column {
	return r.View.Columns(r.Table.Columns)
}

// Write encodes run to w in the requested format.
func Write(w io.Writer, f Format, run *Run) error {
	switch f {
	case Markdown:
		_, err := io.WriteString(w, MarkdownString(run))
		return err
	case JSON:
		return WriteJSON(w, run)
	case CSV:
		return WriteCSV(w, run)
	case XLSX:
		return WriteXLSX(w, run)
	}
	return fmt.Errorf("unsupported format: %s", f)
}

func groupTitle(i int) string { return fmt.Sprintf("Group %d", i+1) }
