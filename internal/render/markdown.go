package render

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/groupr-cli/internal/table"
)

// MarkdownString renders one table per group.
func MarkdownString(run *Run) string {
	var b strings.Builder
	b.WriteString("[GROUPS]\n")
	if run.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", run.Source))
	}
	bal := run.Assignment.Balance()
	b.WriteString(fmt.Sprintf("Rows: %d\n", bal.Rows))
	b.WriteString(fmt.Sprintf("Groups: %d (sizes %d-%d, mean %.2f)\n", bal.Groups, bal.Min, bal.Max, bal.Mean))
	b.WriteString(fmt.Sprintf("Seed: %d\n", run.Seed))

	cols := run.Columns()
	for i, g := range run.Assignment.Groups {
		b.WriteString(fmt.Sprintf("\n## %s (%d)\n", groupTitle(i), len(g)))
		if len(cols) == 0 {
			continue
		}
		writeHeader(&b, cols)
		for _, row := range g {
			b.WriteString("| ")
			for j, c := range cols {
				if j > 0 {
					b.WriteString(" | ")
				}
				b.WriteString(safeVal(row.Value(c.FieldKey)))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func writeHeader(b *strings.Builder, cols []table.Column) {
	b.WriteString("| ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeName(c.DisplayName))
	}
	b.WriteString(" |\n")
	b.WriteString("| ")
	for i := range cols {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return safeVal(s)
}

func safeVal(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
