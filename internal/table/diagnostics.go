package table

import "fmt"

// DiagnosticKind classifies a tolerated irregularity in a parsed table.
type DiagnosticKind string

const (
	// DuplicateKey means two header cells normalize to the same field key.
	DuplicateKey DiagnosticKind = "duplicate_key"
	// ShortRow means a record has fewer cells than the header.
	ShortRow DiagnosticKind = "short_row"
	// LongRow means a record has more cells than the header; extras are dropped.
	LongRow DiagnosticKind = "long_row"
)

// Diagnostic reports something the parser tolerated rather than rejected.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`
	// Row is the 1-based data row index (header excluded); 0 for header issues.
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string { return d.Message }

// Diagnostics returns the irregularities found while building the table.
func (t *ParsedTable) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(t.issues))
	copy(out, t.issues)
	return out
}

func duplicateKeys(cols []Column) []Diagnostic {
	first := make(map[string]int, len(cols))
	var out []Diagnostic
	for i, c := range cols {
		j, seen := first[c.FieldKey]
		if !seen {
			first[c.FieldKey] = i
			continue
		}
		out = append(out, Diagnostic{
			Kind: DuplicateKey,
			Message: fmt.Sprintf("columns %q and %q both map to key %q; the later value wins",
				cols[j].DisplayName, c.DisplayName, c.FieldKey),
		})
	}
	return out
}

func widthMismatch(row, got, want int) (Diagnostic, bool) {
	switch {
	case got < want:
		return Diagnostic{
			Kind:    ShortRow,
			Row:     row,
			Message: fmt.Sprintf("row %d has %d of %d fields", row, got, want),
		}, true
	case got > want:
		return Diagnostic{
			Kind:    LongRow,
			Row:     row,
			Message: fmt.Sprintf("row %d has %d fields, %d ignored", row, got, got-want),
		}, true
	}
	return Diagnostic{}, false
}
