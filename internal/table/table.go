package table

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Column describes one header cell: its literal text and the normalized key
// used to look values up in a Row.
type Column struct {
	DisplayName string `json:"display_name"`
	FieldKey    string `json:"field_key"`
}

// Row maps field keys to raw cell text. Rows are built once during parsing
// and are read-only afterwards.
type Row struct {
	keys   []string
	fields map[string]string
}

// ParsedTable is the result of parsing a delimited text table.
type ParsedTable struct {
	Columns []Column `json:"columns"`
	Rows    []*Row   `json:"rows"`

	issues []Diagnostic
}

// NewRow pairs cells with columns positionally. Cells beyond the last column
// are dropped; a short record yields a Row with fewer keys. When two columns
// share a field key the later cell wins.
func NewRow(columns []Column, cells []string) *Row {
	n := len(cells)
	if n > len(columns) {
		n = len(columns)
	}
	r := &Row{
		keys:   make([]string, 0, n),
		fields: make(map[string]string, n),
	}
	for i := 0; i < n; i++ {
		k := columns[i].FieldKey
		if _, seen := r.fields[k]; !seen {
			r.keys = append(r.keys, k)
		}
		r.fields[k] = cells[i]
	}
	return r
}

// Get returns the value stored under key.
func (r *Row) Get(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Value returns the value stored under key, or "" when the row has no such key.
func (r *Row) Value(key string) string { return r.fields[key] }

// Keys returns the row's field keys in column order.
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Select returns a row restricted to keys, in the given order. Keys the row
// lacks are skipped.
func (r *Row) Select(keys []string) *Row {
	out := &Row{
		keys:   make([]string, 0, len(keys)),
		fields: make(map[string]string, len(keys)),
	}
	for _, k := range keys {
		v, ok := r.fields[k]
		if !ok {
			continue
		}
		if _, dup := out.fields[k]; dup {
			continue
		}
		out.keys = append(out.keys, k)
		out.fields[k] = v
	}
	return out
}

// Len reports the number of distinct keys in the row.
func (r *Row) Len() int { return len(r.keys) }

// Map returns a copy of the row as a plain map.
func (r *Row) Map() map[string]string {
	out := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the row as an object whose members follow column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key: %w", err)
		}
		vb, err := json.Marshal(r.fields[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value: %w", err)
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// FromRecords builds a ParsedTable from raw records. The first record is the
// header; every later record becomes a Row.
func FromRecords(records [][]string) *ParsedTable {
	t := &ParsedTable{Columns: []Column{}, Rows: []*Row{}}
	if len(records) == 0 {
		return t
	}
	header := records[0]
	t.Columns = make([]Column, len(header))
	for i, h := range header {
		t.Columns[i] = Column{DisplayName: h, FieldKey: NormalizeKey(h)}
	}
	t.issues = duplicateKeys(t.Columns)
	t.Rows = make([]*Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if d, ok := widthMismatch(i+1, len(rec), len(t.Columns)); ok {
			t.issues = append(t.issues, d)
		}
		t.Rows = append(t.Rows, NewRow(t.Columns, rec))
	}
	return t
}

// FieldKeys returns the field keys of all columns in header order.
func (t *ParsedTable) FieldKeys() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.FieldKey
	}
	return out
}
