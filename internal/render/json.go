package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/KaramelBytes/groupr-cli/internal/grouping"
	"github.com/KaramelBytes/groupr-cli/internal/table"
)

// Envelope is the JSON shape of a run.
type Envelope struct {
	ID        string             `json:"id"`
	Source    string             `json:"source,omitempty"`
	Seed      uint64             `json:"seed"`
	CreatedAt time.Time          `json:"created_at"`
	Columns   []table.Column     `json:"columns"`
	Balance   grouping.Balance   `json:"balance"`
	Groups    []EnvelopeGroup    `json:"groups"`
	Warnings  []table.Diagnostic `json:"warnings,omitempty"`
}

// EnvelopeGroup is one group with only its visible fields.
type EnvelopeGroup struct {
	Name    string       `json:"name"`
	Members []*table.Row `json:"members"`
}

// NewEnvelope builds the JSON view of run.
func NewEnvelope(run *Run) Envelope {
	cols := run.Columns()
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.FieldKey
	}
	env := Envelope{
		ID:        run.ID,
		Source:    run.Source,
		Seed:      run.Seed,
		CreatedAt: run.CreatedAt,
		Columns:   cols,
		Balance:   run.Assignment.Balance(),
		Groups:    make([]EnvelopeGroup, len(run.Assignment.Groups)),
		Warnings:  run.Table.Diagnostics(),
	}
	for i, g := range run.Assignment.Groups {
		members := make([]*table.Row, len(g))
		for j, row := range g {
			members[j] = row.Select(keys)
		}
		env.Groups[i] = EnvelopeGroup{Name: groupTitle(i), Members: members}
	}
	return env
}

// WriteJSON writes the run envelope as indented JSON.
func WriteJSON(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewEnvelope(run)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
