package render

import (
	"strings"

	"github.com/KaramelBytes/groupr-cli/internal/table"
)

// DefaultHidden lists columns suppressed unless explicitly shown.
var DefaultHidden = []string{"notes"}

// View is a column visibility policy. Entries match a column by field key or,
// case-insensitively, by display name.
type View struct {
	Hidden []string
}

// NewView hides the given columns, except those also listed in show.
func NewView(hidden, show []string) View {
	var out []string
	for _, h := range hidden {
		h = strings.TrimSpace(h)
		if h == "" || containsFold(show, h) {
			continue
		}
		out = append(out, h)
	}
	return View{Hidden: out}
}

// Visible reports whether c is shown.
func (v View) Visible(c table.Column) bool {
	for _, h := range v.Hidden {
		if h == c.FieldKey || strings.EqualFold(h, c.DisplayName) {
			return false
		}
	}
	return true
}

// Columns filters cols down to the visible ones, keeping order.
func (v View) Columns(cols []table.Column) []table.Column {
	out := make([]table.Column, 0, len(cols))
	for _, c := range cols {
		if v.Visible(c) {
			out = append(out, c)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, x := range list {
		if strings.EqualFold(strings.TrimSpace(x), s) {
			return true
		}
	}
	return false
}
