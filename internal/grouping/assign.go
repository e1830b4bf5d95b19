// Package grouping splits table rows into size-balanced random groups.
package grouping

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/groupr-cli/internal/table"
)

// ErrInvalidConfiguration is returned when a partition is requested with a
// group count outside [1, MaxGroups], without a random source, or without a
// table.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// MaxGroups bounds the group count so a request cannot size an allocation.
const MaxGroups = 1 << 16

// Assignment is an ordered list of groups. Each group holds references into
// the source table's rows; rows are never copied.
type Assignment struct {
	Groups [][]*table.Row
}

// Len returns the total number of rows across all groups.
func (a *Assignment) Len() int {
	n := 0
	for _, g := range a.Groups {
		n += len(g)
	}
	return n
}

// Sizes returns the size of each group in order.
func (a *Assignment) Sizes() []int {
	out := make([]int, len(a.Groups))
	for i, g := range a.Groups {
		out[i] = len(g)
	}
	return out
}

// Assign distributes rows over groupCount groups. See Partition.
func Assign(rows []*table.Row, groupCount int, src Source) (*Assignment, error) {
	groups, err := Partition(rows, groupCount, src)
	if err != nil {
		return nil, err
	}
	return &Assignment{Groups: groups}, nil
}

// AssignTable is Assign over a parsed table's rows.
func AssignTable(t *table.ParsedTable, groupCount int, src Source) (*Assignment, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no table has been parsed", ErrInvalidConfiguration)
	}
	return Assign(t.Rows, groupCount, src)
}

// Partition draws items uniformly at random without replacement and deals
// them round robin into groupCount groups, so group sizes differ by at most
// one. src is consumed exactly once per item. The input slice is not
// modified.
func Partition[T any](items []T, groupCount int, src Source) ([][]T, error) {
	if groupCount <= 0 {
		return nil, fmt.Errorf("%w: group count must be positive, got %d", ErrInvalidConfiguration, groupCount)
	}
	if groupCount > MaxGroups {
		return nil, fmt.Errorf("%w: group count %d exceeds the maximum of %d", ErrInvalidConfiguration, groupCount, MaxGroups)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidConfiguration)
	}
	per := len(items)/groupCount + 1
	groups := make([][]T, groupCount)
	for i := range groups {
		groups[i] = make([]T, 0, per)
	}

	remaining := make([]int, len(items))
	for i := range remaining {
		remaining[i] = i
	}
	cursor := 0
	for len(remaining) > 0 {
		n := len(remaining)
		pick := index(src.Uniform(n), n)
		groups[cursor] = append(groups[cursor], items[remaining[pick]])
		// swap-remove
		remaining[pick] = remaining[n-1]
		remaining = remaining[:n-1]
		cursor = (cursor + 1) % groupCount
	}
	return groups, nil
}

// index floors x into [0, n).
func index(x float64, n int) int {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x >= float64(n):
		return n - 1
	}
	return int(x)
}
